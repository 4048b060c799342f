// Package protocol implements the WAMP v2 messages a WAAPI client exchanges
// with the authoring application.
//
// Every WAMP message is an array whose first element is the message code:
//
//	[CALL, Request|id, Options|dict, Procedure|uri, Arguments|list, ArgumentsKw|dict]
//	[RESULT, CALL.Request|id, Details|dict, YIELD.Arguments|list, YIELD.ArgumentsKw|dict]
//	[ERROR, CALL, CALL.Request|id, Details|dict, Error|uri, Arguments|list, ArgumentsKw|dict]
//
// WAAPI only uses keyword arguments, so Args is always sent empty and the
// payload lives in Kwargs. Only the basic-profile messages needed by a
// caller/subscriber are implemented.
package protocol

import (
	"errors"
	"fmt"

	"waapi-go/codec"
)

// DefaultRealm is the realm the authoring application serves WAAPI on.
const DefaultRealm = "realm1"

// Code identifies a WAMP message type.
type Code int

const (
	CodeHello        Code = 1
	CodeWelcome      Code = 2
	CodeAbort        Code = 3
	CodeGoodbye      Code = 6
	CodeError        Code = 8
	CodeSubscribe    Code = 32
	CodeSubscribed   Code = 33
	CodeUnsubscribe  Code = 34
	CodeUnsubscribed Code = 35
	CodeEvent        Code = 36
	CodeCall         Code = 48
	CodeResult       Code = 50
)

// Close reasons used in GOODBYE and ABORT.
const (
	ReasonCloseNormal   = "wamp.close.normal"
	ReasonGoodbyeAndOut = "wamp.close.goodbye_and_out"
	ReasonNoSuchRealm   = "wamp.error.no_such_realm"
)

var (
	// ErrMalformed is returned when a frame is not a WAMP array of the expected shape.
	ErrMalformed = errors.New("malformed wamp message")

	// ErrUnknownCode is returned for message codes this package does not handle.
	ErrUnknownCode = errors.New("unknown wamp message code")
)

// Message is any WAMP message.
type Message interface {
	Code() Code
}

type Hello struct {
	Realm   string
	Details map[string]any
}

type Welcome struct {
	Session uint64
	Details map[string]any
}

type Abort struct {
	Details map[string]any
	Reason  string
}

type Goodbye struct {
	Details map[string]any
	Reason  string
}

// Error answers a request (CALL, SUBSCRIBE, UNSUBSCRIBE) that failed.
type Error struct {
	RequestType Code
	Request     uint64
	Details     map[string]any
	URI         string
	Args        []any
	Kwargs      map[string]any
}

type Subscribe struct {
	Request uint64
	Options map[string]any
	Topic   string
}

type Subscribed struct {
	Request      uint64
	Subscription uint64
}

type Unsubscribe struct {
	Request      uint64
	Subscription uint64
}

type Unsubscribed struct {
	Request uint64
}

type Event struct {
	Subscription uint64
	Publication  uint64
	Details      map[string]any
	Args         []any
	Kwargs       map[string]any
}

type Call struct {
	Request   uint64
	Options   map[string]any
	Procedure string
	Args      []any
	Kwargs    map[string]any
}

type Result struct {
	Request uint64
	Details map[string]any
	Args    []any
	Kwargs  map[string]any
}

func (*Hello) Code() Code        { return CodeHello }
func (*Welcome) Code() Code      { return CodeWelcome }
func (*Abort) Code() Code        { return CodeAbort }
func (*Goodbye) Code() Code      { return CodeGoodbye }
func (*Error) Code() Code        { return CodeError }
func (*Subscribe) Code() Code    { return CodeSubscribe }
func (*Subscribed) Code() Code   { return CodeSubscribed }
func (*Unsubscribe) Code() Code  { return CodeUnsubscribe }
func (*Unsubscribed) Code() Code { return CodeUnsubscribed }
func (*Event) Code() Code        { return CodeEvent }
func (*Call) Code() Code         { return CodeCall }
func (*Result) Code() Code       { return CodeResult }

// Encode serializes m as a WAMP array.
// Nil dicts are sent as {} and nil argument lists as [], since peers reject null.
func Encode(c codec.Codec, m Message) ([]byte, error) {
	var arr []any
	switch msg := m.(type) {
	case *Hello:
		arr = []any{CodeHello, msg.Realm, dict(msg.Details)}
	case *Welcome:
		arr = []any{CodeWelcome, msg.Session, dict(msg.Details)}
	case *Abort:
		arr = []any{CodeAbort, dict(msg.Details), msg.Reason}
	case *Goodbye:
		arr = []any{CodeGoodbye, dict(msg.Details), msg.Reason}
	case *Error:
		arr = []any{CodeError, msg.RequestType, msg.Request, dict(msg.Details), msg.URI, list(msg.Args), dict(msg.Kwargs)}
	case *Subscribe:
		arr = []any{CodeSubscribe, msg.Request, dict(msg.Options), msg.Topic}
	case *Subscribed:
		arr = []any{CodeSubscribed, msg.Request, msg.Subscription}
	case *Unsubscribe:
		arr = []any{CodeUnsubscribe, msg.Request, msg.Subscription}
	case *Unsubscribed:
		arr = []any{CodeUnsubscribed, msg.Request}
	case *Event:
		arr = []any{CodeEvent, msg.Subscription, msg.Publication, dict(msg.Details), list(msg.Args), dict(msg.Kwargs)}
	case *Call:
		arr = []any{CodeCall, msg.Request, dict(msg.Options), msg.Procedure, list(msg.Args), dict(msg.Kwargs)}
	case *Result:
		arr = []any{CodeResult, msg.Request, dict(msg.Details), list(msg.Args), dict(msg.Kwargs)}
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnknownCode, m)
	}
	return c.Encode(arr)
}

// Decode parses a single WAMP frame.
// It validates the message code and the minimum arity for that code; the
// optional trailing Args/Kwargs elements may be absent.
func Decode(c codec.Codec, data []byte) (Message, error) {
	var arr []any
	if err := c.Decode(data, &arr); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if len(arr) == 0 {
		return nil, fmt.Errorf("%w: empty frame", ErrMalformed)
	}
	raw, ok := toID(arr[0])
	if !ok {
		return nil, fmt.Errorf("%w: message code is not an integer", ErrMalformed)
	}

	d := decoder{arr: arr}
	code := Code(raw)
	var m Message
	switch code {
	case CodeHello:
		d.need(3)
		m = &Hello{Realm: d.str(1), Details: d.dict(2)}
	case CodeWelcome:
		d.need(3)
		m = &Welcome{Session: d.id(1), Details: d.dict(2)}
	case CodeAbort:
		d.need(3)
		m = &Abort{Details: d.dict(1), Reason: d.str(2)}
	case CodeGoodbye:
		d.need(3)
		m = &Goodbye{Details: d.dict(1), Reason: d.str(2)}
	case CodeError:
		d.need(5)
		m = &Error{
			RequestType: Code(d.id(1)),
			Request:     d.id(2),
			Details:     d.dict(3),
			URI:         d.str(4),
			Args:        d.optList(5),
			Kwargs:      d.optDict(6),
		}
	case CodeSubscribe:
		d.need(4)
		m = &Subscribe{Request: d.id(1), Options: d.dict(2), Topic: d.str(3)}
	case CodeSubscribed:
		d.need(3)
		m = &Subscribed{Request: d.id(1), Subscription: d.id(2)}
	case CodeUnsubscribe:
		d.need(3)
		m = &Unsubscribe{Request: d.id(1), Subscription: d.id(2)}
	case CodeUnsubscribed:
		d.need(2)
		m = &Unsubscribed{Request: d.id(1)}
	case CodeEvent:
		d.need(4)
		m = &Event{
			Subscription: d.id(1),
			Publication:  d.id(2),
			Details:      d.dict(3),
			Args:         d.optList(4),
			Kwargs:       d.optDict(5),
		}
	case CodeCall:
		d.need(4)
		m = &Call{
			Request:   d.id(1),
			Options:   d.dict(2),
			Procedure: d.str(3),
			Args:      d.optList(4),
			Kwargs:    d.optDict(5),
		}
	case CodeResult:
		d.need(3)
		m = &Result{
			Request: d.id(1),
			Details: d.dict(2),
			Args:    d.optList(3),
			Kwargs:  d.optDict(4),
		}
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownCode, raw)
	}

	if d.err != nil {
		return nil, fmt.Errorf("%w: code %d: %v", ErrMalformed, code, d.err)
	}
	return m, nil
}

// decoder extracts typed elements from a decoded WAMP array, remembering the
// first failure so Decode can check once at the end.
type decoder struct {
	arr []any
	err error
}

func (d *decoder) need(n int) {
	if d.err == nil && len(d.arr) < n {
		d.err = fmt.Errorf("expected at least %d elements, got %d", n, len(d.arr))
	}
}

func (d *decoder) at(i int) (any, bool) {
	if d.err != nil || i >= len(d.arr) {
		return nil, false
	}
	return d.arr[i], true
}

func (d *decoder) id(i int) uint64 {
	v, ok := d.at(i)
	if !ok {
		return 0
	}
	n, ok := toID(v)
	if !ok {
		d.err = fmt.Errorf("element %d is not an id", i)
	}
	return n
}

func (d *decoder) str(i int) string {
	v, ok := d.at(i)
	if !ok {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		d.err = fmt.Errorf("element %d is not a string", i)
	}
	return s
}

func (d *decoder) dict(i int) map[string]any {
	v, ok := d.at(i)
	if !ok {
		return nil
	}
	m, ok := v.(map[string]any)
	if !ok {
		d.err = fmt.Errorf("element %d is not a dict", i)
	}
	return m
}

func (d *decoder) optDict(i int) map[string]any {
	if i >= len(d.arr) {
		return nil
	}
	return d.dict(i)
}

func (d *decoder) optList(i int) []any {
	v, ok := d.at(i)
	if !ok {
		return nil
	}
	l, ok := v.([]any)
	if !ok {
		d.err = fmt.Errorf("element %d is not a list", i)
	}
	return l
}

// toID converts a decoded JSON number to a WAMP id (integers in [0, 2^53]).
func toID(v any) (uint64, bool) {
	f, ok := v.(float64)
	if !ok || f < 0 || f != float64(uint64(f)) {
		return 0, false
	}
	return uint64(f), true
}

func dict(m map[string]any) map[string]any {
	if m == nil {
		return map[string]any{}
	}
	return m
}

func list(l []any) []any {
	if l == nil {
		return []any{}
	}
	return l
}
