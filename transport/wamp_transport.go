package transport

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"waapi-go/codec"
	"waapi-go/message"
	"waapi-go/protocol"
)

const (
	heartbeatInterval = 30 * time.Second
	handshakeTimeout  = 10 * time.Second
	writeWait         = 5 * time.Second
)

// helloDetails announces the roles this client plays in the session.
var helloDetails = map[string]any{
	"roles": map[string]any{
		"caller":     map[string]any{},
		"subscriber": map[string]any{},
	},
}

// WAMPTransport multiplexes calls and subscriptions over one WebSocket session.
//
//	goroutine-1 ──CALL(id=1)──┐
//	goroutine-2 ──CALL(id=2)──┼──→ websocket ──→ authoring instance
//	goroutine-3 ──SUBSCRIBE───┘
//
//	recvLoop: ←── RESULT(id=2) → pending[2] → goroutine-2 wakes up
//	          ←── EVENT(sub=7) → handlers of subscription 7
type WAMPTransport struct {
	conn    *websocket.Conn
	codec   codec.Codec
	logger  *zap.Logger
	session uint64

	seq     uint64     // request id counter, protected by sending
	sending sync.Mutex // serializes frame writes on conn
	pending sync.Map   // map[uint64]*pendingRequest

	subMu sync.Mutex
	subs  map[uint64][]*Subscription // the broker reuses one id per topic

	done      chan struct{} // closed when the session is over
	errMu     sync.Mutex
	err       error
	closeOnce sync.Once
}

type pendingRequest struct {
	ch chan protocol.Message // buffered so recvLoop never blocks

	// set for SUBSCRIBE requests
	topic   string
	handler EventHandler
	sub     *Subscription
}

// Subscription is an active topic subscription.
type Subscription struct {
	ID    uint64
	Topic string

	handler EventHandler
	owner   Subscriber
}

// Unsubscribe stops event delivery for this subscription.
func (s *Subscription) Unsubscribe(ctx context.Context) error {
	return s.owner.Unsubscribe(ctx, s)
}

// DialWAMP opens a WebSocket to addr, joins the realm and starts the receive
// and heartbeat goroutines.
func DialWAMP(ctx context.Context, addr string, opts Options) (*WAMPTransport, error) {
	opts = opts.withDefaults()

	dialer := websocket.Dialer{
		Subprotocols:     []string{opts.Codec.Subprotocol()},
		HandshakeTimeout: handshakeTimeout,
	}
	conn, _, err := dialer.DialContext(ctx, addr, nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", addr, err)
	}

	t := &WAMPTransport{
		conn:   conn,
		codec:  opts.Codec,
		logger: opts.Logger.With(zap.String("addr", addr)),
		subs:   make(map[uint64][]*Subscription),
		done:   make(chan struct{}),
	}

	if err := t.handshake(ctx, opts.Realm); err != nil {
		conn.Close()
		return nil, err
	}

	go t.recvLoop()
	go t.heartbeatLoop(heartbeatInterval)
	return t, nil
}

// handshake sends HELLO and waits for WELCOME or ABORT.
func (t *WAMPTransport) handshake(ctx context.Context, realm string) error {
	// unblock the read below if ctx ends first
	stop := context.AfterFunc(ctx, func() { t.conn.Close() })
	defer stop()

	if err := t.write(&protocol.Hello{Realm: realm, Details: helloDetails}); err != nil {
		return err
	}

	_, data, err := t.conn.ReadMessage()
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("read welcome: %w", err)
	}
	m, err := protocol.Decode(t.codec, data)
	if err != nil {
		return err
	}

	switch msg := m.(type) {
	case *protocol.Welcome:
		t.session = msg.Session
		t.logger = t.logger.With(zap.Uint64("session", msg.Session))
		t.logger.Debug("waapi session established")
		return nil
	case *protocol.Abort:
		return fmt.Errorf("waapi session aborted: %s", msg.Reason)
	default:
		return fmt.Errorf("%w: expected WELCOME, got code %d", protocol.ErrMalformed, m.Code())
	}
}

// Session returns the WAMP session id assigned by the router.
func (t *WAMPTransport) Session() uint64 {
	return t.session
}

// Call sends a CALL and waits for its RESULT or ERROR.
func (t *WAMPTransport) Call(ctx context.Context, req *message.Request) (*message.Response, error) {
	reply, err := t.request(ctx, nil, func(id uint64) protocol.Message {
		return &protocol.Call{
			Request:   id,
			Options:   req.Options,
			Procedure: req.URI,
			Kwargs:    req.Args,
		}
	})
	if err != nil {
		return nil, err
	}

	switch msg := reply.(type) {
	case *protocol.Result:
		return &message.Response{URI: req.URI, Result: msg.Kwargs}, nil
	case *protocol.Error:
		return nil, message.ErrorFromKwargs(msg.URI, msg.Kwargs)
	default:
		return nil, fmt.Errorf("%w: unexpected reply code %d to CALL", protocol.ErrMalformed, reply.Code())
	}
}

// Subscribe registers handler for topic. Events published after the broker
// acknowledges the subscription are delivered in order.
func (t *WAMPTransport) Subscribe(ctx context.Context, topic string, options map[string]any, handler EventHandler) (*Subscription, error) {
	p := &pendingRequest{topic: topic, handler: handler}
	reply, err := t.request(ctx, p, func(id uint64) protocol.Message {
		return &protocol.Subscribe{Request: id, Options: options, Topic: topic}
	})
	if err != nil {
		return nil, err
	}

	switch msg := reply.(type) {
	case *protocol.Subscribed:
		return p.sub, nil
	case *protocol.Error:
		return nil, message.ErrorFromKwargs(msg.URI, msg.Kwargs)
	default:
		return nil, fmt.Errorf("%w: unexpected reply code %d to SUBSCRIBE", protocol.ErrMalformed, reply.Code())
	}
}

// Unsubscribe removes sub. UNSUBSCRIBE is only sent once no other local
// subscription shares the broker's subscription id.
func (t *WAMPTransport) Unsubscribe(ctx context.Context, sub *Subscription) error {
	t.subMu.Lock()
	subs := t.subs[sub.ID]
	for i, s := range subs {
		if s == sub {
			subs = append(subs[:i:i], subs[i+1:]...)
			break
		}
	}
	if len(subs) > 0 {
		t.subs[sub.ID] = subs
		t.subMu.Unlock()
		return nil
	}
	delete(t.subs, sub.ID)
	t.subMu.Unlock()

	reply, err := t.request(ctx, nil, func(id uint64) protocol.Message {
		return &protocol.Unsubscribe{Request: id, Subscription: sub.ID}
	})
	if err != nil {
		return err
	}
	if e, ok := reply.(*protocol.Error); ok {
		return message.ErrorFromKwargs(e.URI, e.Kwargs)
	}
	return nil
}

// request assigns the next request id, sends the frame built for it and
// waits for the matching reply.
//
// The pending entry is stored BEFORE the frame is written so recvLoop can
// never see a reply for an unknown id.
func (t *WAMPTransport) request(ctx context.Context, p *pendingRequest, build func(id uint64) protocol.Message) (protocol.Message, error) {
	if err := t.Err(); err != nil {
		return nil, err
	}
	if p == nil {
		p = &pendingRequest{}
	}
	p.ch = make(chan protocol.Message, 1)

	t.sending.Lock()
	t.seq++
	id := t.seq
	t.pending.Store(id, p)
	err := t.write(build(id))
	t.sending.Unlock()

	if err != nil {
		t.pending.Delete(id)
		return nil, err
	}

	select {
	case m := <-p.ch:
		return m, nil
	case <-ctx.Done():
		if _, ok := t.pending.LoadAndDelete(id); ok {
			return nil, ctx.Err()
		}
		// recvLoop already took the entry; its reply is on the way
		select {
		case m := <-p.ch:
			return m, nil
		case <-t.done:
			return nil, t.Err()
		}
	case <-t.done:
		return nil, t.Err()
	}
}

// write encodes and sends one frame. Callers hold the sending lock, except
// during the handshake when no other goroutine exists yet.
func (t *WAMPTransport) write(m protocol.Message) error {
	data, err := protocol.Encode(t.codec, m)
	if err != nil {
		return err
	}
	t.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := t.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		return fmt.Errorf("%w: %v", ErrClosed, err)
	}
	return nil
}

// recvLoop is the only reader of the connection. It routes replies to the
// waiting request by id and dispatches events to subscription handlers.
func (t *WAMPTransport) recvLoop() {
	for {
		_, data, err := t.conn.ReadMessage()
		if err != nil {
			t.fail(fmt.Errorf("%w: %v", ErrClosed, err))
			return
		}

		m, err := protocol.Decode(t.codec, data)
		if err != nil {
			t.logger.Warn("dropping malformed frame", zap.Error(err))
			continue
		}

		switch msg := m.(type) {
		case *protocol.Result:
			t.resolve(msg.Request, msg)
		case *protocol.Error:
			t.resolve(msg.Request, msg)
		case *protocol.Unsubscribed:
			t.resolve(msg.Request, msg)
		case *protocol.Subscribed:
			t.subscribed(msg)
		case *protocol.Event:
			t.dispatch(msg)
		case *protocol.Goodbye:
			t.logger.Debug("router closed session", zap.String("reason", msg.Reason))
			t.sending.Lock()
			t.write(&protocol.Goodbye{Reason: protocol.ReasonGoodbyeAndOut})
			t.sending.Unlock()
			t.fail(ErrClosed)
			t.conn.Close()
			return
		case *protocol.Abort:
			t.fail(fmt.Errorf("%w: session aborted: %s", ErrClosed, msg.Reason))
			t.conn.Close()
			return
		default:
			t.logger.Warn("ignoring unexpected frame", zap.Int("code", int(m.Code())))
		}
	}
}

func (t *WAMPTransport) resolve(id uint64, m protocol.Message) {
	v, ok := t.pending.LoadAndDelete(id)
	if !ok {
		t.logger.Debug("reply for unknown request", zap.Uint64("request", id))
		return
	}
	v.(*pendingRequest).ch <- m
}

// subscribed registers the handler before waking the subscriber, so an EVENT
// following SUBSCRIBED on the wire is never missed.
func (t *WAMPTransport) subscribed(msg *protocol.Subscribed) {
	v, ok := t.pending.LoadAndDelete(msg.Request)
	if !ok {
		t.logger.Debug("subscription acknowledged after caller gave up", zap.Uint64("subscription", msg.Subscription))
		go t.dropOrphan(msg.Subscription)
		return
	}
	p := v.(*pendingRequest)
	p.sub = &Subscription{ID: msg.Subscription, Topic: p.topic, handler: p.handler, owner: t}

	t.subMu.Lock()
	t.subs[msg.Subscription] = append(t.subs[msg.Subscription], p.sub)
	t.subMu.Unlock()

	p.ch <- msg
}

// dropOrphan unsubscribes a broker subscription nobody locally holds.
// It runs off recvLoop, which must stay free to read the UNSUBSCRIBED reply.
func (t *WAMPTransport) dropOrphan(id uint64) {
	t.subMu.Lock()
	held := len(t.subs[id]) > 0
	t.subMu.Unlock()
	if held {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), writeWait)
	defer cancel()
	_, err := t.request(ctx, nil, func(rid uint64) protocol.Message {
		return &protocol.Unsubscribe{Request: rid, Subscription: id}
	})
	if err != nil {
		t.logger.Debug("failed to drop orphan subscription", zap.Uint64("subscription", id), zap.Error(err))
	}
}

func (t *WAMPTransport) dispatch(msg *protocol.Event) {
	t.subMu.Lock()
	subs := append([]*Subscription(nil), t.subs[msg.Subscription]...)
	t.subMu.Unlock()

	for _, sub := range subs {
		if sub.handler == nil {
			continue
		}
		sub.handler(&message.Event{
			Topic:          sub.Topic,
			SubscriptionID: msg.Subscription,
			PublicationID:  msg.Publication,
			Details:        msg.Details,
			Kwargs:         msg.Kwargs,
		})
	}
}

// fail records the first terminal error and wakes every waiting request.
func (t *WAMPTransport) fail(err error) {
	t.closeOnce.Do(func() {
		t.errMu.Lock()
		t.err = err
		t.errMu.Unlock()
		close(t.done)
		t.pending.Clear()
	})
}

// Err returns the error that ended the session, or nil while it is usable.
func (t *WAMPTransport) Err() error {
	t.errMu.Lock()
	defer t.errMu.Unlock()
	return t.err
}

// Close says GOODBYE and closes the connection.
func (t *WAMPTransport) Close() error {
	if t.Err() == nil {
		t.sending.Lock()
		t.write(&protocol.Goodbye{Reason: protocol.ReasonCloseNormal})
		t.sending.Unlock()
		t.fail(ErrClosed)
	}
	return t.conn.Close()
}

// heartbeatLoop pings the router so idle sessions are not dropped by proxies
// and a dead peer is noticed on the next write.
func (t *WAMPTransport) heartbeatLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-t.done:
			return
		case <-ticker.C:
			if err := t.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				t.fail(fmt.Errorf("%w: heartbeat: %v", ErrClosed, err))
				return
			}
		}
	}
}

func (o Options) withDefaults() Options {
	if o.Realm == "" {
		o.Realm = protocol.DefaultRealm
	}
	if o.Codec == nil {
		o.Codec = codec.Default()
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o
}
