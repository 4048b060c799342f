// Package waapi binds Go functions to the remote procedures of the Wwise
// Authoring API.
//
// Every binding in the namespace packages (soundengine, core, core/audio, ...)
// is a one-line call to Call or Invoke:
//
//	info, err := core.GetInfo(ctx, cli)
//	err = soundengine.PostTrigger(ctx, cli, waapi.Args{"trigger": "Boss_Appears", "gameObject": 1})
//
// Passing a nil Caller makes the binding connect with the default settings
// for that single call. Arguments, options and results are forwarded
// untouched; errors are returned exactly as the handle produced them.
package waapi

import (
	"context"
	"io"
	"reflect"
	"sync"

	"waapi-go/client"
)

// Args are the keyword arguments of a WAAPI call.
type Args = map[string]any

// Options are the WAAPI call options, e.g. {"return": ["id", "name"]}.
type Options = map[string]any

// Result is the keyword result of a WAAPI call.
type Result = map[string]any

// Caller is a client handle able to run one WAAPI call. *client.Client
// implements it.
type Caller interface {
	Call(ctx context.Context, uri string, args map[string]any, options map[string]any) (map[string]any, error)
}

// Connector builds a client handle with no arguments.
type Connector func() (Caller, error)

var (
	connectorMu sync.RWMutex
	connector   Connector = connectDefault
)

func connectDefault() (Caller, error) {
	c, err := client.NewDefault()
	if err != nil {
		return nil, err
	}
	return c, nil
}

// SetDefaultConnector replaces the connector used when a binding gets a nil
// Caller. The returned func restores the previous connector.
func SetDefaultConnector(conn Connector) (restore func()) {
	connectorMu.Lock()
	prev := connector
	connector = conn
	connectorMu.Unlock()

	return func() {
		connectorMu.Lock()
		connector = prev
		connectorMu.Unlock()
	}
}

// Call runs uri once on c and returns its result unchanged.
// When c is nil, or a nil pointer such as a nil *client.Client, a default
// handle is built for this call and released after it. Building it is not
// bound by ctx; the default client limits its connect with WAAPI_TIMEOUT.
func Call(ctx context.Context, c Caller, uri string, args Args, opts Options) (Result, error) {
	if isNil(c) {
		connectorMu.RLock()
		conn := connector
		connectorMu.RUnlock()

		created, err := conn()
		if err != nil {
			return nil, err
		}
		if closer, ok := created.(io.Closer); ok {
			defer closer.Close()
		}
		c = created
	}
	if args == nil {
		args = Args{}
	}
	return c.Call(ctx, uri, args, opts)
}

func isNil(c Caller) bool {
	if c == nil {
		return true
	}
	v := reflect.ValueOf(c)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Func, reflect.Chan, reflect.Interface, reflect.Slice:
		return v.IsNil()
	}
	return false
}

// Invoke is Call for procedures whose result is not needed.
func Invoke(ctx context.Context, c Caller, uri string, args Args, opts Options) error {
	_, err := Call(ctx, c, uri, args, opts)
	return err
}
