// Package transport binds the ak.wwise.core.transport procedures: the
// playback transports of the authoring application, not network transports.
package transport

import (
	"context"

	"waapi-go/waapi"
)

const (
	TopicStateChanged = "ak.wwise.core.transport.stateChanged"
)

// Operations describes every procedure bound by this package.
var Operations = []waapi.Operation{
	{URI: "ak.wwise.core.transport.create", Params: []waapi.Param{waapi.P("object", waapi.KindAny), waapi.P("gameObject", waapi.KindInteger)}, Returns: true},
	{URI: "ak.wwise.core.transport.destroy", Params: []waapi.Param{waapi.P("transport", waapi.KindInteger)}},
	{URI: "ak.wwise.core.transport.executeAction", Params: []waapi.Param{waapi.P("action", waapi.KindString), waapi.P("transport", waapi.KindInteger)}},
	{URI: "ak.wwise.core.transport.getList", Returns: true},
	{URI: "ak.wwise.core.transport.getState", Params: []waapi.Param{waapi.P("transport", waapi.KindInteger)}, Returns: true},
	{URI: "ak.wwise.core.transport.prepare", Params: []waapi.Param{waapi.P("object", waapi.KindAny)}},
	{URI: "ak.wwise.core.transport.useOriginals", Params: []waapi.Param{waapi.P("usingOriginals", waapi.KindBoolean)}},
}

// Create creates a transport for an object. The result holds its id.
func Create(ctx context.Context, c waapi.Caller, args waapi.Args) (waapi.Result, error) {
	return waapi.Call(ctx, c, "ak.wwise.core.transport.create", args, nil)
}

func Destroy(ctx context.Context, c waapi.Caller, args waapi.Args) error {
	return waapi.Invoke(ctx, c, "ak.wwise.core.transport.destroy", args, nil)
}

// ExecuteAction plays, stops, pauses or toggles a transport.
func ExecuteAction(ctx context.Context, c waapi.Caller, args waapi.Args) error {
	return waapi.Invoke(ctx, c, "ak.wwise.core.transport.executeAction", args, nil)
}

func GetList(ctx context.Context, c waapi.Caller) (waapi.Result, error) {
	return waapi.Call(ctx, c, "ak.wwise.core.transport.getList", nil, nil)
}

func GetState(ctx context.Context, c waapi.Caller, args waapi.Args) (waapi.Result, error) {
	return waapi.Call(ctx, c, "ak.wwise.core.transport.getState", args, nil)
}

func Prepare(ctx context.Context, c waapi.Caller, args waapi.Args) error {
	return waapi.Invoke(ctx, c, "ak.wwise.core.transport.prepare", args, nil)
}

func UseOriginals(ctx context.Context, c waapi.Caller, args waapi.Args) error {
	return waapi.Invoke(ctx, c, "ak.wwise.core.transport.useOriginals", args, nil)
}
