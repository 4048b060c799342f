// Package undo binds the ak.wwise.core.undo procedures.
//
// Calls between BeginGroup and EndGroup are undone as one step, so they must
// all reach the same authoring instance.
package undo

import (
	"context"

	"waapi-go/waapi"
)

// Operations describes every procedure bound by this package.
var Operations = []waapi.Operation{
	{URI: "ak.wwise.core.undo.beginGroup"},
	{URI: "ak.wwise.core.undo.cancelGroup"},
	{URI: "ak.wwise.core.undo.endGroup", Params: []waapi.Param{waapi.P("displayName", waapi.KindString)}},
	{URI: "ak.wwise.core.undo.redo"},
	{URI: "ak.wwise.core.undo.undo"},
}

func BeginGroup(ctx context.Context, c waapi.Caller) error {
	return waapi.Invoke(ctx, c, "ak.wwise.core.undo.beginGroup", nil, nil)
}

// CancelGroup closes the current group and undoes what it recorded.
func CancelGroup(ctx context.Context, c waapi.Caller) error {
	return waapi.Invoke(ctx, c, "ak.wwise.core.undo.cancelGroup", nil, nil)
}

// EndGroup closes the current group under the name shown in the Edit menu.
func EndGroup(ctx context.Context, c waapi.Caller, args waapi.Args) error {
	return waapi.Invoke(ctx, c, "ak.wwise.core.undo.endGroup", args, nil)
}

func Redo(ctx context.Context, c waapi.Caller) error {
	return waapi.Invoke(ctx, c, "ak.wwise.core.undo.redo", nil, nil)
}

func Undo(ctx context.Context, c waapi.Caller) error {
	return waapi.Invoke(ctx, c, "ak.wwise.core.undo.undo", nil, nil)
}
