// Package sourcecontrol binds the ak.wwise.core.sourceControl procedures,
// which go through the source control plug-in configured for the project.
package sourcecontrol

import (
	"context"

	"waapi-go/waapi"
)

// Operations describes every procedure bound by this package.
var Operations = []waapi.Operation{
	{URI: "ak.wwise.core.sourceControl.add", Params: []waapi.Param{waapi.P("files", waapi.KindArray)}},
	{URI: "ak.wwise.core.sourceControl.checkOut", Params: []waapi.Param{waapi.P("files", waapi.KindArray)}},
	{URI: "ak.wwise.core.sourceControl.commit", Params: []waapi.Param{waapi.P("files", waapi.KindArray), waapi.P("message", waapi.KindString)}},
	{URI: "ak.wwise.core.sourceControl.delete", Params: []waapi.Param{waapi.P("files", waapi.KindArray)}},
	{URI: "ak.wwise.core.sourceControl.getSourceFiles", Returns: true},
	{URI: "ak.wwise.core.sourceControl.getStatus", Params: []waapi.Param{waapi.P("files", waapi.KindArray)}, Returns: true},
	{URI: "ak.wwise.core.sourceControl.move", Params: []waapi.Param{waapi.P("files", waapi.KindArray), waapi.P("newFiles", waapi.KindArray)}},
	{URI: "ak.wwise.core.sourceControl.revert", Params: []waapi.Param{waapi.P("files", waapi.KindArray)}},
	{URI: "ak.wwise.core.sourceControl.setProvider", Params: []waapi.Param{waapi.P("provider", waapi.KindString)}},
}

func Add(ctx context.Context, c waapi.Caller, args waapi.Args) error {
	return waapi.Invoke(ctx, c, "ak.wwise.core.sourceControl.add", args, nil)
}

func CheckOut(ctx context.Context, c waapi.Caller, args waapi.Args) error {
	return waapi.Invoke(ctx, c, "ak.wwise.core.sourceControl.checkOut", args, nil)
}

func Commit(ctx context.Context, c waapi.Caller, args waapi.Args) error {
	return waapi.Invoke(ctx, c, "ak.wwise.core.sourceControl.commit", args, nil)
}

func Delete(ctx context.Context, c waapi.Caller, args waapi.Args) error {
	return waapi.Invoke(ctx, c, "ak.wwise.core.sourceControl.delete", args, nil)
}

// GetSourceFiles lists the files under source control for the project.
func GetSourceFiles(ctx context.Context, c waapi.Caller) (waapi.Result, error) {
	return waapi.Call(ctx, c, "ak.wwise.core.sourceControl.getSourceFiles", nil, nil)
}

func GetStatus(ctx context.Context, c waapi.Caller, args waapi.Args) (waapi.Result, error) {
	return waapi.Call(ctx, c, "ak.wwise.core.sourceControl.getStatus", args, nil)
}

func Move(ctx context.Context, c waapi.Caller, args waapi.Args) error {
	return waapi.Invoke(ctx, c, "ak.wwise.core.sourceControl.move", args, nil)
}

func Revert(ctx context.Context, c waapi.Caller, args waapi.Args) error {
	return waapi.Invoke(ctx, c, "ak.wwise.core.sourceControl.revert", args, nil)
}

// SetProvider changes the source control plug-in used by the project.
func SetProvider(ctx context.Context, c waapi.Caller, args waapi.Args) error {
	return waapi.Invoke(ctx, c, "ak.wwise.core.sourceControl.setProvider", args, nil)
}
