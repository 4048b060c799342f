// Package console binds the procedures only served by WwiseConsole, the
// command-line host of the authoring application.
package console

import (
	"context"

	"waapi-go/waapi"
)

// Operations describes every procedure bound by this package.
var Operations = []waapi.Operation{
	{URI: "ak.wwise.console.project.create", Params: []waapi.Param{waapi.P("path", waapi.KindString), waapi.P("platforms", waapi.KindArray), waapi.P("languages", waapi.KindArray)}},
	{URI: "ak.wwise.console.project.open", Params: []waapi.Param{waapi.P("file", waapi.KindString), waapi.P("onUpgrade", waapi.KindString)}},
	{URI: "ak.wwise.console.project.close"},
}

// CreateProject creates, saves and opens a new empty project.
func CreateProject(ctx context.Context, c waapi.Caller, args waapi.Args) error {
	return waapi.Invoke(ctx, c, "ak.wwise.console.project.create", args, nil)
}

func OpenProject(ctx context.Context, c waapi.Caller, args waapi.Args) error {
	return waapi.Invoke(ctx, c, "ak.wwise.console.project.open", args, nil)
}

// CloseProject closes the project without saving it.
func CloseProject(ctx context.Context, c waapi.Caller) error {
	return waapi.Invoke(ctx, c, "ak.wwise.console.project.close", nil, nil)
}
