// Package ui binds the ak.wwise.ui procedures, which act on the authoring
// application's user interface.
package ui

import (
	"context"

	"waapi-go/waapi"
)

const (
	TopicSelectionChanged = "ak.wwise.ui.selectionChanged"
	// Published when a registered custom command runs.
	TopicCommandExecuted = "ak.wwise.ui.commands.executed"
)

// Operations describes every procedure bound by this package.
var Operations = []waapi.Operation{
	{URI: "ak.wwise.ui.bringToForeground"},
	{URI: "ak.wwise.ui.captureScreen", Params: []waapi.Param{waapi.P("viewName", waapi.KindString), waapi.P("viewSyncGroup", waapi.KindString), waapi.P("rect", waapi.KindObject)}, Returns: true},
	{URI: "ak.wwise.ui.getSelectedFiles", Returns: true},
	{URI: "ak.wwise.ui.getSelectedObjects", Returns: true},
	{URI: "ak.wwise.ui.commands.execute", Params: []waapi.Param{waapi.P("command", waapi.KindString), waapi.P("objects", waapi.KindArray), waapi.P("platforms", waapi.KindArray), waapi.P("value", waapi.KindAny)}},
	{URI: "ak.wwise.ui.commands.getCommands", Returns: true},
	{URI: "ak.wwise.ui.commands.register", Params: []waapi.Param{waapi.P("commands", waapi.KindArray)}},
	{URI: "ak.wwise.ui.commands.unregister", Params: []waapi.Param{waapi.P("commands", waapi.KindArray)}},
	{URI: "ak.wwise.ui.project.open", Params: []waapi.Param{waapi.P("path", waapi.KindString), waapi.P("onUpgrade", waapi.KindString), waapi.P("bypassSave", waapi.KindBoolean)}},
	{URI: "ak.wwise.ui.project.close", Params: []waapi.Param{waapi.P("bypassSave", waapi.KindBoolean)}},
}

func BringToForeground(ctx context.Context, c waapi.Caller) error {
	return waapi.Invoke(ctx, c, "ak.wwise.ui.bringToForeground", nil, nil)
}

// CaptureScreen captures part of the main window. The result holds the
// image as base64 PNG.
func CaptureScreen(ctx context.Context, c waapi.Caller, args waapi.Args) (waapi.Result, error) {
	return waapi.Call(ctx, c, "ak.wwise.ui.captureScreen", args, nil)
}

func GetSelectedFiles(ctx context.Context, c waapi.Caller) (waapi.Result, error) {
	return waapi.Call(ctx, c, "ak.wwise.ui.getSelectedFiles", nil, nil)
}

// GetSelectedObjects returns the objects selected in the focused view.
// opts["return"] lists the properties to return for each object.
func GetSelectedObjects(ctx context.Context, c waapi.Caller, opts waapi.Options) (waapi.Result, error) {
	return waapi.Call(ctx, c, "ak.wwise.ui.getSelectedObjects", nil, opts)
}

func ExecuteCommand(ctx context.Context, c waapi.Caller, args waapi.Args) error {
	return waapi.Invoke(ctx, c, "ak.wwise.ui.commands.execute", args, nil)
}

func GetCommands(ctx context.Context, c waapi.Caller) (waapi.Result, error) {
	return waapi.Call(ctx, c, "ak.wwise.ui.commands.getCommands", nil, nil)
}

// RegisterCommands adds custom commands to the authoring menus.
func RegisterCommands(ctx context.Context, c waapi.Caller, args waapi.Args) error {
	return waapi.Invoke(ctx, c, "ak.wwise.ui.commands.register", args, nil)
}

func UnregisterCommands(ctx context.Context, c waapi.Caller, args waapi.Args) error {
	return waapi.Invoke(ctx, c, "ak.wwise.ui.commands.unregister", args, nil)
}

func OpenProject(ctx context.Context, c waapi.Caller, args waapi.Args) error {
	return waapi.Invoke(ctx, c, "ak.wwise.ui.project.open", args, nil)
}

func CloseProject(ctx context.Context, c waapi.Caller, args waapi.Args) error {
	return waapi.Invoke(ctx, c, "ak.wwise.ui.project.close", args, nil)
}
