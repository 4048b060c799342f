// Package core binds the top-level ak.wwise.core procedures. The
// sub-namespaces live in the packages below this one (audio, profiler,
// soundbank, sourcecontrol, switchcontainer, transport and undo).
package core

import (
	"context"

	"waapi-go/waapi"
)

// Topics published on project lifecycle changes.
const (
	TopicProjectLoaded     = "ak.wwise.core.project.loaded"
	TopicProjectPreClosed  = "ak.wwise.core.project.preClosed"
	TopicProjectPostClosed = "ak.wwise.core.project.postClosed"
	TopicProjectSaved      = "ak.wwise.core.project.saved"
)

// Operations describes every procedure bound by this package.
var Operations = []waapi.Operation{
	{URI: "ak.wwise.core.getInfo", Returns: true},
	{URI: "ak.wwise.core.getProjectInfo", Returns: true},
	{URI: "ak.wwise.core.ping", Returns: true},
	{URI: "ak.wwise.core.executeLuaScript", Params: []waapi.Param{waapi.P("luaScript", waapi.KindString), waapi.P("luaPaths", waapi.KindArray), waapi.P("requires", waapi.KindArray), waapi.P("doFiles", waapi.KindArray)}, Returns: true},
}

// GetInfo returns global information about the authoring application:
// version, platform, process id and the WAAPI server configuration.
func GetInfo(ctx context.Context, c waapi.Caller) (waapi.Result, error) {
	return waapi.Call(ctx, c, "ak.wwise.core.getInfo", nil, nil)
}

// GetProjectInfo returns the open project's name, path, platforms and languages.
func GetProjectInfo(ctx context.Context, c waapi.Caller) (waapi.Result, error) {
	return waapi.Call(ctx, c, "ak.wwise.core.getProjectInfo", nil, nil)
}

func Ping(ctx context.Context, c waapi.Caller) (waapi.Result, error) {
	return waapi.Call(ctx, c, "ak.wwise.core.ping", nil, nil)
}

// ExecuteLuaScript runs a Lua script inside the authoring application and
// returns what the script returned.
func ExecuteLuaScript(ctx context.Context, c waapi.Caller, args waapi.Args) (waapi.Result, error) {
	return waapi.Call(ctx, c, "ak.wwise.core.executeLuaScript", args, nil)
}
