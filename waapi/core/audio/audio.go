// Package audio binds the ak.wwise.core.audio procedures: importing and
// converting media, and mute/solo of the authoring monitor.
package audio

import (
	"context"

	"waapi-go/waapi"
)

const (
	TopicImported = "ak.wwise.core.audio.imported"
)

// Operations describes every procedure bound by this package.
var Operations = []waapi.Operation{
	{URI: "ak.wwise.core.audio.convert", Params: []waapi.Param{waapi.P("objects", waapi.KindArray), waapi.P("platforms", waapi.KindArray), waapi.P("languages", waapi.KindArray)}},
	{URI: "ak.wwise.core.audio.import", Params: []waapi.Param{waapi.P("importOperation", waapi.KindString), waapi.P("default", waapi.KindObject), waapi.P("imports", waapi.KindArray), waapi.P("autoAddToSourceControl", waapi.KindBoolean)}, Returns: true},
	{URI: "ak.wwise.core.audio.importTabDelimited", Params: []waapi.Param{waapi.P("importLanguage", waapi.KindString), waapi.P("importOperation", waapi.KindString), waapi.P("importFile", waapi.KindString), waapi.P("importLocation", waapi.KindAny), waapi.P("autoAddToSourceControl", waapi.KindBoolean)}, Returns: true},
	{URI: "ak.wwise.core.audio.mute", Params: []waapi.Param{waapi.P("object", waapi.KindAny), waapi.P("value", waapi.KindBoolean)}},
	{URI: "ak.wwise.core.audio.resetMute"},
	{URI: "ak.wwise.core.audio.resetSolo"},
	{URI: "ak.wwise.core.audio.setConversionPlugin", Params: []waapi.Param{waapi.P("conversion", waapi.KindAny), waapi.P("plugin", waapi.KindInteger), waapi.P("platform", waapi.KindAny)}},
	{URI: "ak.wwise.core.audio.solo", Params: []waapi.Param{waapi.P("object", waapi.KindAny), waapi.P("value", waapi.KindBoolean)}},
}

// Convert creates the converted media files of the given objects.
func Convert(ctx context.Context, c waapi.Caller, args waapi.Args) error {
	return waapi.Invoke(ctx, c, "ak.wwise.core.audio.convert", args, nil)
}

// Import creates objects from audio files. The result lists the objects
// created or updated.
func Import(ctx context.Context, c waapi.Caller, args waapi.Args) (waapi.Result, error) {
	return waapi.Call(ctx, c, "ak.wwise.core.audio.import", args, nil)
}

// ImportTabDelimited imports audio files listed in a tab-delimited file.
func ImportTabDelimited(ctx context.Context, c waapi.Caller, args waapi.Args) (waapi.Result, error) {
	return waapi.Call(ctx, c, "ak.wwise.core.audio.importTabDelimited", args, nil)
}

func Mute(ctx context.Context, c waapi.Caller, args waapi.Args) error {
	return waapi.Invoke(ctx, c, "ak.wwise.core.audio.mute", args, nil)
}

func ResetMute(ctx context.Context, c waapi.Caller) error {
	return waapi.Invoke(ctx, c, "ak.wwise.core.audio.resetMute", nil, nil)
}

func ResetSolo(ctx context.Context, c waapi.Caller) error {
	return waapi.Invoke(ctx, c, "ak.wwise.core.audio.resetSolo", nil, nil)
}

func SetConversionPlugin(ctx context.Context, c waapi.Caller, args waapi.Args) error {
	return waapi.Invoke(ctx, c, "ak.wwise.core.audio.setConversionPlugin", args, nil)
}

func Solo(ctx context.Context, c waapi.Caller, args waapi.Args) error {
	return waapi.Invoke(ctx, c, "ak.wwise.core.audio.solo", args, nil)
}
