// Package debug binds the ak.wwise.debug procedures. They are meant for
// testing the authoring application itself.
package debug

import (
	"context"

	"waapi-go/waapi"
)

const (
	TopicAssertFailed = "ak.wwise.debug.assertFailed"
)

// Operations describes every procedure bound by this package.
var Operations = []waapi.Operation{
	{URI: "ak.wwise.debug.enableAsserts", Params: []waapi.Param{waapi.P("enable", waapi.KindBoolean)}},
	{URI: "ak.wwise.debug.enableAutomationMode", Params: []waapi.Param{waapi.P("enable", waapi.KindBoolean)}},
	{URI: "ak.wwise.debug.generateToneWAV", Params: []waapi.Param{waapi.P("path", waapi.KindString), waapi.P("bitDepth", waapi.KindInteger), waapi.P("sampleRate", waapi.KindInteger), waapi.P("sustainTime", waapi.KindNumber), waapi.P("sustainLevel", waapi.KindNumber), waapi.P("attackTime", waapi.KindNumber), waapi.P("releaseTime", waapi.KindNumber), waapi.P("waveform", waapi.KindString), waapi.P("frequency", waapi.KindNumber)}},
	{URI: "ak.wwise.debug.getWalTree", Returns: true},
	{URI: "ak.wwise.debug.restartWaapiServers"},
	{URI: "ak.wwise.debug.testAssert"},
	{URI: "ak.wwise.debug.testCrash"},
}

func EnableAsserts(ctx context.Context, c waapi.Caller, args waapi.Args) error {
	return waapi.Invoke(ctx, c, "ak.wwise.debug.enableAsserts", args, nil)
}

// EnableAutomationMode suppresses dialogs that would block unattended runs.
func EnableAutomationMode(ctx context.Context, c waapi.Caller, args waapi.Args) error {
	return waapi.Invoke(ctx, c, "ak.wwise.debug.enableAutomationMode", args, nil)
}

// GenerateToneWAV writes a test tone to a WAV file.
func GenerateToneWAV(ctx context.Context, c waapi.Caller, args waapi.Args) error {
	return waapi.Invoke(ctx, c, "ak.wwise.debug.generateToneWAV", args, nil)
}

func GetWalTree(ctx context.Context, c waapi.Caller) (waapi.Result, error) {
	return waapi.Call(ctx, c, "ak.wwise.debug.getWalTree", nil, nil)
}

func RestartWaapiServers(ctx context.Context, c waapi.Caller) error {
	return waapi.Invoke(ctx, c, "ak.wwise.debug.restartWaapiServers", nil, nil)
}

func TestAssert(ctx context.Context, c waapi.Caller) error {
	return waapi.Invoke(ctx, c, "ak.wwise.debug.testAssert", nil, nil)
}

// TestCrash crashes the authoring application.
func TestCrash(ctx context.Context, c waapi.Caller) error {
	return waapi.Invoke(ctx, c, "ak.wwise.debug.testCrash", nil, nil)
}
