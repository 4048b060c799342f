// Package profiler binds the ak.wwise.core.profiler procedures.
//
// Most getters take a "time" argument: a cursor name ("user" or "capture")
// or a capture time in milliseconds.
package profiler

import (
	"context"

	"waapi-go/waapi"
)

// Topics published while a capture is running.
const (
	TopicCaptureLogItemAdded    = "ak.wwise.core.profiler.captureLog.itemAdded"
	TopicGameObjectRegistered   = "ak.wwise.core.profiler.gameObjectRegistered"
	TopicGameObjectUnregistered = "ak.wwise.core.profiler.gameObjectUnregistered"
	TopicGameObjectReset        = "ak.wwise.core.profiler.gameObjectReset"
	TopicStateChanged           = "ak.wwise.core.profiler.stateChanged"
	TopicSwitchChanged          = "ak.wwise.core.profiler.switchChanged"
)

// Operations describes every procedure bound by this package.
var Operations = []waapi.Operation{
	{URI: "ak.wwise.core.profiler.enableProfilerData", Params: []waapi.Param{waapi.P("dataTypes", waapi.KindArray)}},
	{URI: "ak.wwise.core.profiler.getAudioObjects", Params: []waapi.Param{waapi.P("time", waapi.KindAny)}, Returns: true},
	{URI: "ak.wwise.core.profiler.getBusses", Params: []waapi.Param{waapi.P("time", waapi.KindAny)}, Returns: true},
	{URI: "ak.wwise.core.profiler.getCpuUsage", Params: []waapi.Param{waapi.P("time", waapi.KindAny)}, Returns: true},
	{URI: "ak.wwise.core.profiler.getCursorTime", Params: []waapi.Param{waapi.P("cursor", waapi.KindString)}, Returns: true},
	{URI: "ak.wwise.core.profiler.getGameObjects", Params: []waapi.Param{waapi.P("time", waapi.KindAny)}, Returns: true},
	{URI: "ak.wwise.core.profiler.getLoadedMedia", Params: []waapi.Param{waapi.P("time", waapi.KindAny)}, Returns: true},
	{URI: "ak.wwise.core.profiler.getMeters", Params: []waapi.Param{waapi.P("time", waapi.KindAny)}, Returns: true},
	{URI: "ak.wwise.core.profiler.getPerformanceMonitor", Params: []waapi.Param{waapi.P("time", waapi.KindAny)}, Returns: true},
	{URI: "ak.wwise.core.profiler.getRTPCs", Params: []waapi.Param{waapi.P("time", waapi.KindAny)}, Returns: true},
	{URI: "ak.wwise.core.profiler.getStreamedMedia", Params: []waapi.Param{waapi.P("time", waapi.KindAny)}, Returns: true},
	{URI: "ak.wwise.core.profiler.getVoiceContributions", Params: []waapi.Param{waapi.P("time", waapi.KindAny), waapi.P("voicePipelineID", waapi.KindInteger), waapi.P("busPipelineID", waapi.KindInteger)}, Returns: true},
	{URI: "ak.wwise.core.profiler.getVoices", Params: []waapi.Param{waapi.P("time", waapi.KindAny), waapi.P("voicePipelineID", waapi.KindInteger)}, Returns: true},
	{URI: "ak.wwise.core.profiler.registerMeter", Params: []waapi.Param{waapi.P("object", waapi.KindAny)}},
	{URI: "ak.wwise.core.profiler.unregisterMeter", Params: []waapi.Param{waapi.P("object", waapi.KindAny)}},
	{URI: "ak.wwise.core.profiler.saveCapture", Params: []waapi.Param{waapi.P("file", waapi.KindString)}},
	{URI: "ak.wwise.core.profiler.startCapture", Returns: true},
	{URI: "ak.wwise.core.profiler.stopCapture", Returns: true},
}

// EnableProfilerData selects the data the profiler collects during a capture.
func EnableProfilerData(ctx context.Context, c waapi.Caller, args waapi.Args) error {
	return waapi.Invoke(ctx, c, "ak.wwise.core.profiler.enableProfilerData", args, nil)
}

func GetAudioObjects(ctx context.Context, c waapi.Caller, args waapi.Args) (waapi.Result, error) {
	return waapi.Call(ctx, c, "ak.wwise.core.profiler.getAudioObjects", args, nil)
}

func GetBusses(ctx context.Context, c waapi.Caller, args waapi.Args) (waapi.Result, error) {
	return waapi.Call(ctx, c, "ak.wwise.core.profiler.getBusses", args, nil)
}

// GetCPUUsage returns the CPU usage of the sound engine, per element.
func GetCPUUsage(ctx context.Context, c waapi.Caller, args waapi.Args) (waapi.Result, error) {
	return waapi.Call(ctx, c, "ak.wwise.core.profiler.getCpuUsage", args, nil)
}

func GetCursorTime(ctx context.Context, c waapi.Caller, args waapi.Args) (waapi.Result, error) {
	return waapi.Call(ctx, c, "ak.wwise.core.profiler.getCursorTime", args, nil)
}

func GetGameObjects(ctx context.Context, c waapi.Caller, args waapi.Args) (waapi.Result, error) {
	return waapi.Call(ctx, c, "ak.wwise.core.profiler.getGameObjects", args, nil)
}

func GetLoadedMedia(ctx context.Context, c waapi.Caller, args waapi.Args) (waapi.Result, error) {
	return waapi.Call(ctx, c, "ak.wwise.core.profiler.getLoadedMedia", args, nil)
}

// GetMeters returns the meter values of the objects registered with
// RegisterMeter.
func GetMeters(ctx context.Context, c waapi.Caller, args waapi.Args) (waapi.Result, error) {
	return waapi.Call(ctx, c, "ak.wwise.core.profiler.getMeters", args, nil)
}

func GetPerformanceMonitor(ctx context.Context, c waapi.Caller, args waapi.Args) (waapi.Result, error) {
	return waapi.Call(ctx, c, "ak.wwise.core.profiler.getPerformanceMonitor", args, nil)
}

func GetRTPCs(ctx context.Context, c waapi.Caller, args waapi.Args) (waapi.Result, error) {
	return waapi.Call(ctx, c, "ak.wwise.core.profiler.getRTPCs", args, nil)
}

func GetStreamedMedia(ctx context.Context, c waapi.Caller, args waapi.Args) (waapi.Result, error) {
	return waapi.Call(ctx, c, "ak.wwise.core.profiler.getStreamedMedia", args, nil)
}

// GetVoiceContributions returns every parameter contribution applied to a
// voice, from the voice itself up to the given bus.
func GetVoiceContributions(ctx context.Context, c waapi.Caller, args waapi.Args) (waapi.Result, error) {
	return waapi.Call(ctx, c, "ak.wwise.core.profiler.getVoiceContributions", args, nil)
}

func GetVoices(ctx context.Context, c waapi.Caller, args waapi.Args) (waapi.Result, error) {
	return waapi.Call(ctx, c, "ak.wwise.core.profiler.getVoices", args, nil)
}

func RegisterMeter(ctx context.Context, c waapi.Caller, args waapi.Args) error {
	return waapi.Invoke(ctx, c, "ak.wwise.core.profiler.registerMeter", args, nil)
}

func UnregisterMeter(ctx context.Context, c waapi.Caller, args waapi.Args) error {
	return waapi.Invoke(ctx, c, "ak.wwise.core.profiler.unregisterMeter", args, nil)
}

func SaveCapture(ctx context.Context, c waapi.Caller, args waapi.Args) error {
	return waapi.Invoke(ctx, c, "ak.wwise.core.profiler.saveCapture", args, nil)
}

// StartCapture starts profiling. The result holds the capture start time.
func StartCapture(ctx context.Context, c waapi.Caller) (waapi.Result, error) {
	return waapi.Call(ctx, c, "ak.wwise.core.profiler.startCapture", nil, nil)
}

func StopCapture(ctx context.Context, c waapi.Caller) (waapi.Result, error) {
	return waapi.Call(ctx, c, "ak.wwise.core.profiler.stopCapture", nil, nil)
}
