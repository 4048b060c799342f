// Package soundengine binds the ak.soundengine procedures, which drive the
// sound engine of the authoring application (or of a connected game) the
// same way the game's runtime API does.
package soundengine

import (
	"context"

	"waapi-go/waapi"
)

// Operations describes every procedure bound by this package.
var Operations = []waapi.Operation{
	{URI: "ak.soundengine.executeActionOnEvent", Params: []waapi.Param{waapi.P("event", waapi.KindAny), waapi.P("actionType", waapi.KindInteger), waapi.P("gameObject", waapi.KindInteger), waapi.P("transitionDuration", waapi.KindInteger), waapi.P("fadeCurve", waapi.KindInteger)}},
	{URI: "ak.soundengine.getState", Params: []waapi.Param{waapi.P("stateGroup", waapi.KindAny)}, Returns: true},
	{URI: "ak.soundengine.getSwitch", Params: []waapi.Param{waapi.P("switchGroup", waapi.KindAny), waapi.P("gameObject", waapi.KindInteger)}, Returns: true},
	{URI: "ak.soundengine.loadBank", Params: []waapi.Param{waapi.P("soundBank", waapi.KindAny)}},
	{URI: "ak.soundengine.postEvent", Params: []waapi.Param{waapi.P("event", waapi.KindAny), waapi.P("gameObject", waapi.KindInteger)}, Returns: true},
	{URI: "ak.soundengine.postMsgMonitor", Params: []waapi.Param{waapi.P("message", waapi.KindString)}},
	{URI: "ak.soundengine.postTrigger", Params: []waapi.Param{waapi.P("trigger", waapi.KindAny), waapi.P("gameObject", waapi.KindInteger)}},
	{URI: "ak.soundengine.registerGameObj", Params: []waapi.Param{waapi.P("gameObject", waapi.KindInteger), waapi.P("name", waapi.KindString)}},
	{URI: "ak.soundengine.resetRTPCValue", Params: []waapi.Param{waapi.P("rtpc", waapi.KindAny), waapi.P("gameObject", waapi.KindInteger)}},
	{URI: "ak.soundengine.seekOnEvent", Params: []waapi.Param{waapi.P("event", waapi.KindAny), waapi.P("gameObject", waapi.KindInteger), waapi.P("position", waapi.KindInteger), waapi.P("seekToNearestMarker", waapi.KindBoolean)}},
	{URI: "ak.soundengine.setDefaultListeners", Params: []waapi.Param{waapi.P("listeners", waapi.KindArray)}},
	{URI: "ak.soundengine.setGameObjectAuxSendValues", Params: []waapi.Param{waapi.P("gameObject", waapi.KindInteger), waapi.P("auxSendValues", waapi.KindArray)}},
	{URI: "ak.soundengine.setGameObjectOutputBusVolume", Params: []waapi.Param{waapi.P("emitter", waapi.KindInteger), waapi.P("listener", waapi.KindInteger), waapi.P("controlValue", waapi.KindNumber)}},
	{URI: "ak.soundengine.setListenerSpatialization", Params: []waapi.Param{waapi.P("listener", waapi.KindInteger), waapi.P("spatialized", waapi.KindBoolean), waapi.P("channelConfig", waapi.KindInteger), waapi.P("volumeOffsets", waapi.KindArray)}},
	{URI: "ak.soundengine.setListeners", Params: []waapi.Param{waapi.P("emitter", waapi.KindInteger), waapi.P("listeners", waapi.KindArray)}},
	{URI: "ak.soundengine.setMultiplePositions", Params: []waapi.Param{waapi.P("gameObject", waapi.KindInteger), waapi.P("positions", waapi.KindArray), waapi.P("multiPositionType", waapi.KindInteger)}},
	{URI: "ak.soundengine.setObjectObstructionAndOcclusion", Params: []waapi.Param{waapi.P("emitter", waapi.KindInteger), waapi.P("listener", waapi.KindInteger), waapi.P("obstructionLevel", waapi.KindNumber), waapi.P("occlusionLevel", waapi.KindNumber)}},
	{URI: "ak.soundengine.setPosition", Params: []waapi.Param{waapi.P("gameObject", waapi.KindInteger), waapi.P("position", waapi.KindObject)}},
	{URI: "ak.soundengine.setRTPCValue", Params: []waapi.Param{waapi.P("rtpc", waapi.KindAny), waapi.P("value", waapi.KindNumber), waapi.P("gameObject", waapi.KindInteger)}},
	{URI: "ak.soundengine.setScalingFactor", Params: []waapi.Param{waapi.P("gameObject", waapi.KindInteger), waapi.P("attenuationScalingFactor", waapi.KindNumber)}},
	{URI: "ak.soundengine.setState", Params: []waapi.Param{waapi.P("stateGroup", waapi.KindAny), waapi.P("state", waapi.KindAny)}},
	{URI: "ak.soundengine.setSwitch", Params: []waapi.Param{waapi.P("switchGroup", waapi.KindAny), waapi.P("switchState", waapi.KindAny), waapi.P("gameObject", waapi.KindInteger)}},
	{URI: "ak.soundengine.stopAll", Params: []waapi.Param{waapi.P("gameObject", waapi.KindInteger)}},
	{URI: "ak.soundengine.stopPlayingID", Params: []waapi.Param{waapi.P("playingId", waapi.KindInteger), waapi.P("transitionDuration", waapi.KindInteger), waapi.P("fadeCurve", waapi.KindInteger)}},
	{URI: "ak.soundengine.unloadBank", Params: []waapi.Param{waapi.P("soundBank", waapi.KindAny)}},
	{URI: "ak.soundengine.unregisterGameObj", Params: []waapi.Param{waapi.P("gameObject", waapi.KindInteger)}},
}

// ExecuteActionOnEvent executes an action (stop, pause, resume, break or
// release envelope) on all nodes referenced by an event.
func ExecuteActionOnEvent(ctx context.Context, c waapi.Caller, args waapi.Args) error {
	return waapi.Invoke(ctx, c, "ak.soundengine.executeActionOnEvent", args, nil)
}

// GetState returns the current state of a state group.
func GetState(ctx context.Context, c waapi.Caller, args waapi.Args) (waapi.Result, error) {
	return waapi.Call(ctx, c, "ak.soundengine.getState", args, nil)
}

// GetSwitch returns the current switch of a switch group for a game object.
func GetSwitch(ctx context.Context, c waapi.Caller, args waapi.Args) (waapi.Result, error) {
	return waapi.Call(ctx, c, "ak.soundengine.getSwitch", args, nil)
}

func LoadBank(ctx context.Context, c waapi.Caller, args waapi.Args) error {
	return waapi.Invoke(ctx, c, "ak.soundengine.loadBank", args, nil)
}

// PostEvent posts an event on a game object. The result holds the playing id.
func PostEvent(ctx context.Context, c waapi.Caller, args waapi.Args) (waapi.Result, error) {
	return waapi.Call(ctx, c, "ak.soundengine.postEvent", args, nil)
}

// PostMsgMonitor displays a message in the profiler's capture log.
func PostMsgMonitor(ctx context.Context, c waapi.Caller, args waapi.Args) error {
	return waapi.Invoke(ctx, c, "ak.soundengine.postMsgMonitor", args, nil)
}

func PostTrigger(ctx context.Context, c waapi.Caller, args waapi.Args) error {
	return waapi.Invoke(ctx, c, "ak.soundengine.postTrigger", args, nil)
}

// RegisterGameObj registers a game object. Game objects must be registered
// before events are posted on them.
func RegisterGameObj(ctx context.Context, c waapi.Caller, args waapi.Args) error {
	return waapi.Invoke(ctx, c, "ak.soundengine.registerGameObj", args, nil)
}

// ResetRTPCValue resets a game parameter to its default value.
func ResetRTPCValue(ctx context.Context, c waapi.Caller, args waapi.Args) error {
	return waapi.Invoke(ctx, c, "ak.soundengine.resetRTPCValue", args, nil)
}

// SeekOnEvent seeks inside all playing objects referenced by play actions of
// an event.
func SeekOnEvent(ctx context.Context, c waapi.Caller, args waapi.Args) error {
	return waapi.Invoke(ctx, c, "ak.soundengine.seekOnEvent", args, nil)
}

func SetDefaultListeners(ctx context.Context, c waapi.Caller, args waapi.Args) error {
	return waapi.Invoke(ctx, c, "ak.soundengine.setDefaultListeners", args, nil)
}

// SetGameObjectAuxSendValues sets the auxiliary busses a game object sends to.
func SetGameObjectAuxSendValues(ctx context.Context, c waapi.Caller, args waapi.Args) error {
	return waapi.Invoke(ctx, c, "ak.soundengine.setGameObjectAuxSendValues", args, nil)
}

func SetGameObjectOutputBusVolume(ctx context.Context, c waapi.Caller, args waapi.Args) error {
	return waapi.Invoke(ctx, c, "ak.soundengine.setGameObjectOutputBusVolume", args, nil)
}

func SetListenerSpatialization(ctx context.Context, c waapi.Caller, args waapi.Args) error {
	return waapi.Invoke(ctx, c, "ak.soundengine.setListenerSpatialization", args, nil)
}

// SetListeners sets which listeners an emitter game object is heard by.
func SetListeners(ctx context.Context, c waapi.Caller, args waapi.Args) error {
	return waapi.Invoke(ctx, c, "ak.soundengine.setListeners", args, nil)
}

func SetMultiplePositions(ctx context.Context, c waapi.Caller, args waapi.Args) error {
	return waapi.Invoke(ctx, c, "ak.soundengine.setMultiplePositions", args, nil)
}

func SetObjectObstructionAndOcclusion(ctx context.Context, c waapi.Caller, args waapi.Args) error {
	return waapi.Invoke(ctx, c, "ak.soundengine.setObjectObstructionAndOcclusion", args, nil)
}

// SetPosition sets the position and orientation of a game object.
func SetPosition(ctx context.Context, c waapi.Caller, args waapi.Args) error {
	return waapi.Invoke(ctx, c, "ak.soundengine.setPosition", args, nil)
}

// SetRTPCValue sets a game parameter globally, or on one game object when
// "gameObject" is given.
func SetRTPCValue(ctx context.Context, c waapi.Caller, args waapi.Args) error {
	return waapi.Invoke(ctx, c, "ak.soundengine.setRTPCValue", args, nil)
}

func SetScalingFactor(ctx context.Context, c waapi.Caller, args waapi.Args) error {
	return waapi.Invoke(ctx, c, "ak.soundengine.setScalingFactor", args, nil)
}

func SetState(ctx context.Context, c waapi.Caller, args waapi.Args) error {
	return waapi.Invoke(ctx, c, "ak.soundengine.setState", args, nil)
}

func SetSwitch(ctx context.Context, c waapi.Caller, args waapi.Args) error {
	return waapi.Invoke(ctx, c, "ak.soundengine.setSwitch", args, nil)
}

// StopAll stops every sound, or only those playing on "gameObject".
func StopAll(ctx context.Context, c waapi.Caller, args waapi.Args) error {
	return waapi.Invoke(ctx, c, "ak.soundengine.stopAll", args, nil)
}

func StopPlayingID(ctx context.Context, c waapi.Caller, args waapi.Args) error {
	return waapi.Invoke(ctx, c, "ak.soundengine.stopPlayingID", args, nil)
}

func UnloadBank(ctx context.Context, c waapi.Caller, args waapi.Args) error {
	return waapi.Invoke(ctx, c, "ak.soundengine.unloadBank", args, nil)
}

func UnregisterGameObj(ctx context.Context, c waapi.Caller, args waapi.Args) error {
	return waapi.Invoke(ctx, c, "ak.soundengine.unregisterGameObj", args, nil)
}
