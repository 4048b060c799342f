// Package soundbank binds the ak.wwise.core.soundbank procedures.
package soundbank

import (
	"context"

	"waapi-go/waapi"
)

const (
	// Published once per generated bank.
	TopicGenerated      = "ak.wwise.core.soundbank.generated"
	TopicGenerationDone = "ak.wwise.core.soundbank.generationDone"
)

// Operations describes every procedure bound by this package.
var Operations = []waapi.Operation{
	{URI: "ak.wwise.core.soundbank.convertExternalSources", Params: []waapi.Param{waapi.P("sources", waapi.KindArray)}},
	{URI: "ak.wwise.core.soundbank.generate", Params: []waapi.Param{waapi.P("soundbanks", waapi.KindArray), waapi.P("platforms", waapi.KindArray), waapi.P("languages", waapi.KindArray), waapi.P("skipLanguages", waapi.KindBoolean), waapi.P("rebuildSoundBanks", waapi.KindBoolean), waapi.P("clearAudioFileCache", waapi.KindBoolean), waapi.P("writeToDisk", waapi.KindBoolean)}, Returns: true},
	{URI: "ak.wwise.core.soundbank.getInclusions", Params: []waapi.Param{waapi.P("soundbank", waapi.KindAny)}, Returns: true},
	{URI: "ak.wwise.core.soundbank.setInclusions", Params: []waapi.Param{waapi.P("soundbank", waapi.KindAny), waapi.P("operation", waapi.KindString), waapi.P("inclusions", waapi.KindArray)}},
	{URI: "ak.wwise.core.soundbank.processDefinitionFiles", Params: []waapi.Param{waapi.P("files", waapi.KindArray)}},
}

func ConvertExternalSources(ctx context.Context, c waapi.Caller, args waapi.Args) error {
	return waapi.Invoke(ctx, c, "ak.wwise.core.soundbank.convertExternalSources", args, nil)
}

// Generate generates SoundBanks. With writeToDisk false, the result carries
// the bank contents instead of writing them.
func Generate(ctx context.Context, c waapi.Caller, args waapi.Args) (waapi.Result, error) {
	return waapi.Call(ctx, c, "ak.wwise.core.soundbank.generate", args, nil)
}

func GetInclusions(ctx context.Context, c waapi.Caller, args waapi.Args) (waapi.Result, error) {
	return waapi.Call(ctx, c, "ak.wwise.core.soundbank.getInclusions", args, nil)
}

// SetInclusions adds, removes or replaces the inclusions of a SoundBank.
func SetInclusions(ctx context.Context, c waapi.Caller, args waapi.Args) error {
	return waapi.Invoke(ctx, c, "ak.wwise.core.soundbank.setInclusions", args, nil)
}

func ProcessDefinitionFiles(ctx context.Context, c waapi.Caller, args waapi.Args) error {
	return waapi.Invoke(ctx, c, "ak.wwise.core.soundbank.processDefinitionFiles", args, nil)
}
