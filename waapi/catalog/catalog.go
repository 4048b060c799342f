// Package catalog lists every WAAPI procedure bound by the namespace
// packages, for tools that work from descriptors instead of Go bindings.
package catalog

import (
	"sort"
	"strings"
	"sync"

	"waapi-go/waapi"
	"waapi-go/waapi/console"
	"waapi-go/waapi/core"
	"waapi-go/waapi/core/audio"
	"waapi-go/waapi/core/profiler"
	"waapi-go/waapi/core/soundbank"
	"waapi-go/waapi/core/sourcecontrol"
	"waapi-go/waapi/core/switchcontainer"
	"waapi-go/waapi/core/transport"
	"waapi-go/waapi/core/undo"
	"waapi-go/waapi/debug"
	"waapi-go/waapi/soundengine"
	"waapi-go/waapi/ui"
)

var (
	once  sync.Once
	all   []waapi.Operation
	byURI map[string]waapi.Operation
)

func load() {
	groups := [][]waapi.Operation{
		soundengine.Operations,
		console.Operations,
		core.Operations,
		audio.Operations,
		profiler.Operations,
		soundbank.Operations,
		sourcecontrol.Operations,
		switchcontainer.Operations,
		transport.Operations,
		undo.Operations,
		debug.Operations,
		ui.Operations,
	}
	byURI = make(map[string]waapi.Operation)
	for _, ops := range groups {
		for _, op := range ops {
			all = append(all, op)
			byURI[op.URI] = op
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].URI < all[j].URI })
}

// All returns every operation sorted by URI. The slice is a copy.
func All() []waapi.Operation {
	once.Do(load)
	return append([]waapi.Operation(nil), all...)
}

// Lookup returns the operation bound to uri.
func Lookup(uri string) (waapi.Operation, bool) {
	once.Do(load)
	op, ok := byURI[uri]
	return op, ok
}

// Namespace returns the operations whose URI starts with prefix, sorted by
// URI. A prefix matches whole segments only: "ak.wwise.core" matches
// "ak.wwise.core.audio.import" but "ak.wwise.co" matches nothing.
func Namespace(prefix string) []waapi.Operation {
	once.Do(load)
	prefix = strings.TrimSuffix(prefix, ".")
	if prefix == "" {
		return All()
	}
	var ops []waapi.Operation
	for _, op := range all {
		if op.URI == prefix || strings.HasPrefix(op.URI, prefix+".") {
			ops = append(ops, op)
		}
	}
	return ops
}
