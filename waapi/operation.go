package waapi

import "strings"

// Kind is the JSON type a WAAPI argument expects.
type Kind string

const (
	KindString  Kind = "string"
	KindInteger Kind = "integer"
	KindNumber  Kind = "number"
	KindBoolean Kind = "boolean"
	KindArray   Kind = "array"
	KindObject  Kind = "object"
	KindAny     Kind = "any"
)

// Param is one named argument of a procedure.
type Param struct {
	Name string
	Kind Kind
}

// Operation describes one WAAPI procedure.
type Operation struct {
	URI     string
	Params  []Param
	Returns bool // the binding surfaces the procedure's result
}

// Namespace returns the URI without its last segment,
// e.g. "ak.wwise.core.audio" for "ak.wwise.core.audio.import".
func (op Operation) Namespace() string {
	if i := strings.LastIndexByte(op.URI, '.'); i >= 0 {
		return op.URI[:i]
	}
	return ""
}

// Param returns the parameter called name.
func (op Operation) Param(name string) (Param, bool) {
	for _, p := range op.Params {
		if p.Name == name {
			return p, true
		}
	}
	return Param{}, false
}

// P is shorthand for building parameter lists in operation tables.
func P(name string, kind Kind) Param {
	return Param{Name: name, Kind: kind}
}
