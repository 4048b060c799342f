// Package message defines the envelopes exchanged with a WAAPI endpoint.
//
// Request is what every call carries regardless of transport. Over WAMP it
// becomes a CALL frame (options + kwargs), over HTTP it is POSTed as-is.
// Response carries the keyword result back, and Error is the remote failure
// reported by the authoring application.
package message

import "fmt"

// Well-known error URIs.
const (
	URINoSuchProcedure  = "wamp.error.no_such_procedure"
	URIInvalidArguments = "ak.wwise.invalid_arguments"
	URIRuntimeError     = "wamp.error.runtime_error"
	URICanceled         = "wamp.error.canceled"
)

// Request carries a single WAAPI call.
type Request struct {
	URI     string         `json:"uri"`               // Dotted endpoint name, e.g. "ak.wwise.core.getInfo"
	Options map[string]any `json:"options,omitempty"` // Call options, e.g. {"return": ["id", "name"]}
	Args    map[string]any `json:"args"`              // Keyword arguments, forwarded untouched
}

// Response carries the keyword result of a call.
type Response struct {
	URI    string
	Result map[string]any
}

// Event is a single publication delivered for a subscribed topic.
type Event struct {
	Topic          string
	SubscriptionID uint64
	PublicationID  uint64
	Details        map[string]any
	Kwargs         map[string]any
}

// Error is a failure reported by the remote side.
//
// Over WAMP it is built from an ERROR frame (error URI + kwargs), over HTTP
// from the JSON error body.
type Error struct {
	URI     string         `json:"uri"`
	Message string         `json:"message,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

func (e *Error) Error() string {
	if e.Message == "" {
		return e.URI
	}
	return fmt.Sprintf("%s: %s", e.URI, e.Message)
}

// ErrorFromKwargs builds an Error from a WAAPI error URI and its keyword payload.
func ErrorFromKwargs(uri string, kwargs map[string]any) *Error {
	e := &Error{URI: uri}
	if msg, ok := kwargs["message"].(string); ok {
		e.Message = msg
	}
	if details, ok := kwargs["details"].(map[string]any); ok {
		e.Details = details
	}
	return e
}

// Kwargs returns the keyword payload used when sending the error over WAMP.
func (e *Error) Kwargs() map[string]any {
	kw := map[string]any{"message": e.Message}
	if e.Details != nil {
		kw["details"] = e.Details
	}
	return kw
}
