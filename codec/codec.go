package codec

// Codec serializes WAMP frames and HTTP bodies.
type Codec interface {
	Encode(v any) ([]byte, error)
	Decode(data []byte, v any) error
	Subprotocol() string // WebSocket subprotocol negotiated for WAMP
	ContentType() string // HTTP content type for the JSON endpoint
}

// Default returns the codec WAAPI speaks, JSON.
func Default() Codec {
	return &JSONCodec{}
}
