package codec

import (
	"encoding/json"
)

// JSONCodec is the "wamp.2.json" serializer and the body format of the
// WAAPI HTTP endpoint.
type JSONCodec struct{}

func (c *JSONCodec) Encode(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (c *JSONCodec) Decode(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

func (c *JSONCodec) Subprotocol() string {
	return "wamp.2.json"
}

func (c *JSONCodec) ContentType() string {
	return "application/json"
}
