package transport

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"waapi-go/codec"
	"waapi-go/message"
)

// HTTPTransport posts each call to the WAAPI HTTP endpoint
// (by default http://127.0.0.1:8090/waapi).
//
// The body is {"uri": ..., "options": ..., "args": ...}. A 200 answer carries
// the keyword result; any other status carries {"uri", "message", "details"}.
type HTTPTransport struct {
	url    string
	client *http.Client
	codec  codec.Codec
	logger *zap.Logger
}

func NewHTTPTransport(addr string, opts Options) *HTTPTransport {
	opts = opts.withDefaults()
	return &HTTPTransport{
		url:    addr,
		client: &http.Client{Timeout: 5 * time.Minute},
		codec:  opts.Codec,
		logger: opts.Logger.With(zap.String("addr", addr)),
	}
}

func (t *HTTPTransport) Call(ctx context.Context, req *message.Request) (*message.Response, error) {
	body := *req
	if body.Args == nil {
		body.Args = map[string]any{}
	}
	data, err := t.codec.Encode(&body)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, t.url, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", t.codec.ContentType())

	resp, err := t.client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read waapi response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var remote message.Error
		if err := t.codec.Decode(payload, &remote); err == nil && remote.URI != "" {
			return nil, &remote
		}
		return nil, fmt.Errorf("waapi http status %d: %s", resp.StatusCode, strings.TrimSpace(string(payload)))
	}

	var result map[string]any
	if len(bytes.TrimSpace(payload)) > 0 {
		if err := t.codec.Decode(payload, &result); err != nil {
			return nil, fmt.Errorf("decode waapi result: %w", err)
		}
	}
	return &message.Response{URI: req.URI, Result: result}, nil
}

// Err is always nil: every call opens its own request.
func (t *HTTPTransport) Err() error {
	return nil
}

func (t *HTTPTransport) Close() error {
	t.client.CloseIdleConnections()
	return nil
}
