package main

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"waapi-go/message"
	"waapi-go/waapitest"
)

func startServer(t *testing.T) *waapitest.Server {
	t.Helper()
	svr := waapitest.NewServer()
	svr.Handle("ak.wwise.core.getInfo", func(ctx context.Context, args map[string]any) (map[string]any, error) {
		return map[string]any{"displayName": "Wwise", "version": map[string]any{"year": 2023}}, nil
	})
	svr.Handle("ak.wwise.core.object.get", func(ctx context.Context, args map[string]any) (map[string]any, error) {
		if args["from"] == nil {
			return nil, &message.Error{URI: message.URIInvalidArguments, Message: "from is required", Details: map[string]any{"key": "from"}}
		}
		return map[string]any{"return": []any{map[string]any{"name": "Play_Footstep"}}}, nil
	})
	svr.Start()
	t.Cleanup(func() { svr.Shutdown(time.Second) })

	t.Setenv("WAAPI_CONFIG", "")
	t.Setenv("WAAPI_ETCD_ENDPOINTS", "")
	t.Setenv("WAAPI_LOG_LEVEL", "error")
	return svr
}

func run(ctx context.Context, args ...string) (string, error) {
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	return out.String(), err
}

func TestCallCommand(t *testing.T) {
	svr := startServer(t)

	out, err := run(context.Background(), "call", "ak.wwise.core.object.get",
		"--url", svr.WAMPURL(),
		"--args", `{"from":{"ofType":["Event"]}}`,
		"--options", `{"return":["name"]}`)
	if err != nil {
		t.Fatal(err)
	}

	var res map[string]any
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Play_Footstep") {
		t.Fatalf("unexpected output %s", out)
	}

	calls := svr.Calls()
	if len(calls) != 1 || calls[0].Options["return"] == nil {
		t.Fatalf("options not forwarded: %+v", calls)
	}
}

func TestCallCommandRemoteError(t *testing.T) {
	svr := startServer(t)

	_, err := run(context.Background(), "call", "ak.wwise.core.object.get", "--url", svr.HTTPURL())
	if err == nil {
		t.Fatal("expect remote error")
	}
	if !strings.Contains(err.Error(), message.URIInvalidArguments) || !strings.Contains(err.Error(), `"key":"from"`) {
		t.Fatalf("expect uri and details in error, got %v", err)
	}
}

func TestCallCommandBadJSON(t *testing.T) {
	_, err := run(context.Background(), "call", "ak.wwise.core.getInfo", "--args", "[1,2]")
	if err == nil || !strings.Contains(err.Error(), "--args") {
		t.Fatalf("expect --args error, got %v", err)
	}
}

func TestInfoCommand(t *testing.T) {
	svr := startServer(t)

	out, err := run(context.Background(), "info", "--url", svr.WAMPURL())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, `"displayName": "Wwise"`) {
		t.Fatalf("unexpected output %s", out)
	}
}

func TestOpsCommand(t *testing.T) {
	out, err := run(context.Background(), "ops", "ak.wwise.core.undo")
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 5 {
		t.Fatalf("expect 5 undo procedures, got %d:\n%s", len(lines), out)
	}
	if !strings.Contains(out, "ak.wwise.core.undo.endGroup") || !strings.Contains(out, "(displayName)") {
		t.Fatalf("unexpected output %s", out)
	}

	if _, err := run(context.Background(), "ops", "ak.nothing"); err == nil {
		t.Fatal("expect error for empty namespace")
	}
}

func TestDescribeCommand(t *testing.T) {
	out, err := run(context.Background(), "describe", "ak.soundengine.postEvent")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"returns: true", "event", "gameObject", "integer"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expect %q in output:\n%s", want, out)
		}
	}

	if _, err := run(context.Background(), "describe", "ak.wwise.core.nope"); err == nil {
		t.Fatal("expect error for unknown procedure")
	}
}

func TestSubscribeCommand(t *testing.T) {
	svr := startServer(t)

	ctx, cancel := context.WithCancel(context.Background())
	root := newRootCmd()
	out := &syncBuffer{}
	root.SetOut(out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"subscribe", "ak.wwise.ui.selectionChanged", "--url", svr.WAMPURL()})

	done := make(chan error, 1)
	go func() { done <- root.ExecuteContext(ctx) }()

	deadline := time.Now().Add(2 * time.Second)
	for svr.Publish("ak.wwise.ui.selectionChanged", map[string]any{"objects": []any{"a"}}) == 0 {
		if time.Now().After(deadline) {
			t.Fatal("subscription never established")
		}
		time.Sleep(10 * time.Millisecond)
	}
	for !strings.Contains(out.String(), `"objects"`) {
		if time.Now().After(deadline) {
			t.Fatalf("event not printed, got %q", out.String())
		}
		time.Sleep(10 * time.Millisecond)
	}

	cancel()
	if err := <-done; err != nil {
		t.Fatal(err)
	}
}

func TestInstancesCommand(t *testing.T) {
	startServer(t)

	out, err := run(context.Background(), "instances", "--url", "ws://10.0.0.5:8080/waapi")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "ws://10.0.0.5:8080/waapi") || !strings.Contains(out, "weight=1") {
		t.Fatalf("unexpected output %s", out)
	}
}

func TestRegisterNeedsEtcd(t *testing.T) {
	startServer(t)

	_, err := run(context.Background(), "register", "ws://10.0.0.5:8080/waapi")
	if err == nil || !strings.Contains(err.Error(), "etcd") {
		t.Fatalf("expect etcd error, got %v", err)
	}
}
