package client

import (
	"context"
	"errors"
	"net"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"waapi-go/config"
	"waapi-go/loadbalance"
	"waapi-go/message"
	"waapi-go/middleware"
	"waapi-go/registry"
	"waapi-go/transport"
	"waapi-go/waapitest"
)

type Core struct {
	name string
}

func (c *Core) GetInfo(ctx context.Context, args map[string]any) (map[string]any, error) {
	return map[string]any{"displayName": "Wwise", "instance": c.name}, nil
}

func (c *Core) GetProjectInfo(ctx context.Context, args map[string]any) (map[string]any, error) {
	return map[string]any{"name": "Cube", "args": len(args)}, nil
}

func (c *Core) ExecuteLuaScript(ctx context.Context, args map[string]any) (map[string]any, error) {
	script, _ := args["luaScript"].(string)
	if script == "" {
		return nil, &message.Error{URI: message.URIInvalidArguments, Message: "luaScript is required"}
	}
	return map[string]any{"return": script}, nil
}

func startServer(t testing.TB, name string) *waapitest.Server {
	t.Helper()
	svr := waapitest.NewServer()
	if err := svr.Register("ak.wwise.core", &Core{name: name}); err != nil {
		t.Fatal(err)
	}
	svr.Start()
	t.Cleanup(func() { svr.Shutdown(time.Second) })
	return svr
}

func TestClientCall(t *testing.T) {
	svr := startServer(t, "a")

	for name, url := range map[string]string{"wamp": svr.WAMPURL(), "http": svr.HTTPURL()} {
		t.Run(name, func(t *testing.T) {
			cli, err := Dial(context.Background(), url)
			if err != nil {
				t.Fatal(err)
			}
			defer cli.Close()

			res, err := cli.Call(context.Background(), "ak.wwise.core.getInfo", map[string]any{}, nil)
			if err != nil {
				t.Fatal(err)
			}
			if res["displayName"] != "Wwise" {
				t.Fatalf("unexpected result %v", res)
			}

			// call again on the pooled transport
			res, err = cli.Call(context.Background(), "ak.wwise.core.executeLuaScript", map[string]any{"luaScript": "return 1"}, nil)
			if err != nil {
				t.Fatal(err)
			}
			if res["return"] != "return 1" {
				t.Fatalf("unexpected result %v", res)
			}
		})
	}
}

func TestClientRemoteError(t *testing.T) {
	svr := startServer(t, "a")
	cli, err := Dial(context.Background(), svr.WAMPURL())
	if err != nil {
		t.Fatal(err)
	}
	defer cli.Close()

	_, err = cli.Call(context.Background(), "ak.wwise.core.executeLuaScript", map[string]any{}, nil)
	var remote *message.Error
	if !errors.As(err, &remote) || remote.URI != message.URIInvalidArguments {
		t.Fatalf("expect invalid_arguments, got %v", err)
	}

	// the session survives a remote error
	if _, err := cli.Call(context.Background(), "ak.wwise.core.getInfo", nil, nil); err != nil {
		t.Fatalf("call after remote error failed: %v", err)
	}
}

func TestClientConcurrentCalls(t *testing.T) {
	svr := startServer(t, "a")
	cli, err := Dial(context.Background(), svr.WAMPURL(), WithPoolSize(2))
	if err != nil {
		t.Fatal(err)
	}
	defer cli.Close()

	var wg sync.WaitGroup
	for i := 0; i < 40; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := cli.Call(context.Background(), "ak.wwise.core.getInfo", nil, nil); err != nil {
				t.Errorf("call failed: %v", err)
			}
		}()
	}
	wg.Wait()

	if n := svr.Sessions(); n > 2 {
		t.Fatalf("expect at most 2 sessions, got %d", n)
	}
}

func TestClientMiddlewareOrder(t *testing.T) {
	svr := startServer(t, "a")

	var order []string
	tag := func(name string) middleware.Middleware {
		return func(next middleware.CallFunc) middleware.CallFunc {
			return func(ctx context.Context, req *message.Request) (*message.Response, error) {
				order = append(order, name)
				return next(ctx, req)
			}
		}
	}

	cli, err := Dial(context.Background(), svr.HTTPURL(), WithMiddleware(tag("outer")), WithMiddleware(tag("inner")))
	if err != nil {
		t.Fatal(err)
	}
	defer cli.Close()

	if _, err := cli.Call(context.Background(), "ak.wwise.core.getInfo", nil, nil); err != nil {
		t.Fatal(err)
	}
	if len(order) != 2 || order[0] != "outer" || order[1] != "inner" {
		t.Fatalf("unexpected middleware order %v", order)
	}
}

func TestClientLogsCalls(t *testing.T) {
	svr := startServer(t, "a")
	core, logs := observer.New(zap.DebugLevel)
	log := zap.New(core)

	cli, err := Dial(context.Background(), svr.WAMPURL(), WithLogger(log), WithMiddleware(middleware.LoggingMiddleware(log)))
	if err != nil {
		t.Fatal(err)
	}
	defer cli.Close()

	cli.Call(context.Background(), "ak.wwise.core.getInfo", nil, nil)
	cli.Call(context.Background(), "ak.wwise.core.nope", nil, nil)

	if n := logs.FilterMessage("waapi call").Len(); n != 1 {
		t.Fatalf("expect 1 call log, got %d", n)
	}
	failed := logs.FilterMessage("waapi call failed").All()
	if len(failed) != 1 || failed[0].ContextMap()["uri"] != "ak.wwise.core.nope" {
		t.Fatalf("expect failed call logged with uri, got %v", failed)
	}
}

func TestClientSubscribe(t *testing.T) {
	svr := startServer(t, "a")
	cli, err := Dial(context.Background(), svr.WAMPURL(), WithPoolSize(1))
	if err != nil {
		t.Fatal(err)
	}
	defer cli.Close()

	events := make(chan *message.Event, 1)
	sub, err := cli.Subscribe(context.Background(), "ak.wwise.core.project.saved", nil, func(ev *message.Event) {
		events <- ev
	})
	if err != nil {
		t.Fatal(err)
	}

	// calls keep flowing on the transport carrying the subscription
	if _, err := cli.Call(context.Background(), "ak.wwise.core.getInfo", nil, nil); err != nil {
		t.Fatal(err)
	}

	if n := svr.Publish("ak.wwise.core.project.saved", map[string]any{"project": "Cube"}); n != 1 {
		t.Fatalf("expect 1 delivery, got %d", n)
	}
	select {
	case ev := <-events:
		if ev.Kwargs["project"] != "Cube" {
			t.Fatalf("unexpected event %v", ev.Kwargs)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("event not delivered")
	}

	if err := sub.Unsubscribe(context.Background()); err != nil {
		t.Fatal(err)
	}
}

func TestClientSubscribeOverHTTP(t *testing.T) {
	svr := startServer(t, "a")
	cli, err := Dial(context.Background(), svr.HTTPURL())
	if err != nil {
		t.Fatal(err)
	}
	defer cli.Close()

	_, err = cli.Subscribe(context.Background(), "ak.wwise.ui.selectionChanged", nil, func(*message.Event) {})
	if !errors.Is(err, ErrSubscribeUnsupported) {
		t.Fatalf("expect ErrSubscribeUnsupported, got %v", err)
	}
}

func TestClientNoInstances(t *testing.T) {
	cli := New(registry.NewStaticRegistry(), nil)
	defer cli.Close()

	_, err := cli.Call(context.Background(), "ak.wwise.core.getInfo", nil, nil)
	if !errors.Is(err, loadbalance.ErrNoInstances) {
		t.Fatalf("expect ErrNoInstances, got %v", err)
	}
}

func TestClientClosed(t *testing.T) {
	svr := startServer(t, "a")
	cli, err := Dial(context.Background(), svr.WAMPURL())
	if err != nil {
		t.Fatal(err)
	}
	cli.Close()

	_, err = cli.Call(context.Background(), "ak.wwise.core.getInfo", nil, nil)
	if !errors.Is(err, transport.ErrClosed) {
		t.Fatalf("expect ErrClosed, got %v", err)
	}
	if err := cli.Close(); err != nil {
		t.Fatalf("second close failed: %v", err)
	}
}

func TestDialRefused(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	addr := ln.Addr().String()
	ln.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := Dial(ctx, "ws://"+addr+"/waapi"); err == nil {
		t.Fatal("expect dial error when nothing listens")
	}
}

// With the hash balancer one client sticks to one instance.
func TestClientAffinity(t *testing.T) {
	a := startServer(t, "a")
	b := startServer(t, "b")
	reg := registry.NewStaticRegistryFor(registry.DefaultService, a.WAMPURL(), b.WAMPURL())

	for _, key := range []string{"editor-1", "editor-2", "editor-3"} {
		cli := New(reg, nil, WithAffinityKey(key))
		var first any
		for i := 0; i < 5; i++ {
			res, err := cli.Call(context.Background(), "ak.wwise.core.getInfo", nil, nil)
			if err != nil {
				t.Fatal(err)
			}
			if i == 0 {
				first = res["instance"]
			} else if res["instance"] != first {
				t.Fatalf("key %s moved from %v to %v", key, first, res["instance"])
			}
		}
		cli.Close()
	}
}

func TestClientRoundRobin(t *testing.T) {
	a := startServer(t, "a")
	b := startServer(t, "b")
	reg := registry.NewStaticRegistryFor(registry.DefaultService, a.HTTPURL(), b.HTTPURL())

	cli := New(reg, &loadbalance.RoundRobinBalancer{})
	defer cli.Close()

	seen := make(map[any]int)
	for i := 0; i < 4; i++ {
		res, err := cli.Call(context.Background(), "ak.wwise.core.getInfo", nil, nil)
		if err != nil {
			t.Fatal(err)
		}
		seen[res["instance"]]++
	}
	if seen["a"] != 2 || seen["b"] != 2 {
		t.Fatalf("expect even spread, got %v", seen)
	}
}

// Instances registered after the client was created are picked up.
func TestClientFollowsRegistry(t *testing.T) {
	a := startServer(t, "a")
	reg := registry.NewStaticRegistry()
	cli := New(reg, nil)
	defer cli.Close()

	if _, err := cli.Call(context.Background(), "ak.wwise.core.getInfo", nil, nil); !errors.Is(err, loadbalance.ErrNoInstances) {
		t.Fatalf("expect ErrNoInstances before registration, got %v", err)
	}
	reg.Register(context.Background(), registry.DefaultService, registry.ServiceInstance{Addr: a.WAMPURL(), Weight: 1}, 0)
	if _, err := cli.Call(context.Background(), "ak.wwise.core.getInfo", nil, nil); err != nil {
		t.Fatalf("call after registration failed: %v", err)
	}
}

func TestFromConfig(t *testing.T) {
	svr := startServer(t, "a")

	cfg := config.New()
	cfg.URL = svr.HTTPURL()
	cfg.Timeout = time.Second
	cfg.RateLimit = 100
	cfg.RateBurst = 10
	cfg.LogLevel = "error"

	cli, err := FromConfig(cfg)
	if err != nil {
		t.Fatal(err)
	}
	defer cli.Close()

	res, err := cli.Call(context.Background(), "ak.wwise.core.getProjectInfo", nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if res["name"] != "Cube" {
		t.Fatalf("unexpected result %v", res)
	}
}

func TestFromConfigInvalid(t *testing.T) {
	cfg := config.New()
	cfg.Balancer = "fastest"
	if _, err := FromConfig(cfg); err == nil {
		t.Fatal("expect error for unknown balancer")
	}

	cfg = config.New()
	cfg.PoolSize = 0
	if _, err := FromConfig(cfg); err == nil {
		t.Fatal("expect validation error")
	}
}

func TestNewDefault(t *testing.T) {
	svr := startServer(t, "a")
	t.Setenv("WAAPI_CONFIG", "")
	t.Setenv("WAAPI_URL", svr.WAMPURL())
	t.Setenv("WAAPI_LOG_LEVEL", "error")

	cli, err := NewDefault()
	if err != nil {
		t.Fatal(err)
	}
	defer cli.Close()

	deadline := time.Now().Add(2 * time.Second)
	for svr.Sessions() != 1 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if svr.Sessions() != 1 {
		t.Fatalf("expect NewDefault to connect, got %d sessions", svr.Sessions())
	}
	if _, err := cli.Call(context.Background(), "ak.wwise.core.getInfo", nil, nil); err != nil {
		t.Fatal(err)
	}
}

func TestNewDefaultConnectTimeout(t *testing.T) {
	// accepts TCP but never answers the websocket handshake
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	defer ln.Close()
	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			defer conn.Close()
		}
	}()

	t.Setenv("WAAPI_CONFIG", "")
	t.Setenv("WAAPI_URL", "ws://"+ln.Addr().String()+"/waapi")
	t.Setenv("WAAPI_LOG_LEVEL", "error")
	t.Setenv("WAAPI_TIMEOUT", "100ms")

	start := time.Now()
	cli, err := NewDefault()
	if err == nil {
		cli.Close()
		t.Fatal("expect connect to fail")
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Fatalf("expect connect bounded by WAAPI_TIMEOUT, took %s", elapsed)
	}
}
