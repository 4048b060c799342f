package transport

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"waapi-go/message"
	"waapi-go/waapitest"
)

type fakeCore struct{}

func (f *fakeCore) GetInfo(ctx context.Context, args map[string]any) (map[string]any, error) {
	return map[string]any{"displayName": "Wwise", "echo": args["value"]}, nil
}

func (f *fakeCore) Fail(ctx context.Context, args map[string]any) (map[string]any, error) {
	return nil, &message.Error{URI: message.URIInvalidArguments, Message: "bad object", Details: map[string]any{"object": args["object"]}}
}

func startServer(t *testing.T) *waapitest.Server {
	t.Helper()
	svr := waapitest.NewServer()
	if err := svr.Register("ak.wwise.core", &fakeCore{}); err != nil {
		t.Fatal(err)
	}
	svr.Start()
	t.Cleanup(func() { svr.Shutdown(time.Second) })
	return svr
}

func dial(t *testing.T, addr string) Transport {
	t.Helper()
	tr, err := Dial(context.Background(), addr, Options{})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { tr.Close() })
	return tr
}

// Both transports must behave the same for calls.
func TestTransportsCall(t *testing.T) {
	svr := startServer(t)

	for name, addr := range map[string]string{"wamp": svr.WAMPURL(), "http": svr.HTTPURL()} {
		t.Run(name, func(t *testing.T) {
			tr := dial(t, addr)

			resp, err := tr.Call(context.Background(), &message.Request{
				URI:  "ak.wwise.core.getInfo",
				Args: map[string]any{"value": "x"},
			})
			if err != nil {
				t.Fatal(err)
			}
			if resp.Result["displayName"] != "Wwise" || resp.Result["echo"] != "x" {
				t.Fatalf("unexpected result %v", resp.Result)
			}

			_, err = tr.Call(context.Background(), &message.Request{
				URI:  "ak.wwise.core.fail",
				Args: map[string]any{"object": "{guid}"},
			})
			var remote *message.Error
			if !errors.As(err, &remote) {
				t.Fatalf("expect *message.Error, got %v", err)
			}
			if remote.URI != message.URIInvalidArguments || remote.Message != "bad object" || remote.Details["object"] != "{guid}" {
				t.Fatalf("unexpected remote error %+v", remote)
			}

			_, err = tr.Call(context.Background(), &message.Request{URI: "ak.wwise.core.nope"})
			if !errors.As(err, &remote) || remote.URI != message.URINoSuchProcedure {
				t.Fatalf("expect no_such_procedure, got %v", err)
			}

			if tr.Err() != nil {
				t.Fatalf("transport should still be usable: %v", tr.Err())
			}
		})
	}
}

// Many goroutines share one WAMP session; each must get its own reply.
func TestWAMPConcurrentCalls(t *testing.T) {
	svr := startServer(t)
	tr := dial(t, svr.WAMPURL())

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			resp, err := tr.Call(context.Background(), &message.Request{
				URI:  "ak.wwise.core.getInfo",
				Args: map[string]any{"value": float64(n)},
			})
			if err != nil {
				t.Errorf("call failed: %v", err)
				return
			}
			if resp.Result["echo"] != float64(n) {
				t.Errorf("expect %d, got %v", n, resp.Result["echo"])
			}
		}(i)
	}
	wg.Wait()
}

func TestWAMPSubscribe(t *testing.T) {
	svr := startServer(t)
	tr := dial(t, svr.WAMPURL()).(*WAMPTransport)

	events := make(chan *message.Event, 4)
	sub, err := tr.Subscribe(context.Background(), "ak.wwise.core.project.saved", nil, func(ev *message.Event) {
		events <- ev
	})
	if err != nil {
		t.Fatal(err)
	}
	if sub.Topic != "ak.wwise.core.project.saved" {
		t.Fatalf("unexpected topic %s", sub.Topic)
	}

	svr.Publish("ak.wwise.core.project.saved", map[string]any{"n": float64(1)})
	svr.Publish("ak.wwise.core.project.saved", map[string]any{"n": float64(2)})

	for want := 1; want <= 2; want++ {
		select {
		case ev := <-events:
			if ev.Kwargs["n"] != float64(want) {
				t.Fatalf("expect event %d in order, got %v", want, ev.Kwargs)
			}
			if ev.Topic != sub.Topic || ev.SubscriptionID != sub.ID {
				t.Fatalf("event not tied to subscription: %+v", ev)
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("event %d not delivered", want)
		}
	}

	if err := sub.Unsubscribe(context.Background()); err != nil {
		t.Fatal(err)
	}
	if n := svr.Publish("ak.wwise.core.project.saved", nil); n != 0 {
		t.Fatalf("expect no delivery after unsubscribe, got %d", n)
	}
}

// Two local subscriptions to one topic share the broker's id; dropping one
// must keep the other alive.
func TestWAMPSharedSubscription(t *testing.T) {
	svr := startServer(t)
	tr := dial(t, svr.WAMPURL()).(*WAMPTransport)

	a := make(chan struct{}, 1)
	b := make(chan struct{}, 1)
	subA, err := tr.Subscribe(context.Background(), "ak.wwise.ui.selectionChanged", nil, func(*message.Event) { a <- struct{}{} })
	if err != nil {
		t.Fatal(err)
	}
	subB, err := tr.Subscribe(context.Background(), "ak.wwise.ui.selectionChanged", nil, func(*message.Event) { b <- struct{}{} })
	if err != nil {
		t.Fatal(err)
	}
	if subA.ID != subB.ID {
		t.Fatalf("expect shared id, got %d and %d", subA.ID, subB.ID)
	}

	if err := subA.Unsubscribe(context.Background()); err != nil {
		t.Fatal(err)
	}
	if n := svr.Publish("ak.wwise.ui.selectionChanged", nil); n != 1 {
		t.Fatalf("expect broker subscription kept, got %d deliveries", n)
	}
	select {
	case <-b:
	case <-time.After(2 * time.Second):
		t.Fatal("remaining subscription got no event")
	}
	select {
	case <-a:
		t.Fatal("removed subscription still got an event")
	default:
	}
}

// A SUBSCRIBED that arrives after the subscriber gave up must not leave the
// broker subscription or the handler behind.
func TestWAMPLateSubscribed(t *testing.T) {
	svr := waapitest.NewServer()
	svr.SubscribeDelay = 200 * time.Millisecond
	svr.Start()
	t.Cleanup(func() { svr.Shutdown(time.Second) })
	tr := dial(t, svr.WAMPURL()).(*WAMPTransport)

	fired := make(chan struct{}, 1)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := tr.Subscribe(ctx, "ak.wwise.core.object.created", nil, func(*message.Event) {
		fired <- struct{}{}
	})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expect deadline exceeded, got %v", err)
	}

	// wait out the delayed SUBSCRIBED, then for the UNSUBSCRIBE it triggers
	time.Sleep(300 * time.Millisecond)
	deadline := time.Now().Add(2 * time.Second)
	for svr.Subscriptions() != 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if n := svr.Subscriptions(); n != 0 {
		t.Fatalf("expect broker subscription dropped, got %d", n)
	}
	if n := svr.Publish("ak.wwise.core.object.created", nil); n != 0 {
		t.Fatalf("expect no delivery, got %d", n)
	}

	tr.subMu.Lock()
	held := len(tr.subs)
	tr.subMu.Unlock()
	if held != 0 {
		t.Fatalf("expect no local subscription, got %d", held)
	}
	select {
	case <-fired:
		t.Fatal("handler of a failed subscribe fired")
	default:
	}
}

func TestWAMPServerShutdownFailsTransport(t *testing.T) {
	svr := startServer(t)
	tr := dial(t, svr.WAMPURL())

	svr.Shutdown(time.Second)

	deadline := time.Now().Add(2 * time.Second)
	for tr.Err() == nil && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if !errors.Is(tr.Err(), ErrClosed) {
		t.Fatalf("expect ErrClosed after goodbye, got %v", tr.Err())
	}

	_, err := tr.Call(context.Background(), &message.Request{URI: "ak.wwise.core.getInfo"})
	if !errors.Is(err, ErrClosed) {
		t.Fatalf("expect ErrClosed from call, got %v", err)
	}
}

func TestWAMPWrongRealm(t *testing.T) {
	svr := startServer(t)
	_, err := DialWAMP(context.Background(), svr.WAMPURL(), Options{Realm: "elsewhere"})
	if err == nil {
		t.Fatal("expect abort for unknown realm")
	}
}

func TestDialUnsupportedScheme(t *testing.T) {
	_, err := Dial(context.Background(), "tcp://127.0.0.1:8080", Options{})
	if !errors.Is(err, ErrUnsupportedScheme) {
		t.Fatalf("expect ErrUnsupportedScheme, got %v", err)
	}
}

func TestWAMPCallCanceled(t *testing.T) {
	svr := startServer(t)
	block := make(chan struct{})
	svr.Handle("ak.wwise.core.slow", func(ctx context.Context, args map[string]any) (map[string]any, error) {
		<-block
		return nil, nil
	})
	defer close(block)

	tr := dial(t, svr.WAMPURL())
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := tr.Call(ctx, &message.Request{URI: "ak.wwise.core.slow"})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expect deadline exceeded, got %v", err)
	}
	if tr.Err() != nil {
		t.Fatalf("a canceled call must not break the session: %v", tr.Err())
	}
}
