package client

import (
	"context"
	"testing"
)

func benchClient(b *testing.B, overHTTP bool) *Client {
	svr := startServer(b, "a")
	url := svr.WAMPURL()
	if overHTTP {
		url = svr.HTTPURL()
	}
	cli, err := Dial(context.Background(), url, WithPoolSize(4))
	if err != nil {
		b.Fatal(err)
	}
	b.Cleanup(func() { cli.Close() })
	return cli
}

// Serial calls on one WAMP session.
func BenchmarkSerialCallWAMP(b *testing.B) {
	cli := benchClient(b, false)
	args := map[string]any{"luaScript": "return 1"}
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if _, err := cli.Call(context.Background(), "ak.wwise.core.executeLuaScript", args, nil); err != nil {
			b.Fatal(err)
		}
	}
}

// Concurrent calls multiplexed over the pooled WAMP sessions.
func BenchmarkConcurrentCallWAMP(b *testing.B) {
	cli := benchClient(b, false)
	b.ResetTimer()

	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			if _, err := cli.Call(context.Background(), "ak.wwise.core.getInfo", nil, nil); err != nil {
				b.Error(err)
				return
			}
		}
	})
}

// One POST per call.
func BenchmarkSerialCallHTTP(b *testing.B) {
	cli := benchClient(b, true)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if _, err := cli.Call(context.Background(), "ak.wwise.core.getInfo", nil, nil); err != nil {
			b.Fatal(err)
		}
	}
}
