package http_test

import (
	"context"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"solna/internal/platform/config"
	phttp "solna/internal/platform/net/http"
	kit "solna/internal/platform/testkit"

	"github.com/go-chi/chi/v5"
)

func TestNewServer_Defaults(t *testing.T) {
	srv := phttp.NewServer(config.New().Prefix("SRVTEST_"))
	if srv.Addr() != ":3000" {
		t.Fatalf("default addr = %q", srv.Addr())
	}
	if srv.ShutdownTimeout() != 10*time.Second {
		t.Fatalf("default shutdown timeout = %v", srv.ShutdownTimeout())
	}
}

func TestNewServer_FromEnv(t *testing.T) {
	t.Setenv("SRVTEST_PORT", "8088")
	t.Setenv("SRVTEST_SHUTDOWN_TIMEOUT", "250ms")

	called := false
	srv := phttp.NewServer(config.New().Prefix("SRVTEST_"), func(*chi.Mux) { called = true })
	if !called {
		t.Fatalf("expected NewServer option to be called")
	}
	if srv.Addr() != ":8088" || srv.ShutdownTimeout() != 250*time.Millisecond {
		t.Fatalf("addr=%q timeout=%v", srv.Addr(), srv.ShutdownTimeout())
	}
}

func TestServer_ServeAndDrainOnCancel(t *testing.T) {
	srv := phttp.NewServer(config.New().Prefix("SRVTEST_"))
	srv.Router().Get("/ping", func(w http.ResponseWriter, _ *http.Request) { _, _ = io.WriteString(w, "pong") })

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	url := "http://" + ln.Addr().String() + "/ping"
	kit.Eventually(t, 2*time.Second, 20*time.Millisecond, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		b, _ := io.ReadAll(resp.Body)
		return string(b) == "pong"
	})

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Serve returned error: %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatalf("Serve did not return after cancel")
	}
}

func TestServer_DrainTimeout(t *testing.T) {
	t.Setenv("SRVTEST_SHUTDOWN_TIMEOUT", "50ms")
	srv := phttp.NewServer(config.New().Prefix("SRVTEST_"))

	release := make(chan struct{})
	entered := make(chan struct{})
	srv.Router().Get("/slow", func(w http.ResponseWriter, _ *http.Request) {
		close(entered)
		<-release
	})
	defer close(release)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	go func() {
		resp, err := http.Get("http://" + ln.Addr().String() + "/slow")
		if err == nil {
			resp.Body.Close()
		}
	}()
	select {
	case <-entered:
	case <-time.After(2 * time.Second):
		t.Fatalf("slow handler never entered")
	}

	cancel()
	select {
	case err := <-done:
		if err == nil {
			t.Fatalf("expected drain timeout error")
		}
	case <-time.After(3 * time.Second):
		t.Fatalf("Serve did not give up after shutdown timeout")
	}
}

func TestServer_Run_ListenError(t *testing.T) {
	t.Setenv("SRVTEST_PORT", "203.0.113.1:1")
	srv := phttp.NewServer(config.New().Prefix("SRVTEST_"))
	if err := srv.Run(context.Background()); err == nil {
		t.Fatalf("expected Run to fail binding a foreign address")
	}
}
