package middleware_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"solna/internal/platform/net/middleware"
	kit "solna/internal/platform/testkit"

	"github.com/go-chi/chi/v5"
)

func TestAccessLogZerolog_PassThroughAndFields(t *testing.T) {
	logBuf.take()
	r := chi.NewRouter()
	r.Use(middleware.RequestID())
	r.Use(middleware.AccessLogZerolog(middleware.AccessLogOptions{}))
	r.Post("/file-changed", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, "hi")
		_, _ = io.WriteString(w, "there")
	})

	req := httptest.NewRequest(http.MethodPost, "/file-changed", nil)
	req.Header.Set("X-Request-ID", "rid-log")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusCreated || rr.Body.String() != "hithere" {
		t.Fatalf("unexpected passthrough: %d %q", rr.Code, rr.Body.String())
	}
	out := logBuf.take()
	kit.MustContain(t, out, `"message":"request done"`)
	kit.MustContain(t, out, `"status":201`)
	kit.MustContain(t, out, `"bytes":7`)
	kit.MustContain(t, out, `"route":"/file-changed"`)
	kit.MustContain(t, out, `"request_id":"rid-log"`)
	kit.MustContain(t, out, `"level":"info"`)
}

func TestAccessLogZerolog_Levels(t *testing.T) {
	cases := []struct {
		name   string
		opt    middleware.AccessLogOptions
		path   string
		status int
		level  string
	}{
		{"slow", middleware.AccessLogOptions{Slow: time.Nanosecond}, "/photos", 200, "warn"},
		{"quiet", middleware.AccessLogOptions{Quiet: []string{"/"}}, "/", 200, "debug"},
		{"server error beats quiet", middleware.AccessLogOptions{Quiet: []string{"/"}}, "/", 503, "error"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			logBuf.take()
			h := middleware.AccessLogZerolog(c.opt)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				time.Sleep(10 * time.Microsecond)
				w.WriteHeader(c.status)
			}))
			h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, c.path, nil))
			kit.MustContain(t, logBuf.take(), `"level":"`+c.level+`"`)
		})
	}
}
