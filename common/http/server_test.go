package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestServer() *HttpServer {
	s := NewHttpServer(WithMode("test"))
	s.Use(RequestIDMiddleware(), CorsMiddleware())
	return s
}

func TestHttpServer_Success(t *testing.T) {
	s := newTestServer()
	s.GET("/ping", func(c *Context) error {
		c.Success(map[string]string{"message": "pong"})
		return nil
	})

	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"message":"success"`) || !strings.Contains(w.Body.String(), "pong") {
		t.Fatalf("body = %s", w.Body.String())
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Fatalf("request id header missing")
	}
}

func TestHttpServer_HandlerError(t *testing.T) {
	s := newTestServer()
	s.Group("/api").POST("/fail", func(c *Context) error {
		return errors.New("boom")
	})

	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/fail", nil))
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "boom") {
		t.Fatalf("body = %s", w.Body.String())
	}
}

func TestRequestIDMiddleware_PassThrough(t *testing.T) {
	s := newTestServer()
	s.GET("/id", func(c *Context) error {
		c.Success(c.GetString("requestID"))
		return nil
	})

	req := httptest.NewRequest(http.MethodGet, "/id", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	if w.Header().Get("X-Request-ID") != "abc-123" || !strings.Contains(w.Body.String(), "abc-123") {
		t.Fatalf("request id not propagated: %s", w.Body.String())
	}
}
