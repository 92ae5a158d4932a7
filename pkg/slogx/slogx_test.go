package slogx_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/snehalbaghel/badgr-server/pkg/slogx"
	"github.com/stretchr/testify/require"
)

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := slogx.New(slogx.Config{Service: "auth", Version: "test", Env: "prod", Level: "debug", Output: &buf})

	logger.Debug("hello", "k", "v")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	require.Equal(t, "hello", rec["msg"])
	require.Equal(t, "auth", rec["service"])
	require.Equal(t, "v", rec["k"])
}

func TestNew_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	logger := slogx.New(slogx.Config{Level: "warn", Format: "text", Output: &buf})

	logger.Info("dropped")
	require.Empty(t, buf.String())

	logger.Warn("kept")
	require.Contains(t, buf.String(), "msg=kept")
}

func TestFromContext_DefaultsAndWith(t *testing.T) {
	var buf bytes.Buffer
	base := slogx.New(slogx.Config{Output: &buf})

	require.NotNil(t, slogx.FromContext(context.Background()))

	ctx := slogx.WithContext(context.Background(), base)
	require.Equal(t, ctx, slogx.With(ctx))

	ctx = slogx.With(ctx, "req_id", "req-123")
	ctx = slogx.With(ctx, "user_id", "u1")
	slogx.FromContext(ctx).Info("scoped")
	require.Contains(t, buf.String(), `"req_id":"req-123"`)
	require.Contains(t, buf.String(), `"user_id":"u1"`)
}

func TestHTTPMiddleware(t *testing.T) {
	var buf bytes.Buffer
	base := slogx.New(slogx.Config{Output: &buf})

	h := slogx.HTTPMiddleware(base)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		slogx.FromContext(r.Context()).Info("inside")
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("short and stout"))
	}))

	req := httptest.NewRequest(http.MethodGet, "/livez", nil)
	req.Header.Set(slogx.HeaderRequestID, "abc")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusTeapot, rec.Code)
	require.Equal(t, "abc", rec.Header().Get(slogx.HeaderRequestID))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var access map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &access))
	require.Equal(t, "http_request", access["msg"])
	require.Equal(t, "abc", access["req_id"])
	require.EqualValues(t, http.StatusTeapot, access["status"])
	require.EqualValues(t, len("short and stout"), access["bytes"])
}

func TestHTTPMiddleware_GeneratesRequestID(t *testing.T) {
	h := slogx.HTTPMiddleware(slogx.Discard())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Len(t, rec.Header().Get(slogx.HeaderRequestID), 26)
}
