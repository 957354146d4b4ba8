package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/boxtree/pkg/pipeline"
)

func newTestServer(cfg Config, defaults pipeline.Options) *Server {
	logger := log.New(io.Discard)
	return New(pipeline.NewRunner(nil, logger), logger, cfg, defaults)
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorResponse {
	t.Helper()
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	var resp errorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func TestHealthz(t *testing.T) {
	h := newTestServer(Config{}, pipeline.Options{}).Handler()
	rec := do(t, h, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok\n", rec.Body.String())
}

func TestRender(t *testing.T) {
	tests := []struct {
		name        string
		target      string
		defaults    pipeline.Options
		want        string
		contentType string
	}{
		{
			name:        "defaults",
			target:      "/render",
			want:        "  a  \n┌─┴─┐\nb   c\n",
			contentType: "text/plain; charset=utf-8",
		},
		{
			name:        "horizontal trimmed",
			target:      "/render?orientation=horizontal&trim=true",
			want:        "  ┌b\n a┤\n  └c\n",
			contentType: "text/plain; charset=utf-8",
		},
		{
			name:        "server defaults apply",
			target:      "/render",
			defaults:    pipeline.Options{Trim: true},
			want:        "  a\n┌─┴─┐\nb   c\n",
			contentType: "text/plain; charset=utf-8",
		},
		{
			name:        "query overrides defaults",
			target:      "/render?trim=false",
			defaults:    pipeline.Options{Trim: true},
			want:        "  a  \n┌─┴─┐\nb   c\n",
			contentType: "text/plain; charset=utf-8",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestServer(Config{}, tt.defaults).Handler()
			rec := do(t, h, http.MethodPost, tt.target, "a,b\na,c\n")
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			assert.Equal(t, tt.want, rec.Body.String())
			assert.Equal(t, tt.contentType, rec.Header().Get("Content-Type"))
		})
	}
}

func TestRenderFormats(t *testing.T) {
	h := newTestServer(Config{}, pipeline.Options{}).Handler()

	rec := do(t, h, http.MethodPost, "/render?format=dot", "a,b\n")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"a" -> "b";`)
	assert.Equal(t, "text/vnd.graphviz; charset=utf-8", rec.Header().Get("Content-Type"))

	rec = do(t, h, http.MethodPost, "/render?format=json", "a,b\n")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.True(t, json.Valid(rec.Body.Bytes()))
}

func TestRenderErrors(t *testing.T) {
	tests := []struct {
		name   string
		target string
		body   string
		status int
		code   string
	}{
		{"cycle", "/render", "r,a\na,b\nb,a\n", http.StatusBadRequest, "CYCLE"},
		{"multiple roots", "/render", "a,b\nc,d\n", http.StatusBadRequest, "MULTIPLE_ROOTS"},
		{"bad orientation", "/render?orientation=up", "a,b\n", http.StatusBadRequest, "INVALID_ORIENTATION"},
		{"bad bool", "/render?trim=maybe", "a,b\n", http.StatusBadRequest, "INVALID_INPUT"},
		{"malformed", "/render", "a,b,c\n", http.StatusBadRequest, "INVALID_INPUT"},
		{"unknown root", "/render?root=z", "a,b\n", http.StatusBadRequest, "UNKNOWN_ROOT"},
	}
	h := newTestServer(Config{}, pipeline.Options{}).Handler()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, tt.target, tt.body)
			assert.Equal(t, tt.status, rec.Code)
			resp := decodeError(t, rec)
			assert.Equal(t, tt.code, resp.Code)
			assert.NotEmpty(t, resp.Error)
		})
	}
}

func TestRenderBodyTooLarge(t *testing.T) {
	h := newTestServer(Config{MaxBodyBytes: 16}, pipeline.Options{}).Handler()
	rec := do(t, h, http.MethodPost, "/render", strings.Repeat("a,b\n", 100))
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Equal(t, "INVALID_INPUT", decodeError(t, rec).Code)
}

func TestRenderTreeTooLarge(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 40; i++ {
		fmt.Fprintf(&b, "n%d,n%dl\nn%d,n%dr\nn%dl,n%d\nn%dr,n%d\n", i, i, i, i, i, i+1, i, i+1)
	}
	h := newTestServer(Config{}, pipeline.Options{}).Handler()

	rec := do(t, h, http.MethodPost, "/render", b.String())
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "TREE_TOO_LARGE", decodeError(t, rec).Code)

	rec = do(t, h, http.MethodPost, "/render?format=dot", b.String())
	assert.Equal(t, http.StatusOK, rec.Code)

	small := newTestServer(Config{}, pipeline.Options{MaxNodes: 2}).Handler()
	rec = do(t, small, http.MethodPost, "/render", "a,b\na,c\n")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestRenderMethodNotAllowed(t *testing.T) {
	h := newTestServer(Config{}, pipeline.Options{}).Handler()
	rec := do(t, h, http.MethodGet, "/render", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestRequestID(t *testing.T) {
	h := newTestServer(Config{}, pipeline.Options{}).Handler()

	rec := do(t, h, http.MethodGet, "/healthz", "")
	_, err := uuid.Parse(rec.Header().Get(RequestIDHeader))
	assert.NoError(t, err, "generated request ID should be a UUID")
	assert.True(t, strings.HasPrefix(rec.Header().Get("Server"), "boxtree/"))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))

	req = httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(RequestIDHeader, strings.Repeat("x", maxRequestIDLength+1))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.NotEqual(t, strings.Repeat("x", maxRequestIDLength+1), rec.Header().Get(RequestIDHeader))
}

func TestRequestIDFromContext(t *testing.T) {
	assert.Empty(t, RequestIDFromContext(context.Background()))

	var seen string
	h := requestID(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = RequestIDFromContext(r.Context())
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, rec.Header().Get(RequestIDHeader), seen)
}

func TestRequestLogger(t *testing.T) {
	var buf strings.Builder
	logger := log.New(&buf)
	h := requestLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/tea", nil))

	out := buf.String()
	assert.Contains(t, out, "status=418")
	assert.Contains(t, out, "path=/tea")
}

func TestServeShutdown(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	s := newTestServer(Config{}, pipeline.Options{})
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}
