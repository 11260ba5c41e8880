package admin

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/Vovarama1992/visus/internal/mediapath"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testMediaBase = "http://localhost:8080/media"

// call is one request seen by the fake backend.
type call struct {
	Method   string
	Path     string
	RawQuery string
	Auth     string
	Body     []byte
	Fields   map[string]string
	File     string
	FileBody string
}

// backend is a scripted stand-in for the content API.
type backend struct {
	t      *testing.T
	srv    *httptest.Server
	mu     sync.Mutex
	calls  []call
	routes map[string]http.HandlerFunc
}

func newBackend(t *testing.T) *backend {
	t.Helper()
	b := &backend{t: t, routes: map[string]http.HandlerFunc{}}
	b.srv = httptest.NewServer(http.HandlerFunc(b.serve))
	t.Cleanup(b.srv.Close)
	return b
}

func (b *backend) on(method, path string, h http.HandlerFunc) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.routes[method+" "+path] = h
}

func (b *backend) serve(w http.ResponseWriter, r *http.Request) {
	c := call{
		Method:   r.Method,
		Path:     r.URL.Path,
		RawQuery: r.URL.RawQuery,
		Auth:     r.Header.Get("Authorization"),
	}
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(1 << 20); err == nil {
			c.Fields = map[string]string{}
			for k, v := range r.MultipartForm.Value {
				c.Fields[k] = v[0]
			}
			if fh := r.MultipartForm.File["file"]; len(fh) > 0 {
				c.File = fh[0].Filename
				f, err := fh[0].Open()
				if err == nil {
					body, _ := io.ReadAll(f)
					c.FileBody = string(body)
					f.Close()
				}
			}
		}
	} else {
		c.Body, _ = io.ReadAll(r.Body)
	}

	b.mu.Lock()
	b.calls = append(b.calls, c)
	h := b.routes[r.Method+" "+r.URL.Path]
	b.mu.Unlock()

	if h == nil {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	h(w, r)
}

func (b *backend) Calls() []call {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]call(nil), b.calls...)
}

func (b *backend) apiURL() string { return b.srv.URL + "/api" }

func respondJSON(status int, v any) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(v)
	}
}

func respondStatus(status int) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(status) }
}

func nopLogger() *logger.ZapLogger {
	return logger.NewZapLogger(zap.NewNop().Sugar())
}

func newTestController(t *testing.T, b *backend, loggedIn bool) *Controller {
	t.Helper()
	session, err := NewSession(&MemoryStore{})
	require.NoError(t, err)
	if loggedIn {
		require.NoError(t, session.Login("admin", "secret"))
	}
	return NewController(NewClient(b.apiURL(), 0), session, mediapath.NewPreview(testMediaBase), nopLogger())
}
