package site

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/Vovarama1992/go-utils/logger"
	"go.uber.org/zap"
)

func nopLogger() *logger.ZapLogger {
	return logger.NewZapLogger(zap.NewNop().Sugar())
}

// fakeAPI serves canned public endpoints; unknown paths answer 500.
type fakeAPI struct {
	srv    *httptest.Server
	mu     sync.Mutex
	bodies map[string]string
	posted []string
}

func newFakeAPI(t *testing.T, bodies map[string]string) *fakeAPI {
	t.Helper()
	f := &fakeAPI{bodies: bodies}
	f.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost && r.URL.Path == "/api/requests/callback" {
			buf, _ := io.ReadAll(r.Body)
			f.mu.Lock()
			f.posted = append(f.posted, string(buf))
			f.mu.Unlock()
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"id":1}`))
			return
		}
		body, ok := f.bodies[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakeAPI) url() string { return f.srv.URL + "/api" }

func (f *fakeAPI) Posted() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.posted...)
}
