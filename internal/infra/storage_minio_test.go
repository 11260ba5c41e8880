package infra

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const bucketLocation = `<?xml version="1.0" encoding="UTF-8"?>
<LocationConstraint xmlns="http://s3.amazonaws.com/doc/2006-03-01/">us-east-1</LocationConstraint>`

// s3Fake answers the handful of S3 calls MinioStorage makes.
type s3Fake struct {
	mu           sync.Mutex
	bucketExists bool
	requests     []string
}

func (f *s3Fake) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	_, _ = io.Copy(io.Discard, r.Body)

	f.mu.Lock()
	f.requests = append(f.requests, r.Method+" "+r.URL.Path)
	exists := f.bucketExists
	f.mu.Unlock()

	isBucket := strings.Count(strings.Trim(r.URL.Path, "/"), "/") == 0
	switch {
	case r.Method == http.MethodGet && r.URL.Query().Has("location"):
		w.Header().Set("Content-Type", "application/xml")
		_, _ = io.WriteString(w, bucketLocation)
	case r.Method == http.MethodHead && isBucket:
		if !exists {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	case r.Method == http.MethodPut && isBucket:
		f.mu.Lock()
		f.bucketExists = true
		f.mu.Unlock()
		w.WriteHeader(http.StatusOK)
	case r.Method == http.MethodPut:
		w.Header().Set("ETag", `"d41d8cd98f00b204e9800998ecf8427e"`)
		w.WriteHeader(http.StatusOK)
	case r.Method == http.MethodDelete:
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusNotImplemented)
	}
}

func (f *s3Fake) Requests() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.requests...)
}

func newMinioTest(t *testing.T, bucketExists bool) (*MinioStorage, *s3Fake) {
	t.Helper()
	fake := &s3Fake{bucketExists: bucketExists}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	s, err := NewMinioStorage(MinioConfig{
		Endpoint:  srv.Listener.Addr().String(),
		AccessKey: "minio",
		SecretKey: "minio123",
		Bucket:    "visus",
	})
	require.NoError(t, err)
	return s, fake
}

func TestMinioStorage_RetriesBucketCheck(t *testing.T) {
	s, fake := newMinioTest(t, true)

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()
	require.Error(t, s.Delete(cancelled, "doctors/a.jpg"))

	require.NoError(t, s.Delete(context.Background(), "doctors/a.jpg"))
	require.NoError(t, s.Delete(context.Background(), "doctors/b.jpg"))

	heads := 0
	for _, req := range fake.Requests() {
		if req == "HEAD /visus/" || req == "HEAD /visus" {
			heads++
		}
	}
	assert.Equal(t, 1, heads, "bucket is checked again only until it succeeds")
	assert.Contains(t, fake.Requests(), "DELETE /visus/doctors/b.jpg")
}

func TestMinioStorage_CreatesMissingBucket(t *testing.T) {
	s, fake := newMinioTest(t, false)

	err := s.Save(context.Background(), "/doctors/a.jpg", strings.NewReader("img"), 3, "image/jpeg")
	require.NoError(t, err)

	reqs := fake.Requests()
	assert.Contains(t, reqs, "PUT /visus/doctors/a.jpg")
	var madeBucket bool
	for _, req := range reqs {
		if req == "PUT /visus/" || req == "PUT /visus" {
			madeBucket = true
		}
	}
	assert.True(t, madeBucket, reqs)
}

func TestMinioStorage_PingAndPublicURL(t *testing.T) {
	s, _ := newMinioTest(t, true)

	require.NoError(t, s.Ping(context.Background()))
	assert.True(t, strings.HasSuffix(s.PublicURL("/doctors/a.jpg"), "/visus/doctors/a.jpg"))

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Error(t, s.Ping(cancelled))
}
