package storage

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

type recordedRequest struct {
	method      string
	path        string
	body        string
	contentType string
}

func newFakeS3(t *testing.T) (*httptest.Server, *[]recordedRequest) {
	t.Helper()
	var mu sync.Mutex
	requests := []recordedRequest{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		mu.Lock()
		requests = append(requests, recordedRequest{
			method:      r.Method,
			path:        r.URL.Path,
			body:        string(body),
			contentType: r.Header.Get("Content-Type"),
		})
		mu.Unlock()
		if r.Method == http.MethodDelete {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(server.Close)
	return server, &requests
}

func TestBucketUploadAndDelete(t *testing.T) {
	server, requests := newFakeS3(t)
	ctx := context.Background()

	bucket, err := NewBucket(ctx, Config{
		Endpoint:        server.URL,
		AccessKeyID:     "key",
		SecretAccessKey: "secret",
		PublicBaseURL:   "https://project.supabase.co",
	})
	require.NoError(t, err)
	assert.Equal(t, DefaultBucket, bucket.Name())

	require.NoError(t, bucket.Upload(ctx, "abc-123.png", strings.NewReader("png-bytes"), 9, "image/png"))
	require.NoError(t, bucket.Delete(ctx, "abc-123.png"))

	require.Len(t, *requests, 2)
	put := (*requests)[0]
	assert.Equal(t, http.MethodPut, put.method)
	assert.Equal(t, "/portfolio-media/abc-123.png", put.path)
	assert.Equal(t, "png-bytes", put.body)
	assert.Equal(t, "image/png", put.contentType)

	del := (*requests)[1]
	assert.Equal(t, http.MethodDelete, del.method)
	assert.Equal(t, "/portfolio-media/abc-123.png", del.path)
}

func TestBucketUploadFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	bucket, err := NewBucket(context.Background(), Config{Endpoint: server.URL, AccessKeyID: "k", SecretAccessKey: "s"})
	require.NoError(t, err)

	err = bucket.Upload(context.Background(), "x.png", strings.NewReader("x"), 1, "image/png")
	assert.Error(t, err)
}

func TestPublicURL(t *testing.T) {
	assert.Equal(t,
		"https://project.supabase.co/storage/v1/object/public/portfolio-media/a%20b.png",
		PublicURL("https://project.supabase.co/", "portfolio-media", "a b.png"))

	bucket := &Bucket{name: "portfolio-media", publicBase: "https://project.supabase.co"}
	path, ok := bucket.ObjectPath(bucket.PublicURL("dir/a b.png"))
	assert.True(t, ok)
	assert.Equal(t, "dir/a b.png", path)

	_, ok = bucket.ObjectPath("https://elsewhere.example/x.png")
	assert.False(t, ok)
}

func TestNewBucketRequiresEndpoint(t *testing.T) {
	_, err := NewBucket(context.Background(), Config{})
	assert.Error(t, err)
}
