package hub

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.Handler, opts Options) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	nop := zerolog.Nop()
	opts.BaseURL = srv.URL + "/"
	opts.Logger = &nop
	return NewClient(opts)
}

func TestSearchParamsValues(t *testing.T) {
	p := SearchParams{
		Author:    "Qwen",
		Search:    "8b gguf",
		Sort:      "downloads",
		Direction: -1,
		Limit:     5,
		Filter:    "text-generation",
	}
	assert.Equal(t,
		"author=Qwen&direction=-1&filter=text-generation&limit=5&search=8b+gguf&sort=downloads",
		p.Values().Encode())

	assert.Empty(t, SearchParams{}.Values().Encode())
}

func TestSearch(t *testing.T) {
	var gotQuery, gotUA string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/models", r.URL.Path)
		gotQuery = r.URL.RawQuery
		gotUA = r.Header.Get("User-Agent")
		_, _ = io.WriteString(w, `[
			{"id": "Qwen/Qwen3-8B-GGUF", "downloads": 1200, "likes": 40, "tags": ["gguf"]},
			{"modelId": "legacy/Model-1B-GGUF", "downloads": 3}
		]`)
	}), Options{})

	got, err := c.Search(context.Background(), SearchParams{Author: "Qwen", Search: "8b gguf", Limit: 5})
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "Qwen/Qwen3-8B-GGUF", got[0].RepoID())
	assert.Equal(t, 1200, got[0].Downloads)
	assert.Equal(t, 40, got[0].Likes)
	assert.Equal(t, []string{"gguf"}, got[0].Tags)
	assert.Equal(t, "legacy/Model-1B-GGUF", got[1].RepoID())

	assert.Equal(t, "author=Qwen&limit=5&search=8b+gguf", gotQuery)
	assert.Equal(t, DefaultUserAgent, gotUA)
}

func TestModelDetail(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/models/bartowski/Llama-3-8B-GGUF", r.URL.Path)
		assert.Equal(t, "true", r.URL.Query().Get("blobs"))
		_, _ = io.WriteString(w, `{"id": "bartowski/Llama-3-8B-GGUF", "siblings": [
			{"rfilename": "Llama-3-8B-Q4_K_M.gguf", "size": 4920000000},
			{"rfilename": "README.md"}
		]}`)
	}), Options{UserAgent: "test/1"})

	got, err := c.ModelDetail(context.Background(), "bartowski/Llama-3-8B-GGUF")
	require.NoError(t, err)
	require.Len(t, got.Siblings, 2)
	assert.Equal(t, "Llama-3-8B-Q4_K_M.gguf", got.Siblings[0].RFilename)
	assert.Equal(t, int64(4920000000), got.Siblings[0].Size)
	assert.Zero(t, got.Siblings[1].Size)
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		want    error
	}{
		{
			name: "not found",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				http.Error(w, "missing", http.StatusNotFound)
			},
			want: ErrNotFound,
		},
		{
			name: "server error",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				http.Error(w, "boom", http.StatusInternalServerError)
			},
			want: ErrBadResponse,
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = io.WriteString(w, `{"siblings": [`)
			},
			want: ErrBadResponse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, tt.handler, Options{})
			_, err := c.ModelDetail(context.Background(), "org/repo")
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestTimeoutIsNetworkError(t *testing.T) {
	release := make(chan struct{})
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}), Options{Timeout: 50 * time.Millisecond})
	defer close(release)

	_, err := c.Search(context.Background(), SearchParams{Search: "x"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNetwork)
}

func TestNoRetryByDefault(t *testing.T) {
	calls := 0
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadGateway)
	}), Options{})

	_, err := c.Search(context.Background(), SearchParams{})
	require.ErrorIs(t, err, ErrBadResponse)
	assert.Equal(t, 1, calls)
}

func TestOpenFile(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/org/repo/resolve/main/sub/model-Q4_K_M.gguf", r.URL.Path)
		_, _ = io.WriteString(w, "GGUF....")
	}), Options{})

	body, size, err := c.OpenFile(context.Background(), "org/repo", "sub/model-Q4_K_M.gguf")
	require.NoError(t, err)
	defer body.Close()

	data, err := io.ReadAll(body)
	require.NoError(t, err)
	assert.Equal(t, "GGUF....", string(data))
	assert.Equal(t, int64(8), size)
}

func TestFileURLEscapesSegments(t *testing.T) {
	c := NewClient(Options{BaseURL: "https://hub.example/"})
	assert.Equal(t, "https://hub.example/org/repo/resolve/main/a%20b/c.gguf", c.FileURL("org/repo", "a b/c.gguf"))
	assert.Equal(t, "https://hub.example", c.BaseURL())
}
