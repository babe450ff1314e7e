package discovery

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloudchase/oi-hub/hub"
)

func newFetchHub() *fakeHub {
	return &fakeHub{
		hits: map[string][]hub.ModelSummary{
			searchKey("Qwen", "1b gguf"): {
				{ID: "Qwen/Mystery-GGUF", Downloads: 50, Likes: 1},
			},
			searchKey("Qwen", "3b gguf"): {
				{ID: "Qwen/Broken-3B-GGUF", Downloads: 70},
				{ID: "Qwen/Safe-3B", Downloads: 60},
			},
			searchKey("Qwen", "8b gguf"): {
				{ID: "Qwen/Qwen3-8B-GGUF", Downloads: 1000, Likes: 20},
				{ID: "Qwen/Qwen2.5-70B-Instruct-GGUF", Downloads: 9000},
			},
			searchKey("bartowski", "1b gguf"): {
				{ID: "bartowski/Llama-3.2-1B-Instruct-GGUF", Downloads: 2000, Likes: 1234},
			},
			searchKey("bartowski", "8b gguf"): {
				{ID: "bartowski/Qwen3-8B-GGUF", Downloads: 500},
			},
		},
		searchErrs: map[string]error{
			searchKey("bartowski", "3b gguf"): errFakeTransport,
		},
		details: map[string]hub.ModelDetail{
			"Qwen/Mystery-GGUF":  ggufListing("Qwen/Mystery-GGUF", "mystery-Q8_0.gguf", "mystery-Q4_K_M.gguf"),
			"Qwen/Safe-3B":       {ID: "Qwen/Safe-3B", Siblings: []hub.Sibling{{RFilename: "model.safetensors", Size: 5}}},
			"Qwen/Qwen3-8B-GGUF": ggufListing("Qwen/Qwen3-8B-GGUF", "Qwen3-8B-Q4_K_M.gguf", "Qwen3-8B-Q8_0.gguf"),
			"bartowski/Llama-3.2-1B-Instruct-GGUF": ggufListing("bartowski/Llama-3.2-1B-Instruct-GGUF",
				"Llama-3.2-1B-Instruct-Q8_0.gguf", "Llama-3.2-1B-Instruct-Q4_K_M.gguf"),
		},
		detailErrs: map[string]error{
			"Qwen/Broken-3B-GGUF": errFakeTransport,
		},
	}
}

func newTestFetcher(h Hub) *Fetcher {
	f := NewFetcher(h)
	f.Log = zerolog.Nop()
	return f
}

func TestFetch(t *testing.T) {
	h := newFetchHub()
	entries, err := newTestFetcher(h).Fetch(context.Background(), 8, []string{"Qwen", "bartowski"})
	require.NoError(t, err)

	var ids []string
	for _, e := range entries {
		ids = append(ids, e.ID)
	}
	assert.Equal(t, []string{"llama-3-2-1b", "qwen3-8b", "mystery"}, ids)

	llama := entries[0]
	assert.Equal(t, CatalogEntry{
		ID:               "llama-3-2-1b",
		Name:             "Llama-3.2-1B-Instruct",
		Repo:             "bartowski/Llama-3.2-1B-Instruct-GGUF",
		FilenameTemplate: "Llama-3.2-1B-Instruct-{quant}.gguf",
		Quant:            "Q4_K_M",
		MinVRAMGB:        1.1,
		Description:      "2,000 downloads, 1,234 likes on HuggingFace",
		Tags:             []string{"dynamic", "bartowski"},
	}, llama)

	qwen := entries[1]
	assert.Equal(t, "Qwen/Qwen3-8B-GGUF", qwen.Repo)
	assert.Equal(t, "Qwen3-8B-{quant}.gguf", qwen.FilenameTemplate)
	assert.InDelta(t, 5.3, qwen.MinVRAMGB, 1e-9)
	assert.Equal(t, []string{"dynamic", "qwen"}, qwen.Tags)

	mystery := entries[2]
	assert.Equal(t, DefaultMinVRAMGB, mystery.MinVRAMGB)
	assert.Equal(t, "mystery-{quant}.gguf", mystery.FilenameTemplate)

	assert.NotContains(t, h.detailCalls, "bartowski/Qwen3-8B-GGUF")
	assert.NotContains(t, h.detailCalls, "Qwen/Qwen2.5-70B-Instruct-GGUF")
	assert.Contains(t, h.detailCalls, "Qwen/Broken-3B-GGUF")

	require.Len(t, h.searches, 8)
	assert.Equal(t, hub.SearchParams{
		Author:    "Qwen",
		Search:    "1b gguf",
		Sort:      "downloads",
		Direction: -1,
		Limit:     QueryLimit,
		Filter:    DefaultTask,
	}, h.searches[0])
	assert.Equal(t, "bartowski", h.searches[4].Author)
}

func TestFetchUnscopedTagsAuthor(t *testing.T) {
	h := &fakeHub{
		hits: map[string][]hub.ModelSummary{
			searchKey("", "1b gguf"): {{ID: "TheOrg/Tiny-1B-GGUF", Downloads: 3}},
		},
		details: map[string]hub.ModelDetail{
			"TheOrg/Tiny-1B-GGUF": ggufListing("TheOrg/Tiny-1B-GGUF", "tiny-1b-Q4_K_M.gguf"),
		},
	}
	entries, err := newTestFetcher(h).Fetch(context.Background(), 4, nil)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, []string{"dynamic", "theorg"}, entries[0].Tags)
	assert.Len(t, h.searches, 2)
}

func TestFetchAllQueriesFailed(t *testing.T) {
	h := &fakeHub{failAll: errFakeTransport}
	_, err := newTestFetcher(h).Fetch(context.Background(), 8, []string{"Qwen"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRegistryUnavailable)
	assert.Len(t, h.searches, 4)
}

func TestFetchEmptyResultIsNotAnError(t *testing.T) {
	entries, err := newTestFetcher(&fakeHub{}).Fetch(context.Background(), 8, []string{"Qwen"})
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestFetchCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	h := newFetchHub()
	_, err := newTestFetcher(h).Fetch(ctx, 8, []string{"Qwen"})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, h.searches)
}

func TestFetchExcludeAndQueryLimit(t *testing.T) {
	excl, err := CompilePatterns([]string{"Bartowski/*", "*/mystery-*"})
	require.NoError(t, err)

	h := newFetchHub()
	f := newTestFetcher(h)
	f.Exclude = excl
	f.QueryLimit = 2

	entries, err := f.Fetch(context.Background(), 8, []string{"Qwen", "bartowski"})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "qwen3-8b", entries[0].ID)

	for _, p := range h.searches {
		assert.Equal(t, 2, p.Limit)
	}
	assert.NotContains(t, h.detailCalls, "bartowski/Llama-3.2-1B-Instruct-GGUF")
}

func TestCompilePatternsRejectsBadGlob(t *testing.T) {
	_, err := CompilePatterns([]string{"[unterminated"})
	assert.Error(t, err)
}
