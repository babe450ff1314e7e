package discovery

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlug(t *testing.T) {
	tests := []struct {
		repo string
		want string
	}{
		{"meta-llama/Llama-3-8B-Instruct-GGUF", "llama-3-8b"},
		{"Qwen/Qwen2.5-7B-Instruct-GGUF", "qwen2-5-7b"},
		{"bartowski/gemma-2-9b-it-GGUF", "gemma-2-9b-it"},
		{"microsoft/Phi-3-mini-4k-instruct-gguf", "phi-3-mini-4k"},
		{"Org/Llama-3-8B-Instruct.GGUF", "llama-3-8b"},
		{"org/Mistral-7B_gguf", "mistral-7b"},
		{"org/Model__v1.0-GGUF", "model-v1-0"},
		{"NoAuthor-1B", "noauthor-1b"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Slug(tt.repo), tt.repo)
	}
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Llama-3-8B-Instruct", DisplayName("meta-llama/Llama-3-8B-Instruct-GGUF"))
	assert.Equal(t, "phi-3-mini", DisplayName("microsoft/phi-3-mini-gguf"))
	assert.Equal(t, "Plain", DisplayName("Plain"))
}

func TestRepoAuthor(t *testing.T) {
	assert.Equal(t, "Qwen", repoAuthor("Qwen/Qwen3-8B-GGUF"))
	assert.Equal(t, "", repoAuthor("bare"))
	assert.Equal(t, "Qwen3-8B-GGUF", repoName("Qwen/Qwen3-8B-GGUF"))
}
