package discovery

import (
	"regexp"
	"strings"
)

var hyphenRun = regexp.MustCompile(`-+`)

var slugPunct = strings.NewReplacer(".", "-", "_", "-")

// repoName returns the trailing path segment of a repository id.
func repoName(repoID string) string {
	return repoID[strings.LastIndex(repoID, "/")+1:]
}

// repoAuthor returns the leading path segment of a repository id, or ""
// for ids without one.
func repoAuthor(repoID string) string {
	if i := strings.Index(repoID, "/"); i > 0 {
		return repoID[:i]
	}
	return ""
}

// Slug derives the short catalog id of a repository:
// "meta-llama/Llama-3-8B-Instruct-GGUF" becomes "llama-3-8b".
//
// The result keys the catalog cache, so changes here rename every entry.
func Slug(repoID string) string {
	id := strings.ToLower(repoName(repoID))
	id = strings.ReplaceAll(id, "-instruct", "")
	id = slugPunct.Replace(id)
	id = hyphenRun.ReplaceAllString(id, "-")
	id = strings.Trim(id, "-")
	// ".GGUF" and "_gguf" suffixes only become "-gguf" after punctuation
	// is normalized
	id = strings.TrimSuffix(id, "-gguf")
	return strings.Trim(id, "-")
}

// DisplayName is the repository name without its GGUF suffix.
func DisplayName(repoID string) string {
	name := repoName(repoID)
	name = strings.ReplaceAll(name, "-GGUF", "")
	return strings.ReplaceAll(name, "-gguf", "")
}
