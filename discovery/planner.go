package discovery

import (
	"strings"

	"github.com/cloudchase/oi-hub/hub"
)

const (
	// QueryLimit caps the hits requested per planned query.
	QueryLimit = 5

	// SearchLimit caps the hits requested by an advisory keyword search.
	SearchLimit = 20

	// DefaultFormat scopes every query to GGUF repositories.
	DefaultFormat = "gguf"

	// DefaultTask scopes every query to text generation models.
	DefaultTask = "text-generation"
)

// sizeBuckets lists parameter-size tags unlocked at each memory threshold.
var sizeBuckets = []struct {
	minGB float64
	tags  []string
}{
	{0, []string{"1b", "3b"}},
	{8, []string{"7b", "8b"}},
	{16, []string{"14b"}},
	{32, []string{"30b", "32b", "34b"}},
	{64, []string{"70b", "72b"}},
}

// SearchQuery is one registry search.
type SearchQuery struct {
	// Org restricts results to one author. Empty searches all authors.
	Org string

	// SizeTag ("8b") or Keyword is the free-text part of the search.
	SizeTag string
	Keyword string

	Format string
	Task   string
	Limit  int
}

// Params renders the query as hub search parameters, most downloaded first.
func (q SearchQuery) Params() hub.SearchParams {
	var terms []string
	for _, t := range []string{q.SizeTag, q.Keyword, q.Format} {
		if t != "" {
			terms = append(terms, t)
		}
	}
	return hub.SearchParams{
		Author:    q.Org,
		Search:    strings.Join(terms, " "),
		Sort:      "downloads",
		Direction: -1,
		Limit:     q.Limit,
		Filter:    q.Task,
	}
}

func (q SearchQuery) String() string {
	p := q.Params()
	if p.Author == "" {
		return p.Search
	}
	return p.Author + ":" + p.Search
}

// SizeBuckets returns the size tags worth searching for a machine with
// totalMemGB of memory. The base buckets are always present.
func SizeBuckets(totalMemGB float64) []string {
	var tags []string
	for _, b := range sizeBuckets {
		if totalMemGB >= b.minGB {
			tags = append(tags, b.tags...)
		}
	}
	return tags
}

// PlanQueries returns one query per organization and size bucket, ordered
// by organization first. Blank organizations are dropped; if none are
// left a single unscoped organization is planned.
func PlanQueries(totalMemGB float64, orgs []string) []SearchQuery {
	var scoped []string
	for _, org := range orgs {
		if org = strings.TrimSpace(org); org != "" {
			scoped = append(scoped, org)
		}
	}
	if len(scoped) == 0 {
		scoped = []string{""}
	}

	tags := SizeBuckets(totalMemGB)
	queries := make([]SearchQuery, 0, len(scoped)*len(tags))
	for _, org := range scoped {
		for _, tag := range tags {
			queries = append(queries, SearchQuery{
				Org:     org,
				SizeTag: tag,
				Format:  DefaultFormat,
				Task:    DefaultTask,
				Limit:   QueryLimit,
			})
		}
	}
	return queries
}

// KeywordQuery builds the advisory search for a user keyword.
func KeywordQuery(keyword string) SearchQuery {
	return SearchQuery{
		Keyword: strings.TrimSpace(keyword),
		Format:  DefaultFormat,
		Task:    DefaultTask,
		Limit:   SearchLimit,
	}
}
