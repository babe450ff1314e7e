package discovery

import (
	"context"
	"sort"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Searcher answers advisory keyword searches. Its fit check is looser than
// the Fetcher's because nothing it returns is persisted.
type Searcher struct {
	Hub       Hub
	Estimator Estimator

	// Limit overrides SearchLimit when positive.
	Limit int

	Log zerolog.Logger
}

// NewSearcher returns a Searcher using SearchEstimator and the global logger.
func NewSearcher(h Hub) *Searcher {
	return &Searcher{
		Hub:       h,
		Estimator: SearchEstimator,
		Log:       log.Logger,
	}
}

// Search looks up GGUF repositories matching keyword and keeps those that
// may fit memGB (no filtering when memGB <= 0). Results are sorted by
// downloads, most first. A registry failure is returned as is.
func (s *Searcher) Search(ctx context.Context, keyword string, memGB float64) ([]SearchResult, error) {
	q := KeywordQuery(keyword)
	if q.Keyword == "" {
		return nil, ErrEmptyKeyword
	}
	if s.Limit > 0 {
		q.Limit = s.Limit
	}

	hits, err := s.Hub.Search(ctx, q.Params())
	if err != nil {
		return nil, err
	}

	est := s.Estimator
	if est == (Estimator{}) {
		est = SearchEstimator
	}

	results := make([]SearchResult, 0, len(hits))
	for _, hit := range hits {
		repoID := hit.RepoID()
		if repoID == "" {
			continue
		}
		e := est.Evaluate(repoID, memGB)
		if !e.Fits {
			s.Log.Debug().Str("repo", repoID).Float64("est_size_gb", *e.FootprintGB).Msg("too large for memory budget")
			continue
		}
		results = append(results, SearchResult{
			Repo:      repoID,
			Name:      repoName(repoID),
			Downloads: hit.Downloads,
			EstSizeGB: e.FootprintGB,
			Format:    formatFromTags(hit.Tags, q.Format),
		})
	}

	sort.SliceStable(results, func(i, j int) bool { return results[i].Downloads > results[j].Downloads })
	return results, nil
}

// formatFromTags returns the first repository tag naming a weight format,
// or fallback.
func formatFromTags(tags []string, fallback string) WeightFormat {
	for _, t := range tags {
		if f, err := ParseWeightFormat(t); err == nil && f != FormatUnknown {
			return f
		}
	}
	return WeightFormat(fallback)
}
