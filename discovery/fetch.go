package discovery

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gobwas/glob"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/cloudchase/oi-hub/hub"
)

// Hub is the registry the pipelines read from. *hub.Client implements it.
type Hub interface {
	Search(ctx context.Context, params hub.SearchParams) ([]hub.ModelSummary, error)
	ModelDetail(ctx context.Context, repoID string) (hub.ModelDetail, error)
}

// Fetcher builds the dynamic catalog: it runs the planned queries one by
// one, drops hits that cannot fit the memory budget, normalizes each
// surviving repository's files and keeps the most downloaded entry per id.
type Fetcher struct {
	Hub       Hub
	Estimator Estimator

	// QueryLimit overrides the per-query hit cap when positive.
	QueryLimit int

	// Exclude drops repositories whose lowercased id matches any pattern.
	Exclude []glob.Glob

	Log zerolog.Logger
}

// NewFetcher returns a Fetcher using FetchEstimator and the global logger.
func NewFetcher(h Hub) *Fetcher {
	return &Fetcher{
		Hub:       h,
		Estimator: FetchEstimator,
		Log:       log.Logger,
	}
}

// CompilePatterns compiles repository exclude patterns. '*' does not cross
// the '/' between author and repository name.
func CompilePatterns(patterns []string) ([]glob.Glob, error) {
	globs := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(strings.ToLower(p), '/')
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", p, err)
		}
		globs = append(globs, g)
	}
	return globs, nil
}

// Fetch runs a full discovery pass for a machine with totalMemGB of memory.
// Failed queries and repositories are skipped. Fetch fails only when the
// context ends or when every query failed.
func (f *Fetcher) Fetch(ctx context.Context, totalMemGB float64, orgs []string) ([]CatalogEntry, error) {
	queries := PlanQueries(totalMemGB, orgs)
	seen := NewDedup()

	failed := 0
	for _, q := range queries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if f.QueryLimit > 0 {
			q.Limit = f.QueryLimit
		}

		hits, err := f.Hub.Search(ctx, q.Params())
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			failed++
			f.Log.Warn().Err(err).Str("query", q.String()).Msg("search failed, skipping query")
			continue
		}
		f.Log.Debug().Str("query", q.String()).Int("hits", len(hits)).Msg("search done")

		for _, hit := range hits {
			if err := f.consider(ctx, q, hit, totalMemGB, seen); err != nil {
				return nil, err
			}
		}
	}

	if len(queries) > 0 && failed == len(queries) {
		return nil, fmt.Errorf("%w: all %d queries failed", ErrRegistryUnavailable, failed)
	}
	return seen.Entries(), nil
}

// consider turns one search hit into a catalog entry and offers it to
// seen. Only context errors are returned; everything else skips the hit.
func (f *Fetcher) consider(ctx context.Context, q SearchQuery, hit hub.ModelSummary, budgetGB float64, seen *Dedup) error {
	cand := f.candidate(hit, budgetGB)
	if cand == nil {
		return nil
	}
	logger := f.Log.With().Str("repo", cand.RepoID).Logger()

	if !seen.Beats(cand.DisplayID, cand.Downloads) {
		logger.Debug().Str("id", cand.DisplayID).Msg("more downloaded duplicate already kept")
		return nil
	}

	entry, err := f.entry(ctx, q, *cand)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if errors.Is(err, ErrNoArtifacts) {
			logger.Debug().Msg("no gguf artifacts, skipping repository")
		} else {
			logger.Warn().Err(err).Msg("detail fetch failed, skipping repository")
		}
		return nil
	}

	seen.Offer(entry, cand.Downloads)
	return nil
}

// candidate applies the exclude patterns and the memory fit check.
func (f *Fetcher) candidate(hit hub.ModelSummary, budgetGB float64) *CandidateModel {
	repoID := hit.RepoID()
	if repoID == "" {
		return nil
	}
	lower := strings.ToLower(repoID)
	for _, g := range f.Exclude {
		if g.Match(lower) {
			f.Log.Debug().Str("repo", repoID).Msg("excluded by pattern")
			return nil
		}
	}

	est := f.estimator().Evaluate(repoID, budgetGB)
	if !est.Fits {
		f.Log.Debug().Str("repo", repoID).Float64("footprint_gb", *est.FootprintGB).Msg("does not fit memory budget")
		return nil
	}
	return &CandidateModel{
		RepoID:      repoID,
		DisplayID:   Slug(repoID),
		Downloads:   hit.Downloads,
		Likes:       hit.Likes,
		ParamsB:     est.ParamsB,
		FootprintGB: est.FootprintGB,
	}
}

// entry fetches the repository listing and builds its catalog entry.
func (f *Fetcher) entry(ctx context.Context, q SearchQuery, cand CandidateModel) (CatalogEntry, error) {
	detail, err := f.Hub.ModelDetail(ctx, cand.RepoID)
	if err != nil {
		return CatalogEntry{}, err
	}

	groups := Normalize(cand.RepoID, FromSiblings(detail.Siblings), FormatGGUF)
	rep, ok := SelectRepresentative(groups)
	if !ok {
		return CatalogEntry{}, ErrNoArtifacts
	}

	minVRAM := DefaultMinVRAMGB
	if cand.FootprintGB != nil {
		minVRAM = *cand.FootprintGB
	}
	org := q.Org
	if org == "" {
		org = repoAuthor(cand.RepoID)
	}

	return CatalogEntry{
		ID:               cand.DisplayID,
		Name:             DisplayName(cand.RepoID),
		Repo:             cand.RepoID,
		FilenameTemplate: rep.Template(),
		Quant:            rep.TemplateQuant(),
		MinVRAMGB:        minVRAM,
		Description: fmt.Sprintf("%s downloads, %s likes on HuggingFace",
			humanize.Comma(int64(cand.Downloads)), humanize.Comma(int64(cand.Likes))),
		Tags: []string{"dynamic", strings.ToLower(org)},
	}, nil
}

func (f *Fetcher) estimator() Estimator {
	if f.Estimator == (Estimator{}) {
		return FetchEstimator
	}
	return f.Estimator
}
