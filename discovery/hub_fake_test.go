package discovery

import (
	"context"
	"errors"

	"github.com/cloudchase/oi-hub/hub"
)

var errFakeTransport = errors.New("fake transport failure")

// fakeHub serves canned search hits keyed by "author|search" and canned
// listings keyed by repository id. It records every call.
type fakeHub struct {
	hits       map[string][]hub.ModelSummary
	searchErrs map[string]error
	details    map[string]hub.ModelDetail
	detailErrs map[string]error
	failAll    error

	searches    []hub.SearchParams
	detailCalls []string
}

func searchKey(author, search string) string { return author + "|" + search }

func (f *fakeHub) Search(_ context.Context, p hub.SearchParams) ([]hub.ModelSummary, error) {
	f.searches = append(f.searches, p)
	if f.failAll != nil {
		return nil, f.failAll
	}
	key := searchKey(p.Author, p.Search)
	if err := f.searchErrs[key]; err != nil {
		return nil, err
	}
	return f.hits[key], nil
}

func (f *fakeHub) ModelDetail(_ context.Context, repoID string) (hub.ModelDetail, error) {
	f.detailCalls = append(f.detailCalls, repoID)
	if err := f.detailErrs[repoID]; err != nil {
		return hub.ModelDetail{}, err
	}
	d, ok := f.details[repoID]
	if !ok {
		return hub.ModelDetail{}, hub.ErrNotFound
	}
	return d, nil
}

func ggufListing(repoID string, names ...string) hub.ModelDetail {
	d := hub.ModelDetail{ID: repoID}
	for i, n := range names {
		d.Siblings = append(d.Siblings, hub.Sibling{RFilename: n, Size: int64(1000 * (i + 1))})
	}
	d.Siblings = append(d.Siblings, hub.Sibling{RFilename: "README.md", Size: 10})
	return d
}
