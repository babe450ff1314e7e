package hub

import (
	"net/url"
	"strconv"
)

// ModelSummary is one hit returned by the models search endpoint.
type ModelSummary struct {
	ID        string   `json:"id"`
	ModelID   string   `json:"modelId,omitempty"`
	Downloads int      `json:"downloads"`
	Likes     int      `json:"likes"`
	Tags      []string `json:"tags,omitempty"`
}

// RepoID returns the repository id, falling back to the legacy modelId field.
func (m ModelSummary) RepoID() string {
	if m.ID != "" {
		return m.ID
	}
	return m.ModelID
}

// Sibling is one file in a repository manifest.
type Sibling struct {
	RFilename string `json:"rfilename"`
	Size      int64  `json:"size,omitempty"`
}

// ModelDetail is the response of the model detail endpoint.
type ModelDetail struct {
	ID       string    `json:"id"`
	Siblings []Sibling `json:"siblings"`
}

// SearchParams are the query parameters accepted by the search endpoint.
// Zero values are omitted from the request.
type SearchParams struct {
	Author    string
	Search    string
	Sort      string
	Direction int
	Limit     int
	Filter    string
}

// Values encodes the parameters in the order the hub documents them.
func (p SearchParams) Values() url.Values {
	v := url.Values{}
	if p.Author != "" {
		v.Set("author", p.Author)
	}
	if p.Search != "" {
		v.Set("search", p.Search)
	}
	if p.Sort != "" {
		v.Set("sort", p.Sort)
	}
	if p.Direction != 0 {
		v.Set("direction", strconv.Itoa(p.Direction))
	}
	if p.Limit > 0 {
		v.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Filter != "" {
		v.Set("filter", p.Filter)
	}
	return v
}
