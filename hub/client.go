// Package hub is a small read-only client for the HuggingFace Hub model API:
// the models search endpoint, the model detail endpoint and raw file
// downloads from a repository's main revision.
package hub

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	// DefaultBaseURL is the public HuggingFace Hub.
	DefaultBaseURL = "https://huggingface.co"

	// DefaultUserAgent identifies requests made on behalf of the oi CLI.
	DefaultUserAgent = "oi-cli/1.0"

	// DefaultTimeout bounds every API round trip.
	DefaultTimeout = 15 * time.Second
)

// Options configures a Client. Zero values select the defaults above.
type Options struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration

	// Retries is the number of extra attempts for a failed API call.
	// Zero means a failed call is abandoned.
	Retries int

	Logger *zerolog.Logger
}

// Client talks to the hub. It performs one request at a time per call and
// holds no mutable state, so it is safe for concurrent use.
type Client struct {
	baseURL   string
	userAgent string
	api       *retryablehttp.Client
	files     *retryablehttp.Client
	log       zerolog.Logger
}

// NewClient creates a hub client.
func NewClient(opts Options) *Client {
	logger := log.Logger
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Client{
		baseURL:   baseURL,
		userAgent: userAgent,
		api:       newTransport(timeout, opts.Retries, logger),
		// file bodies can take minutes; only the context bounds them
		files: newTransport(0, opts.Retries, logger),
		log:   logger,
	}
}

func newTransport(timeout time.Duration, retries int, logger zerolog.Logger) *retryablehttp.Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = max(retries, 0)
	rc.HTTPClient.Timeout = timeout
	rc.Logger = leveledLogger{log: logger}
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler
	return rc
}

// BaseURL returns the normalized base URL.
func (c *Client) BaseURL() string { return c.baseURL }

// Search queries the models search endpoint.
func (c *Client) Search(ctx context.Context, params SearchParams) ([]ModelSummary, error) {
	endpoint := c.baseURL + "/api/models?" + params.Values().Encode()

	var results []ModelSummary
	if err := c.getJSON(ctx, endpoint, &results); err != nil {
		return nil, fmt.Errorf("searching models %q: %w", params.Search, err)
	}
	return results, nil
}

// ModelDetail fetches a repository's file listing, including file sizes.
func (c *Client) ModelDetail(ctx context.Context, repoID string) (ModelDetail, error) {
	endpoint := c.baseURL + "/api/models/" + escapePath(repoID) + "?blobs=true"

	var detail ModelDetail
	if err := c.getJSON(ctx, endpoint, &detail); err != nil {
		return ModelDetail{}, fmt.Errorf("fetching model %s: %w", repoID, err)
	}
	return detail, nil
}

// FileURL returns the download URL of a file on the repository's main revision.
func (c *Client) FileURL(repoID, filename string) string {
	return c.baseURL + "/" + escapePath(repoID) + "/resolve/main/" + escapePath(filename)
}

// OpenFile starts downloading a repository file. The caller must close the
// returned body. size is -1 when the server does not announce a length.
func (c *Client) OpenFile(ctx context.Context, repoID, filename string) (body io.ReadCloser, size int64, err error) {
	endpoint := c.FileURL(repoID, filename)

	resp, err := c.do(ctx, c.files, endpoint)
	if err != nil {
		return nil, 0, fmt.Errorf("downloading %s/%s: %w", repoID, filename, err)
	}
	return resp.Body, resp.ContentLength, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, v any) error {
	resp, err := c.do(ctx, c.api, endpoint)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: decoding body: %v", ErrBadResponse, err)
	}
	return nil
}

// do issues a GET and maps transport failures and non-2xx statuses onto the
// package sentinel errors. On success the response body is left open.
func (c *Client) do(ctx context.Context, rc *retryablehttp.Client, endpoint string) (*http.Response, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	c.log.Debug().Str("url", endpoint).Msg("hub request")

	resp, err := rc.Do(req)
	if err != nil {
		if resp != nil {
			resp.Body.Close()
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		resp.Body.Close()
		return nil, ErrNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		resp.Body.Close()
		return nil, fmt.Errorf("%w: status %d: %s", ErrBadResponse, resp.StatusCode, strings.TrimSpace(string(msg)))
	}
	return resp, nil
}

// escapePath escapes each segment of a slash separated path.
func escapePath(p string) string {
	parts := strings.Split(p, "/")
	for i, part := range parts {
		parts[i] = url.PathEscape(part)
	}
	return strings.Join(parts, "/")
}
