package innebandy

import (
	"context"
	"net/http"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/go-resty/resty/v2"
)

// PageFetcher retrieves a rendered page and returns its structured content.
// Implementations handle cookie dialogs and waiting; callers only see the
// Page or an error.
type PageFetcher interface {
	Fetch(ctx context.Context, url string) (*Page, error)
}

// FetchFailure records a player whose profile page could not be fetched.
type FetchFailure struct {
	Label string
	URL   string
	Err   error
}

// HTTPFetcher fetches static HTML without a browser. It makes one attempt
// per URL.
type HTTPFetcher struct {
	client *resty.Client
}

// NewHTTPFetcher returns an HTTPFetcher with the given request timeout.
func NewHTTPFetcher(timeout time.Duration) *HTTPFetcher {
	c := resty.New().
		SetTimeout(timeout).
		SetHeader("User-Agent", ua).
		SetHeader("Accept-Language", "sv-SE,sv;q=0.9,en;q=0.8")
	return &HTTPFetcher{client: c}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (*Page, error) {
	resp, err := f.client.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, errors.Wrapf(err, "get %s", url)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, errors.Newf("status %d for %s (body len=%d)", resp.StatusCode(), url, len(resp.Body()))
	}
	return ParsePage(url, resp.String())
}
