package registry

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/quickcode-ui/quickcode/internal/errors"
)

// Fetcher retrieves a single remote document.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) ([]byte, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, rawURL string) ([]byte, error)

// Fetch calls f.
func (f FetcherFunc) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	return f(ctx, rawURL)
}

// RawURL rewrites a GitHub web UI blob URL into its raw content form:
//
//	https://github.com/o/r/blob/main/ui/Button.tsx
//	https://raw.githubusercontent.com/o/r/main/ui/Button.tsx
//
// Any other URL is returned unchanged.
func RawURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	if u.Host != "github.com" && u.Host != "www.github.com" {
		return rawURL
	}

	// /owner/repo/blob/ref/path...
	parts := strings.SplitN(strings.TrimPrefix(u.Path, "/"), "/", 4)
	if len(parts) < 4 || parts[2] != "blob" {
		return rawURL
	}
	u.Host = "raw.githubusercontent.com"
	u.Path = "/" + parts[0] + "/" + parts[1] + "/" + parts[3]
	u.RawPath = ""
	return u.String()
}

// HTTPFetcher fetches http(s) URLs with a single GET.
type HTTPFetcher struct {
	client *http.Client
}

// NewHTTPFetcher creates an HTTPFetcher. A zero timeout means requests are
// bounded only by the caller's context.
func NewHTTPFetcher(timeout time.Duration) *HTTPFetcher {
	return &HTTPFetcher{
		client: &http.Client{Timeout: timeout},
	}
}

// NewHTTPFetcherWithClient creates an HTTPFetcher that uses client.
func NewHTTPFetcherWithClient(client *http.Client) *HTTPFetcher {
	return &HTTPFetcher{client: client}
}

// Fetch returns the body of a 200 response. Any other status is an error.
func (f *HTTPFetcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, errors.New("E103").Wrap(err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, errors.New("E103").
			WithDetail("Could not connect: " + err.Error()).
			Wrap(err).
			WithSuggestion("Check your internet connection")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.New("E103").
			WithDetailf("%s returned status %d", rawURL, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.New("E103").Wrap(err)
	}
	return body, nil
}

// FileFetcher reads file:// URLs and bare local paths.
type FileFetcher struct{}

// Fetch reads the referenced file.
func (FileFetcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.New("E103").Wrap(err)
	}

	path := rawURL
	if strings.HasPrefix(rawURL, "file://") {
		u, err := url.Parse(rawURL)
		if err != nil {
			return nil, errors.New("E103").Wrap(err)
		}
		path = filepath.FromSlash(u.Path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New("E103").WithDetail(err.Error()).Wrap(err)
	}
	return data, nil
}

// FetcherOptions configures NewMuxFetcher.
type FetcherOptions struct {
	// Timeout bounds each HTTP request. Zero disables it.
	Timeout time.Duration

	// S3Region is the region used for s3:// URLs.
	S3Region string

	// HTTPClient overrides the HTTP client.
	HTTPClient *http.Client

	// S3 overrides the S3 client.
	S3 S3API
}

// MuxFetcher dispatches on URL scheme.
type MuxFetcher struct {
	schemes map[string]Fetcher
}

// NewMuxFetcher creates a fetcher for http, https, s3, file and bare paths.
func NewMuxFetcher(opts FetcherOptions) *MuxFetcher {
	httpFetcher := NewHTTPFetcher(opts.Timeout)
	if opts.HTTPClient != nil {
		httpFetcher = NewHTTPFetcherWithClient(opts.HTTPClient)
	}

	s3Client := opts.S3
	if s3Client == nil {
		s3Client = NewAnonymousS3Client(opts.S3Region)
	}

	return &MuxFetcher{
		schemes: map[string]Fetcher{
			"http":  httpFetcher,
			"https": httpFetcher,
			"s3":    NewS3Fetcher(s3Client),
			"file":  FileFetcher{},
			"":      FileFetcher{},
		},
	}
}

// Handle registers f for scheme, replacing any previous fetcher.
func (m *MuxFetcher) Handle(scheme string, f Fetcher) {
	m.schemes[scheme] = f
}

// Fetch routes rawURL to the fetcher for its scheme.
func (m *MuxFetcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	f, ok := m.schemes[scheme(rawURL)]
	if !ok {
		return nil, errors.New("E103").
			WithDetailf("unsupported URL scheme in %q", rawURL)
	}
	return f.Fetch(ctx, rawURL)
}

// scheme returns the lower-cased URL scheme, or "" for local paths
// (including Windows drive paths such as C:\map.json).
func scheme(rawURL string) string {
	i := strings.Index(rawURL, "://")
	if i <= 1 {
		return ""
	}
	return strings.ToLower(rawURL[:i])
}

// Load fetches and decodes the component map at rawURL. Failures are
// reported as E104 (unreachable) or E105 (undecodable).
func Load(ctx context.Context, f Fetcher, rawURL string) (*Registry, error) {
	data, err := f.Fetch(ctx, RawURL(rawURL))
	if err != nil {
		return nil, errors.New("E104").
			WithDetail(fmt.Sprintf("%s: %v", rawURL, err)).
			Wrap(err)
	}
	return Parse(data)
}
