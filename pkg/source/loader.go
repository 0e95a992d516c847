package source

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"time"
)

// ErrFetch marks failures reaching the remote document (network, timeout,
// non-2xx status). Wrapped errors carry detail; callers match with errors.Is.
var ErrFetch = errors.New("source: document fetch failed")

// Loader fetches form documents from different sources (filesystem, fs.FS,
// HTTP). Implementations live under internal/loader but satisfy this
// contract.
type Loader interface {
	Load(ctx context.Context, src Source) (Document, error)
}

// LoaderOptions configures how a Loader resolves sources.
type LoaderOptions struct {
	// FileSystem enables loading from an abstract filesystem; nil disables
	// fs sources.
	FileSystem fs.FS

	// HTTPClient allows callers to inject custom HTTP behaviour (timeouts,
	// proxies). Nil falls back to http.DefaultClient.
	HTTPClient *http.Client

	// RequestTimeout caps remote fetch durations. Zero means no extra cap
	// beyond the client's own timeout.
	RequestTimeout time.Duration

	// UserAgent is sent on remote fetches. Form hosts vary markup by agent,
	// so a stable desktop agent keeps the scraped structure predictable.
	UserAgent string
}

// LoaderOption mutates LoaderOptions prior to construction.
type LoaderOption func(*LoaderOptions)

// WithFileSystem supplies an fs.FS for fs sources.
func WithFileSystem(fsys fs.FS) LoaderOption {
	return func(o *LoaderOptions) {
		o.FileSystem = fsys
	}
}

// WithHTTPClient injects a custom HTTP client.
func WithHTTPClient(client *http.Client) LoaderOption {
	return func(o *LoaderOptions) {
		o.HTTPClient = client
	}
}

// WithRequestTimeout caps the duration of remote fetches.
func WithRequestTimeout(d time.Duration) LoaderOption {
	return func(o *LoaderOptions) {
		o.RequestTimeout = d
	}
}

// WithUserAgent overrides the User-Agent header sent on remote fetches.
func WithUserAgent(agent string) LoaderOption {
	return func(o *LoaderOptions) {
		if agent != "" {
			o.UserAgent = agent
		}
	}
}
