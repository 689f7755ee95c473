// Package importer reads raw general-ledger exports (.xlsx or .csv) from
// HTTP(S), Google Cloud Storage or local files.
package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"golang.org/x/oauth2"
	"google.golang.org/api/option"
)

// Errors that describe a bad request rather than an unavailable file.
var (
	ErrUnsupportedSource = errors.New("unsupported file location")
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrMissingColumn     = errors.New("required column missing")
	ErrTooManyRows       = errors.New("file has too many rows")
)

// Format is the file encoding of an export.
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
)

// FormatOf derives the format from the file extension of a URL or path.
func FormatOf(location string) (Format, error) {
	p := location
	if u, err := url.Parse(location); err == nil && u.Path != "" {
		p = u.Path
	}
	switch strings.ToLower(path.Ext(p)) {
	case ".xlsx", ".xlsm":
		return FormatXLSX, nil
	case ".csv":
		return FormatCSV, nil
	}
	return "", fmt.Errorf("%w: %q (expected .xlsx or .csv)", ErrUnsupportedFormat, path.Ext(p))
}

// Fetcher opens export files by URL.
type Fetcher struct {
	httpClient *http.Client
	gcs        *storage.Client
	allowLocal bool
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithHTTPClient replaces the client used for http(s) URLs.
func WithHTTPClient(c *http.Client) Option {
	return func(f *Fetcher) {
		f.httpClient = c
	}
}

// WithBearerToken authenticates http(s) downloads with a static bearer token.
func WithBearerToken(ctx context.Context, token string) Option {
	return func(f *Fetcher) {
		if token == "" {
			return
		}
		ctx = context.WithValue(ctx, oauth2.HTTPClient, f.httpClient)
		f.httpClient = oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}))
	}
}

// WithGCSClient enables gs:// URLs.
func WithGCSClient(c *storage.Client) Option {
	return func(f *Fetcher) {
		f.gcs = c
	}
}

// WithLocalFiles enables file:// URLs and bare paths. Only the admin CLI turns this on.
func WithLocalFiles() Option {
	return func(f *Fetcher) {
		f.allowLocal = true
	}
}

// NewFetcher creates a Fetcher. Options apply in order.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{httpClient: &http.Client{Timeout: 2 * time.Minute}}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// NewGCSClient creates a storage client. An empty credentialsJSON falls back
// to application default credentials.
func NewGCSClient(ctx context.Context, credentialsJSON string) (*storage.Client, error) {
	var opts []option.ClientOption
	if strings.TrimSpace(credentialsJSON) != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(credentialsJSON)))
	}
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	return client, nil
}

// Open returns the content of the file at location together with its format.
func (f *Fetcher) Open(ctx context.Context, location string) (io.ReadCloser, Format, error) {
	format, err := FormatOf(location)
	if err != nil {
		return nil, "", err
	}

	u, err := url.Parse(location)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrUnsupportedSource, err)
	}

	var body io.ReadCloser
	switch u.Scheme {
	case "http", "https":
		body, err = f.openHTTP(ctx, location)
	case "gs":
		body, err = f.openGCS(ctx, u)
	case "file", "":
		if !f.allowLocal {
			return nil, "", fmt.Errorf("%w: local files are not accepted", ErrUnsupportedSource)
		}
		p := location
		if u.Scheme == "file" {
			p = u.Path
		}
		body, err = os.Open(p)
	default:
		return nil, "", fmt.Errorf("%w: scheme %q", ErrUnsupportedSource, u.Scheme)
	}
	if err != nil {
		return nil, "", err
	}
	return body, format, nil
}

func (f *Fetcher) openHTTP(ctx context.Context, location string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedSource, err)
	}
	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download file from URL: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("failed to download file: received status code %d", resp.StatusCode)
	}
	return resp.Body, nil
}

func (f *Fetcher) openGCS(ctx context.Context, u *url.URL) (io.ReadCloser, error) {
	if f.gcs == nil {
		return nil, fmt.Errorf("%w: gs:// URLs are not enabled", ErrUnsupportedSource)
	}
	object := strings.TrimPrefix(u.Path, "/")
	if u.Host == "" || object == "" {
		return nil, fmt.Errorf("%w: gs URL needs a bucket and an object", ErrUnsupportedSource)
	}
	reader, err := f.gcs.Bucket(u.Host).Object(object).NewReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read gs://%s/%s: %w", u.Host, object, err)
	}
	return reader, nil
}

// Read opens and parses the file at location.
func (f *Fetcher) Read(ctx context.Context, location string, maxRows int) (*Parsed, error) {
	body, format, err := f.Open(ctx, location)
	if err != nil {
		return nil, err
	}
	defer body.Close()
	return Parse(body, format, maxRows)
}
