package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/tartampluch/go-addressbook/internal/config"
)

// Credentials authenticate a remote vCard download with HTTP Basic Auth.
type Credentials struct {
	User     string
	Password string
}

// Fetcher retrieves a remote vCard stream.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string, creds Credentials) (io.ReadCloser, error)
}

// HTTPFetcher downloads vCards over plain HTTP(S).
type HTTPFetcher struct {
	Client *http.Client
}

// NewHTTPFetcher returns a fetcher with the default timeout.
func NewHTTPFetcher() *HTTPFetcher {
	return &HTTPFetcher{
		Client: &http.Client{Timeout: config.HTTPTimeout},
	}
}

// Fetch issues a GET request and returns the body capped at
// config.MaxHTTPResponseSize. Query strings never reach the logs.
func (f *HTTPFetcher) Fetch(ctx context.Context, rawURL string, creds Credentials) (io.ReadCloser, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrInvalidURL, err)
	}
	if u.Scheme != config.SchemeHTTP && u.Scheme != config.SchemeHTTPS {
		return nil, fmt.Errorf("%s: %s", config.ErrProtocol, u.Scheme)
	}

	log := slog.With(
		slog.String(config.LogKeyComponent, config.CompFetcher),
		slog.String(config.LogKeyURL, u.Scheme+"://"+u.Host+u.Path),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrInvalidURL, err)
	}
	req.Header.Set(config.HeaderUserAgent, config.UserAgent)
	if creds.User != "" || creds.Password != "" {
		req.SetBasicAuth(creds.User, creds.Password)
	}

	log.Debug(config.MsgDownloading)
	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		log.Warn(config.ErrUnexpectedStatus, slog.Int(config.LogKeyStatus, resp.StatusCode))
		return nil, fmt.Errorf("%s: %s", config.ErrUnexpectedStatus, resp.Status)
	}

	return cappedBody{
		Reader: io.LimitReader(resp.Body, config.MaxHTTPResponseSize),
		Closer: resp.Body,
	}, nil
}

// cappedBody reads through the limit while closing the real connection.
type cappedBody struct {
	io.Reader
	io.Closer
}
