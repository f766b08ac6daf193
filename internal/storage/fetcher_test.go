package storage_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-addressbook/internal/config"
	"github.com/tartampluch/go-addressbook/internal/storage"
)

func TestHTTPFetcher_Fetch_Success(t *testing.T) {
	expectedBody := "BEGIN:VCARD\nVERSION:3.0\nFN:Test\nEND:VCARD"

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok, "Basic auth header should be present")
		assert.Equal(t, "alice", user)
		assert.Equal(t, "s3cret", pass)
		assert.Equal(t, config.UserAgent, r.Header.Get("User-Agent"))

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(expectedBody))
	}))
	defer ts.Close()

	rc, err := storage.NewHTTPFetcher().Fetch(context.Background(), ts.URL, storage.Credentials{User: "alice", Password: "s3cret"})
	require.NoError(t, err)
	defer func() { _ = rc.Close() }()

	body, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, expectedBody, string(body))
}

func TestHTTPFetcher_Fetch_Anonymous(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _, ok := r.BasicAuth()
		assert.False(t, ok, "no credentials, no auth header")
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	rc, err := storage.NewHTTPFetcher().Fetch(context.Background(), ts.URL, storage.Credentials{})
	require.NoError(t, err)
	_ = rc.Close()
}

func TestHTTPFetcher_Fetch_Errors(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		wantErr    string
	}{
		{"NotFound", http.StatusNotFound, "404"},
		{"ServerError", http.StatusInternalServerError, "500"},
		{"Unauthorized", http.StatusUnauthorized, "401"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.statusCode)
			}))
			defer ts.Close()

			rc, err := storage.NewHTTPFetcher().Fetch(context.Background(), ts.URL, storage.Credentials{})

			require.Error(t, err)
			assert.Nil(t, rc)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.Contains(t, err.Error(), config.ErrUnexpectedStatus)
		})
	}
}

func TestHTTPFetcher_Fetch_Timeout(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := storage.NewHTTPFetcher().Fetch(ctx, ts.URL, storage.Credentials{})

	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestHTTPFetcher_Fetch_RejectsBadTargets(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr string
	}{
		{"ControlCharacter", string([]byte{0x7f}), config.ErrInvalidURL},
		{"FTP", "ftp://example.com/file.vcf", config.ErrProtocol},
		{"File", "file:///etc/passwd", config.ErrProtocol},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := storage.NewHTTPFetcher().Fetch(context.Background(), tt.url, storage.Credentials{})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestHTTPFetcher_Fetch_CapsBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.Copy(w, io.LimitReader(neverEnding('x'), config.MaxHTTPResponseSize+1024))
	}))
	defer ts.Close()

	rc, err := storage.NewHTTPFetcher().Fetch(context.Background(), ts.URL, storage.Credentials{})
	require.NoError(t, err)
	defer func() { _ = rc.Close() }()

	n, err := io.Copy(io.Discard, rc)
	require.NoError(t, err)
	assert.Equal(t, int64(config.MaxHTTPResponseSize), n)
}

type neverEnding byte

func (b neverEnding) Read(p []byte) (int, error) {
	copy(p, strings.Repeat(string(b), len(p)))
	return len(p), nil
}
