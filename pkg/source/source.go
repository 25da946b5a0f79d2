// Package source loads graph snapshots from the data-fetching boundary:
// local JSON files for CLI work and the dashboard API over HTTP for live
// data. HTTP responses are cached (file or Redis backed) so repeated layout
// runs don't hammer the API; computed layouts themselves are never cached.
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	charmlog "github.com/charmbracelet/log"

	"github.com/mlorenzen/decklog/pkg/cache"
	aerr "github.com/mlorenzen/decklog/pkg/errors"
	"github.com/mlorenzen/decklog/pkg/graph"
)

// DefaultTTL is how long a fetched snapshot stays valid in the cache.
const DefaultTTL = 15 * time.Minute

// retry policy for transient HTTP failures.
const (
	retryAttempts = 3
	retryDelay    = time.Second
)

// Loader fetches raw snapshots and adapts them into the structural graph
// model.
type Loader struct {
	cache      cache.Cache
	client     *http.Client
	ttl        time.Duration
	retryDelay time.Duration
	logger     *charmlog.Logger
}

// NewLoader creates a loader. A nil store disables caching, a non-positive
// ttl selects DefaultTTL, and a nil logger falls back to charmlog.Default().
func NewLoader(store cache.Cache, ttl time.Duration, logger *charmlog.Logger) *Loader {
	if store == nil {
		store = cache.NewNullCache()
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if logger == nil {
		logger = charmlog.Default()
	}
	return &Loader{
		cache:      store,
		client:     &http.Client{Timeout: 30 * time.Second},
		ttl:        ttl,
		retryDelay: retryDelay,
		logger:     logger,
	}
}

// Load reads a snapshot from a local file path or an http(s) URL, adapts it
// (dropping dangling edges, defaulting weights), and returns the structural
// graph.
func (l *Loader) Load(ctx context.Context, src string) (*graph.Snapshot, error) {
	var (
		data []byte
		err  error
	)
	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		data, err = l.fetch(ctx, src)
	} else {
		data, err = os.ReadFile(src)
		if os.IsNotExist(err) {
			return nil, aerr.Wrap(aerr.ErrCodeSnapshotNotFound, err, "snapshot %s", src)
		}
	}
	if err != nil {
		return nil, err
	}

	raw, err := graph.ParseRaw(data)
	if err != nil {
		return nil, aerr.Wrap(aerr.ErrCodeInvalidSnapshot, err, "parse %s", src)
	}
	s := graph.FromRaw(raw, l.logger)
	l.logger.Debug("snapshot loaded", "source", src, "nodes", len(s.Nodes), "edges", len(s.Edges))
	return s, nil
}

// fetch retrieves a URL through the cache, retrying transient failures with
// exponential backoff.
func (l *Loader) fetch(ctx context.Context, url string) ([]byte, error) {
	key := cache.SnapshotKey(url)
	if data, hit, err := l.cache.Get(ctx, key); err == nil && hit {
		l.logger.Debug("snapshot cache hit", "url", url)
		return data, nil
	}

	var data []byte
	delay := l.retryDelay
	var lastErr error
	for attempt := 0; attempt < retryAttempts; attempt++ {
		data, lastErr = l.get(ctx, url)
		if lastErr == nil {
			break
		}
		if !isTransient(lastErr) {
			return nil, lastErr
		}
		if attempt < retryAttempts-1 {
			l.logger.Debug("retrying snapshot fetch", "url", url, "attempt", attempt+1, "err", lastErr)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
				delay *= 2
			}
		}
	}
	if lastErr != nil {
		return nil, lastErr
	}

	if err := l.cache.Set(ctx, key, data, l.ttl); err != nil {
		l.logger.Warn("snapshot cache write failed", "err", err)
	}
	return data, nil
}

// transientError marks failures worth retrying (network errors, 5xx).
type transientError struct{ err error }

func (e *transientError) Error() string { return e.err.Error() }
func (e *transientError) Unwrap() error { return e.err }

func isTransient(err error) bool {
	var te *transientError
	return errors.As(err, &te)
}

func (l *Loader) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, aerr.Wrap(aerr.ErrCodeInvalidInput, err, "build request %s", url)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, &transientError{aerr.Wrap(aerr.ErrCodeNetwork, err, "fetch %s", url)}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, aerr.New(aerr.ErrCodeSnapshotNotFound, "fetch %s: %s", url, resp.Status)
	case resp.StatusCode >= 500:
		return nil, &transientError{aerr.New(aerr.ErrCodeNetwork, "fetch %s: %s", url, resp.Status)}
	case resp.StatusCode != http.StatusOK:
		return nil, aerr.New(aerr.ErrCodeNetwork, "fetch %s: %s", url, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &transientError{fmt.Errorf("read %s: %w", url, err)}
	}
	return data, nil
}
