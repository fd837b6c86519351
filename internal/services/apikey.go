package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/ytsrc/internal/shared"
)

const innertubeKeyMarker = "INNERTUBE_API_KEY"

var innertubeKeyPattern = regexp.MustCompile(`"INNERTUBE_API_KEY":"(.+?)"`)

// CredentialProvider hands out the API key used by innertube requests.
//
// Implementations memoize the key; force discards the memoized value and fetches a new one.
type CredentialProvider interface {
	Key(ctx context.Context, force bool) (string, error)
}

// KeyStore persists keys between runs. LoadKey returns [shared.ErrKeyNotCached] when nothing is stored.
type KeyStore interface {
	LoadKey(service string) (value string, updatedAt time.Time, err error)
	SaveKey(service, value string) error
}

// StaticKey is a [CredentialProvider] that always returns the same key.
type StaticKey string

func (s StaticKey) Key(context.Context, bool) (string, error) { return string(s), nil }

// PageKeyProvider scrapes the key from a web page and memoizes it.
type PageKeyProvider struct {
	mu      sync.Mutex
	key     string
	pageURL string
	service string
	http    *transport
	store   KeyStore
	maxAge  time.Duration
	logger  *log.Logger
}

// KeyProviderOpts configures a [PageKeyProvider].
type KeyProviderOpts struct {
	PageURL    string        // page embedding the key, defaults to the YouTube Music home page
	Service    string        // name the key is stored under
	HTTPClient *http.Client
	UserAgent  string
	Store      KeyStore      // optional cache shared across runs
	MaxAge     time.Duration // stored keys older than this are refetched; zero keeps them forever
	Logger     *log.Logger
}

// NewPageKeyProvider creates a [PageKeyProvider].
func NewPageKeyProvider(opts KeyProviderOpts) *PageKeyProvider {
	if opts.PageURL == "" {
		opts.PageURL = defaultMusicBaseURL + "/"
	}
	if opts.Service == "" {
		opts.Service = MusicMeta.ID
	}
	if opts.Logger == nil {
		opts.Logger = shared.DiscardLogger()
	}
	return &PageKeyProvider{
		pageURL: opts.PageURL,
		service: opts.Service,
		http:    newTransport(opts.HTTPClient, opts.UserAgent, 0, 0),
		store:   opts.Store,
		maxAge:  opts.MaxAge,
		logger:  opts.Logger,
	}
}

// Key returns the memoized key, loading it from the store or the page on first use or when force is set.
func (p *PageKeyProvider) Key(ctx context.Context, force bool) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.key != "" && !force {
		return p.key, nil
	}

	if !force && p.store != nil {
		value, updatedAt, err := p.store.LoadKey(p.service)
		switch {
		case err == nil && (p.maxAge <= 0 || time.Since(updatedAt) < p.maxAge):
			p.logger.Debug("using cached api key", "service", p.service)
			p.key = value
			return p.key, nil
		case err != nil && !errors.Is(err, shared.ErrKeyNotCached):
			p.logger.Warn("failed to read cached api key", "service", p.service, "error", err)
		}
	}

	body, err := p.http.get(ctx, p.pageURL)
	if err != nil {
		return "", fmt.Errorf("failed to fetch %s: %w", p.pageURL, err)
	}

	match := innertubeKeyPattern.FindSubmatch(body)
	if match == nil {
		return "", &shared.CredentialExtractionError{Marker: innertubeKeyMarker}
	}
	p.key = string(match[1])
	p.logger.Debug("extracted api key", "service", p.service, "forced", force)

	if p.store != nil {
		if err := p.store.SaveKey(p.service, p.key); err != nil {
			p.logger.Warn("failed to cache api key", "service", p.service, "error", err)
		}
	}
	return p.key, nil
}
