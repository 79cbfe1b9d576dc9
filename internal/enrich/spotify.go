// Package enrich decorates recommended tracks with Spotify metadata.
package enrich

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/zmb3/spotify/v2"
	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/justestif/moodify/internal/songs"
)

const (
	// maxTracksPerRequest is the Spotify limit for GET /tracks.
	maxTracksPerRequest = 50

	// DefaultConcurrency bounds parallel batch requests.
	DefaultConcurrency = 4
)

// ErrMissingCredentials is returned when the Spotify client ID or secret is empty.
var ErrMissingCredentials = errors.New("missing Spotify client ID or secret")

// TrackFetcher is the subset of the Spotify client used for enrichment.
type TrackFetcher interface {
	GetTracks(ctx context.Context, ids []spotify.ID, opts ...spotify.RequestOption) ([]*spotify.FullTrack, error)
}

// SpotifyEnricher fills in album artwork for tracks.
type SpotifyEnricher struct {
	api         TrackFetcher
	concurrency int
}

// Option configures a SpotifyEnricher.
type Option func(*SpotifyEnricher)

// WithConcurrency sets the number of concurrent batch requests.
func WithConcurrency(n int) Option {
	return func(e *SpotifyEnricher) {
		if n > 0 {
			e.concurrency = n
		}
	}
}

// New wraps an existing track fetcher.
func New(api TrackFetcher, opts ...Option) *SpotifyEnricher {
	e := &SpotifyEnricher{
		api:         api,
		concurrency: DefaultConcurrency,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// NewFromCredentials authenticates with the client-credentials flow, which
// needs no user login and is enough for public track metadata.
func NewFromCredentials(ctx context.Context, clientID, clientSecret string, opts ...Option) (*SpotifyEnricher, error) {
	if clientID == "" || clientSecret == "" {
		return nil, ErrMissingCredentials
	}

	cfg := &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     spotifyauth.TokenURL,
	}

	// Fail fast on bad credentials
	if _, err := cfg.Token(ctx); err != nil {
		return nil, fmt.Errorf("getting client credentials token: %w", err)
	}

	api := spotify.New(cfg.Client(context.Background()), spotify.WithRetry(true))
	return New(api, opts...), nil
}

// Enrich sets ImageURL on tracks in place, in batches of 50 processed by a
// bounded worker pool. Failed batches are reported together; tracks from
// successful batches keep their images.
func (e *SpotifyEnricher) Enrich(ctx context.Context, tracks []songs.Track) error {
	if len(tracks) == 0 {
		return nil
	}

	type batch struct {
		start, end int
	}
	batches := make(chan batch, len(tracks)/maxTracksPerRequest+1)
	for i := 0; i < len(tracks); i += maxTracksPerRequest {
		batches <- batch{start: i, end: min(i+maxTracksPerRequest, len(tracks))}
	}
	close(batches)

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)

	for i := 0; i < e.concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for b := range batches {
				if err := ctx.Err(); err != nil {
					mu.Lock()
					errs = append(errs, err)
					mu.Unlock()
					continue
				}

				// Each batch owns a disjoint slice range, so writes need no lock
				if err := e.enrichBatch(ctx, tracks[b.start:b.end]); err != nil {
					mu.Lock()
					errs = append(errs, fmt.Errorf("batch %d-%d: %w", b.start+1, b.end, err))
					mu.Unlock()
				}
			}
		}()
	}

	wg.Wait()
	return errors.Join(errs...)
}

func (e *SpotifyEnricher) enrichBatch(ctx context.Context, batch []songs.Track) error {
	ids := make([]spotify.ID, len(batch))
	for i, t := range batch {
		ids[i] = spotify.ID(t.ID)
	}

	full, err := e.api.GetTracks(ctx, ids)
	if err != nil {
		return fmt.Errorf("fetching tracks: %w", err)
	}

	images := make(map[string]string, len(full))
	for _, ft := range full {
		if ft == nil || len(ft.Album.Images) == 0 {
			continue // Unknown track or no artwork
		}
		images[string(ft.ID)] = ft.Album.Images[0].URL
	}

	for i := range batch {
		if url, ok := images[batch[i].ID]; ok {
			batch[i].ImageURL = url
		}
	}
	return nil
}
