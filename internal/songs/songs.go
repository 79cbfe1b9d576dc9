// Package songs finds display tracks for an emotion, either from the local
// catalog or from a remote song service.
package songs

import (
	"context"
	"errors"
	"math/rand/v2"
	"sync"

	"github.com/justestif/moodify/internal/catalog"
	"github.com/justestif/moodify/internal/mood"
)

// ErrNoSongs is returned when no song matches the emotion.
var ErrNoSongs = errors.New("no songs found")

// NoSongsError carries the message a song source gave for an empty result.
type NoSongsError struct {
	Message string
}

func (e *NoSongsError) Error() string {
	return e.Message
}

// Is matches ErrNoSongs.
func (e *NoSongsError) Is(target error) bool {
	return target == ErrNoSongs
}

// Track is the display record for a recommended song.
type Track struct {
	ID       string `json:"track_id"`
	Artists  string `json:"artists"`
	Name     string `json:"track_name"`
	ImageURL string `json:"image_url,omitempty"`
}

// SpotifyURL links to the track on Spotify.
func (t Track) SpotifyURL() string {
	return "https://open.spotify.com/track/" + t.ID
}

// FromSong converts a catalog song to a display track.
func FromSong(s catalog.Song) Track {
	return Track{ID: s.TrackID, Artists: s.Artists, Name: s.TrackName}
}

// Finder returns tracks for an emotion.
type Finder interface {
	Find(ctx context.Context, e mood.Emotion) ([]Track, error)
}

// LocalFinder filters an in-memory catalog.
type LocalFinder struct {
	catalog *catalog.Catalog
	limit   int

	mu  sync.Mutex
	rng *rand.Rand
}

// LocalOption configures a LocalFinder.
type LocalOption func(*LocalFinder)

// WithLimit caps the number of tracks returned.
func WithLimit(n int) LocalOption {
	return func(f *LocalFinder) {
		if n > 0 {
			f.limit = n
		}
	}
}

// WithRand sets the random source used for sampling.
func WithRand(rng *rand.Rand) LocalOption {
	return func(f *LocalFinder) {
		f.rng = rng
	}
}

// NewLocalFinder creates a finder over c.
func NewLocalFinder(c *catalog.Catalog, opts ...LocalOption) *LocalFinder {
	f := &LocalFinder{
		catalog: c,
		limit:   mood.DefaultLimit,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Find returns up to the configured limit of randomly chosen matching tracks.
func (f *LocalFinder) Find(_ context.Context, e mood.Emotion) ([]Track, error) {
	matched := f.Match(e)
	if len(matched) == 0 {
		return nil, &NoSongsError{Message: "No songs found for emotion: " + e.String()}
	}

	// *rand.Rand is not safe for concurrent use
	f.mu.Lock()
	picked := mood.Sample(matched, f.limit, f.rng)
	f.mu.Unlock()

	tracks := make([]Track, len(picked))
	for i, s := range picked {
		tracks[i] = FromSong(s)
	}
	return tracks, nil
}

// Match returns every catalog song matching e in catalog order.
func (f *LocalFinder) Match(e mood.Emotion) []catalog.Song {
	return mood.Filter(f.catalog.All(), e)
}

var (
	_ Finder = (*LocalFinder)(nil)
	_ Finder = (*RemoteClient)(nil)
)
