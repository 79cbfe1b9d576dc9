// Package catalog loads and holds the song metadata that mood filters run over.
package catalog

import "fmt"

// Song is a single catalog row with its pre-tagged audio features.
type Song struct {
	TrackID          string
	Artists          string
	AlbumName        string
	TrackName        string
	Popularity       int
	DurationMs       int
	Explicit         bool
	Danceability     float64
	Energy           float64
	Key              int
	Loudness         float64
	Mode             int
	Speechiness      float64
	Acousticness     float64
	Instrumentalness float64
	Liveness         float64
	Valence          float64
	Tempo            float64
	TimeSignature    int
	Genre            string
}

// String returns "Track Name - Artists".
func (s Song) String() string {
	return fmt.Sprintf("%s - %s", s.TrackName, s.Artists)
}

// Catalog is an immutable, indexed set of songs.
type Catalog struct {
	songs []Song
	byID  map[string]int
}

// New builds a catalog from songs. Later duplicates of a track ID are dropped.
func New(songs []Song) *Catalog {
	c := &Catalog{
		songs: make([]Song, 0, len(songs)),
		byID:  make(map[string]int, len(songs)),
	}
	for _, s := range songs {
		if _, ok := c.byID[s.TrackID]; ok {
			continue
		}
		c.byID[s.TrackID] = len(c.songs)
		c.songs = append(c.songs, s)
	}
	return c
}

// All returns the songs in load order. The slice must not be modified.
func (c *Catalog) All() []Song {
	if c == nil {
		return nil
	}
	return c.songs
}

// Len returns the number of songs.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.songs)
}

// Get looks up a song by track ID.
func (c *Catalog) Get(trackID string) (Song, bool) {
	if c == nil {
		return Song{}, false
	}
	i, ok := c.byID[trackID]
	if !ok {
		return Song{}, false
	}
	return c.songs[i], true
}
