package recommend

import (
	"context"
	"sync"

	"github.com/justestif/moodify/internal/db"
	"github.com/justestif/moodify/internal/mood"
	"github.com/justestif/moodify/internal/songs"
)

// DefaultHistorySize is the capacity of a MemoryHistory.
const DefaultHistorySize = 100

// History records recommendations and lists recent ones.
type History interface {
	Recorder
	Recent(ctx context.Context, limit int) ([]Recommendation, error)
}

// MemoryHistory keeps the most recent recommendations in a ring buffer.
type MemoryHistory struct {
	mu    sync.RWMutex
	items []Recommendation
	next  int
	full  bool
}

// NewMemoryHistory creates a history holding up to size entries.
func NewMemoryHistory(size int) *MemoryHistory {
	if size <= 0 {
		size = DefaultHistorySize
	}
	return &MemoryHistory{items: make([]Recommendation, size)}
}

// Record stores a copy of rec, evicting the oldest entry when full.
func (h *MemoryHistory) Record(_ context.Context, rec *Recommendation) error {
	cp := *rec
	cp.Tracks = append([]songs.Track(nil), rec.Tracks...)

	h.mu.Lock()
	defer h.mu.Unlock()

	h.items[h.next] = cp
	h.next = (h.next + 1) % len(h.items)
	if h.next == 0 {
		h.full = true
	}
	return nil
}

// Recent returns up to limit entries, newest first.
func (h *MemoryHistory) Recent(_ context.Context, limit int) ([]Recommendation, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	count := h.next
	if h.full {
		count = len(h.items)
	}
	if limit <= 0 || limit > count {
		limit = count
	}

	out := make([]Recommendation, 0, limit)
	for i := 0; i < limit; i++ {
		idx := (h.next - 1 - i + len(h.items)) % len(h.items)
		out = append(out, h.items[idx])
	}
	return out, nil
}

// DBHistory stores recommendations in PostgreSQL.
type DBHistory struct {
	repo *db.RecommendationRepository
}

// NewDBHistory wraps the recommendation repository.
func NewDBHistory(database *db.DB) *DBHistory {
	return &DBHistory{repo: database.Recommendations()}
}

// Record inserts rec.
func (h *DBHistory) Record(ctx context.Context, rec *Recommendation) error {
	tracks := make([]db.RecommendedTrack, len(rec.Tracks))
	for i, t := range rec.Tracks {
		tracks[i] = db.RecommendedTrack{
			TrackID:   t.ID,
			Artists:   t.Artists,
			TrackName: t.Name,
			ImageURL:  t.ImageURL,
		}
	}
	return h.repo.Create(ctx, &db.Recommendation{
		ID:         rec.ID,
		Text:       rec.Text,
		Emotion:    rec.Emotion.String(),
		Confidence: rec.Confidence,
		Tracks:     tracks,
		CreatedAt:  rec.CreatedAt,
	})
}

// Recent returns up to limit entries, newest first.
func (h *DBHistory) Recent(ctx context.Context, limit int) ([]Recommendation, error) {
	rows, err := h.repo.Recent(ctx, limit)
	if err != nil {
		return nil, err
	}

	out := make([]Recommendation, len(rows))
	for i, r := range rows {
		tracks := make([]songs.Track, len(r.Tracks))
		for j, t := range r.Tracks {
			tracks[j] = songs.Track{
				ID:       t.TrackID,
				Artists:  t.Artists,
				Name:     t.TrackName,
				ImageURL: t.ImageURL,
			}
		}
		out[i] = Recommendation{
			ID:         r.ID,
			Text:       r.Text,
			Emotion:    mood.Emotion(r.Emotion),
			Confidence: r.Confidence,
			Tracks:     tracks,
			CreatedAt:  r.CreatedAt,
		}
	}
	return out, nil
}

var (
	_ History = (*MemoryHistory)(nil)
	_ History = (*DBHistory)(nil)
)
