package recommend

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/justestif/moodify/internal/db"
	"github.com/justestif/moodify/internal/mood"
	"github.com/justestif/moodify/internal/songs"
)

// Runs against MOODIFY_TEST_DATABASE_URL and is skipped when it is unset.
func TestDBHistoryKeepsTrackDetails(t *testing.T) {
	url := os.Getenv("MOODIFY_TEST_DATABASE_URL")
	if url == "" {
		t.Skip("MOODIFY_TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	database, err := db.New(ctx, url)
	if err != nil {
		t.Fatalf("db.New: %v", err)
	}
	t.Cleanup(database.Close)
	if err := database.Migrate(ctx); err != nil {
		t.Fatalf("Migrate: %v", err)
	}

	h := NewDBHistory(database)
	tracks := []songs.Track{
		{ID: "a", Artists: "Artist A", Name: "Song A", ImageURL: "https://i.scdn.co/image/a"},
		{ID: "b", Artists: "Artist B", Name: "Song B"},
	}
	rec := &Recommendation{
		ID:         uuid.New(),
		Text:       "happy and bright",
		Emotion:    mood.Joy,
		Confidence: 0.9,
		Tracks:     tracks,
		CreatedAt:  time.Now().Add(time.Hour),
	}
	if err := h.Record(ctx, rec); err != nil {
		t.Fatalf("Record: %v", err)
	}

	recent, err := h.Recent(ctx, 100)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	var got *Recommendation
	for i := range recent {
		if recent[i].ID == rec.ID {
			got = &recent[i]
		}
	}
	if got == nil {
		t.Fatalf("recorded entry %s not in Recent", rec.ID)
	}
	if got.Emotion != mood.Joy || got.Text != rec.Text {
		t.Errorf("got %+v", got)
	}
	if len(got.Tracks) != len(tracks) {
		t.Fatalf("Tracks = %+v, want %+v", got.Tracks, tracks)
	}
	for i := range tracks {
		if got.Tracks[i] != tracks[i] {
			t.Errorf("Tracks[%d] = %+v, want %+v", i, got.Tracks[i], tracks[i])
		}
	}
}
