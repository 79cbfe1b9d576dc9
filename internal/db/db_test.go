package db

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/google/uuid"

	"github.com/justestif/moodify/internal/catalog"
)

// openTestDB connects to MOODIFY_TEST_DATABASE_URL and resets the tables.
// Tests are skipped when it is unset.
func openTestDB(t *testing.T) *DB {
	t.Helper()
	url := os.Getenv("MOODIFY_TEST_DATABASE_URL")
	if url == "" {
		t.Skip("MOODIFY_TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	database, err := New(ctx, url)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(database.Close)

	if err := database.Migrate(ctx); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	if _, err := database.pool.Exec(ctx, `TRUNCATE songs, recommendations`); err != nil {
		t.Fatalf("truncate: %v", err)
	}
	return database
}

func TestSongRepository(t *testing.T) {
	database := openTestDB(t)
	ctx := context.Background()
	repo := database.Songs()

	songs := []catalog.Song{
		{TrackID: "b", Artists: "B", TrackName: "Second", Popularity: 10, Explicit: true, Valence: 0.2, Energy: 0.3, Loudness: -12, Genre: "rock"},
		{TrackID: "a", Artists: "A", TrackName: "First", Danceability: 0.7, Valence: 0.9, Energy: 0.8, Loudness: -5, TimeSignature: 4},
	}
	if err := repo.UpsertBatch(ctx, songs); err != nil {
		t.Fatalf("UpsertBatch: %v", err)
	}

	// Upserting again updates in place
	songs[0].TrackName = "Second (Remastered)"
	if err := repo.UpsertBatch(ctx, songs[:1]); err != nil {
		t.Fatalf("UpsertBatch update: %v", err)
	}

	n, err := repo.Count(ctx)
	if err != nil || n != 2 {
		t.Fatalf("Count = %d, %v; want 2", n, err)
	}

	all, err := repo.All(ctx)
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if len(all) != 2 || all[0].TrackID != "a" {
		t.Fatalf("All = %+v, want ordered by track id", all)
	}
	if all[0] != songs[1] {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", all[0], songs[1])
	}
	if all[1].TrackName != "Second (Remastered)" || !all[1].Explicit {
		t.Errorf("update not applied: %+v", all[1])
	}
}

func TestRecommendationRepository(t *testing.T) {
	database := openTestDB(t)
	ctx := context.Background()
	repo := database.Recommendations()

	tracks := []RecommendedTrack{
		{TrackID: "a", Artists: "Artist A", TrackName: "Song A", ImageURL: "https://i.scdn.co/image/a"},
		{TrackID: "b", Artists: "Artist B", TrackName: "Song B"},
	}
	for _, text := range []string{"first", "second", "third"} {
		rec := &Recommendation{Text: text, Emotion: "Joy", Confidence: 0.5, Tracks: tracks}
		if err := repo.Create(ctx, rec); err != nil {
			t.Fatalf("Create: %v", err)
		}
		if rec.ID == uuid.Nil || rec.CreatedAt.IsZero() {
			t.Fatalf("Create did not assign ID and timestamp: %+v", rec)
		}
	}

	recent, err := repo.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(recent) != 2 || recent[0].Text != "third" || recent[1].Text != "second" {
		t.Fatalf("Recent = %+v, want newest first", recent)
	}

	got, err := repo.Get(ctx, recent[0].ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(got.Tracks) != len(tracks) {
		t.Fatalf("Tracks = %+v, want %+v", got.Tracks, tracks)
	}
	for i := range tracks {
		if got.Tracks[i] != tracks[i] {
			t.Errorf("Tracks[%d] = %+v, want %+v", i, got.Tracks[i], tracks[i])
		}
	}
	if recent[0].Tracks[0].Artists != "Artist A" {
		t.Errorf("Recent did not return track details: %+v", recent[0].Tracks)
	}

	empty := &Recommendation{Text: "none", Emotion: "Fear"}
	if err := repo.Create(ctx, empty); err != nil {
		t.Fatalf("Create without tracks: %v", err)
	}
	got, err = repo.Get(ctx, empty.ID)
	if err != nil || len(got.Tracks) != 0 {
		t.Errorf("Get empty = %+v, %v; want no tracks", got, err)
	}

	if _, err := repo.Get(ctx, uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get unknown id error = %v, want ErrNotFound", err)
	}
}
