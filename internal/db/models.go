package db

import (
	"time"

	"github.com/google/uuid"
)

// Recommendation is a stored mood lookup and the tracks it returned.
type Recommendation struct {
	ID         uuid.UUID
	Text       string
	Emotion    string
	Confidence float64
	Tracks     []RecommendedTrack
	CreatedAt  time.Time
}

// RecommendedTrack is the display data kept for each recommended track.
// It is stored as JSONB so history does not depend on the songs table.
type RecommendedTrack struct {
	TrackID   string `json:"track_id"`
	Artists   string `json:"artists"`
	TrackName string `json:"track_name"`
	ImageURL  string `json:"image_url,omitempty"`
}

// Schema creates the tables used by Moodify. It is idempotent.
const Schema = `
CREATE TABLE IF NOT EXISTS songs (
	track_id         TEXT PRIMARY KEY,
	artists          TEXT NOT NULL,
	album_name       TEXT NOT NULL DEFAULT '',
	track_name       TEXT NOT NULL,
	popularity       INT NOT NULL DEFAULT 0,
	duration_ms      INT NOT NULL DEFAULT 0,
	explicit         BOOLEAN NOT NULL DEFAULT FALSE,
	danceability     DOUBLE PRECISION NOT NULL,
	energy           DOUBLE PRECISION NOT NULL,
	key              INT NOT NULL DEFAULT 0,
	loudness         DOUBLE PRECISION NOT NULL,
	mode             INT NOT NULL DEFAULT 0,
	speechiness      DOUBLE PRECISION NOT NULL DEFAULT 0,
	acousticness     DOUBLE PRECISION NOT NULL DEFAULT 0,
	instrumentalness DOUBLE PRECISION NOT NULL DEFAULT 0,
	liveness         DOUBLE PRECISION NOT NULL DEFAULT 0,
	valence          DOUBLE PRECISION NOT NULL,
	tempo            DOUBLE PRECISION NOT NULL DEFAULT 0,
	time_signature   INT NOT NULL DEFAULT 0,
	track_genre      TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS recommendations (
	id         UUID PRIMARY KEY,
	mood_text  TEXT NOT NULL,
	emotion    TEXT NOT NULL,
	confidence DOUBLE PRECISION NOT NULL,
	tracks     JSONB NOT NULL DEFAULT '[]',
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

ALTER TABLE recommendations ADD COLUMN IF NOT EXISTS tracks JSONB NOT NULL DEFAULT '[]';
ALTER TABLE recommendations DROP COLUMN IF EXISTS track_ids;

CREATE INDEX IF NOT EXISTS recommendations_created_at_idx ON recommendations (created_at DESC);
`
