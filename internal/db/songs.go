package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/justestif/moodify/internal/catalog"
)

// upsertChunkSize bounds the array parameters sent per statement.
const upsertChunkSize = 1000

// SongRepository handles catalog song database operations.
type SongRepository struct {
	pool *pgxpool.Pool
}

// UpsertBatch inserts or updates songs in a single transaction.
func (r *SongRepository) UpsertBatch(ctx context.Context, songs []catalog.Song) error {
	if len(songs) == 0 {
		return nil
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	for start := 0; start < len(songs); start += upsertChunkSize {
		end := min(start+upsertChunkSize, len(songs))
		if err := upsertSongs(ctx, tx, songs[start:end]); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing songs: %w", err)
	}
	return nil
}

func upsertSongs(ctx context.Context, tx pgx.Tx, songs []catalog.Song) error {
	query := `
		INSERT INTO songs (
			track_id, artists, album_name, track_name, popularity, duration_ms, explicit,
			danceability, energy, key, loudness, mode, speechiness, acousticness,
			instrumentalness, liveness, valence, tempo, time_signature, track_genre
		)
		SELECT * FROM unnest(
			$1::text[], $2::text[], $3::text[], $4::text[], $5::int[], $6::int[], $7::bool[],
			$8::float8[], $9::float8[], $10::int[], $11::float8[], $12::int[], $13::float8[], $14::float8[],
			$15::float8[], $16::float8[], $17::float8[], $18::float8[], $19::int[], $20::text[]
		)
		ON CONFLICT (track_id) DO UPDATE SET
			artists = EXCLUDED.artists,
			album_name = EXCLUDED.album_name,
			track_name = EXCLUDED.track_name,
			popularity = EXCLUDED.popularity,
			duration_ms = EXCLUDED.duration_ms,
			explicit = EXCLUDED.explicit,
			danceability = EXCLUDED.danceability,
			energy = EXCLUDED.energy,
			key = EXCLUDED.key,
			loudness = EXCLUDED.loudness,
			mode = EXCLUDED.mode,
			speechiness = EXCLUDED.speechiness,
			acousticness = EXCLUDED.acousticness,
			instrumentalness = EXCLUDED.instrumentalness,
			liveness = EXCLUDED.liveness,
			valence = EXCLUDED.valence,
			tempo = EXCLUDED.tempo,
			time_signature = EXCLUDED.time_signature,
			track_genre = EXCLUDED.track_genre
	`

	n := len(songs)
	var (
		ids          = make([]string, n)
		artists      = make([]string, n)
		albums       = make([]string, n)
		names        = make([]string, n)
		popularity   = make([]int32, n)
		durations    = make([]int32, n)
		explicit     = make([]bool, n)
		danceability = make([]float64, n)
		energy       = make([]float64, n)
		keys         = make([]int32, n)
		loudness     = make([]float64, n)
		modes        = make([]int32, n)
		speechiness  = make([]float64, n)
		acousticness = make([]float64, n)
		instrumental = make([]float64, n)
		liveness     = make([]float64, n)
		valence      = make([]float64, n)
		tempo        = make([]float64, n)
		signatures   = make([]int32, n)
		genres       = make([]string, n)
	)

	for i, s := range songs {
		ids[i] = s.TrackID
		artists[i] = s.Artists
		albums[i] = s.AlbumName
		names[i] = s.TrackName
		popularity[i] = int32(s.Popularity)
		durations[i] = int32(s.DurationMs)
		explicit[i] = s.Explicit
		danceability[i] = s.Danceability
		energy[i] = s.Energy
		keys[i] = int32(s.Key)
		loudness[i] = s.Loudness
		modes[i] = int32(s.Mode)
		speechiness[i] = s.Speechiness
		acousticness[i] = s.Acousticness
		instrumental[i] = s.Instrumentalness
		liveness[i] = s.Liveness
		valence[i] = s.Valence
		tempo[i] = s.Tempo
		signatures[i] = int32(s.TimeSignature)
		genres[i] = s.Genre
	}

	_, err := tx.Exec(ctx, query,
		ids, artists, albums, names, popularity, durations, explicit,
		danceability, energy, keys, loudness, modes, speechiness, acousticness,
		instrumental, liveness, valence, tempo, signatures, genres,
	)
	if err != nil {
		return fmt.Errorf("batch upserting songs: %w", err)
	}
	return nil
}

// All returns every song ordered by track ID.
func (r *SongRepository) All(ctx context.Context) ([]catalog.Song, error) {
	query := `
		SELECT track_id, artists, album_name, track_name, popularity, duration_ms, explicit,
			danceability, energy, key, loudness, mode, speechiness, acousticness,
			instrumentalness, liveness, valence, tempo, time_signature, track_genre
		FROM songs
		ORDER BY track_id
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying songs: %w", err)
	}
	defer rows.Close()

	var songs []catalog.Song
	for rows.Next() {
		var s catalog.Song
		if err := rows.Scan(
			&s.TrackID,
			&s.Artists,
			&s.AlbumName,
			&s.TrackName,
			&s.Popularity,
			&s.DurationMs,
			&s.Explicit,
			&s.Danceability,
			&s.Energy,
			&s.Key,
			&s.Loudness,
			&s.Mode,
			&s.Speechiness,
			&s.Acousticness,
			&s.Instrumentalness,
			&s.Liveness,
			&s.Valence,
			&s.Tempo,
			&s.TimeSignature,
			&s.Genre,
		); err != nil {
			return nil, fmt.Errorf("scanning song: %w", err)
		}
		songs = append(songs, s)
	}
	return songs, rows.Err()
}

// Count returns the number of stored songs.
func (r *SongRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM songs`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting songs: %w", err)
	}
	return n, nil
}
