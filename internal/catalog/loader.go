package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// ErrMissingColumn is returned when the CSV header lacks a required column.
var ErrMissingColumn = errors.New("missing required column")

// requiredColumns are the columns the mood predicates and display need.
var requiredColumns = []string{
	"track_id", "artists", "track_name",
	"danceability", "energy", "loudness", "valence",
}

// Stats summarizes a load.
type Stats struct {
	Rows       int // Data rows read (header excluded)
	Loaded     int // Songs returned
	Skipped    int // Rows dropped for an empty track_id or unparsable numbers
	Duplicates int // Rows dropped because the track_id was already seen
}

// LoadFile reads a song CSV from disk.
func LoadFile(path string) ([]Song, Stats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("opening catalog: %w", err)
	}
	defer f.Close()

	return Load(f)
}

// Load parses a song CSV with a header row.
// Columns are matched by header name; an unnamed leading index column is ignored.
// Rows with an empty track_id or an unparsable numeric field are skipped, and
// only the first row for each track_id is kept.
func Load(r io.Reader) ([]Song, Stats, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.ReuseRecord = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, Stats{}, fmt.Errorf("reading header: empty input")
	}
	if err != nil {
		return nil, Stats{}, fmt.Errorf("reading header: %w", err)
	}

	cols := indexColumns(header)
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			return nil, Stats{}, fmt.Errorf("%w: %s", ErrMissingColumn, name)
		}
	}

	var (
		songs []Song
		stats Stats
		seen  = make(map[string]struct{})
	)

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, stats, fmt.Errorf("reading row %d: %w", stats.Rows+1, err)
		}
		stats.Rows++

		song, ok := parseRow(cols, record)
		if !ok {
			stats.Skipped++
			continue
		}
		if _, dup := seen[song.TrackID]; dup {
			stats.Duplicates++
			continue
		}
		seen[song.TrackID] = struct{}{}
		songs = append(songs, song)
	}

	stats.Loaded = len(songs)
	return songs, stats, nil
}

// indexColumns maps header names to column positions.
func indexColumns(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if name == "" {
			continue
		}
		if _, ok := cols[name]; !ok {
			cols[name] = i
		}
	}
	return cols
}

// rowParser accumulates the first parse failure while reading a record.
type rowParser struct {
	cols   map[string]int
	record []string
	failed bool
}

func (p *rowParser) str(name string) string {
	i, ok := p.cols[name]
	if !ok || i >= len(p.record) {
		return ""
	}
	return strings.TrimSpace(p.record[i])
}

// float parses a numeric column. Absent columns read as zero; present but
// blank or malformed cells mark the row as failed.
func (p *rowParser) float(name string) float64 {
	if _, ok := p.cols[name]; !ok {
		return 0
	}
	v, err := strconv.ParseFloat(p.str(name), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		p.failed = true
		return 0
	}
	return v
}

func (p *rowParser) int(name string) int {
	if _, ok := p.cols[name]; !ok {
		return 0
	}
	raw := p.str(name)
	if v, err := strconv.Atoi(raw); err == nil {
		return v
	}
	return int(p.float(name))
}

func parseRow(cols map[string]int, record []string) (Song, bool) {
	p := &rowParser{cols: cols, record: record}

	song := Song{
		TrackID:          p.str("track_id"),
		Artists:          p.str("artists"),
		AlbumName:        p.str("album_name"),
		TrackName:        p.str("track_name"),
		Popularity:       p.int("popularity"),
		DurationMs:       p.int("duration_ms"),
		Explicit:         p.str("explicit") == "True",
		Danceability:     p.float("danceability"),
		Energy:           p.float("energy"),
		Key:              p.int("key"),
		Loudness:         p.float("loudness"),
		Mode:             p.int("mode"),
		Speechiness:      p.float("speechiness"),
		Acousticness:     p.float("acousticness"),
		Instrumentalness: p.float("instrumentalness"),
		Liveness:         p.float("liveness"),
		Valence:          p.float("valence"),
		Tempo:            p.float("tempo"),
		TimeSignature:    p.int("time_signature"),
		Genre:            p.str("track_genre"),
	}

	if song.TrackID == "" || p.failed {
		return Song{}, false
	}
	return song, true
}
