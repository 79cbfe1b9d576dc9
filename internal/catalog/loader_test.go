package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleCSV = `,track_id,artists,album_name,track_name,popularity,duration_ms,explicit,danceability,energy,key,loudness,mode,speechiness,acousticness,instrumentalness,liveness,valence,tempo,time_signature,track_genre
0,5SuOikwiRyPMVoIQDJUgSV,Gen Hoshino,Comedy,Comedy,73,230666,False,0.676,0.461,1,-6.746,0,0.143,0.0322,1.01e-06,0.358,0.715,87.917,4,acoustic
1,4qPNDBW1i3p13qLCt0Ki3A,Ben Woodward,Ghost (Acoustic),Ghost - Acoustic,55,149610,False,0.42,0.166,1,-17.235,1,0.0763,0.924,5.56e-06,0.101,0.267,77.489,4,acoustic
2,,Nobody,Nothing,Missing ID,10,1000,False,0.5,0.5,1,-5,1,0.1,0.1,0,0.1,0.5,100,4,pop
3,1iJBSr7s7jYXzM8EGcbK5b,Ingrid Michaelson;ZAYN,To Begin Again,To Begin Again,57,210826,True,0.438,0.359,0,-9.734,1,0.0557,0.21,0,0.117,0.12,76.332,4.0,acoustic
4,6lfxq3CG4xtTiEg7opyCyx,Kina Grannis,Crazy Rich Asians,Can't Help Falling In Love,71,201933,False,,0.0596,0,-18.515,1,0.0363,0.905,7.07e-05,0.132,0.143,181.74,3,acoustic
5,5SuOikwiRyPMVoIQDJUgSV,Gen Hoshino,Comedy,Comedy (dup),73,230666,False,0.676,0.461,1,-6.746,0,0.143,0.0322,1.01e-06,0.358,0.715,87.917,4,acoustic
`

func TestLoad(t *testing.T) {
	songs, stats, err := Load(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	wantStats := Stats{Rows: 6, Loaded: 3, Skipped: 2, Duplicates: 1}
	if stats != wantStats {
		t.Errorf("stats = %+v, want %+v", stats, wantStats)
	}

	if len(songs) != 3 {
		t.Fatalf("got %d songs, want 3", len(songs))
	}

	first := songs[0]
	if first.TrackID != "5SuOikwiRyPMVoIQDJUgSV" {
		t.Errorf("TrackID = %q", first.TrackID)
	}
	if first.TrackName != "Comedy" {
		t.Errorf("TrackName = %q, want first occurrence kept", first.TrackName)
	}
	if first.Popularity != 73 || first.DurationMs != 230666 {
		t.Errorf("ints = %d/%d", first.Popularity, first.DurationMs)
	}
	if first.Explicit {
		t.Error("Explicit should be false for \"False\"")
	}
	if first.Valence != 0.715 || first.Energy != 0.461 || first.Loudness != -6.746 {
		t.Errorf("features = valence %v energy %v loudness %v", first.Valence, first.Energy, first.Loudness)
	}
	if first.Instrumentalness != 1.01e-06 {
		t.Errorf("Instrumentalness = %v", first.Instrumentalness)
	}
	if first.Genre != "acoustic" {
		t.Errorf("Genre = %q", first.Genre)
	}

	third := songs[2]
	if !third.Explicit {
		t.Error("Explicit should be true for \"True\"")
	}
	if third.TimeSignature != 4 {
		t.Errorf("TimeSignature = %d, want 4 from \"4.0\"", third.TimeSignature)
	}
	if third.Artists != "Ingrid Michaelson;ZAYN" {
		t.Errorf("Artists = %q", third.Artists)
	}
}

func TestLoadColumnOrderIndependent(t *testing.T) {
	input := "valence,energy,track_name,artists,track_id,loudness,danceability\n" +
		"0.9,0.8,Song,Artist,abc,-4,0.7\n"

	songs, _, err := Load(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(songs) != 1 {
		t.Fatalf("got %d songs, want 1", len(songs))
	}
	s := songs[0]
	if s.TrackID != "abc" || s.Valence != 0.9 || s.Energy != 0.8 || s.Danceability != 0.7 {
		t.Errorf("unexpected song: %+v", s)
	}
	if s.Tempo != 0 || s.Genre != "" {
		t.Errorf("absent optional columns should be zero values: %+v", s)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{
			name:    "missing required column",
			input:   "track_id,artists,track_name,danceability,energy,loudness\nabc,A,B,0.1,0.2,-3\n",
			wantErr: ErrMissingColumn,
		},
		{
			name:  "empty input",
			input: "",
		},
		{
			name:  "unterminated quote",
			input: "track_id,artists,track_name,danceability,energy,loudness,valence\n\"abc,A,B,0.1,0.2,-3,0.5\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Load(strings.NewReader(tt.input))
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "songs.csv")
	if err := os.WriteFile(path, []byte(sampleCSV), 0o600); err != nil {
		t.Fatal(err)
	}

	songs, stats, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if len(songs) != stats.Loaded || stats.Loaded != 3 {
		t.Errorf("loaded %d songs, stats %+v", len(songs), stats)
	}

	if _, _, err := LoadFile(filepath.Join(t.TempDir(), "missing.csv")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestCatalog(t *testing.T) {
	c := New([]Song{
		{TrackID: "a", TrackName: "First"},
		{TrackID: "b", TrackName: "Second"},
		{TrackID: "a", TrackName: "Duplicate"},
	})

	if c.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", c.Len())
	}

	got, ok := c.Get("a")
	if !ok || got.TrackName != "First" {
		t.Errorf("Get(a) = %+v, %v", got, ok)
	}
	if _, ok := c.Get("zzz"); ok {
		t.Error("Get(zzz) should miss")
	}

	var nilCatalog *Catalog
	if nilCatalog.Len() != 0 || nilCatalog.All() != nil {
		t.Error("nil catalog should be empty")
	}
}
