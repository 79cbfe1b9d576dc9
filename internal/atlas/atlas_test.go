package atlas

import (
	"fmt"
	"testing"

	"github.com/justestif/moodify/internal/catalog"
	"github.com/justestif/moodify/internal/mood"
)

func TestGroupName(t *testing.T) {
	tests := []struct {
		name     string
		centroid map[string]float64
		want     string
	}{
		{"high energy high valence", map[string]float64{"energy": 0.8, "valence": 0.7, "acousticness": 0.2}, "Upbeat Party"},
		{"high energy low valence", map[string]float64{"energy": 0.8, "valence": 0.3, "acousticness": 0.2}, "Intense & Dark"},
		{"low energy high valence", map[string]float64{"energy": 0.4, "valence": 0.7, "acousticness": 0.3}, "Chill & Happy"},
		{"low energy low valence", map[string]float64{"energy": 0.3, "valence": 0.3, "acousticness": 0.4}, "Reflective & Melancholy"},
		{"acoustic modifier", map[string]float64{"energy": 0.4, "valence": 0.7, "acousticness": 0.8}, "Chill & Happy (Acoustic)"},
		{"boundary energy 0.6 is low", map[string]float64{"energy": 0.6, "valence": 0.7}, "Chill & Happy"},
		{"boundary valence 0.5 is low", map[string]float64{"energy": 0.8, "valence": 0.5}, "Intense & Dark"},
		{"boundary acousticness 0.6 no modifier", map[string]float64{"energy": 0.8, "valence": 0.7, "acousticness": 0.6}, "Upbeat Party"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GroupName(tt.centroid); got != tt.want {
				t.Errorf("GroupName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDescribe(t *testing.T) {
	got := Describe(map[string]float64{"energy": 0.2, "valence": 0.2})
	if got != "Contemplative and introspective - ideal for quiet moments" {
		t.Errorf("Describe() = %q", got)
	}
}

// makeSongs creates n songs with identical features.
func makeSongs(prefix string, n int, energy, valence, dance, acoustic float64) []catalog.Song {
	out := make([]catalog.Song, n)
	for i := range out {
		out[i] = catalog.Song{
			TrackID:      fmt.Sprintf("%s-%d", prefix, i),
			Energy:       energy,
			Valence:      valence,
			Danceability: dance,
			Acousticness: acoustic,
			Loudness:     -5,
		}
	}
	return out
}

func TestBuildSeparatesDistinctGroups(t *testing.T) {
	var songs []catalog.Song
	songs = append(songs, makeSongs("party", 6, 0.9, 0.9, 0.9, 0.1)...)
	songs = append(songs, makeSongs("sad", 4, 0.1, 0.1, 0.2, 0.9)...)

	a, err := Build(songs, Config{Clusters: 2, MinSize: 1})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if len(a.Groups) != 2 {
		t.Fatalf("got %d groups, want 2", len(a.Groups))
	}
	if a.Total() != len(songs) {
		t.Errorf("Total() = %d, want %d", a.Total(), len(songs))
	}

	// Sorted largest first
	party, sad := a.Groups[0], a.Groups[1]
	if len(party.Songs) != 6 || len(sad.Songs) != 4 {
		t.Fatalf("group sizes = %d, %d", len(party.Songs), len(sad.Songs))
	}
	if party.Name != "Upbeat Party" {
		t.Errorf("party name = %q", party.Name)
	}
	if party.Dominant != mood.Joy || party.Matches != 6 {
		t.Errorf("party dominant = %q (%d)", party.Dominant, party.Matches)
	}
	if sad.Name != "Reflective & Melancholy (Acoustic)" {
		t.Errorf("sad name = %q", sad.Name)
	}
	if sad.Dominant != mood.Sadness {
		t.Errorf("sad dominant = %q", sad.Dominant)
	}
	if sad.Songs[0].TrackID != "sad-0" {
		t.Errorf("members should keep catalog order, got %q first", sad.Songs[0].TrackID)
	}
}

func TestBuildSmallGroupsBecomeOutliers(t *testing.T) {
	var songs []catalog.Song
	songs = append(songs, makeSongs("big", 8, 0.9, 0.9, 0.9, 0.1)...)
	songs = append(songs, makeSongs("tiny", 1, 0.1, 0.1, 0.1, 0.9)...)

	a, err := Build(songs, Config{Clusters: 2, MinSize: 3})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if len(a.Groups) != 1 {
		t.Fatalf("got %d groups, want 1", len(a.Groups))
	}
	if len(a.Outliers) != 1 || a.Outliers[0].TrackID != "tiny-0" {
		t.Errorf("outliers = %+v", a.Outliers)
	}
}

func TestBuildTooFewSongs(t *testing.T) {
	songs := makeSongs("x", 2, 0.5, 0.5, 0.5, 0.5)
	a, err := Build(songs, Config{Clusters: 5, MinSize: 1})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if len(a.Groups) != 0 || len(a.Outliers) != 2 {
		t.Errorf("got %d groups, %d outliers", len(a.Groups), len(a.Outliers))
	}
}

func TestBuildEmpty(t *testing.T) {
	a, err := Build(nil, DefaultConfig())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if a.Total() != 0 {
		t.Errorf("Total() = %d, want 0", a.Total())
	}
}

func TestDominantEmotionNone(t *testing.T) {
	// Mid-range features match no predicate
	songs := []catalog.Song{{Energy: 0.55, Valence: 0.55, Danceability: 0.7, Loudness: -10}}
	e, n := dominantEmotion(songs)
	if e != "" || n != 0 {
		t.Errorf("dominantEmotion() = %q, %d, want none", e, n)
	}
}
