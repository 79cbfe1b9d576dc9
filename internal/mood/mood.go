// Package mood defines the five supported emotions and the audio-feature
// predicates that map songs onto them.
package mood

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/justestif/moodify/internal/catalog"
)

// DefaultLimit is the maximum number of songs returned for one emotion.
const DefaultLimit = 20

// ErrInvalidEmotion is returned when a label is not one of the five emotions.
var ErrInvalidEmotion = errors.New("invalid emotion")

// Emotion is a capitalized emotion label.
type Emotion string

// Supported emotions.
const (
	Joy     Emotion = "Joy"
	Sadness Emotion = "Sadness"
	Anger   Emotion = "Anger"
	Fear    Emotion = "Fear"
	Disgust Emotion = "Disgust"
)

var all = []Emotion{Joy, Sadness, Anger, Fear, Disgust}

// All returns the supported emotions in display order.
func All() []Emotion {
	return append([]Emotion(nil), all...)
}

// String returns the label.
func (e Emotion) String() string {
	return string(e)
}

// Valid reports whether e is one of the supported emotions.
func (e Emotion) Valid() bool {
	for _, known := range all {
		if e == known {
			return true
		}
	}
	return false
}

// Capitalize upper-cases the first letter of s and lower-cases the rest,
// so "joy sad" becomes "Joy sad". A Caser is stateful, so one is built per call.
func Capitalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	_, size := utf8.DecodeRuneInString(s)
	return cases.Upper(language.Und).String(s[:size]) + cases.Lower(language.Und).String(s[size:])
}

// Parse normalizes s ("joy", "JOY", " Joy ") into an Emotion.
func Parse(s string) (Emotion, error) {
	e := Emotion(Capitalize(s))
	if !e.Valid() {
		return "", &InvalidEmotionError{Label: string(e)}
	}
	return e, nil
}

// InvalidEmotionError carries the normalized label that failed to parse.
type InvalidEmotionError struct {
	Label string
}

func (e *InvalidEmotionError) Error() string {
	return fmt.Sprintf("Invalid emotion: %s", e.Label)
}

// Is matches ErrInvalidEmotion.
func (e *InvalidEmotionError) Is(target error) bool {
	return target == ErrInvalidEmotion
}

// Matches reports whether a song's audio features fit the emotion.
//
//   - Joy:     valence > 0.6 and energy > 0.5
//   - Sadness: valence < 0.4 and energy < 0.5
//   - Anger:   energy > 0.7 and loudness > -7 dB
//   - Fear:    valence < 0.5 and energy > 0.6
//   - Disgust: valence < 0.6 and danceability < 0.5
func Matches(e Emotion, s catalog.Song) bool {
	switch e {
	case Joy:
		return s.Valence > 0.6 && s.Energy > 0.5
	case Sadness:
		return s.Valence < 0.4 && s.Energy < 0.5
	case Anger:
		return s.Energy > 0.7 && s.Loudness > -7
	case Fear:
		return s.Valence < 0.5 && s.Energy > 0.6
	case Disgust:
		return s.Valence < 0.6 && s.Danceability < 0.5
	default:
		return false
	}
}

// Filter returns the songs matching e, preserving input order.
func Filter(songs []catalog.Song, e Emotion) []catalog.Song {
	var matched []catalog.Song
	for _, s := range songs {
		if Matches(e, s) {
			matched = append(matched, s)
		}
	}
	return matched
}

// Sample picks up to n songs uniformly at random without replacement.
// When there are n or fewer songs, all are returned in their original order.
// A nil rng uses the global source.
func Sample(songs []catalog.Song, n int, rng *rand.Rand) []catalog.Song {
	if n <= 0 {
		return nil
	}
	if len(songs) <= n {
		return append([]catalog.Song(nil), songs...)
	}

	perm := make([]int, len(songs))
	for i := range perm {
		perm[i] = i
	}
	shuffle := rand.Shuffle
	if rng != nil {
		shuffle = rng.Shuffle
	}
	shuffle(len(perm), func(i, j int) {
		perm[i], perm[j] = perm[j], perm[i]
	})

	picked := make([]catalog.Song, n)
	for i := 0; i < n; i++ {
		picked[i] = songs[perm[i]]
	}
	return picked
}
