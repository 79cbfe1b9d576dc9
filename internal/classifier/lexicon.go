package classifier

import (
	"context"
	"strings"
	"unicode"

	"github.com/justestif/moodify/internal/mood"
)

// defaultKeywords maps each emotion to words that signal it.
var defaultKeywords = map[mood.Emotion][]string{
	mood.Joy: {
		"happy", "joy", "joyful", "glad", "great", "excited", "amazing", "awesome",
		"cheerful", "delighted", "elated", "fun", "good", "grateful", "love",
		"wonderful", "fantastic", "thrilled", "celebrate", "smile", "smiling",
		"sunny", "proud", "blessed", "ecstatic", "content",
	},
	mood.Sadness: {
		"sad", "unhappy", "down", "depressed", "lonely", "alone", "cry", "crying",
		"tears", "heartbroken", "miserable", "blue", "grief", "grieving", "lost",
		"empty", "hopeless", "hurt", "miss", "missing", "gloomy", "tired", "sorrow",
	},
	mood.Anger: {
		"angry", "mad", "furious", "rage", "annoyed", "irritated", "frustrated",
		"hate", "pissed", "livid", "outraged", "resent", "fuming", "bitter",
		"hostile", "infuriated", "yell", "yelling", "scream",
	},
	mood.Fear: {
		"afraid", "scared", "fear", "frightened", "terrified", "anxious", "anxiety",
		"nervous", "worried", "worry", "panic", "panicking", "dread", "uneasy",
		"tense", "stressed", "paranoid", "horror", "shaking",
	},
	mood.Disgust: {
		"disgusted", "disgust", "gross", "sick", "nauseous", "revolted", "repulsed",
		"yuck", "nasty", "vile", "appalled", "awful", "horrible", "loathe",
		"repulsive", "filthy", "eww",
	},
}

// Lexicon is an offline keyword classifier used when no remote service is
// configured.
type Lexicon struct {
	index map[string]mood.Emotion
}

// NewLexicon builds a classifier from the built-in keyword lists.
func NewLexicon() *Lexicon {
	return NewLexiconWith(defaultKeywords)
}

// NewLexiconWith builds a classifier from custom keyword lists.
// A word listed under several emotions counts for the first in mood.All() order.
func NewLexiconWith(keywords map[mood.Emotion][]string) *Lexicon {
	index := make(map[string]mood.Emotion)
	for _, e := range mood.All() {
		for _, w := range keywords[e] {
			w = strings.ToLower(strings.TrimSpace(w))
			if _, taken := index[w]; w != "" && !taken {
				index[w] = e
			}
		}
	}
	return &Lexicon{index: index}
}

// Classify counts keyword hits per emotion. The emotion with the most hits
// wins, ties going to the earlier emotion in mood.All() order. Confidence is
// the winner's share of all hits.
func (l *Lexicon) Classify(_ context.Context, text string) (Result, error) {
	if strings.TrimSpace(text) == "" {
		return Result{}, ErrEmptyText
	}

	counts := make(map[mood.Emotion]int)
	total := 0
	for _, word := range tokenize(text) {
		if e, ok := l.index[word]; ok {
			counts[e]++
			total++
		}
	}

	if total == 0 {
		return Result{}, ErrNoSignal
	}

	var best mood.Emotion
	bestCount := 0
	for _, e := range mood.All() {
		if counts[e] > bestCount {
			best = e
			bestCount = counts[e]
		}
	}

	return Result{
		Emotion:    best.String(),
		Confidence: float64(bestCount) / float64(total),
	}, nil
}

// tokenize lowercases text and splits it into letter runs. Apostrophes inside
// words are dropped so "can't" reads as "cant".
func tokenize(text string) []string {
	text = strings.ReplaceAll(strings.ToLower(text), "'", "")
	return strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r)
	})
}

var _ Classifier = (*Lexicon)(nil)
var _ Classifier = (*HTTPClient)(nil)
