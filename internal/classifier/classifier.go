// Package classifier turns free-text mood descriptions into emotion labels.
package classifier

import (
	"context"
	"errors"
)

// Sentinel errors.
var (
	// ErrEmptyText is returned when the text to classify is blank.
	ErrEmptyText = errors.New("no text provided")

	// ErrNoSignal is returned when the lexicon finds no emotional keywords.
	ErrNoSignal = errors.New("no emotional signal in text")

	// ErrRateLimited is returned when the remote classifier keeps rejecting requests.
	ErrRateLimited = errors.New("rate limit exceeded")
)

// Result is a classifier verdict. Emotion is reported exactly as the
// classifier returned it and may not be one of the supported emotions.
type Result struct {
	Emotion    string  `json:"emotion"`
	Confidence float64 `json:"confidence"`
}

// Classifier labels text with an emotion.
type Classifier interface {
	Classify(ctx context.Context, text string) (Result, error)
}
