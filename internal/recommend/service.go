// Package recommend runs the mood-to-songs flow: classify the text, check the
// emotion, look up songs, then optionally decorate and record the result.
package recommend

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/justestif/moodify/internal/classifier"
	"github.com/justestif/moodify/internal/mood"
	"github.com/justestif/moodify/internal/songs"
)

// Errors surfaced to users. See UserMessage.
var (
	ErrEmptyText          = errors.New("empty mood description")
	ErrUnsupportedEmotion = errors.New("unsupported emotion")
)

// Recommendation is the outcome of one mood lookup.
type Recommendation struct {
	ID         uuid.UUID
	Text       string
	Emotion    mood.Emotion
	Confidence float64
	Tracks     []songs.Track
	CreatedAt  time.Time
}

// Enricher decorates tracks in place.
type Enricher interface {
	Enrich(ctx context.Context, tracks []songs.Track) error
}

// Recorder persists recommendations.
type Recorder interface {
	Record(ctx context.Context, rec *Recommendation) error
}

// Service coordinates the classifier and song lookup.
type Service struct {
	classifier classifier.Classifier
	finder     songs.Finder
	enricher   Enricher
	recorder   Recorder
	logger     *zap.Logger
	now        func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithEnricher adds track decoration. Failures are logged, not returned.
func WithEnricher(e Enricher) Option {
	return func(s *Service) {
		s.enricher = e
	}
}

// WithRecorder adds history recording. Failures are logged, not returned.
func WithRecorder(r Recorder) Option {
	return func(s *Service) {
		s.recorder = r
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewService creates a recommendation service.
func NewService(c classifier.Classifier, f songs.Finder, opts ...Option) *Service {
	s := &Service{
		classifier: c,
		finder:     f,
		logger:     zap.NewNop(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Recommend classifies text and returns songs for the detected emotion.
func (s *Service) Recommend(ctx context.Context, text string) (*Recommendation, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyText
	}

	result, err := s.classifier.Classify(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("classifying mood: %w", err)
	}

	emotion := mood.Emotion(result.Emotion)
	if !emotion.Valid() {
		s.logger.Info("unsupported emotion", zap.String("emotion", result.Emotion))
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedEmotion, result.Emotion)
	}

	s.logger.Debug("classified mood",
		zap.String("emotion", emotion.String()),
		zap.Float64("confidence", result.Confidence),
	)

	tracks, err := s.finder.Find(ctx, emotion)
	if err != nil {
		return nil, fmt.Errorf("finding songs: %w", err)
	}
	if len(tracks) == 0 {
		return nil, songs.ErrNoSongs
	}

	rec := &Recommendation{
		ID:         uuid.New(),
		Text:       text,
		Emotion:    emotion,
		Confidence: result.Confidence,
		Tracks:     tracks,
		CreatedAt:  s.now(),
	}

	if s.enricher != nil {
		if err := s.enricher.Enrich(ctx, rec.Tracks); err != nil {
			s.logger.Warn("enriching tracks", zap.Error(err))
		}
	}

	if s.recorder != nil {
		if err := s.recorder.Record(ctx, rec); err != nil {
			s.logger.Warn("recording recommendation", zap.Stringer("id", rec.ID), zap.Error(err))
		}
	}

	return rec, nil
}

// User-facing messages.
const (
	MsgEmptyText   = "Please enter a description of your mood."
	MsgUnsupported = "Sorry, we can only process Joy, Sadness, Anger, Fear, and Disgust. Please try again."
	MsgNoSongs     = "No songs found for the given mood. Please try a different description."
	MsgNoSignal    = "We couldn't pick up a mood from that. Try describing how you feel in a few more words."
	MsgUnexpected  = "An unexpected error occurred."
)

// UserMessage maps an error from Recommend to the single message shown to
// the user.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var noSongs *songs.NoSongsError
	var analyzeErr *classifier.StatusError
	var songsErr *songs.StatusError

	switch {
	case errors.Is(err, ErrEmptyText), errors.Is(err, classifier.ErrEmptyText):
		return MsgEmptyText
	case errors.Is(err, ErrUnsupportedEmotion):
		return MsgUnsupported
	case errors.Is(err, classifier.ErrNoSignal):
		return MsgNoSignal
	case errors.As(err, &noSongs) && noSongs.Message != "":
		return noSongs.Message
	case errors.Is(err, songs.ErrNoSongs):
		return MsgNoSongs
	case errors.As(err, &analyzeErr):
		return analyzeErr.Error()
	case errors.As(err, &songsErr):
		return songsErr.Error()
	}

	// Strip our own wrapping so users see the root cause
	for {
		next := errors.Unwrap(err)
		if next == nil {
			break
		}
		err = next
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return MsgUnexpected
}
