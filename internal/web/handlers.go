package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/justestif/moodify/internal/atlas"
	"github.com/justestif/moodify/internal/catalog"
	"github.com/justestif/moodify/internal/classifier"
	"github.com/justestif/moodify/internal/mood"
	"github.com/justestif/moodify/internal/recommend"
	"github.com/justestif/moodify/internal/songs"
)

const (
	defaultBrowseLimit  = 50
	maxBrowseLimit      = 500
	defaultHistoryLimit = 10
	maxHistoryLimit     = 100
	atlasExamples       = 5
	maxRequestBytes     = 64 << 10
)

// Handlers contains HTTP handlers for the web application.
type Handlers struct {
	service    *recommend.Service
	classifier classifier.Classifier
	finder     *songs.LocalFinder
	catalog    *catalog.Catalog
	history    recommend.History
	atlasCfg   atlas.Config
	templates  *Templates
	logger     *zap.Logger

	atlasOnce sync.Once
	atlas     atlas.Atlas
	atlasErr  error
}

// Home handles the home page (GET /).
func (h *Handlers) Home(w http.ResponseWriter, r *http.Request) {
	data := HomePageData{
		PageData: PageData{Title: "Moodify", CurrentPath: r.URL.Path},
	}
	h.render(w, "home", data)
}

// Recommend handles the mood form (POST /recommend). HTMX requests get only
// the results fragment.
func (h *Handlers) Recommend(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBytes)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}
	text := r.PostForm.Get("mood")

	result := &ResultData{}
	rec, err := h.service.Recommend(r.Context(), text)
	if err != nil {
		result.Error = recommend.UserMessage(err)
		h.logger.Info("recommendation failed",
			zap.String("message", result.Error),
			zap.Error(err),
		)
	} else {
		result.Emotion = rec.Emotion
		result.Confidence = rec.Confidence
		result.Profile = mood.ProfileFor(rec.Emotion)
		result.Tracks = rec.Tracks
	}

	if r.Header.Get("HX-Request") == "true" {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := h.templates.RenderPartial(w, "results", result); err != nil {
			h.logger.Error("rendering results", zap.Error(err))
			http.Error(w, "Failed to render template", http.StatusInternalServerError)
		}
		return
	}

	h.render(w, "home", HomePageData{
		PageData: PageData{Title: "Moodify", CurrentPath: r.URL.Path},
		Mood:     text,
		Result:   result,
	})
}

// Browse shows catalog songs matching a mood (GET /browse).
func (h *Handlers) Browse(w http.ResponseWriter, r *http.Request) {
	data := BrowsePageData{
		PageData: PageData{Title: "Browse by mood", CurrentPath: r.URL.Path},
		Moods:    mood.Profiles(),
		Limit:    clampLimit(r.URL.Query().Get("limit"), defaultBrowseLimit, maxBrowseLimit),
		Total:    h.catalog.Len(),
	}
	status := http.StatusOK

	if raw := r.URL.Query().Get("mood"); raw != "" {
		e, err := mood.Parse(raw)
		if err != nil {
			data.Error = err.Error()
			status = http.StatusBadRequest
		} else {
			profile := mood.ProfileFor(e)
			data.Selected = &profile
			matched := h.finder.Match(e)
			data.Matched = len(matched)
			data.Songs = matched[:min(data.Limit, len(matched))]
		}
	}

	h.renderStatus(w, status, "browse", data)
}

// Atlas shows the catalog clustered by audio features (GET /atlas).
func (h *Handlers) Atlas(w http.ResponseWriter, r *http.Request) {
	data := AtlasPageData{
		PageData: PageData{Title: "Mood atlas", CurrentPath: r.URL.Path},
	}

	a, err := h.buildAtlas()
	if err != nil {
		h.logger.Error("building atlas", zap.Error(err))
		data.Error = "Could not build the mood atlas."
	} else {
		for _, g := range a.Groups {
			data.Groups = append(data.Groups, newGroupData(g, atlasExamples))
		}
		data.Outliers = len(a.Outliers)
		data.Total = a.Total()
	}

	h.render(w, "atlas", data)
}

// The catalog never changes after startup, so one clustering run serves
// every request.
func (h *Handlers) buildAtlas() (atlas.Atlas, error) {
	h.atlasOnce.Do(func() {
		h.atlas, h.atlasErr = atlas.Build(h.catalog.All(), h.atlasCfg)
		if h.atlasErr == nil {
			h.logger.Info("atlas built",
				zap.Int("groups", len(h.atlas.Groups)),
				zap.Int("outliers", len(h.atlas.Outliers)),
			)
		}
	})
	return h.atlas, h.atlasErr
}

type analyzeRequest struct {
	Text string `json:"text"`
}

// AnalyzeMood classifies text (POST /analyze_mood).
func (h *Handlers) AnalyzeMood(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusInternalServerError, "Internal server error: "+err.Error())
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeError(w, http.StatusBadRequest, "No text provided")
		return
	}

	result, err := h.classifier.Classify(r.Context(), req.Text)
	if err != nil {
		h.logger.Warn("classifying mood", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Internal server error: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// GetSongs returns up to 20 random catalog songs for an emotion
// (GET /get_songs/{emotion}).
func (h *Handlers) GetSongs(w http.ResponseWriter, r *http.Request) {
	e, err := mood.Parse(chi.URLParam(r, "emotion"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	tracks, err := h.finder.Find(r.Context(), e)
	var noSongs *songs.NoSongsError
	switch {
	case errors.As(err, &noSongs):
		writeJSON(w, http.StatusOK, map[string]string{"message": noSongs.Message})
	case err != nil:
		h.logger.Error("finding songs", zap.String("emotion", e.String()), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Internal server error: "+err.Error())
	default:
		writeJSON(w, http.StatusOK, map[string][]songs.Track{"songs": tracks})
	}
}

type historyEntry struct {
	ID         string        `json:"id"`
	Text       string        `json:"text"`
	Emotion    string        `json:"emotion"`
	Confidence float64       `json:"confidence"`
	Tracks     []songs.Track `json:"tracks"`
	CreatedAt  string        `json:"created_at"`
}

// RecentRecommendations lists recent lookups, newest first
// (GET /api/recommendations).
func (h *Handlers) RecentRecommendations(w http.ResponseWriter, r *http.Request) {
	limit := clampLimit(r.URL.Query().Get("limit"), defaultHistoryLimit, maxHistoryLimit)

	recs, err := h.history.Recent(r.Context(), limit)
	if err != nil {
		h.logger.Error("listing recommendations", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Internal server error: "+err.Error())
		return
	}

	entries := make([]historyEntry, len(recs))
	for i, rec := range recs {
		entries[i] = historyEntry{
			ID:         rec.ID.String(),
			Text:       rec.Text,
			Emotion:    rec.Emotion.String(),
			Confidence: rec.Confidence,
			Tracks:     rec.Tracks,
			CreatedAt:  rec.CreatedAt.UTC().Format(time.RFC3339),
		}
	}
	writeJSON(w, http.StatusOK, map[string][]historyEntry{"recommendations": entries})
}

// Healthz reports liveness (GET /healthz).
func (h *Handlers) Healthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok")) //nolint:errcheck
}

func (h *Handlers) render(w http.ResponseWriter, page string, data any) {
	h.renderStatus(w, http.StatusOK, page, data)
}

// renderStatus buffers the page so a template error can still produce a 500.
func (h *Handlers) renderStatus(w http.ResponseWriter, status int, page string, data any) {
	var buf bytes.Buffer
	if err := h.templates.Render(&buf, page, data); err != nil {
		h.logger.Error("rendering template", zap.String("page", page), zap.Error(err))
		http.Error(w, "Failed to render template", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes()) //nolint:errcheck
}

// clampLimit parses a positive limit, falling back to def and capping at max.
func clampLimit(raw string, def, ceiling int) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return def
	}
	return min(n, ceiling)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
