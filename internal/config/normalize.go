package config

import (
	"fmt"
	"os"
	"strings"
)

// applyEnv overlays environment variables. Non-empty values win over the file.
func (c *Config) applyEnv() {
	overrides := []struct {
		key    string
		target *string
	}{
		{"MOODIFY_ADDR", &c.Server.Addr},
		{"MOODIFY_CATALOG", &c.Catalog.Path},
		{"DATABASE_URL", &c.Catalog.DatabaseURL},
		{"MOODIFY_CLASSIFIER_URL", &c.Classifier.BaseURL},
		{"MOODIFY_SONGS_URL", &c.Songs.BaseURL},
		{"SPOTIFY_ID", &c.Spotify.ClientID},
		{"SPOTIFY_SECRET", &c.Spotify.ClientSecret},
		{"MOODIFY_LOG_LEVEL", &c.Logging.Level},
	}
	for _, o := range overrides {
		if value, ok := os.LookupEnv(o.key); ok && strings.TrimSpace(value) != "" {
			*o.target = strings.TrimSpace(value)
		}
	}
}

func (c *Config) normalize() error {
	c.Server.Addr = strings.TrimSpace(c.Server.Addr)
	if c.Server.Addr == "" {
		c.Server.Addr = defaultAddr
	}

	if err := c.normalizeCatalog(); err != nil {
		return err
	}

	c.Classifier.Mode = strings.ToLower(strings.TrimSpace(c.Classifier.Mode))
	if c.Classifier.Mode == "" {
		c.Classifier.Mode = defaultClassifierMode
	}
	c.Classifier.BaseURL = strings.TrimRight(strings.TrimSpace(c.Classifier.BaseURL), "/")
	if c.Classifier.TimeoutSeconds <= 0 {
		c.Classifier.TimeoutSeconds = defaultClassifierTimeout
	}

	c.Songs.Source = strings.ToLower(strings.TrimSpace(c.Songs.Source))
	if c.Songs.Source == "" {
		c.Songs.Source = defaultSongsSource
	}
	c.Songs.BaseURL = strings.TrimRight(strings.TrimSpace(c.Songs.BaseURL), "/")
	if c.Songs.Limit <= 0 {
		c.Songs.Limit = defaultSongsLimit
	}

	c.Spotify.ClientID = strings.TrimSpace(c.Spotify.ClientID)
	c.Spotify.ClientSecret = strings.TrimSpace(c.Spotify.ClientSecret)

	if c.Atlas.Clusters <= 0 {
		c.Atlas.Clusters = defaultAtlasClusters
	}
	if c.Atlas.MinSize <= 0 {
		c.Atlas.MinSize = defaultAtlasMinSize
	}

	c.normalizeLogging()
	return nil
}

func (c *Config) normalizeCatalog() error {
	c.Catalog.DatabaseURL = strings.TrimSpace(c.Catalog.DatabaseURL)
	c.Catalog.Path = strings.TrimSpace(c.Catalog.Path)
	if c.Catalog.Path == "" {
		return nil
	}
	expanded, err := expandPath(c.Catalog.Path)
	if err != nil {
		return fmt.Errorf("catalog.path: %w", err)
	}
	c.Catalog.Path = expanded
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
}
