package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateCatalog(); err != nil {
		return err
	}
	if err := c.validateClassifier(); err != nil {
		return err
	}
	if err := c.validateSongs(); err != nil {
		return err
	}
	if err := c.validateSpotify(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateCatalog() error {
	if c.Catalog.Path == "" && c.Catalog.DatabaseURL == "" {
		return errors.New("catalog.path or catalog.database_url must be set")
	}
	return nil
}

func (c *Config) validateClassifier() error {
	switch c.Classifier.Mode {
	case ModeLexicon:
	case ModeRemote:
		if c.Classifier.BaseURL == "" {
			return errors.New("classifier.base_url is required when classifier.mode is \"remote\"")
		}
	default:
		return fmt.Errorf("classifier.mode must be %q or %q, got %q", ModeLexicon, ModeRemote, c.Classifier.Mode)
	}
	return nil
}

func (c *Config) validateSongs() error {
	switch c.Songs.Source {
	case SourceLocal:
	case SourceRemote:
		if c.Songs.BaseURL == "" {
			return errors.New("songs.base_url is required when songs.source is \"remote\"")
		}
	default:
		return fmt.Errorf("songs.source must be %q or %q, got %q", SourceLocal, SourceRemote, c.Songs.Source)
	}
	return nil
}

func (c *Config) validateSpotify() error {
	if (c.Spotify.ClientID == "") != (c.Spotify.ClientSecret == "") {
		return errors.New("spotify.client_id and spotify.client_secret must be set together")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error, got %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	return nil
}
