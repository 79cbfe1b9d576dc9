package main

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/justestif/moodify/internal/catalog"
	"github.com/justestif/moodify/internal/classifier"
	"github.com/justestif/moodify/internal/config"
	"github.com/justestif/moodify/internal/db"
	"github.com/justestif/moodify/internal/enrich"
	"github.com/justestif/moodify/internal/logging"
	"github.com/justestif/moodify/internal/recommend"
	"github.com/justestif/moodify/internal/songs"
)

// commandContext lazily builds the shared pieces each command needs.
type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *zap.Logger

	database *db.DB
	closed   bool
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// log returns the configured logger, or a no-op logger if it cannot be built.
func (c *commandContext) log() *zap.Logger {
	c.loggerOnce.Do(func() {
		c.logger = zap.NewNop()
		if c.config == nil {
			return
		}
		logger, err := logging.New(c.config.Logging.Level, c.config.Logging.Format)
		if err == nil {
			c.logger = logger
		}
	})
	return c.logger
}

// db connects on first use when catalog.database_url is set. It returns nil
// otherwise.
func (c *commandContext) db(ctx context.Context) (*db.DB, error) {
	if c.database != nil || c.config.Catalog.DatabaseURL == "" {
		return c.database, nil
	}
	database, err := db.New(ctx, c.config.Catalog.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	if err := database.Migrate(ctx); err != nil {
		database.Close()
		return nil, err
	}
	c.database = database
	return database, nil
}

func (c *commandContext) close() {
	c.closed = true
	if c.database != nil {
		c.database.Close()
		c.database = nil
	}
	if c.logger != nil {
		c.logger.Sync() //nolint:errcheck
	}
}

// loadCatalog reads songs from PostgreSQL when configured, otherwise from
// the CSV file.
func (c *commandContext) loadCatalog(ctx context.Context) (*catalog.Catalog, error) {
	database, err := c.db(ctx)
	if err != nil {
		return nil, err
	}
	if database != nil {
		list, err := database.Songs().All(ctx)
		if err != nil {
			return nil, fmt.Errorf("loading songs from database: %w", err)
		}
		c.log().Info("catalog loaded", zap.String("source", "postgres"), zap.Int("songs", len(list)))
		return catalog.New(list), nil
	}

	list, stats, err := catalog.LoadFile(c.config.Catalog.Path)
	if err != nil {
		return nil, err
	}
	c.log().Info("catalog loaded",
		zap.String("source", c.config.Catalog.Path),
		zap.Int("rows", stats.Rows),
		zap.Int("songs", stats.Loaded),
		zap.Int("skipped", stats.Skipped),
		zap.Int("duplicates", stats.Duplicates),
	)
	return catalog.New(list), nil
}

func (c *commandContext) newClassifier() classifier.Classifier {
	if c.config.Classifier.Mode == config.ModeRemote {
		return classifier.NewHTTPClient(c.config.Classifier.BaseURL,
			classifier.WithHTTPClient(&http.Client{Timeout: c.config.ClassifierTimeout()}),
		)
	}
	return classifier.NewLexicon()
}

// newFinder returns the configured song source. A nil catalog is loaded on
// demand for the local source.
func (c *commandContext) newFinder(ctx context.Context, cat *catalog.Catalog) (songs.Finder, error) {
	if c.config.Songs.Source == config.SourceRemote {
		return songs.NewRemoteClient(c.config.Songs.BaseURL, nil), nil
	}
	if cat == nil {
		var err error
		if cat, err = c.loadCatalog(ctx); err != nil {
			return nil, err
		}
	}
	return songs.NewLocalFinder(cat, songs.WithLimit(c.config.Songs.Limit)), nil
}

func (c *commandContext) newHistory(ctx context.Context) (recommend.History, error) {
	database, err := c.db(ctx)
	if err != nil {
		return nil, err
	}
	if database != nil {
		return recommend.NewDBHistory(database), nil
	}
	return recommend.NewMemoryHistory(recommend.DefaultHistorySize), nil
}

// newService wires the recommendation flow. Artwork is skipped with a
// warning when Spotify rejects the credentials.
func (c *commandContext) newService(ctx context.Context, cls classifier.Classifier, finder songs.Finder, history recommend.History) *recommend.Service {
	opts := []recommend.Option{recommend.WithLogger(c.log())}
	if history != nil {
		opts = append(opts, recommend.WithRecorder(history))
	}
	if c.config.SpotifyEnabled() {
		enricher, err := enrich.NewFromCredentials(ctx, c.config.Spotify.ClientID, c.config.Spotify.ClientSecret)
		if err != nil {
			c.log().Warn("spotify artwork disabled", zap.Error(err))
		} else {
			opts = append(opts, recommend.WithEnricher(enricher))
		}
	}
	return recommend.NewService(cls, finder, opts...)
}
