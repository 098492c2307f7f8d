package translation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

// Cache decorates a Port with a persistent translation store, so repeated
// runs over overlapping datasets do not pay for the same leaf twice.
// Entries are keyed by model, target language and source text.
type Cache struct {
	db       *sql.DB
	next     Port
	model    string
	language string
	log      *zap.Logger
}

// NewCache opens (or creates) the sqlite cache at path and wraps next.
func NewCache(path string, next Port, cfg Config, logger *zap.Logger) (*Cache, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}

	schema := `CREATE TABLE IF NOT EXISTS translations (
		model    TEXT NOT NULL,
		language TEXT NOT NULL,
		source   TEXT NOT NULL,
		target   TEXT NOT NULL,
		PRIMARY KEY (model, language, source)
	)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create cache schema: %w", err)
	}

	return &Cache{
		db:       db,
		next:     next,
		model:    cfg.Model,
		language: cfg.Language,
		log:      logger,
	}, nil
}

// Translate implements Port. A cache lookup failure other than a miss is
// logged and treated as a miss; the backend stays authoritative.
func (c *Cache) Translate(ctx context.Context, text string) (string, error) {
	var target string
	err := c.db.QueryRowContext(ctx,
		`SELECT target FROM translations WHERE model = ? AND language = ? AND source = ?`,
		c.model, c.language, text).Scan(&target)
	if err == nil {
		c.log.Debug("translation cache hit")
		return target, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		c.log.Warn("translation cache lookup failed", zap.Error(err))
	}

	out, err := c.next.Translate(ctx, text)
	if err != nil {
		return "", err
	}

	if _, err := c.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO translations (model, language, source, target) VALUES (?, ?, ?, ?)`,
		c.model, c.language, text, out); err != nil {
		c.log.Warn("failed to store translation in cache", zap.Error(err))
	}

	return out, nil
}

// Close releases the cache database.
func (c *Cache) Close() error {
	return c.db.Close()
}
