// Package sqlstore implements the repository interfaces on database/sql,
// with PostgreSQL through pgx and SQLite through go-sqlite3. Queries use
// $n placeholders, numbered in order of first use, which both drivers accept.
package sqlstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"

	"github.com/JonnyWalker81/tempo/internal/models"
	"github.com/JonnyWalker81/tempo/internal/repository"
)

// Supported dialects
const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite"
)

// Store owns the connection pool shared by the SQL repositories
type Store struct {
	db      *sql.DB
	dialect string
}

// Open connects, pings and migrates the database for dialect
func Open(ctx context.Context, dialect, dsn string) (*Store, error) {
	var db *sql.DB
	switch dialect {
	case DialectPostgres:
		cfg, err := pgx.ParseConfig(dsn)
		if err != nil {
			return nil, fmt.Errorf("failed to parse postgres dsn: %w", err)
		}
		db = stdlib.OpenDB(*cfg)
	case DialectSQLite:
		var err error
		db, err = sql.Open("sqlite3", dsn)
		if err != nil {
			return nil, fmt.Errorf("failed to open SQLite database: %w", err)
		}
		// :memory: databases are per connection
		db.SetMaxOpenConns(1)
	default:
		return nil, fmt.Errorf("unsupported database dialect: %s", dialect)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &Store{db: db, dialect: dialect}
	if err := s.migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return s, nil
}

func (s *Store) migrate(ctx context.Context) error {
	queries := sqliteSchema
	if s.dialect == DialectPostgres {
		queries = postgresSchema
	}

	for _, query := range queries {
		if _, err := s.db.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to execute migration query: %w", err)
		}
	}
	return nil
}

// Ping checks the connection; used by the health endpoint
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the underlying pool
func (s *Store) Close() error {
	return s.db.Close()
}

// Repositories returns the SQL-backed implementation of every store
func (s *Store) Repositories() repository.Repositories {
	return repository.Repositories{
		Events:      &eventRepository{db: s.db},
		Moods:       &moodEntryRepository{db: s.db},
		Feedback:    &feedbackRepository{db: s.db},
		Suggestions: &suggestionRepository{db: s.db},
	}
}

// CreateCategory inserts or renames a category
func (s *Store) CreateCategory(ctx context.Context, c models.Category) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO categories (id, user_id, name, color) VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET name = excluded.name, color = excluded.color`,
		c.ID, c.UserID, c.Name, c.Color)
	if err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}
