// Package store provides a SQLite-backed record of saved markups.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"redline/internal/markup"
	"redline/internal/store/migrations"
)

var ErrNotFound = errors.New("markup not found")

// Markup is one saved annotation export.
type Markup struct {
	ID        string
	Name      string
	Source    string
	Format    string
	Width     int
	Height    int
	Data      []byte
	CreatedAt time.Time
}

// Summary is a Markup without its image bytes.
type Summary struct {
	ID        string
	Name      string
	Source    string
	Format    string
	Width     int
	Height    int
	Size      int
	CreatedAt time.Time
}

// Store persists markups in SQLite.
type Store struct {
	sqlDB *sql.DB
	now   func() time.Time
}

var _ markup.Saver = (*Store)(nil)

// Open opens the database at path and applies embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := applyMigrations(context.Background(), sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB, now: time.Now}, nil
}

func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Create inserts m, assigning an ID and creation time when unset.
func (s *Store) Create(ctx context.Context, m Markup) (Markup, error) {
	if err := ctx.Err(); err != nil {
		return Markup{}, err
	}
	if s == nil || s.sqlDB == nil {
		return Markup{}, fmt.Errorf("storage is not configured")
	}
	if len(m.Data) == 0 {
		return Markup{}, fmt.Errorf("markup data is required")
	}
	if strings.TrimSpace(m.Format) == "" {
		return Markup{}, fmt.Errorf("markup format is required")
	}
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = s.now()
	}
	m.CreatedAt = m.CreatedAt.UTC().Truncate(time.Millisecond)

	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO markups (id, name, source, format, width, height, data, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.Name, m.Source, m.Format, m.Width, m.Height, m.Data, m.CreatedAt.UnixMilli(),
	)
	if err != nil {
		return Markup{}, fmt.Errorf("create markup: %w", err)
	}
	return m, nil
}

// Get returns one markup by ID.
func (s *Store) Get(ctx context.Context, id string) (Markup, error) {
	if err := ctx.Err(); err != nil {
		return Markup{}, err
	}
	if s == nil || s.sqlDB == nil {
		return Markup{}, fmt.Errorf("storage is not configured")
	}
	var (
		m         Markup
		createdAt int64
	)
	err := s.sqlDB.QueryRowContext(ctx,
		`SELECT id, name, source, format, width, height, data, created_at
		 FROM markups WHERE id = ?`, id,
	).Scan(&m.ID, &m.Name, &m.Source, &m.Format, &m.Width, &m.Height, &m.Data, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Markup{}, ErrNotFound
	}
	if err != nil {
		return Markup{}, fmt.Errorf("get markup: %w", err)
	}
	m.CreatedAt = time.UnixMilli(createdAt).UTC()
	return m, nil
}

// List returns up to limit summaries, newest first. A non-positive limit
// returns everything.
func (s *Store) List(ctx context.Context, limit int) ([]Summary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT id, name, source, format, width, height, length(data), created_at
		 FROM markups ORDER BY created_at DESC, id LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list markups: %w", err)
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		var (
			sum       Summary
			createdAt int64
		)
		if err := rows.Scan(&sum.ID, &sum.Name, &sum.Source, &sum.Format,
			&sum.Width, &sum.Height, &sum.Size, &createdAt); err != nil {
			return nil, fmt.Errorf("scan markup: %w", err)
		}
		sum.CreatedAt = time.UnixMilli(createdAt).UTC()
		out = append(out, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate markups: %w", err)
	}
	return out, nil
}

// SaveMarkup records an exported artifact and returns its ID.
func (s *Store) SaveMarkup(ctx context.Context, a markup.Artifact) (string, error) {
	m, err := s.Create(ctx, Markup{
		Name:   a.Name,
		Source: a.Source,
		Format: a.Format,
		Width:  a.Width,
		Height: a.Height,
		Data:   a.Data,
	})
	if err != nil {
		return "", err
	}
	return m.ID, nil
}
