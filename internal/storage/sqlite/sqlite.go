// Package sqlite stores form submissions in a SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/goliatone/go-formalise/internal/log"
	"github.com/goliatone/go-formalise/internal/storage/sqlite/migrations"
	"github.com/goliatone/go-formalise/pkg/model"
	"github.com/goliatone/go-formalise/pkg/submission"
)

// ErrAlreadyExists is returned when saving a submission ID twice.
var ErrAlreadyExists = errors.New("sqlite: submission already exists")

// StoreConfig is the configuration of the SQLite store.
type StoreConfig struct {
	DBPath string
	Logger log.Logger
}

func (c *StoreConfig) defaults() error {
	if c.DBPath == "" {
		return fmt.Errorf("db path is required")
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "storage.SQLite"})
	return nil
}

// Store is a SQLite implementation of submission.Store.
type Store struct {
	db       *sql.DB
	migrator *migrations.Migrator
	logger   log.Logger
}

var _ submission.Store = (*Store)(nil)

// NewStore opens the database at cfg.DBPath and applies migrations.
func NewStore(ctx context.Context, cfg StoreConfig) (*Store, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
		return nil, fmt.Errorf("could not create db directory: %w", err)
	}

	dsn := fmt.Sprintf("%s?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)", cfg.DBPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("could not open database: %w", err)
	}

	migrator, err := migrations.NewMigrator(db, cfg.Logger)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("could not create migrator: %w", err)
	}
	if err := migrator.Up(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("could not run migrations: %w", err)
	}

	cfg.Logger.Debugf("SQLite store initialized at %s", cfg.DBPath)
	return &Store{db: db, migrator: migrator, logger: cfg.Logger}, nil
}

// Close closes the database connection.
func (s *Store) Close() error { return s.db.Close() }

// Reset reverts every migration and applies them again, dropping all stored
// submissions.
func (s *Store) Reset(ctx context.Context) error {
	if err := s.migrator.Down(ctx); err != nil {
		return fmt.Errorf("could not reset database: %w", err)
	}
	if err := s.migrator.Up(ctx); err != nil {
		return fmt.Errorf("could not reset database: %w", err)
	}
	s.logger.Infof("Submission store reset")
	return nil
}

// Save inserts a submission.
func (s *Store) Save(ctx context.Context, sub submission.Submission) error {
	if sub.ID == "" {
		return fmt.Errorf("submission id is required")
	}
	payload, err := json.Marshal(sub.Values)
	if err != nil {
		return fmt.Errorf("could not encode values: %w", err)
	}

	query := `
		INSERT INTO submissions (id, form_id, values_json, created_at)
		VALUES (?, ?, ?, ?)
	`
	_, err = s.db.ExecContext(ctx, query, sub.ID, sub.FormID, string(payload), sub.CreatedAt.Unix())
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed: submissions.") {
			return fmt.Errorf("submission %s: %w", sub.ID, ErrAlreadyExists)
		}
		return fmt.Errorf("could not insert submission: %w", err)
	}

	s.logger.Debugf("Stored submission %s for form %s", sub.ID, sub.FormID)
	return nil
}

// Get loads a submission by ID.
func (s *Store) Get(ctx context.Context, id string) (*submission.Submission, error) {
	query := `
		SELECT id, form_id, values_json, created_at
		FROM submissions
		WHERE id = ?
	`
	sub, err := scanSubmission(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("submission %s: %w", id, submission.ErrNotFound)
		}
		return nil, fmt.Errorf("could not get submission: %w", err)
	}
	return sub, nil
}

// ListByForm returns the submissions of a form, newest first.
func (s *Store) ListByForm(ctx context.Context, formID string) ([]submission.Submission, error) {
	query := `
		SELECT id, form_id, values_json, created_at
		FROM submissions
		WHERE form_id = ?
		ORDER BY created_at DESC, id DESC
	`
	rows, err := s.db.QueryContext(ctx, query, formID)
	if err != nil {
		return nil, fmt.Errorf("could not list submissions: %w", err)
	}
	defer rows.Close()

	var out []submission.Submission
	for rows.Next() {
		sub, err := scanSubmission(rows)
		if err != nil {
			return nil, fmt.Errorf("could not scan submission: %w", err)
		}
		out = append(out, *sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("could not iterate submissions: %w", err)
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSubmission(row scanner) (*submission.Submission, error) {
	var (
		sub       submission.Submission
		payload   string
		createdAt int64
	)
	if err := row.Scan(&sub.ID, &sub.FormID, &payload, &createdAt); err != nil {
		return nil, err
	}
	var values model.Values
	if err := json.Unmarshal([]byte(payload), &values); err != nil {
		return nil, fmt.Errorf("could not decode values: %w", err)
	}
	sub.Values = values
	sub.CreatedAt = time.Unix(createdAt, 0).UTC()
	return &sub, nil
}
