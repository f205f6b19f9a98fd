package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"fairmeter/internal/assessment/models"
	"fairmeter/pkg/domain"
	"fairmeter/pkg/platform/sentinel"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS assessments (
	id          TEXT PRIMARY KEY,
	subject     TEXT NOT NULL,
	endpoint    TEXT NOT NULL,
	results     TEXT NOT NULL,
	summary     TEXT NOT NULL,
	created_at  TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS assessments_created_at_idx ON assessments (created_at DESC);
`

// SQLite persists assessments in a local file, for single-node deployments
// without a database server.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the database file and ensures the schema.
func OpenSQLite(ctx context.Context, dsn string) (*SQLite, error) {
	if dsn == "" {
		dsn = "fairmeter.db"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// modernc/sqlite serializes writes; a single connection avoids
	// SQLITE_BUSY under concurrent assessments.
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return &SQLite{db: db}, nil
}

func (s *SQLite) Save(ctx context.Context, a *models.Assessment) error {
	results, summary, err := marshalDocs(a)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO assessments (id, subject, endpoint, results, summary, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE
		SET subject = excluded.subject, endpoint = excluded.endpoint,
		    results = excluded.results, summary = excluded.summary`,
		a.ID.String(), a.Subject, a.Endpoint, string(results), string(summary), a.CreatedAt)
	if err != nil {
		return fmt.Errorf("save assessment: %w", err)
	}
	return nil
}

func (s *SQLite) FindByID(ctx context.Context, id domain.AssessmentID) (*models.Assessment, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, subject, endpoint, results, summary, created_at
		FROM assessments WHERE id = ?`, id.String())
	return scanAssessment(row)
}

func (s *SQLite) List(ctx context.Context, limit, offset int) ([]*models.Assessment, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, subject, endpoint, results, summary, created_at
		FROM assessments ORDER BY created_at DESC, id LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list assessments: %w", err)
	}
	defer rows.Close()
	return collectAssessments(rows)
}

func (s *SQLite) Delete(ctx context.Context, id domain.AssessmentID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM assessments WHERE id = ?`, id.String())
	if err != nil {
		return fmt.Errorf("delete assessment: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *SQLite) Close() error { return s.db.Close() }
