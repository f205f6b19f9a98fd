package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"

	"fairmeter/internal/assessment/models"
	"fairmeter/internal/indicator"
	"fairmeter/pkg/domain"
	"fairmeter/pkg/platform/sentinel"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS assessments (
	id          UUID PRIMARY KEY,
	subject     TEXT NOT NULL,
	endpoint    TEXT NOT NULL,
	results     JSONB NOT NULL,
	summary     JSONB NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS assessments_created_at_idx ON assessments (created_at DESC);
`

// Postgres persists assessments in PostgreSQL. Results and summary are
// stored as JSONB documents; the queryable columns stay relational.
type Postgres struct {
	db *sql.DB
}

// OpenPostgres connects, pings, and ensures the schema.
func OpenPostgres(ctx context.Context, dsn string) (*Postgres, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if _, err := db.ExecContext(ctx, postgresSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return &Postgres{db: db}, nil
}

func (p *Postgres) Save(ctx context.Context, a *models.Assessment) error {
	results, summary, err := marshalDocs(a)
	if err != nil {
		return err
	}
	_, err = p.db.ExecContext(ctx, `
		INSERT INTO assessments (id, subject, endpoint, results, summary, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE
		SET subject = EXCLUDED.subject, endpoint = EXCLUDED.endpoint,
		    results = EXCLUDED.results, summary = EXCLUDED.summary`,
		a.ID.String(), a.Subject, a.Endpoint, results, summary, a.CreatedAt)
	if err != nil {
		return fmt.Errorf("save assessment: %w", err)
	}
	return nil
}

func (p *Postgres) FindByID(ctx context.Context, id domain.AssessmentID) (*models.Assessment, error) {
	row := p.db.QueryRowContext(ctx, `
		SELECT id, subject, endpoint, results, summary, created_at
		FROM assessments WHERE id = $1`, id.String())
	return scanAssessment(row)
}

func (p *Postgres) List(ctx context.Context, limit, offset int) ([]*models.Assessment, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := p.db.QueryContext(ctx, `
		SELECT id, subject, endpoint, results, summary, created_at
		FROM assessments ORDER BY created_at DESC, id LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list assessments: %w", err)
	}
	defer rows.Close()
	return collectAssessments(rows)
}

func (p *Postgres) Delete(ctx context.Context, id domain.AssessmentID) error {
	res, err := p.db.ExecContext(ctx, `DELETE FROM assessments WHERE id = $1`, id.String())
	if err != nil {
		return fmt.Errorf("delete assessment: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (p *Postgres) Close() error { return p.db.Close() }

// rowScanner covers *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func marshalDocs(a *models.Assessment) (results, summary []byte, err error) {
	results, err = json.Marshal(a.Results)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal results: %w", err)
	}
	summary, err = json.Marshal(a.Summary)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal summary: %w", err)
	}
	return results, summary, nil
}

func scanAssessment(row rowScanner) (*models.Assessment, error) {
	var (
		a          models.Assessment
		rawID      string
		rawResults []byte
		rawSummary []byte
	)
	err := row.Scan(&rawID, &a.Subject, &a.Endpoint, &rawResults, &rawSummary, &a.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan assessment: %w", err)
	}
	if a.ID, err = domain.ParseAssessmentID(rawID); err != nil {
		return nil, fmt.Errorf("parse assessment id: %w", err)
	}
	a.Results = []indicator.Result{}
	if err := json.Unmarshal(rawResults, &a.Results); err != nil {
		return nil, fmt.Errorf("unmarshal results: %w", err)
	}
	if err := json.Unmarshal(rawSummary, &a.Summary); err != nil {
		return nil, fmt.Errorf("unmarshal summary: %w", err)
	}
	return &a, nil
}

func collectAssessments(rows *sql.Rows) ([]*models.Assessment, error) {
	var out []*models.Assessment
	for rows.Next() {
		a, err := scanAssessment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
