// Package store persists completed assessments. The memory implementation
// backs tests and single-node runs; the SQL implementations persist across
// restarts.
package store

import (
	"context"
	"fmt"

	"fairmeter/internal/assessment/models"
	"fairmeter/pkg/domain"
)

// Store is the persistence port for assessments.
type Store interface {
	Save(ctx context.Context, a *models.Assessment) error
	FindByID(ctx context.Context, id domain.AssessmentID) (*models.Assessment, error)
	List(ctx context.Context, limit, offset int) ([]*models.Assessment, error)
	Delete(ctx context.Context, id domain.AssessmentID) error
	Close() error
}

// Open builds a store for the configured driver. An empty driver selects the
// in-memory store.
func Open(ctx context.Context, driver, dsn string) (Store, error) {
	switch driver {
	case "", "memory":
		return NewMemory(), nil
	case "postgres":
		return OpenPostgres(ctx, dsn)
	case "sqlite":
		return OpenSQLite(ctx, dsn)
	default:
		return nil, fmt.Errorf("unknown store driver %q", driver)
	}
}
