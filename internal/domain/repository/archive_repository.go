package repository

import (
	"context"

	"orderdesk/internal/domain/order"
)

// ArchiveRepository persists normalized records consumed from the export
// topic. The live dashboard list never reads from it; it exists for
// reporting queries only.
type ArchiveRepository interface {
	Save(ctx context.Context, rec order.Record) error
	FindByID(ctx context.Context, id string) (*order.Record, error)
}
