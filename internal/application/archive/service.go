package archive

import (
	"context"
	"fmt"

	"orderdesk/internal/domain/order"
	"orderdesk/internal/domain/repository"
)

// Service stores records consumed from the export topic.
type Service struct {
	repo repository.ArchiveRepository
}

func NewService(repo repository.ArchiveRepository) *Service {
	return &Service{repo: repo}
}

// HandleRecord upserts one consumed record.
func (s *Service) HandleRecord(ctx context.Context, rec order.Record) error {
	if rec.ID == "" {
		return fmt.Errorf("record has no id")
	}
	if err := s.repo.Save(ctx, rec); err != nil {
		return fmt.Errorf("save record: %w", err)
	}
	return nil
}
