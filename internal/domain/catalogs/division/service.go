package division

import (
	"context"
	"fmt"

	"inventaris/internal/core/apperror"
	"inventaris/internal/core/id"
	"inventaris/internal/domain/scope"
	"inventaris/pkg/logger"
)

// Service provides business operations for the Division catalog.
type Service struct {
	repo Repository
}

// NewService creates a new Division service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create validates and stores a new division. Names are unique per company.
func (s *Service) Create(ctx context.Context, d *Division) error {
	if err := d.Validate(ctx); err != nil {
		return err
	}

	existing, err := s.repo.GetByName(ctx, d.CompanyID, d.Name)
	if err != nil && !apperror.IsNotFound(err) {
		return fmt.Errorf("check division name: %w", err)
	}
	if existing != nil {
		return apperror.NewDuplicate("division", "name", d.Name)
	}

	if err := s.repo.Create(ctx, d); err != nil {
		return fmt.Errorf("create division: %w", err)
	}

	logger.Info(ctx, "division created", "division_id", d.ID, "name", d.Name)
	return nil
}

// Update renames or re-describes a division.
func (s *Service) Update(ctx context.Context, d *Division) error {
	if err := d.Validate(ctx); err != nil {
		return err
	}

	existing, err := s.repo.GetByName(ctx, d.CompanyID, d.Name)
	if err != nil && !apperror.IsNotFound(err) {
		return fmt.Errorf("check division name: %w", err)
	}
	if existing != nil && existing.ID != d.ID {
		return apperror.NewDuplicate("division", "name", d.Name)
	}

	if err := s.repo.Update(ctx, d); err != nil {
		return fmt.Errorf("update division: %w", err)
	}
	return nil
}

// Delete removes a division that no longer owns any item group.
func (s *Service) Delete(ctx context.Context, companyID, divisionID id.ID) error {
	count, err := s.repo.GroupCount(ctx, companyID, divisionID)
	if err != nil {
		return fmt.Errorf("count groups: %w", err)
	}
	if count > 0 {
		return apperror.NewDeletionBlocked("division", apperror.DeletionReasonItems).
			WithDetail("group_count", count)
	}

	if err := s.repo.Delete(ctx, companyID, divisionID); err != nil {
		return fmt.Errorf("delete division: %w", err)
	}

	logger.Info(ctx, "division deleted", "division_id", divisionID)
	return nil
}

// Get returns a single division.
func (s *Service) Get(ctx context.Context, companyID, divisionID id.ID) (*Division, error) {
	return s.repo.GetByID(ctx, companyID, divisionID)
}

// List returns the divisions visible under the caller's scope.
func (s *Service) List(ctx context.Context, companyID id.ID, sc scope.Scope) ([]Division, error) {
	return s.repo.List(ctx, companyID, sc)
}
