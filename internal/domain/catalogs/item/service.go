package item

import (
	"context"
	"fmt"

	"inventaris/internal/core/apperror"
	"inventaris/internal/core/id"
	"inventaris/internal/domain/scope"
	"inventaris/pkg/logger"
	"inventaris/pkg/sequence"
)

// skuPadWidth matches the historical zero-padded SKU format.
const skuPadWidth = 4

// skuCounter is the per-company counter name for auto-assigned SKUs.
const skuCounter = "item_sku"

// DeletionGuard decides whether an item may be removed.
// Implemented by the stock aggregator: nonzero current stock and
// historical events are independent blockers.
type DeletionGuard interface {
	EnsureItemDeletable(ctx context.Context, companyID, itemID id.ID) error
}

// Service provides business operations for the Item catalog.
type Service struct {
	repo  Repository
	seq   sequence.Generator
	guard DeletionGuard
}

// NewService creates a new Item service.
func NewService(repo Repository, seq sequence.Generator, guard DeletionGuard) *Service {
	return &Service{repo: repo, seq: seq, guard: guard}
}

// Create validates and stores a new item, assigning a sequential padded
// SKU when none is supplied.
func (s *Service) Create(ctx context.Context, sc scope.Scope, i *Item) error {
	if err := i.Validate(ctx); err != nil {
		return err
	}
	if err := s.checkDivisionAccess(ctx, sc, i.CompanyID, i.GroupID); err != nil {
		return err
	}

	if i.SKU == "" {
		next, err := s.seq.Next(ctx, i.CompanyID.String(), skuCounter)
		if err != nil {
			return fmt.Errorf("assign sku: %w", err)
		}
		i.SKU = sequence.Padded(next, skuPadWidth)
	}

	if err := s.repo.Create(ctx, i); err != nil {
		return fmt.Errorf("create item: %w", err)
	}

	logger.Info(ctx, "item created", "item_id", i.ID, "sku", i.SKU, "group_id", i.GroupID)
	return nil
}

// Update modifies an item.
func (s *Service) Update(ctx context.Context, sc scope.Scope, i *Item) error {
	if err := i.Validate(ctx); err != nil {
		return err
	}
	if err := s.checkDivisionAccess(ctx, sc, i.CompanyID, i.GroupID); err != nil {
		return err
	}

	if err := s.repo.Update(ctx, i); err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	return nil
}

// Delete removes an item after both deletion guards pass.
func (s *Service) Delete(ctx context.Context, sc scope.Scope, companyID, itemID id.ID) error {
	existing, err := s.repo.GetByID(ctx, companyID, itemID)
	if err != nil {
		return err
	}
	if !sc.Contains(existing.DivisionID) {
		return apperror.NewDivisionDenied()
	}

	if err := s.guard.EnsureItemDeletable(ctx, companyID, itemID); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, companyID, itemID); err != nil {
		return fmt.Errorf("delete item: %w", err)
	}

	logger.Info(ctx, "item deleted", "item_id", itemID)
	return nil
}

// Get returns a single item with group and division names resolved.
func (s *Service) Get(ctx context.Context, companyID, itemID id.ID) (*Item, error) {
	return s.repo.GetByID(ctx, companyID, itemID)
}

// List returns items visible under the caller's scope.
func (s *Service) List(ctx context.Context, companyID id.ID, sc scope.Scope) ([]Item, error) {
	return s.repo.List(ctx, companyID, sc)
}

func (s *Service) checkDivisionAccess(ctx context.Context, sc scope.Scope, companyID, groupID id.ID) error {
	divisionID, err := s.repo.GroupDivision(ctx, companyID, groupID)
	if err != nil {
		return err
	}
	if !sc.Contains(divisionID) {
		return apperror.NewDivisionDenied()
	}
	return nil
}
