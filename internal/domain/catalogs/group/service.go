package group

import (
	"context"
	"fmt"

	"inventaris/internal/core/apperror"
	"inventaris/internal/core/id"
	"inventaris/internal/domain/scope"
	"inventaris/pkg/logger"
)

// DeletionGuard decides whether a group may be removed.
// Implemented by the stock aggregator: a group with nonzero stock or any
// historical event must not be deleted.
type DeletionGuard interface {
	EnsureGroupDeletable(ctx context.Context, companyID, groupID id.ID) error
}

// Service provides business operations for the ItemGroup catalog.
type Service struct {
	repo  Repository
	guard DeletionGuard
}

// NewService creates a new Group service.
func NewService(repo Repository, guard DeletionGuard) *Service {
	return &Service{repo: repo, guard: guard}
}

// Create validates and stores a new group. Names are unique per division.
func (s *Service) Create(ctx context.Context, sc scope.Scope, g *Group) error {
	if err := g.Validate(ctx); err != nil {
		return err
	}
	if !sc.Contains(g.DivisionID) {
		return apperror.NewDivisionDenied()
	}

	existing, err := s.repo.GetByName(ctx, g.CompanyID, g.DivisionID, g.Name)
	if err != nil && !apperror.IsNotFound(err) {
		return fmt.Errorf("check group name: %w", err)
	}
	if existing != nil {
		return apperror.NewDuplicate("group", "name", g.Name)
	}

	if err := s.repo.Create(ctx, g); err != nil {
		return fmt.Errorf("create group: %w", err)
	}

	logger.Info(ctx, "group created", "group_id", g.ID, "division_id", g.DivisionID, "name", g.Name)
	return nil
}

// Update modifies a group.
func (s *Service) Update(ctx context.Context, sc scope.Scope, g *Group) error {
	if err := g.Validate(ctx); err != nil {
		return err
	}
	if !sc.Contains(g.DivisionID) {
		return apperror.NewDivisionDenied()
	}

	existing, err := s.repo.GetByName(ctx, g.CompanyID, g.DivisionID, g.Name)
	if err != nil && !apperror.IsNotFound(err) {
		return fmt.Errorf("check group name: %w", err)
	}
	if existing != nil && existing.ID != g.ID {
		return apperror.NewDuplicate("group", "name", g.Name)
	}

	if err := s.repo.Update(ctx, g); err != nil {
		return fmt.Errorf("update group: %w", err)
	}
	return nil
}

// Delete removes a group after both deletion guards pass.
// The guards are independent and report distinct reasons: stock vs history.
// A group that still owns items (even inert ones) is also refused.
func (s *Service) Delete(ctx context.Context, sc scope.Scope, companyID, groupID id.ID) error {
	g, err := s.repo.GetByID(ctx, companyID, groupID)
	if err != nil {
		return err
	}
	if !sc.Contains(g.DivisionID) {
		return apperror.NewDivisionDenied()
	}

	if err := s.guard.EnsureGroupDeletable(ctx, companyID, groupID); err != nil {
		return err
	}

	count, err := s.repo.ItemCount(ctx, companyID, groupID)
	if err != nil {
		return fmt.Errorf("count items: %w", err)
	}
	if count > 0 {
		return apperror.NewDeletionBlocked("group", apperror.DeletionReasonItems).
			WithDetail("item_count", count)
	}

	if err := s.repo.Delete(ctx, companyID, groupID); err != nil {
		return fmt.Errorf("delete group: %w", err)
	}

	logger.Info(ctx, "group deleted", "group_id", groupID)
	return nil
}

// Get returns a single group.
func (s *Service) Get(ctx context.Context, companyID, groupID id.ID) (*Group, error) {
	return s.repo.GetByID(ctx, companyID, groupID)
}

// List returns groups visible under the caller's scope.
func (s *Service) List(ctx context.Context, companyID id.ID, sc scope.Scope) ([]Group, error) {
	return s.repo.List(ctx, companyID, sc)
}
