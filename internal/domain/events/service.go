package events

import (
	"context"
	"fmt"

	"inventaris/internal/core/apperror"
	"inventaris/internal/core/id"
	"inventaris/internal/domain/scope"
	"inventaris/pkg/logger"
)

// Service provides append operations for the three event streams.
// Transactions and adjustments have no delete path here; the rebuild
// cutover is the only way they leave the store. Listing goes through
// the same scope filtering as every report query.
type Service struct {
	repo Repository
}

// NewService creates a new events service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// AddOpening appends an opening-balance row.
func (s *Service) AddOpening(ctx context.Context, sc scope.Scope, o *OpeningBalance) error {
	if err := o.Validate(ctx); err != nil {
		return err
	}
	if err := s.checkItemAccess(ctx, sc, o.CompanyID, o.ItemID); err != nil {
		return err
	}
	if err := s.repo.CreateOpening(ctx, o); err != nil {
		return fmt.Errorf("create opening: %w", err)
	}
	logger.Info(ctx, "opening balance added",
		"item_id", o.ItemID, "date", o.OpeningDate, "qty", o.Qty)
	return nil
}

// UpdateOpening modifies an existing opening-balance row.
func (s *Service) UpdateOpening(ctx context.Context, sc scope.Scope, o *OpeningBalance) error {
	if err := o.Validate(ctx); err != nil {
		return err
	}
	if err := s.checkItemAccess(ctx, sc, o.CompanyID, o.ItemID); err != nil {
		return err
	}
	if err := s.repo.UpdateOpening(ctx, o); err != nil {
		return fmt.Errorf("update opening: %w", err)
	}
	return nil
}

// DeleteOpening removes an opening-balance row. The caller's scope must
// cover the division owning the row's item, same as on create.
func (s *Service) DeleteOpening(ctx context.Context, sc scope.Scope, companyID, openingID id.ID) error {
	o, err := s.repo.GetOpening(ctx, companyID, openingID)
	if err != nil {
		return err
	}
	if err := s.checkItemAccess(ctx, sc, companyID, o.ItemID); err != nil {
		return err
	}
	if err := s.repo.DeleteOpening(ctx, companyID, openingID); err != nil {
		return fmt.Errorf("delete opening: %w", err)
	}
	return nil
}

// ListOpenings returns opening rows visible under the scope,
// newest first.
func (s *Service) ListOpenings(ctx context.Context, companyID id.ID, sc scope.Scope) ([]OpeningBalance, error) {
	return s.repo.ListOpenings(ctx, companyID, sc)
}

// AddTransaction appends an IN or OUT transaction.
func (s *Service) AddTransaction(ctx context.Context, sc scope.Scope, t *Transaction) error {
	if err := t.Validate(ctx); err != nil {
		return err
	}
	if err := s.checkItemAccess(ctx, sc, t.CompanyID, t.ItemID); err != nil {
		return err
	}
	if err := s.repo.CreateTransaction(ctx, t); err != nil {
		return fmt.Errorf("create transaction: %w", err)
	}
	logger.Info(ctx, "transaction added",
		"item_id", t.ItemID, "type", t.Type, "date", t.TxnDate, "qty", t.Qty)
	return nil
}

// ListTransactions returns transactions of one type visible under the
// scope, newest first.
func (s *Service) ListTransactions(ctx context.Context, companyID id.ID, txnType TxnType, sc scope.Scope) ([]Transaction, error) {
	if txnType != TxnIn && txnType != TxnOut {
		return nil, apperror.NewValidation("type must be IN or OUT")
	}
	return s.repo.ListTransactions(ctx, companyID, txnType, sc)
}

// AddAdjustment appends a signed manual adjustment.
func (s *Service) AddAdjustment(ctx context.Context, sc scope.Scope, a *Adjustment) error {
	if err := a.Validate(ctx); err != nil {
		return err
	}
	if err := s.checkItemAccess(ctx, sc, a.CompanyID, a.ItemID); err != nil {
		return err
	}
	if err := s.repo.CreateAdjustment(ctx, a); err != nil {
		return fmt.Errorf("create adjustment: %w", err)
	}
	logger.Info(ctx, "adjustment added",
		"item_id", a.ItemID, "date", a.AdjDate, "delta", a.QtyDelta)
	return nil
}

// ListAdjustments returns adjustments visible under the scope,
// newest first.
func (s *Service) ListAdjustments(ctx context.Context, companyID id.ID, sc scope.Scope) ([]Adjustment, error) {
	return s.repo.ListAdjustments(ctx, companyID, sc)
}

func (s *Service) checkItemAccess(ctx context.Context, sc scope.Scope, companyID, itemID id.ID) error {
	divisionID, err := s.repo.ItemDivision(ctx, companyID, itemID)
	if err != nil {
		return err
	}
	if !sc.Contains(divisionID) {
		return apperror.NewDivisionDenied()
	}
	return nil
}
