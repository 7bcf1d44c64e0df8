package reports

import (
	"context"
	"fmt"

	"inventaris/internal/core/apperror"
	"inventaris/internal/core/dateonly"
	"inventaris/internal/core/id"
	"inventaris/internal/domain/scope"
)

// Service is the balance reconstruction engine.
type Service struct {
	repo Repository
}

// NewService creates the engine.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Reconstruct computes per-item balances for the inclusive [start, end]
// window given as ISO date strings. Malformed or inverted bounds fail
// before any query runs. An empty division scope is a valid state and
// yields an empty result, not an error.
func (s *Service) Reconstruct(ctx context.Context, companyID id.ID, start, end string, sc scope.Scope) ([]Row, error) {
	r, err := dateonly.ParseRange(start, end)
	if err != nil {
		return nil, apperror.NewInvalidRange(err)
	}
	return s.ReconstructRange(ctx, companyID, r, sc)
}

// ReconstructRange is Reconstruct with pre-validated bounds.
//
// opening(item) is the closing balance strictly before r.Start for
// transactions and adjustments, plus opening rows dated <= r.Start
// (an opening row is effective from its date inclusive). closing is
// opening plus period movement, including opening rows dated inside
// the window. Same-day events at r.Start therefore land in period
// movement, never in opening.
func (s *Service) ReconstructRange(ctx context.Context, companyID id.ID, r dateonly.Range, sc scope.Scope) ([]Row, error) {
	if sc.IsNone() {
		return []Row{}, nil
	}

	raw, err := s.repo.FetchBalanceRows(ctx, companyID, r, sc)
	if err != nil {
		return nil, fmt.Errorf("fetch balance rows: %w", err)
	}

	rows := make([]Row, 0, len(raw))
	for _, rr := range raw {
		rows = append(rows, reconstructRow(rr))
	}
	return rows, nil
}

// reconstructRow folds one item's raw aggregates into a balance.
func reconstructRow(rr RawRow) Row {
	opening := rr.OpeningQty.Add(rr.InBefore).Sub(rr.OutBefore).Add(rr.AdjBefore)
	closing := opening.Add(rr.OpeningWindow).Add(rr.InQty).Sub(rr.OutQty).Add(rr.AdjQty)

	row := Row{
		DivisionName:  rr.DivisionName,
		GroupName:     rr.GroupName,
		ItemID:        rr.ItemID,
		ItemName:      rr.ItemName,
		ExpiryDate:    rr.ExpiryDate,
		Unit:          rr.Unit,
		Opening:       opening,
		OpeningWindow: rr.OpeningWindow,
		InQty:         rr.InQty,
		OutQty:        rr.OutQty,
		AdjQty:        rr.AdjQty,
		Closing:       closing,
		PricePerUnit:  rr.PricePerUnit,
	}

	if rr.PricePerUnit != nil {
		value := closing.Mul(*rr.PricePerUnit)
		row.StockValue = &value
	}
	return row
}

// Group folds the flat, pre-sorted row slice into the
// division -> group -> items presentation. Input order is preserved.
func Group(rows []Row) []DivisionRows {
	var divisions []DivisionRows
	divIdx := map[string]int{}
	groupIdx := map[string]map[string]int{}

	for _, row := range rows {
		di, ok := divIdx[row.DivisionName]
		if !ok {
			di = len(divisions)
			divIdx[row.DivisionName] = di
			groupIdx[row.DivisionName] = map[string]int{}
			divisions = append(divisions, DivisionRows{Name: row.DivisionName})
		}

		gi, ok := groupIdx[row.DivisionName][row.GroupName]
		if !ok {
			gi = len(divisions[di].Groups)
			groupIdx[row.DivisionName][row.GroupName] = gi
			divisions[di].Groups = append(divisions[di].Groups, GroupRows{Name: row.GroupName})
		}

		divisions[di].Groups[gi].Items = append(divisions[di].Groups[gi].Items, row)
	}
	return divisions
}
