// Package backup produces tenant-scoped dumps of the catalog and event
// relations: a compressed JSON archive for restore and an Excel
// workbook for humans.
package backup

import (
	"context"
	"fmt"
	"time"

	"inventaris/internal/core/apperror"
	"inventaris/internal/core/dateonly"
	"inventaris/internal/core/id"
	"inventaris/internal/core/tx"
	"inventaris/internal/domain/catalogs/division"
	"inventaris/internal/domain/catalogs/group"
	"inventaris/internal/domain/catalogs/item"
	"inventaris/internal/domain/events"
	"inventaris/internal/domain/reports"
	"inventaris/internal/domain/scope"
)

// historyStart is the default range start when the caller asks for a
// full-history dump.
var historyStart = dateonly.MustParse("1970-01-01")

// Meta describes one dump.
type Meta struct {
	CompanyID   id.ID          `json:"companyId"`
	Range       dateonly.Range `json:"range"`
	GeneratedAt time.Time      `json:"generatedAt"`
}

// Dump is the full tenant snapshot: catalogs in full, event relations
// restricted to the dump range.
type Dump struct {
	Meta         Meta                    `json:"meta"`
	Divisions    []division.Division     `json:"divisions"`
	Groups       []group.Group           `json:"groups"`
	Items        []item.Item             `json:"items"`
	Openings     []events.OpeningBalance `json:"openingBalances"`
	Transactions []events.Transaction    `json:"transactions"`
	Adjustments  []events.Adjustment     `json:"adjustments"`
}

// Reconstructor supplies the report sheet of the workbook.
type Reconstructor interface {
	ReconstructRange(ctx context.Context, companyID id.ID, r dateonly.Range, sc scope.Scope) ([]reports.Row, error)
}

// Service builds dumps.
type Service struct {
	repo   Repository
	engine Reconstructor
	txm    tx.ReadOnlyManager
}

// NewService creates the backup service.
func NewService(repo Repository, engine Reconstructor, txm tx.ReadOnlyManager) *Service {
	return &Service{repo: repo, engine: engine, txm: txm}
}

// ResolveRange turns optional wire strings into a dump range. Empty
// strings mean full history up to today. A one-sided range borrows the
// missing bound from the defaults.
func ResolveRange(start, end string) (dateonly.Range, error) {
	if start == "" && end == "" {
		return dateonly.Range{Start: historyStart, End: dateonly.Today()}, nil
	}
	if start == "" {
		start = historyStart.String()
	}
	if end == "" {
		end = dateonly.Today().String()
	}
	r, err := dateonly.ParseRange(start, end)
	if err != nil {
		return dateonly.Range{}, apperror.NewInvalidRange(err)
	}
	return r, nil
}

// BuildDump reads every relation inside one read-only transaction, so
// the snapshot is consistent even while writers keep appending.
func (s *Service) BuildDump(ctx context.Context, companyID id.ID, r dateonly.Range) (*Dump, error) {
	dump := &Dump{
		Meta: Meta{CompanyID: companyID, Range: r, GeneratedAt: time.Now().UTC()},
	}

	err := s.txm.ReadOnly(ctx, func(ctx context.Context) error {
		var err error
		if dump.Divisions, err = s.repo.FetchDivisions(ctx, companyID); err != nil {
			return fmt.Errorf("dump divisions: %w", err)
		}
		if dump.Groups, err = s.repo.FetchGroups(ctx, companyID); err != nil {
			return fmt.Errorf("dump groups: %w", err)
		}
		if dump.Items, err = s.repo.FetchItems(ctx, companyID); err != nil {
			return fmt.Errorf("dump items: %w", err)
		}
		if dump.Openings, err = s.repo.FetchOpenings(ctx, companyID, r); err != nil {
			return fmt.Errorf("dump openings: %w", err)
		}
		if dump.Transactions, err = s.repo.FetchTransactions(ctx, companyID, r); err != nil {
			return fmt.Errorf("dump transactions: %w", err)
		}
		if dump.Adjustments, err = s.repo.FetchAdjustments(ctx, companyID, r); err != nil {
			return fmt.Errorf("dump adjustments: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dump, nil
}

// ReportRows reconstructs the balance report for the dump range, for
// the workbook's report sheet.
func (s *Service) ReportRows(ctx context.Context, companyID id.ID, r dateonly.Range) ([]reports.Row, error) {
	return s.engine.ReconstructRange(ctx, companyID, r, scope.All())
}
