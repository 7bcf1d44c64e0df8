package mutations

import (
	"context"
	"fmt"
	"sort"

	"inventaris/internal/core/apperror"
	"inventaris/internal/core/dateonly"
	"inventaris/internal/core/id"
	"inventaris/internal/domain/events"
	"inventaris/internal/domain/reports"
	"inventaris/internal/domain/scope"
)

// openingSeedNote is printed on every seed row.
const openingSeedNote = "Saldo awal"

// Reconstructor is the slice of the balance engine the ledger needs:
// the per-item opening balances for the window.
type Reconstructor interface {
	ReconstructRange(ctx context.Context, companyID id.ID, r dateonly.Range, sc scope.Scope) ([]reports.Row, error)
}

// EventSource supplies the merged chronological event stream.
type EventSource interface {
	ListMerged(ctx context.Context, companyID id.ID, f events.MergedFilter) ([]events.Event, error)
}

// Service builds mutation ledgers.
type Service struct {
	engine Reconstructor
	source EventSource
}

// NewService creates the ledger builder.
func NewService(engine Reconstructor, source EventSource) *Service {
	return &Service{engine: engine, source: source}
}

// BuildLedger replays all events in [start, end] for items in scope
// (or a single item) on top of each item's reconstructed opening.
//
// Replay order is (event_date, seq) ascending; seq is the insertion
// tie-break that makes the running balance deterministic when several
// events share a date. The final running balance of each item equals
// the closing the reconstruction engine reports for the same window.
func (s *Service) BuildLedger(ctx context.Context, companyID id.ID, start, end string, sc scope.Scope, itemID *id.ID) (*Ledger, error) {
	r, err := dateonly.ParseRange(start, end)
	if err != nil {
		return nil, apperror.NewInvalidRange(err)
	}
	return s.BuildLedgerRange(ctx, companyID, r, sc, itemID)
}

// BuildLedgerRange is BuildLedger with pre-validated bounds.
func (s *Service) BuildLedgerRange(ctx context.Context, companyID id.ID, r dateonly.Range, sc scope.Scope, itemID *id.ID) (*Ledger, error) {
	if sc.IsNone() {
		return &Ledger{Items: []ItemLedger{}, Flat: []Row{}}, nil
	}

	reportRows, err := s.engine.ReconstructRange(ctx, companyID, r, sc)
	if err != nil {
		return nil, fmt.Errorf("reconstruct openings: %w", err)
	}

	infos := map[id.ID]*ItemInfo{}
	for _, row := range reportRows {
		if itemID != nil && row.ItemID != *itemID {
			continue
		}
		infos[row.ItemID] = infoFromReport(row)
	}

	evts, err := s.source.ListMerged(ctx, companyID, events.MergedFilter{
		Start:  r.Start,
		End:    r.End,
		Scope:  sc,
		ItemID: itemID,
	})
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}

	// Items that surface only through events (not enumerated by the
	// engine, which should not normally happen) still get a ledger,
	// seeded at zero.
	byItem := map[id.ID][]events.Event{}
	for _, ev := range evts {
		if _, ok := infos[ev.ItemID]; !ok {
			infos[ev.ItemID] = infoFromEvent(ev)
		}
		byItem[ev.ItemID] = append(byItem[ev.ItemID], ev)
	}

	ordered := orderInfos(infos)

	ledger := &Ledger{Items: make([]ItemLedger, 0, len(ordered)), Flat: []Row{}}
	for _, info := range ordered {
		il := replayItem(*info, r.Start, byItem[info.ItemID])
		ledger.Items = append(ledger.Items, il)
		ledger.Flat = append(ledger.Flat, il.Rows...)
	}
	return ledger, nil
}

// replayItem produces the seed row and one row per event, accumulating
// the running balance.
func replayItem(info ItemInfo, start dateonly.Date, evts []events.Event) ItemLedger {
	running := info.Opening

	rows := make([]Row, 0, len(evts)+1)
	rows = append(rows, Row{
		ItemLabel: info.Label,
		EventDate: start,
		Type:      RowOpeningSeed,
		Qty:       running,
		Balance:   running,
		Note:      openingSeedNote,
	})

	for _, ev := range evts {
		running = running.Add(ev.Delta())

		note := ""
		if ev.Note != nil {
			note = *ev.Note
		}
		createdAt := ev.CreatedAt
		rows = append(rows, Row{
			ItemLabel: info.Label,
			EventDate: ev.EventDate,
			Type:      RowType(ev.Kind),
			Qty:       ev.Qty,
			Balance:   running,
			Note:      note,
			Actor:     ev.ActorName,
			CreatedAt: &createdAt,
		})
	}

	return ItemLedger{Item: info, Rows: rows}
}

func infoFromReport(row reports.Row) *ItemInfo {
	info := &ItemInfo{
		ItemID:       row.ItemID,
		DivisionName: row.DivisionName,
		GroupName:    row.GroupName,
		ItemName:     row.ItemName,
		ExpiryDate:   row.ExpiryDate,
		Unit:         row.Unit,
		Opening:      row.Opening,
	}
	info.Label = buildLabel(info)
	return info
}

func infoFromEvent(ev events.Event) *ItemInfo {
	info := &ItemInfo{
		ItemID:       ev.ItemID,
		DivisionName: ev.DivisionName,
		GroupName:    ev.GroupName,
		ItemName:     ev.ItemName,
		ExpiryDate:   ev.ExpiryDate,
		Unit:         ev.Unit,
	}
	info.Label = buildLabel(info)
	return info
}

func buildLabel(info *ItemInfo) string {
	expiry := "-"
	if info.ExpiryDate != nil && !info.ExpiryDate.IsZero() {
		expiry = info.ExpiryDate.String()
	}
	return info.GroupName + " - " + info.ItemName + " - " + expiry
}

// orderInfos sorts items the same way the reconstruction engine orders
// its rows, so grouped and flat presentations line up with reports.
func orderInfos(infos map[id.ID]*ItemInfo) []*ItemInfo {
	ordered := make([]*ItemInfo, 0, len(infos))
	for _, info := range infos {
		ordered = append(ordered, info)
	}
	sort.Slice(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		if a.DivisionName != b.DivisionName {
			return a.DivisionName < b.DivisionName
		}
		if a.GroupName != b.GroupName {
			return a.GroupName < b.GroupName
		}
		if a.ItemName != b.ItemName {
			return a.ItemName < b.ItemName
		}
		return expiryKey(a.ExpiryDate) < expiryKey(b.ExpiryDate)
	})
	return ordered
}

func expiryKey(d *dateonly.Date) string {
	if d == nil || d.IsZero() {
		return ""
	}
	return d.String()
}
