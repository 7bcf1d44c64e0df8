package rebuild

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventaris/internal/core/apperror"
	"inventaris/internal/core/dateonly"
	"inventaris/internal/core/id"
	"inventaris/internal/core/types"
	"inventaris/internal/domain/events"
	"inventaris/internal/domain/reports"
	"inventaris/internal/domain/scope"
)

type fakeLocker struct {
	err      error
	acquired bool
	released bool
}

func (f *fakeLocker) Acquire(ctx context.Context, companyID id.ID, ttl time.Duration) (func(), error) {
	if f.err != nil {
		return nil, f.err
	}
	f.acquired = true
	return func() { f.released = true }, nil
}

type fakeStore struct {
	openingsDeleted int64
	txnsDeleted     int64
	adjsDeleted     int64

	gotOpeningCutoff dateonly.Date
	gotTxnCutoff     dateonly.Date
	inserted         []events.OpeningBalance
}

func (f *fakeStore) DeleteOpeningsThrough(ctx context.Context, companyID id.ID, cutoff dateonly.Date) (int64, error) {
	f.gotOpeningCutoff = cutoff
	return f.openingsDeleted, nil
}

func (f *fakeStore) DeleteTransactionsBefore(ctx context.Context, companyID id.ID, cutoff dateonly.Date) (int64, error) {
	f.gotTxnCutoff = cutoff
	return f.txnsDeleted, nil
}

func (f *fakeStore) DeleteAdjustmentsBefore(ctx context.Context, companyID id.ID, cutoff dateonly.Date) (int64, error) {
	return f.adjsDeleted, nil
}

func (f *fakeStore) InsertOpenings(ctx context.Context, rows []events.OpeningBalance) error {
	f.inserted = rows
	return nil
}

type fakeEngine struct {
	rows     []reports.Row
	gotRange dateonly.Range
	gotScope scope.Scope
}

func (f *fakeEngine) ReconstructRange(ctx context.Context, companyID id.ID, r dateonly.Range, sc scope.Scope) ([]reports.Row, error) {
	f.gotRange = r
	f.gotScope = sc
	return f.rows, nil
}

type fakeTxManager struct {
	serializable bool
}

func (f *fakeTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (f *fakeTxManager) Serializable(ctx context.Context, fn func(ctx context.Context) error) error {
	f.serializable = true
	return fn(ctx)
}

func dec(s string) types.Quantity {
	return types.MustDecimal(s)
}

func TestRebuild_SeedsNonzeroItems(t *testing.T) {
	price := dec("12")
	itemA := id.New()
	itemB := id.New()
	engine := &fakeEngine{rows: []reports.Row{
		{ItemID: itemA, Opening: dec("115"), PricePerUnit: &price},
		{ItemID: itemB, Opening: dec("0")},
	}}
	store := &fakeStore{openingsDeleted: 2, txnsDeleted: 3, adjsDeleted: 1}
	locker := &fakeLocker{}
	txm := &fakeTxManager{}
	actorID := id.New()

	svc := NewService(engine, store, txm, locker)
	result, err := svc.Rebuild(context.Background(), id.New(), actorID, "2026-02-01")
	require.NoError(t, err)

	assert.True(t, txm.serializable)
	assert.True(t, locker.acquired)
	assert.True(t, locker.released)

	cutoff := dateonly.MustParse("2026-02-01")

	// Balances captured at the start of the cutoff day, across all
	// divisions regardless of who triggered the rebuild.
	assert.True(t, engine.gotRange.Start.Equal(cutoff))
	assert.True(t, engine.gotRange.End.Equal(cutoff))
	assert.True(t, engine.gotScope.IsAll())

	// Zero-balance items get no seed row.
	require.Len(t, store.inserted, 1)
	seeded := store.inserted[0]
	assert.Equal(t, itemA, seeded.ItemID)
	assert.True(t, seeded.Qty.Equal(dec("115")))
	require.NotNil(t, seeded.PricePerUnit)
	assert.True(t, seeded.PricePerUnit.Equal(price))
	require.NotNil(t, seeded.Note)
	assert.Equal(t, "Rebuild saldo awal", *seeded.Note)
	assert.True(t, seeded.OpeningDate.Equal(cutoff))
	assert.Equal(t, actorID, seeded.CreatedBy)

	assert.Equal(t, 1, result.ItemsSeeded)
	assert.Equal(t, int64(2), result.OpeningsDeleted)
	assert.Equal(t, int64(3), result.TransactionsDeleted)
	assert.Equal(t, int64(1), result.AdjustmentsDeleted)

	assert.True(t, store.gotOpeningCutoff.Equal(cutoff))
	assert.True(t, store.gotTxnCutoff.Equal(cutoff))
}

func TestRebuild_LockConflict(t *testing.T) {
	companyID := id.New()
	locker := &fakeLocker{err: apperror.NewRebuildConflict(companyID.String())}
	store := &fakeStore{}
	svc := NewService(&fakeEngine{}, store, &fakeTxManager{}, locker)

	_, err := svc.Rebuild(context.Background(), companyID, id.New(), "2026-02-01")
	require.Error(t, err)
	assert.True(t, apperror.IsRebuildConflict(err))

	// Nothing touched the store.
	assert.Nil(t, store.inserted)
	assert.True(t, store.gotOpeningCutoff.IsZero())
}

// memStore is an in-memory event store backing both the real balance
// engine and the rebuild store, so a cutover can be replayed end to
// end: reconstruct, rebuild, reconstruct again over the mutated data.
type memStore struct {
	seq      int64
	openings []events.OpeningBalance
	txns     []events.Transaction
	adjs     []events.Adjustment
}

func (m *memStore) nextSeq() int64 {
	m.seq++
	return m.seq
}

func (m *memStore) addOpening(itemID id.ID, day, qty, price string) {
	o := events.OpeningBalance{
		ID:          id.New(),
		Seq:         m.nextSeq(),
		ItemID:      itemID,
		Qty:         dec(qty),
		OpeningDate: dateonly.MustParse(day),
	}
	if price != "" {
		p := dec(price)
		o.PricePerUnit = &p
	}
	m.openings = append(m.openings, o)
}

func (m *memStore) addTxn(itemID id.ID, kind events.TxnType, day, qty string) {
	m.txns = append(m.txns, events.Transaction{
		ID:      id.New(),
		Seq:     m.nextSeq(),
		ItemID:  itemID,
		Type:    kind,
		Qty:     dec(qty),
		TxnDate: dateonly.MustParse(day),
	})
}

func (m *memStore) addAdj(itemID id.ID, day, delta string) {
	m.adjs = append(m.adjs, events.Adjustment{
		ID:       id.New(),
		Seq:      m.nextSeq(),
		ItemID:   itemID,
		QtyDelta: dec(delta),
		AdjDate:  dateonly.MustParse(day),
	})
}

func (m *memStore) FetchBalanceRows(ctx context.Context, companyID id.ID, r dateonly.Range, sc scope.Scope) ([]reports.RawRow, error) {
	rows := map[id.ID]*reports.RawRow{}
	var order []id.ID
	get := func(itemID id.ID) *reports.RawRow {
		if rr, ok := rows[itemID]; ok {
			return rr
		}
		rr := &reports.RawRow{ItemID: itemID}
		rows[itemID] = rr
		order = append(order, itemID)
		return rr
	}

	type priced struct {
		day   dateonly.Date
		seq   int64
		price types.Money
	}
	best := map[id.ID]priced{}
	consider := func(itemID id.ID, day dateonly.Date, seq int64, price *types.Money) {
		if price == nil || day.After(r.End) {
			return
		}
		b, ok := best[itemID]
		if !ok || day.After(b.day) || (day.Equal(b.day) && seq > b.seq) {
			best[itemID] = priced{day: day, seq: seq, price: *price}
		}
	}

	for _, o := range m.openings {
		rr := get(o.ItemID)
		switch {
		case !o.OpeningDate.After(r.Start):
			rr.OpeningQty = rr.OpeningQty.Add(o.Qty)
		case !o.OpeningDate.After(r.End):
			rr.OpeningWindow = rr.OpeningWindow.Add(o.Qty)
		}
		consider(o.ItemID, o.OpeningDate, o.Seq, o.PricePerUnit)
	}
	for _, t := range m.txns {
		rr := get(t.ItemID)
		in := t.Type == events.TxnIn
		switch {
		case t.TxnDate.Before(r.Start):
			if in {
				rr.InBefore = rr.InBefore.Add(t.Qty)
			} else {
				rr.OutBefore = rr.OutBefore.Add(t.Qty)
			}
		case !t.TxnDate.After(r.End):
			if in {
				rr.InQty = rr.InQty.Add(t.Qty)
			} else {
				rr.OutQty = rr.OutQty.Add(t.Qty)
			}
		}
		if in {
			consider(t.ItemID, t.TxnDate, t.Seq, t.PricePerUnit)
		}
	}
	for _, a := range m.adjs {
		rr := get(a.ItemID)
		switch {
		case a.AdjDate.Before(r.Start):
			rr.AdjBefore = rr.AdjBefore.Add(a.QtyDelta)
		case !a.AdjDate.After(r.End):
			rr.AdjQty = rr.AdjQty.Add(a.QtyDelta)
		}
	}

	out := make([]reports.RawRow, 0, len(order))
	for _, itemID := range order {
		rr := rows[itemID]
		if b, ok := best[itemID]; ok {
			p := b.price
			rr.PricePerUnit = &p
		}
		out = append(out, *rr)
	}
	return out, nil
}

func (m *memStore) DeleteOpeningsThrough(ctx context.Context, companyID id.ID, cutoff dateonly.Date) (int64, error) {
	var kept []events.OpeningBalance
	var n int64
	for _, o := range m.openings {
		if o.OpeningDate.After(cutoff) {
			kept = append(kept, o)
		} else {
			n++
		}
	}
	m.openings = kept
	return n, nil
}

func (m *memStore) DeleteTransactionsBefore(ctx context.Context, companyID id.ID, cutoff dateonly.Date) (int64, error) {
	var kept []events.Transaction
	var n int64
	for _, t := range m.txns {
		if t.TxnDate.Before(cutoff) {
			n++
		} else {
			kept = append(kept, t)
		}
	}
	m.txns = kept
	return n, nil
}

func (m *memStore) DeleteAdjustmentsBefore(ctx context.Context, companyID id.ID, cutoff dateonly.Date) (int64, error) {
	var kept []events.Adjustment
	var n int64
	for _, a := range m.adjs {
		if a.AdjDate.Before(cutoff) {
			n++
		} else {
			kept = append(kept, a)
		}
	}
	m.adjs = kept
	return n, nil
}

func (m *memStore) InsertOpenings(ctx context.Context, rows []events.OpeningBalance) error {
	for _, o := range rows {
		o.Seq = m.nextSeq()
		m.openings = append(m.openings, o)
	}
	return nil
}

func TestRebuild_ReplayPreservesReconstruction(t *testing.T) {
	itemID := id.New()
	store := &memStore{}
	store.addOpening(itemID, "2024-01-01", "100", "12")
	store.addTxn(itemID, events.TxnIn, "2024-01-10", "50")
	store.addTxn(itemID, events.TxnOut, "2024-01-15", "30")
	store.addAdj(itemID, "2024-01-20", "-5")

	engine := reports.NewService(store)
	svc := NewService(engine, store, &fakeTxManager{}, &fakeLocker{})
	ctx := context.Background()
	companyID := id.New()

	before, err := engine.Reconstruct(ctx, companyID, "2024-01-01", "2024-01-31", scope.All())
	require.NoError(t, err)
	require.Len(t, before, 1)
	require.True(t, before[0].Closing.Equal(dec("115")), "pre-cutover closing = %s", before[0].Closing)

	// Cutover in the middle of the window, on the OUT transaction's day.
	result, err := svc.Rebuild(ctx, companyID, id.New(), "2024-01-15")
	require.NoError(t, err)
	assert.Equal(t, 1, result.ItemsSeeded)
	assert.Equal(t, int64(1), result.OpeningsDeleted)
	assert.Equal(t, int64(1), result.TransactionsDeleted)
	assert.Equal(t, int64(0), result.AdjustmentsDeleted)

	// The cutoff-day OUT survives; the pre-cutoff IN is collapsed into
	// the new opening row (100 + 50 at the start of the cutoff day).
	require.Len(t, store.txns, 1)
	assert.Equal(t, events.TxnOut, store.txns[0].Type)
	require.Len(t, store.openings, 1)
	assert.True(t, store.openings[0].Qty.Equal(dec("150")))
	assert.True(t, store.openings[0].OpeningDate.Equal(dateonly.MustParse("2024-01-15")))

	// Reconstructing the original window again gives identical balances:
	// the cutoff-day movement is neither lost nor double-counted.
	after, err := engine.Reconstruct(ctx, companyID, "2024-01-01", "2024-01-31", scope.All())
	require.NoError(t, err)
	require.Len(t, after, 1)
	assert.True(t, after[0].Closing.Equal(dec("115")), "post-cutover closing = %s", after[0].Closing)
	require.NotNil(t, after[0].StockValue)
	assert.True(t, after[0].StockValue.Equal(dec("1380")))

	// Windows starting after the cutoff are unchanged as well.
	tail, err := engine.Reconstruct(ctx, companyID, "2024-01-16", "2024-01-31", scope.All())
	require.NoError(t, err)
	require.Len(t, tail, 1)
	assert.True(t, tail[0].Opening.Equal(dec("120")), "tail opening = %s", tail[0].Opening)
	assert.True(t, tail[0].Closing.Equal(dec("115")), "tail closing = %s", tail[0].Closing)
}

func TestRebuild_BadCutoff(t *testing.T) {
	locker := &fakeLocker{}
	svc := NewService(&fakeEngine{}, &fakeStore{}, &fakeTxManager{}, locker)

	_, err := svc.Rebuild(context.Background(), id.New(), id.New(), "01/02/2026")
	require.Error(t, err)
	assert.False(t, locker.acquired)
}
