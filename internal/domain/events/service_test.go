package events

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventaris/internal/core/apperror"
	"inventaris/internal/core/dateonly"
	"inventaris/internal/core/id"
	"inventaris/internal/core/types"
	"inventaris/internal/domain/scope"
)

type fakeRepo struct {
	opening      *OpeningBalance
	itemDivision id.ID

	deletedOpening  id.ID
	createdTxn      *Transaction
	createdAdj      *Adjustment
	gotItemDivision id.ID
}

func (f *fakeRepo) CreateOpening(ctx context.Context, o *OpeningBalance) error { return nil }

func (f *fakeRepo) GetOpening(ctx context.Context, companyID, openingID id.ID) (*OpeningBalance, error) {
	if f.opening == nil || f.opening.ID != openingID {
		return nil, apperror.NewNotFound("opening balance", openingID.String())
	}
	return f.opening, nil
}

func (f *fakeRepo) UpdateOpening(ctx context.Context, o *OpeningBalance) error { return nil }

func (f *fakeRepo) DeleteOpening(ctx context.Context, companyID, openingID id.ID) error {
	f.deletedOpening = openingID
	return nil
}

func (f *fakeRepo) ListOpenings(ctx context.Context, companyID id.ID, sc scope.Scope) ([]OpeningBalance, error) {
	return nil, nil
}

func (f *fakeRepo) CreateTransaction(ctx context.Context, t *Transaction) error {
	f.createdTxn = t
	return nil
}

func (f *fakeRepo) ListTransactions(ctx context.Context, companyID id.ID, txnType TxnType, sc scope.Scope) ([]Transaction, error) {
	return nil, nil
}

func (f *fakeRepo) CreateAdjustment(ctx context.Context, a *Adjustment) error {
	f.createdAdj = a
	return nil
}

func (f *fakeRepo) ListAdjustments(ctx context.Context, companyID id.ID, sc scope.Scope) ([]Adjustment, error) {
	return nil, nil
}

func (f *fakeRepo) ListMerged(ctx context.Context, companyID id.ID, filter MergedFilter) ([]Event, error) {
	return nil, nil
}

func (f *fakeRepo) ItemDivision(ctx context.Context, companyID, itemID id.ID) (id.ID, error) {
	f.gotItemDivision = itemID
	return f.itemDivision, nil
}

func dec(s string) types.Quantity {
	return types.MustDecimal(s)
}

func testOpening(companyID id.ID) *OpeningBalance {
	return &OpeningBalance{
		ID:          id.New(),
		CompanyID:   companyID,
		ItemID:      id.New(),
		Qty:         dec("100"),
		OpeningDate: dateonly.MustParse("2026-01-01"),
	}
}

func TestDeleteOpening_ScopeDenied(t *testing.T) {
	companyID := id.New()
	o := testOpening(companyID)
	repo := &fakeRepo{opening: o, itemDivision: id.New()}
	svc := NewService(repo)

	// Caller's allow-list does not cover the item's division.
	sc := scope.Subset([]id.ID{id.New()})
	err := svc.DeleteOpening(context.Background(), sc, companyID, o.ID)
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeDivisionDenied, appErr.Code)
	assert.True(t, id.IsNil(repo.deletedOpening))
	assert.Equal(t, o.ItemID, repo.gotItemDivision)
}

func TestDeleteOpening_InScope(t *testing.T) {
	companyID := id.New()
	divisionID := id.New()
	o := testOpening(companyID)
	repo := &fakeRepo{opening: o, itemDivision: divisionID}
	svc := NewService(repo)

	err := svc.DeleteOpening(context.Background(), scope.Subset([]id.ID{divisionID}), companyID, o.ID)
	require.NoError(t, err)
	assert.Equal(t, o.ID, repo.deletedOpening)
}

func TestDeleteOpening_NotFound(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)

	err := svc.DeleteOpening(context.Background(), scope.All(), id.New(), id.New())
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
	assert.True(t, id.IsNil(repo.deletedOpening))
}

func TestAddTransaction_ScopeDenied(t *testing.T) {
	companyID := id.New()
	repo := &fakeRepo{itemDivision: id.New()}
	svc := NewService(repo)

	txn := &Transaction{
		ID:        id.New(),
		CompanyID: companyID,
		ItemID:    id.New(),
		Type:      TxnIn,
		Qty:       dec("5"),
		TxnDate:   dateonly.MustParse("2026-01-10"),
	}
	err := svc.AddTransaction(context.Background(), scope.None(), txn)
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeDivisionDenied, appErr.Code)
	assert.Nil(t, repo.createdTxn)
}

func TestAddTransaction_RejectsPricedOut(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)

	price := dec("3000")
	txn := &Transaction{
		ID:           id.New(),
		CompanyID:    id.New(),
		ItemID:       id.New(),
		Type:         TxnOut,
		Qty:          dec("5"),
		PricePerUnit: &price,
		TxnDate:      dateonly.MustParse("2026-01-10"),
	}
	err := svc.AddTransaction(context.Background(), scope.All(), txn)
	require.Error(t, err)
	assert.Nil(t, repo.createdTxn)
}
