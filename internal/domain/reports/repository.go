package reports

import (
	"context"

	"inventaris/internal/core/dateonly"
	"inventaris/internal/core/id"
	"inventaris/internal/domain/scope"
)

// Repository fetches the raw aggregates the engine computes balances from.
type Repository interface {
	// FetchBalanceRows returns one RawRow per item visible under the
	// scope, enumerated from the items relation (zero-activity items
	// included), ordered by (division name, group name, item name,
	// expiry date) ascending. That ordering is a caller-visible
	// contract; reports and exports group on it.
	FetchBalanceRows(ctx context.Context, companyID id.ID, r dateonly.Range, sc scope.Scope) ([]RawRow, error)
}
