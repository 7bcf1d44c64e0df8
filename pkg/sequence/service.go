// Package sequence provides per-company sequential number generation.
//
// Used for SKU auto-assignment: when an item arrives without a SKU it
// gets the next number in the company's counter, zero-padded. The
// counter is advanced with a single atomic upsert, so concurrent
// inserts never observe the same number (the read-max-then-insert
// alternative is racy).
package sequence

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// Querier is the minimal database surface the generator needs.
// Satisfied by *pgxpool.Pool and pgx.Tx.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Generator hands out the next number for a named counter.
type Generator interface {
	// Next advances the counter and returns its new value.
	Next(ctx context.Context, companyID, name string) (int64, error)
}

// Service implements Generator on top of a counters table.
type Service struct {
	q Querier
}

// NewService creates a counter-backed generator.
func NewService(q Querier) *Service {
	return &Service{q: q}
}

// Next advances the (company, name) counter atomically and returns the
// new value. The first call for a counter returns 1.
func (s *Service) Next(ctx context.Context, companyID, name string) (int64, error) {
	const sql = `
		INSERT INTO counters (company_id, name, value)
		VALUES ($1, $2, 1)
		ON CONFLICT (company_id, name)
		DO UPDATE SET value = counters.value + 1
		RETURNING value
	`

	var value int64
	if err := s.q.QueryRow(ctx, sql, companyID, name).Scan(&value); err != nil {
		return 0, fmt.Errorf("advance counter %s: %w", name, err)
	}
	return value, nil
}

// Padded formats a counter value with leading zeros.
// Values wider than the pad keep their natural width.
func Padded(value int64, width int) string {
	return fmt.Sprintf("%0*d", width, value)
}
