package postgres

import (
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"

	"inventaris/internal/domain/scope"
)

// Builder returns a squirrel builder with PostgreSQL placeholder format.
func Builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// ScopePredicate renders a division scope into a parameterized squirrel
// predicate against the given division-id column.
//
// All returns nil (no predicate), None returns a predicate that matches
// nothing, Subset returns a parameterized IN list. The raw IDs never
// reach SQL text.
func ScopePredicate(column string, sc scope.Scope) squirrel.Sqlizer {
	switch {
	case sc.IsAll():
		return nil
	case sc.IsNone():
		return squirrel.Expr("FALSE")
	default:
		return squirrel.Eq{column: sc.IDs()}
	}
}

// ApplyScope adds the scope predicate to a select builder, if any.
func ApplyScope(q squirrel.SelectBuilder, column string, sc scope.Scope) squirrel.SelectBuilder {
	if pred := ScopePredicate(column, sc); pred != nil {
		return q.Where(pred)
	}
	return q
}

// ScopeFragment renders the scope for hand-written SQL: an " AND ..."
// fragment with numbered placeholders starting at argIndex, plus the
// args to append. All produces an empty fragment, None a fragment that
// matches nothing.
func ScopeFragment(column string, sc scope.Scope, argIndex int) (string, []any) {
	switch {
	case sc.IsAll():
		return "", nil
	case sc.IsNone():
		return " AND FALSE", nil
	default:
		ids := sc.IDs()
		placeholders := make([]string, len(ids))
		args := make([]any, len(ids))
		for i, divisionID := range ids {
			placeholders[i] = fmt.Sprintf("$%d", argIndex+i)
			args[i] = divisionID
		}
		return fmt.Sprintf(" AND %s IN (%s)", column, strings.Join(placeholders, ",")), args
	}
}
