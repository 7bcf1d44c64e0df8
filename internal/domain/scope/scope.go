// Package scope models division visibility for a caller.
//
// A scope has three distinct states, and the distinction is load-bearing:
//
//   - All: the caller (a company owner) sees every division.
//   - None: the caller is a restricted admin with an empty allow-list.
//     This is a valid state that must filter out every row, not an error
//     and not "no filter".
//   - Subset: an explicit division allow-list.
//
// Queries never receive the raw list; they receive a Scope value and
// render it into a parameterized predicate.
package scope

import (
	"context"

	appctx "inventaris/internal/core/context"
	"inventaris/internal/core/id"
)

// Kind discriminates the three scope states.
type Kind int

const (
	// KindAll means no division filtering.
	KindAll Kind = iota
	// KindNone matches no divisions at all.
	KindNone
	// KindSubset matches only the listed divisions.
	KindSubset
)

// Scope is an immutable division visibility value.
type Scope struct {
	kind Kind
	ids  []id.ID
}

// All returns the unrestricted scope.
func All() Scope {
	return Scope{kind: KindAll}
}

// None returns the scope that matches nothing.
func None() Scope {
	return Scope{kind: KindNone}
}

// Subset returns a scope restricted to the given division IDs.
// An empty or nil list collapses to None.
func Subset(ids []id.ID) Scope {
	if len(ids) == 0 {
		return None()
	}
	cp := make([]id.ID, len(ids))
	copy(cp, ids)
	return Scope{kind: KindSubset, ids: cp}
}

// Kind returns the scope state.
func (s Scope) Kind() Kind { return s.kind }

// IsAll reports whether the scope is unrestricted.
func (s Scope) IsAll() bool { return s.kind == KindAll }

// IsNone reports whether the scope matches nothing.
func (s Scope) IsNone() bool { return s.kind == KindNone }

// IDs returns the allow-list for Subset scopes, nil otherwise.
func (s Scope) IDs() []id.ID {
	if s.kind != KindSubset {
		return nil
	}
	cp := make([]id.ID, len(s.ids))
	copy(cp, s.ids)
	return cp
}

// Contains reports whether a division is visible under this scope.
func (s Scope) Contains(divisionID id.ID) bool {
	switch s.kind {
	case KindAll:
		return true
	case KindNone:
		return false
	default:
		for _, d := range s.ids {
			if d == divisionID {
				return true
			}
		}
		return false
	}
}

// AccessRepository provides the stored division allow-list per user.
type AccessRepository interface {
	// DivisionIDs returns the divisions explicitly granted to a user.
	DivisionIDs(ctx context.Context, companyID, userID id.ID) ([]id.ID, error)
}

// Resolver turns a caller's identity into a Scope.
type Resolver struct {
	repo AccessRepository
}

// NewResolver creates a scope resolver.
func NewResolver(repo AccessRepository) *Resolver {
	return &Resolver{repo: repo}
}

// Resolve determines the division scope for a user.
// Owners are unrestricted; everyone else gets their stored allow-list,
// which may legitimately be empty.
func (r *Resolver) Resolve(ctx context.Context, companyID, userID id.ID, role string) (Scope, error) {
	if role == appctx.RoleOwner {
		return All(), nil
	}
	ids, err := r.repo.DivisionIDs(ctx, companyID, userID)
	if err != nil {
		return None(), err
	}
	return Subset(ids), nil
}
