// Package services holds the sharebox business logic: the user registry,
// the identity service and the file registry. Handlers call into these;
// they never talk to the stores directly.
package services

import (
	"fmt"

	"github.com/dmitrijs2005/sharebox/internal/common"
)

// Identity is who a request acts as, taken from its session.
type Identity struct {
	Email string
	Name  string
	Admin bool
}

// Scope selects which file records ListFiles returns.
type Scope string

const (
	ScopeOwn Scope = "own"
	ScopeAll Scope = "all"
)

// ParseScope accepts "own", "all" or "" (own).
func ParseScope(s string) (Scope, error) {
	switch Scope(s) {
	case "", ScopeOwn:
		return ScopeOwn, nil
	case ScopeAll:
		return ScopeAll, nil
	default:
		return "", fmt.Errorf("%w: unknown scope %q", common.ErrorValidation, s)
	}
}

func storeError(err error) error {
	return fmt.Errorf("%w: %v", common.ErrorStore, err)
}

func storageError(err error) error {
	return fmt.Errorf("%w: %v", common.ErrorStorage, err)
}
