package services

import (
	"context"

	"github.com/dmitrijs2005/docqa/internal/common"
)

type identityChecker interface {
	Exists(ctx context.Context, identity string) (bool, error)
}

// SessionGate admits any identity that has an account. It does not check
// a secret or any login state.
type SessionGate struct {
	store identityChecker
}

func NewSessionGate(store identityChecker) *SessionGate {
	return &SessionGate{store: store}
}

// RequireAuthenticated returns common.ErrorUnauthorized for unknown
// identities.
func (g *SessionGate) RequireAuthenticated(ctx context.Context, identity string) error {
	ok, err := g.store.Exists(ctx, identity)
	if err != nil {
		return err
	}
	if !ok {
		return common.ErrorUnauthorized
	}
	return nil
}
