package context

import (
	"context"

	"github.com/recipebox/recipebox-server/internal/model"
)

type contextKey int

// identityKey is the context key under which the verified identity is stored.
const identityKey contextKey = iota

// Manager stores and retrieves the verified identity on a request context.
type Manager struct{}

// NewManager creates a new context manager instance.
func NewManager() *Manager {
	return &Manager{}
}

// SetIdentityToContext returns a child context carrying the identity.
func (m *Manager) SetIdentityToContext(ctx context.Context, identity model.AuthContext) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// GetIdentityFromContext retrieves the identity set by SetIdentityToContext.
// The boolean reports whether an identity was present.
func (m *Manager) GetIdentityFromContext(ctx context.Context) (model.AuthContext, bool) {
	identity, ok := ctx.Value(identityKey).(model.AuthContext)
	return identity, ok
}
