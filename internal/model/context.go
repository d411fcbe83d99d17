package model

import "context"

// ContextManager stores and retrieves the verified identity on a request context.
type ContextManager interface {
	SetIdentityToContext(ctx context.Context, identity AuthContext) context.Context
	GetIdentityFromContext(ctx context.Context) (AuthContext, bool)
}
