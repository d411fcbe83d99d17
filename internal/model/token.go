package model

import "github.com/google/uuid"

// AuthContext is the verified identity attached to a request after the
// bearer token has been validated. It mirrors the claims embedded at
// issuance and is never persisted beyond the request lifetime.
type AuthContext struct {
	ID   uuid.UUID
	Name string
	Role Role
}

// TokenManager signs and verifies bearer tokens carrying identity claims.
type TokenManager interface {
	Generate(identity AuthContext) (string, error)
	Parse(token string) (AuthContext, error)
}
