package service

import (
	"strings"

	"github.com/recipebox/recipebox-server/internal/model"
)

// NormalizeEmail canonicalizes an email for storage and comparison.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// RoleResolver maps emails to roles against the configured admin allow-list.
// Built once at startup; resolution is a pure membership test.
type RoleResolver struct {
	admins map[string]struct{}
}

// NewRoleResolver creates a resolver from the configured admin emails.
// Entries are trimmed and lowercased; empty entries are ignored.
func NewRoleResolver(adminEmails []string) *RoleResolver {
	admins := make(map[string]struct{}, len(adminEmails))
	for _, email := range adminEmails {
		email = NormalizeEmail(email)
		if email != "" {
			admins[email] = struct{}{}
		}
	}
	return &RoleResolver{admins: admins}
}

// Resolve returns the role for the given email.
func (r *RoleResolver) Resolve(email string) model.Role {
	if _, ok := r.admins[NormalizeEmail(email)]; ok {
		return model.RoleAdmin
	}
	return model.RoleUser
}
