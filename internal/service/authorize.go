package service

import (
	"github.com/google/uuid"

	"github.com/recipebox/recipebox-server/internal/model"
)

// CanMutate reports whether the identity may mutate the recipe.
// Admins may mutate anything; everyone else only their own recipes.
// A recipe without an author is system-owned and off-limits.
func CanMutate(identity *model.AuthContext, recipe model.Recipe) bool {
	if identity == nil {
		return false
	}
	if identity.Role == model.RoleAdmin {
		return true
	}
	if recipe.AuthorID == uuid.Nil {
		return false
	}
	return recipe.AuthorID == identity.ID
}
