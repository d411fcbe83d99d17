package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// RecipeStore defines persistence operations for recipes.
type RecipeStore interface {
	Create(ctx context.Context, recipe Recipe) (Recipe, error)
	GetByID(ctx context.Context, id uuid.UUID) (Recipe, error)
	List(ctx context.Context, search string) ([]Recipe, error)
	CountByAuthor(ctx context.Context, authorID uuid.UUID) (int, error)
	Update(ctx context.Context, recipe Recipe) (Recipe, error)
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

// Recipe represents a stored recipe entity.
// AuthorID references the user who created it; a zero AuthorID means the
// recipe is system-owned and no regular user may mutate it.
type Recipe struct {
	ID          uuid.UUID
	AuthorID    uuid.UUID
	Title       string
	Description string
	Ingredients []string
	Steps       []string
	ImageKey    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time
}

// CreateRecipeParams contains parameters to create a recipe.
type CreateRecipeParams struct {
	Title       string
	Description string
	Ingredients []string
	Steps       []string
}

// UpdateRecipeParams contains parameters to update a recipe.
type UpdateRecipeParams struct {
	Title       string
	Description string
	Ingredients []string
	Steps       []string
}
