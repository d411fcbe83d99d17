package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/recipebox/recipebox-server/internal/model"
)

var _ model.RecipeStore = (*RecipeRepository)(nil)

type RecipeRepository struct {
	db *Connection
}

func NewRecipeRepository(db *Connection) *RecipeRepository {
	return &RecipeRepository{
		db: db,
	}
}

const recipeColumns = `id, author_id, title, description, ingredients, steps, image_key, created_at, updated_at, deleted_at`

func scanRecipe(row pgx.Row) (model.Recipe, error) {
	var recipe model.Recipe
	err := row.Scan(
		&recipe.ID, &recipe.AuthorID, &recipe.Title, &recipe.Description,
		&recipe.Ingredients, &recipe.Steps, &recipe.ImageKey,
		&recipe.CreatedAt, &recipe.UpdatedAt, &recipe.DeletedAt,
	)
	return recipe, err
}

func (r *RecipeRepository) Create(ctx context.Context, recipe model.Recipe) (model.Recipe, error) {
	query := `INSERT INTO recipes (id, author_id, title, description, ingredients, steps, image_key, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			  RETURNING ` + recipeColumns

	saved, err := scanRecipe(r.db.QueryRow(ctx, query,
		recipe.ID, recipe.AuthorID, recipe.Title, recipe.Description,
		recipe.Ingredients, recipe.Steps, recipe.ImageKey,
		recipe.CreatedAt, recipe.UpdatedAt,
	))
	if err != nil {
		return model.Recipe{}, fmt.Errorf("failed to create recipe: %w", err)
	}

	return saved, nil
}

func (r *RecipeRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Recipe, error) {
	query := `SELECT ` + recipeColumns + ` FROM recipes WHERE id = $1 AND deleted_at IS NULL`

	recipe, err := scanRecipe(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Recipe{}, model.ErrNotFound
		}
		return model.Recipe{}, fmt.Errorf("failed to get recipe by id: %w", err)
	}

	return recipe, nil
}

func (r *RecipeRepository) List(ctx context.Context, search string) ([]model.Recipe, error) {
	query := `SELECT ` + recipeColumns + `
			  FROM recipes
			  WHERE deleted_at IS NULL AND ($1 = '' OR title ILIKE '%' || $1 || '%')
			  ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, search)
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	defer rows.Close()

	recipes := []model.Recipe{}
	for rows.Next() {
		recipe, err := scanRecipe(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan recipe: %w", err)
		}
		recipes = append(recipes, recipe)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate recipes: %w", err)
	}

	return recipes, nil
}

func (r *RecipeRepository) CountByAuthor(ctx context.Context, authorID uuid.UUID) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM recipes WHERE author_id = $1 AND deleted_at IS NULL`

	if err := r.db.QueryRow(ctx, query, authorID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count recipes by author: %w", err)
	}

	return count, nil
}

func (r *RecipeRepository) Update(ctx context.Context, recipe model.Recipe) (model.Recipe, error) {
	query := `UPDATE recipes
			  SET title = $2, description = $3, ingredients = $4, steps = $5, image_key = $6, updated_at = $7
			  WHERE id = $1 AND deleted_at IS NULL
			  RETURNING ` + recipeColumns

	saved, err := scanRecipe(r.db.QueryRow(ctx, query,
		recipe.ID, recipe.Title, recipe.Description, recipe.Ingredients,
		recipe.Steps, recipe.ImageKey, recipe.UpdatedAt,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Recipe{}, model.ErrNotFound
		}
		return model.Recipe{}, fmt.Errorf("failed to update recipe: %w", err)
	}

	return saved, nil
}

func (r *RecipeRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE recipes SET deleted_at = $2, updated_at = $2 WHERE id = $1 AND deleted_at IS NULL`

	tag, err := r.db.Exec(ctx, query, id, time.Now())
	if err != nil {
		return fmt.Errorf("failed to soft delete recipe: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}

	return nil
}
