package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/recipebox/recipebox-server/internal/logger"
	"github.com/recipebox/recipebox-server/internal/model"
)

// Recipe implements recipe CRUD and image attachment plumbing.
type Recipe struct {
	recipeStore model.RecipeStore
	userStore   model.UserStore
	storage     model.Storage
	logger      *logger.Logger
}

// NewRecipe creates a new Recipe service.
func NewRecipe(
	recipeStore model.RecipeStore,
	userStore model.UserStore,
	storage model.Storage,
	logger *logger.Logger,
) *Recipe {
	return &Recipe{
		recipeStore: recipeStore,
		userStore:   userStore,
		storage:     storage,
		logger:      logger,
	}
}

// CreateRecipe creates a recipe authored by the caller.
func (s *Recipe) CreateRecipe(ctx context.Context, identity model.AuthContext, params model.CreateRecipeParams) (model.Recipe, error) {
	if params.Title == "" {
		return model.Recipe{}, model.NewValidationError("title", "is required")
	}

	_, err := s.userStore.GetByID(ctx, identity.ID)
	if errors.Is(err, model.ErrNotFound) {
		return model.Recipe{}, model.ErrNotFound
	}
	if err != nil {
		return model.Recipe{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	now := time.Now()
	recipe := model.Recipe{
		ID:          uuid.New(),
		AuthorID:    identity.ID,
		Title:       params.Title,
		Description: params.Description,
		Ingredients: params.Ingredients,
		Steps:       params.Steps,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	recipe, err = s.recipeStore.Create(ctx, recipe)
	if err != nil {
		return model.Recipe{}, fmt.Errorf("failed to create recipe: %w", err)
	}

	s.logger.Info("Recipe service: recipe created",
		"recipe_id", recipe.ID,
		"author_id", recipe.AuthorID)

	return recipe, nil
}

// GetRecipe returns a recipe by id. Reads are public.
func (s *Recipe) GetRecipe(ctx context.Context, recipeID uuid.UUID) (model.Recipe, error) {
	recipe, err := s.recipeStore.GetByID(ctx, recipeID)
	if errors.Is(err, model.ErrNotFound) {
		return model.Recipe{}, model.ErrNotFound
	}
	if err != nil {
		return model.Recipe{}, fmt.Errorf("failed to get recipe by id: %w", err)
	}

	return recipe, nil
}

// ListRecipes returns recipes, optionally filtered by a case-insensitive
// title substring.
func (s *Recipe) ListRecipes(ctx context.Context, search string) ([]model.Recipe, error) {
	recipes, err := s.recipeStore.List(ctx, search)
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}

	return recipes, nil
}

// UpdateRecipe replaces the mutable recipe fields. Only the author or an
// admin may update; anyone else fails with ErrForbidden.
func (s *Recipe) UpdateRecipe(ctx context.Context, identity model.AuthContext, recipeID uuid.UUID, params model.UpdateRecipeParams) (model.Recipe, error) {
	if params.Title == "" {
		return model.Recipe{}, model.NewValidationError("title", "is required")
	}

	recipe, err := s.recipeStore.GetByID(ctx, recipeID)
	if errors.Is(err, model.ErrNotFound) {
		return model.Recipe{}, model.ErrNotFound
	}
	if err != nil {
		return model.Recipe{}, fmt.Errorf("failed to get recipe by id: %w", err)
	}

	if !CanMutate(&identity, recipe) {
		return model.Recipe{}, model.ErrForbidden
	}

	recipe.Title = params.Title
	recipe.Description = params.Description
	recipe.Ingredients = params.Ingredients
	recipe.Steps = params.Steps
	recipe.UpdatedAt = time.Now()

	recipe, err = s.recipeStore.Update(ctx, recipe)
	if err != nil {
		return model.Recipe{}, fmt.Errorf("failed to update recipe: %w", err)
	}

	return recipe, nil
}

// DeleteRecipe soft-deletes a recipe and removes its stored image, if any.
// Image removal is best-effort: a storage failure is logged, not surfaced.
func (s *Recipe) DeleteRecipe(ctx context.Context, identity model.AuthContext, recipeID uuid.UUID) error {
	recipe, err := s.recipeStore.GetByID(ctx, recipeID)
	if errors.Is(err, model.ErrNotFound) {
		return model.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to get recipe by id: %w", err)
	}

	if !CanMutate(&identity, recipe) {
		return model.ErrForbidden
	}

	if recipe.ImageKey != "" {
		if err := s.storage.Delete(ctx, recipe.ImageKey); err != nil {
			s.logger.Error("Recipe service: failed to delete image from storage",
				"recipe_id", recipe.ID,
				"image_key", recipe.ImageKey,
				"error", err.Error())
		}
	}

	if err := s.recipeStore.SoftDelete(ctx, recipeID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.ErrNotFound
		}
		return fmt.Errorf("failed to soft delete recipe: %w", err)
	}

	s.logger.Info("Recipe service: recipe deleted",
		"recipe_id", recipeID,
		"user_id", identity.ID)

	return nil
}

// AttachImage uploads a recipe image and records its storage key, replacing
// any previous image. Only the author or an admin may attach.
func (s *Recipe) AttachImage(ctx context.Context, identity model.AuthContext, recipeID uuid.UUID, reader io.Reader, size int64, contentType string) (model.Recipe, error) {
	recipe, err := s.recipeStore.GetByID(ctx, recipeID)
	if errors.Is(err, model.ErrNotFound) {
		return model.Recipe{}, model.ErrNotFound
	}
	if err != nil {
		return model.Recipe{}, fmt.Errorf("failed to get recipe by id: %w", err)
	}

	if !CanMutate(&identity, recipe) {
		return model.Recipe{}, model.ErrForbidden
	}

	key := generateImageKey(recipe.AuthorID, recipe.ID)
	if err := s.storage.Upload(ctx, key, reader, size, contentType); err != nil {
		return model.Recipe{}, fmt.Errorf("failed to upload image: %w", err)
	}

	previous := recipe.ImageKey
	recipe.ImageKey = key
	recipe.UpdatedAt = time.Now()

	recipe, err = s.recipeStore.Update(ctx, recipe)
	if err != nil {
		if delErr := s.storage.Delete(ctx, key); delErr != nil {
			s.logger.Error("Recipe service: failed to delete orphaned image",
				"image_key", key,
				"error", delErr.Error())
		}
		return model.Recipe{}, fmt.Errorf("failed to update recipe: %w", err)
	}

	if previous != "" {
		if err := s.storage.Delete(ctx, previous); err != nil {
			s.logger.Error("Recipe service: failed to delete replaced image",
				"image_key", previous,
				"error", err.Error())
		}
	}

	s.logger.Info("Recipe service: image attached",
		"recipe_id", recipe.ID,
		"image_key", key)

	return recipe, nil
}

// GetImage streams the stored image for a recipe. A recipe without an image
// fails with ErrNotFound.
func (s *Recipe) GetImage(ctx context.Context, recipeID uuid.UUID) (io.ReadCloser, string, error) {
	recipe, err := s.recipeStore.GetByID(ctx, recipeID)
	if errors.Is(err, model.ErrNotFound) {
		return nil, "", model.ErrNotFound
	}
	if err != nil {
		return nil, "", fmt.Errorf("failed to get recipe by id: %w", err)
	}

	if recipe.ImageKey == "" {
		return nil, "", model.ErrNotFound
	}

	reader, contentType, err := s.storage.Download(ctx, recipe.ImageKey)
	if err != nil {
		return nil, "", fmt.Errorf("failed to download image: %w", err)
	}

	return reader, contentType, nil
}

func generateImageKey(authorID, recipeID uuid.UUID) string {
	return fmt.Sprintf("user-%s/recipe-%s/image-%s", authorID, recipeID, uuid.New())
}
