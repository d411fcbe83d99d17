package handler

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/recipebox/recipebox-server/internal/logger"
	"github.com/recipebox/recipebox-server/internal/model"
)

// RecipeService defines the recipe operations exposed over HTTP.
type RecipeService interface {
	CreateRecipe(ctx context.Context, identity model.AuthContext, params model.CreateRecipeParams) (model.Recipe, error)
	GetRecipe(ctx context.Context, recipeID uuid.UUID) (model.Recipe, error)
	ListRecipes(ctx context.Context, search string) ([]model.Recipe, error)
	UpdateRecipe(ctx context.Context, identity model.AuthContext, recipeID uuid.UUID, params model.UpdateRecipeParams) (model.Recipe, error)
	DeleteRecipe(ctx context.Context, identity model.AuthContext, recipeID uuid.UUID) error
	AttachImage(ctx context.Context, identity model.AuthContext, recipeID uuid.UUID, reader io.Reader, size int64, contentType string) (model.Recipe, error)
	GetImage(ctx context.Context, recipeID uuid.UUID) (io.ReadCloser, string, error)
}

// Recipe handles recipe CRUD and image requests.
type Recipe struct {
	service        RecipeService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewRecipe creates a new Recipe handler.
func NewRecipe(service RecipeService, contextManager model.ContextManager, logger *logger.Logger) *Recipe {
	return &Recipe{service: service, contextManager: contextManager, logger: logger}
}

type recipeRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Ingredients []string `json:"ingredients"`
	Steps       []string `json:"steps"`
}

type recipeResponse struct {
	ID          uuid.UUID `json:"id"`
	AuthorID    uuid.UUID `json:"authorId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Ingredients []string  `json:"ingredients"`
	Steps       []string  `json:"steps"`
	HasImage    bool      `json:"hasImage"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func toRecipeResponse(recipe model.Recipe) recipeResponse {
	ingredients := recipe.Ingredients
	if ingredients == nil {
		ingredients = []string{}
	}
	steps := recipe.Steps
	if steps == nil {
		steps = []string{}
	}
	return recipeResponse{
		ID:          recipe.ID,
		AuthorID:    recipe.AuthorID,
		Title:       recipe.Title,
		Description: recipe.Description,
		Ingredients: ingredients,
		Steps:       steps,
		HasImage:    recipe.ImageKey != "",
		CreatedAt:   recipe.CreatedAt,
		UpdatedAt:   recipe.UpdatedAt,
	}
}

func (h *Recipe) identity(c echo.Context) (model.AuthContext, bool) {
	return h.contextManager.GetIdentityFromContext(c.Request().Context())
}

func recipeID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, model.NewValidationError("id", "must be a valid uuid")
	}
	return id, nil
}

// Create creates a recipe authored by the caller.
func (h *Recipe) Create(c echo.Context) error {
	identity, ok := h.identity(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
	}

	var req recipeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}

	recipe, err := h.service.CreateRecipe(c.Request().Context(), identity, model.CreateRecipeParams{
		Title:       req.Title,
		Description: req.Description,
		Ingredients: req.Ingredients,
		Steps:       req.Steps,
	})
	if err != nil {
		return handleError(c, h.logger, err)
	}

	return c.JSON(http.StatusCreated, toRecipeResponse(recipe))
}

// Get returns a single recipe. Reads are public.
func (h *Recipe) Get(c echo.Context) error {
	id, err := recipeID(c)
	if err != nil {
		return handleError(c, h.logger, err)
	}

	recipe, err := h.service.GetRecipe(c.Request().Context(), id)
	if err != nil {
		return handleError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, toRecipeResponse(recipe))
}

// List returns recipes, optionally filtered by the "search" query parameter.
func (h *Recipe) List(c echo.Context) error {
	recipes, err := h.service.ListRecipes(c.Request().Context(), c.QueryParam("search"))
	if err != nil {
		return handleError(c, h.logger, err)
	}

	out := make([]recipeResponse, 0, len(recipes))
	for _, recipe := range recipes {
		out = append(out, toRecipeResponse(recipe))
	}

	return c.JSON(http.StatusOK, out)
}

// Update replaces the mutable fields of a recipe.
func (h *Recipe) Update(c echo.Context) error {
	identity, ok := h.identity(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
	}

	id, err := recipeID(c)
	if err != nil {
		return handleError(c, h.logger, err)
	}

	var req recipeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}

	recipe, err := h.service.UpdateRecipe(c.Request().Context(), identity, id, model.UpdateRecipeParams{
		Title:       req.Title,
		Description: req.Description,
		Ingredients: req.Ingredients,
		Steps:       req.Steps,
	})
	if err != nil {
		return handleError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, toRecipeResponse(recipe))
}

// Delete soft-deletes a recipe.
func (h *Recipe) Delete(c echo.Context) error {
	identity, ok := h.identity(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
	}

	id, err := recipeID(c)
	if err != nil {
		return handleError(c, h.logger, err)
	}

	if err := h.service.DeleteRecipe(c.Request().Context(), identity, id); err != nil {
		return handleError(c, h.logger, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// AttachImage uploads the "image" form file and attaches it to a recipe,
// replacing any previous image.
func (h *Recipe) AttachImage(c echo.Context) error {
	identity, ok := h.identity(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
	}

	id, err := recipeID(c)
	if err != nil {
		return handleError(c, h.logger, err)
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return handleError(c, h.logger, model.NewValidationError("image", "file is required"))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return handleError(c, h.logger, err)
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	recipe, err := h.service.AttachImage(c.Request().Context(), identity, id, file, fileHeader.Size, contentType)
	if err != nil {
		return handleError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, toRecipeResponse(recipe))
}

// GetImage streams the stored image for a recipe.
func (h *Recipe) GetImage(c echo.Context) error {
	id, err := recipeID(c)
	if err != nil {
		return handleError(c, h.logger, err)
	}

	reader, contentType, err := h.service.GetImage(c.Request().Context(), id)
	if err != nil {
		return handleError(c, h.logger, err)
	}
	defer reader.Close()

	return c.Stream(http.StatusOK, contentType, reader)
}
