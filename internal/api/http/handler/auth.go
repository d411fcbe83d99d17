package handler

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/recipebox/recipebox-server/internal/logger"
	"github.com/recipebox/recipebox-server/internal/model"
	"github.com/recipebox/recipebox-server/internal/service"
)

// AuthService defines the auth operations exposed over HTTP.
type AuthService interface {
	Register(ctx context.Context, params service.RegisterParams) (model.User, string, error)
	Login(ctx context.Context, params service.LoginParams) (model.User, string, error)
	GetIdentity(ctx context.Context, userID uuid.UUID) (model.User, int, error)
}

// Auth handles registration, login and identity requests.
type Auth struct {
	service        AuthService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuth creates a new Auth handler.
func NewAuth(service AuthService, contextManager model.ContextManager, logger *logger.Logger) *Auth {
	return &Auth{service: service, contextManager: contextManager, logger: logger}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	ID    uuid.UUID  `json:"id"`
	Name  string     `json:"name"`
	Email string     `json:"email"`
	Role  model.Role `json:"role"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

type identityResponse struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Role        model.Role `json:"role"`
	RecipeCount int        `json:"recipeCount"`
}

func toUserResponse(user model.User) userResponse {
	return userResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
	}
}

// Register creates a new account and returns a token for it.
func (h *Auth) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}

	user, token, err := h.service.Register(c.Request().Context(), service.RegisterParams{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return handleError(c, h.logger, err)
	}

	return c.JSON(http.StatusCreated, authResponse{Token: token, User: toUserResponse(user)})
}

// Login verifies credentials and returns a fresh token.
func (h *Auth) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}

	user, token, err := h.service.Login(c.Request().Context(), service.LoginParams{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return handleError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, authResponse{Token: token, User: toUserResponse(user)})
}

// Me returns the authenticated user's profile and authored recipe count.
func (h *Auth) Me(c echo.Context) error {
	identity, ok := h.contextManager.GetIdentityFromContext(c.Request().Context())
	if !ok {
		return c.JSON(http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
	}

	user, count, err := h.service.GetIdentity(c.Request().Context(), identity.ID)
	if err != nil {
		return handleError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, identityResponse{
		ID:          user.ID,
		Name:        user.Name,
		Email:       user.Email,
		Role:        user.Role,
		RecipeCount: count,
	})
}
