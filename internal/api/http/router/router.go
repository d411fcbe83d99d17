package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/recipebox/recipebox-server/internal/api/http/handler"
	"github.com/recipebox/recipebox-server/internal/api/http/middleware"
	"github.com/recipebox/recipebox-server/internal/logger"
	"github.com/recipebox/recipebox-server/internal/model"
	"github.com/recipebox/recipebox-server/internal/service"
)

// Router wires handlers and middleware into an echo instance.
type Router struct {
	authService    *service.Auth
	recipeService  *service.Recipe
	tokenManager   model.TokenManager
	contextManager model.ContextManager
	logger         *logger.Logger
}

// New creates a new Router instance.
func New(
	authService *service.Auth,
	recipeService *service.Recipe,
	tokenManager model.TokenManager,
	contextManager model.ContextManager,
	logger *logger.Logger,
) *Router {
	return &Router{
		authService:    authService,
		recipeService:  recipeService,
		tokenManager:   tokenManager,
		contextManager: contextManager,
		logger:         logger,
	}
}

// Register builds the echo instance with all routes and middleware.
// Reads are public; mutations and identity lookup require a bearer token.
func (r *Router) Register() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	logging := middleware.NewLogging(r.logger)
	authenticate := middleware.NewAuthenticate(r.tokenManager, r.contextManager, r.logger)

	e.Use(logging.Handle)

	e.GET("/healthz", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	authHandler := handler.NewAuth(r.authService, r.contextManager, r.logger)
	recipeHandler := handler.NewRecipe(r.recipeService, r.contextManager, r.logger)

	api := e.Group("/api")

	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.GET("/auth/me", authHandler.Me, authenticate.Handle)

	api.GET("/recipes", recipeHandler.List)
	api.GET("/recipes/:id", recipeHandler.Get)
	api.GET("/recipes/:id/image", recipeHandler.GetImage)

	api.POST("/recipes", recipeHandler.Create, authenticate.Handle)
	api.PUT("/recipes/:id", recipeHandler.Update, authenticate.Handle)
	api.DELETE("/recipes/:id", recipeHandler.Delete, authenticate.Handle)
	api.PUT("/recipes/:id/image", recipeHandler.AttachImage, authenticate.Handle)

	return e
}
