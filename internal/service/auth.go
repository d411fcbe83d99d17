package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/recipebox/recipebox-server/internal/logger"
	"github.com/recipebox/recipebox-server/internal/model"
)

// MinPasswordLength is the minimum accepted password length at registration.
const MinPasswordLength = 5

// PasswordHasher produces and verifies salted one-way password digests.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, digest string) bool
}

// Auth implements registration, login and identity lookup.
type Auth struct {
	userStore    model.UserStore
	recipeStore  model.RecipeStore
	hasher       PasswordHasher
	tokenManager model.TokenManager
	roles        *RoleResolver
	logger       *logger.Logger
}

// NewAuth creates a new Auth service.
func NewAuth(
	userStore model.UserStore,
	recipeStore model.RecipeStore,
	hasher PasswordHasher,
	tokenManager model.TokenManager,
	roles *RoleResolver,
	logger *logger.Logger,
) *Auth {
	return &Auth{
		userStore:    userStore,
		recipeStore:  recipeStore,
		hasher:       hasher,
		tokenManager: tokenManager,
		roles:        roles,
		logger:       logger,
	}
}

// RegisterParams contains parameters to register a new user.
type RegisterParams struct {
	Name     string
	Email    string
	Password string
}

// LoginParams contains credentials presented at login.
type LoginParams struct {
	Email    string
	Password string
}

// Register creates a user and issues a token for it. The email is stored
// trimmed and lowercased; the role is fixed at creation time from the admin
// allow-list. A duplicate email fails with ErrEmailTaken whether it is caught
// by the pre-check or by the store's uniqueness constraint during a race.
func (a *Auth) Register(ctx context.Context, params RegisterParams) (model.User, string, error) {
	if params.Name == "" {
		return model.User{}, "", model.NewValidationError("name", "is required")
	}
	if params.Email == "" {
		return model.User{}, "", model.NewValidationError("email", "is required")
	}
	if len(params.Password) < MinPasswordLength {
		return model.User{}, "", model.NewValidationError("password", fmt.Sprintf("must be at least %d characters", MinPasswordLength))
	}

	email := NormalizeEmail(params.Email)

	a.logger.Debug("Auth service: starting user registration", "email", email)

	existing, err := a.userStore.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		a.logger.Error("Auth service: failed to get user by email",
			"email", email,
			"error", err.Error())
		return model.User{}, "", fmt.Errorf("failed to get user by email: %w", err)
	}
	if existing.ID != uuid.Nil {
		a.logger.Info("Auth service: user already exists", "email", email)
		return model.User{}, "", model.ErrEmailTaken
	}

	hash, err := a.hasher.Hash(params.Password)
	if err != nil {
		return model.User{}, "", fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := model.User{
		ID:           uuid.New(),
		Name:         params.Name,
		Email:        email,
		PasswordHash: hash,
		Role:         a.roles.Resolve(email),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := a.userStore.Create(ctx, user)
	if err != nil {
		if errors.Is(err, model.ErrEmailTaken) {
			a.logger.Info("Auth service: lost registration race", "email", email)
			return model.User{}, "", model.ErrEmailTaken
		}
		a.logger.Error("Auth service: failed to create user",
			"email", email,
			"error", err.Error())
		return model.User{}, "", fmt.Errorf("failed to create user: %w", err)
	}

	signed, err := a.tokenManager.Generate(identityOf(created))
	if err != nil {
		return model.User{}, "", fmt.Errorf("failed to issue token: %w", err)
	}

	a.logger.Info("Auth service: user registered",
		"user_id", created.ID,
		"role", created.Role)

	return created, signed, nil
}

// Login verifies credentials and issues a token. The stored role is
// reconciled against the admin allow-list before issuance so that allow-list
// changes take effect on the next login.
func (a *Auth) Login(ctx context.Context, params LoginParams) (model.User, string, error) {
	if params.Email == "" {
		return model.User{}, "", model.NewValidationError("email", "is required")
	}
	if params.Password == "" {
		return model.User{}, "", model.NewValidationError("password", "is required")
	}

	email := NormalizeEmail(params.Email)

	a.logger.Debug("Auth service: starting user login", "email", email)

	user, err := a.userStore.GetByEmail(ctx, email)
	if errors.Is(err, model.ErrNotFound) {
		return model.User{}, "", model.ErrNotFound
	}
	if err != nil {
		return model.User{}, "", fmt.Errorf("failed to get user by email: %w", err)
	}

	if !a.hasher.Verify(params.Password, user.PasswordHash) {
		a.logger.Info("Auth service: wrong password", "user_id", user.ID)
		return model.User{}, "", model.ErrInvalidCredentials
	}

	user, err = a.reconcileRole(ctx, user)
	if err != nil {
		return model.User{}, "", fmt.Errorf("failed to reconcile role: %w", err)
	}

	signed, err := a.tokenManager.Generate(identityOf(user))
	if err != nil {
		return model.User{}, "", fmt.Errorf("failed to issue token: %w", err)
	}

	a.logger.Info("Auth service: user logged in",
		"user_id", user.ID,
		"role", user.Role)

	return user, signed, nil
}

// GetIdentity returns the user behind a verified token along with the number
// of recipes it authored. Fails with ErrNotFound when the user was deleted
// after the token was issued.
func (a *Auth) GetIdentity(ctx context.Context, userID uuid.UUID) (model.User, int, error) {
	user, err := a.userStore.GetByID(ctx, userID)
	if errors.Is(err, model.ErrNotFound) {
		return model.User{}, 0, model.ErrNotFound
	}
	if err != nil {
		return model.User{}, 0, fmt.Errorf("failed to get user by id: %w", err)
	}

	count, err := a.recipeStore.CountByAuthor(ctx, userID)
	if err != nil {
		return model.User{}, 0, fmt.Errorf("failed to count recipes by author: %w", err)
	}

	return user, count, nil
}

// reconcileRole upgrades a stored user role to admin when the allow-list
// says so, persisting the change. It never downgrades an existing admin and
// is idempotent: an already-correct role is returned unchanged.
func (a *Auth) reconcileRole(ctx context.Context, user model.User) (model.User, error) {
	if user.Role == model.RoleAdmin || a.roles.Resolve(user.Email) != model.RoleAdmin {
		return user, nil
	}

	user.Role = model.RoleAdmin
	user.UpdatedAt = time.Now()

	saved, err := a.userStore.Save(ctx, user)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to save user: %w", err)
	}

	a.logger.Info("Auth service: promoted user to admin", "user_id", saved.ID)

	return saved, nil
}

func identityOf(user model.User) model.AuthContext {
	return model.AuthContext{
		ID:   user.ID,
		Name: user.Name,
		Role: user.Role,
	}
}
