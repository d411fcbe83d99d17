// Package mocks provides testify mocks for the model interfaces.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/recipebox/recipebox-server/internal/model"
)

// UserStore is a mock implementation of model.UserStore.
type UserStore struct {
	mock.Mock
}

func (m *UserStore) GetByEmail(ctx context.Context, email string) (model.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *UserStore) GetByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *UserStore) Create(ctx context.Context, user model.User) (model.User, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *UserStore) Save(ctx context.Context, user model.User) (model.User, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(model.User), args.Error(1)
}

// RecipeStore is a mock implementation of model.RecipeStore.
type RecipeStore struct {
	mock.Mock
}

func (m *RecipeStore) Create(ctx context.Context, recipe model.Recipe) (model.Recipe, error) {
	args := m.Called(ctx, recipe)
	return args.Get(0).(model.Recipe), args.Error(1)
}

func (m *RecipeStore) GetByID(ctx context.Context, id uuid.UUID) (model.Recipe, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Recipe), args.Error(1)
}

func (m *RecipeStore) List(ctx context.Context, search string) ([]model.Recipe, error) {
	args := m.Called(ctx, search)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Recipe), args.Error(1)
}

func (m *RecipeStore) CountByAuthor(ctx context.Context, authorID uuid.UUID) (int, error) {
	args := m.Called(ctx, authorID)
	return args.Int(0), args.Error(1)
}

func (m *RecipeStore) Update(ctx context.Context, recipe model.Recipe) (model.Recipe, error) {
	args := m.Called(ctx, recipe)
	return args.Get(0).(model.Recipe), args.Error(1)
}

func (m *RecipeStore) SoftDelete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
