package handler

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	httpcontext "github.com/recipebox/recipebox-server/internal/api/http/context"
	"github.com/recipebox/recipebox-server/internal/model"
	"github.com/recipebox/recipebox-server/internal/testutil"
)

type mockRecipeService struct {
	mock.Mock
}

func (m *mockRecipeService) CreateRecipe(ctx context.Context, identity model.AuthContext, params model.CreateRecipeParams) (model.Recipe, error) {
	args := m.Called(ctx, identity, params)
	return args.Get(0).(model.Recipe), args.Error(1)
}

func (m *mockRecipeService) GetRecipe(ctx context.Context, recipeID uuid.UUID) (model.Recipe, error) {
	args := m.Called(ctx, recipeID)
	return args.Get(0).(model.Recipe), args.Error(1)
}

func (m *mockRecipeService) ListRecipes(ctx context.Context, search string) ([]model.Recipe, error) {
	args := m.Called(ctx, search)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Recipe), args.Error(1)
}

func (m *mockRecipeService) UpdateRecipe(ctx context.Context, identity model.AuthContext, recipeID uuid.UUID, params model.UpdateRecipeParams) (model.Recipe, error) {
	args := m.Called(ctx, identity, recipeID, params)
	return args.Get(0).(model.Recipe), args.Error(1)
}

func (m *mockRecipeService) DeleteRecipe(ctx context.Context, identity model.AuthContext, recipeID uuid.UUID) error {
	args := m.Called(ctx, identity, recipeID)
	return args.Error(0)
}

func (m *mockRecipeService) AttachImage(ctx context.Context, identity model.AuthContext, recipeID uuid.UUID, reader io.Reader, size int64, contentType string) (model.Recipe, error) {
	args := m.Called(ctx, identity, recipeID, reader, size, contentType)
	return args.Get(0).(model.Recipe), args.Error(1)
}

func (m *mockRecipeService) GetImage(ctx context.Context, recipeID uuid.UUID) (io.ReadCloser, string, error) {
	args := m.Called(ctx, recipeID)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).(io.ReadCloser), args.String(1), args.Error(2)
}

func newRecipeHandler() (*Recipe, *mockRecipeService, *httpcontext.Manager) {
	svc := &mockRecipeService{}
	cm := httpcontext.NewManager()
	return NewRecipe(svc, cm, testutil.MakeNoopLogger()), svc, cm
}

func authedContext(e *echo.Echo, cm *httpcontext.Manager, req *http.Request, rec *httptest.ResponseRecorder, identity model.AuthContext) echo.Context {
	req = req.WithContext(cm.SetIdentityToContext(req.Context(), identity))
	return e.NewContext(req, rec)
}

func TestRecipe_Create(t *testing.T) {
	identity := model.AuthContext{ID: uuid.New(), Name: "alice", Role: model.RoleUser}

	t.Run("success", func(t *testing.T) {
		h, svc, cm := newRecipeHandler()
		created := model.Recipe{
			ID:          uuid.New(),
			AuthorID:    identity.ID,
			Title:       "Pancakes",
			Ingredients: []string{"flour", "milk"},
			Steps:       []string{"mix", "fry"},
		}
		svc.On("CreateRecipe", mock.Anything, identity, model.CreateRecipeParams{
			Title:       "Pancakes",
			Ingredients: []string{"flour", "milk"},
			Steps:       []string{"mix", "fry"},
		}).Return(created, nil)

		e := echo.New()
		req := jsonRequest(http.MethodPost, "/api/recipes",
			`{"title":"Pancakes","ingredients":["flour","milk"],"steps":["mix","fry"]}`)
		rec := httptest.NewRecorder()

		err := h.Create(authedContext(e, cm, req, rec, identity))
		require.NoError(t, err)

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Contains(t, rec.Body.String(), `"title":"Pancakes"`)
		assert.Contains(t, rec.Body.String(), `"hasImage":false`)
		svc.AssertExpectations(t)
	})

	t.Run("unauthenticated", func(t *testing.T) {
		h, _, _ := newRecipeHandler()

		e := echo.New()
		req := jsonRequest(http.MethodPost, "/api/recipes", `{"title":"Pancakes"}`)
		rec := httptest.NewRecorder()

		err := h.Create(e.NewContext(req, rec))
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("missing title", func(t *testing.T) {
		h, svc, cm := newRecipeHandler()
		svc.On("CreateRecipe", mock.Anything, identity, mock.Anything).
			Return(model.Recipe{}, model.NewValidationError("title", "is required"))

		e := echo.New()
		req := jsonRequest(http.MethodPost, "/api/recipes", `{"description":"untitled"}`)
		rec := httptest.NewRecorder()

		err := h.Create(authedContext(e, cm, req, rec, identity))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestRecipe_Get(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		h, svc, _ := newRecipeHandler()
		recipe := model.Recipe{ID: uuid.New(), AuthorID: uuid.New(), Title: "Soup", ImageKey: "some-key"}
		svc.On("GetRecipe", mock.Anything, recipe.ID).Return(recipe, nil)

		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetPath("/api/recipes/:id")
		c.SetParamNames("id")
		c.SetParamValues(recipe.ID.String())

		err := h.Get(c)
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"title":"Soup"`)
		assert.Contains(t, rec.Body.String(), `"hasImage":true`)
		assert.NotContains(t, rec.Body.String(), "some-key")
	})

	t.Run("invalid id", func(t *testing.T) {
		h, _, _ := newRecipeHandler()

		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("id")
		c.SetParamValues("not-a-uuid")

		err := h.Get(c)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("not found", func(t *testing.T) {
		h, svc, _ := newRecipeHandler()
		id := uuid.New()
		svc.On("GetRecipe", mock.Anything, id).Return(model.Recipe{}, model.ErrNotFound)

		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("id")
		c.SetParamValues(id.String())

		err := h.Get(c)
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestRecipe_List(t *testing.T) {
	t.Run("passes search through", func(t *testing.T) {
		h, svc, _ := newRecipeHandler()
		svc.On("ListRecipes", mock.Anything, "soup").
			Return([]model.Recipe{{ID: uuid.New(), Title: "Onion Soup"}}, nil)

		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/api/recipes?search=soup", nil)
		rec := httptest.NewRecorder()

		err := h.List(e.NewContext(req, rec))
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Onion Soup")
		svc.AssertExpectations(t)
	})

	t.Run("empty result is an empty array", func(t *testing.T) {
		h, svc, _ := newRecipeHandler()
		svc.On("ListRecipes", mock.Anything, "").Return([]model.Recipe{}, nil)

		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/api/recipes", nil)
		rec := httptest.NewRecorder()

		err := h.List(e.NewContext(req, rec))
		require.NoError(t, err)
		assert.JSONEq(t, `[]`, rec.Body.String())
	})
}

func TestRecipe_Update(t *testing.T) {
	identity := model.AuthContext{ID: uuid.New(), Name: "mallory", Role: model.RoleUser}

	t.Run("forbidden for non-author", func(t *testing.T) {
		h, svc, cm := newRecipeHandler()
		id := uuid.New()
		svc.On("UpdateRecipe", mock.Anything, identity, id, mock.Anything).
			Return(model.Recipe{}, model.ErrForbidden)

		e := echo.New()
		req := jsonRequest(http.MethodPut, "/", `{"title":"Stolen"}`)
		rec := httptest.NewRecorder()
		c := authedContext(e, cm, req, rec, identity)
		c.SetParamNames("id")
		c.SetParamValues(id.String())

		err := h.Update(c)
		require.NoError(t, err)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("success", func(t *testing.T) {
		h, svc, cm := newRecipeHandler()
		id := uuid.New()
		updated := model.Recipe{ID: id, AuthorID: identity.ID, Title: "Better Soup"}
		svc.On("UpdateRecipe", mock.Anything, identity, id, model.UpdateRecipeParams{Title: "Better Soup"}).
			Return(updated, nil)

		e := echo.New()
		req := jsonRequest(http.MethodPut, "/", `{"title":"Better Soup"}`)
		rec := httptest.NewRecorder()
		c := authedContext(e, cm, req, rec, identity)
		c.SetParamNames("id")
		c.SetParamValues(id.String())

		err := h.Update(c)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Better Soup")
	})
}

func TestRecipe_Delete(t *testing.T) {
	identity := model.AuthContext{ID: uuid.New(), Name: "alice", Role: model.RoleUser}
	h, svc, cm := newRecipeHandler()
	id := uuid.New()
	svc.On("DeleteRecipe", mock.Anything, identity, id).Return(nil)

	e := echo.New()
	req := httptest.NewRequest(http.MethodDelete, "/", nil)
	rec := httptest.NewRecorder()
	c := authedContext(e, cm, req, rec, identity)
	c.SetParamNames("id")
	c.SetParamValues(id.String())

	err := h.Delete(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	svc.AssertExpectations(t)
}

func multipartImage(t *testing.T, field, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestRecipe_AttachImage(t *testing.T) {
	identity := model.AuthContext{ID: uuid.New(), Name: "alice", Role: model.RoleUser}

	t.Run("success", func(t *testing.T) {
		h, svc, cm := newRecipeHandler()
		id := uuid.New()
		updated := model.Recipe{ID: id, AuthorID: identity.ID, Title: "Soup", ImageKey: "key"}
		svc.On("AttachImage", mock.Anything, identity, id, mock.Anything, int64(4), mock.Anything).
			Return(updated, nil)

		body, contentType := multipartImage(t, "image", "soup.png", []byte("data"))

		e := echo.New()
		req := httptest.NewRequest(http.MethodPut, "/", body)
		req.Header.Set(echo.HeaderContentType, contentType)
		rec := httptest.NewRecorder()
		c := authedContext(e, cm, req, rec, identity)
		c.SetParamNames("id")
		c.SetParamValues(id.String())

		err := h.AttachImage(c)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"hasImage":true`)
		svc.AssertExpectations(t)
	})

	t.Run("missing file", func(t *testing.T) {
		h, _, cm := newRecipeHandler()
		id := uuid.New()

		body, contentType := multipartImage(t, "wrong-field", "soup.png", []byte("data"))

		e := echo.New()
		req := httptest.NewRequest(http.MethodPut, "/", body)
		req.Header.Set(echo.HeaderContentType, contentType)
		rec := httptest.NewRecorder()
		c := authedContext(e, cm, req, rec, identity)
		c.SetParamNames("id")
		c.SetParamValues(id.String())

		err := h.AttachImage(c)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestRecipe_GetImage(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		h, svc, _ := newRecipeHandler()
		id := uuid.New()
		svc.On("GetImage", mock.Anything, id).
			Return(io.NopCloser(bytes.NewReader([]byte("png-bytes"))), "image/png", nil)

		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("id")
		c.SetParamValues(id.String())

		err := h.GetImage(c)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "image/png", rec.Header().Get(echo.HeaderContentType))
		assert.Equal(t, "png-bytes", rec.Body.String())
	})

	t.Run("no image", func(t *testing.T) {
		h, svc, _ := newRecipeHandler()
		id := uuid.New()
		svc.On("GetImage", mock.Anything, id).Return(nil, "", model.ErrNotFound)

		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("id")
		c.SetParamValues(id.String())

		err := h.GetImage(c)
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
