package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	userapp "github.com/oksasatya/user-lifecycle-service/internal/application"
	"github.com/oksasatya/user-lifecycle-service/internal/domain/entity"
	"github.com/oksasatya/user-lifecycle-service/pkg/validation"
)

// ---- mock service ----

type mockUserService struct {
	createFn     func(userapp.CreateUserInput) (*entity.User, error)
	getAllFn     func() ([]*entity.User, error)
	getByIDFn    func(string) (*entity.User, error)
	getByEmailFn func(string) (*entity.User, error)
	updateFn     func(string, userapp.UpdateUserInput) (*entity.User, error)
	deleteFn     func(string) error
}

func (m *mockUserService) CreateUser(_ context.Context, in userapp.CreateUserInput) (*entity.User, error) {
	if m.createFn != nil {
		return m.createFn(in)
	}
	return nil, errors.New("not configured")
}

func (m *mockUserService) GetAllUsers(_ context.Context) ([]*entity.User, error) {
	if m.getAllFn != nil {
		return m.getAllFn()
	}
	return nil, errors.New("not configured")
}

func (m *mockUserService) GetUserByID(_ context.Context, id string) (*entity.User, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(id)
	}
	return nil, errors.New("not configured")
}

func (m *mockUserService) GetUserByEmail(_ context.Context, email string) (*entity.User, error) {
	if m.getByEmailFn != nil {
		return m.getByEmailFn(email)
	}
	return nil, errors.New("not configured")
}

func (m *mockUserService) UpdateUser(_ context.Context, id string, in userapp.UpdateUserInput) (*entity.User, error) {
	if m.updateFn != nil {
		return m.updateFn(id, in)
	}
	return nil, errors.New("not configured")
}

func (m *mockUserService) DeleteUserByID(_ context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(id)
	}
	return errors.New("not configured")
}

// ---- helpers ----

func newTestRouter(svc UserService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	validation.Init()
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	h := NewUserHandler(svc, logger)
	r := gin.New()
	users := r.Group("/api/users")
	users.POST("/register", h.Register)
	users.GET("", h.GetAll)
	users.GET("/by-email", h.GetByEmail)
	users.GET("/:id", h.GetByID)
	users.PUT("/:id", h.Update)
	users.DELETE("/:id", h.Delete)
	return r
}

func doRequest(r *gin.Engine, method, url string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		reader = bytes.NewReader(b)
	}
	req, _ := http.NewRequest(method, url, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func intPtr(v int) *int { return &v }

func sampleUser() *entity.User {
	return &entity.User{
		ID:           "user-1",
		Name:         "A",
		LastName:     "B",
		Email:        "a@b.com",
		Age:          intPtr(20),
		PasswordHash: "$2a$10$hash",
		Role:         entity.RoleUser,
		IsActive:     true,
	}
}

// ---- Register ----

func TestRegister(t *testing.T) {
	svc := &mockUserService{
		createFn: func(in userapp.CreateUserInput) (*entity.User, error) {
			require.Equal(t, "a@b.com", in.Email)
			return sampleUser(), nil
		},
	}
	r := newTestRouter(svc)

	w := doRequest(r, http.MethodPost, "/api/users/register", gin.H{
		"name": "A", "lastName": "B", "email": "a@b.com", "age": 20, "password": "secret1",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	require.NotContains(t, w.Body.String(), "$2a$10$hash")
	require.NotContains(t, w.Body.String(), "passwordHash")

	var resp struct {
		Data struct {
			ID       string `json:"id"`
			Email    string `json:"email"`
			Role     string `json:"role"`
			IsActive bool   `json:"isActive"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "user-1", resp.Data.ID)
	require.Equal(t, "a@b.com", resp.Data.Email)
	require.Equal(t, "USER", resp.Data.Role)
	require.True(t, resp.Data.IsActive)
}

func TestRegister_InvalidPayload(t *testing.T) {
	r := newTestRouter(&mockUserService{})

	tests := []struct {
		name string
		body gin.H
	}{
		{"missing email", gin.H{"name": "A", "lastName": "B", "password": "secret1"}},
		{"bad email", gin.H{"name": "A", "lastName": "B", "email": "nope", "password": "secret1"}},
		{"short password", gin.H{"name": "A", "lastName": "B", "email": "a@b.com", "password": "123"}},
		{"age out of range", gin.H{"name": "A", "lastName": "B", "email": "a@b.com", "age": 200, "password": "secret1"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := doRequest(r, http.MethodPost, "/api/users/register", tc.body)
			require.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestRegister_Conflict(t *testing.T) {
	svc := &mockUserService{
		createFn: func(userapp.CreateUserInput) (*entity.User, error) {
			return nil, userapp.ErrConflict
		},
	}
	w := doRequest(newTestRouter(svc), http.MethodPost, "/api/users/register", gin.H{
		"name": "A", "lastName": "B", "email": "a@b.com", "password": "secret1",
	})
	require.Equal(t, http.StatusConflict, w.Code)
}

// ---- GetAll ----

func TestGetAll(t *testing.T) {
	svc := &mockUserService{
		getAllFn: func() ([]*entity.User, error) {
			return []*entity.User{sampleUser()}, nil
		},
	}
	w := doRequest(newTestRouter(svc), http.MethodGet, "/api/users", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "a@b.com")
}

func TestGetAll_EmptyIsNotFound(t *testing.T) {
	svc := &mockUserService{
		getAllFn: func() ([]*entity.User, error) {
			return nil, userapp.ErrNotFound
		},
	}
	w := doRequest(newTestRouter(svc), http.MethodGet, "/api/users", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

// ---- lookups ----

func TestGetByID_NotFound(t *testing.T) {
	svc := &mockUserService{
		getByIDFn: func(string) (*entity.User, error) {
			return nil, userapp.ErrNotFound
		},
	}
	w := doRequest(newTestRouter(svc), http.MethodGet, "/api/users/missing", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetByEmail(t *testing.T) {
	svc := &mockUserService{
		getByEmailFn: func(email string) (*entity.User, error) {
			require.Equal(t, "a@b.com", email)
			return sampleUser(), nil
		},
	}
	w := doRequest(newTestRouter(svc), http.MethodGet, "/api/users/by-email?email=a%40b.com", nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestGetByEmail_MissingParam(t *testing.T) {
	w := doRequest(newTestRouter(&mockUserService{}), http.MethodGet, "/api/users/by-email", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

// ---- Update ----

func TestUpdate(t *testing.T) {
	svc := &mockUserService{
		updateFn: func(id string, in userapp.UpdateUserInput) (*entity.User, error) {
			require.Equal(t, "user-1", id)
			u := sampleUser()
			u.Name = in.Name
			u.Email = in.Email
			return u, nil
		},
	}
	w := doRequest(newTestRouter(svc), http.MethodPut, "/api/users/user-1", gin.H{
		"name": "New", "lastName": "B", "email": "new@b.com", "age": 21,
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "new@b.com")
}

// ---- Delete ----

func TestDelete(t *testing.T) {
	svc := &mockUserService{
		deleteFn: func(id string) error {
			require.Equal(t, "user-1", id)
			return nil
		},
	}
	w := doRequest(newTestRouter(svc), http.MethodDelete, "/api/users/user-1", nil)
	require.Equal(t, http.StatusNoContent, w.Code)
	require.Empty(t, w.Body.String())
}

func TestDelete_AlreadyInactive(t *testing.T) {
	svc := &mockUserService{
		deleteFn: func(string) error {
			return userapp.ErrInvalidState
		},
	}
	w := doRequest(newTestRouter(svc), http.MethodDelete, "/api/users/user-1", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestInternalErrorHidesDetails(t *testing.T) {
	svc := &mockUserService{
		getByIDFn: func(string) (*entity.User, error) {
			return nil, errors.New("pq: connection refused")
		},
	}
	w := doRequest(newTestRouter(svc), http.MethodGet, "/api/users/user-1", nil)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.NotContains(t, w.Body.String(), "connection refused")
}
