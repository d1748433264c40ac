package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	userapp "github.com/oksasatya/user-lifecycle-service/internal/application"
	"github.com/oksasatya/user-lifecycle-service/internal/domain/entity"
	"github.com/oksasatya/user-lifecycle-service/pkg/response"
	"github.com/oksasatya/user-lifecycle-service/pkg/validation"
)

// UserService is the lifecycle service surface consumed by the HTTP layer.
type UserService interface {
	CreateUser(ctx context.Context, in userapp.CreateUserInput) (*entity.User, error)
	GetAllUsers(ctx context.Context) ([]*entity.User, error)
	GetUserByID(ctx context.Context, id string) (*entity.User, error)
	GetUserByEmail(ctx context.Context, email string) (*entity.User, error)
	UpdateUser(ctx context.Context, id string, in userapp.UpdateUserInput) (*entity.User, error)
	DeleteUserByID(ctx context.Context, id string) error
}

type UserHandler struct {
	Svc    UserService
	Logger *logrus.Logger
}

func NewUserHandler(svc UserService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

type registerRequest struct {
	Name     string `json:"name" binding:"required,max=50"`
	LastName string `json:"lastName" binding:"required,max=50"`
	Email    string `json:"email" binding:"required,email,max=254"`
	Age      *int   `json:"age" binding:"omitempty,gte=0,lte=150"`
	Password string `json:"password" binding:"required,min=6,max=72"`
}

type updateRequest struct {
	Name     string `json:"name" binding:"required,max=50"`
	LastName string `json:"lastName" binding:"required,max=50"`
	Email    string `json:"email" binding:"required,email,max=254"`
	Age      *int   `json:"age" binding:"omitempty,gte=0,lte=150"`
}

// userResponse is the outward representation; the password hash is
// stripped here and never serialized.
type userResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	Age       *int      `json:"age,omitempty"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toUserResponse(u *entity.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Name:      u.Name,
		LastName:  u.LastName,
		Email:     u.Email,
		Age:       u.Age,
		Role:      string(u.Role),
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, userapp.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, userapp.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, userapp.ErrInvalidState), errors.Is(err, userapp.ErrInvalidArgument):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (h *UserHandler) fail(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.Logger.WithError(err).WithField("path", c.FullPath()).Error("request failed")
		response.Error[any](c, status, "internal server error", nil)
		return
	}
	response.Error[any](c, status, err.Error(), nil)
}

func (h *UserHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Svc.CreateUser(c.Request.Context(), userapp.CreateUserInput{
		Name:     req.Name,
		LastName: req.LastName,
		Email:    req.Email,
		Age:      req.Age,
		Password: req.Password,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, toUserResponse(u), "user registered")
}

func (h *UserHandler) GetAll(c *gin.Context) {
	users, err := h.Svc.GetAllUsers(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	response.Success(c, http.StatusOK, out, "active users")
}

func (h *UserHandler) GetByID(c *gin.Context) {
	u, err := h.Svc.GetUserByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, toUserResponse(u), "user")
}

func (h *UserHandler) GetByEmail(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		response.Error[any](c, http.StatusBadRequest, "email query parameter is required", nil)
		return
	}
	u, err := h.Svc.GetUserByEmail(c.Request.Context(), email)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, toUserResponse(u), "user")
}

func (h *UserHandler) Update(c *gin.Context) {
	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Svc.UpdateUser(c.Request.Context(), c.Param("id"), userapp.UpdateUserInput{
		Name:     req.Name,
		LastName: req.LastName,
		Email:    req.Email,
		Age:      req.Age,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, toUserResponse(u), "user updated")
}

func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.Svc.DeleteUserByID(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
