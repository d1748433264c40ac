package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/user-lifecycle-service/internal/interface/middleware"

	handlers "github.com/oksasatya/user-lifecycle-service/internal/interface/http"
)

// UserModule wires the user lifecycle HTTP handlers into routes.
//
// POST   /api/users/register          create an account (201)
// GET    /api/users                   list active users
// GET    /api/users/by-email?email=   lookup by email
// GET    /api/users/:id               lookup by id
// PUT    /api/users/:id               full profile overwrite
// DELETE /api/users/:id               soft delete (204)
type UserModule struct {
	Handler *handlers.UserHandler
	Redis   *redis.Client
}

func NewUserModule(h *handlers.UserHandler, rdb *redis.Client) *UserModule {
	return &UserModule{Handler: h, Redis: rdb}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	// Registration gets a tighter per-IP limit than the rest.
	registerLimiter := middleware.RateLimit(m.Redis, 10, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP())
	readLimiter := middleware.RateLimit(m.Redis, 300, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP())

	users := rg.Group("/users")
	users.Use(readLimiter)
	{
		users.POST("/register", registerLimiter, m.Handler.Register)
		users.GET("", m.Handler.GetAll)
		users.GET("/by-email", m.Handler.GetByEmail)
		users.GET("/:id", m.Handler.GetByID)
		users.PUT("/:id", m.Handler.Update)
		users.DELETE("/:id", m.Handler.Delete)
	}
}
