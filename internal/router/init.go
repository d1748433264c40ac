package router

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/user-lifecycle-service/config"
	userapp "github.com/oksasatya/user-lifecycle-service/internal/application"
	pginfra "github.com/oksasatya/user-lifecycle-service/internal/infrastructure/postgres"
	handlers "github.com/oksasatya/user-lifecycle-service/internal/interface/http"
	"github.com/oksasatya/user-lifecycle-service/internal/router/modules"
	"github.com/oksasatya/user-lifecycle-service/pkg/helpers"
)

// Deps carries the shared infrastructure handed to every module.
// Collaborators are passed explicitly; there is no ambient registry.
type Deps struct {
	Config    *config.Config
	Logger    *logrus.Logger
	Pool      *pgxpool.Pool
	Redis     *redis.Client
	Publisher userapp.EventPublisher
}

// InitModules builds the user module dependency chain and registers it.
// Called once during application startup.
func InitModules(r *Registry, d Deps) {
	repo := pginfra.NewUserRepository(d.Pool)
	hasher := helpers.NewBcryptHasher(d.Config.BcryptCost)
	service := userapp.NewService(repo, hasher, d.Publisher, d.Logger, d.Config.EventPublishTimeout)
	handler := handlers.NewUserHandler(service, d.Logger)

	r.Add(modules.NewUserModule(handler, d.Redis))
}
