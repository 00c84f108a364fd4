package router

import (
	userapp "github.com/poolmvp/usersvc/internal/application"
	"github.com/poolmvp/usersvc/internal/container"
	pginfra "github.com/poolmvp/usersvc/internal/infrastructure/postgres"
	handlers "github.com/poolmvp/usersvc/internal/interface/http"
	"github.com/poolmvp/usersvc/internal/router/modules"
)

// InitModules wires repositories, services and handlers from the container
// singletons and registers every feature module. Called once at startup.
func InitModules(r *Registry) {
	repo := pginfra.NewUserRepository(container.GetPool())
	service := userapp.NewService(repo, container.GetLogger())
	userHandler := handlers.NewUserHandler(service, container.GetLogger())

	r.Add(modules.NewHealthModule(handlers.NewHealthHandler()))
	r.Add(modules.NewUserModule(userHandler))
}
