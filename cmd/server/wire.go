//go:build wireinject

package main

import (
	"github.com/google/wire"
	"gorm.io/gorm"
	"pantrypal.app/pantry-api-gateway/app/domain"
	"pantrypal.app/pantry-api-gateway/app/infrastructure"
	"pantrypal.app/pantry-api-gateway/app/infrastructure/database"
	"pantrypal.app/pantry-api-gateway/app/infrastructure/database/repository"
	"pantrypal.app/pantry-api-gateway/app/interfaces/http"
	"pantrypal.app/pantry-api-gateway/app/interfaces/http/routes"
)

func CreateApplication() (*Application, error) {
	wire.Build(
		database.NewDB,
		repository.RepositoryProvider,
		infrastructure.InfrastructureProvider,
		domain.ServiceProvider,
		routes.RouteProvider,
		http.NewHttpServer,
		wire.Struct(new(Application), "*"),
	)
	return nil, nil
}

func ProvideDatabase() *gorm.DB {
	return database.DB
}

func CreateDataInitializer() (*DataInitializer, error) {
	wire.Build(
		ProvideDatabase,
		repository.RepositoryProvider,
		infrastructure.InfrastructureProvider,
		domain.ServiceProvider,
		wire.Struct(new(DataInitializer), "*"),
	)
	return nil, nil
}
