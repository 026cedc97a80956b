//go:build wireinject
// +build wireinject

package main

import (
	"Everest/config"
	"Everest/dao"
	"Everest/handler"
	"Everest/pkg/client"
	"Everest/pkg/database"
	"Everest/pkg/server"
	"Everest/service"

	"github.com/google/wire"
)

func InitServer(cfg *config.Config) *server.AppProvider {
	wire.Build(

		client.NewRedisClient,
		server.NewGinEngine,
		wire.Struct(new(handler.Receipt), "*"),
		wire.Struct(new(handler.Reward), "*"),
		wire.Struct(new(handler.Staff), "*"),
		wire.Struct(new(handler.Member), "*"),

		wire.Struct(new(server.AppProvider), "*"),
		wire.Struct(new(server.Handlers), "*"),

		dao.ProviderSet,

		service.ProviderSet,
		database.NewDB,
	)
	return nil
}
