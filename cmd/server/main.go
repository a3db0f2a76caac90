package main

import (
	"context"
	"fmt"

	"github.com/restgen/restgen/internal/config"
	handler "github.com/restgen/restgen/internal/handler/http"
	"github.com/restgen/restgen/internal/logger"
	"github.com/restgen/restgen/internal/schema"
	"github.com/restgen/restgen/internal/security"
	"github.com/restgen/restgen/internal/server"
	"github.com/restgen/restgen/internal/service"
	"github.com/restgen/restgen/internal/store"
	"github.com/restgen/restgen/migrations"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

// articleCreateSchema guards POST bodies of the example articles resource.
// Deployments define their own descriptors here or mount this binary as a
// library entrypoint.
var articleCreateSchema = schema.MustCompile(`{
	"type": "object",
	"properties": {
		"title": {"type": "string"},
		"body":  {"type": "string"}
	},
	"required": ["title"]
}`)

func main() {
	printBuildInfo()

	log := logger.NewLogger("restgen-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	ctx := context.Background()

	db, err := store.NewConnect(ctx, cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to database")
	}

	if err = migrations.Migrate(db.DB, cfg.Storage.DB.Driver); err != nil {
		log.Fatal().Err(err).Msg("error applying migrations")
	}

	storages := store.NewStorages(db, log)
	services := service.NewServices(*storages, *cfg, log)
	manager := security.NewManager(storages.UserRepository, cfg.App.Secret, !cfg.App.SkipTokenVerification, log)

	h := handler.NewHandler(services, manager, cfg.App, log)
	router := h.Init(
		handler.Resource{
			Name:         "articles",
			Prefix:       fmt.Sprintf("/api/%s/articles", cfg.App.APIVersion),
			Methods:      []string{handler.MethodQuery, handler.MethodGet, handler.MethodPost, handler.MethodPut, handler.MethodDelete},
			Service:      service.NewResourceService("articles", storages.ResourceRepository, log),
			CreateSchema: articleCreateSchema,
		},
	)

	srv, err := server.NewServer(router, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
