package http

import (
	"github.com/restgen/restgen/internal/config"
	"github.com/restgen/restgen/internal/logger"
	"github.com/restgen/restgen/internal/security"
	"github.com/restgen/restgen/internal/service"
)

type Handler struct {
	services *service.Services
	security *security.Manager

	// apiVersion is the version segment of the token API URL.
	apiVersion string

	logger *logger.Logger
}

func NewHandler(services *service.Services, security *security.Manager, cfg config.App, logger *logger.Logger) *Handler {
	logger.Info().Str("api_version", cfg.APIVersion).Msg("http handler created")
	return &Handler{
		services:   services,
		security:   security,
		apiVersion: cfg.APIVersion,
		logger:     logger,
	}
}
