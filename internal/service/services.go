// SPDX-License-Identifier: Apache-2.0

package service

import (
	"github.com/restgen/restgen/internal/config"
	"github.com/restgen/restgen/internal/logger"
	"github.com/restgen/restgen/internal/store"
)

type Services struct {
	TokenService TokenService
}

func NewServices(storages store.Storages, cfg config.StructuredConfig, logger *logger.Logger) *Services {
	return &Services{
		TokenService: NewTokenService(storages.UserRepository, cfg.App, logger),
	}
}
