// SPDX-License-Identifier: Apache-2.0

package config

// validate checks that the final merged [StructuredConfig] satisfies all
// invariants required before a server can start: a non-empty signing secret,
// a positive token TTL, a listen address, and a recognized database driver
// with a DSN.
//
// Returns nil if the configuration is valid, or a sentinel error otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.Secret == "" || cfg.App.TokenTTL <= 0 {
		return ErrInvalidAppConfigs
	}

	if cfg.Server.HTTPAddress == "" {
		return ErrInvalidServerConfigs
	}

	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	switch cfg.Storage.DB.Driver {
	case "pgx", "sqlite3":
	default:
		return ErrInvalidStorageConfigs
	}

	return nil
}
