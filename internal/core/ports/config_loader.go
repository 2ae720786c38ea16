package ports

import "go.trai.ch/crate/internal/core/domain"

// ConfigLoader loads the crate configuration.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the configuration from the given working directory.
	Load(cwd string) (domain.Config, error)
}
