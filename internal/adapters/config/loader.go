// Package config provides the configuration loader for crate.
package config

import (
	"os"
	"path/filepath"

	"go.trai.ch/crate/internal/core/domain"
	"go.trai.ch/crate/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// DefaultFilename is the configuration file looked up in the working
// directory.
const DefaultFilename = "crate.yaml"

var _ ports.ConfigLoader = (*FileConfigLoader)(nil)

// FileConfigLoader implements ports.ConfigLoader using a YAML file.
type FileConfigLoader struct {
	Filename string
}

// NewLoader creates a loader for the default filename.
func NewLoader() *FileConfigLoader {
	return &FileConfigLoader{Filename: DefaultFilename}
}

// Load reads the configuration from the given working directory.
func (l *FileConfigLoader) Load(cwd string) (domain.Config, error) {
	return Load(filepath.Join(cwd, l.Filename))
}

// cratefile is the YAML structure of crate.yaml.
type cratefile struct {
	Version    string      `yaml:"version"`
	Sources    []sourceDTO `yaml:"sources"`
	Advisories string      `yaml:"advisories"`
	LockDir    string      `yaml:"lockDir"`
}

// sourceDTO is one source entry in the configuration. Entries are
// searched in file order.
type sourceDTO struct {
	Name   string   `yaml:"name"`
	Type   string   `yaml:"type"`
	Path   string   `yaml:"path"`
	Paths  []string `yaml:"paths"`
	Online bool     `yaml:"online"`
}

// Load reads a configuration file from the given path.
func Load(path string) (domain.Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return domain.Config{}, zerr.Wrap(err, "failed to read config file")
	}

	var cf cratefile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return domain.Config{}, zerr.Wrap(err, "failed to parse config file")
	}

	cfg := domain.Config{
		AdvisoriesPath: cf.Advisories,
		LockDir:        cf.LockDir,
	}
	if cfg.LockDir == "" {
		cfg.LockDir = "."
	}

	for i, dto := range cf.Sources {
		src, err := buildSource(dto, i)
		if err != nil {
			return domain.Config{}, err
		}
		cfg.Sources = append(cfg.Sources, src)
	}
	if len(cfg.Sources) == 0 {
		return domain.Config{}, zerr.New("config declares no package sources")
	}
	return cfg, nil
}

func buildSource(dto sourceDTO, index int) (domain.SourceConfig, error) {
	kind := domain.SourceKind(dto.Type)
	switch kind {
	case domain.SourceIndex, domain.SourceSQLite:
	default:
		err := zerr.With(zerr.New("unknown source type"), "type", dto.Type)
		return domain.SourceConfig{}, zerr.With(err, "source_index", index)
	}

	paths := dto.Paths
	if dto.Path != "" {
		paths = append([]string{dto.Path}, paths...)
	}
	if len(paths) == 0 {
		err := zerr.With(zerr.New("source declares no path"), "source_index", index)
		return domain.SourceConfig{}, err
	}
	if kind == domain.SourceSQLite && len(paths) > 1 {
		err := zerr.With(zerr.New("sqlite source takes a single path"), "source_index", index)
		return domain.SourceConfig{}, err
	}

	name := dto.Name
	if name == "" {
		name = dto.Type
	}

	return domain.SourceConfig{
		Name:   name,
		Kind:   kind,
		Paths:  paths,
		Online: dto.Online,
	}, nil
}
