package memory

import (
	"os"
	"runtime"

	"go.trai.ch/crate/internal/core/domain"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

// indexFile is the YAML shape of one package index file.
type indexFile struct {
	Packages []packageDTO `yaml:"packages"`
}

// packageDTO is one package entry in an index file.
type packageDTO struct {
	Name         string   `yaml:"name"`
	Version      string   `yaml:"version"`
	Dependencies []string `yaml:"dependencies"`
}

// Load reads the given index files into a fresh registry. Files are
// parsed concurrently; registration happens in path order so duplicate
// errors are deterministic.
func Load(paths ...string) (*Registry, error) {
	parsed := make([]indexFile, len(paths))

	g := new(errgroup.Group)
	g.SetLimit(runtime.NumCPU())

	for i, path := range paths {
		g.Go(func() error {
			data, err := os.ReadFile(path) //nolint:gosec // path comes from the user's config
			if err != nil {
				return zerr.Wrap(err, "failed to read index file")
			}
			var idx indexFile
			if err := yaml.Unmarshal(data, &idx); err != nil {
				return zerr.With(zerr.Wrap(err, "failed to parse index file"), "path", path)
			}
			// Each goroutine writes its own slice slot.
			parsed[i] = idx
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	r := NewRegistry()
	for i, idx := range parsed {
		for _, dto := range idx.Packages {
			pkg, err := buildPackage(dto)
			if err != nil {
				return nil, zerr.With(err, "path", paths[i])
			}
			if err := r.Add(pkg); err != nil {
				return nil, zerr.With(err, "path", paths[i])
			}
		}
	}
	return r, nil
}

func buildPackage(dto packageDTO) (domain.Package, error) {
	version, err := domain.ParseVersion(dto.Version)
	if err != nil {
		return domain.Package{}, zerr.With(err, "package", dto.Name)
	}

	deps := make([]domain.Dependency, 0, len(dto.Dependencies))
	for _, depStr := range dto.Dependencies {
		dep, err := domain.ParseDependency(depStr)
		if err != nil {
			return domain.Package{}, zerr.With(err, "package", dto.Name)
		}
		deps = append(deps, dep)
	}

	return domain.Package{
		Name:         dto.Name,
		Version:      version,
		Dependencies: deps,
	}, nil
}
