// Package memory implements an in-memory package source populated from
// YAML index files.
package memory

import (
	"slices"
	"strings"

	"go.trai.ch/crate/internal/core/domain"
	"go.trai.ch/crate/internal/core/ports"
	"go.trai.ch/zerr"
)

var (
	_ ports.Source       = (*Registry)(nil)
	_ ports.SourceWriter = (*Registry)(nil)
)

// Registry holds packages keyed by name and indexed by version string.
// It is mutable through Add during population and read-only afterwards.
type Registry struct {
	packages map[string]map[string]domain.Package
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		packages: make(map[string]map[string]domain.Package),
	}
}

// Add registers a package, failing on a (name, version) collision.
func (r *Registry) Add(pkg domain.Package) error {
	versions, ok := r.packages[pkg.Name]
	if !ok {
		versions = make(map[string]domain.Package)
		r.packages[pkg.Name] = versions
	}
	key := pkg.Version.String()
	if _, exists := versions[key]; exists {
		return zerr.With(domain.ErrDuplicatePackage, "package", pkg.ID())
	}
	versions[key] = pkg
	return nil
}

// Get performs an exact (name, version) lookup, distinguishing an
// unknown name from an unknown version of a known name.
func (r *Registry) Get(name, version string) (domain.Package, error) {
	versions, ok := r.packages[name]
	if !ok {
		return domain.Package{}, zerr.With(domain.ErrPackageNotFound, "package", name)
	}
	pkg, ok := versions[version]
	if !ok {
		err := zerr.With(domain.ErrVersionNotFound, "package", name)
		return domain.Package{}, zerr.With(err, "version", version)
	}
	return pkg, nil
}

// Versions returns all known versions for a name, ascending.
func (r *Registry) Versions(name string) []domain.Version {
	versions := r.packages[name]
	out := make([]domain.Version, 0, len(versions))
	for _, pkg := range versions {
		out = append(out, pkg.Version)
	}
	domain.SortVersions(out)
	return out
}

// Search returns every package whose name contains the substring
// (case-insensitive) and whose version satisfies the spec when given.
func (r *Registry) Search(substring string, spec *domain.Spec) []domain.Package {
	needle := strings.ToLower(substring)

	var names []string
	for name := range r.packages {
		if strings.Contains(strings.ToLower(name), needle) {
			names = append(names, name)
		}
	}
	// Map iteration order is random; sort for a stable result.
	slices.Sort(names)

	var out []domain.Package
	for _, name := range names {
		for _, v := range r.Versions(name) {
			if spec != nil && !spec.Satisfied(v) {
				continue
			}
			out = append(out, r.packages[name][v.String()])
		}
	}
	return out
}
