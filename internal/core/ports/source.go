// Package ports defines the core interfaces for the application.
package ports

import "go.trai.ch/crate/internal/core/domain"

// Source is the read side of a package registry: an addressable
// collection of packages keyed by name and indexed by version. Sources
// are read-only from the solver's perspective and may be shared across
// concurrent readers once populated.
//
//go:generate go run go.uber.org/mock/mockgen -source=source.go -destination=mocks/mock_source.go -package=mocks
type Source interface {
	// Get performs an exact (name, version) lookup. An unknown name
	// fails with domain.ErrPackageNotFound, a known name with an
	// unknown version with domain.ErrVersionNotFound.
	Get(name, version string) (domain.Package, error)

	// Versions returns all known versions for a name, ascending.
	// Unknown names yield an empty slice.
	Versions(name string) []domain.Version

	// Search returns every package whose name contains the substring
	// (case-insensitive) and, when spec is non-nil, whose version
	// satisfies it.
	Search(substring string, spec *domain.Spec) []domain.Package
}

// SourceWriter is the population side of a source, used by loaders.
type SourceWriter interface {
	// Add registers a package. A (name, version) collision fails with
	// domain.ErrDuplicatePackage and leaves the source unchanged.
	Add(pkg domain.Package) error
}

// SourceEntry pairs a source with its online flag. The solver searches
// entries in slice order and skips online entries in offline mode.
type SourceEntry struct {
	Name   string
	Source Source
	Online bool
}
