package ports

import "go.trai.ch/crate/internal/core/domain"

// LockfileStore persists lockfiles. The on-disk shape is a flat
// name -> version-string object; no nested metadata.
//
//go:generate go run go.uber.org/mock/mockgen -source=lockfile_store.go -destination=mocks/mock_lockfile_store.go -package=mocks
type LockfileStore interface {
	// Write persists the lockfile for the named environment.
	Write(envName string, lf domain.Lockfile) error

	// Read loads the lockfile previously written for the named
	// environment.
	Read(envName string) (domain.Lockfile, error)
}
