package domain

import "go.trai.ch/zerr"

var (
	// ErrInvalidVersion is returned when a version string contains a non-numeric segment.
	ErrInvalidVersion = zerr.New("invalid version")

	// ErrInvalidConstraint is returned when a constraint piece does not start with a known operator.
	ErrInvalidConstraint = zerr.New("invalid constraint")

	// ErrDuplicatePackage is returned when a (name, version) pair is registered twice in a source.
	ErrDuplicatePackage = zerr.New("duplicate package")

	// ErrPackageNotFound is returned when a package name is unknown to a source.
	ErrPackageNotFound = zerr.New("package not found")

	// ErrVersionNotFound is returned when the name is known but the exact version is not.
	ErrVersionNotFound = zerr.New("version not found")

	// ErrConflict is returned by the solver when no version can satisfy the accumulated constraints.
	ErrConflict = zerr.New("version conflict")

	// ErrEnvExists is returned when creating an environment whose name is already in use.
	ErrEnvExists = zerr.New("environment already exists")

	// ErrEnvNotFound is returned when an environment name is unknown to the manager.
	ErrEnvNotFound = zerr.New("environment not found")

	// ErrNoCurrentEnv is returned when a mutating call is made with no environment selected.
	ErrNoCurrentEnv = zerr.New("no current environment")

	// ErrNotInstalled is returned when an installed-state query names a package that is not installed.
	ErrNotInstalled = zerr.New("package not installed")

	// ErrPackageRequired is returned when removing a package that surviving packages still depend on.
	ErrPackageRequired = zerr.New("package still required")

	// ErrSnapshotNotFound is returned when a rollback names an unknown snapshot id.
	ErrSnapshotNotFound = zerr.New("snapshot not found")
)
