package domain

// SourceKind identifies the backing store of a configured package source.
type SourceKind string

const (
	// SourceIndex is an in-memory source populated from YAML index files.
	SourceIndex SourceKind = "index"

	// SourceSQLite is a local SQLite-backed source.
	SourceSQLite SourceKind = "sqlite"
)

// SourceConfig describes one configured package source. Sources are
// searched in the order they appear in the configuration.
type SourceConfig struct {
	// Name is a label for diagnostics.
	Name string

	// Kind selects the adapter backing this source.
	Kind SourceKind

	// Paths are the index files (SourceIndex) or the database file
	// (SourceSQLite, single entry).
	Paths []string

	// Online marks a source that is skipped in offline mode.
	Online bool
}

// Config is the loaded crate configuration.
type Config struct {
	// Sources lists package sources in priority order.
	Sources []SourceConfig

	// AdvisoriesPath is the JSON vulnerability feed, empty if none.
	AdvisoriesPath string

	// LockDir is the directory lockfiles are written to.
	LockDir string
}
