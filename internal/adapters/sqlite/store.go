// Package sqlite implements a SQLite-backed local package source.
package sqlite

import (
	"database/sql"
	"errors"
	"strings"

	_ "github.com/mattn/go-sqlite3" // sqlite3 driver
	"go.trai.ch/crate/internal/core/domain"
	"go.trai.ch/crate/internal/core/ports"
	"go.trai.ch/zerr"
)

var (
	_ ports.Source       = (*Store)(nil)
	_ ports.SourceWriter = (*Store)(nil)
)

// Store is a package source persisted in a local SQLite database. It is
// the natural offline source: populated once, then read-only from the
// solver's perspective.
type Store struct {
	db *sql.DB
}

// Open opens (creating if necessary) the database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to open package database"), "path", path)
	}

	s := &Store{db: db}
	if err := s.initSchema(); err != nil {
		_ = db.Close()
		return nil, zerr.With(zerr.Wrap(err, "failed to initialize schema"), "path", path)
	}
	return s, nil
}

func (s *Store) initSchema() error {
	schema := `
    CREATE TABLE IF NOT EXISTS packages (
        name TEXT NOT NULL,
        version TEXT NOT NULL,
        PRIMARY KEY (name, version)
    );

    CREATE TABLE IF NOT EXISTS dependencies (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        package_name TEXT NOT NULL,
        package_version TEXT NOT NULL,
        dependency_name TEXT NOT NULL,
        version_constraint TEXT NOT NULL DEFAULT '',
        FOREIGN KEY (package_name, package_version)
            REFERENCES packages(name, version) ON DELETE CASCADE
    );
    `
	_, err := s.db.Exec(schema)
	return err
}

// Add registers a package transactionally, failing with
// domain.ErrDuplicatePackage when (name, version) is already present.
func (s *Store) Add(pkg domain.Package) error {
	tx, err := s.db.Begin()
	if err != nil {
		return zerr.Wrap(err, "failed to begin transaction")
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	version := pkg.Version.String()
	if _, err := tx.Exec(
		"INSERT INTO packages (name, version) VALUES (?, ?)",
		pkg.Name, version,
	); err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return zerr.With(domain.ErrDuplicatePackage, "package", pkg.ID())
		}
		return zerr.With(zerr.Wrap(err, "failed to insert package"), "package", pkg.ID())
	}

	for _, dep := range pkg.Dependencies {
		if _, err := tx.Exec(`
            INSERT INTO dependencies (package_name, package_version, dependency_name, version_constraint)
            VALUES (?, ?, ?, ?)`,
			pkg.Name, version, dep.Name, dep.Constraint,
		); err != nil {
			return zerr.With(zerr.Wrap(err, "failed to insert dependency"), "package", pkg.ID())
		}
	}

	return tx.Commit()
}

// Get performs an exact (name, version) lookup.
func (s *Store) Get(name, version string) (domain.Package, error) {
	var found string
	err := s.db.QueryRow(
		"SELECT version FROM packages WHERE name = ? AND version = ?",
		name, version,
	).Scan(&found)
	if errors.Is(err, sql.ErrNoRows) {
		if !s.hasName(name) {
			return domain.Package{}, zerr.With(domain.ErrPackageNotFound, "package", name)
		}
		e := zerr.With(domain.ErrVersionNotFound, "package", name)
		return domain.Package{}, zerr.With(e, "version", version)
	}
	if err != nil {
		return domain.Package{}, zerr.Wrap(err, "failed to query package")
	}

	parsed, err := domain.ParseVersion(version)
	if err != nil {
		return domain.Package{}, err
	}
	deps, err := s.dependencies(name, version)
	if err != nil {
		return domain.Package{}, err
	}
	return domain.Package{Name: name, Version: parsed, Dependencies: deps}, nil
}

// Versions returns all stored versions for a name, ascending.
func (s *Store) Versions(name string) []domain.Version {
	rows, err := s.db.Query("SELECT version FROM packages WHERE name = ?", name)
	if err != nil {
		return nil
	}
	defer rows.Close() //nolint:errcheck // read-only cursor

	var out []domain.Version
	for rows.Next() {
		var vs string
		if err := rows.Scan(&vs); err != nil {
			return nil
		}
		v, err := domain.ParseVersion(vs)
		if err != nil {
			continue
		}
		out = append(out, v)
	}
	if rows.Err() != nil {
		return nil
	}
	domain.SortVersions(out)
	return out
}

// Search returns every package whose name contains the substring
// (case-insensitive), filtered by the spec when given.
func (s *Store) Search(substring string, spec *domain.Spec) []domain.Package {
	rows, err := s.db.Query(
		"SELECT DISTINCT name FROM packages WHERE instr(lower(name), lower(?)) > 0 ORDER BY name",
		substring,
	)
	if err != nil {
		return nil
	}
	defer rows.Close() //nolint:errcheck // read-only cursor

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil
		}
		names = append(names, name)
	}
	if rows.Err() != nil {
		return nil
	}

	var out []domain.Package
	for _, name := range names {
		for _, v := range s.Versions(name) {
			if spec != nil && !spec.Satisfied(v) {
				continue
			}
			pkg, err := s.Get(name, v.String())
			if err != nil {
				continue
			}
			out = append(out, pkg)
		}
	}
	return out
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) hasName(name string) bool {
	var exists bool
	err := s.db.QueryRow("SELECT EXISTS(SELECT 1 FROM packages WHERE name = ?)", name).Scan(&exists)
	return err == nil && exists
}

func (s *Store) dependencies(name, version string) ([]domain.Dependency, error) {
	rows, err := s.db.Query(`
        SELECT dependency_name, version_constraint FROM dependencies
        WHERE package_name = ? AND package_version = ?
        ORDER BY id`,
		name, version,
	)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to query dependencies")
	}
	defer rows.Close() //nolint:errcheck // read-only cursor

	var deps []domain.Dependency
	for rows.Next() {
		var dep domain.Dependency
		if err := rows.Scan(&dep.Name, &dep.Constraint); err != nil {
			return nil, zerr.Wrap(err, "failed to scan dependency")
		}
		deps = append(deps, dep)
	}
	return deps, rows.Err()
}
