// Package lockfile implements the on-disk lockfile store.
package lockfile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.trai.ch/crate/internal/core/domain"
	"go.trai.ch/crate/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	dirPerm  = 0o750
	filePerm = 0o600
)

var _ ports.LockfileStore = (*FileStore)(nil)

// FileStore persists lockfiles as flat JSON objects under a directory,
// one file per environment.
type FileStore struct {
	dir string
	log ports.Logger
}

// NewFileStore creates a store rooted at dir.
func NewFileStore(dir string, log ports.Logger) *FileStore {
	return &FileStore{dir: dir, log: log}
}

// Write persists the lockfile for the named environment. The on-disk
// shape is exactly the flat name -> version map.
func (s *FileStore) Write(envName string, lf domain.Lockfile) error {
	if err := os.MkdirAll(s.dir, dirPerm); err != nil {
		return zerr.Wrap(err, "failed to create lockfile directory")
	}

	data, err := json.MarshalIndent(lf.Packages, "", "  ")
	if err != nil {
		return zerr.Wrap(err, "failed to encode lockfile")
	}

	path := s.path(envName)
	if err := os.WriteFile(path, data, filePerm); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to write lockfile"), "path", path)
	}
	if s.log != nil {
		s.log.Info("wrote lockfile",
			"path", path,
			"packages", len(lf.Packages),
			"digest", fmt.Sprintf("%016x", lf.Digest()),
		)
	}
	return nil
}

// Read loads the lockfile previously written for the named environment.
func (s *FileStore) Read(envName string) (domain.Lockfile, error) {
	path := s.path(envName)
	data, err := os.ReadFile(path) //nolint:gosec // path is derived from the configured lock dir
	if err != nil {
		return domain.Lockfile{}, zerr.With(zerr.Wrap(err, "failed to read lockfile"), "path", path)
	}

	var packages map[string]string
	if err := json.Unmarshal(data, &packages); err != nil {
		return domain.Lockfile{}, zerr.With(zerr.Wrap(err, "failed to parse lockfile"), "path", path)
	}
	return domain.Lockfile{Packages: packages}, nil
}

func (s *FileStore) path(envName string) string {
	return filepath.Join(s.dir, envName+".lock.json")
}
