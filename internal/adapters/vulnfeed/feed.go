// Package vulnfeed implements the vulnerability feed from a JSON file
// keyed by advisory id.
package vulnfeed

import (
	"encoding/json"
	"os"
	"slices"
	"strings"

	"go.trai.ch/crate/internal/core/domain"
	"go.trai.ch/crate/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.VulnerabilityFeed = (*FileFeed)(nil)

// FileFeed reads advisories from a JSON file of the shape
//
//	{"CVE-2020-0001": {"name": "packageB", "version": "1.0"}}
//
// The file is read on every call: the feed is external and may change
// between scans.
type FileFeed struct {
	path string
}

// NewFileFeed creates a feed backed by the given file.
func NewFileFeed(path string) *FileFeed {
	return &FileFeed{path: path}
}

type advisoryDTO struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// Advisories loads and returns the advisory list, sorted by id.
func (f *FileFeed) Advisories() ([]domain.Advisory, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to read advisory feed"), "path", f.path)
	}

	var entries map[string]advisoryDTO
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to parse advisory feed"), "path", f.path)
	}

	out := make([]domain.Advisory, 0, len(entries))
	for id, dto := range entries {
		out = append(out, domain.Advisory{
			ID:      id,
			Name:    dto.Name,
			Version: dto.Version,
		})
	}
	slices.SortFunc(out, func(a, b domain.Advisory) int {
		return strings.Compare(a.ID, b.ID)
	})
	return out, nil
}
