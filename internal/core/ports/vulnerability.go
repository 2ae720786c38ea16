package ports

import "go.trai.ch/crate/internal/core/domain"

// VulnerabilityFeed supplies the advisory list an environment's
// installed set is cross-referenced against. The manager only needs
// read access at the moment of a scan.
//
//go:generate go run go.uber.org/mock/mockgen -source=vulnerability.go -destination=mocks/mock_vulnerability.go -package=mocks
type VulnerabilityFeed interface {
	// Advisories returns the current advisory list.
	Advisories() ([]domain.Advisory, error)
}
