// Package domain contains the core domain models for package resolution
// and environment state.
package domain

import (
	"slices"
	"strconv"
	"strings"

	"go.trai.ch/zerr"
)

// Version is an ordered sequence of non-negative integers parsed from a
// dotted string. It is a value type: created once, never mutated.
type Version struct {
	parts []int
}

// ParseVersion parses a dotted numeric version string.
// Every dot-separated segment must be a non-negative integer; anything
// else fails with ErrInvalidVersion.
func ParseVersion(s string) (Version, error) {
	if s == "" {
		return Version{}, zerr.With(ErrInvalidVersion, "version", s)
	}
	segments := strings.Split(s, ".")
	parts := make([]int, len(segments))
	for i, seg := range segments {
		n, err := strconv.Atoi(seg)
		if err != nil || n < 0 {
			return Version{}, zerr.With(zerr.With(ErrInvalidVersion, "version", s), "segment", seg)
		}
		parts[i] = n
	}
	return Version{parts: parts}, nil
}

// MustVersion parses a version string and panics on failure.
// Intended for literals in tests and fixtures.
func MustVersion(s string) Version {
	v, err := ParseVersion(s)
	if err != nil {
		panic(err)
	}
	return v
}

// Compare orders two versions component-wise after zero-padding the
// shorter one, so "1.0" compares equal to "1.0.0".
// It returns -1, 0 or 1.
func (v Version) Compare(other Version) int {
	n := max(len(v.parts), len(other.parts))
	for i := range n {
		a, b := 0, 0
		if i < len(v.parts) {
			a = v.parts[i]
		}
		if i < len(other.parts) {
			b = other.parts[i]
		}
		if a != b {
			if a < b {
				return -1
			}
			return 1
		}
	}
	return 0
}

// Equal reports whether two versions compare equal under the
// zero-padding rule.
func (v Version) Equal(other Version) bool {
	return v.Compare(other) == 0
}

// Less reports whether v orders strictly before other.
func (v Version) Less(other Version) bool {
	return v.Compare(other) < 0
}

// IsZero reports whether the version is the uninitialized zero value,
// as opposed to a parsed "0" or "0.0".
func (v Version) IsZero() bool {
	return v.parts == nil
}

// String reconstitutes the dotted form of the version.
func (v Version) String() string {
	if v.parts == nil {
		return ""
	}
	segs := make([]string, len(v.parts))
	for i, p := range v.parts {
		segs[i] = strconv.Itoa(p)
	}
	return strings.Join(segs, ".")
}

// SortVersions orders versions ascending in place.
func SortVersions(versions []Version) {
	slices.SortFunc(versions, Version.Compare)
}
