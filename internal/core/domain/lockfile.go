package domain

import (
	"slices"

	"github.com/cespare/xxhash/v2"
)

// Lockfile is a flat name -> version-string mapping representing exactly
// one environment's installed state at export time.
type Lockfile struct {
	// Packages maps package names to version strings.
	Packages map[string]string
}

// LockfileFrom exports an environment's installed state.
func LockfileFrom(env *Environment) Lockfile {
	packages := make(map[string]string, env.Len())
	for name, version := range env.Installed() {
		packages[name] = version.String()
	}
	return Lockfile{Packages: packages}
}

// Resolve parses every version string in the lockfile into an installed
// map, failing on the first malformed entry.
func (l Lockfile) Resolve() (map[string]Version, error) {
	installed := make(map[string]Version, len(l.Packages))
	for name, vs := range l.Packages {
		v, err := ParseVersion(vs)
		if err != nil {
			return nil, err
		}
		installed[name] = v
	}
	return installed, nil
}

// Digest computes a deterministic content hash of the lockfile,
// independent of map iteration order.
func (l Lockfile) Digest() uint64 {
	names := make([]string, 0, len(l.Packages))
	for name := range l.Packages {
		names = append(names, name)
	}
	slices.Sort(names)

	h := xxhash.New()
	for _, name := range names {
		_, _ = h.WriteString(name)
		_, _ = h.WriteString("=")
		_, _ = h.WriteString(l.Packages[name])
		_, _ = h.WriteString(";")
	}
	return h.Sum64()
}
