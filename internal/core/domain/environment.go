package domain

import (
	"maps"
	"time"

	"go.trai.ch/zerr"
)

// ReasonUser marks a package that was requested directly rather than
// pulled in as a dependency. It terminates every reason chain.
const ReasonUser = "user"

// Environment is a named, independent installation target. The installed
// and reason maps are always updated together: every installed package
// has a reason, either ReasonUser or the name of its immediate requester.
type Environment struct {
	name       string
	installed  map[string]Version
	reasons    map[string]string
	snapshots  []Snapshot
	nextSnapID int
}

// Snapshot is an immutable deep copy of an environment's installed map,
// with a per-environment monotonically increasing id.
type Snapshot struct {
	ID        int
	Taken     time.Time
	Installed map[string]Version
}

// NewEnvironment creates an empty environment.
func NewEnvironment(name string) *Environment {
	return &Environment{
		name:       name,
		installed:  make(map[string]Version),
		reasons:    make(map[string]string),
		nextSnapID: 1,
	}
}

// Name returns the environment name.
func (e *Environment) Name() string {
	return e.name
}

// Installed returns a copy of the installed map.
func (e *Environment) Installed() map[string]Version {
	return maps.Clone(e.installed)
}

// InstalledVersion returns the installed version of a package, if any.
func (e *Environment) InstalledVersion(name string) (Version, bool) {
	v, ok := e.installed[name]
	return v, ok
}

// Reason returns the install reason of a package, if installed.
func (e *Environment) Reason(name string) (string, bool) {
	r, ok := e.reasons[name]
	return r, ok
}

// Set records a package as installed with the given reason, updating
// both maps together.
func (e *Environment) Set(name string, version Version, reason string) {
	e.installed[name] = version
	e.reasons[name] = reason
}

// SetReason rewrites the reason of an already installed package.
func (e *Environment) SetReason(name, reason string) {
	if _, ok := e.installed[name]; ok {
		e.reasons[name] = reason
	}
}

// Unset removes a package from both maps.
func (e *Environment) Unset(name string) {
	delete(e.installed, name)
	delete(e.reasons, name)
}

// Len returns the number of installed packages.
func (e *Environment) Len() int {
	return len(e.installed)
}

// Replace swaps the installed set wholesale, marking every entry's
// reason as ReasonUser. Used by lockfile import and rollback, where
// provenance is intentionally not reconstructed.
func (e *Environment) Replace(installed map[string]Version) {
	e.installed = maps.Clone(installed)
	e.reasons = make(map[string]string, len(installed))
	for name := range installed {
		e.reasons[name] = ReasonUser
	}
}

// TakeSnapshot records a deep copy of the current installed map and
// returns it. Later mutation of the environment does not affect the
// snapshot.
func (e *Environment) TakeSnapshot(now time.Time) Snapshot {
	snap := Snapshot{
		ID:        e.nextSnapID,
		Taken:     now,
		Installed: maps.Clone(e.installed),
	}
	e.nextSnapID++
	e.snapshots = append(e.snapshots, snap)
	return snap
}

// Snapshots returns the snapshot history, oldest first.
func (e *Environment) Snapshots() []Snapshot {
	out := make([]Snapshot, len(e.snapshots))
	copy(out, e.snapshots)
	return out
}

// Rollback restores the installed map from the named snapshot. Reasons
// for all restored entries become ReasonUser.
func (e *Environment) Rollback(snapshotID int) error {
	for _, snap := range e.snapshots {
		if snap.ID == snapshotID {
			e.Replace(snap.Installed)
			return nil
		}
	}
	err := zerr.With(ErrSnapshotNotFound, "environment", e.name)
	return zerr.With(err, "snapshot_id", snapshotID)
}
