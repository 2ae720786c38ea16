// Package envmgr implements the environment manager: named installation
// targets mutated through install, remove, rollback and lockfile import.
package envmgr

import (
	"slices"
	"strings"
	"sync"
	"time"

	"go.trai.ch/crate/internal/core/domain"
	"go.trai.ch/crate/internal/core/ports"
	"go.trai.ch/crate/internal/engine/solver"
	"go.trai.ch/zerr"
)

// Manager orchestrates environments. Every mutating operation is atomic
// from the caller's point of view: either the full plan is applied or
// the environment is left exactly as it was.
type Manager struct {
	mu      sync.Mutex
	envs    map[string]*domain.Environment
	current string

	solver  *solver.Solver
	sources []ports.SourceEntry
	feed    ports.VulnerabilityFeed
	log     ports.Logger
	now     func() time.Time

	acl       map[string]string
	aclMisses int
}

// Option configures a Manager.
type Option func(*Manager)

// WithClock overrides the snapshot timestamp source.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		m.now = now
	}
}

// New creates a Manager over the given solver and sources. The feed may
// be nil, in which case vulnerability scans report nothing.
func New(s *solver.Solver, sources []ports.SourceEntry, feed ports.VulnerabilityFeed, log ports.Logger, opts ...Option) *Manager {
	m := &Manager{
		envs:    make(map[string]*domain.Environment),
		solver:  s,
		sources: sources,
		feed:    feed,
		log:     log,
		now:     time.Now,
		acl:     make(map[string]string),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// CreateEnv creates a new, empty environment.
func (m *Manager) CreateEnv(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.envs[name]; exists {
		return zerr.With(domain.ErrEnvExists, "environment", name)
	}
	m.envs[name] = domain.NewEnvironment(name)
	return nil
}

// DeleteEnv removes an environment. Deleting the current environment
// resets the current selection to none.
func (m *Manager) DeleteEnv(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.envs[name]; !exists {
		return zerr.With(domain.ErrEnvNotFound, "environment", name)
	}
	delete(m.envs, name)
	if m.current == name {
		m.current = ""
	}
	return nil
}

// SwitchEnv selects the current environment.
func (m *Manager) SwitchEnv(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.envs[name]; !exists {
		return zerr.With(domain.ErrEnvNotFound, "environment", name)
	}
	m.current = name
	return nil
}

// CurrentEnv returns the name of the current environment, empty if none
// is selected.
func (m *Manager) CurrentEnv() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// Environments returns all environment names, sorted.
func (m *Manager) Environments() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	names := make([]string, 0, len(m.envs))
	for name := range m.envs {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Install resolves the requested package against the configured sources
// and applies the plan to the current environment. The directly
// requested package's reason is "user"; every transitively installed
// package's reason is its immediate requester. A snapshot is taken
// after success.
func (m *Manager) Install(name, constraintStr string, offline bool) (*domain.Plan, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	env, err := m.currentEnv()
	if err != nil {
		return nil, err
	}

	constraints, err := domain.ParseConstraints(constraintStr)
	if err != nil {
		return nil, err
	}
	spec := domain.Spec{Name: name, Constraints: constraints}

	plan, err := m.solver.Resolve([]domain.Spec{spec}, env.Installed(), offline)
	if err != nil {
		return nil, err
	}

	for _, pkgName := range plan.Order {
		reason := plan.Requesters[pkgName]
		if reason == "" {
			reason = domain.ReasonUser
		}
		env.Set(pkgName, plan.Versions[pkgName], reason)
	}

	// A direct request for an already satisfied package produces an
	// empty plan; it still promotes the package to a user install.
	if _, planned := plan.Versions[name]; !planned {
		env.SetReason(name, domain.ReasonUser)
	}

	snap := env.TakeSnapshot(m.now())
	m.log.Info("installed package",
		"environment", env.Name(),
		"package", name,
		"planned", plan.Len(),
		"snapshot", snap.ID,
	)
	return plan, nil
}

// Remove uninstalls a package along with every package whose reason
// chain resolves only through it. Packages still required by a
// surviving package stay installed and are re-parented to a surviving
// requester. Removing a package that surviving packages depend on fails
// with ErrPackageRequired.
func (m *Manager) Remove(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	env, err := m.currentEnv()
	if err != nil {
		return err
	}
	if _, ok := env.InstalledVersion(name); !ok {
		return zerr.With(domain.ErrNotInstalled, "package", name)
	}

	if dependents := m.dependentsOf(env, name); len(dependents) > 0 {
		err := zerr.With(domain.ErrPackageRequired, "package", name)
		return zerr.With(err, "required_by", strings.Join(dependents, ", "))
	}

	removed := map[string]bool{name: true}
	env.Unset(name)
	m.sweepOrphans(env, removed)

	snap := env.TakeSnapshot(m.now())
	m.log.Info("removed package",
		"environment", env.Name(),
		"package", name,
		"snapshot", snap.ID,
	)
	return nil
}

// sweepOrphans walks packages whose recorded requester was removed:
// a package still required by a survivor is re-parented to that
// survivor, everything else is removed and swept in turn.
func (m *Manager) sweepOrphans(env *domain.Environment, removed map[string]bool) {
	for {
		changed := false
		for _, pkgName := range sortedNames(env.Installed()) {
			reason, _ := env.Reason(pkgName)
			if reason == domain.ReasonUser || !removed[reason] {
				continue
			}
			if dependents := m.dependentsOf(env, pkgName); len(dependents) > 0 {
				env.SetReason(pkgName, dependents[0])
				continue
			}
			env.Unset(pkgName)
			removed[pkgName] = true
			changed = true
		}
		if !changed {
			return
		}
	}
}

// dependentsOf returns the sorted names of installed packages whose
// dependency list matches the installed version of name.
func (m *Manager) dependentsOf(env *domain.Environment, name string) []string {
	target, ok := env.InstalledVersion(name)
	if !ok {
		return nil
	}

	var dependents []string
	for other, version := range env.Installed() {
		if other == name {
			continue
		}
		pkg, found := m.findPackage(other, version)
		if !found {
			continue
		}
		for _, dep := range pkg.Dependencies {
			if dep.Name != name {
				continue
			}
			constraints, err := domain.ParseConstraints(dep.Constraint)
			if err != nil {
				continue
			}
			if (domain.Spec{Name: name, Constraints: constraints}).Satisfied(target) {
				dependents = append(dependents, other)
				break
			}
		}
	}
	slices.Sort(dependents)
	return dependents
}

// Freeze exports the current environment's installed state.
func (m *Manager) Freeze() (domain.Lockfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	env, err := m.currentEnv()
	if err != nil {
		return domain.Lockfile{}, err
	}
	return domain.LockfileFrom(env), nil
}

// ApplyLockfile replaces the current environment's installed set
// wholesale with the lockfile contents. Every entry's reason becomes
// "user": provenance is intentionally not reconstructed from a flat
// lockfile. A snapshot is taken after success.
func (m *Manager) ApplyLockfile(lf domain.Lockfile) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	env, err := m.currentEnv()
	if err != nil {
		return err
	}

	installed, err := lf.Resolve()
	if err != nil {
		return err
	}
	env.Replace(installed)

	snap := env.TakeSnapshot(m.now())
	m.log.Info("applied lockfile",
		"environment", env.Name(),
		"packages", len(installed),
		"snapshot", snap.ID,
	)
	return nil
}

// Snapshots returns the snapshot history of the named environment,
// oldest first.
func (m *Manager) Snapshots(envName string) ([]domain.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	env, exists := m.envs[envName]
	if !exists {
		return nil, zerr.With(domain.ErrEnvNotFound, "environment", envName)
	}
	return env.Snapshots(), nil
}

// Rollback restores the named environment's installed state from a
// snapshot. Reasons for all restored entries become "user".
func (m *Manager) Rollback(envName string, snapshotID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	env, exists := m.envs[envName]
	if !exists {
		return zerr.With(domain.ErrEnvNotFound, "environment", envName)
	}
	if err := env.Rollback(snapshotID); err != nil {
		return err
	}
	m.log.Info("rolled back environment",
		"environment", envName,
		"snapshot", snapshotID,
	)
	return nil
}

// List returns the installed (name, version) pairs of the current
// environment, sorted by name.
func (m *Manager) List() ([]domain.Package, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	env, err := m.currentEnv()
	if err != nil {
		return nil, err
	}

	installed := env.Installed()
	out := make([]domain.Package, 0, len(installed))
	for _, name := range sortedNames(installed) {
		out = append(out, domain.Package{Name: name, Version: installed[name]})
	}
	return out, nil
}

// IsInstalled reports whether a package is installed in the current
// environment.
func (m *Manager) IsInstalled(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	env, err := m.currentEnv()
	if err != nil {
		return false
	}
	_, ok := env.InstalledVersion(name)
	return ok
}

// currentEnv returns the selected environment. Callers must hold m.mu.
func (m *Manager) currentEnv() (*domain.Environment, error) {
	if m.current == "" {
		return nil, domain.ErrNoCurrentEnv
	}
	env, exists := m.envs[m.current]
	if !exists {
		return nil, zerr.With(domain.ErrEnvNotFound, "environment", m.current)
	}
	return env, nil
}

// findPackage locates a package record across the sources in priority
// order. Packages imported from a lockfile may not exist in any source;
// callers treat them as dependency-free.
func (m *Manager) findPackage(name string, version domain.Version) (domain.Package, bool) {
	for _, entry := range m.sources {
		pkg, err := entry.Source.Get(name, version.String())
		if err == nil {
			return pkg, true
		}
	}
	return domain.Package{}, false
}

func sortedNames(installed map[string]domain.Version) []string {
	names := make([]string, 0, len(installed))
	for name := range installed {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
