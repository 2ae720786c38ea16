package envmgr

import (
	"go.trai.ch/crate/internal/core/domain"
	"go.trai.ch/zerr"
)

// Update pairs an installed version with the highest version any source
// knows for the same package.
type Update struct {
	Current domain.Version
	Latest  domain.Version
}

// Metadata describes one registered package version: its direct
// dependencies plus the full version history of its name.
type Metadata struct {
	Package domain.Package

	// History is the union of every version a source lists for the
	// name, the queried version itself, and every version of the name
	// reachable through the dependency graph rooted at the queried
	// package. Sorted ascending, stringified.
	History []string
}

// Explain walks the reason chain of an installed package up to its
// terminal "user" sentinel, e.g. [pkgB, pkgA, pkgC, user].
func (m *Manager) Explain(name string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	env, err := m.currentEnv()
	if err != nil {
		return nil, err
	}
	if _, ok := env.InstalledVersion(name); !ok {
		return nil, zerr.With(domain.ErrNotInstalled, "package", name)
	}

	chain := []string{name}
	current := name
	// The chain is bounded by the installed set; the guard protects
	// against a reason ring that should not occur.
	for range env.Len() + 1 {
		reason, ok := env.Reason(current)
		if !ok || reason == domain.ReasonUser {
			chain = append(chain, domain.ReasonUser)
			return chain, nil
		}
		chain = append(chain, reason)
		current = reason
	}
	return chain, nil
}

// AuditVulnerabilities cross-references the current environment's
// installed map against the advisory feed and returns every advisory
// whose (name, version) pair is installed verbatim.
func (m *Manager) AuditVulnerabilities() ([]domain.Advisory, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	env, err := m.currentEnv()
	if err != nil {
		return nil, err
	}
	if m.feed == nil {
		return nil, nil
	}

	advisories, err := m.feed.Advisories()
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load advisory feed")
	}

	var hits []domain.Advisory
	for _, adv := range advisories {
		installed, ok := env.InstalledVersion(adv.Name)
		if ok && installed.String() == adv.Version {
			hits = append(hits, adv)
		}
	}
	return hits, nil
}

// ListUpdates reports every installed package whose highest known
// version across all sources is strictly greater than the installed one.
func (m *Manager) ListUpdates() (map[string]Update, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	env, err := m.currentEnv()
	if err != nil {
		return nil, err
	}

	updates := make(map[string]Update)
	for name, current := range env.Installed() {
		latest, ok := m.highestKnown(name)
		if ok && current.Less(latest) {
			updates[name] = Update{Current: current, Latest: latest}
		}
	}
	return updates, nil
}

// ShowMetadata returns a package's direct dependencies plus its version
// history. The history walk is an explicit worklist with a visited set
// on (name, version) pairs, so self-referential dependency rings
// terminate.
func (m *Manager) ShowMetadata(name, version string) (Metadata, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	v, err := domain.ParseVersion(version)
	if err != nil {
		return Metadata{}, err
	}
	root, found := m.findPackage(name, v)
	if !found {
		err := zerr.With(domain.ErrPackageNotFound, "package", name)
		return Metadata{}, zerr.With(err, "version", version)
	}

	seen := make(map[string]bool)
	record := func(ver domain.Version) {
		seen[ver.String()] = true
	}

	for _, entry := range m.sources {
		for _, ver := range entry.Source.Versions(name) {
			record(ver)
		}
	}
	record(root.Version)

	type node struct {
		name    string
		version domain.Version
	}
	visited := map[string]bool{root.ID(): true}
	queue := []node{{name: root.Name, version: root.Version}}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		pkg, ok := m.findPackage(cur.name, cur.version)
		if !ok {
			continue
		}
		for _, dep := range pkg.Dependencies {
			constraints, err := domain.ParseConstraints(dep.Constraint)
			if err != nil {
				continue
			}
			depSpec := domain.Spec{Name: dep.Name, Constraints: constraints}
			for _, ver := range m.knownVersions(dep.Name) {
				if !depSpec.Satisfied(ver) {
					continue
				}
				if dep.Name == name {
					record(ver)
				}
				next := node{name: dep.Name, version: ver}
				key := dep.Name + "@" + ver.String()
				if !visited[key] {
					visited[key] = true
					queue = append(queue, next)
				}
			}
		}
	}

	history := make([]domain.Version, 0, len(seen))
	for vs := range seen {
		parsed, err := domain.ParseVersion(vs)
		if err != nil {
			continue
		}
		history = append(history, parsed)
	}
	domain.SortVersions(history)

	out := make([]string, len(history))
	for i, h := range history {
		out[i] = h.String()
	}
	return Metadata{Package: root, History: out}, nil
}

// Search queries every source, online ones included, and concatenates
// the matches in source priority order.
func (m *Manager) Search(substring string, spec *domain.Spec) []domain.Package {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []domain.Package
	for _, entry := range m.sources {
		out = append(out, entry.Source.Search(substring, spec)...)
	}
	return out
}

// TenantACL computes the access control token for a tenant, memoized:
// the first call computes and caches, later calls return the cached
// value. The miss counter increments only on computation.
func (m *Manager) TenantACL(tenant string) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	if acl, ok := m.acl[tenant]; ok {
		return acl
	}
	acl := "acl_for_" + tenant
	m.acl[tenant] = acl
	m.aclMisses++
	return acl
}

// ACLComputeCount returns how many tenant ACLs were actually computed,
// as opposed to served from cache.
func (m *Manager) ACLComputeCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.aclMisses
}

// highestKnown returns the greatest version any source lists for name.
func (m *Manager) highestKnown(name string) (domain.Version, bool) {
	var best domain.Version
	found := false
	for _, entry := range m.sources {
		for _, v := range entry.Source.Versions(name) {
			if !found || best.Less(v) {
				best = v
				found = true
			}
		}
	}
	return best, found
}

// knownVersions returns the union of versions across all sources,
// ascending and deduplicated.
func (m *Manager) knownVersions(name string) []domain.Version {
	seen := make(map[string]domain.Version)
	for _, entry := range m.sources {
		for _, v := range entry.Source.Versions(name) {
			seen[v.String()] = v
		}
	}
	out := make([]domain.Version, 0, len(seen))
	for _, v := range seen {
		out = append(out, v)
	}
	domain.SortVersions(out)
	return out
}

// Dependencies returns the direct dependency list of an installed
// package, resolved against the sources.
func (m *Manager) Dependencies(name string) ([]domain.Dependency, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	env, err := m.currentEnv()
	if err != nil {
		return nil, err
	}
	version, ok := env.InstalledVersion(name)
	if !ok {
		return nil, zerr.With(domain.ErrNotInstalled, "package", name)
	}
	pkg, found := m.findPackage(name, version)
	if !found {
		return nil, nil
	}
	return pkg.Dependencies, nil
}
