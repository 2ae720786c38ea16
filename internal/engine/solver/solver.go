// Package solver implements dependency resolution over prioritized
// package sources.
package solver

import (
	"maps"
	"strings"

	"go.trai.ch/crate/internal/core/domain"
	"go.trai.ch/crate/internal/core/ports"
	"go.trai.ch/zerr"
)

// Solver turns a set of root specs into a resolution plan. The strategy
// is per-package-highest-satisfying, depth-first: no backtracking across
// alternative versions of the same package.
type Solver struct {
	sources []ports.SourceEntry
	log     ports.Logger
}

// New creates a Solver over the given sources, searched in slice order.
func New(sources []ports.SourceEntry, log ports.Logger) *Solver {
	return &Solver{
		sources: sources,
		log:     log,
	}
}

// Resolve computes a plan satisfying every root spec plus all transitive
// dependencies. The resolved map is seeded with preinstalled versions:
// those are treated as fixed, re-verified against any new constraint,
// and never re-appear in the plan. The first conflict aborts the whole
// resolution; no partial plan is returned.
func (s *Solver) Resolve(specs []domain.Spec, preinstalled map[string]domain.Version, offline bool) (*domain.Plan, error) {
	r := &resolution{
		solver:   s,
		offline:  offline,
		plan:     domain.NewPlan(),
		resolved: make(map[string]domain.Version, len(preinstalled)),
		visiting: make(map[string]bool),
	}
	maps.Copy(r.resolved, preinstalled)

	for _, spec := range specs {
		if err := r.resolve(spec, ""); err != nil {
			return nil, err
		}
	}
	return r.plan, nil
}

// resolution is the per-call state of one Resolve invocation.
type resolution struct {
	solver   *Solver
	offline  bool
	plan     *domain.Plan
	resolved map[string]domain.Version
	visiting map[string]bool
}

func (r *resolution) resolve(spec domain.Spec, requester string) error {
	if existing, ok := r.resolved[spec.Name]; ok {
		if !spec.Satisfied(existing) {
			return r.conflict(spec, existing)
		}
		return nil
	}

	// A package currently on the resolution stack is a dependency ring
	// back to an ancestor; the ancestor's own constraint check covers
	// it, so recursion stops here.
	if r.visiting[spec.Name] {
		return nil
	}

	pkg, sourceName, err := r.pick(spec)
	if err != nil {
		return err
	}
	if r.solver.log != nil {
		r.solver.log.Info("resolved package",
			"package", pkg.ID(),
			"source", sourceName,
		)
	}

	r.visiting[spec.Name] = true
	for _, dep := range pkg.Dependencies {
		constraints, err := domain.ParseConstraints(dep.Constraint)
		if err != nil {
			return zerr.With(err, "package", pkg.ID())
		}
		depSpec := domain.Spec{Name: dep.Name, Constraints: constraints}
		if err := r.resolve(depSpec, spec.Name); err != nil {
			return err
		}
	}
	delete(r.visiting, spec.Name)

	r.resolved[spec.Name] = pkg.Version
	r.plan.Add(spec.Name, pkg.Version, requester)
	return nil
}

// pick searches the sources in priority order for the highest version
// satisfying the spec. The first source holding any satisfying version
// wins; sources are never merged for a single package.
func (r *resolution) pick(spec domain.Spec) (domain.Package, string, error) {
	for _, entry := range r.solver.sources {
		if r.offline && entry.Online {
			continue
		}

		var best domain.Version
		found := false
		for _, v := range entry.Source.Versions(spec.Name) {
			if spec.Satisfied(v) {
				// Versions are ascending, so the last match is the
				// highest satisfying one.
				best = v
				found = true
			}
		}
		if !found {
			continue
		}

		pkg, err := entry.Source.Get(spec.Name, best.String())
		if err != nil {
			return domain.Package{}, "", zerr.With(err, "source", entry.Name)
		}
		return pkg, entry.Name, nil
	}
	return domain.Package{}, "", r.conflict(spec, domain.Version{})
}

// conflict builds the resolution-aborting error, identifying the package
// and the constraint set that could not be met.
func (r *resolution) conflict(spec domain.Spec, existing domain.Version) error {
	required := make([]string, len(spec.Constraints))
	for i, c := range spec.Constraints {
		required[i] = c.String()
	}
	requiredStr := strings.Join(required, ",")
	if requiredStr == "" {
		requiredStr = "any"
	}
	existingStr := "none"
	if !existing.IsZero() {
		existingStr = existing.String()
	}

	err := zerr.With(domain.ErrConflict, "package", spec.Name)
	err = zerr.With(err, "required", requiredStr)
	err = zerr.With(err, "existing", existingStr)
	if r.offline {
		err = zerr.With(err, "offline", true)
	}
	return err
}
