package domain

// Plan is the output of a successful resolution: the chosen version per
// package plus the order in which they must be applied. Dependencies
// always precede their dependents in Order.
type Plan struct {
	// Order lists package names topologically, dependencies first.
	// It contains only packages that were newly resolved, never ones
	// the solver was seeded with.
	Order []string

	// Versions maps each name in Order to its chosen version.
	Versions map[string]Version

	// Requesters maps each name in Order to the name of the package
	// whose dependency pulled it in. Root packages map to the empty
	// string.
	Requesters map[string]string
}

// NewPlan creates an empty plan.
func NewPlan() *Plan {
	return &Plan{
		Versions:   make(map[string]Version),
		Requesters: make(map[string]string),
	}
}

// Add appends a newly resolved package to the plan.
func (p *Plan) Add(name string, version Version, requester string) {
	p.Order = append(p.Order, name)
	p.Versions[name] = version
	p.Requesters[name] = requester
}

// Len returns the number of packages in the plan.
func (p *Plan) Len() int {
	return len(p.Order)
}
