package domain

// Dependency is one declared dependency of a package: a name plus the
// raw constraint string. The string is parsed into a Spec lazily by the
// solver, so a source can hold constraints it never needs to validate.
type Dependency struct {
	// Name is the depended-upon package name.
	Name string

	// Constraint is the raw constraint list, e.g. ">=1.0,<2.0".
	// Empty means any version.
	Constraint string
}

// Spec renders the dependency as a parseable spec string.
func (d Dependency) Spec() string {
	return d.Name + d.Constraint
}

// Package is an immutable record of one registered package version.
type Package struct {
	// Name is the package name.
	Name string

	// Version is the parsed package version.
	Version Version

	// Dependencies lists the direct dependencies in declaration order.
	Dependencies []Dependency
}

// ID renders the canonical "name@version" identifier.
func (p Package) ID() string {
	return p.Name + "@" + p.Version.String()
}
