package domain

import (
	"strings"

	"go.trai.ch/zerr"
)

// Operator is a single version comparison operator.
type Operator string

// The supported comparison operators. Matching order matters: the
// two-character operators must be tried before ">" and "<" so that
// ">=1.0" is not mis-split as "> =1.0".
const (
	OpEq Operator = "=="
	OpGE Operator = ">="
	OpLE Operator = "<="
	OpGT Operator = ">"
	OpLT Operator = "<"
)

var operatorOrder = []Operator{OpGE, OpLE, OpEq, OpGT, OpLT}

// Constraint binds one comparison operator to a version.
type Constraint struct {
	Op      Operator
	Version Version
}

// SatisfiedBy reports whether the candidate version passes this constraint.
func (c Constraint) SatisfiedBy(v Version) bool {
	cmp := v.Compare(c.Version)
	switch c.Op {
	case OpEq:
		return cmp == 0
	case OpGE:
		return cmp >= 0
	case OpLE:
		return cmp <= 0
	case OpGT:
		return cmp > 0
	case OpLT:
		return cmp < 0
	}
	return false
}

// String renders the constraint in its source form, e.g. ">=1.2".
func (c Constraint) String() string {
	return string(c.Op) + c.Version.String()
}

// Spec is a package name plus an ordered list of AND-combined constraints.
// An empty constraint list is satisfied by any version.
type Spec struct {
	Name        string
	Constraints []Constraint
}

// Satisfied reports whether the candidate version passes every constraint.
func (s Spec) Satisfied(v Version) bool {
	for _, c := range s.Constraints {
		if !c.SatisfiedBy(v) {
			return false
		}
	}
	return true
}

// String renders the spec in its source form, e.g. "pkg>=1.0,<2.0".
func (s Spec) String() string {
	var b strings.Builder
	b.WriteString(s.Name)
	for i, c := range s.Constraints {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString(c.String())
	}
	return b.String()
}

// ParseSpec parses a spec string such as "pkg", "pkg==1.0" or
// "pkg>=1.0,<2.0". The package name is the maximal leading run of
// alphanumeric, '_' and '-' characters; the remainder is a
// comma-separated constraint list.
func ParseSpec(text string) (Spec, error) {
	text = strings.TrimSpace(text)
	i := 0
	for i < len(text) && isNameChar(text[i]) {
		i++
	}
	name := text[:i]
	if name == "" {
		return Spec{}, zerr.With(ErrInvalidConstraint, "spec", text)
	}

	constraints, err := ParseConstraints(text[i:])
	if err != nil {
		return Spec{}, zerr.With(err, "spec", text)
	}
	return Spec{Name: name, Constraints: constraints}, nil
}

// ParseDependency validates a dependency string such as "pkg>=1.0,<2.0"
// and splits it into its name and raw constraint text.
func ParseDependency(text string) (Dependency, error) {
	spec, err := ParseSpec(text)
	if err != nil {
		return Dependency{}, err
	}
	rest := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(text), spec.Name))
	return Dependency{Name: spec.Name, Constraint: rest}, nil
}

// ParseConstraints parses a comma-separated constraint list such as
// ">=1.0,<2.0". An empty string yields no constraints.
func ParseConstraints(text string) ([]Constraint, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}

	var constraints []Constraint
	for piece := range strings.SplitSeq(text, ",") {
		piece = strings.TrimSpace(piece)
		if piece == "" {
			continue
		}
		c, err := parseConstraint(piece)
		if err != nil {
			return nil, err
		}
		constraints = append(constraints, c)
	}
	return constraints, nil
}

func parseConstraint(piece string) (Constraint, error) {
	for _, op := range operatorOrder {
		rest, ok := strings.CutPrefix(piece, string(op))
		if !ok {
			continue
		}
		v, err := ParseVersion(strings.TrimSpace(rest))
		if err != nil {
			return Constraint{}, zerr.With(ErrInvalidConstraint, "constraint", piece)
		}
		return Constraint{Op: op, Version: v}, nil
	}
	return Constraint{}, zerr.With(ErrInvalidConstraint, "constraint", piece)
}

func isNameChar(b byte) bool {
	switch {
	case b >= 'a' && b <= 'z', b >= 'A' && b <= 'Z', b >= '0' && b <= '9':
		return true
	case b == '_', b == '-':
		return true
	}
	return false
}
