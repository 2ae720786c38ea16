package domain_test

import (
	"errors"
	"testing"

	"go.trai.ch/crate/internal/core/domain"
)

func TestConstraint_SatisfiedBy(t *testing.T) {
	tests := []struct {
		constraint string
		version    string
		want       bool
	}{
		{"==1.0", "1.0", true},
		{"==1.0", "1.0.0", true},
		{"==1.0", "1.0.1", false},
		{">=1.2", "1.2", true},
		{">=1.2", "1.1.9", false},
		{">=1.2", "1.10", true},
		{"<=2.0", "2.0", true},
		{"<=2.0", "2.0.1", false},
		{">1.0", "1.0", false},
		{">1.0", "1.0.1", true},
		{"<2.0", "1.9.9", true},
		{"<2.0", "2.0.0", false},
	}
	for _, tt := range tests {
		cs, err := domain.ParseConstraints(tt.constraint)
		if err != nil {
			t.Fatalf("failed to parse %q: %v", tt.constraint, err)
		}
		if len(cs) != 1 {
			t.Fatalf("expected 1 constraint from %q, got %d", tt.constraint, len(cs))
		}
		v := domain.MustVersion(tt.version)
		if got := cs[0].SatisfiedBy(v); got != tt.want {
			t.Errorf("%q satisfied by %s = %v, want %v", tt.constraint, tt.version, got, tt.want)
		}
	}
}

func TestSpec_Satisfied_AllConstraints(t *testing.T) {
	spec, err := domain.ParseSpec("pkg>=1.0,<2.0")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if spec.Name != "pkg" {
		t.Errorf("expected name pkg, got %q", spec.Name)
	}

	if !spec.Satisfied(domain.MustVersion("1.5")) {
		t.Error("expected 1.5 to satisfy >=1.0,<2.0")
	}
	if spec.Satisfied(domain.MustVersion("2.0")) {
		t.Error("expected 2.0 to violate <2.0")
	}
	if spec.Satisfied(domain.MustVersion("0.9")) {
		t.Error("expected 0.9 to violate >=1.0")
	}
}

func TestSpec_EmptyConstraintsSatisfiedByAnything(t *testing.T) {
	spec, err := domain.ParseSpec("anything")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(spec.Constraints) != 0 {
		t.Fatalf("expected no constraints, got %d", len(spec.Constraints))
	}
	if !spec.Satisfied(domain.MustVersion("0.0.1")) {
		t.Error("unconstrained spec must accept any version")
	}
}

func TestParseSpec_NameBoundary(t *testing.T) {
	spec, err := domain.ParseSpec("my_pkg-2>=1.0")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if spec.Name != "my_pkg-2" {
		t.Errorf("expected name my_pkg-2, got %q", spec.Name)
	}
	if got := spec.String(); got != "my_pkg-2>=1.0" {
		t.Errorf("round-trip mismatch: %q", got)
	}
}

func TestParseSpec_Invalid(t *testing.T) {
	for _, input := range []string{"", ">=1.0", "pkg~1.0", "pkg==", "pkg>=abc"} {
		_, err := domain.ParseSpec(input)
		if err == nil {
			t.Errorf("expected error for %q, got nil", input)
			continue
		}
		if !errors.Is(err, domain.ErrInvalidConstraint) && !errors.Is(err, domain.ErrInvalidVersion) {
			t.Errorf("unexpected error kind for %q: %v", input, err)
		}
	}
}

func TestParseConstraints_List(t *testing.T) {
	cs, err := domain.ParseConstraints(" >=1.0 , <2.0 ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cs) != 2 {
		t.Fatalf("expected 2 constraints, got %d", len(cs))
	}
	if cs[0].Op != domain.OpGE || cs[0].Version.String() != "1.0" {
		t.Errorf("unexpected first constraint: %s", cs[0])
	}
	if cs[1].Op != domain.OpLT || cs[1].Version.String() != "2.0" {
		t.Errorf("unexpected second constraint: %s", cs[1])
	}
}

func TestParseConstraints_Empty(t *testing.T) {
	cs, err := domain.ParseConstraints("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cs) != 0 {
		t.Errorf("expected no constraints, got %d", len(cs))
	}
}

func TestParseDependency(t *testing.T) {
	dep, err := domain.ParseDependency("packageB>=1.0,<2.0")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dep.Name != "packageB" {
		t.Errorf("expected name packageB, got %q", dep.Name)
	}
	if dep.Constraint != ">=1.0,<2.0" {
		t.Errorf("expected constraint >=1.0,<2.0, got %q", dep.Constraint)
	}
	if got := dep.Spec(); got != "packageB>=1.0,<2.0" {
		t.Errorf("round-trip mismatch: %q", got)
	}
}

func TestParseDependency_Bare(t *testing.T) {
	dep, err := domain.ParseDependency("packageB")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dep.Constraint != "" {
		t.Errorf("expected empty constraint, got %q", dep.Constraint)
	}
}
