package domain_test

import (
	"errors"
	"testing"
	"time"

	"go.trai.ch/crate/internal/core/domain"
)

func TestLockfile_RoundTrip(t *testing.T) {
	env := domain.NewEnvironment("dev")
	env.Set("packageA", domain.MustVersion("2.0"), domain.ReasonUser)
	env.Set("packageB", domain.MustVersion("1.1"), "packageA")

	lf := domain.LockfileFrom(env)
	if len(lf.Packages) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(lf.Packages))
	}
	if lf.Packages["packageB"] != "1.1" {
		t.Errorf("expected packageB 1.1, got %q", lf.Packages["packageB"])
	}

	installed, err := lf.Resolve()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !installed["packageA"].Equal(domain.MustVersion("2.0")) {
		t.Errorf("expected packageA 2.0, got %s", installed["packageA"])
	}
}

func TestLockfile_ResolveMalformed(t *testing.T) {
	lf := domain.Lockfile{Packages: map[string]string{"packageA": "not-a-version"}}
	_, err := lf.Resolve()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !errors.Is(err, domain.ErrInvalidVersion) {
		t.Errorf("expected ErrInvalidVersion, got %v", err)
	}
}

func TestLockfile_DigestDeterministic(t *testing.T) {
	a := domain.Lockfile{Packages: map[string]string{
		"packageA": "1.0",
		"packageB": "2.0",
		"packageC": "3.0",
	}}
	b := domain.Lockfile{Packages: map[string]string{
		"packageC": "3.0",
		"packageB": "2.0",
		"packageA": "1.0",
	}}
	if a.Digest() != b.Digest() {
		t.Error("digest must be independent of map construction order")
	}

	c := domain.Lockfile{Packages: map[string]string{
		"packageA": "1.0",
		"packageB": "2.0",
		"packageC": "3.1",
	}}
	if a.Digest() == c.Digest() {
		t.Error("different contents must not collide on digest")
	}
}

func TestLockfile_SurvivesEnvironmentMutation(t *testing.T) {
	env := domain.NewEnvironment("dev")
	env.Set("packageA", domain.MustVersion("1.0"), domain.ReasonUser)

	lf := domain.LockfileFrom(env)
	env.Set("packageA", domain.MustVersion("2.0"), domain.ReasonUser)
	_ = env.TakeSnapshot(time.Now())

	if lf.Packages["packageA"] != "1.0" {
		t.Errorf("lockfile changed after export: %q", lf.Packages["packageA"])
	}
}
