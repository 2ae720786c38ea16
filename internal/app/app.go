// Package app implements the application layer for crate.
package app

import (
	"context"

	"go.trai.ch/crate/internal/core/domain"
	"go.trai.ch/crate/internal/core/ports"
	"go.trai.ch/crate/internal/engine/envmgr"
	"go.trai.ch/zerr"
)

// App wires the environment manager to the CLI, recording telemetry
// around the mutating operations.
type App struct {
	mgr       *envmgr.Manager
	locks     ports.LockfileStore
	telemetry ports.Telemetry
	log       ports.Logger
}

// New creates a new App instance.
func New(mgr *envmgr.Manager, locks ports.LockfileStore, telemetry ports.Telemetry, log ports.Logger) *App {
	return &App{
		mgr:       mgr,
		locks:     locks,
		telemetry: telemetry,
		log:       log,
	}
}

// Manager exposes the environment manager for query commands.
func (a *App) Manager() *envmgr.Manager {
	return a.mgr
}

// Install resolves and installs a package spec such as "pkg>=1.0" into
// the current environment.
func (a *App) Install(ctx context.Context, specStr string, offline bool) (plan *domain.Plan, err error) {
	_, vertex := a.telemetry.Record(ctx, "install "+specStr)
	defer func() { vertex.Complete(err) }()

	dep, err := domain.ParseDependency(specStr)
	if err != nil {
		return nil, err
	}

	plan, err = a.mgr.Install(dep.Name, dep.Constraint, offline)
	if err != nil {
		return nil, err
	}
	for _, name := range plan.Order {
		vertex.Log(name + "@" + plan.Versions[name].String())
	}
	return plan, nil
}

// Remove uninstalls a package from the current environment.
func (a *App) Remove(ctx context.Context, name string) (err error) {
	_, vertex := a.telemetry.Record(ctx, "remove "+name)
	defer func() { vertex.Complete(err) }()

	return a.mgr.Remove(name)
}

// Freeze exports the current environment's installed state to the
// lockfile store.
func (a *App) Freeze(ctx context.Context) (err error) {
	_, vertex := a.telemetry.Record(ctx, "freeze")
	defer func() { vertex.Complete(err) }()

	lf, err := a.mgr.Freeze()
	if err != nil {
		return err
	}
	envName := a.mgr.CurrentEnv()
	if err := a.locks.Write(envName, lf); err != nil {
		return zerr.With(err, "environment", envName)
	}
	return nil
}

// Apply imports a previously frozen lockfile into the current
// environment, replacing its installed set wholesale.
func (a *App) Apply(ctx context.Context, lockName string) (err error) {
	_, vertex := a.telemetry.Record(ctx, "apply "+lockName)
	defer func() { vertex.Complete(err) }()

	lf, err := a.locks.Read(lockName)
	if err != nil {
		return err
	}
	return a.mgr.ApplyLockfile(lf)
}

// Close flushes telemetry.
func (a *App) Close() error {
	return a.telemetry.Close()
}
