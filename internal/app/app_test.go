package app_test

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/crate/internal/adapters/logger"
	"go.trai.ch/crate/internal/adapters/memory"
	"go.trai.ch/crate/internal/adapters/telemetry"
	"go.trai.ch/crate/internal/app"
	"go.trai.ch/crate/internal/core/domain"
	"go.trai.ch/crate/internal/core/ports"
	"go.trai.ch/crate/internal/core/ports/mocks"
	"go.trai.ch/crate/internal/engine/envmgr"
	"go.trai.ch/crate/internal/engine/solver"
	"go.uber.org/mock/gomock"
)

func newTestApp(t *testing.T, locks ports.LockfileStore) *app.App {
	t.Helper()

	reg := memory.NewRegistry()
	require.NoError(t, reg.Add(domain.Package{
		Name:    "packageB",
		Version: domain.MustVersion("1.1"),
	}))
	require.NoError(t, reg.Add(domain.Package{
		Name:    "packageA",
		Version: domain.MustVersion("2.0"),
		Dependencies: []domain.Dependency{
			{Name: "packageB", Constraint: ">=1.1"},
		},
	}))
	sources := []ports.SourceEntry{{Name: "local", Source: reg}}

	log := logger.New()
	log.SetOutput(io.Discard)

	mgr := envmgr.New(solver.New(sources, log), sources, nil, log)
	require.NoError(t, mgr.CreateEnv("default"))
	require.NoError(t, mgr.SwitchEnv("default"))

	return app.New(mgr, locks, telemetry.NewNoOp(), log)
}

func TestApp_Install(t *testing.T) {
	a := newTestApp(t, nil)

	plan, err := a.Install(context.Background(), "packageA>=2.0", false)
	require.NoError(t, err)
	assert.Equal(t, []string{"packageB", "packageA"}, plan.Order)
	assert.True(t, a.Manager().IsInstalled("packageA"))
}

func TestApp_InstallInvalidSpec(t *testing.T) {
	a := newTestApp(t, nil)

	_, err := a.Install(context.Background(), ">=1.0", false)
	require.ErrorIs(t, err, domain.ErrInvalidConstraint)
}

func TestApp_Remove(t *testing.T) {
	a := newTestApp(t, nil)

	_, err := a.Install(context.Background(), "packageA", false)
	require.NoError(t, err)

	require.NoError(t, a.Remove(context.Background(), "packageA"))
	assert.False(t, a.Manager().IsInstalled("packageA"))
}

func TestApp_FreezeAndApply(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	locks := mocks.NewMockLockfileStore(ctrl)
	a := newTestApp(t, locks)

	_, err := a.Install(context.Background(), "packageA", false)
	require.NoError(t, err)

	var written domain.Lockfile
	locks.EXPECT().Write("default", gomock.Any()).
		DoAndReturn(func(_ string, lf domain.Lockfile) error {
			written = lf
			return nil
		})
	require.NoError(t, a.Freeze(context.Background()))
	assert.Equal(t, map[string]string{
		"packageA": "2.0",
		"packageB": "1.1",
	}, written.Packages)

	locks.EXPECT().Read("default").Return(written, nil)
	require.NoError(t, a.Apply(context.Background(), "default"))
	assert.True(t, a.Manager().IsInstalled("packageB"))
}

func TestApp_ApplyReadFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	locks := mocks.NewMockLockfileStore(ctrl)
	a := newTestApp(t, locks)

	readErr := errors.New("lockfile unreadable")
	locks.EXPECT().Read("default").Return(domain.Lockfile{}, readErr)

	err := a.Apply(context.Background(), "default")
	require.ErrorIs(t, err, readErr)
}
