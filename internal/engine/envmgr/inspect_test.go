package envmgr_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/crate/internal/core/domain"
	"go.trai.ch/crate/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestManager_ExplainNotInstalled(t *testing.T) {
	m := newTestManager(t, nil)
	_, err := m.Explain("packageB")
	require.ErrorIs(t, err, domain.ErrNotInstalled)
}

func TestManager_AuditVulnerabilities(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	feed := mocks.NewMockVulnerabilityFeed(ctrl)
	feed.EXPECT().Advisories().Return([]domain.Advisory{
		{ID: "CVE-2026-0001", Name: "packageB", Version: "2.0"},
		{ID: "CVE-2026-0002", Name: "packageB", Version: "1.0"},
		{ID: "CVE-2026-0003", Name: "unrelated", Version: "2.0"},
	}, nil)

	m := newTestManager(t, feed)
	_, err := m.Install("packageC", "", false)
	require.NoError(t, err)

	// Only the installed (name, version) pair matches: packageB@2.0.
	hits, err := m.AuditVulnerabilities()
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "CVE-2026-0001", hits[0].ID)
}

func TestManager_AuditWithoutFeed(t *testing.T) {
	m := newTestManager(t, nil)
	_, err := m.Install("packageB", "", false)
	require.NoError(t, err)

	hits, err := m.AuditVulnerabilities()
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestManager_ListUpdates(t *testing.T) {
	m := newTestManager(t, nil)

	_, err := m.Install("packageA", "==1.0", false)
	require.NoError(t, err)

	updates, err := m.ListUpdates()
	require.NoError(t, err)
	require.Len(t, updates, 2)

	assert.Equal(t, "1.0", updates["packageA"].Current.String())
	assert.Equal(t, "2.0", updates["packageA"].Latest.String())
	assert.Equal(t, "1.0", updates["packageB"].Current.String())
	assert.Equal(t, "2.0", updates["packageB"].Latest.String())
}

func TestManager_ListUpdatesNoneWhenCurrent(t *testing.T) {
	m := newTestManager(t, nil)

	_, err := m.Install("packageB", "", false)
	require.NoError(t, err)

	updates, err := m.ListUpdates()
	require.NoError(t, err)
	assert.Empty(t, updates)
}

func TestManager_ShowMetadata(t *testing.T) {
	m := newTestManager(t, nil)

	meta, err := m.ShowMetadata("packageA", "2.0")
	require.NoError(t, err)

	assert.Equal(t, "packageA@2.0", meta.Package.ID())
	require.Len(t, meta.Package.Dependencies, 1)
	assert.Equal(t, "packageB", meta.Package.Dependencies[0].Name)
	assert.Equal(t, []string{"1.0", "2.0"}, meta.History)
}

func TestManager_ShowMetadataUnknown(t *testing.T) {
	m := newTestManager(t, nil)

	_, err := m.ShowMetadata("ghost", "1.0")
	require.ErrorIs(t, err, domain.ErrPackageNotFound)

	_, err = m.ShowMetadata("packageA", "bogus")
	require.ErrorIs(t, err, domain.ErrInvalidVersion)
}

func TestManager_Search(t *testing.T) {
	m := newTestManager(t, nil)

	results := m.Search("packagea", nil)
	require.Len(t, results, 2)
	assert.Equal(t, "packageA@1.0", results[0].ID())
	assert.Equal(t, "packageA@2.0", results[1].ID())

	spec, err := domain.ParseSpec("packageA>=2.0")
	require.NoError(t, err)
	results = m.Search("packageA", &spec)
	require.Len(t, results, 1)
	assert.Equal(t, "packageA@2.0", results[0].ID())
}

func TestManager_TenantACLMemoized(t *testing.T) {
	m := newTestManager(t, nil)

	first := m.TenantACL("acme")
	second := m.TenantACL("acme")
	assert.Equal(t, "acl_for_acme", first)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, m.ACLComputeCount())

	m.TenantACL("globex")
	assert.Equal(t, 2, m.ACLComputeCount())

	m.TenantACL("acme")
	assert.Equal(t, 2, m.ACLComputeCount())
}

func TestManager_Dependencies(t *testing.T) {
	m := newTestManager(t, nil)

	_, err := m.Install("packageA", "==1.0", false)
	require.NoError(t, err)

	deps, err := m.Dependencies("packageA")
	require.NoError(t, err)
	require.Len(t, deps, 1)
	assert.Equal(t, "packageB", deps[0].Name)
	assert.Equal(t, "==1.0", deps[0].Constraint)

	_, err = m.Dependencies("packageC")
	require.ErrorIs(t, err, domain.ErrNotInstalled)
}
