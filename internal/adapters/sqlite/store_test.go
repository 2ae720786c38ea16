package sqlite_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/crate/internal/adapters/sqlite"
	"go.trai.ch/crate/internal/core/domain"
)

func openStore(t *testing.T) *sqlite.Store {
	t.Helper()
	s, err := sqlite.Open(filepath.Join(t.TempDir(), "packages.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, s.Close())
	})
	return s
}

func TestStore_AddAndGet(t *testing.T) {
	s := openStore(t)

	pkg := domain.Package{
		Name:    "packageA",
		Version: domain.MustVersion("2.0"),
		Dependencies: []domain.Dependency{
			{Name: "packageB", Constraint: ">=1.1"},
			{Name: "packageC", Constraint: ""},
		},
	}
	require.NoError(t, s.Add(pkg))

	got, err := s.Get("packageA", "2.0")
	require.NoError(t, err)
	assert.Equal(t, "packageA@2.0", got.ID())
	require.Len(t, got.Dependencies, 2)
	// Declaration order survives the round trip.
	assert.Equal(t, "packageB", got.Dependencies[0].Name)
	assert.Equal(t, ">=1.1", got.Dependencies[0].Constraint)
	assert.Equal(t, "packageC", got.Dependencies[1].Name)
}

func TestStore_AddDuplicate(t *testing.T) {
	s := openStore(t)

	pkg := domain.Package{Name: "tool", Version: domain.MustVersion("1.0")}
	require.NoError(t, s.Add(pkg))
	require.ErrorIs(t, s.Add(pkg), domain.ErrDuplicatePackage)
}

func TestStore_GetUnknown(t *testing.T) {
	s := openStore(t)
	require.NoError(t, s.Add(domain.Package{Name: "tool", Version: domain.MustVersion("1.0")}))

	_, err := s.Get("ghost", "1.0")
	require.ErrorIs(t, err, domain.ErrPackageNotFound)

	_, err = s.Get("tool", "9.9")
	require.ErrorIs(t, err, domain.ErrVersionNotFound)
}

func TestStore_VersionsSorted(t *testing.T) {
	s := openStore(t)
	for _, v := range []string{"2.0", "1.10", "1.2"} {
		require.NoError(t, s.Add(domain.Package{Name: "tool", Version: domain.MustVersion(v)}))
	}

	versions := s.Versions("tool")
	require.Len(t, versions, 3)
	assert.Equal(t, "1.2", versions[0].String())
	assert.Equal(t, "1.10", versions[1].String())
	assert.Equal(t, "2.0", versions[2].String())

	assert.Empty(t, s.Versions("ghost"))
}

func TestStore_Search(t *testing.T) {
	s := openStore(t)
	for _, p := range []struct{ name, version string }{
		{"web-server", "1.0"},
		{"web-server", "2.0"},
		{"webhook", "1.0"},
		{"database", "1.0"},
	} {
		require.NoError(t, s.Add(domain.Package{Name: p.name, Version: domain.MustVersion(p.version)}))
	}

	results := s.Search("WEB", nil)
	require.Len(t, results, 3)
	assert.Equal(t, "web-server@1.0", results[0].ID())
	assert.Equal(t, "web-server@2.0", results[1].ID())
	assert.Equal(t, "webhook@1.0", results[2].ID())

	spec, err := domain.ParseSpec("web-server>=2.0")
	require.NoError(t, err)
	results = s.Search("web-server", &spec)
	require.Len(t, results, 1)
	assert.Equal(t, "web-server@2.0", results[0].ID())
}

func TestStore_PersistsAcrossOpens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "packages.db")

	s, err := sqlite.Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Add(domain.Package{Name: "tool", Version: domain.MustVersion("1.0")}))
	require.NoError(t, s.Close())

	reopened, err := sqlite.Open(path)
	require.NoError(t, err)
	defer reopened.Close() //nolint:errcheck // test cleanup

	got, err := reopened.Get("tool", "1.0")
	require.NoError(t, err)
	assert.Equal(t, "tool@1.0", got.ID())
}
