package vulnfeed_test

import (
	"os"
	"path/filepath"
	"testing"

	"go.trai.ch/crate/internal/adapters/vulnfeed"
)

func writeFeed(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "advisories.json")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write feed file: %v", err)
	}
	return path
}

func TestFileFeed_Advisories(t *testing.T) {
	path := writeFeed(t, `{
  "CVE-2026-0002": {"name": "packageB", "version": "2.0"},
  "CVE-2026-0001": {"name": "packageB", "version": "1.0"}
}`)

	feed := vulnfeed.NewFileFeed(path)
	advisories, err := feed.Advisories()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(advisories) != 2 {
		t.Fatalf("expected 2 advisories, got %d", len(advisories))
	}
	// Sorted by id, not file order.
	if advisories[0].ID != "CVE-2026-0001" || advisories[1].ID != "CVE-2026-0002" {
		t.Errorf("unexpected order: %s, %s", advisories[0].ID, advisories[1].ID)
	}
	if advisories[0].Name != "packageB" || advisories[0].Version != "1.0" {
		t.Errorf("unexpected advisory contents: %+v", advisories[0])
	}
}

func TestFileFeed_ReloadsOnEachCall(t *testing.T) {
	path := writeFeed(t, `{}`)
	feed := vulnfeed.NewFileFeed(path)

	advisories, err := feed.Advisories()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(advisories) != 0 {
		t.Fatalf("expected empty feed, got %d", len(advisories))
	}

	update := `{"CVE-2026-0009": {"name": "tool", "version": "1.0"}}`
	if err := os.WriteFile(path, []byte(update), 0o600); err != nil {
		t.Fatalf("failed to update feed file: %v", err)
	}

	advisories, err = feed.Advisories()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(advisories) != 1 {
		t.Errorf("expected updated feed with 1 advisory, got %d", len(advisories))
	}
}

func TestFileFeed_MissingFile(t *testing.T) {
	feed := vulnfeed.NewFileFeed(filepath.Join(t.TempDir(), "missing.json"))
	if _, err := feed.Advisories(); err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestFileFeed_MalformedJSON(t *testing.T) {
	path := writeFeed(t, `{"CVE": `)
	feed := vulnfeed.NewFileFeed(path)
	if _, err := feed.Advisories(); err == nil {
		t.Fatal("expected error, got nil")
	}
}
