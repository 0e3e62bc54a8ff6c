package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSetAndGet(t *testing.T) {
	store := openTestStore(t)

	if _, ok, err := store.Get("missing"); err != nil || ok {
		t.Fatalf("Get(missing) = ok %v, err %v; want absent", ok, err)
	}

	if err := store.Set("sweetcatch:userName", "Mila"); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}

	v, ok, err := store.Get("sweetcatch:userName")
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if !ok || v != "Mila" {
		t.Errorf("Get() = %q, %v; want %q, true", v, ok, "Mila")
	}
}

func TestStoreSetOverwrites(t *testing.T) {
	store := openTestStore(t)

	for _, v := range []string{"[]", `[{"level":1}]`, ""} {
		if err := store.Set("k", v); err != nil {
			t.Fatalf("Set(%q) failed: %v", v, err)
		}
		got, ok, err := store.Get("k")
		if err != nil || !ok || got != v {
			t.Errorf("after Set(%q): Get() = %q, %v, %v", v, got, ok, err)
		}
	}

	entries, err := store.Entries("")
	if err != nil {
		t.Fatalf("Entries() failed: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("Expected 1 row after overwrites, got %d", len(entries))
	}
}

func TestStoreRemove(t *testing.T) {
	store := openTestStore(t)

	if err := store.Set("k", "v"); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}
	if err := store.Remove("k"); err != nil {
		t.Fatalf("Remove() failed: %v", err)
	}
	if _, ok, _ := store.Get("k"); ok {
		t.Error("Key still present after Remove()")
	}

	// Removing again is fine
	if err := store.Remove("k"); err != nil {
		t.Errorf("Remove() of missing key failed: %v", err)
	}
}

func TestStorePersistsAcrossReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if err := store.Set("sweetcatch:session_id", "1700000000000"); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer store.Close()

	v, ok, err := store.Get("sweetcatch:session_id")
	if err != nil || !ok || v != "1700000000000" {
		t.Errorf("Get() after reopen = %q, %v, %v", v, ok, err)
	}
}

func TestStoreEntriesByPrefix(t *testing.T) {
	store := openTestStore(t)

	keys := []string{
		"user:bob/sweetcatch:history",
		"user:alice/sweetcatch:userName",
		"user:alice/sweetcatch:history",
		"sweetcatch:history",
	}
	for _, k := range keys {
		if err := store.Set(k, "x"); err != nil {
			t.Fatalf("Set(%q) failed: %v", k, err)
		}
	}

	entries, err := store.Entries("user:alice/")
	if err != nil {
		t.Fatalf("Entries() failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}
	// Ordered by key
	if entries[0].Key != "user:alice/sweetcatch:history" {
		t.Errorf("Expected history first, got %q", entries[0].Key)
	}
	if entries[0].UpdatedAt.IsZero() {
		t.Error("Expected UpdatedAt to be set")
	}

	ns, err := store.Namespaces("/")
	if err != nil {
		t.Fatalf("Namespaces() failed: %v", err)
	}
	if len(ns) != 2 || ns[0] != "user:alice" || ns[1] != "user:bob" {
		t.Errorf("Namespaces() = %v, want [user:alice user:bob]", ns)
	}
}

func TestStoreEntriesNonASCIIPrefix(t *testing.T) {
	store := openTestStore(t)

	keys := []string{
		"user:ünï/sweetcatch:history",
		"user:ünï/sweetcatch:userName",
		"user:ünïx/sweetcatch:history",
		"user:üni/sweetcatch:history",
	}
	for _, k := range keys {
		if err := store.Set(k, "x"); err != nil {
			t.Fatalf("Set(%q) failed: %v", k, err)
		}
	}

	entries, err := store.Entries("user:ünï/")
	if err != nil {
		t.Fatalf("Entries() failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d: %v", len(entries), entries)
	}
	for _, e := range entries {
		if !strings.HasPrefix(e.Key, "user:ünï/") {
			t.Errorf("Entry %q does not carry the prefix", e.Key)
		}
	}
}

func TestStoreNamespacesWithSeparatorInName(t *testing.T) {
	store := openTestStore(t)

	for _, k := range []string{
		"user:a/b/sweetcatch:history",
		"user:a/b/sweetcatch:userName",
		"user:c/sweetcatch:history",
	} {
		if err := store.Set(k, "x"); err != nil {
			t.Fatalf("Set(%q) failed: %v", k, err)
		}
	}

	ns, err := store.Namespaces("/")
	if err != nil {
		t.Fatalf("Namespaces() failed: %v", err)
	}
	if len(ns) != 2 || ns[0] != "user:a/b" || ns[1] != "user:c" {
		t.Errorf("Namespaces() = %v, want [user:a/b user:c]", ns)
	}
}

func TestStoreNestedPath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	// Verify nested directories were created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	got, err := ExpandHome("~/.sweetcatch/sweetcatch.db")
	if err != nil {
		t.Fatalf("ExpandHome() failed: %v", err)
	}
	want := filepath.Join(home, ".sweetcatch", "sweetcatch.db")
	if got != want {
		t.Errorf("ExpandHome() = %q, want %q", got, want)
	}

	if got, _ := ExpandHome("/tmp/x.db"); got != "/tmp/x.db" {
		t.Errorf("ExpandHome() changed an absolute path: %q", got)
	}
}
