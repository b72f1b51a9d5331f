// ABOUTME: Tests for the filesystem document store
// ABOUTME: Covers exclusive creation, listing, traversal rejection, and reads

package vault

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func openTestVault(t *testing.T) *Vault {
	t.Helper()
	v, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("open vault: %v", err)
	}
	return v
}

func TestCreateAndRead(t *testing.T) {
	v := openTestVault(t)

	if err := v.Create("RSS/02.10.24 - First Post.md", "guid: post-1\n\nbody"); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := v.Read("RSS/02.10.24 - First Post.md")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if got != "guid: post-1\n\nbody" {
		t.Errorf("read = %q", got)
	}
}

func TestCreateExisting(t *testing.T) {
	v := openTestVault(t)

	if err := v.Create("a.md", "one"); err != nil {
		t.Fatalf("first create: %v", err)
	}
	err := v.Create("a.md", "two")
	if !errors.Is(err, ErrExists) {
		t.Fatalf("second create = %v, want ErrExists", err)
	}

	// Original content must be untouched.
	got, err := v.Read("a.md")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if got != "one" {
		t.Errorf("content after collision = %q, want %q", got, "one")
	}
}

func TestList(t *testing.T) {
	v := openTestVault(t)

	for _, p := range []string{"b.md", "feed/a.md", "feed/readme.txt"} {
		if p == "feed/readme.txt" {
			// Non-markdown files are invisible to List.
			abs := filepath.Join(v.Root(), "feed", "readme.txt")
			if err := writeRaw(abs); err != nil {
				t.Fatalf("write raw: %v", err)
			}
			continue
		}
		if err := v.Create(p, "x"); err != nil {
			t.Fatalf("create %s: %v", p, err)
		}
	}

	docs, err := v.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []string{"b.md", "feed/a.md"}
	if len(docs) != len(want) {
		t.Fatalf("list = %v, want %v", docs, want)
	}
	for i := range want {
		if docs[i] != want[i] {
			t.Errorf("list[%d] = %q, want %q", i, docs[i], want[i])
		}
	}
}

func TestListEmptyVault(t *testing.T) {
	v := openTestVault(t)
	docs, err := v.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(docs) != 0 {
		t.Errorf("list = %v, want empty", docs)
	}
}

func TestPathEscapeRejected(t *testing.T) {
	v := openTestVault(t)

	for _, p := range []string{"../outside.md", "a/../../outside.md", "/etc/passwd"} {
		if err := v.Create(p, "x"); err == nil {
			t.Errorf("Create(%q) succeeded, want traversal rejection", p)
		}
		if _, err := v.Read(p); err == nil {
			t.Errorf("Read(%q) succeeded, want traversal rejection", p)
		}
	}
}

func writeRaw(abs string) error {
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return err
	}
	return os.WriteFile(abs, []byte("not markdown"), 0o644)
}
