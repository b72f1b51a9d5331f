// ABOUTME: Filesystem-backed document store for materialized feed items
// ABOUTME: Lists, reads, and exclusively creates markdown documents under a vault root

package vault

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ErrExists is returned by Create when a document with the target name is
// already present. Callers treat it as a benign collision, not a failure.
var ErrExists = errors.New("document already exists")

// Vault is a document store rooted at a single directory. Documents are
// .md files; subdirectories group them per feed. Existing documents are
// never mutated or deleted.
type Vault struct {
	root string
}

// Open creates a vault rooted at dir, creating the directory if needed.
func Open(dir string) (*Vault, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("vault: resolve root: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("vault: create root: %w", err)
	}
	return &Vault{root: abs}, nil
}

// Root returns the absolute vault root directory.
func (v *Vault) Root() string {
	return v.root
}

// safePath resolves a relative path against the vault root and rejects
// any result that escapes it.
func (v *Vault) safePath(rel string) (string, error) {
	cleaned := filepath.Clean(filepath.FromSlash(rel))
	if cleaned == "." || cleaned == "" {
		return "", fmt.Errorf("vault: empty path")
	}
	if filepath.IsAbs(cleaned) {
		return "", fmt.Errorf("vault: absolute paths not allowed: %s", rel)
	}
	abs := filepath.Join(v.root, cleaned)
	if !strings.HasPrefix(abs, v.root+string(os.PathSeparator)) {
		return "", fmt.Errorf("vault: path escapes vault root: %s", rel)
	}
	return abs, nil
}

// List walks the vault and returns the relative path of every markdown
// document, in lexical order.
func (v *Vault) List() ([]string, error) {
	var out []string
	err := filepath.WalkDir(v.root, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".md") {
			return nil
		}
		rel, err := filepath.Rel(v.root, p)
		if err != nil {
			return err
		}
		out = append(out, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("vault: list: %w", err)
	}
	return out, nil
}

// Read returns the content of a document by its relative path.
func (v *Vault) Read(rel string) (string, error) {
	abs, err := v.safePath(rel)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return "", fmt.Errorf("vault: read %s: %w", rel, err)
	}
	return string(data), nil
}

// Create writes a new document at the given relative path. Parent
// directories are created as needed. The write is exclusive: if the
// document already exists, ErrExists is returned and the existing
// content is left untouched.
func (v *Vault) Create(rel string, text string) error {
	abs, err := v.safePath(rel)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return fmt.Errorf("vault: mkdir: %w", err)
	}

	f, err := os.OpenFile(abs, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("vault: create %s: %w", rel, ErrExists)
		}
		return fmt.Errorf("vault: create %s: %w", rel, err)
	}

	if _, err := f.WriteString(text); err != nil {
		f.Close()
		os.Remove(abs)
		return fmt.Errorf("vault: write %s: %w", rel, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("vault: close %s: %w", rel, err)
	}
	return nil
}
