// Package testutil provides project fixtures and golden-file helpers for tests.
package testutil

import (
	"io"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// Project is a throwaway project root laid out like a real deployment.
type Project struct {
	// Root is the absolute path to the temp project directory
	Root string

	// CatalogDir holds restaurant menu files
	CatalogDir string

	// PublicDir holds client.js and the button images
	PublicDir string
}

// NewProject copies the shipped restaurants/ and public/ directories into a
// fresh temp root, so tests can add or break files without touching the repo.
func NewProject(t *testing.T) *Project {
	t.Helper()

	repo := RepoRoot(t)
	root := t.TempDir()
	p := &Project{
		Root:       root,
		CatalogDir: filepath.Join(root, "restaurants"),
		PublicDir:  filepath.Join(root, "public"),
	}
	copyDir(t, filepath.Join(repo, "restaurants"), p.CatalogDir)
	copyDir(t, filepath.Join(repo, "public"), p.PublicDir)
	return p
}

// WriteRestaurant adds or replaces a file in the catalog directory.
func (p *Project) WriteRestaurant(t *testing.T, name, content string) string {
	t.Helper()
	return writeFile(t, filepath.Join(p.CatalogDir, name), content)
}

// WritePublic adds or replaces a file in the public directory.
func (p *Project) WritePublic(t *testing.T, name, content string) string {
	t.Helper()
	return writeFile(t, filepath.Join(p.PublicDir, name), content)
}

// RepoRoot returns the absolute path of the module root.
func RepoRoot(t *testing.T) string {
	t.Helper()

	// Get the directory of this source file
	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get caller information")
	}

	// Navigate from internal/testutil to project root
	return filepath.Dir(filepath.Dir(filepath.Dir(thisFile)))
}

func writeFile(t *testing.T, path, content string) string {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("Failed to create %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
	return path
}

// copyDir copies the regular files of src (non-recursive) into dst.
func copyDir(t *testing.T, src, dst string) {
	t.Helper()

	if err := os.MkdirAll(dst, 0o755); err != nil {
		t.Fatalf("Failed to create %s: %v", dst, err)
	}
	entries, err := os.ReadDir(src)
	if err != nil {
		t.Fatalf("Failed to read %s: %v", src, err)
	}
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		copyFile(t, filepath.Join(src, e.Name()), filepath.Join(dst, e.Name()))
	}
}

func copyFile(t *testing.T, src, dst string) {
	t.Helper()

	in, err := os.Open(src)
	if err != nil {
		t.Fatalf("Failed to open %s: %v", src, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		t.Fatalf("Failed to create %s: %v", dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		t.Fatalf("Failed to copy %s: %v", src, err)
	}
	if err := out.Close(); err != nil {
		t.Fatalf("Failed to close %s: %v", dst, err)
	}
}
