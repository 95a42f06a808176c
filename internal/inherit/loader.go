package inherit

import (
	"context"
	"io/fs"
	"os"
	"path"
	"path/filepath"
)

// Loader fetches parent layout documents and resolves the paths that
// name them. Parent references are relative to the document that
// declares them, so resolution is loader-specific.
type Loader interface {
	// Load returns the document bytes at name.
	Load(ctx context.Context, name string) ([]byte, error)

	// Resolve turns a parent reference in the document at base into a
	// loadable name.
	Resolve(base, ref string) string
}

// OSLoader reads parent documents from the operating-system filesystem.
type OSLoader struct{}

func (OSLoader) Load(_ context.Context, name string) ([]byte, error) {
	return os.ReadFile(name)
}

func (OSLoader) Resolve(base, ref string) string {
	if filepath.IsAbs(ref) || base == "" {
		return ref
	}
	return filepath.Join(filepath.Dir(base), ref)
}

// FSLoader reads parent documents from an fs.FS, for embedded layout
// sets and tests.
type FSLoader struct {
	FS fs.FS
}

func (l FSLoader) Load(_ context.Context, name string) ([]byte, error) {
	return fs.ReadFile(l.FS, name)
}

func (FSLoader) Resolve(base, ref string) string {
	if base == "" {
		return path.Clean(ref)
	}
	return path.Join(path.Dir(base), ref)
}
