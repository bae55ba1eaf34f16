// Package roster ships the replay scripts built into the binary and the
// lookup that lets a local scripts directory shadow them.
package roster

import (
	"embed"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

//go:embed scripts/*.yaml
var rawScripts embed.FS

// Scripts holds the built-in replay scripts, rooted at scripts/.
var Scripts = mustSub(rawScripts, "scripts")

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}
	return sub
}

// OverlayFS resolves names against dir on disk, then against fallback.
// An empty dir means fallback only.
func OverlayFS(dir string, fallback fs.FS) fs.FS {
	return scriptFS{dir: dir, fallback: fallback}
}

type scriptFS struct {
	dir      string
	fallback fs.FS
}

func (s scriptFS) Open(name string) (fs.File, error) {
	// Backslashes would let a name escape dir on Windows.
	if !fs.ValidPath(name) || strings.ContainsRune(name, '\\') {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrInvalid}
	}
	if s.dir != "" {
		if f, err := os.Open(filepath.Join(s.dir, filepath.FromSlash(name))); err == nil {
			return f, nil
		}
	}
	return s.fallback.Open(name)
}
