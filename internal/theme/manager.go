package theme

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

//go:embed all:templates
var builtin embed.FS

// Manager discovers and loads themes.
//
// Lookup precedence (first hit wins):
//  1. <Dir>/<name>                 on-disk theme, for local restyling
//  2. templates/<name> (embedded)  themes compiled into the binary
type Manager struct {
	Dir string // e.g. "<root>/themes"; empty disables disk lookup
}

// Load returns the named theme after checking it has a layout.
func (m Manager) Load(name string) (*Theme, error) {
	fsys, err := m.open(name)
	if err != nil {
		return nil, err
	}
	if _, err := fs.Stat(fsys, "layout.html"); err != nil {
		return nil, fmt.Errorf("theme %s: missing layout.html: %w", name, err)
	}
	return New(name, fsys), nil
}

func (m Manager) open(name string) (fs.FS, error) {
	if m.Dir != "" {
		root := filepath.Join(m.Dir, name)
		if info, err := os.Stat(root); err == nil && info.IsDir() {
			return os.DirFS(root), nil
		}
	}
	sub, err := fs.Sub(builtin, "templates/"+name)
	if err != nil {
		return nil, err
	}
	if _, err := fs.Stat(sub, "."); err != nil {
		return nil, fmt.Errorf("theme %s not found", name)
	}
	return sub, nil
}
