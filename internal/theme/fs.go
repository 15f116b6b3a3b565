// fs.go holds small helpers for walking a theme tree.
package theme

import (
	"io/fs"
	"strings"
)

// CollectHTML walks dir inside fsys and returns every *.html path.
//
//	files, _ := CollectHTML(th.FS, "pages")
func CollectHTML(fsys fs.FS, dir string) ([]string, error) {
	var files []string
	err := fs.WalkDir(fsys, dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(strings.ToLower(d.Name()), ".html") {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// Pages lists the page names a theme provides ("home", "blog_list", …).
func Pages(fsys fs.FS) ([]string, error) {
	files, err := CollectHTML(fsys, "pages")
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(files))
	for _, f := range files {
		out = append(out, strings.TrimSuffix(strings.TrimPrefix(f, "pages/"), ".html"))
	}
	return out, nil
}
