package utils

import (
	"fmt"
	"html/template"
	"io/fs"
	"sort"
)

// LoadTemplates parses every *.html file of fsys into one template set.
// base.html is parsed first so it becomes the root template.
func LoadTemplates(fsys fs.FS) (*template.Template, error) {
	files, err := fs.Glob(fsys, "*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to glob templates: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no templates found")
	}

	sort.Strings(files)

	ordered := make([]string, 0, len(files))
	for _, file := range files {
		if file == "base.html" {
			ordered = append(ordered, file)
		}
	}
	for _, file := range files {
		if file != "base.html" {
			ordered = append(ordered, file)
		}
	}

	root := template.New(ordered[0])

	if _, err := root.ParseFS(fsys, ordered...); err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	return root, nil
}
