// Package bundle turns a generated file set into a downloadable archive.
package bundle

import (
	"archive/zip"
	"bytes"
	"fmt"
	"sort"

	"github.com/HananB27/AiGENt/internal/codegen"
)

// Zip archives a file set. Entries are written in sorted path order so the
// same file set always produces the same archive.
func Zip(files codegen.FileSet) ([]byte, error) {
	paths := make([]string, 0, len(files))
	for p := range files {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for _, p := range paths {
		f, err := w.Create(p)
		if err != nil {
			return nil, fmt.Errorf("create zip entry %s: %w", p, err)
		}
		if _, err := f.Write([]byte(files[p])); err != nil {
			return nil, fmt.Errorf("write zip entry %s: %w", p, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("finalize zip: %w", err)
	}
	return buf.Bytes(), nil
}
