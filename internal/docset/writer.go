// Package docset writes generated changelog documents to the output
// directory, one markdown file per package.
package docset

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/relnote-dev/relnote/internal/changelog"
)

// Writer persists a set of package changelogs.
type Writer struct {
	// Dir is the output directory. It is recreated on every write so stale
	// documents from renamed or removed packages never linger.
	Dir string
}

// NewWriter creates a writer targeting dir.
func NewWriter(dir string) *Writer {
	return &Writer{Dir: dir}
}

// Write replaces the output directory with one <package>.md file per
// document and returns the paths written, in document order.
func (w *Writer) Write(docs []changelog.PackageChangelog) ([]string, error) {
	if err := os.RemoveAll(w.Dir); err != nil {
		return nil, fmt.Errorf("clearing output directory %s: %w", w.Dir, err)
	}
	if err := os.MkdirAll(w.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory %s: %w", w.Dir, err)
	}

	paths := make([]string, 0, len(docs))
	for _, doc := range docs {
		path := filepath.Join(w.Dir, doc.Package+".md")
		if err := os.WriteFile(path, []byte(doc.Content), 0o644); err != nil {
			return nil, fmt.Errorf("writing %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
