// Package mirror writes a standalone JSON copy of each submitted intake form.
package mirror

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"intake-backend/internal/models"

	"github.com/pkg/errors"
)

const (
	fileTimeLayout = "20060102150405"
	fallbackName   = "paciente"
)

// Writer writes mirror files into Dir.
type Writer struct {
	Dir string
	Now func() time.Time
}

// NewWriter returns a writer for dir using the wall clock.
func NewWriter(dir string) *Writer {
	return &Writer{Dir: dir, Now: time.Now}
}

// FileName returns {name}_{yyyyMMddHHmmss}.json for the payload. Spaces in the
// name become underscores; no other characters are changed. The name has
// second resolution, so two submissions with the same name in the same second
// share a file.
func FileName(payload models.Payload, at time.Time) string {
	name, _ := payload[models.ColName].(string)
	if name == "" {
		name = fallbackName
	}
	return fmt.Sprintf("%s_%s.json", strings.ReplaceAll(name, " ", "_"), at.Format(fileTimeLayout))
}

// Write stores the unfiltered payload as indented JSON and returns the file
// path. An existing file of the same name is overwritten.
func (w *Writer) Write(payload models.Payload) (string, error) {
	if err := os.MkdirAll(w.Dir, 0755); err != nil {
		return "", errors.Wrap(err, "create mirror directory")
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(payload); err != nil {
		return "", errors.Wrap(err, "encode payload")
	}

	path := filepath.Join(w.Dir, FileName(payload, w.Now()))
	if err := os.WriteFile(path, bytes.TrimRight(buf.Bytes(), "\n"), 0644); err != nil {
		return "", errors.Wrap(err, "write mirror file")
	}
	return path, nil
}
