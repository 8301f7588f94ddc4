// Package importer turns recipe files (JSON, plain text, CSV) into canonical
// recipe records. Dispatch is by file extension; the plain-text paths
// delegate recipe detection to a pluggable Detector.
package importer

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/starford/mise/internal/models"
)

// Detector finds recipe-shaped structures in free text. The importer treats
// it as an opaque collaborator; internal/textdetect ships the default.
type Detector interface {
	Detect(text string) []models.Recipe
}

// UnsupportedFormatError names the extension the importer cannot handle.
type UnsupportedFormatError struct {
	Ext string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("importer: unsupported format %q", e.Ext)
}

// Importer converts file contents into canonical recipes.
type Importer struct {
	detector Detector
}

// New creates an importer using the given text detector.
func New(detector Detector) *Importer {
	return &Importer{detector: detector}
}

// Import dispatches on the file extension of filename and returns the
// canonical recipes found in data. Unknown extensions yield an
// UnsupportedFormatError.
func (imp *Importer) Import(filename string, data []byte) ([]models.Recipe, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".json":
		return imp.importJSON(filename, data)
	case ".txt", ".md":
		return imp.importText(filename, data, "text"), nil
	case ".csv":
		return imp.importCSV(filename, data)
	default:
		return nil, &UnsupportedFormatError{Ext: strings.TrimPrefix(ext, ".")}
	}
}

// importText runs the detector over the file and stamps the results.
func (imp *Importer) importText(filename string, data []byte, format string) []models.Recipe {
	if imp.detector == nil {
		return nil
	}
	recipes := imp.detector.Detect(string(data))
	for i := range recipes {
		imp.stamp(&recipes[i], filename, format)
	}
	return recipes
}

// stamp fills bookkeeping fields every imported record must carry.
func (imp *Importer) stamp(r *models.Recipe, filename, format string) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
	r.SourceFile = filepath.Base(filename)
	if r.SourceFormat == "" {
		r.SourceFormat = format
	}
	if r.ImportSource == "" {
		r.ImportSource = "file"
	}
	r.Finalize()
}
