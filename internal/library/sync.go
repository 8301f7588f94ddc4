package library

import (
	"log/slog"

	"github.com/starford/mise/internal/checksum"
	"github.com/starford/mise/internal/models"
	"github.com/starford/mise/internal/storage"
)

// FileImporter turns one pantry file into canonical recipes. Satisfied by
// *importer.Importer.
type FileImporter interface {
	Import(filename string, data []byte) ([]models.Recipe, error)
}

// Sync walks the pantry and brings the library up to date:
//   - new/changed files are imported and their recipes replaced
//   - files removed from disk are deleted from the library
func Sync(db *DB, store storage.Provider, imp FileImporter, logger *slog.Logger) error {
	metas, err := store.List("")
	if err != nil {
		return err
	}

	checksums, err := db.AllChecksums()
	if err != nil {
		return err
	}

	disk := make(map[string]struct{}, len(metas))
	for _, m := range metas {
		disk[m.Path] = struct{}{}

		if checksums[m.Path] == m.Checksum {
			continue
		}

		data, err := store.Read(m.Path)
		if err != nil {
			logger.Warn("sync: read failed", slog.String("path", m.Path), slog.String("error", err.Error()))
			continue
		}
		if err := importFile(db, imp, m.Path, data); err != nil {
			logger.Warn("sync: import failed", slog.String("path", m.Path), slog.String("error", err.Error()))
		} else {
			logger.Debug("sync: imported", slog.String("path", m.Path))
		}
	}

	// Remove stale entries.
	for p := range checksums {
		if _, ok := disk[p]; !ok {
			if err := db.DeleteSource(p); err != nil {
				logger.Warn("sync: delete failed", slog.String("path", p), slog.String("error", err.Error()))
			} else {
				logger.Debug("sync: removed stale", slog.String("path", p))
			}
		}
	}

	return nil
}

// importFile runs the importer on data and replaces the source's recipes.
func importFile(db *DB, imp FileImporter, path string, data []byte) error {
	recipes, err := imp.Import(path, data)
	if err != nil {
		return err
	}
	return db.ReplaceSource(path, checksum.Sum(data), recipes)
}
