// Package recipeservice coordinates pantry storage, the importer, and the
// recipe library behind one API used by the CLI.
package recipeservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/starford/mise/internal/apperr"
	"github.com/starford/mise/internal/baker"
	"github.com/starford/mise/internal/checksum"
	"github.com/starford/mise/internal/exporter"
	"github.com/starford/mise/internal/importer"
	"github.com/starford/mise/internal/library"
	"github.com/starford/mise/internal/models"
	"github.com/starford/mise/internal/storage"
)

// bulkWorkers caps concurrent file reads during a bulk import. The library
// serializes writes itself.
const bulkWorkers = 8

// ImportResult describes one imported pantry file.
type ImportResult struct {
	Path    string          `json:"path"`
	Recipes []models.Recipe `json:"recipes"`
}

// BulkResult summarizes an ImportAll pass.
type BulkResult struct {
	Imported int      `json:"imported"`
	Recipes  int      `json:"recipes"`
	Skipped  int      `json:"skipped"`
	Failed   []string `json:"failed,omitempty"`
}

// Service coordinates storage, importer, and library operations.
type Service struct {
	store storage.Provider
	db    library.RecipeLibrary
	imp   *importer.Importer
	log   *slog.Logger
}

// NewService creates a new recipe service.
func NewService(store storage.Provider, db library.RecipeLibrary, imp *importer.Importer, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{store: store, db: db, imp: imp, log: log}
}

// ImportFile reads one pantry file, imports it, and replaces its recipes in
// the library.
func (s *Service) ImportFile(_ context.Context, path string) (*ImportResult, error) {
	data, err := s.store.Read(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("recipeservice: %s: %w", path, apperr.ErrNotFound)
		}
		return nil, err
	}
	recipes, err := s.imp.Import(path, data)
	if err != nil {
		return nil, err
	}
	if err := s.db.ReplaceSource(path, checksum.Sum(data), recipes); err != nil {
		return nil, err
	}
	return &ImportResult{Path: path, Recipes: recipes}, nil
}

// ImportAll walks the pantry and imports every file whose checksum changed.
// Files import concurrently; one bad file never aborts the pass.
func (s *Service) ImportAll(ctx context.Context) (BulkResult, error) {
	metas, err := s.store.List("")
	if err != nil {
		return BulkResult{}, err
	}
	known, err := s.db.AllChecksums()
	if err != nil {
		return BulkResult{}, err
	}

	var (
		mu  sync.Mutex
		res BulkResult
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(bulkWorkers)
	for _, m := range metas {
		if known[m.Path] == m.Checksum {
			res.Skipped++
			continue
		}
		m := m
		g.Go(func() error {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			out, impErr := s.ImportFile(ctx, m.Path)
			mu.Lock()
			defer mu.Unlock()
			if impErr != nil {
				s.log.Warn("bulk import failed", slog.String("path", m.Path), slog.String("error", impErr.Error()))
				res.Failed = append(res.Failed, m.Path)
				return nil
			}
			res.Imported++
			res.Recipes += len(out.Recipes)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return res, err
	}
	return res, nil
}

// AddRecipe writes new content into the pantry and imports it.
func (s *Service) AddRecipe(ctx context.Context, path string, content []byte) (*ImportResult, error) {
	if _, err := s.store.Read(path); err == nil {
		return nil, fmt.Errorf("recipeservice: %s: %w", path, apperr.ErrAlreadyExists)
	}
	if err := s.store.Write(path, content); err != nil {
		return nil, err
	}
	return s.ImportFile(ctx, path)
}

// GetRecipe returns one canonical recipe by id.
func (s *Service) GetRecipe(_ context.Context, id string) (*models.Recipe, error) {
	return s.db.GetRecipe(id)
}

// DeleteSource removes a pantry file and everything imported from it.
func (s *Service) DeleteSource(_ context.Context, path string) error {
	if err := s.store.Delete(path); err != nil {
		return err
	}
	return s.db.DeleteSource(path)
}

// ListRecipes returns paginated summaries with optional category filter.
func (s *Service) ListRecipes(_ context.Context, limit, offset int, category, sort string) ([]models.RecipeSummary, int, error) {
	return s.db.ListRecipes(limit, offset, category, sort)
}

// Search delegates full-text search to the library.
func (s *Service) Search(_ context.Context, query string, limit int) ([]library.SearchResult, error) {
	return s.db.Search(query, limit)
}

// Export renders every recipe in the library in the requested format:
// "json", "csv", or "txt".
func (s *Service) Export(ctx context.Context, format string) ([]byte, error) {
	recipes, err := s.allRecipes(ctx)
	if err != nil {
		return nil, err
	}
	switch format {
	case "json":
		return exporter.JSON(recipes)
	case "csv":
		return exporter.CSV(recipes), nil
	case "txt", "text":
		return exporter.Text(recipes), nil
	default:
		return nil, fmt.Errorf("recipeservice: unsupported export format %q", format)
	}
}

// Formula builds a baker's formula from a stored recipe's ingredient lines.
// Lines whose unit cannot be converted to grams are skipped with a warning.
func (s *Service) Formula(ctx context.Context, id, base string) (*baker.Formula, error) {
	r, err := s.GetRecipe(ctx, id)
	if err != nil {
		return nil, err
	}
	f := baker.NewFormula(s.log)
	baseSet := false
	for _, ing := range r.Ingredients {
		if ing.Quantity == nil {
			s.log.Warn("formula: no quantity, skipping", slog.String("ingredient", ing.Ingredient))
			continue
		}
		if base != "" && strings.EqualFold(ing.Ingredient, base) {
			f.SetBase(ing.Ingredient, *ing.Quantity, ing.Unit)
			baseSet = true
			continue
		}
		f.Add(ing.Ingredient, *ing.Quantity, ing.Unit, "")
	}
	if base != "" && !baseSet {
		s.log.Warn("formula: base ingredient not in recipe", slog.String("base", base))
	}
	return f, nil
}

// allRecipes pages through the library and loads every canonical recipe.
func (s *Service) allRecipes(ctx context.Context) ([]models.Recipe, error) {
	const page = 200
	var out []models.Recipe
	for offset := 0; ; offset += page {
		summaries, total, err := s.db.ListRecipes(page, offset, "", "title")
		if err != nil {
			return nil, err
		}
		for _, sum := range summaries {
			r, err := s.GetRecipe(ctx, sum.ID)
			if err != nil {
				return nil, err
			}
			out = append(out, *r)
		}
		if offset+page >= total || len(summaries) == 0 {
			break
		}
	}
	return out, nil
}
