package library

import "github.com/starford/mise/internal/models"

// RecipeLibrary defines the interface for library operations. Consumers
// should depend on this interface rather than the concrete *DB type to
// facilitate testing with mocks.
type RecipeLibrary interface {
	ReplaceSource(path, checksum string, recipes []models.Recipe) error
	DeleteSource(path string) error
	GetChecksum(path string) (string, error)
	AllChecksums() (map[string]string, error)
	GetRecipe(id string) (*models.Recipe, error)
	ListRecipes(limit, offset int, category, sort string) ([]models.RecipeSummary, int, error)
	Search(query string, limit int) ([]SearchResult, error)
	Close() error
}

// Verify *DB satisfies RecipeLibrary at compile time.
var _ RecipeLibrary = (*DB)(nil)
