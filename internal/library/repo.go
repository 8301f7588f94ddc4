package library

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/starford/mise/internal/apperr"
	"github.com/starford/mise/internal/models"
)

// SearchResult represents one search hit.
type SearchResult struct {
	ID      string
	Title   string
	Snippet string
}

// ReplaceSource records the file checksum and swaps every recipe imported
// from path in a single transaction. A source that now yields fewer (or
// zero) recipes loses its stale rows.
func (db *DB) ReplaceSource(path, checksum string, recipes []models.Recipe) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("library: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // best-effort on failure path

	_, err = tx.Exec(`
		INSERT INTO sources (path, checksum, imported_at)
		VALUES (?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			checksum    = excluded.checksum,
			imported_at = excluded.imported_at
	`, path, checksum, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("library: upsert source: %w", err)
	}

	// Replace recipes: delete old rows for the source then bulk insert.
	ftsDeleteSource(tx, path)
	if _, err := tx.Exec(`DELETE FROM recipes WHERE source_path = ?`, path); err != nil {
		return fmt.Errorf("library: clear source recipes: %w", err)
	}

	if len(recipes) > 0 {
		stmt, err := tx.Prepare(`
			INSERT INTO recipes (id, source_path, title, category, tags, doc, body, is_complete, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`)
		if err != nil {
			return fmt.Errorf("library: prepare recipe insert: %w", err)
		}
		defer stmt.Close()

		for _, r := range recipes {
			doc, err := json.Marshal(r)
			if err != nil {
				return fmt.Errorf("library: marshal recipe %s: %w", r.ID, err)
			}
			tagsJSON, _ := json.Marshal(r.Tags)
			body := searchText(r)
			if _, err := stmt.Exec(r.ID, path, r.Title, r.Category, string(tagsJSON),
				string(doc), body, r.IsComplete, time.Now().UTC()); err != nil {
				return fmt.Errorf("library: insert recipe: %w", err)
			}
			if err := ftsUpsert(tx, r.ID, path, r.Title, body, r.Tags); err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}

// DeleteSource removes a source file, all its recipes, and their FTS entries.
func (db *DB) DeleteSource(path string) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("library: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	ftsDeleteSource(tx, path)
	_, _ = tx.Exec(`DELETE FROM recipes WHERE source_path = ?`, path)
	_, _ = tx.Exec(`DELETE FROM sources WHERE path = ?`, path)

	return tx.Commit()
}

// GetChecksum returns the stored checksum for a source, or empty string if
// not found.
func (db *DB) GetChecksum(path string) (string, error) {
	var cs string
	err := db.conn.QueryRow(`SELECT checksum FROM sources WHERE path = ?`, path).Scan(&cs)
	if err != nil {
		return "", nil // not found is fine
	}
	return cs, nil
}

// AllChecksums returns every known source path with its checksum.
func (db *DB) AllChecksums() (map[string]string, error) {
	rows, err := db.conn.Query(`SELECT path, checksum FROM sources`)
	if err != nil {
		return nil, fmt.Errorf("library: all checksums: %w", err)
	}
	defer rows.Close()
	out := make(map[string]string)
	for rows.Next() {
		var p, cs string
		if err := rows.Scan(&p, &cs); err != nil {
			return nil, err
		}
		out[p] = cs
	}
	return out, rows.Err()
}

// GetRecipe returns the canonical recipe stored under id.
func (db *DB) GetRecipe(id string) (*models.Recipe, error) {
	var doc string
	err := db.conn.QueryRow(`SELECT doc FROM recipes WHERE id = ?`, id).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("library: recipe %s: %w", id, apperr.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("library: get recipe: %w", err)
	}
	var r models.Recipe
	if err := json.Unmarshal([]byte(doc), &r); err != nil {
		return nil, fmt.Errorf("library: decode recipe %s: %w", id, err)
	}
	return &r, nil
}

// ListRecipes returns a page of summaries plus the total match count.
// sort is "title" or "updated" (default), category filters exact match.
func (db *DB) ListRecipes(limit, offset int, category, sort string) ([]models.RecipeSummary, int, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	where := ""
	args := []any{}
	if category != "" {
		where = `WHERE category = ?`
		args = append(args, category)
	}

	var total int
	if err := db.conn.QueryRow(`SELECT count(*) FROM recipes `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("library: count recipes: %w", err)
	}

	order := `updated_at DESC`
	if sort == "title" {
		order = `title COLLATE NOCASE ASC`
	}

	query := fmt.Sprintf(`
		SELECT id, source_path, title, category, updated_at
		FROM recipes %s
		ORDER BY %s
		LIMIT ? OFFSET ?
	`, where, order)
	rows, err := db.conn.Query(query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("library: list recipes: %w", err)
	}
	defer rows.Close()

	var out []models.RecipeSummary
	for rows.Next() {
		var s models.RecipeSummary
		if err := rows.Scan(&s.ID, &s.Path, &s.Title, &s.Category, &s.UpdatedAt); err != nil {
			return nil, 0, err
		}
		cs, _ := db.GetChecksum(s.Path)
		s.Checksum = cs
		out = append(out, s)
	}
	return out, total, rows.Err()
}

// searchText flattens a recipe into the text the search index covers.
func searchText(r models.Recipe) string {
	var b strings.Builder
	b.WriteString(r.Title)
	b.WriteByte('\n')
	if r.Description != "" {
		b.WriteString(r.Description)
		b.WriteByte('\n')
	}
	for _, ing := range r.Ingredients {
		b.WriteString(ing.Raw)
		b.WriteByte('\n')
	}
	for _, step := range r.Instructions {
		b.WriteString(step)
		b.WriteByte('\n')
	}
	return b.String()
}
