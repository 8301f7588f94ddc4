//go:build sqlite_fts5

package library

import (
	"database/sql"
	"fmt"
	"strings"
)

func initFTS(conn *sql.DB) error {
	_, err := conn.Exec(`
		CREATE VIRTUAL TABLE IF NOT EXISTS recipes_fts USING fts5(
			id UNINDEXED,
			source UNINDEXED,
			title,
			body,
			tags,
			tokenize = 'unicode61 remove_diacritics 2'
		);
	`)
	return err
}

func ftsUpsert(tx *sql.Tx, id, source, title, body string, tags []string) error {
	_, _ = tx.Exec(`DELETE FROM recipes_fts WHERE id = ?`, id)
	_, err := tx.Exec(`INSERT INTO recipes_fts (id, source, title, body, tags) VALUES (?, ?, ?, ?, ?)`,
		id, source, title, body, strings.Join(tags, " "))
	if err != nil {
		return fmt.Errorf("library: upsert fts: %w", err)
	}
	return nil
}

func ftsDeleteSource(tx *sql.Tx, source string) {
	_, _ = tx.Exec(`DELETE FROM recipes_fts WHERE source = ?`, source)
}

// Search performs an FTS5 full-text search and returns matching recipes
// with snippets.
func (db *DB) Search(query string, limit int) ([]SearchResult, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := db.conn.Query(`
		SELECT id,
		       title,
		       snippet(recipes_fts, 3, '<b>', '</b>', '...', 64)
		FROM recipes_fts
		WHERE recipes_fts MATCH ?
		ORDER BY rank
		LIMIT ?
	`, query, limit)
	if err != nil {
		return nil, fmt.Errorf("library: search: %w", err)
	}
	defer rows.Close()

	var out []SearchResult
	for rows.Next() {
		var r SearchResult
		if err := rows.Scan(&r.ID, &r.Title, &r.Snippet); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
