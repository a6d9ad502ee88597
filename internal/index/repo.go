package index

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/starford/folio/internal/apperr"
)

// ProjectRow represents a row in the projects table with its categories.
type ProjectRow struct {
	ID          string
	Position    int
	Title       string
	Description string
	Image       string
	Link        string
	GitHub      string
	Tags        []string
	Categories  []string
	Checksum    string
	UpdatedAt   time.Time
}

// SearchResult represents one search hit.
type SearchResult struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
}

// TagCount is a tag with the number of projects carrying it.
type TagCount struct {
	Tag   string
	Count int
}

// ListQuery filters and pages ListProjects. Empty filters match everything;
// a non-positive Limit returns all rows.
type ListQuery struct {
	Category string
	Tag      string
	Limit    int
	Offset   int
}

// UpsertProject inserts or replaces a project, its FTS entry, tags and
// categories within a transaction.
func (db *DB) UpsertProject(p ProjectRow) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("index: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // best-effort on failure path

	if p.Tags == nil {
		p.Tags = []string{}
	}
	tagsJSON, _ := json.Marshal(p.Tags)
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = time.Now().UTC()
	}

	_, err = tx.Exec(`
		INSERT INTO projects (id, position, title, description, image, link, github, tags, checksum, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			position    = excluded.position,
			title       = excluded.title,
			description = excluded.description,
			image       = excluded.image,
			link        = excluded.link,
			github      = excluded.github,
			tags        = excluded.tags,
			checksum    = excluded.checksum,
			updated_at  = excluded.updated_at
	`, p.ID, p.Position, p.Title, p.Description, p.Image, p.Link, p.GitHub, string(tagsJSON), p.Checksum, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("index: upsert project: %w", err)
	}

	// FTS upsert (no-op when FTS5 tag is absent).
	if err := ftsUpsert(tx, p); err != nil {
		return err
	}

	if err := replaceSet(tx, "project_tags", "tag", p.ID, p.Tags); err != nil {
		return err
	}
	if err := replaceSet(tx, "project_categories", "category", p.ID, p.Categories); err != nil {
		return err
	}
	return tx.Commit()
}

// replaceSet deletes the rows of table owned by id and inserts values.
// table and column are package constants, never user input.
func replaceSet(tx *sql.Tx, table, column, id string, values []string) error {
	if _, err := tx.Exec(`DELETE FROM `+table+` WHERE project_id = ?`, id); err != nil {
		return fmt.Errorf("index: clear %s: %w", table, err)
	}
	if len(values) == 0 {
		return nil
	}
	stmt, err := tx.Prepare(`INSERT OR IGNORE INTO ` + table + ` (project_id, ` + column + `) VALUES (?, ?)`)
	if err != nil {
		return fmt.Errorf("index: prepare %s insert: %w", table, err)
	}
	defer stmt.Close()
	for _, v := range values {
		if _, err := stmt.Exec(id, v); err != nil {
			return fmt.Errorf("index: insert %s: %w", table, err)
		}
	}
	return nil
}

// DeleteProject removes a project, its FTS entry, tags and categories.
func (db *DB) DeleteProject(id string) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("index: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	ftsDelete(tx, id)
	_, _ = tx.Exec(`DELETE FROM project_tags WHERE project_id = ?`, id)
	_, _ = tx.Exec(`DELETE FROM project_categories WHERE project_id = ?`, id)
	_, _ = tx.Exec(`DELETE FROM projects WHERE id = ?`, id)

	return tx.Commit()
}

const projectColumns = `id, position, title, description, image, link, github, tags, checksum, updated_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanProject(s scanner) (ProjectRow, error) {
	var (
		p    ProjectRow
		tags string
	)
	if err := s.Scan(&p.ID, &p.Position, &p.Title, &p.Description, &p.Image, &p.Link, &p.GitHub, &tags, &p.Checksum, &p.UpdatedAt); err != nil {
		return ProjectRow{}, err
	}
	if err := json.Unmarshal([]byte(tags), &p.Tags); err != nil {
		return ProjectRow{}, fmt.Errorf("index: decode tags of %s: %w", p.ID, err)
	}
	return p, nil
}

// GetProject returns one project with its categories. Missing ids yield
// apperr.ErrNotFound.
func (db *DB) GetProject(id string) (*ProjectRow, error) {
	p, err := scanProject(db.conn.QueryRow(`SELECT `+projectColumns+` FROM projects WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("index: project %q: %w", id, apperr.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("index: get project: %w", err)
	}
	cats, err := db.categories(id)
	if err != nil {
		return nil, err
	}
	p.Categories = cats[id]
	return &p, nil
}

// ListProjects returns one page of projects in authored order and the total
// number of matches.
func (db *DB) ListProjects(q ListQuery) ([]ProjectRow, int, error) {
	var (
		where []string
		args  []any
	)
	if q.Category != "" {
		where = append(where, `id IN (SELECT project_id FROM project_categories WHERE category = ?)`)
		args = append(args, q.Category)
	}
	if q.Tag != "" {
		where = append(where, `id IN (SELECT project_id FROM project_tags WHERE tag = ? COLLATE NOCASE)`)
		args = append(args, q.Tag)
	}
	clause := ""
	if len(where) > 0 {
		clause = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	if err := db.conn.QueryRow(`SELECT count(*) FROM projects`+clause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("index: count projects: %w", err)
	}

	limit := q.Limit
	if limit <= 0 {
		limit = -1
	}
	offset := max(q.Offset, 0)
	rows, err := db.conn.Query(`SELECT `+projectColumns+` FROM projects`+clause+` ORDER BY position, id LIMIT ? OFFSET ?`,
		append(args, limit, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("index: list projects: %w", err)
	}
	defer rows.Close()

	var out []ProjectRow
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	cats, err := db.categories("")
	if err != nil {
		return nil, 0, err
	}
	for i := range out {
		out[i].Categories = cats[out[i].ID]
	}
	return out, total, nil
}

// categories maps project ids to their categories. An empty id loads all.
func (db *DB) categories(id string) (map[string][]string, error) {
	query := `SELECT project_id, category FROM project_categories`
	var args []any
	if id != "" {
		query += ` WHERE project_id = ?`
		args = append(args, id)
	}
	rows, err := db.conn.Query(query+` ORDER BY rowid`, args...)
	if err != nil {
		return nil, fmt.Errorf("index: categories: %w", err)
	}
	defer rows.Close()
	out := make(map[string][]string)
	for rows.Next() {
		var pid, cat string
		if err := rows.Scan(&pid, &cat); err != nil {
			return nil, err
		}
		out[pid] = append(out[pid], cat)
	}
	return out, rows.Err()
}

// Tags returns every tag with its project count, most used first.
func (db *DB) Tags() ([]TagCount, error) {
	rows, err := db.conn.Query(`
		SELECT tag, count(*) AS n
		FROM project_tags
		GROUP BY tag
		ORDER BY n DESC, tag
	`)
	if err != nil {
		return nil, fmt.Errorf("index: tags: %w", err)
	}
	defer rows.Close()

	var out []TagCount
	for rows.Next() {
		var tc TagCount
		if err := rows.Scan(&tc.Tag, &tc.Count); err != nil {
			return nil, err
		}
		out = append(out, tc)
	}
	return out, rows.Err()
}

// AllChecksums returns the stored checksum of every indexed project.
func (db *DB) AllChecksums() (map[string]string, error) {
	rows, err := db.conn.Query(`SELECT id, checksum FROM projects`)
	if err != nil {
		return nil, fmt.Errorf("index: all checksums: %w", err)
	}
	defer rows.Close()
	out := make(map[string]string)
	for rows.Next() {
		var id, cs string
		if err := rows.Scan(&id, &cs); err != nil {
			return nil, err
		}
		out[id] = cs
	}
	return out, rows.Err()
}
