//go:build sqlite_fts5

package index

import "testing"

func TestFTS5_TableExists(t *testing.T) {
	db := testDB(t)
	var count int
	if err := db.conn.QueryRow(`SELECT count(*) FROM projects_fts`).Scan(&count); err != nil {
		t.Fatalf("projects_fts table missing: %v", err)
	}
}

func TestFTS5_SearchWithSnippet(t *testing.T) {
	db := testDB(t)
	row := ProjectRow{
		ID:          "fts",
		Title:       "FTS Project",
		Description: "Folio provides powerful full-text search capabilities.",
		Checksum:    "f1",
		Tags:        []string{"search"},
	}
	if err := db.UpsertProject(row); err != nil {
		t.Fatalf("UpsertProject: %v", err)
	}

	results, err := db.Search("power", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].ID != "fts" {
		t.Errorf("id = %q", results[0].ID)
	}
	if results[0].Snippet == "" {
		t.Error("expected non-empty snippet")
	}
}

func TestFTS5_QuerySyntaxIsEscaped(t *testing.T) {
	db := testDB(t)
	_ = db.UpsertProject(ProjectRow{ID: "q", Title: "React Native", Checksum: "1"})

	for _, q := range []string{`"react`, `native AND (`, `-react`, `title:react`} {
		if _, err := db.Search(q, 10); err != nil {
			t.Errorf("Search(%q): %v", q, err)
		}
	}
}

func TestFTS5_DeleteRemovesFromFTS(t *testing.T) {
	db := testDB(t)
	_ = db.UpsertProject(ProjectRow{ID: "gone", Checksum: "g", Description: "vanishing content"})
	_ = db.DeleteProject("gone")

	results, _ := db.Search("vanishing", 10)
	for _, r := range results {
		if r.ID == "gone" {
			t.Error("deleted project still in FTS index")
		}
	}
}

func TestFTS5_UpsertReplacesContent(t *testing.T) {
	db := testDB(t)
	_ = db.UpsertProject(ProjectRow{ID: "evo", Title: "Old", Checksum: "1", Description: "original text"})
	_ = db.UpsertProject(ProjectRow{ID: "evo", Title: "New", Checksum: "2", Description: "replacement text"})

	results, _ := db.Search("original", 10)
	if len(results) != 0 {
		t.Error("old FTS content should be gone")
	}
	results, _ = db.Search("replacement", 10)
	if len(results) != 1 || results[0].Title != "New" {
		t.Errorf("FTS not updated: %+v", results)
	}
}
