package index

import (
	"log/slog"

	"github.com/starford/folio/internal/checksum"
	"github.com/starford/folio/internal/models"
)

// SyncResult counts the changes a Sync applied.
type SyncResult struct {
	Indexed   int
	Removed   int
	Unchanged int
}

// Sync brings the catalog up to date with p:
//   - new/changed projects are upserted
//   - projects no longer in p are deleted
func Sync(db Catalog, p *models.Portfolio, logger *slog.Logger) (SyncResult, error) {
	var res SyncResult

	checksums, err := db.AllChecksums()
	if err != nil {
		return res, err
	}

	current := make(map[string]struct{}, len(p.Projects))
	for i, pr := range p.Projects {
		current[pr.ID] = struct{}{}

		row, err := rowOf(p, i)
		if err != nil {
			return res, err
		}
		if checksums[pr.ID] == row.Checksum {
			res.Unchanged++
			continue
		}
		if err := db.UpsertProject(row); err != nil {
			logger.Warn("sync: index failed", slog.String("project", pr.ID), slog.String("error", err.Error()))
			continue
		}
		res.Indexed++
		logger.Debug("sync: indexed", slog.String("project", pr.ID))
	}

	// Remove stale entries.
	for id := range checksums {
		if _, ok := current[id]; ok {
			continue
		}
		if err := db.DeleteProject(id); err != nil {
			logger.Warn("sync: delete failed", slog.String("project", id), slog.String("error", err.Error()))
			continue
		}
		res.Removed++
		logger.Debug("sync: removed stale", slog.String("project", id))
	}

	return res, nil
}

// rowOf builds the catalog row of the i-th project, checksummed over every
// indexed field.
func rowOf(p *models.Portfolio, i int) (ProjectRow, error) {
	pr := p.Projects[i]
	row := ProjectRow{
		ID:          pr.ID,
		Position:    i,
		Title:       pr.Title,
		Description: pr.Description,
		Image:       pr.Image,
		Link:        pr.Link,
		GitHub:      pr.GitHub,
		Tags:        pr.Tags,
		Categories:  p.Categories(pr.ID),
	}
	if row.Tags == nil {
		row.Tags = []string{}
	}
	cs, err := checksum.SumJSON(row)
	if err != nil {
		return ProjectRow{}, err
	}
	row.Checksum = cs
	return row, nil
}
