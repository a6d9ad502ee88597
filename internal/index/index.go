package index

// Catalog defines the project catalog operations.
// Consumers should depend on this interface rather than the concrete *DB type
// to facilitate testing with fakes.
type Catalog interface {
	UpsertProject(p ProjectRow) error
	DeleteProject(id string) error
	GetProject(id string) (*ProjectRow, error)
	ListProjects(q ListQuery) ([]ProjectRow, int, error)
	Search(query string, limit int) ([]SearchResult, error)
	Tags() ([]TagCount, error)
	AllChecksums() (map[string]string, error)
	Close() error
}

// Verify *DB satisfies Catalog at compile time.
var _ Catalog = (*DB)(nil)
