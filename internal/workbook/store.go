package workbook

import "github.com/desertthunder/cratedig/internal/models"

// Store binds LoadResults and WriteResults to a fixed workbook path.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the workbook location backing the store.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) Load() (*models.ResultTable, error) {
	return LoadResults(s.path)
}

func (s *Store) Save(table *models.ResultTable) error {
	return WriteResults(s.path, table)
}
