package zfs

import (
	"path/filepath"
	"strings"
	"time"
)

type Snapshot struct {
	Name          string
	Path          string
	ParentDataset *Dataset
	Date          *time.Time
}

func NewSnapshot(name string, path string, parentDataset *Dataset, date *time.Time) *Snapshot {
	return &Snapshot{
		Name:          name,
		Path:          path,
		ParentDataset: parentDataset,
		Date:          date,
	}
}

// GetSnapshotPath returns the corresponding snapshot path of a file on the dataset
func (s *Snapshot) GetSnapshotPath(path string) string {
	fileWithoutBasePath := strings.TrimPrefix(path, s.ParentDataset.Path)
	return filepath.Join(s.Path, fileWithoutBasePath)
}
