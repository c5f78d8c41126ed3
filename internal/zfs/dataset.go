package zfs

import (
	"dir-compare/internal/logging"
	"errors"
	"fmt"
	gozfs "github.com/mistifyio/go-zfs"
	"golang.org/x/exp/slices"
	"os"
	"path/filepath"
	"time"
)

const (
	hiddenDirName   = ".zfs"
	snapshotDirName = "snapshot"
)

type Dataset struct {
	Path          string
	HiddenZfsPath string
	// ZfsData is nil if the zfs tooling is not available
	ZfsData *gozfs.Dataset
}

func NewDataset(path string, hiddenZfsPath string) *Dataset {
	dataset := &Dataset{
		Path:          path,
		HiddenZfsPath: hiddenZfsPath,
	}

	datasets, err := gozfs.Filesystems(path)
	if err != nil {
		logging.Debug("Unable to query zfs properties of %s: %v", path, err)
	} else if len(datasets) > 0 {
		dataset.ZfsData = datasets[0]
	}

	return dataset
}

// FindHostDataset returns the dataset containing this path
func FindHostDataset(path string) (*Dataset, error) {
	if path == "" {
		return nil, errors.New("cannot find host dataset for empty path")
	}
	currentPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	for {
		stat, err := os.Stat(currentPath)
		if err == nil && stat.IsDir() {
			pathToTest := filepath.Join(currentPath, hiddenDirName)
			_, err = os.Stat(pathToTest)
			if err == nil {
				return NewDataset(currentPath, pathToTest), nil
			} else if !os.IsNotExist(err) {
				return nil, err
			}
			logging.Debug(".zfs not found in %s, continuing...", currentPath)
		}

		parent := filepath.Dir(currentPath)
		if parent == currentPath {
			return nil, fmt.Errorf("no zfs dataset found for path %s", path)
		}
		currentPath = parent
	}
}

func (dataset *Dataset) GetSnapshotsDir() string {
	return filepath.Join(dataset.HiddenZfsPath, snapshotDirName)
}

// GetSnapshots lists all snapshots of this dataset, oldest first
func (dataset *Dataset) GetSnapshots() ([]*Snapshot, error) {
	entries, err := os.ReadDir(dataset.GetSnapshotsDir())
	if err != nil {
		return nil, err
	}

	result := make([]*Snapshot, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		var creationDate time.Time
		info, err := entry.Info()
		if err != nil {
			logging.Warning("Unable to stat snapshot %s: %v", entry.Name(), err)
		} else {
			creationDate = info.ModTime()
		}
		path := filepath.Join(dataset.GetSnapshotsDir(), entry.Name())
		result = append(result, NewSnapshot(entry.Name(), path, dataset, &creationDate))
	}

	slices.SortStableFunc(result, func(a *Snapshot, b *Snapshot) int {
		return a.Date.Compare(*b.Date)
	})
	return result, nil
}

// FindSnapshot returns the snapshot with the given name
func (dataset *Dataset) FindSnapshot(name string) (*Snapshot, error) {
	snapshots, err := dataset.GetSnapshots()
	if err != nil {
		return nil, err
	}
	for _, snapshot := range snapshots {
		if snapshot.Name == name {
			return snapshot, nil
		}
	}
	return nil, fmt.Errorf("snapshot %s not found in dataset %s", name, dataset.Path)
}
