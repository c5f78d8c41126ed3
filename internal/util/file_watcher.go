package util

import (
	"dir-compare/internal/logging"
	"github.com/fsnotify/fsnotify"
	"io/fs"
	"path/filepath"
	"sync"
	"time"
)

// FileWatcher watches one or more directory trees and calls an action
// at most once per debounce interval while changes keep coming in.
type FileWatcher struct {
	RootPaths []string
	Debounce  time.Duration

	stop     chan bool
	stopOnce sync.Once
	watcher  *fsnotify.Watcher
}

func NewFileWatcher(debounce time.Duration, paths ...string) *FileWatcher {
	if debounce <= 0 {
		debounce = time.Second
	}
	return &FileWatcher{
		RootPaths: paths,
		Debounce:  debounce,
		stop:      make(chan bool),
	}
}

// Watch starts watching all root paths recursively. action receives the path
// of the most recent change.
func (fileWatcher *FileWatcher) Watch(action func(path string)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	fileWatcher.watcher = watcher

	for _, rootPath := range fileWatcher.RootPaths {
		if err := filepath.WalkDir(rootPath, fileWatcher.addFolderWatch); err != nil {
			_ = watcher.Close()
			return err
		}
	}

	go fileWatcher.run(action)
	return nil
}

func (fileWatcher *FileWatcher) Stop() {
	fileWatcher.stopOnce.Do(func() {
		close(fileWatcher.stop)
	})
}

func (fileWatcher *FileWatcher) run(action func(path string)) {
	t := time.NewTicker(fileWatcher.Debounce)
	defer t.Stop()

	var newEvent *fsnotify.Event
	for {
		select {
		case <-t.C:
			if newEvent == nil {
				continue
			}
			event := newEvent
			newEvent = nil
			action(event.Name)
		// watch for events
		case event, ok := <-fileWatcher.watcher.Events:
			if !ok {
				return
			}
			if event.Has(fsnotify.Create) {
				// new directories have to be watched as well
				if err := filepath.WalkDir(event.Name, fileWatcher.addFolderWatch); err != nil {
					logging.Debug("Unable to watch %s: %v", event.Name, err)
				}
			}
			newEvent = &event
		// watch for errors
		case err, ok := <-fileWatcher.watcher.Errors:
			if !ok {
				return
			}
			logging.Error("File watcher error: %v", err)
		case <-fileWatcher.stop:
			err := fileWatcher.watcher.Close()
			if err != nil {
				logging.Error("Unable to close file watcher: %v", err)
			}
			return
		}
	}
}

// adds a path to the watcher
func (fileWatcher *FileWatcher) addFolderWatch(path string, entry fs.DirEntry, err error) error {
	// since fsnotify can watch all the files in a directory, watchers only need
	// to be added to each nested directory
	if err != nil {
		return err
	}

	if entry.IsDir() {
		return fileWatcher.watcher.Add(path)
	}

	return nil
}
