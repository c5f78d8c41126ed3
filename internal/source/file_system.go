package source

import (
	"dir-compare/internal/data"
	"dir-compare/internal/data/diff_state"
	"fmt"
	"github.com/gobwas/glob"
	"github.com/spf13/afero"
	"os"
	"path/filepath"
)

// Entry is the data handle of the FileSystemProvider.
type Entry struct {
	Path string
	Info os.FileInfo
}

// FileSystemProvider compares two directory trees. Regular files, symlinks and empty
// directories are leaves, directories with at least one (not ignored) entry are containers.
type FileSystemProvider struct {
	fs        afero.Fs
	criterion Criterion
	ignore    []glob.Glob
}

// NewFileSystemProvider creates a provider on top of fs (the OS filesystem if nil).
// ignorePatterns are glob patterns matched against entry names, matching entries are skipped.
func NewFileSystemProvider(fs afero.Fs, criterion Criterion, ignorePatterns []string) (*FileSystemProvider, error) {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if criterion == nil {
		criterion = ByModTime(0)
	}

	provider := &FileSystemProvider{
		fs:        fs,
		criterion: criterion,
	}
	for _, pattern := range ignorePatterns {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid ignore pattern %q: %w", pattern, err)
		}
		provider.ignore = append(provider.ignore, g)
	}

	return provider, nil
}

func (p *FileSystemProvider) Children(path string, handle any, side data.Side) ([]string, error) {
	if handle == nil {
		return nil, nil
	}
	entry, err := asEntry(handle)
	if err != nil {
		return nil, err
	}
	if !entry.Info.IsDir() {
		return nil, nil
	}

	infos, err := afero.ReadDir(p.fs, entry.Path)
	if err != nil {
		return nil, fmt.Errorf("unable to list %s side %s: %w", side, entry.Path, err)
	}

	result := make([]string, 0, len(infos))
	for _, info := range infos {
		if p.isIgnored(info.Name()) {
			continue
		}
		result = append(result, info.Name())
	}
	return result, nil
}

func (p *FileSystemProvider) IsLeaf(path string, handle any) (bool, error) {
	if handle == nil {
		return true, nil
	}
	entry, err := asEntry(handle)
	if err != nil {
		return false, err
	}
	if !entry.Info.IsDir() {
		return true, nil
	}

	infos, err := afero.ReadDir(p.fs, entry.Path)
	if err != nil {
		return false, fmt.Errorf("unable to list %s: %w", entry.Path, err)
	}
	for _, info := range infos {
		if !p.isIgnored(info.Name()) {
			return false, nil
		}
	}
	return true, nil
}

func (p *FileSystemProvider) DataFor(parentData any, key string) (any, error) {
	path := key
	if parentData != nil {
		parent, err := asEntry(parentData)
		if err != nil {
			return nil, err
		}
		path = p.PathFor(parent.Path, key)
	}

	info, err := p.lstat(path)
	if err != nil {
		return nil, err
	}
	return &Entry{
		Path: path,
		Info: info,
	}, nil
}

func (p *FileSystemProvider) PathFor(parentPath string, key string) string {
	return filepath.Join(parentPath, key)
}

func (p *FileSystemProvider) LeafState(leftData any, rightData any) (diff_state.DiffState, diff_state.DiffState) {
	left, leftErr := asEntry(leftData)
	right, rightErr := asEntry(rightData)

	switch {
	case leftData == nil && rightData == nil:
		return diff_state.Unchecked, diff_state.Unchecked
	case leftData == nil:
		return diff_state.Old, diff_state.New
	case rightData == nil:
		return diff_state.New, diff_state.Old
	case leftErr != nil || rightErr != nil:
		return diff_state.Unchecked, diff_state.Unchecked
	}

	return StatesFor(p.criterion(left.Info, right.Info))
}

func (p *FileSystemProvider) isIgnored(name string) bool {
	for _, g := range p.ignore {
		if g.Match(name) {
			return true
		}
	}
	return false
}

// lstat does not follow symlinks where the filesystem supports it, which keeps
// links to parent directories from creating cycles.
func (p *FileSystemProvider) lstat(path string) (os.FileInfo, error) {
	if lstater, ok := p.fs.(afero.Lstater); ok {
		info, _, err := lstater.LstatIfPossible(path)
		return info, err
	}
	return p.fs.Stat(path)
}

func asEntry(handle any) (*Entry, error) {
	entry, ok := handle.(*Entry)
	if !ok || entry == nil || entry.Info == nil {
		return nil, fmt.Errorf("unexpected data handle %T", handle)
	}
	return entry, nil
}
