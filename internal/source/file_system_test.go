package source

import (
	"dir-compare/internal/data"
	"dir-compare/internal/data/diff_state"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"os"
	"path/filepath"
	"testing"
	"time"
)

var baseTime = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func writeFile(t *testing.T, fs afero.Fs, path string, content string, offset time.Duration) {
	t.Helper()
	require.NoError(t, fs.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0644))
	modTime := baseTime.Add(offset)
	require.NoError(t, fs.Chtimes(path, modTime, modTime))
}

func newProvider(t *testing.T, fs afero.Fs, ignore ...string) *FileSystemProvider {
	t.Helper()
	provider, err := NewFileSystemProvider(fs, nil, ignore)
	require.NoError(t, err)
	return provider
}

func resolve(t *testing.T, provider Provider, path string) any {
	t.Helper()
	handle, err := provider.DataFor(nil, path)
	require.NoError(t, err)
	return handle
}

func TestFileSystemProvider_Children(t *testing.T) {
	// GIVEN
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/left/b.txt", "b", 0)
	writeFile(t, fs, "/left/a.txt", "a", 0)
	writeFile(t, fs, "/left/sub/c.txt", "c", 0)
	provider := newProvider(t, fs)

	// WHEN
	children, err := provider.Children("/left", resolve(t, provider, "/left"), data.Left)

	// THEN
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt", "b.txt", "sub"}, children)
}

func TestFileSystemProvider_ChildrenOfAbsentOrFile(t *testing.T) {
	// GIVEN
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/left/a.txt", "a", 0)
	provider := newProvider(t, fs)

	// WHEN
	absent, absentErr := provider.Children("", nil, data.Right)
	file, fileErr := provider.Children("/left/a.txt", resolve(t, provider, "/left/a.txt"), data.Left)

	// THEN
	assert.NoError(t, absentErr)
	assert.Empty(t, absent)
	assert.NoError(t, fileErr)
	assert.Empty(t, file)
}

func TestFileSystemProvider_IgnorePatterns(t *testing.T) {
	// GIVEN
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/left/a.txt", "a", 0)
	writeFile(t, fs, "/left/a.txt~", "a", 0)
	writeFile(t, fs, "/left/.git/HEAD", "ref", 0)
	writeFile(t, fs, "/left/only-ignored/x.tmp", "x", 0)
	provider := newProvider(t, fs, "*~", ".git", "*.tmp")

	// WHEN
	children, err := provider.Children("/left", resolve(t, provider, "/left"), data.Left)
	leaf, leafErr := provider.IsLeaf("/left/only-ignored", resolve(t, provider, "/left/only-ignored"))

	// THEN
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt", "only-ignored"}, children)
	require.NoError(t, leafErr)
	assert.True(t, leaf)
}

func TestFileSystemProvider_InvalidIgnorePattern(t *testing.T) {
	// WHEN
	_, err := NewFileSystemProvider(afero.NewMemMapFs(), nil, []string{"[unterminated"})

	// THEN
	assert.Error(t, err)
}

func TestFileSystemProvider_IsLeaf(t *testing.T) {
	// GIVEN
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/left/file.txt", "f", 0)
	writeFile(t, fs, "/left/full/file.txt", "f", 0)
	require.NoError(t, fs.MkdirAll("/left/empty", 0755))
	provider := newProvider(t, fs)

	tests := []struct {
		path     string
		expected bool
	}{
		{"/left/file.txt", true},
		{"/left/empty", true},
		{"/left/full", false},
		{"/left", false},
	}

	for _, tt := range tests {
		// WHEN
		leaf, err := provider.IsLeaf(tt.path, resolve(t, provider, tt.path))

		// THEN
		require.NoError(t, err)
		assert.Equal(t, tt.expected, leaf, tt.path)
	}
}

func TestFileSystemProvider_DataFor(t *testing.T) {
	// GIVEN
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/left/dir/a.txt", "a", 0)
	provider := newProvider(t, fs)
	parent := resolve(t, provider, "/left/dir")

	// WHEN
	child, err := provider.DataFor(parent, "a.txt")
	_, missingErr := provider.DataFor(parent, "missing.txt")

	// THEN
	require.NoError(t, err)
	entry := child.(*Entry)
	assert.Equal(t, "/left/dir/a.txt", entry.Path)
	assert.Equal(t, int64(1), entry.Info.Size())
	assert.True(t, os.IsNotExist(missingErr))
	assert.Equal(t, "/left/dir/a.txt", provider.PathFor("/left/dir", "a.txt"))
}

func TestFileSystemProvider_LeafStateOrientation(t *testing.T) {
	// GIVEN
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/left/newer.txt", "x", 20*time.Second)
	writeFile(t, fs, "/right/newer.txt", "x", 10*time.Second)
	writeFile(t, fs, "/left/same.txt", "x", 10*time.Second)
	writeFile(t, fs, "/right/same.txt", "x", 10*time.Second)
	writeFile(t, fs, "/left/older.txt", "x", 10*time.Second)
	writeFile(t, fs, "/right/older.txt", "x", 20*time.Second)
	provider := newProvider(t, fs)

	tests := []struct {
		name          string
		left          any
		right         any
		expectedLeft  diff_state.DiffState
		expectedRight diff_state.DiffState
	}{
		{"left newer", resolve(t, provider, "/left/newer.txt"), resolve(t, provider, "/right/newer.txt"), diff_state.New, diff_state.Old},
		{"equal", resolve(t, provider, "/left/same.txt"), resolve(t, provider, "/right/same.txt"), diff_state.Same, diff_state.Same},
		{"right newer", resolve(t, provider, "/left/older.txt"), resolve(t, provider, "/right/older.txt"), diff_state.Old, diff_state.New},
		{"left only", resolve(t, provider, "/left/same.txt"), nil, diff_state.New, diff_state.Old},
		{"right only", nil, resolve(t, provider, "/right/same.txt"), diff_state.Old, diff_state.New},
		{"neither", nil, nil, diff_state.Unchecked, diff_state.Unchecked},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// WHEN
			left, right := provider.LeafState(tt.left, tt.right)

			// THEN
			assert.Equal(t, tt.expectedLeft, left)
			assert.Equal(t, tt.expectedRight, right)
		})
	}
}

func TestFileSystemProvider_SizeCriterion(t *testing.T) {
	// GIVEN
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/left/a.txt", "longer content", 0)
	writeFile(t, fs, "/right/a.txt", "short", 0)
	provider, err := NewFileSystemProvider(fs, BySize(), nil)
	require.NoError(t, err)

	// WHEN
	left, right := provider.LeafState(resolve(t, provider, "/left/a.txt"), resolve(t, provider, "/right/a.txt"))

	// THEN
	assert.Equal(t, diff_state.New, left)
	assert.Equal(t, diff_state.Old, right)
}

func TestByModTime_Precision(t *testing.T) {
	// GIVEN
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/left/a.txt", "a", 500*time.Millisecond)
	writeFile(t, fs, "/right/a.txt", "a", 0)
	left, err := fs.Stat("/left/a.txt")
	require.NoError(t, err)
	right, err := fs.Stat("/right/a.txt")
	require.NoError(t, err)

	// WHEN
	exact := ByModTime(0)(left, right)
	coarse := ByModTime(2 * time.Second)(left, right)

	// THEN
	assert.Equal(t, 1, exact)
	assert.Equal(t, 0, coarse)
}

func TestParseCriterion(t *testing.T) {
	_, err := ParseCriterion("modtime", 0)
	assert.NoError(t, err)
	_, err = ParseCriterion("", 0)
	assert.NoError(t, err)
	_, err = ParseCriterion(" Size ", 0)
	assert.NoError(t, err)
	_, err = ParseCriterion("checksum", 0)
	assert.Error(t, err)
}

func TestStatesFor(t *testing.T) {
	left, right := StatesFor(5)
	assert.Equal(t, diff_state.New, left)
	assert.Equal(t, diff_state.Old, right)

	left, right = StatesFor(-1)
	assert.Equal(t, diff_state.Old, left)
	assert.Equal(t, diff_state.New, right)

	left, right = StatesFor(0)
	assert.Equal(t, diff_state.Same, left)
	assert.Equal(t, diff_state.Same, right)
}
