package fsutil

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteAtomic_FailureKeepsDestination(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "out", "data.csv")
	require.NoError(t, WriteFileAtomic(dest, []byte("v1"), 0o644))

	boom := errors.New("boom")
	err := WriteAtomic(dest, 0o644, func(w io.Writer) error {
		_, _ = io.WriteString(w, "partial")
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "v1", string(got))

	entries, err := os.ReadDir(filepath.Dir(dest))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "le fichier temporaire doit être supprimé")
}

func TestDirHelpers(t *testing.T) {
	dir := t.TempDir()
	empty, err := IsDirEmpty(dir)
	require.NoError(t, err)
	assert.True(t, empty)

	ok, err := DirHasMatchingFiles(dir, []string{"*.txt.tmpl"})
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "overlap.txt.tmpl"), []byte("x"), 0o644))
	ok, err = DirHasMatchingFiles(dir, []string{"*.md", "*.txt.tmpl"})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = DirHasMatchingFiles(filepath.Join(dir, "absent"), []string{"*"})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"India", "India"},
		{"Coke: Studio/Pakistan", "Coke- Studio Pakistan"},
		{"  a   b.. ", "a b"},
		{"", "untitled"},
		{"???", "untitled"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, SanitizeFilename(tc.in), tc.in)
	}

	long := SanitizeFilename(strings.Repeat("é", 150))
	assert.LessOrEqual(t, len(long), maxNameLen)
	assert.True(t, strings.HasPrefix(strings.Repeat("é", 150), long))
}
