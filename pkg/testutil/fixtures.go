package testutil

import (
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// Tree builds an exhibition folder under a temporary directory
type Tree struct {
	t    *testing.T
	Root string
}

// NewTree creates an empty exhibition folder named name
func NewTree(t *testing.T, name string) *Tree {
	t.Helper()
	root := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.MkdirAll(root, 0o755))
	return &Tree{t: t, Root: root}
}

// Path joins elem onto the tree root
func (tr *Tree) Path(elem ...string) string {
	return filepath.Join(append([]string{tr.Root}, elem...)...)
}

// Dir creates a directory below the root and returns its path
func (tr *Tree) Dir(elem ...string) string {
	tr.t.Helper()
	p := tr.Path(elem...)
	require.NoError(tr.t, os.MkdirAll(p, 0o755))
	return p
}

// File writes content to a file below the root, creating parents
func (tr *Tree) File(content string, elem ...string) string {
	tr.t.Helper()
	p := tr.Path(elem...)
	require.NoError(tr.t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(tr.t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

// PNG writes a blank width x height PNG below the root
func (tr *Tree) PNG(width, height int, elem ...string) string {
	tr.t.Helper()
	return tr.image(width, height, func(f *os.File, img image.Image) error {
		return png.Encode(f, img)
	}, elem...)
}

// JPEG writes a blank width x height JPEG below the root
func (tr *Tree) JPEG(width, height int, elem ...string) string {
	tr.t.Helper()
	return tr.image(width, height, func(f *os.File, img image.Image) error {
		return jpeg.Encode(f, img, nil)
	}, elem...)
}

func (tr *Tree) image(width, height int, encode func(*os.File, image.Image) error, elem ...string) string {
	tr.t.Helper()
	p := tr.Path(elem...)
	require.NoError(tr.t, os.MkdirAll(filepath.Dir(p), 0o755))

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	img.Set(0, 0, color.White)

	f, err := os.Create(p)
	require.NoError(tr.t, err)
	defer f.Close()
	require.NoError(tr.t, encode(f, img))
	return p
}
