package apitype

import (
	"github.com/stretchr/testify/assert"
	"path/filepath"
	"testing"
)

func TestContentReference_String(t *testing.T) {
	a := assert.New(t)

	var nilReference *ContentReference
	a.Equal("ContentReference<nil>", nilReference.String())
	a.Equal("ContentReference<invalid>", NewContentReference("  ").String())
	a.Equal("ContentReference{file:///tmp/a.png}", NewContentReference("file:///tmp/a.png").String())
}

func TestContentReference_Scheme(t *testing.T) {
	a := assert.New(t)

	t.Run("File URI", func(t *testing.T) {
		reference := NewContentReference("file:///tmp/image.jpg")
		a.Equal("file", reference.Scheme())
		a.Equal(filepath.FromSlash("/tmp/image.jpg"), reference.Path())
	})
	t.Run("Bare path", func(t *testing.T) {
		reference := NewContentReference("some/dir/image.jpg")
		a.Equal("file", reference.Scheme())
		a.Equal("some/dir/image.jpg", reference.Path())
	})
	t.Run("Content URI", func(t *testing.T) {
		reference := NewContentReference("CONTENT://media/external/images/12")
		a.Equal("content", reference.Scheme())
		a.Equal("", reference.Path())
	})
	t.Run("Nil", func(t *testing.T) {
		var reference *ContentReference
		a.False(reference.IsValid())
		a.Equal("", reference.Scheme())
		a.Equal("", reference.URI())
	})
}

func TestNewFileReference(t *testing.T) {
	a := assert.New(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "picked.png")
	reference := NewFileReference(path)

	a.True(reference.IsValid())
	a.Equal("file", reference.Scheme())
	a.Equal(path, reference.Path())
}
