package resolver

import (
	"errors"
	"fmt"
	"io"
	"os"
	"vincit.fi/image-picker/api"
	"vincit.fi/image-picker/api/apitype"
)

var (
	ErrInvalidReference  = errors.New("invalid content reference")
	ErrUnsupportedScheme = errors.New("unsupported content reference scheme")
)

// FileSystemResolver opens file:// references and bare paths.
type FileSystemResolver struct {
	api.ContentResolver
}

func NewFileSystemResolver() *FileSystemResolver {
	return &FileSystemResolver{}
}

func (s *FileSystemResolver) Open(reference *apitype.ContentReference) (io.ReadCloser, error) {
	if !reference.IsValid() {
		return nil, ErrInvalidReference
	}
	if scheme := reference.Scheme(); scheme != "file" {
		return nil, fmt.Errorf("%w: '%s'", ErrUnsupportedScheme, scheme)
	}

	file, err := os.Open(reference.Path())
	if err != nil {
		return nil, err
	}
	if stat, err := file.Stat(); err != nil {
		_ = file.Close()
		return nil, err
	} else if stat.IsDir() {
		_ = file.Close()
		return nil, fmt.Errorf("'%s' is a directory", reference.Path())
	}
	return file, nil
}
