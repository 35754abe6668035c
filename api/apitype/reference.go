package apitype

import (
	"net/url"
	"path/filepath"
	"strings"
)

// ContentReference locates a host managed resource, usually as a URI.
// Bare filesystem paths are accepted and treated as file URIs.
type ContentReference struct {
	uri string
}

func NewContentReference(uri string) *ContentReference {
	return &ContentReference{uri: strings.TrimSpace(uri)}
}

func NewFileReference(path string) *ContentReference {
	if absolute, err := filepath.Abs(path); err == nil {
		path = absolute
	}
	return &ContentReference{uri: (&url.URL{Scheme: "file", Path: filepath.ToSlash(path)}).String()}
}

func (s *ContentReference) IsValid() bool {
	return s != nil && s.uri != ""
}

func (s *ContentReference) URI() string {
	if s != nil {
		return s.uri
	} else {
		return ""
	}
}

// Scheme returns the lower case URI scheme or "file" for bare paths.
func (s *ContentReference) Scheme() string {
	if !s.IsValid() {
		return ""
	}
	if parsed, err := url.Parse(s.uri); err == nil && len(parsed.Scheme) > 1 {
		return strings.ToLower(parsed.Scheme)
	}
	return "file"
}

// Path returns the filesystem path for file references and an empty
// string for anything else.
func (s *ContentReference) Path() string {
	if s.Scheme() != "file" {
		return ""
	}
	if parsed, err := url.Parse(s.uri); err == nil && len(parsed.Scheme) > 1 {
		return filepath.FromSlash(parsed.Path)
	}
	return s.uri
}

func (s *ContentReference) String() string {
	if s != nil {
		if s.IsValid() {
			return "ContentReference{" + s.uri + "}"
		} else {
			return "ContentReference<invalid>"
		}
	} else {
		return "ContentReference<nil>"
	}
}
