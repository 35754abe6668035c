package resource

import (
	"errors"
	"fmt"
	"sync"
	"vincit.fi/image-picker/api"
	"vincit.fi/image-picker/api/apitype"
	"vincit.fi/image-picker/common/logger"
)

var (
	ErrUnknownHandle = errors.New("handle is not a placeholder")
	ErrHandleInUse   = errors.New("handle already has a resource")
	ErrNoImage       = errors.New("no image to store")
)

type resource struct {
	image *apitype.ImageCacheEntry
	data  []byte
}

func (s *resource) byteSize() int {
	if s == nil {
		return 0
	}
	return s.image.ByteSize() + len(s.data)
}

// Table is an in-process resource table holding images and data objects
// behind integer handles. Handles start at 1 and are never reused.
type Table struct {
	resources  map[apitype.Handle]*resource
	nextHandle apitype.Handle
	mux        sync.Mutex

	api.ResourceTable
}

func NewTable() *Table {
	logger.Debug.Printf("Initialize resource table...")
	return &Table{
		resources:  map[apitype.Handle]*resource{},
		nextHandle: 1,
	}
}

// CreatePlaceholder reserves a handle that can be filled with PutImage.
func (s *Table) CreatePlaceholder() apitype.Handle {
	s.mux.Lock()
	defer s.mux.Unlock()
	return s.reserve()
}

func (s *Table) reserve() apitype.Handle {
	handle := s.nextHandle
	s.nextHandle++
	s.resources[handle] = nil
	logger.Trace.Printf("Reserved %s", handle)
	return handle
}

func (s *Table) PutImage(handle apitype.Handle, entry *apitype.ImageCacheEntry) error {
	if entry == nil || entry.Image() == nil {
		return ErrNoImage
	}
	s.mux.Lock()
	defer s.mux.Unlock()

	existing, found := s.resources[handle]
	if !found {
		return fmt.Errorf("%w: %s", ErrUnknownHandle, handle)
	}
	if existing != nil {
		return fmt.Errorf("%w: %s", ErrHandleInUse, handle)
	}
	s.resources[handle] = &resource{image: entry}
	logger.Debug.Printf("Stored image %s (%d bytes) to %s", entry.Reference(), entry.ByteSize(), handle)
	return nil
}

func (s *Table) CreateDataObject(data []byte) (apitype.Handle, error) {
	s.mux.Lock()
	defer s.mux.Unlock()

	handle := s.reserve()
	copied := make([]byte, len(data))
	copy(copied, data)
	s.resources[handle] = &resource{data: copied}
	logger.Debug.Printf("Stored data object of %d bytes to %s", len(copied), handle)
	return handle, nil
}

func (s *Table) Image(handle apitype.Handle) (*apitype.ImageCacheEntry, bool) {
	s.mux.Lock()
	defer s.mux.Unlock()
	if existing := s.resources[handle]; existing != nil && existing.image != nil {
		return existing.image, true
	}
	return nil, false
}

func (s *Table) Data(handle apitype.Handle) ([]byte, bool) {
	s.mux.Lock()
	defer s.mux.Unlock()
	if existing := s.resources[handle]; existing != nil && existing.data != nil {
		return existing.data, true
	}
	return nil, false
}

// Release drops the resource and its placeholder. Returns false for
// unknown handles.
func (s *Table) Release(handle apitype.Handle) bool {
	s.mux.Lock()
	defer s.mux.Unlock()
	if _, found := s.resources[handle]; !found {
		return false
	}
	delete(s.resources, handle)
	logger.Trace.Printf("Released %s", handle)
	return true
}

func (s *Table) ByteSize() (byteSize uint64) {
	s.mux.Lock()
	defer s.mux.Unlock()
	for _, existing := range s.resources {
		byteSize += uint64(existing.byteSize())
	}
	return
}
