package api

import "vincit.fi/image-picker/api/apitype"

// HandleTable is the runtime owned table mapping handles to decoded images.
type HandleTable interface {
	CreatePlaceholder() apitype.Handle
	PutImage(apitype.Handle, *apitype.ImageCacheEntry) error
	Release(apitype.Handle) bool
}

// DataObjectRegistry registers opaque byte buffers with the runtime.
type DataObjectRegistry interface {
	CreateDataObject(data []byte) (apitype.Handle, error)
}

type ResourceTable interface {
	HandleTable
	DataObjectRegistry
	Image(apitype.Handle) (*apitype.ImageCacheEntry, bool)
	Data(apitype.Handle) ([]byte, bool)
	ByteSize() uint64
}
