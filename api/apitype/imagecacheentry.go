package apitype

import "image"

// ImageCacheEntry is the decoded image stored behind a table handle.
type ImageCacheEntry struct {
	image     image.Image
	encoding  Encoding
	reference *ContentReference
}

func NewImageCacheEntry(img image.Image, encoding Encoding, reference *ContentReference) *ImageCacheEntry {
	return &ImageCacheEntry{
		image:     img,
		encoding:  encoding,
		reference: reference,
	}
}

func (s *ImageCacheEntry) Image() image.Image {
	if s != nil {
		return s.image
	} else {
		return nil
	}
}

func (s *ImageCacheEntry) Encoding() Encoding {
	if s != nil {
		return s.encoding
	} else {
		return EncodingUnknown
	}
}

func (s *ImageCacheEntry) Reference() *ContentReference {
	if s != nil {
		return s.reference
	} else {
		return nil
	}
}

// ByteSize approximates the memory held by the pixel buffer.
func (s *ImageCacheEntry) ByteSize() int {
	if s == nil || s.image == nil {
		return 0
	}
	if sized, ok := s.image.(interface{ ByteSize() int }); ok {
		return sized.ByteSize()
	}
	const bytesPerPixel = 4
	bounds := s.image.Bounds()
	return bounds.Dx() * bounds.Dy() * bytesPerPixel
}
