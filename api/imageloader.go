package api

import (
	"image"
	"io"
	"vincit.fi/image-picker/api/apitype"
)

// ImageInfo is the result of a header only decode.
type ImageInfo struct {
	Size     apitype.Size
	MimeType string
}

type ImageReader interface {
	DecodeBounds(io.Reader) (*ImageInfo, error)
	DecodeSampled(r io.Reader, sampleSize int) (image.Image, *ImageInfo, error)
	DecodeFull(io.Reader) (image.Image, *ImageInfo, error)
}
