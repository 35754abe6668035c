package picker

import "vincit.fi/image-picker/api/apitype"

const (
	// MaxDecodedByteSize is the ceiling for an image decoded in handle mode.
	MaxDecodedByteSize int64 = 1572864

	decodeBytesPerPixel = 2
	// data mode sizes the raw read as if the image was decoded to ARGB.
	dataBytesPerPixel = 4
)

// CalculateSampleSize returns the smallest divisor for which the
// subsampled image fits in maxByteSize at two bytes per pixel.
func CalculateSampleSize(size apitype.Size, maxByteSize int64) int {
	if maxByteSize < 0 {
		maxByteSize = 0
	}
	sampleSize := 1
	for size.Subsampled(sampleSize).ByteSize(decodeBytesPerPixel) > maxByteSize {
		sampleSize++
	}
	return sampleSize
}
