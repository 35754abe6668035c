package apitype

import (
	"fmt"
	"image"
)

type Size struct {
	width  int
	height int
}

func SizeOf(width int, height int) Size {
	return Size{width, height}
}

func SizeFromRectangle(rectangle image.Rectangle) Size {
	return Size{
		width:  rectangle.Dx(),
		height: rectangle.Dy(),
	}
}

func (s Size) Width() int {
	return s.width
}

func (s Size) Height() int {
	return s.height
}

// Subsampled divides both dimensions by sampleSize with integer division.
func (s Size) Subsampled(sampleSize int) Size {
	if sampleSize < 1 {
		sampleSize = 1
	}
	return Size{
		width:  s.width / sampleSize,
		height: s.height / sampleSize,
	}
}

// ByteSize is the buffer size needed to hold the pixels.
func (s Size) ByteSize(bytesPerPixel int) int64 {
	return int64(bytesPerPixel) * int64(s.width) * int64(s.height)
}

func (s Size) IsEmpty() bool {
	return s.width <= 0 || s.height <= 0
}

func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.width, s.height)
}
