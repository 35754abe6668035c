package imagereader

import (
	"image"
	"io"

	"github.com/disintegration/imaging"
	"github.com/rwcarlsen/goexif/exif"
	"vincit.fi/image-picker/common/logger"
)

// Orientation is the EXIF orientation tag value (1-8).
type Orientation int

const (
	OrientationNormal     Orientation = 1
	OrientationFlipH      Orientation = 2
	OrientationRotate180  Orientation = 3
	OrientationFlipV      Orientation = 4
	OrientationTranspose  Orientation = 5
	OrientationRotate90   Orientation = 6
	OrientationTransverse Orientation = 7
	OrientationRotate270  Orientation = 8
)

// ReadOrientation returns OrientationNormal when the image carries no
// usable EXIF data.
func ReadOrientation(r io.Reader) Orientation {
	decoded, err := exif.Decode(r)
	if err != nil {
		logger.Trace.Printf("No EXIF data: %s", err)
		return OrientationNormal
	}
	tag, err := decoded.Get(exif.Orientation)
	if err != nil {
		return OrientationNormal
	}
	value, err := tag.Int(0)
	if err != nil || value < int(OrientationNormal) || value > int(OrientationRotate270) {
		logger.Debug.Printf("Ignoring invalid EXIF orientation %d", value)
		return OrientationNormal
	}
	return Orientation(value)
}

// ApplyOrientation transforms img so that it displays upright.
func ApplyOrientation(img image.Image, orientation Orientation) image.Image {
	switch orientation {
	case OrientationFlipH:
		return imaging.FlipH(img)
	case OrientationRotate180:
		return imaging.Rotate180(img)
	case OrientationFlipV:
		return imaging.FlipV(img)
	case OrientationTranspose:
		return imaging.Transpose(img)
	case OrientationRotate90:
		return imaging.Rotate270(img)
	case OrientationTransverse:
		return imaging.Transverse(img)
	case OrientationRotate270:
		return imaging.Rotate90(img)
	}
	return img
}
