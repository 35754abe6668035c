package imagereader

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/png"
	"io"
	"time"

	"github.com/nfnt/resize"
	"github.com/pixiv/go-libjpeg/jpeg"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
	"vincit.fi/image-picker/api"
	"vincit.fi/image-picker/api/apitype"
	"vincit.fi/image-picker/common/logger"
	"vincit.fi/image-picker/common/pixbuf"
)

var (
	ErrNoImage     = errors.New("decoder returned no image")
	ErrRead        = errors.New("cannot read image")
	jpegMagic      = []byte{0xff, 0xd8}
	defaultOptions = &jpeg.DecoderOptions{}
)

// Reader decodes picked images. JPEG goes through libjpeg so that large
// photos can be scaled down while decoding; everything else uses the
// registered Go decoders.
type Reader struct {
	applyOrientation bool

	api.ImageReader
}

func NewReader(applyOrientation bool) *Reader {
	return &Reader{applyOrientation: applyOrientation}
}

func (s *Reader) DecodeBounds(r io.Reader) (*api.ImageInfo, error) {
	buffered := bufio.NewReader(r)
	if isJPEG(buffered) {
		config, err := jpeg.DecodeConfig(buffered)
		if err != nil {
			return nil, fmt.Errorf("decode jpeg bounds: %w", err)
		}
		return &api.ImageInfo{Size: apitype.SizeOf(config.Width, config.Height), MimeType: "image/jpeg"}, nil
	}

	config, format, err := image.DecodeConfig(buffered)
	if err != nil {
		return nil, fmt.Errorf("decode bounds: %w", err)
	}
	return &api.ImageInfo{Size: apitype.SizeOf(config.Width, config.Height), MimeType: mimeTypeOf(format)}, nil
}

// DecodeSampled decodes the image so that both dimensions are divided by
// sampleSize. The result is always an RGB565 buffer of at least 1x1.
func (s *Reader) DecodeSampled(r io.Reader, sampleSize int) (image.Image, *api.ImageInfo, error) {
	startTime := time.Now()
	if sampleSize < 1 {
		sampleSize = 1
	}

	data, orientation, err := s.readAll(r)
	if err != nil {
		return nil, nil, err
	}

	var decoded image.Image
	var mimeType string
	if bytes.HasPrefix(data, jpegMagic) {
		mimeType = "image/jpeg"
		decoded, err = decodeJPEGSampled(data, sampleSize)
	} else {
		var format string
		decoded, format, err = image.Decode(bytes.NewReader(data))
		mimeType = mimeTypeOf(format)
		if err == nil && decoded != nil {
			decoded = subsample(decoded, apitype.SizeFromRectangle(decoded.Bounds()).Subsampled(sampleSize))
		}
	}
	if err != nil {
		return nil, nil, fmt.Errorf("decode image: %w", err)
	}
	if decoded == nil {
		return nil, nil, ErrNoImage
	}

	result := pixbuf.FromImage(ApplyOrientation(decoded, orientation))
	logger.Trace.Printf("Decoded %s at sample size %d in %s", apitype.SizeFromRectangle(result.Bounds()), sampleSize, time.Since(startTime))

	return result, &api.ImageInfo{Size: apitype.SizeFromRectangle(result.Bounds()), MimeType: mimeType}, nil
}

// DecodeFull decodes the image at full resolution without conversion.
func (s *Reader) DecodeFull(r io.Reader) (image.Image, *api.ImageInfo, error) {
	data, orientation, err := s.readAll(r)
	if err != nil {
		return nil, nil, err
	}

	var decoded image.Image
	var mimeType string
	if bytes.HasPrefix(data, jpegMagic) {
		mimeType = "image/jpeg"
		decoded, err = jpeg.Decode(bytes.NewReader(data), defaultOptions)
	} else {
		var format string
		decoded, format, err = image.Decode(bytes.NewReader(data))
		mimeType = mimeTypeOf(format)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("decode image: %w", err)
	}
	if decoded == nil {
		return nil, nil, ErrNoImage
	}

	decoded = ApplyOrientation(decoded, orientation)
	return decoded, &api.ImageInfo{Size: apitype.SizeFromRectangle(decoded.Bounds()), MimeType: mimeType}, nil
}

func (s *Reader) readAll(r io.Reader) ([]byte, Orientation, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, OrientationNormal, fmt.Errorf("%w: %w", ErrRead, err)
	}
	if !s.applyOrientation {
		return data, OrientationNormal, nil
	}
	return data, ReadOrientation(bytes.NewReader(data)), nil
}

// decodeJPEGSampled lets libjpeg pick the smallest DCT scale that still
// covers the target and finishes with a nearest neighbour resize.
func decodeJPEGSampled(data []byte, sampleSize int) (image.Image, error) {
	config, err := jpeg.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	target := apitype.SizeOf(config.Width, config.Height).Subsampled(sampleSize)

	options := defaultOptions
	if sampleSize > 1 {
		options = &jpeg.DecoderOptions{ScaleTarget: image.Rect(0, 0, target.Width(), target.Height())}
	}
	decoded, err := jpeg.Decode(bytes.NewReader(data), options)
	if err != nil {
		return nil, err
	}
	return subsample(decoded, target), nil
}

func isJPEG(r *bufio.Reader) bool {
	magic, err := r.Peek(len(jpegMagic))
	return err == nil && bytes.Equal(magic, jpegMagic)
}

func mimeTypeOf(format string) string {
	if format == "" {
		return ""
	}
	return "image/" + format
}

func subsample(img image.Image, target apitype.Size) image.Image {
	width := target.Width()
	height := target.Height()
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	bounds := img.Bounds()
	if bounds.Dx() == width && bounds.Dy() == height {
		return img
	}
	return resize.Resize(uint(width), uint(height), img, resize.NearestNeighbor)
}
