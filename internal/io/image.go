package ioutils

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // GIF decoder registration
	_ "image/jpeg" // JPEG decoder registration
	_ "image/png"  // PNG decoder registration

	"github.com/disintegration/imaging"
	"github.com/handiism/bingpot/internal/model"
	_ "golang.org/x/image/bmp"  // BMP decoder registration
	_ "golang.org/x/image/tiff" // TIFF decoder registration
	_ "golang.org/x/image/webp" // WebP decoder registration
)

// DefaultJPEGQuality is used when a non-positive quality is configured.
const DefaultJPEGQuality = 90

// ImageService decodes downloaded image bytes and writes them back out as JPEG.
//
// ImageService is used to:
//   - Decode archive images whatever raster format the host served
//   - Re-encode them as JPEG at a fixed quality
//   - Save the result, overwriting any previous file
//
// The decoder sniffs the format from the leading bytes, never from the URL
// or Content-Type. JPEG, PNG, GIF, WebP, BMP and TIFF are recognized.
//
// Example usage:
//
//	svc := NewImageService(90)
//
//	img, err := svc.Decode(data)
//	if err != nil {
//	    return err // KindDecode
//	}
//	err = svc.SaveJPEG(ctx, img, "8.jpg")
type ImageService struct {
	quality int
}

// NewImageService creates a new ImageService encoding JPEG at the given
// quality (1-100). Values outside that range fall back to DefaultJPEGQuality.
func NewImageService(quality int) *ImageService {
	if quality < 1 || quality > 100 {
		quality = DefaultJPEGQuality
	}
	return &ImageService{quality: quality}
}

// Quality returns the JPEG quality used by EncodeJPEG.
func (s *ImageService) Quality() int {
	return s.quality
}

// Decode decodes image bytes, detecting the format from content.
//
// EXIF orientation is applied so JPEGs come out upright. Bytes that are not
// a recognized image format are reported as a model.KindDecode error.
func (s *ImageService) Decode(data []byte) (image.Image, error) {
	if len(data) == 0 {
		return nil, model.NewError(model.KindDecode, "", fmt.Errorf("empty image body"))
	}
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, model.NewError(model.KindDecode, "", fmt.Errorf("decode image: %w", err))
	}
	return img, nil
}

// EncodeJPEG encodes img as JPEG bytes.
func (s *ImageService) EncodeJPEG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(s.quality)); err != nil {
		return nil, model.NewError(model.KindDecode, "", fmt.Errorf("encode jpeg: %w", err))
	}
	return buf.Bytes(), nil
}

// SaveJPEG encodes img as JPEG and writes it to path, replacing any existing file.
//
// The image is fully encoded in memory before the file is touched, so an
// encoding failure never leaves a truncated file behind. Create or write
// failures are reported as model.KindFilesystem; a cancelled ctx is
// model.KindTransport like any other interrupted fetch.
func (s *ImageService) SaveJPEG(ctx context.Context, img image.Image, path string) error {
	data, err := s.EncodeJPEG(img)
	if err != nil {
		return err
	}
	if err := WriteFile(ctx, path, data); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return model.NewError(model.KindTransport, path, err)
		}
		return model.NewError(model.KindFilesystem, path, err)
	}
	return nil
}
