package storage

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"

	_ "image/gif"
	_ "image/png"

	"github.com/disintegration/imaging"
)

const (
	ThumbnailWidth  = 960
	ThumbnailHeight = 339

	// MaxPixels bounds the decoded bitmap (40 megapixels)
	MaxPixels = 40_000_000
)

var (
	ErrNotAnImage        = errors.New("file is not an image")
	ErrImageTooLarge     = errors.New("image is too large")
	ErrUnsupportedFormat = errors.New("unsupported image format")
	ErrTooManyPixels     = errors.New("image dimensions are too large")
)

// ImageInfo describes a validated upload
type ImageInfo struct {
	Format      string // jpeg, png, gif
	Ext         string
	ContentType string
	Width       int
	Height      int
}

type ImageProcessor struct {
	MaxSize int64 // bytes (default: 5MB)
}

func NewImageProcessor() *ImageProcessor {
	return &ImageProcessor{MaxSize: 5 * 1024 * 1024} // 5MB
}

var allowedFormats = map[string]ImageInfo{
	"jpeg": {Format: "jpeg", Ext: "jpg", ContentType: "image/jpeg"},
	"png":  {Format: "png", Ext: "png", ContentType: "image/png"},
	"gif":  {Format: "gif", Ext: "gif", ContentType: "image/gif"},
}

// ValidateImage checks the content, not the file name: the whole payload must
// decode as JPEG/PNG/GIF within MaxSize bytes and MaxPixels pixels
func (p *ImageProcessor) ValidateImage(data []byte) (*ImageInfo, error) {
	if p.MaxSize > 0 && int64(len(data)) > p.MaxSize {
		return nil, fmt.Errorf("%w: exceeds %dMB", ErrImageTooLarge, p.MaxSize/(1024*1024))
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotAnImage, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, ErrNotAnImage
	}

	if int64(cfg.Width)*int64(cfg.Height) > MaxPixels {
		return nil, fmt.Errorf("%w: %dx%d", ErrTooManyPixels, cfg.Width, cfg.Height)
	}

	info, ok := allowedFormats[format]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}

	// truncated or corrupt pixel data only fails here
	if _, err := imaging.Decode(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotAnImage, err)
	}

	info.Width = cfg.Width
	info.Height = cfg.Height
	return &info, nil
}

// Thumbnail crops the image around its center to 960x339 and encodes it as JPEG quality 90
func (p *ImageProcessor) Thumbnail(data []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("cannot decode image: %w", err)
	}

	thumb := imaging.Fill(img, ThumbnailWidth, ThumbnailHeight, imaging.Center, imaging.Lanczos)

	b := new(bytes.Buffer)
	if err := jpeg.Encode(b, thumb, &jpeg.Options{Quality: 90}); err != nil {
		return nil, fmt.Errorf("cannot encode thumbnail: %w", err)
	}
	return b.Bytes(), nil
}
