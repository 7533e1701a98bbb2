package upload

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"regexp"

	_ "image/gif"
	_ "image/png"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

const (
	// MaxFileSize caps accepted uploads at 5 MiB.
	MaxFileSize = 5 << 20

	// Stored images fit inside this bounding box.
	maxDimension = 1024

	jpegQuality = 80

	defaultFolder = "images"
)

var (
	ErrFileTooLarge    = errors.New("file exceeds the size limit")
	ErrUnsupportedFile = errors.New("unsupported image format")
)

var folderPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)

// ObjectStore is the storage backend uploads land in.
type ObjectStore interface {
	Put(ctx context.Context, key, contentType string, data []byte) (string, error)
}

// Result describes a stored image.
type Result struct {
	Key    string `json:"key"`
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// Service normalizes uploaded images and stores them. Every accepted image is
// re-encoded as JPEG, which strips metadata and bounds the stored size.
type Service struct {
	store  ObjectStore
	logger zerolog.Logger
}

func NewService(store ObjectStore, logger zerolog.Logger) *Service {
	return &Service{
		store:  store,
		logger: logger.With().Str("component", "upload_service").Logger(),
	}
}

// Store validates, normalizes and persists one image. Supported input formats
// are JPEG, PNG, GIF and WebP.
func (s *Service) Store(ctx context.Context, folder string, data []byte) (Result, error) {
	if len(data) > MaxFileSize {
		return Result{}, ErrFileTooLarge
	}
	if folder == "" {
		folder = defaultFolder
	}
	if !folderPattern.MatchString(folder) {
		return Result{}, fmt.Errorf("%w: invalid folder name", ErrUnsupportedFile)
	}

	src, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrUnsupportedFile, err)
	}

	dst := fitWithin(src, maxDimension)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return Result{}, fmt.Errorf("encode image: %w", err)
	}

	key := fmt.Sprintf("%s/%s.jpg", folder, uuid.NewString())
	url, err := s.store.Put(ctx, key, "image/jpeg", buf.Bytes())
	if err != nil {
		return Result{}, err
	}

	bounds := dst.Bounds()
	s.logger.Info().
		Str("key", key).
		Str("source_format", format).
		Int("bytes", buf.Len()).
		Msg("image stored")

	return Result{
		Key:    key,
		URL:    url,
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
	}, nil
}

// fitWithin scales the image down so both dimensions fit inside max, keeping
// the aspect ratio. Images already inside the box pass through untouched.
func fitWithin(src image.Image, max int) image.Image {
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= max && h <= max {
		return src
	}

	if w >= h {
		h = h * max / w
		w = max
	} else {
		w = w * max / h
		h = max
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)
	return dst
}
