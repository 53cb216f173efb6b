// Package imaging normalizes uploaded photos: oversized originals are
// scaled down and a fixed-size thumbnail is produced for table views.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
)

// ProcessedImage holds the stored variants of one upload.
type ProcessedImage struct {
	Original    []byte
	Thumbnail   []byte
	ContentType string
	Width       int
	Height      int
}

// Config bounds the stored sizes.
type Config struct {
	MaxWidth    int
	MaxHeight   int
	ThumbWidth  int
	ThumbHeight int
	Quality     int // JPEG quality 1-100
}

// DefaultConfig returns the defaults used for studio, singer and equipment
// photos.
func DefaultConfig() Config {
	return Config{
		MaxWidth:    1600,
		MaxHeight:   1600,
		ThumbWidth:  320,
		ThumbHeight: 240,
		Quality:     85,
	}
}

// Processor resizes and re-encodes uploads.
type Processor struct {
	config Config
}

// NewProcessor creates a processor.
func NewProcessor(config Config) *Processor {
	if config.MaxWidth <= 0 || config.MaxHeight <= 0 {
		config = DefaultConfig()
	}
	return &Processor{config: config}
}

// Process decodes an upload, scales it within the configured bounds and
// renders a thumbnail. Only JPEG and PNG are accepted.
func (p *Processor) Process(reader io.Reader, filename string) (*ProcessedImage, error) {
	src, format, err := image.Decode(reader)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	if format != "jpeg" && format != "png" {
		return nil, fmt.Errorf("unsupported image format %q", format)
	}

	bounds := src.Bounds()
	if bounds.Dx() > p.config.MaxWidth || bounds.Dy() > p.config.MaxHeight {
		src = imaging.Fit(src, p.config.MaxWidth, p.config.MaxHeight, imaging.Lanczos)
		bounds = src.Bounds()
	}

	thumb := imaging.Fill(src, p.config.ThumbWidth, p.config.ThumbHeight, imaging.Center, imaging.Lanczos)

	original, contentType, err := p.encode(src, format)
	if err != nil {
		return nil, err
	}
	thumbnail, _, err := p.encode(thumb, format)
	if err != nil {
		return nil, err
	}

	return &ProcessedImage{
		Original:    original,
		Thumbnail:   thumbnail,
		ContentType: contentType,
		Width:       bounds.Dx(),
		Height:      bounds.Dy(),
	}, nil
}

// ContentTypeFor guesses the content type from a filename extension.
func ContentTypeFor(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	default:
		return "application/octet-stream"
	}
}

func (p *Processor) encode(img image.Image, format string) ([]byte, string, error) {
	var buf bytes.Buffer
	switch format {
	case "png":
		if err := png.Encode(&buf, img); err != nil {
			return nil, "", fmt.Errorf("encode png: %w", err)
		}
		return buf.Bytes(), "image/png", nil
	default:
		quality := p.config.Quality
		if quality <= 0 || quality > 100 {
			quality = 85
		}
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
			return nil, "", fmt.Errorf("encode jpeg: %w", err)
		}
		return buf.Bytes(), "image/jpeg", nil
	}
}
