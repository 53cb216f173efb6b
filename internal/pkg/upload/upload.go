// Package upload is the shared photo upload pipeline: multipart parsing,
// image processing, and storage, used by the singer and equipment modules.
package upload

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/imc/imc-api/internal/pkg/imaging"
	"github.com/imc/imc-api/internal/pkg/storage"
)

// maxUploadBytes caps one photo upload.
const maxUploadBytes = 10 << 20

var (
	ErrNoFile      = errors.New("no file in request")
	ErrBadImage    = errors.New("file is not a supported image")
	ErrTooLarge    = errors.New("file exceeds upload limit")
)

// Result holds the stored photo variants.
type Result struct {
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnail_url"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
}

// Service parses, processes and stores photo uploads.
type Service struct {
	store     storage.Storage
	processor *imaging.Processor
}

// NewService creates the upload service. A nil store disables uploads.
func NewService(store storage.Storage, processor *imaging.Processor) *Service {
	return &Service{store: store, processor: processor}
}

// Enabled reports whether a storage backend is configured.
func (s *Service) Enabled() bool { return s != nil && s.store != nil }

// Photo reads the "photo" multipart file from the request, processes it and
// stores original plus thumbnail under the given key prefix.
func (s *Service) Photo(r *http.Request, prefix string) (*Result, error) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return nil, ErrTooLarge
	}

	file, header, err := r.FormFile("photo")
	if err != nil {
		return nil, ErrNoFile
	}
	defer file.Close()

	if header.Size > maxUploadBytes {
		return nil, ErrTooLarge
	}

	processed, err := s.processor.Process(file, header.Filename)
	if err != nil {
		return nil, ErrBadImage
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if ext != ".png" {
		ext = ".jpg"
	}
	id := uuid.New().String()
	key := fmt.Sprintf("%s/%s%s", prefix, id, ext)
	thumbKey := fmt.Sprintf("%s/%s_thumb%s", prefix, id, ext)

	ctx := r.Context()
	if err := s.store.Put(ctx, key, bytes.NewReader(processed.Original), processed.ContentType); err != nil {
		return nil, fmt.Errorf("store photo: %w", err)
	}
	if err := s.store.Put(ctx, thumbKey, bytes.NewReader(processed.Thumbnail), processed.ContentType); err != nil {
		_ = s.store.Delete(ctx, key)
		return nil, fmt.Errorf("store thumbnail: %w", err)
	}

	return &Result{
		URL:          s.store.URL(key),
		ThumbnailURL: s.store.URL(thumbKey),
		Width:        processed.Width,
		Height:       processed.Height,
	}, nil
}
