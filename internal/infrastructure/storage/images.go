package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"github.com/edumarket/course-api/internal/core/domain"
)

const defaultMaxBytes = 2 << 20 // 2 MiB

var allowedImageTypes = []string{"image/jpeg", "image/png", "image/webp", "image/avif"}

// ImageStore keeps uploaded course images on the local filesystem and serves
// them under a public URL prefix.
type ImageStore struct {
	dir        string
	publicPath string
	maxBytes   int64
}

// NewImageStore creates the upload folder if needed. publicPath is the URL
// prefix the folder is served under, e.g. "/uploads".
func NewImageStore(dir, publicPath string, maxBytes int64) (*ImageStore, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("image store: resolve dir: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("image store: create dir: %w", err)
	}
	if maxBytes <= 0 {
		maxBytes = defaultMaxBytes
	}
	return &ImageStore{
		dir:        abs,
		publicPath: "/" + strings.Trim(publicPath, "/"),
		maxBytes:   maxBytes,
	}, nil
}

// Save validates size and sniffed content type, writes the file under a random
// name and returns its public path.
func (s *ImageStore) Save(_ context.Context, filename string, r io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, s.maxBytes+1))
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > s.maxBytes {
		return "", fmt.Errorf("%w: %s exceeds %d bytes", domain.ErrFileTooLarge, filename, s.maxBytes)
	}

	mtype := mimetype.Detect(data)
	if !mimetype.EqualsAny(mtype.String(), allowedImageTypes...) {
		return "", fmt.Errorf("%w: %s", domain.ErrInvalidFileType, mtype.String())
	}

	name := uuid.NewString() + mtype.Extension()
	dst, err := os.OpenFile(filepath.Join(s.dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create upload: %w", err)
	}
	if _, err := io.Copy(dst, bytes.NewReader(data)); err != nil {
		_ = dst.Close()
		_ = os.Remove(dst.Name())
		return "", fmt.Errorf("write upload: %w", err)
	}
	if err := dst.Close(); err != nil {
		return "", fmt.Errorf("close upload: %w", err)
	}

	return path.Join(s.publicPath, name), nil
}

// Remove deletes a file previously returned by Save. Paths outside the
// public prefix are ignored.
func (s *ImageStore) Remove(_ context.Context, publicPath string) error {
	prefix := s.publicPath + "/"
	if !strings.HasPrefix(publicPath, prefix) {
		return nil
	}
	name := filepath.Base(strings.TrimPrefix(publicPath, prefix))
	if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove upload: %w", err)
	}
	return nil
}

// Dir returns the absolute folder served as static content.
func (s *ImageStore) Dir() string {
	return s.dir
}
