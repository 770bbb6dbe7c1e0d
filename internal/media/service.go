package media

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/bahzadkaka/mv-marketplace/pkg/config"
	pkgerrors "github.com/bahzadkaka/mv-marketplace/pkg/errors"
)

var allowedExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".gif":  {},
	".webp": {},
}

// Service stores uploaded images on local disk and hands back the stable
// public URL they will be served from.
type Service interface {
	SaveImage(ctx context.Context, originalName string, r io.Reader) (string, error)
}

type service struct {
	cfg config.UploadsConfig
}

// NewService builds the media service and ensures the upload directory
// exists.
func NewService(cfg config.UploadsConfig) (Service, error) {
	if cfg.Dir == "" {
		return nil, fmt.Errorf("uploads directory required")
	}
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create uploads dir: %w", err)
	}
	return &service{cfg: cfg}, nil
}

func (s *service) SaveImage(_ context.Context, originalName string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	if _, ok := allowedExtensions[ext]; !ok {
		return "", pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unsupported image type %q", ext))
	}

	name := uuid.NewString() + ext
	target := filepath.Join(s.cfg.Dir, name)

	file, err := os.Create(target)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create upload file")
	}
	defer file.Close()

	limit := int64(s.cfg.MaxUploadMB) * 1024 * 1024
	written, err := io.Copy(file, io.LimitReader(r, limit+1))
	if err != nil {
		_ = os.Remove(target)
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "write upload file")
	}
	if written > limit {
		_ = os.Remove(target)
		return "", pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("image exceeds %dMB limit", s.cfg.MaxUploadMB))
	}

	return path.Join(s.cfg.PublicBase, name), nil
}
