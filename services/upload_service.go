package services

import (
	"context"
	"path"
	"strings"
	"time"

	apperrors "storefront/common/errors"
	awspkg "storefront/pkg/aws"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const uploadExpiry = 15 * time.Minute

// Presigner issues presigned PUT URLs.
type Presigner interface {
	PresignPut(ctx context.Context, key, contentType string, expiry time.Duration) (*awspkg.PresignedUpload, error)
}

type UploadService struct {
	presigner Presigner
	logger    *zap.Logger
}

// NewUploadService returns a service that answers 503 while presigner is nil.
func NewUploadService(presigner Presigner, logger *zap.Logger) *UploadService {
	return &UploadService{presigner: presigner, logger: logger}
}

// PresignProductImage returns a URL the admin client can PUT an image to.
func (s *UploadService) PresignProductImage(ctx context.Context, fileName, contentType string) (*awspkg.PresignedUpload, error) {
	if s.presigner == nil {
		return nil, apperrors.ErrServiceUnavailable
	}

	key := "products/" + uuid.NewString() + "-" + sanitizeFileName(fileName)
	upload, err := s.presigner.PresignPut(ctx, key, contentType, uploadExpiry)
	if err != nil {
		s.logger.Error("presign failed", zap.String("key", key), zap.Error(err))
		return nil, apperrors.Internal(err)
	}
	return upload, nil
}

func sanitizeFileName(name string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			return r
		}
		return '-'
	}, name)
	if name == "." || name == "/" || name == "" {
		return "image"
	}
	return name
}
