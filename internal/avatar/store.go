package avatar

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/trackly/internal/config"
	"github.com/google/uuid"
)

// Store persists a validated image and returns its locator.
type Store interface {
	Save(ctx context.Context, userID int64, img *Image) (string, error)
}

// NewStore builds the backend selected in cfg.
func NewStore(cfg *config.Config) (Store, error) {
	switch cfg.AvatarBackend {
	case config.AvatarBackendLocal:
		return NewLocalStore(cfg.AvatarDir), nil
	case config.AvatarBackendS3:
		return NewS3Store(S3Options{
			Bucket:       cfg.S3Bucket,
			Region:       cfg.S3Region,
			BaseEndpoint: cfg.S3BaseEndpoint,
			AccessKey:    cfg.S3AccessKey,
			SecretKey:    cfg.S3SecretKey,
		}), nil
	default:
		return nil, fmt.Errorf("unknown avatar backend %q", cfg.AvatarBackend)
	}
}

var newID = uuid.New

func fileName(img *Image) string {
	return fmt.Sprintf("%s.%s", newID(), img.Ext())
}

func objectKey(userID int64, img *Image, now time.Time) string {
	return fmt.Sprintf("avatars/%d/%d/%02d/%s", userID, now.Year(), now.Month(), fileName(img))
}
