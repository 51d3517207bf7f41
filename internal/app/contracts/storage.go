package contracts

import (
	"context"
	"time"
)

// ArtifactStorage keeps the JSON results produced by redeemed operations and
// hands out expiring download links.
type ArtifactStorage interface {
	UploadJSON(ctx context.Context, objectName string, data []byte) error
	PresignedDownloadURL(ctx context.Context, objectName string, expiry time.Duration) (string, error)
}
