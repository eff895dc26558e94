package storage

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultPresignedURLExpiry is used when no expiry is configured.
const DefaultPresignedURLExpiry = 15 * time.Minute

var ErrUnsupportedVideoType = errors.New("unsupported video content type")

// FileStorage is the object store holding exercise demo videos.
type FileStorage interface {
	// GeneratePresignedUploadURL creates a temporary URL that allows one PUT
	// of objectKey with the given content type.
	GeneratePresignedUploadURL(ctx context.Context, objectKey string, contentType string, expires time.Duration) (string, error)

	// GeneratePresignedDownloadURL creates a temporary GET URL, for buckets that are not public.
	GeneratePresignedDownloadURL(ctx context.Context, objectKey string, expires time.Duration) (string, error)

	DeleteObject(ctx context.Context, objectKey string) error

	// PublicURL is the stable link stored on the exercise.
	PublicURL(objectKey string) string

	// ObjectKey reverses PublicURL; ok is false for links outside this store.
	ObjectKey(publicURL string) (key string, ok bool)
}

var videoExtensions = map[string]string{
	"video/mp4":       "mp4",
	"video/quicktime": "mov",
	"video/webm":      "webm",
	"video/x-m4v":     "m4v",
}

// ExerciseVideoKey builds a fresh object key for an exercise demo video:
// exercises/<exerciseID>/<uuid>.<ext>.
func ExerciseVideoKey(exerciseID, contentType string) (string, error) {
	ext, ok := videoExtensions[strings.ToLower(strings.TrimSpace(contentType))]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedVideoType, contentType)
	}
	return path.Join("exercises", exerciseID, uuid.NewString()+"."+ext), nil
}
