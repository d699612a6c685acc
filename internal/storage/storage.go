package storage

import (
	"context"
	"errors"
	"time"
)

// ErrDisabled is returned by the disabled backend when object storage is not
// configured.
var ErrDisabled = errors.New("object storage disabled")

// ObjectStorage captures the operations recipe images need.
type ObjectStorage interface {
	UploadObject(ctx context.Context, key string, data []byte, contentType string) error
	PresignedURL(ctx context.Context, key string, expiry time.Duration) (string, error)
	DeleteObject(ctx context.Context, key string) error
}

// Disabled is the fallback backend used when no storage is configured.
// Uploads fail loudly; URL resolution degrades to empty.
type Disabled struct{}

func NewDisabled() Disabled { return Disabled{} }

func (Disabled) UploadObject(ctx context.Context, key string, data []byte, contentType string) error {
	return ErrDisabled
}

func (Disabled) PresignedURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	return "", ErrDisabled
}

func (Disabled) DeleteObject(ctx context.Context, key string) error {
	return ErrDisabled
}
