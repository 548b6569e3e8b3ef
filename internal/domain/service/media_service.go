package service

import (
	"context"
)

// UploadResult describes a stored asset. Explicit is set when the
// storage layer already knows the asset is flagged.
type UploadResult struct {
	Location string
	Key      string
	Explicit bool
}

// ImageStore uploads base64-encoded assets. Failures surface as errors
// the caller converts to validation failures; they are never swallowed.
type ImageStore interface {
	UploadBase64(ctx context.Context, data, name, mimeType, category string) (*UploadResult, error)
}

// ModerationService scans a stored asset and reports whether it is
// explicit. A scan can only raise the flag, never clear it.
type ModerationService interface {
	Scan(ctx context.Context, key string) (bool, error)
}
