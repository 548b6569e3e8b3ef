package storage

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"arcmarket/internal/domain/service"
)

// S3Client stores base64-encoded assets in an S3 bucket. It implements
// service.ImageStore; the explicit verdict always comes from the
// moderation pass, never from storage.
type S3Client struct {
	uploader *manager.Uploader
	bucket   string
}

func NewS3Client(cfg aws.Config, bucket string) *S3Client {
	client := s3.NewFromConfig(cfg)
	return &S3Client{
		uploader: manager.NewUploader(client),
		bucket:   bucket,
	}
}

func (c *S3Client) UploadBase64(ctx context.Context, data, name, mimeType, category string) (*service.UploadResult, error) {
	// Clients may send a full data url; only the payload is stored.
	if i := strings.Index(data, "base64,"); i >= 0 {
		data = data[i+len("base64,"):]
	}
	decoded, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, fmt.Errorf("decode image payload: %w", err)
	}

	key := fmt.Sprintf("%s/%s-%s", category, name, uuid.New().String())
	output, err := c.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(decoded),
		ContentType: aws.String(mimeType),
	})
	if err != nil {
		return nil, fmt.Errorf("upload %s: %w", key, err)
	}

	return &service.UploadResult{
		Location: output.Location,
		Key:      key,
	}, nil
}
