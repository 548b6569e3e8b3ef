package moderation

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"

	"arcmarket/internal/domain/service"
)

// minConfidence is the label confidence below which hits are ignored.
const minConfidence = 80

// RekognitionClient flags explicit imagery in stored assets. It
// implements service.ModerationService over AWS Rekognition's
// moderation label detection, reading objects straight from the bucket.
type RekognitionClient struct {
	client *rekognition.Client
	bucket string
}

func NewRekognitionClient(cfg aws.Config, bucket string) *RekognitionClient {
	return &RekognitionClient{
		client: rekognition.NewFromConfig(cfg),
		bucket: bucket,
	}
}

var _ service.ModerationService = (*RekognitionClient)(nil)

func (c *RekognitionClient) Scan(ctx context.Context, key string) (bool, error) {
	output, err := c.client.DetectModerationLabels(ctx, &rekognition.DetectModerationLabelsInput{
		Image: &types.Image{
			S3Object: &types.S3Object{
				Bucket: aws.String(c.bucket),
				Name:   aws.String(key),
			},
		},
		MinConfidence: aws.Float32(minConfidence),
	})
	if err != nil {
		return false, err
	}
	return len(output.ModerationLabels) > 0, nil
}
