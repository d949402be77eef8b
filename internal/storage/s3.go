package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
)

// ObjectStore fetches uploaded objects from S3 (or any S3-compatible
// endpoint, e.g. MinIO in development).
type ObjectStore struct {
	client s3iface.S3API
}

// NewObjectStore builds an ObjectStore for the given region. A non-empty
// endpoint overrides the AWS default, with path-style addressing for
// S3-compatible stores.
func NewObjectStore(region, endpoint string) (*ObjectStore, error) {
	cfg := aws.NewConfig().WithRegion(region)
	if endpoint != "" {
		cfg = cfg.WithEndpoint(endpoint).WithS3ForcePathStyle(true)
	}

	sess, err := session.NewSession(cfg)
	if err != nil {
		return nil, fmt.Errorf("storage: creating session: %w", err)
	}
	return &ObjectStore{client: s3.New(sess)}, nil
}

// NewObjectStoreWithClient wires an explicit client, used by tests.
func NewObjectStoreWithClient(client s3iface.S3API) *ObjectStore {
	return &ObjectStore{client: client}
}

// Fetch reads the whole object into memory. Uploads are single CSV files
// sized for one run, so streaming is not worth the complexity here.
func (os *ObjectStore) Fetch(ctx context.Context, bucket, key string) ([]byte, error) {
	out, err := os.client.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("storage: fetching s3://%s/%s: %w", bucket, key, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("storage: reading s3://%s/%s: %w", bucket, key, err)
	}
	return data, nil
}
