/*
Copyright © 2025 Stackpilot Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package aws

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// PutObjectInput contains parameters for writing an object to the blob store
type PutObjectInput struct {
	Bucket      string
	Key         string
	Body        []byte
	ContentType string
	ACL         string
}

// DefaultBlobStoreOperations provides S3-backed blob-store operations
type DefaultBlobStoreOperations struct {
	client S3Client
}

// NewBlobStoreOperations creates a new blob-store operations wrapper
func (c *DefaultClient) NewBlobStoreOperations() BlobStoreOperations {
	return &DefaultBlobStoreOperations{
		client: c.s3,
	}
}

// NewBlobStoreOperationsWithClient creates operations with a custom client (for testing)
func NewBlobStoreOperationsWithClient(client S3Client) *DefaultBlobStoreOperations {
	return &DefaultBlobStoreOperations{
		client: client,
	}
}

// PutObject writes an object to the configured bucket
func (bs *DefaultBlobStoreOperations) PutObject(ctx context.Context, input PutObjectInput) error {
	putInput := &s3.PutObjectInput{
		Bucket:      aws.String(input.Bucket),
		Key:         aws.String(input.Key),
		Body:        bytes.NewReader(input.Body),
		ContentType: aws.String(input.ContentType),
	}
	if input.ACL != "" {
		putInput.ACL = types.ObjectCannedACL(input.ACL)
	}

	_, err := bs.client.PutObject(ctx, putInput)
	if err != nil {
		return fmt.Errorf("failed to put object s3://%s/%s: %w", input.Bucket, input.Key, err)
	}

	return nil
}
