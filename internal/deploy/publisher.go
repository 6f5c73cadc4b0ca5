/*
Copyright © 2025 Stackpilot Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package deploy

import (
	"context"
	"fmt"
	"time"

	awsinternal "github.com/stackpilot/stackpilot/internal/aws"
	"github.com/stackpilot/stackpilot/internal/config"
)

// templateContentType is the content type templates are stored under.
const templateContentType = "application/json"

// templateACL grants the bucket owner full control over published templates.
const templateACL = "bucket-owner-full-control"

// TemplatePublisher externalises template bodies to the blob store so that
// create/update requests can reference them by location instead of embedding
// them inline.
type TemplatePublisher struct {
	blob awsinternal.BlobStoreOperations
}

// NewTemplatePublisher creates a new TemplatePublisher
func NewTemplatePublisher(blob awsinternal.BlobStoreOperations) *TemplatePublisher {
	return &TemplatePublisher{blob: blob}
}

// Publish writes the configuration's template body to the configured bucket
// and returns the object key. The key embeds the run timestamp twice, as
// epoch milliseconds and as an ISO timestamp, so each deploy attempt gets a
// fresh, sortable, collision-resistant path.
func (p *TemplatePublisher) Publish(ctx context.Context, cfg *config.DeploymentConfig) (string, error) {
	stamp := time.UnixMilli(cfg.Timestamp).UTC()
	key := fmt.Sprintf("%s/%d-%s/template.json", cfg.StackName, cfg.Timestamp, stamp.Format(time.RFC3339))

	err := p.blob.PutObject(ctx, awsinternal.PutObjectInput{
		Bucket:      cfg.Bucket,
		Key:         key,
		Body:        []byte(cfg.TemplateBody),
		ContentType: templateContentType,
		ACL:         templateACL,
	})
	if err != nil {
		return "", fmt.Errorf("failed to publish template for stack %s: %w", cfg.StackName, err)
	}

	return key, nil
}

// templateURL builds the HTTPS location CloudFormation uses to fetch a
// published template
func templateURL(region, bucket, key string) string {
	return fmt.Sprintf("https://s3.%s.amazonaws.com/%s/%s", region, bucket, key)
}
