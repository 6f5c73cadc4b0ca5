/*
Copyright © 2025 Stackpilot Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package aws

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/cloudformation"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// CloudFormationClient defines the interface for CloudFormation client operations
// This allows for easier testing with mock implementations
type CloudFormationClient interface {
	CreateStack(ctx context.Context, params *cloudformation.CreateStackInput, optFns ...func(*cloudformation.Options)) (*cloudformation.CreateStackOutput, error)
	UpdateStack(ctx context.Context, params *cloudformation.UpdateStackInput, optFns ...func(*cloudformation.Options)) (*cloudformation.UpdateStackOutput, error)
	DeleteStack(ctx context.Context, params *cloudformation.DeleteStackInput, optFns ...func(*cloudformation.Options)) (*cloudformation.DeleteStackOutput, error)
	DescribeStacks(ctx context.Context, params *cloudformation.DescribeStacksInput, optFns ...func(*cloudformation.Options)) (*cloudformation.DescribeStacksOutput, error)
	GetTemplate(ctx context.Context, params *cloudformation.GetTemplateInput, optFns ...func(*cloudformation.Options)) (*cloudformation.GetTemplateOutput, error)
	UpdateTerminationProtection(ctx context.Context, params *cloudformation.UpdateTerminationProtectionInput, optFns ...func(*cloudformation.Options)) (*cloudformation.UpdateTerminationProtectionOutput, error)
}

// S3Client defines the interface for the S3 client operations used for
// template publishing
type S3Client interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Ensure that the actual AWS clients implement our interfaces
var _ CloudFormationClient = (*cloudformation.Client)(nil)
var _ S3Client = (*s3.Client)(nil)

// Ensure that the default implementations satisfy their interfaces
var _ CloudFormationOperations = (*DefaultCloudFormationOperations)(nil)
var _ BlobStoreOperations = (*DefaultBlobStoreOperations)(nil)
var _ ClientFactory = (*DefaultClientFactory)(nil)

// CloudFormationOperations defines the stack-level operations the
// reconciliation engine needs from CloudFormation. "Stack does not exist" and
// "no updates to perform" conditions surface as the typed ErrStackNotFound
// and ErrNoChanges errors.
type CloudFormationOperations interface {
	CreateStack(ctx context.Context, input CreateStackInput) error
	UpdateStack(ctx context.Context, input UpdateStackInput) error
	DeleteStack(ctx context.Context, input DeleteStackInput) error
	DescribeStack(ctx context.Context, stackName string) (*StackDetail, error)
	GetOriginalTemplate(ctx context.Context, stackName string) (string, error)
	UpdateTerminationProtection(ctx context.Context, stackName string, enabled bool) error
}

// BlobStoreOperations defines the blob-store operations used to externalise
// template bodies. Fire-and-forget: no read-back verification.
type BlobStoreOperations interface {
	PutObject(ctx context.Context, input PutObjectInput) error
}

// ClientFactory creates AWS operation wrappers with proper region configuration
type ClientFactory interface {
	// GetCloudFormationOperations returns CloudFormation operations for the specified region
	GetCloudFormationOperations(ctx context.Context, region string) (CloudFormationOperations, error)

	// GetBlobStoreOperations returns blob-store operations for the specified region
	GetBlobStoreOperations(ctx context.Context, region string) (BlobStoreOperations, error)
}
