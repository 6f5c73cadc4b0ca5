/*
Copyright © 2025 Stackpilot Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package aws

import (
	"context"
	"fmt"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
)

// DefaultClientFactory implements ClientFactory with caching and shared authentication
type DefaultClientFactory struct {
	base      *DefaultClient
	cfnCache  map[string]CloudFormationOperations
	blobCache map[string]BlobStoreOperations
	mutex     sync.RWMutex
}

// NewClientFactory creates a client factory with shared authentication
func NewClientFactory(ctx context.Context) (ClientFactory, error) {
	// Load base credentials once; region is overridden per-client
	base, err := NewDefaultClient(ctx, Config{})
	if err != nil {
		return nil, err
	}

	return &DefaultClientFactory{
		base:      base,
		cfnCache:  make(map[string]CloudFormationOperations),
		blobCache: make(map[string]BlobStoreOperations),
	}, nil
}

// GetCloudFormationOperations returns CloudFormation operations for the specified region
func (f *DefaultClientFactory) GetCloudFormationOperations(ctx context.Context, region string) (CloudFormationOperations, error) {
	if region == "" {
		return nil, fmt.Errorf("region cannot be empty")
	}

	f.mutex.RLock()
	if ops, exists := f.cfnCache[region]; exists {
		f.mutex.RUnlock()
		return ops, nil
	}
	f.mutex.RUnlock()

	ops := f.clientForRegion(region).NewCloudFormationOperations()

	f.mutex.Lock()
	f.cfnCache[region] = ops
	f.mutex.Unlock()

	return ops, nil
}

// GetBlobStoreOperations returns blob-store operations for the specified region
func (f *DefaultClientFactory) GetBlobStoreOperations(ctx context.Context, region string) (BlobStoreOperations, error) {
	if region == "" {
		return nil, fmt.Errorf("region cannot be empty")
	}

	f.mutex.RLock()
	if ops, exists := f.blobCache[region]; exists {
		f.mutex.RUnlock()
		return ops, nil
	}
	f.mutex.RUnlock()

	ops := f.clientForRegion(region).NewBlobStoreOperations()

	f.mutex.Lock()
	f.blobCache[region] = ops
	f.mutex.Unlock()

	return ops, nil
}

// clientForRegion derives a region-specific client from the base credentials
func (f *DefaultClientFactory) clientForRegion(region string) *DefaultClient {
	if f.base.Region() == region {
		return f.base
	}

	regionConfig := f.base.config.Copy()
	regionConfig.Region = region
	return newClientFromConfig(regionConfig)
}

// GetBaseConfig returns the shared AWS configuration (for debugging)
func (f *DefaultClientFactory) GetBaseConfig() aws.Config {
	return f.base.config
}
