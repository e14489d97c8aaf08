/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package objstore

import (
	"context"
	"fmt"

	"github.com/mikeb26/fencingpool-tdbot/internal"
)

// Open returns the Store described by cfg.
func Open(ctx context.Context, cfg internal.StorageConfig) (Store, error) {
	switch cfg.Kind {
	case internal.StorageDir:
		return NewDir(cfg.Dir)
	case internal.StorageS3:
		bucket := cfg.Bucket
		if bucket == "" {
			bucket = internal.DefaultBucket
		}
		return NewS3(ctx, bucket, cfg.Prefix, cfg.Gzip)
	case internal.StorageMemory:
		return NewMemory(), nil
	}
	return nil, fmt.Errorf("unknown storage kind %q", cfg.Kind)
}
