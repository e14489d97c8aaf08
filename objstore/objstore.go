/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */

// Package objstore stores opaque objects by key in S3, a local directory or
// memory.
package objstore

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var ErrNotFound = errors.New("object not found")

// Store is a flat key/value object store. Keys are slash separated paths.
type Store interface {
	Put(ctx context.Context, key string, data []byte) error
	// Get returns an error wrapping ErrNotFound if key does not exist
	Get(ctx context.Context, key string) ([]byte, error)
	// Delete returns an error wrapping ErrNotFound if key does not exist
	Delete(ctx context.Context, key string) error
	// List returns the keys beginning with prefix in lexical order
	List(ctx context.Context, prefix string) ([]string, error)
}

func checkKey(key string) error {
	if key == "" || strings.HasPrefix(key, "/") || strings.HasSuffix(key, "/") {
		return fmt.Errorf("invalid object key %q", key)
	}
	for _, part := range strings.Split(key, "/") {
		if part == "" || part == "." || part == ".." {
			return fmt.Errorf("invalid object key %q", key)
		}
	}
	return nil
}
