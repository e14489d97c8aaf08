/* Copyright (c) 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package objstore

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"io"
	"log"
)

// HTTPCache adapts a Store to httpcache.Cache. Cache keys are hashed since
// they are full URLs.
type HTTPCache struct {
	store  Store
	prefix string

	// LogErrors controls whether errors other than misses are logged
	LogErrors bool

	// The context to specify when calling the store
	ctx context.Context
}

func NewHTTPCache(ctx context.Context, store Store, prefix string) *HTTPCache {
	return &HTTPCache{
		store:     store,
		prefix:    prefix,
		LogErrors: true,
		ctx:       ctx,
	}
}

func (c *HTTPCache) objectKey(key string) string {
	h := md5.New()
	io.WriteString(h, key)
	return c.prefix + hex.EncodeToString(h.Sum(nil))
}

func (c *HTTPCache) Get(key string) ([]byte, bool) {
	data, err := c.store.Get(c.ctx, c.objectKey(key))
	if err != nil {
		// not found just indicates a cache miss
		if c.LogErrors && !errors.Is(err, ErrNotFound) {
			log.Printf("objstore.httpcache.get: %v", err)
		}
		return nil, false
	}
	return data, true
}

func (c *HTTPCache) Set(key string, data []byte) {
	if err := c.store.Put(c.ctx, c.objectKey(key), data); err != nil && c.LogErrors {
		log.Printf("objstore.httpcache.set: %v", err)
	}
}

func (c *HTTPCache) Delete(key string) {
	err := c.store.Delete(c.ctx, c.objectKey(key))
	if err != nil && c.LogErrors && !errors.Is(err, ErrNotFound) {
		log.Printf("objstore.httpcache.delete: %v", err)
	}
}
