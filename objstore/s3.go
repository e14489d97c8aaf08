/* Copyright (c) 2013 The s3cache AUTHORS. All rights reserved.
 * Copyright (c) 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package objstore

import (
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
)

// S3API is the subset of *s3.Client used by S3.
type S3API interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput,
		optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput,
		optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	HeadObject(ctx context.Context, params *s3.HeadObjectInput,
		optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput,
		optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input,
		optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

// S3 is a Store backed by an Amazon S3 bucket.
type S3 struct {
	client S3API

	bucketName string

	// prefix is prepended to every key
	prefix string

	// gzip indicates whether objects should be gzipped in Put and gunzipped
	// in Get. If true, object keys will have the suffix ".gz" appended.
	gzip bool
}

// NewS3WithClient returns an S3 store using client.
func NewS3WithClient(client S3API, bucketName, prefix string, gzip bool) *S3 {
	return &S3{
		client:     client,
		bucketName: bucketName,
		prefix:     prefix,
		gzip:       gzip,
	}
}

// NewS3 loads the default AWS configuration and checks that the bucket can be
// read and listed. The default configuration sources are:
// * Environment Variables (e.g. AWS_ACCESS_KEY_ID and AWS_SECRET_KEY)
// * Shared Configuration and Shared Credentials files.
func NewS3(ctx context.Context, bucketName, prefix string, gzip bool) (*S3, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("objstore.news3: failed to load AWS config: %w", err)
	}
	client := s3.NewFromConfig(cfg)

	// Permission check: verify bucket exists and is accessible
	if _, err = client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(bucketName),
	}); err != nil {
		return nil, fmt.Errorf("objstore.news3: head bucket failed for %s: %w",
			bucketName, err)
	}

	// Permission check: verify ability to list objects (read/list permissions)
	if _, err = client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket:  aws.String(bucketName),
		MaxKeys: aws.Int32(1),
	}); err != nil {
		return nil, fmt.Errorf("objstore.news3: list objects failed for %s: %w",
			bucketName, err)
	}

	return NewS3WithClient(client, bucketName, prefix, gzip), nil
}

func (c *S3) objectKey(key string) string {
	objKey := c.prefix + key
	if c.gzip {
		objKey += ".gz"
	}
	return objKey
}

func isNotFound(err error) bool {
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.ErrorCode() == "NoSuchKey" || apiErr.ErrorCode() == "NotFound"
}

func (c *S3) Put(ctx context.Context, key string, data []byte) error {
	if err := checkKey(key); err != nil {
		return err
	}
	input := &s3.PutObjectInput{
		Bucket: aws.String(c.bucketName),
		Key:    aws.String(c.objectKey(key)),
		Body:   bytes.NewReader(data),
	}

	if c.gzip {
		var buf bytes.Buffer
		gw := gzip.NewWriter(&buf)
		if _, err := gw.Write(data); err != nil {
			return fmt.Errorf("unable to gzip %v: %w", key, err)
		}
		if err := gw.Close(); err != nil {
			return fmt.Errorf("unable to gzip %v: %w", key, err)
		}
		input.Body = &buf
		input.ContentEncoding = aws.String("gzip")
	}

	if _, err := c.client.PutObject(ctx, input); err != nil {
		return fmt.Errorf("unable to put %v%v: %w", c.bucketName, *input.Key, err)
	}
	return nil
}

func (c *S3) Get(ctx context.Context, key string) ([]byte, error) {
	input := &s3.GetObjectInput{
		Bucket: aws.String(c.bucketName),
		Key:    aws.String(c.objectKey(key)),
	}

	resp, err := c.client.GetObject(ctx, input)
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("%w: %v", ErrNotFound, key)
		}
		return nil, fmt.Errorf("unable to get %v%v: %w", c.bucketName, *input.Key, err)
	}
	defer resp.Body.Close()

	rdr := resp.Body
	if c.gzip {
		rdr, err = gzip.NewReader(rdr)
		if err != nil {
			return nil, fmt.Errorf("unable to open compressed object %v%v: %w",
				c.bucketName, *input.Key, err)
		}
		defer rdr.Close()
	}
	data, err := io.ReadAll(rdr)
	if err != nil {
		return nil, fmt.Errorf("unable to read object %v%v: %w", c.bucketName,
			*input.Key, err)
	}

	return data, nil
}

// Delete checks for the object first since S3 deletes of missing keys
// succeed.
func (c *S3) Delete(ctx context.Context, key string) error {
	objKey := aws.String(c.objectKey(key))
	_, err := c.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(c.bucketName),
		Key:    objKey,
	})
	if err != nil {
		if isNotFound(err) {
			return fmt.Errorf("%w: %v", ErrNotFound, key)
		}
		return fmt.Errorf("unable to head %v%v: %w", c.bucketName, *objKey, err)
	}

	_, err = c.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucketName),
		Key:    objKey,
	})
	if err != nil {
		return fmt.Errorf("unable to delete %v%v: %w", c.bucketName, *objKey, err)
	}
	return nil
}

func (c *S3) List(ctx context.Context, prefix string) ([]string, error) {
	paginator := s3.NewListObjectsV2Paginator(c.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(c.bucketName),
		Prefix: aws.String(c.prefix + prefix),
	})

	var keys []string
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("unable to list %v%v: %w", c.bucketName,
				c.prefix+prefix, err)
		}
		for _, obj := range page.Contents {
			key := strings.TrimPrefix(aws.ToString(obj.Key), c.prefix)
			if c.gzip {
				if !strings.HasSuffix(key, ".gz") {
					log.Printf("objstore.list: skipping uncompressed object %v",
						aws.ToString(obj.Key))
					continue
				}
				key = strings.TrimSuffix(key, ".gz")
			}
			keys = append(keys, key)
		}
	}

	return keys, nil
}
