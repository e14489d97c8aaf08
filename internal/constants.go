/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

import "time"

const (
	UserAgent = "fencingpool-tdbot/0.3.0 (+https://github.com/mikeb26/fencingpool-tdbot)"

	// DefaultBucket holds stored pools and the roster web cache when the s3
	// storage kind is configured without a bucket
	DefaultBucket = "bopmatic-fencingpool-tdbot-prod"

	// object key prefixes within a Store
	PoolPrefix     = "pools/"
	WebCachePrefix = "webcache/"

	DefaultRosterCacheTTL = 6 * time.Hour

	// ConfigEnvVar names the config file when -config is not given
	ConfigEnvVar = "POOLTD_CONFIG"
)
