/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

type StorageKind string

const (
	StorageDir    StorageKind = "dir"
	StorageS3     StorageKind = "s3"
	StorageMemory StorageKind = "memory"
)

// Config is the optional pooltd / discordbot configuration file.
type Config struct {
	Storage StorageConfig `yaml:"storage"`
	Pool    PoolConfig    `yaml:"pool"`
	Roster  RosterConfig  `yaml:"roster"`
}

type StorageConfig struct {
	Kind   StorageKind `yaml:"kind"`
	Dir    string      `yaml:"dir"`
	Bucket string      `yaml:"bucket"`
	Prefix string      `yaml:"prefix"`
	Gzip   bool        `yaml:"gzip"`
}

type PoolConfig struct {
	// BoutOrder is a boutorder.ByName name
	BoutOrder string `yaml:"bout_order"`
	// TieBreak is "random" or "seed"
	TieBreak string `yaml:"tie_break"`
}

type RosterConfig struct {
	CacheTTL time.Duration `yaml:"cache_ttl"`
	// Cached selects whether roster fetches go through the storage backed
	// web cache
	Cached bool `yaml:"cached"`
}

func DefaultConfig() Config {
	dir := ".pooltd"
	if home, err := os.UserHomeDir(); err == nil {
		dir = filepath.Join(home, ".pooltd")
	}

	return Config{
		Storage: StorageConfig{Kind: StorageDir, Dir: dir},
		Pool:    PoolConfig{BoutOrder: "auto", TieBreak: "random"},
		Roster:  RosterConfig{CacheTTL: DefaultRosterCacheTTL, Cached: true},
	}
}

// LoadConfig reads filename over the defaults. An empty filename falls back
// to $POOLTD_CONFIG, and to the defaults alone when that is unset too.
func LoadConfig(filename string) (*Config, error) {
	cfg := DefaultConfig()
	if filename == "" {
		filename = os.Getenv(ConfigEnvVar)
	}
	if filename != "" {
		data, err := os.ReadFile(filename)
		if err != nil {
			return nil, fmt.Errorf("unable to read config %v: %w", filename, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("unable to parse config %v: %w", filename, err)
		}
	}

	if v := os.Getenv("POOLTD_STORAGE"); v != "" {
		cfg.Storage.Kind = StorageKind(v)
	}
	if v := os.Getenv("POOLTD_DIR"); v != "" {
		cfg.Storage.Dir = v
	}
	if v := os.Getenv("POOLTD_BUCKET"); v != "" {
		cfg.Storage.Bucket = v
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.Storage.Kind {
	case StorageDir:
		if c.Storage.Dir == "" {
			return fmt.Errorf("invalid config: storage kind dir requires a dir")
		}
	case StorageS3:
		if c.Storage.Bucket == "" {
			c.Storage.Bucket = DefaultBucket
		}
	case StorageMemory:
	default:
		return fmt.Errorf("invalid config: unknown storage kind %q", c.Storage.Kind)
	}

	switch c.Pool.TieBreak {
	case "", "random", "seed":
	default:
		return fmt.Errorf("invalid config: unknown tie_break %q", c.Pool.TieBreak)
	}
	if c.Roster.CacheTTL < 0 {
		return fmt.Errorf("invalid config: negative roster cache_ttl")
	}

	return nil
}
