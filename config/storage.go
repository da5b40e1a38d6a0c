package config

import (
	"fmt"
	"os"
	"strings"
)

const (
	EnvStorageEndpoint  = "PDFMERGE_S3_ENDPOINT"
	EnvStorageAccessKey = "PDFMERGE_S3_ACCESS_KEY"
	EnvStorageSecretKey = "PDFMERGE_S3_SECRET_KEY"
	EnvStorageBucket    = "PDFMERGE_S3_BUCKET"
)

// StorageConfig configures publication of merged documents to an
// S3-compatible object store.
type StorageConfig struct {
	Enabled bool `toml:"enabled"`
	// Endpoint may carry an http:// or https:// scheme; https implies TLS.
	Endpoint  string `toml:"endpoint"`
	AccessKey string `toml:"access_key"`
	SecretKey string `toml:"secret_key"`
	Bucket    string `toml:"bucket"`
	Region    string `toml:"region"`
	UseSSL    bool   `toml:"use_ssl"`
}

// Host returns the endpoint without its scheme.
func (c *StorageConfig) Host() string {
	host := strings.TrimPrefix(c.Endpoint, "https://")
	host = strings.TrimPrefix(host, "http://")
	return strings.TrimSuffix(host, "/")
}

// Secure reports whether the endpoint is reached over TLS.
func (c *StorageConfig) Secure() bool {
	return c.UseSSL || strings.HasPrefix(c.Endpoint, "https://")
}

// Finalize loads environment overrides and validates the storage configuration.
func (c *StorageConfig) Finalize() error {
	c.loadEnv()
	return c.validate()
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *StorageConfig) Merge(overlay *StorageConfig) {
	if overlay.Enabled {
		c.Enabled = true
	}
	if overlay.Endpoint != "" {
		c.Endpoint = overlay.Endpoint
	}
	if overlay.AccessKey != "" {
		c.AccessKey = overlay.AccessKey
	}
	if overlay.SecretKey != "" {
		c.SecretKey = overlay.SecretKey
	}
	if overlay.Bucket != "" {
		c.Bucket = overlay.Bucket
	}
	if overlay.Region != "" {
		c.Region = overlay.Region
	}
	if overlay.UseSSL {
		c.UseSSL = true
	}
}

func (c *StorageConfig) loadEnv() {
	if v := os.Getenv(EnvStorageEndpoint); v != "" {
		c.Endpoint = v
		c.Enabled = true
	}
	if v := os.Getenv(EnvStorageAccessKey); v != "" {
		c.AccessKey = v
	}
	if v := os.Getenv(EnvStorageSecretKey); v != "" {
		c.SecretKey = v
	}
	if v := os.Getenv(EnvStorageBucket); v != "" {
		c.Bucket = v
	}
}

func (c *StorageConfig) validate() error {
	if !c.Enabled {
		return nil
	}
	if c.Host() == "" {
		return fmt.Errorf("endpoint required")
	}
	if c.Bucket == "" {
		return fmt.Errorf("bucket required")
	}
	return nil
}
