package config

import (
	"os"
	"strings"
	"sync"
)

const (
	StorageLocal = "local"
	StorageGCS   = "gcs"
)

type StorageConfig struct {
	Driver             string
	LocalDir           string
	GCSBucket          string
	GCSCredentialsFile string
}

var (
	storageConfig *StorageConfig
	storageOnce   sync.Once
)

func LoadStorageConfig() *StorageConfig {
	storageOnce.Do(func() {
		storageConfig = newStorageConfig()
	})
	return storageConfig
}

func newStorageConfig() *StorageConfig {
	return &StorageConfig{
		Driver:             strings.ToLower(getEnv("STORAGE_DRIVER", StorageLocal)),
		LocalDir:           getEnv("STORAGE_LOCAL_DIR", "./uploads"),
		GCSBucket:          os.Getenv("GCS_BUCKET"),
		GCSCredentialsFile: os.Getenv("GCS_CREDENTIALS_FILE"),
	}
}
