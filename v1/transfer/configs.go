package transfer

import (
	"fmt"
	"os"
	"strconv"
)

// Defaults applied by Validate when the corresponding field is unset.
const (
	DefaultWorkers   = 4
	DefaultBatchSize = 100
)

// Config controls one transfer pipeline.
type Config struct {
	// Endpoint is the S3-compatible object store endpoint, e.g.
	// "tos-s3-ap-southeast-1.bytepluses.com".
	Endpoint string

	// AccessKeyID and SecretAccessKey authenticate against the object
	// store. They are independent of the VikingDB credentials.
	AccessKeyID     string
	SecretAccessKey string

	// UseSSL selects https for the object store connection.
	UseSSL bool

	// Region is the object store region.
	Region string

	// Bucket is the source bucket.
	Bucket string

	// Prefix narrows the transfer to keys under this prefix. Empty
	// means the whole bucket.
	Prefix string

	// CollectionName is the target VikingDB collection.
	CollectionName string

	// Workers bounds the number of concurrent upsert batches.
	// Default: 4.
	Workers int

	// BatchSize is the number of records per upsert call. Default: 100.
	BatchSize int
}

// NewConfig reads the configuration from environment variables:
//
//	TRANSFER_S3_ENDPOINT
//	TRANSFER_S3_ACCESS_KEY_ID
//	TRANSFER_S3_SECRET_ACCESS_KEY
//	TRANSFER_S3_USE_SSL            (optional, default true)
//	TRANSFER_S3_REGION             (optional)
//	TRANSFER_BUCKET
//	TRANSFER_PREFIX                (optional)
//	TRANSFER_COLLECTION_NAME
//	TRANSFER_WORKERS               (optional)
//	TRANSFER_BATCH_SIZE            (optional)
func NewConfig() *Config {
	useSSL := true
	if v := os.Getenv("TRANSFER_S3_USE_SSL"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			useSSL = b
		}
	}

	return &Config{
		Endpoint:        os.Getenv("TRANSFER_S3_ENDPOINT"),
		AccessKeyID:     os.Getenv("TRANSFER_S3_ACCESS_KEY_ID"),
		SecretAccessKey: os.Getenv("TRANSFER_S3_SECRET_ACCESS_KEY"),
		UseSSL:          useSSL,
		Region:          os.Getenv("TRANSFER_S3_REGION"),
		Bucket:          os.Getenv("TRANSFER_BUCKET"),
		Prefix:          os.Getenv("TRANSFER_PREFIX"),
		CollectionName:  os.Getenv("TRANSFER_COLLECTION_NAME"),
		Workers:         envInt("TRANSFER_WORKERS"),
		BatchSize:       envInt("TRANSFER_BATCH_SIZE"),
	}
}

func envInt(name string) int {
	if v := os.Getenv(name); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return 0
}

// Validate checks required fields and fills in defaults.
func (c *Config) Validate() error {
	if c.Bucket == "" {
		return fmt.Errorf("transfer: missing TRANSFER_BUCKET")
	}
	if c.CollectionName == "" {
		return fmt.Errorf("transfer: missing TRANSFER_COLLECTION_NAME")
	}
	if c.Workers <= 0 {
		c.Workers = DefaultWorkers
	}
	if c.BatchSize <= 0 {
		c.BatchSize = DefaultBatchSize
	}
	return nil
}
