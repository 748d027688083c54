package s3

import (
	"context"
	"fmt"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Config доступ к bucket с файлами эфемерид (VSOP87B.*)
type Config struct {
	Enabled   bool   `split_words:"true" default:"false"`
	Host      string `split_words:"true" default:"localhost:9000"`
	AccessKey string `split_words:"true"`
	SecretKey string `split_words:"true"`
	Bucket    string `split_words:"true" default:"ephemeris"`
	Prefix    string `split_words:"true" default:"ephe/"`
	UseSSL    bool   `envconfig:"USE_SSL" default:"false"` // false для локальной разработки

	// SyncInterval период повторной докачки, 0 только при старте
	SyncInterval time.Duration `split_words:"true" default:"0"`
}

// NewClient создаёт новый MinIO клиент
func (c *Config) NewClient() (*minio.Client, error) {
	client, err := minio.New(c.Host, &minio.Options{
		Creds:  credentials.NewStaticV4(c.AccessKey, c.SecretKey, ""),
		Secure: c.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Проверяем существование bucket
	exists, err := client.BucketExists(ctx, c.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}

	if !exists {
		return nil, fmt.Errorf("bucket %s does not exist", c.Bucket)
	}

	return client, nil
}
