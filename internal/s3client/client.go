package s3client

import (
	"context"
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	appConfig "s3mirror/config"
	"s3mirror/internal/models"
)

type Client struct {
	s3Client   *s3.Client
	downloader *manager.Downloader
	config     *appConfig.Config
}

func New(cfg *appConfig.Config) (*Client, error) {
	awsConfig, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(cfg.Region),
		config.WithCredentialsProvider(credentials.StaticCredentialsProvider{
			Value: aws.Credentials{
				AccessKeyID:     cfg.AccessKey,
				SecretAccessKey: cfg.SecretKey,
			},
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	var s3Client *s3.Client
	if cfg.ApiURL != "" {
		s3Client = s3.NewFromConfig(awsConfig, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.ApiURL)
			o.UsePathStyle = true
		})
	} else {
		s3Client = s3.NewFromConfig(awsConfig)
	}

	return &Client{
		s3Client:   s3Client,
		downloader: manager.NewDownloader(s3Client),
		config:     cfg,
	}, nil
}

// ListObjects walks the container's objects in listing order, invoking fn
// once per object. A container maps to a top-level key prefix in the bucket;
// objects are yielded page by page, so fn may be called before the full
// listing is known.
func (c *Client) ListObjects(ctx context.Context, container, prefix string, fn func(models.RemoteObject) error) error {
	keyPrefix := container + "/" + prefix

	paginator := s3.NewListObjectsV2Paginator(c.s3Client, &s3.ListObjectsV2Input{
		Bucket: aws.String(c.config.BucketName),
		Prefix: aws.String(keyPrefix),
	})

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return fmt.Errorf("failed to list objects: %w", err)
		}

		for _, obj := range page.Contents {
			name := strings.TrimPrefix(*obj.Key, container+"/")
			if name == "" || strings.HasSuffix(name, "/") {
				continue
			}
			if err := fn(models.RemoteObject{Name: name, LastModified: obj.LastModified}); err != nil {
				return err
			}
		}
	}

	return nil
}

// DownloadObject transfers one object's content to destPath.
func (c *Client) DownloadObject(ctx context.Context, container, objectName, destPath string) error {
	file, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", destPath, err)
	}
	defer file.Close()

	_, err = c.downloader.Download(ctx, file, &s3.GetObjectInput{
		Bucket: aws.String(c.config.BucketName),
		Key:    aws.String(path.Join(container, objectName)),
	})
	if err != nil {
		return fmt.Errorf("failed to download from S3: %w", err)
	}

	return nil
}
