// Package storage talks S3 to the Supabase-compatible object store that
// holds proposal PDFs, signature rasters and contact documents.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

const (
	BucketName = "documents"
	// Mirrors the bucket policy: public read, 5 MiB cap, three MIME types.
	MaxObjectSize = 5 * 1024 * 1024
)

var allowedMimeTypes = []string{"application/pdf", "image/jpeg", "image/png"}

var ErrForeignURL = errors.New("URL étrangère au bucket")

type Config struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	PublicURL string
}

type Client struct {
	s3        *s3.Client
	publicURL string
}

func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("configuration AWS: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = true
	})

	return &Client{
		s3:        client,
		publicURL: strings.TrimSuffix(cfg.PublicURL, "/"),
	}, nil
}

// EnsureBucket creates the documents bucket when it does not exist yet.
// Safe to run on every boot.
func (c *Client) EnsureBucket(ctx context.Context) error {
	_, err := c.s3.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(BucketName)})
	if err == nil {
		return nil
	}

	_, err = c.s3.CreateBucket(ctx, &s3.CreateBucketInput{Bucket: aws.String(BucketName)})
	if err != nil {
		var owned *types.BucketAlreadyOwnedByYou
		var exists *types.BucketAlreadyExists
		if errors.As(err, &owned) || errors.As(err, &exists) {
			return nil
		}
		return fmt.Errorf("création du bucket %s: %w", BucketName, err)
	}
	return nil
}

func (c *Client) Upload(ctx context.Context, path, contentType string, data []byte) (string, error) {
	if len(data) > MaxObjectSize {
		return "", fmt.Errorf("objet trop volumineux: %d octets (maximum %d)", len(data), MaxObjectSize)
	}
	if !allowedType(contentType) {
		return "", fmt.Errorf("type refusé par le bucket: %s", contentType)
	}

	_, err := c.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(BucketName),
		Key:         aws.String(path),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("dépôt de %s: %w", path, err)
	}

	return c.PublicURL(path), nil
}

// Download accepts either an object path or a public URL produced by
// Upload.
func (c *Client) Download(ctx context.Context, url string) ([]byte, error) {
	key, err := c.keyFromURL(url)
	if err != nil {
		return nil, err
	}

	out, err := c.s3.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(BucketName),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("récupération de %s: %w", key, err)
	}
	defer out.Body.Close()

	return io.ReadAll(out.Body)
}

// PublicURL builds the public address of an object, matching what the
// hosted storage used to hand out.
func (c *Client) PublicURL(path string) string {
	return fmt.Sprintf("%s/%s/%s", c.publicURL, BucketName, path)
}

func (c *Client) keyFromURL(url string) (string, error) {
	if !strings.Contains(url, "://") {
		return url, nil
	}
	prefix := c.publicURL + "/" + BucketName + "/"
	if !strings.HasPrefix(url, prefix) {
		return "", fmt.Errorf("%w: %s", ErrForeignURL, url)
	}
	return strings.TrimPrefix(url, prefix), nil
}

func allowedType(contentType string) bool {
	for _, m := range allowedMimeTypes {
		if strings.EqualFold(contentType, m) {
			return true
		}
	}
	return false
}
