package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	appConfig "ecity-api/internal/config"
	"ecity-api/internal/metrics"
)

// MaxImageSize is the largest accepted issue photo (5 MB)
const MaxImageSize int64 = 5 << 20

var (
	ErrImageTooLarge        = errors.New("image exceeds 5MB")
	ErrUnsupportedImage     = errors.New("unsupported image type")
	ErrStorageNotConfigured = errors.New("image storage is not configured")
)

// allowedImageTypes maps accepted content types to their canonical extension
var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/jpg":  ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
	"image/heic": ".heic",
}

var allowedImageExts = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true, ".heic": true,
}

// ImageStore stores issue photos
type ImageStore interface {
	GenerateFileKey(fileExt string, now time.Time) string
	UploadFile(ctx context.Context, key string, file io.Reader, size int64, contentType string) (string, error)
	DeleteFile(ctx context.Context, key string) error
	GetFileURL(key string) string
	KeyFromURL(fileURL string) (string, bool)
}

// ValidateImage checks the size and type of an uploaded photo and returns
// the extension to store it under.
func ValidateImage(fileName, contentType string, size int64) (string, error) {
	if size > MaxImageSize {
		return "", ErrImageTooLarge
	}
	ext := strings.ToLower(filepath.Ext(fileName))
	if canonical, ok := allowedImageTypes[strings.ToLower(contentType)]; ok {
		if ext == "" {
			ext = canonical
		}
		return ext, nil
	}
	// some clients send application/octet-stream; fall back to the extension
	if allowedImageExts[ext] {
		return ext, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedImage, contentType)
}

// S3Client wraps the AWS S3 client and implements ImageStore
type S3Client struct {
	client    *s3.Client
	bucket    string
	region    string
	endpoint  string
	publicURL string
	metrics   *metrics.Metrics
}

// NewS3Client creates a new S3 client. When Endpoint is set (MinIO) static
// credentials are required and path-style addressing is used.
func NewS3Client(ctx context.Context, cfg *appConfig.S3Config, m *metrics.Metrics) (*S3Client, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("S3 bucket is required")
	}
	if cfg.Region == "" {
		return nil, fmt.Errorf("S3 region is required")
	}
	if cfg.Endpoint != "" && (cfg.AccessKey == "" || cfg.SecretKey == "") {
		return nil, fmt.Errorf("access key and secret key are required for a custom endpoint")
	}

	opts := []func(*config.LoadOptions) error{config.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	s3Client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Client{
		client:    s3Client,
		bucket:    cfg.Bucket,
		region:    cfg.Region,
		endpoint:  strings.TrimSuffix(cfg.Endpoint, "/"),
		publicURL: strings.TrimSuffix(cfg.PublicURL, "/"),
		metrics:   m,
	}, nil
}

// GenerateFileKey returns issues/{yyyy}/{mm}/{uuid}{ext}
func (c *S3Client) GenerateFileKey(fileExt string, now time.Time) string {
	return GenerateFileKey(fileExt, now)
}

// GenerateFileKey is shared by every ImageStore implementation
func GenerateFileKey(fileExt string, now time.Time) string {
	now = now.UTC()
	return fmt.Sprintf("issues/%s/%s/%s%s", now.Format("2006"), now.Format("01"), uuid.New().String(), strings.ToLower(fileExt))
}

// UploadFile puts the object and returns its public URL
func (c *S3Client) UploadFile(ctx context.Context, key string, file io.Reader, size int64, contentType string) (string, error) {
	start := time.Now()
	_, err := c.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(c.bucket),
		Key:           aws.String(key),
		Body:          file,
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
	})
	c.record("/"+c.bucket+"/"+key, "PUT", err, start)
	if err != nil {
		return "", fmt.Errorf("failed to upload file to S3: %w", err)
	}
	return c.GetFileURL(key), nil
}

// DeleteFile deletes a file from S3
func (c *S3Client) DeleteFile(ctx context.Context, key string) error {
	start := time.Now()
	_, err := c.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	c.record("/"+c.bucket+"/"+key, "DELETE", err, start)
	if err != nil {
		return fmt.Errorf("failed to delete file from S3: %w", err)
	}
	return nil
}

// GetFileURL returns the public URL for a key
func (c *S3Client) GetFileURL(key string) string {
	return c.baseURL() + "/" + key
}

// KeyFromURL reverses GetFileURL. It reports false for URLs that do not
// point into this bucket.
func (c *S3Client) KeyFromURL(fileURL string) (string, bool) {
	prefix := c.baseURL() + "/"
	if !strings.HasPrefix(fileURL, prefix) {
		return "", false
	}
	key := strings.TrimPrefix(fileURL, prefix)
	return key, key != ""
}

func (c *S3Client) baseURL() string {
	switch {
	case c.publicURL != "":
		return c.publicURL
	case c.endpoint != "":
		return c.endpoint + "/" + c.bucket
	default:
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", c.bucket, c.region)
	}
}

func (c *S3Client) record(endpoint, method string, err error, start time.Time) {
	if c.metrics == nil {
		return
	}
	status := 200
	if err != nil {
		status = 0
		var respErr *awshttp.ResponseError
		if errors.As(err, &respErr) {
			status = respErr.HTTPStatusCode()
		}
	}
	c.metrics.RecordExternalAPICall(endpoint, method, status, time.Since(start), err)
}
