package infra

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/tnqbao/movie-catalog-service/config"
)

type MinioClient struct {
	Client     *minio.Client
	Bucket     string
	publicBase string
}

func InitMinioClient(cfg *config.EnvConfig) *MinioClient {
	endpoint := cfg.Minio.Endpoint
	if endpoint == "" {
		panic("MinIO endpoint is not configured")
	}

	rootUser := cfg.Minio.RootUser
	if rootUser == "" {
		panic("MinIO root user is not configured")
	}

	rootPassword := cfg.Minio.RootPassword
	if rootPassword == "" {
		panic("MinIO root password is not configured")
	}

	minioClient, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(rootUser, rootPassword, ""),
		Secure: cfg.Minio.UseSSL,
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize MinIO client: %v", err))
	}

	publicBase := cfg.Minio.PublicEndpoint
	if publicBase == "" {
		scheme := "http"
		if cfg.Minio.UseSSL {
			scheme = "https"
		}
		publicBase = scheme + "://" + endpoint
	}
	publicBase = strings.TrimSuffix(publicBase, "/")

	m := &MinioClient{
		Client:     minioClient,
		Bucket:     cfg.Minio.Bucket,
		publicBase: publicBase,
	}

	if err := m.EnsureBucket(context.Background(), m.Bucket); err != nil {
		panic(fmt.Sprintf("Failed to ensure MinIO bucket: %v", err))
	}

	return m
}

// EnsureBucket creates the bucket if it doesn't exist and opens it for
// anonymous reads so stored image URLs are publicly reachable.
func (m *MinioClient) EnsureBucket(ctx context.Context, bucketName string) error {
	if bucketName == "" {
		return fmt.Errorf("bucketName cannot be empty")
	}

	exists, err := m.Client.BucketExists(ctx, bucketName)
	if err != nil {
		return fmt.Errorf("failed to check if bucket exists: %w", err)
	}

	if !exists {
		if err := m.Client.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{Region: "us-east-1"}); err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	policyJSON := fmt.Sprintf(`{
		"Version": "2012-10-17",
		"Statement": [
			{
				"Effect": "Allow",
				"Principal": {"AWS": ["*"]},
				"Action": ["s3:GetObject"],
				"Resource": ["arn:aws:s3:::%s/*"]
			}
		]
	}`, bucketName)

	if err := m.Client.SetBucketPolicy(ctx, bucketName, policyJSON); err != nil {
		return fmt.Errorf("failed to set bucket policy: %w", err)
	}

	return nil
}

// UploadFile stores the stream under a generated object name (uuid plus the
// original extension, so names never collide) and returns the public URL.
func (m *MinioClient) UploadFile(ctx context.Context, reader io.Reader, size int64, filename, contentType string) (string, error) {
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	objectName := uuid.New().String() + strings.ToLower(filepath.Ext(filename))

	_, err := m.Client.PutObject(ctx, m.Bucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload object: %w", err)
	}

	return fmt.Sprintf("%s/%s/%s", m.publicBase, m.Bucket, objectName), nil
}

// DeleteFile removes the object a previously returned URL points at.
// An empty URL is trivially successful and removing an absent object counts
// as success; any other failure reports false for the caller to log.
func (m *MinioClient) DeleteFile(ctx context.Context, fileURL string) bool {
	if fileURL == "" {
		return true
	}

	objectName := ObjectNameFromURL(fileURL)
	if objectName == "" {
		return false
	}

	if err := m.Client.RemoveObject(ctx, m.Bucket, objectName, minio.RemoveObjectOptions{}); err != nil {
		return false
	}

	return true
}

// ObjectNameFromURL extracts the object name from a stored image URL.
func ObjectNameFromURL(fileURL string) string {
	u, err := url.Parse(fileURL)
	if err != nil {
		return ""
	}

	name := path.Base(u.Path)
	if name == "." || name == "/" {
		return ""
	}
	return name
}
