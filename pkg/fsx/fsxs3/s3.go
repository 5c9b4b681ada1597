package fsxs3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/Abraxas-365/mailer/pkg/fsx"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// API is the subset of *s3.Client used by S3FileSystem.
type API interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3FileSystem implements fsx.FileSystem on top of an S3 bucket.
type S3FileSystem struct {
	client API
	bucket string
	prefix string
}

// NewS3FileSystem creates a file system storing objects under bucket/prefix.
func NewS3FileSystem(client API, bucket, prefix string) *S3FileSystem {
	return &S3FileSystem{
		client: client,
		bucket: bucket,
		prefix: strings.Trim(prefix, "/"),
	}
}

func (fs *S3FileSystem) ReadFile(ctx context.Context, p string) ([]byte, error) {
	out, err := fs.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(fs.bucket),
		Key:    aws.String(fs.key(p)),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("%w: %s", fsx.ErrNotFound, p)
		}
		return nil, fmt.Errorf("failed to get object: %w", err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read object: %w", err)
	}
	return data, nil
}

func (fs *S3FileSystem) Exists(ctx context.Context, p string) (bool, error) {
	_, err := fs.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(fs.bucket),
		Key:    aws.String(fs.key(p)),
	})
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to head object: %w", err)
	}
	return true, nil
}

func (fs *S3FileSystem) WriteFile(ctx context.Context, p string, data []byte) error {
	_, err := fs.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(fs.bucket),
		Key:         aws.String(fs.key(p)),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType(p)),
	})
	if err != nil {
		return fmt.Errorf("failed to put object: %w", err)
	}
	return nil
}

func (fs *S3FileSystem) DeleteFile(ctx context.Context, p string) error {
	_, err := fs.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(fs.bucket),
		Key:    aws.String(fs.key(p)),
	})
	if err != nil && !isNotFound(err) {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}

// Describe returns the s3:// location of the prefix.
func (fs *S3FileSystem) Describe() string {
	return "s3://" + path.Join(fs.bucket, fs.prefix)
}

func (fs *S3FileSystem) key(p string) string {
	p = strings.TrimPrefix(path.Clean("/"+p), "/")
	if fs.prefix == "" {
		return p
	}
	return fs.prefix + "/" + p
}

func isNotFound(err error) bool {
	var nsk *types.NoSuchKey
	var nf *types.NotFound
	return errors.As(err, &nsk) || errors.As(err, &nf)
}

func contentType(p string) string {
	if strings.HasSuffix(p, ".json") {
		return "application/json"
	}
	return "application/octet-stream"
}
