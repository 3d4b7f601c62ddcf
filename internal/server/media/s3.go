// Package media uploads user media (avatars, cover images) to an
// S3-compatible object store and returns publicly addressable URLs.
package media

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	sc "github.com/dmitrijs2005/videotube/internal/server/config"
)

// Seams for tests: the AWS SDK entry points are held in variables so unit
// tests can substitute stubs without a live object store.
var (
	loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	putObject = func(client *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		return client.PutObject(ctx, in, optFns...)
	}
)

// File is one uploaded file, decoupled from the HTTP multipart layer.
type File struct {
	Name        string
	ContentType string
	Body        io.Reader
}

// S3Storage uploads files to a bucket reachable at a fixed base endpoint
// (MinIO-compatible) using static credentials.
type S3Storage struct {
	user         string
	password     string
	bucket       string
	region       string
	baseEndpoint string
}

func NewS3Storage(cfg *sc.Config) *S3Storage {
	return &S3Storage{
		user:         cfg.S3RootUser,
		password:     cfg.S3RootPassword,
		bucket:       cfg.S3Bucket,
		region:       cfg.S3Region,
		baseEndpoint: cfg.S3BaseEndpoint,
	}
}

func (s *S3Storage) getClient(ctx context.Context) (*s3.Client, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		awsconfig.WithRegion(s.region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.user,
			s.password,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.baseEndpoint)
		o.UsePathStyle = true
	})

	return client, nil
}

// storageKey builds a date-partitioned object key, keeping the original
// file extension: folder/yyyy/mm/dd/<uuid><ext>.
func storageKey(folder, filename string) string {
	d := time.Now()
	return fmt.Sprintf("%s/%d/%02d/%02d/%v%s", folder, d.Year(), d.Month(), d.Day(), uuid.New(), path.Ext(filename))
}

// Upload stores the file and returns its public URL. Any failure aborts the
// upload; there are no retries.
func (s *S3Storage) Upload(ctx context.Context, folder string, file *File) (string, error) {

	client, err := s.getClient(ctx)
	if err != nil {
		return "", err
	}

	key := storageKey(folder, file.Name)

	in := &s3.PutObjectInput{
		Bucket: &s.bucket,
		Key:    &key,
		Body:   file.Body,
	}
	if file.ContentType != "" {
		in.ContentType = &file.ContentType
	}

	if _, err := putObject(client, ctx, in); err != nil {
		return "", err
	}

	return s.objectURL(key), nil
}

func (s *S3Storage) objectURL(key string) string {
	return fmt.Sprintf("%s/%s/%s", strings.TrimSuffix(s.baseEndpoint, "/"), s.bucket, key)
}
