// Package filestore keeps files uploaded with form submissions in an
// S3 compatible bucket.
package filestore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/unilabvision/myuni/internal/db/models"
)

// ErrBucketEmpty is returned when no bucket is configured.
var ErrBucketEmpty = errors.New("filestore: bucket is empty")

// Store persists an uploaded file and describes where it went.
type Store interface {
	Put(ctx context.Context, name, contentType string, data []byte) (models.StoredFile, error)
}

// S3API is the part of the S3 client used by the store.
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Config configures the S3 store.
type Config struct {
	Bucket    string
	Region    string
	Prefix    string
	Endpoint  string // optional, for S3 compatible services
	AccessKey string
	SecretKey string
	PublicURL string // optional base for public object links
}

// S3 stores files in a bucket.
type S3 struct {
	client S3API
	cfg    Config
	now    func() time.Time
}

// NewS3 loads the AWS configuration and creates the store.
func NewS3(ctx context.Context, cfg Config) (*S3, error) {
	if cfg.Bucket == "" {
		return nil, ErrBucketEmpty
	}

	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}

	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return NewS3WithClient(client, cfg), nil
}

// NewS3WithClient creates the store around an existing client.
func NewS3WithClient(client S3API, cfg Config) *S3 {
	return &S3{client: client, cfg: cfg, now: time.Now}
}

// Put implements Store.
func (s *S3) Put(ctx context.Context, name, contentType string, data []byte) (models.StoredFile, error) {
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	key := s.objectKey(name)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.cfg.Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
		Metadata:      map[string]string{"original-name": safeName(name)},
	})
	if err != nil {
		return models.StoredFile{}, fmt.Errorf("S3 PutObject %s/%s: %w", s.cfg.Bucket, key, err)
	}

	log.Debug().Str("bucket", s.cfg.Bucket).Str("key", key).Int("bytes", len(data)).Msg("stored upload")

	return models.StoredFile{
		Name:        name,
		ContentType: contentType,
		Size:        len(data),
		Key:         key,
		URL:         s.objectURL(key),
	}, nil
}

func (s *S3) objectKey(name string) string {
	day := s.now().UTC().Format("2006/01/02")

	return path.Join(strings.Trim(s.cfg.Prefix, "/"), day, uuid.NewString()+"-"+safeName(name))
}

func (s *S3) objectURL(key string) string {
	if s.cfg.PublicURL != "" {
		return strings.TrimRight(s.cfg.PublicURL, "/") + "/" + key
	}

	if s.cfg.Endpoint != "" {
		return strings.TrimRight(s.cfg.Endpoint, "/") + "/" + s.cfg.Bucket + "/" + key
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.cfg.Bucket, s.cfg.Region, key)
}

// safeName keeps letters, digits, dot, dash and underscore of the base name.
func safeName(name string) string {
	base := path.Base(strings.ReplaceAll(name, "\\", "/"))

	var b strings.Builder

	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}

	if b.Len() == 0 || base == "." || base == "/" {
		return "file"
	}

	return b.String()
}
