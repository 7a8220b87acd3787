// Package s3store implements snapshot.Store on an S3-compatible bucket
// (AWS S3, MinIO). Each record is one object under Prefix+id; the record
// timestamp travels in the object's user metadata.
package s3store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/dmitrijs2005/tripkeeper/internal/common"
	"github.com/dmitrijs2005/tripkeeper/internal/snapshot"
)

const (
	timestampMetaKey = "timestamp"
	contentType      = "application/vnd.sqlite3"
)

var (
	loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}
)

// Config locates the bucket. An empty Endpoint uses the AWS default
// resolver; any other value is used as the base endpoint with path-style
// addressing.
type Config struct {
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
	Endpoint  string
	Prefix    string
}

type Store struct {
	client *s3.Client
	bucket string
	prefix string
}

func New(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("%w: s3 bucket is required", common.ErrInvalidInput)
	}

	awsCfg, err := loadDefaultAWSConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := newS3ClientFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
		o.RequestChecksumCalculation = aws.RequestChecksumCalculationWhenRequired
		o.ResponseChecksumValidation = aws.ResponseChecksumValidationWhenRequired
	})

	return &Store{client: client, bucket: cfg.Bucket, prefix: cfg.Prefix}, nil
}

func (s *Store) key(id string) string { return s.prefix + id }

func (s *Store) Get(ctx context.Context, id string) (*snapshot.Record, error) {
	key := s.key(id)
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			return nil, nil
		}
		return nil, fmt.Errorf("get object %s: %w", key, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("read object %s: %w", key, err)
	}

	rec := &snapshot.Record{ID: id, Data: data}
	if ts, ok := out.Metadata[timestampMetaKey]; ok {
		if t, err := time.Parse(common.TimestampLayout, ts); err == nil {
			rec.Timestamp = t
		}
	}
	if rec.Timestamp.IsZero() && out.LastModified != nil {
		rec.Timestamp = out.LastModified.UTC()
	}
	return rec, nil
}

func (s *Store) Put(ctx context.Context, rec snapshot.Record) error {
	key := s.key(rec.ID)
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(rec.Data),
		ContentLength: aws.Int64(int64(len(rec.Data))),
		ContentType:   aws.String(contentType),
		Metadata: map[string]string{
			timestampMetaKey: rec.Timestamp.UTC().Format(common.TimestampLayout),
		},
	})
	if err != nil {
		return fmt.Errorf("put object %s: %w", key, err)
	}
	return nil
}

// Close is a no-op; the S3 client holds no resources that need releasing.
func (s *Store) Close() error { return nil }
