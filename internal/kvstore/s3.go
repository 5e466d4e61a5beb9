package kvstore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

const (
	defaultS3Region      = "us-east-1"
	s3RegionParam        = "region"
	s3EndpointParam      = "endpoint"
	jsonContentType      = "application/json"
	pathSeparator        = "/"
	errMissingBucket     = "s3 url must name a bucket"
	errFailedS3SessionFm = "failed to create AWS session: %w"
	errFailedReadBodyFmt = "failed to read object %q: %w"
)

// S3Store keeps one object per key under an optional key prefix.
type S3Store struct {
	svc       *s3.S3
	bucket    string
	keyPrefix string
}

// NewS3Store accepts s3://bucket/optional/prefix?region=eu-west-1&endpoint=http://minio:9000.
// Credentials come from the default AWS chain.
func NewS3Store(rawURL string) (*S3Store, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, err
	}
	if u.Host == "" {
		return nil, errors.New(errMissingBucket)
	}

	region := u.Query().Get(s3RegionParam)
	if region == "" {
		region = defaultS3Region
	}

	awsConfig := &aws.Config{Region: aws.String(region)}
	if endpoint := u.Query().Get(s3EndpointParam); endpoint != "" {
		awsConfig.Endpoint = aws.String(endpoint)
		awsConfig.S3ForcePathStyle = aws.Bool(true)
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf(errFailedS3SessionFm, err)
	}

	keyPrefix := strings.Trim(u.Path, pathSeparator)
	if keyPrefix != "" {
		keyPrefix += pathSeparator
	}

	return &S3Store{
		svc:       s3.New(sess),
		bucket:    u.Host,
		keyPrefix: keyPrefix,
	}, nil
}

func (s *S3Store) objectKey(key string) string {
	return s.keyPrefix + key
}

func (s *S3Store) Get(ctx context.Context, key string) ([]byte, error) {
	out, err := s.svc.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.objectKey(key)),
	})
	if err != nil {
		if isNoSuchKey(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf(errFailedGetKeyFmt, key, err)
	}
	defer out.Body.Close()

	value, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf(errFailedReadBodyFmt, key, err)
	}

	return value, nil
}

func (s *S3Store) Set(ctx context.Context, key string, value []byte) error {
	_, err := s.svc.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.objectKey(key)),
		Body:        bytes.NewReader(value),
		ContentType: aws.String(jsonContentType),
	})
	if err != nil {
		return fmt.Errorf(errFailedSetKeyFmt, key, err)
	}

	return nil
}

func (s *S3Store) Delete(ctx context.Context, key string) error {
	_, err := s.svc.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.objectKey(key)),
	})
	if err != nil {
		return fmt.Errorf(errFailedDeleteKeyFmt, key, err)
	}

	return nil
}

func (s *S3Store) ListByPrefix(ctx context.Context, prefix string) ([]Entry, error) {
	keys := make([]string, 0)
	err := s.svc.ListObjectsV2PagesWithContext(ctx, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(s.objectKey(prefix)),
	}, func(page *s3.ListObjectsV2Output, _ bool) bool {
		for _, obj := range page.Contents {
			keys = append(keys, strings.TrimPrefix(aws.StringValue(obj.Key), s.keyPrefix))
		}
		return true
	})
	if err != nil {
		return nil, fmt.Errorf(errFailedListPrefixFmt, prefix, err)
	}

	entries := make([]Entry, 0, len(keys))
	for _, key := range keys {
		value, err := s.Get(ctx, key)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		entries = append(entries, Entry{Key: key, Value: value})
	}

	sortEntries(entries)
	return entries, nil
}

func (s *S3Store) Close() error {
	return nil
}

func isNoSuchKey(err error) bool {
	var aerr awserr.Error
	return errors.As(err, &aerr) && aerr.Code() == s3.ErrCodeNoSuchKey
}
