package cache

import (
	"bytes"
	"context"
	stderrors "errors"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/jmgilman/go/errors"
	"github.com/sirupsen/logrus"
	"github.com/stahnma/gh-launch/internal/github"
)

// S3API is the subset of the S3 client used by S3Store.
type S3API interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	HeadObject(ctx context.Context, in *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
}

// S3Store keeps the snapshot as a single S3 object. PutObject replaces the
// object atomically, so readers never observe a partial snapshot.
type S3Store struct {
	client S3API
	bucket string
	key    string
	log    logrus.FieldLogger
}

// NewS3Store returns a store for s3://bucket/key using client.
func NewS3Store(client S3API, bucket, key string, log logrus.FieldLogger) *S3Store {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &S3Store{
		client: client,
		bucket: bucket,
		key:    key,
		log:    log.WithField("cache", "s3://"+bucket+"/"+key),
	}
}

// NewS3StoreFromEnvironment loads the default AWS configuration for region
// and returns a store for s3://bucket/key.
func NewS3StoreFromEnvironment(ctx context.Context, region, bucket, key string, log logrus.FieldLogger) (*S3Store, error) {
	if bucket == "" || key == "" {
		return nil, errors.New(errors.CodeInvalidConfig, "S3 cache requires a bucket and an object key")
	}
	var opts []func(*awsconfig.LoadOptions) error
	if region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInvalidConfig, "failed to load AWS config")
	}
	return NewS3Store(s3.NewFromConfig(cfg), bucket, key, log), nil
}

// Load downloads and decodes the snapshot object.
func (s *S3Store) Load(ctx context.Context) ([]github.Repo, bool, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key),
	})
	if err != nil {
		if isMissing(err) {
			return nil, false, nil
		}
		return nil, false, errors.Wrap(err, CodeRead, "cannot download repository cache")
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, false, errors.Wrap(err, CodeRead, "cannot read repository cache")
	}
	repos, err := decode(data)
	if err != nil {
		s.log.WithError(err).Error("Repository cache is corrupt")
		return nil, false, err
	}
	return repos, true, nil
}

// Exists reports whether the snapshot object is present.
func (s *S3Store) Exists(ctx context.Context) (bool, error) {
	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key),
	})
	if err == nil {
		return true, nil
	}
	if isMissing(err) {
		return false, nil
	}
	return false, errors.Wrap(err, CodeRead, "cannot stat repository cache")
}

// Replace uploads repos as the new snapshot object.
func (s *S3Store) Replace(ctx context.Context, repos []github.Repo) error {
	data, err := encode(repos)
	if err != nil {
		return errors.Wrap(err, CodeWrite, "cannot encode repository cache")
	}
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return errors.Wrap(err, CodeWrite, "failed to upload repository cache")
	}
	s.log.WithField("count", len(repos)).Info("Repository cache replaced")
	return nil
}

func isMissing(err error) bool {
	var noKey *types.NoSuchKey
	var notFound *types.NotFound
	if stderrors.As(err, &noKey) || stderrors.As(err, &notFound) {
		return true
	}
	var apiErr smithy.APIError
	if stderrors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound":
			return true
		}
	}
	return false
}
