// File: pkg/storage/aws/aws.go
package aws

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"pixdrop/internal/config"
	"pixdrop/internal/provider/registry"
	"pixdrop/pkg/common"
	"pixdrop/pkg/storage"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

func init() {
	registry.RegisterProvider("aws", registry.ProviderRegistration{
		ConfigCheck:  isConfigured,
		Initializer:  initialize,
		RequiredKeys: []string{"aws.region"},
	})
}

// Checks if the AWS configuration block is present and the region is set
func isConfigured(cfg *config.Config) bool {
	return cfg.AWS != nil && cfg.AWS.Region != ""
}

func initialize(ctx context.Context, cfg *config.Config, logger *slog.Logger) (storage.Bucket, error) {
	if !isConfigured(cfg) {
		return nil, fmt.Errorf("AWS configuration missing or incomplete")
	}
	return NewAWSStorage(ctx, cfg.Bucket, *cfg.AWS, cfg.PublicBaseURL, logger)
}

// AWSStorage is an S3 bucket. A custom endpoint turns on path-style addressing for S3-compatible services
type AWSStorage struct {
	client     *s3.Client
	bucket     string
	region     string
	endpoint   string
	publicBase string
	logger     *slog.Logger
}

var _ storage.Bucket = (*AWSStorage)(nil)

func NewAWSStorage(ctx context.Context, bucket string, awsCfg config.AWSConfig, publicBase string, logger *slog.Logger) (*AWSStorage, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(awsCfg.Region),
	}
	if awsCfg.AccessKey != "" && awsCfg.SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(awsCfg.AccessKey, awsCfg.SecretKey, ""),
		))
	}
	if awsCfg.Endpoint != "" {
		opts = append(opts, awsconfig.WithBaseEndpoint(awsCfg.Endpoint))
	}

	sdkCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	client := s3.NewFromConfig(sdkCfg, func(o *s3.Options) {
		o.UsePathStyle = awsCfg.Endpoint != ""
	})

	return &AWSStorage{
		client:     client,
		bucket:     bucket,
		region:     awsCfg.Region,
		endpoint:   strings.TrimRight(awsCfg.Endpoint, "/"),
		publicBase: publicBase,
		logger:     logger,
	}, nil
}

func (s *AWSStorage) ProviderName() common.Provider {
	return common.S3
}

func (s *AWSStorage) Name() string {
	return s.bucket
}

func (s *AWSStorage) Upload(ctx context.Context, key string, data []byte, opts storage.UploadOptions) error {
	s.logger.Debug("Starting S3 PutObject operation", "bucket", s.bucket, "key", key, "size", len(data))

	input := &s3.PutObjectInput{
		Bucket:        awssdk.String(s.bucket),
		Key:           awssdk.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: awssdk.Int64(int64(len(data))),
	}
	if opts.ContentType != "" {
		input.ContentType = awssdk.String(opts.ContentType)
	}
	if cc := opts.CacheControl(); cc != "" {
		input.CacheControl = awssdk.String(cc)
	}
	if !opts.Overwrite {
		// Conditional write: S3 rejects the PUT with 412 if the key exists
		input.IfNoneMatch = awssdk.String("*")
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		if isPreconditionFailure(err) {
			return fmt.Errorf("failed to upload %s: %w", key, storage.ErrObjectExists)
		}
		return fmt.Errorf("failed to upload %s: %w", key, err)
	}
	return nil
}

func (s *AWSStorage) List(ctx context.Context, prefix string, opts storage.ListOptions) ([]storage.Entry, error) {
	s.logger.Debug("Starting S3 ListObjectsV2 operation", "bucket", s.bucket, "prefix", prefix)

	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket:    awssdk.String(s.bucket),
		Prefix:    awssdk.String(prefix),
		Delimiter: awssdk.String("/"),
	})

	var entries []storage.Entry
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("error listing objects: %w", err)
		}
		for _, obj := range page.Contents {
			entries = append(entries, storage.Entry{
				Name:      strings.TrimPrefix(awssdk.ToString(obj.Key), prefix),
				CreatedAt: awssdk.ToTime(obj.LastModified),
				Metadata: storage.EntryMetadata{
					Size: awssdk.ToInt64(obj.Size),
				},
			})
		}
	}

	// S3 only returns keys in lexical order, so ordering and the page limit are applied here
	return storage.SortEntries(entries, opts), nil
}

func (s *AWSStorage) PublicURL(key string) string {
	switch {
	case s.publicBase != "":
		return storage.JoinURL(s.publicBase, key)
	case s.endpoint != "":
		return storage.JoinURL(s.endpoint+"/"+s.bucket, key)
	default:
		return storage.JoinURL(fmt.Sprintf("https://%s.s3.%s.amazonaws.com", s.bucket, s.region), key)
	}
}

func (s *AWSStorage) Remove(ctx context.Context, keys []string) error {
	if len(keys) == 0 {
		return nil
	}
	s.logger.Debug("Starting S3 DeleteObjects operation", "bucket", s.bucket, "keys", keys)

	identifiers := make([]types.ObjectIdentifier, 0, len(keys))
	for _, k := range keys {
		identifiers = append(identifiers, types.ObjectIdentifier{Key: awssdk.String(k)})
	}

	out, err := s.client.DeleteObjects(ctx, &s3.DeleteObjectsInput{
		Bucket: awssdk.String(s.bucket),
		Delete: &types.Delete{
			Objects: identifiers,
			Quiet:   awssdk.Bool(true),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to delete objects: %w", err)
	}

	// DeleteObjects reports per-key failures in the body of a successful response
	if len(out.Errors) > 0 {
		first := out.Errors[0]
		return fmt.Errorf("failed to delete %s: %s (%s)", awssdk.ToString(first.Key), awssdk.ToString(first.Message), awssdk.ToString(first.Code))
	}
	return nil
}

func (s *AWSStorage) Close() error {
	// The S3 client holds no resources that need releasing
	return nil
}

func isPreconditionFailure(err error) bool {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		code := apiErr.ErrorCode()
		return code == "PreconditionFailed" || code == "ConditionalRequestConflict"
	}
	return false
}
