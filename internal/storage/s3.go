package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// maxDeleteKeys is the DeleteObjects per-request key limit.
const maxDeleteKeys = 1000

// S3API is the subset of the S3 client used by S3Bucket.
type S3API interface {
	s3.ListObjectsV2APIClient
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	HeadObject(ctx context.Context, in *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	DeleteObjects(ctx context.Context, in *s3.DeleteObjectsInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectsOutput, error)
}

// S3Options configures an S3 bucket.
type S3Options struct {
	Bucket    string
	Region    string
	Endpoint  string // custom endpoint (MinIO, localstack); enables path-style addressing
	PublicURL string // base for public object URLs, e.g. a CDN; defaults to the bucket URL
}

// S3Bucket implements Bucket on an S3 bucket.
type S3Bucket struct {
	client  S3API
	name    string
	baseURL string
}

var _ Bucket = (*S3Bucket)(nil)

// NewS3Bucket loads the default AWS configuration and returns a bucket
// backed by a fresh S3 client.
func NewS3Bucket(ctx context.Context, opts S3Options) (*S3Bucket, error) {
	var loadOpts []func(*config.LoadOptions) error
	if opts.Region != "" {
		loadOpts = append(loadOpts, config.WithRegion(opts.Region))
	}

	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true
		}
	})

	base := opts.PublicURL
	if base == "" {
		switch {
		case opts.Endpoint != "":
			base = strings.TrimRight(opts.Endpoint, "/") + "/" + opts.Bucket
		default:
			base = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", opts.Bucket, cfg.Region)
		}
	}

	return NewS3BucketWithClient(client, opts.Bucket, base), nil
}

// NewS3BucketWithClient returns a bucket using an existing client.
func NewS3BucketWithClient(client S3API, name, baseURL string) *S3Bucket {
	return &S3Bucket{client: client, name: name, baseURL: strings.TrimRight(baseURL, "/")}
}

// Name returns the bucket name.
func (b *S3Bucket) Name() string { return b.name }

// List returns every key in the bucket.
func (b *S3Bucket) List(ctx context.Context) ([]string, error) {
	keys := []string{}
	p := s3.NewListObjectsV2Paginator(b.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(b.name),
	})
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("list objects: %w", err)
		}
		for _, obj := range page.Contents {
			keys = append(keys, aws.ToString(obj.Key))
		}
	}
	return keys, nil
}

// Upload puts data under key.
func (b *S3Bucket) Upload(ctx context.Context, key string, data []byte, contentType string, overwrite bool) (string, error) {
	if key == "" {
		return "", fmt.Errorf("upload object: empty key")
	}

	if !overwrite {
		_, err := b.client.HeadObject(ctx, &s3.HeadObjectInput{
			Bucket: aws.String(b.name),
			Key:    aws.String(key),
		})
		if err == nil {
			return "", fmt.Errorf("upload %s: %w", key, ErrExists)
		}
		var nf *s3types.NotFound
		if !errors.As(err, &nf) {
			return "", fmt.Errorf("head %s: %w", key, err)
		}
	}

	_, err := b.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(b.name),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}
	return key, nil
}

// Remove deletes keys. S3 caps a single DeleteObjects request at 1000 keys,
// so larger sets are split.
func (b *S3Bucket) Remove(ctx context.Context, keys []string) error {
	for start := 0; start < len(keys); start += maxDeleteKeys {
		end := min(start+maxDeleteKeys, len(keys))

		ids := make([]s3types.ObjectIdentifier, 0, end-start)
		for _, k := range keys[start:end] {
			ids = append(ids, s3types.ObjectIdentifier{Key: aws.String(k)})
		}

		out, err := b.client.DeleteObjects(ctx, &s3.DeleteObjectsInput{
			Bucket: aws.String(b.name),
			Delete: &s3types.Delete{Objects: ids, Quiet: aws.Bool(true)},
		})
		if err != nil {
			return fmt.Errorf("remove objects: %w", err)
		}
		if len(out.Errors) > 0 {
			e := out.Errors[0]
			return fmt.Errorf("remove %s: %s", aws.ToString(e.Key), aws.ToString(e.Message))
		}
	}
	return nil
}

// PublicURL returns baseURL/<path>.
func (b *S3Bucket) PublicURL(path string) string {
	return b.baseURL + "/" + escapePath(path)
}
