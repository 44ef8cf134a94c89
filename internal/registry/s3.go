package registry

import (
	"context"
	"io"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/quickcode-ui/quickcode/internal/errors"
)

// S3API is the subset of the S3 client used by S3Fetcher.
type S3API interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// NewAnonymousS3Client returns an S3 client for public buckets. It signs no
// requests, so mirrors need public read access.
func NewAnonymousS3Client(region string) *s3.Client {
	if region == "" {
		region = "us-east-1"
	}
	return s3.New(s3.Options{
		Region:      region,
		Credentials: aws.AnonymousCredentials{},
	})
}

// S3Fetcher reads s3://bucket/key URLs.
type S3Fetcher struct {
	client S3API
}

// NewS3Fetcher creates an S3Fetcher.
func NewS3Fetcher(client S3API) *S3Fetcher {
	return &S3Fetcher{client: client}
}

// Fetch downloads the object named by rawURL.
func (f *S3Fetcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	bucket, key, err := parseS3URL(rawURL)
	if err != nil {
		return nil, err
	}

	out, err := f.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, errors.New("E103").
			WithDetailf("s3 get %s/%s failed", bucket, key).
			Wrap(err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, errors.New("E103").Wrap(err)
	}
	return data, nil
}

func parseS3URL(rawURL string) (bucket, key string, err error) {
	u, perr := url.Parse(rawURL)
	if perr != nil || u.Scheme != "s3" || u.Host == "" {
		return "", "", errors.New("E103").WithDetailf("invalid s3 URL %q", rawURL)
	}
	key = strings.TrimPrefix(u.Path, "/")
	if key == "" {
		return "", "", errors.New("E103").WithDetailf("s3 URL %q has no key", rawURL)
	}
	return u.Host, key, nil
}
