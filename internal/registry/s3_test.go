package registry

import (
	"context"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	qcerrors "github.com/quickcode-ui/quickcode/internal/errors"
)

type fakeS3 struct {
	objects map[string]string
	calls   []string
}

func (f *fakeS3) GetObject(ctx context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	key := aws.ToString(in.Bucket) + "/" + aws.ToString(in.Key)
	f.calls = append(f.calls, key)
	body, ok := f.objects[key]
	if !ok {
		return nil, fmt.Errorf("NoSuchKey: %s", key)
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(body))}, nil
}

func TestS3Fetcher(t *testing.T) {
	api := &fakeS3{objects: map[string]string{"mirror/components-map.json": jsonMap}}
	f := NewS3Fetcher(api)

	data, err := f.Fetch(context.Background(), "s3://mirror/components-map.json")
	require.NoError(t, err)
	assert.Equal(t, jsonMap, string(data))
	assert.Equal(t, []string{"mirror/components-map.json"}, api.calls)

	_, err = f.Fetch(context.Background(), "s3://mirror/missing.json")
	require.Error(t, err)
	assert.True(t, qcerrors.HasCode(err, "E103"))
}

func TestParseS3URL(t *testing.T) {
	bucket, key, err := parseS3URL("s3://mirror/ui/Button.tsx")
	require.NoError(t, err)
	assert.Equal(t, "mirror", bucket)
	assert.Equal(t, "ui/Button.tsx", key)

	for _, bad := range []string{"s3://mirror", "s3:///key", "https://mirror/key"} {
		_, _, err := parseS3URL(bad)
		assert.Error(t, err, bad)
	}
}

func TestNewAnonymousS3Client(t *testing.T) {
	assert.Equal(t, "us-east-1", NewAnonymousS3Client("").Options().Region)
	assert.Equal(t, "eu-west-1", NewAnonymousS3Client("eu-west-1").Options().Region)
}
