package storage

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/autoimport-crm/internal/config"
)

type fakePutter struct {
	in   *s3.PutObjectInput
	body []byte
	err  error
}

func (f *fakePutter) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.in = in
	f.body, _ = io.ReadAll(in.Body)
	if f.err != nil {
		return nil, f.err
	}
	return &s3.PutObjectOutput{}, nil
}

func TestAvatarStore_PutAvatar(t *testing.T) {
	putter := &fakePutter{}
	store := NewAvatarStore(putter, "crm-assets", "https://cdn.example.com/")

	url, err := store.PutAvatar(context.Background(), "u-1", []byte("webp-bytes"))
	require.NoError(t, err)

	key := aws.ToString(putter.in.Key)
	assert.True(t, strings.HasPrefix(key, "avatars/u-1/"))
	assert.True(t, strings.HasSuffix(key, ".webp"))
	assert.Equal(t, "crm-assets", aws.ToString(putter.in.Bucket))
	assert.Equal(t, "image/webp", aws.ToString(putter.in.ContentType))
	assert.Equal(t, []byte("webp-bytes"), putter.body)
	assert.Equal(t, "https://cdn.example.com/"+key, url)
}

func TestAvatarStore_PropagatesUploadError(t *testing.T) {
	store := NewAvatarStore(&fakePutter{err: errors.New("denied")}, "b", "https://cdn")

	_, err := store.PutAvatar(context.Background(), "u-1", []byte("x"))
	assert.ErrorContains(t, err, "denied")
}

func TestNewS3Client_CustomEndpoint(t *testing.T) {
	client := NewS3Client(&config.Config{
		S3Region:    "eu-central-1",
		S3Endpoint:  "http://localhost:9000",
		S3AccessKey: "minio",
		S3SecretKey: "minio123",
	})

	opts := client.Options()
	assert.Equal(t, "eu-central-1", opts.Region)
	assert.Equal(t, "http://localhost:9000", aws.ToString(opts.BaseEndpoint))
	assert.True(t, opts.UsePathStyle)
}
