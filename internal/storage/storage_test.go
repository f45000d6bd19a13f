package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"dognft/internal/config"
)

type fakeBucketClient struct {
	mock.Mock
}

func (f *fakeBucketClient) BucketExists(ctx context.Context, bucket string) (bool, error) {
	args := f.Called(ctx, bucket)
	return args.Bool(0), args.Error(1)
}

func (f *fakeBucketClient) MakeBucket(ctx context.Context, bucket string, opts minio.MakeBucketOptions) error {
	args := f.Called(ctx, bucket, opts)
	return args.Error(0)
}

func TestStaticLocator(t *testing.T) {
	loc := NewStatic("https://example.com/")

	assert.Equal(t, "https://example.com/nft/nft_1.png", loc.ImageURL("nft_1"))
	assert.Equal(t, loc.ImageURL("nft_1"), loc.ImageURL("nft_1"))
	assert.NoError(t, loc.Ping(context.Background()))
}

func TestNewMinIOLocator(t *testing.T) {
	ctx := context.Background()

	t.Run("existing bucket", func(t *testing.T) {
		cli := new(fakeBucketClient)
		cli.On("BucketExists", ctx, "nfts").Return(true, nil)

		loc, err := newMinIOLocator(ctx, cli, "nfts", "http://localhost:9000/")

		require.NoError(t, err)
		assert.Equal(t, "http://localhost:9000/nfts/nft/nft_abc.png", loc.ImageURL("nft_abc"))
		cli.AssertExpectations(t)
	})

	t.Run("creates missing bucket", func(t *testing.T) {
		cli := new(fakeBucketClient)
		cli.On("BucketExists", ctx, "nfts").Return(false, nil)
		cli.On("MakeBucket", ctx, "nfts", minio.MakeBucketOptions{}).Return(nil)

		_, err := newMinIOLocator(ctx, cli, "nfts", "http://localhost:9000")

		require.NoError(t, err)
		cli.AssertExpectations(t)
	})

	t.Run("create bucket failure", func(t *testing.T) {
		cli := new(fakeBucketClient)
		cli.On("BucketExists", ctx, "nfts").Return(false, nil)
		cli.On("MakeBucket", ctx, "nfts", minio.MakeBucketOptions{}).Return(errors.New("denied"))

		_, err := newMinIOLocator(ctx, cli, "nfts", "http://localhost:9000")

		assert.ErrorContains(t, err, "create bucket: denied")
	})

	t.Run("existence check failure", func(t *testing.T) {
		cli := new(fakeBucketClient)
		cli.On("BucketExists", ctx, "nfts").Return(false, errors.New("unreachable"))

		_, err := newMinIOLocator(ctx, cli, "nfts", "http://localhost:9000")

		assert.ErrorContains(t, err, "check bucket existence")
	})
}

func TestMinIOLocator_Ping(t *testing.T) {
	ctx := context.Background()
	cli := new(fakeBucketClient)
	loc := &minioLocator{client: cli, bucket: "nfts", endpoint: "http://localhost:9000"}

	cli.On("BucketExists", ctx, "nfts").Return(true, nil).Once()
	assert.NoError(t, loc.Ping(ctx))

	cli.On("BucketExists", ctx, "nfts").Return(false, nil).Once()
	assert.ErrorContains(t, loc.Ping(ctx), "bucket nfts not found")

	cli.On("BucketExists", ctx, "nfts").Return(false, errors.New("timeout")).Once()
	assert.Error(t, loc.Ping(ctx))
}

func TestNewMinIO_Validation(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.MinIOConfig
		want string
	}{
		{name: "missing endpoint", cfg: config.MinIOConfig{}, want: "endpoint is required"},
		{name: "missing credentials", cfg: config.MinIOConfig{Endpoint: "localhost:9000"}, want: "credentials are required"},
		{name: "missing bucket", cfg: config.MinIOConfig{Endpoint: "localhost:9000", AccessKey: "a", SecretKey: "b"}, want: "bucket is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, err := NewMinIO(tt.cfg)
			assert.ErrorContains(t, err, tt.want)
			assert.Nil(t, loc)
		})
	}
}
