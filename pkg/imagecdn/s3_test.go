package imagecdn_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumishot/lumishot/pkg/imagecdn"
)

type mockS3 struct {
	lastInput *s3.PutObjectInput
	err       error
}

func (m *mockS3) PutObject(_ context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	m.lastInput = params
	if m.err != nil {
		return nil, m.err
	}
	return &s3.PutObjectOutput{}, nil
}

type apiError struct{ code string }

func (e *apiError) Error() string                 { return e.code }
func (e *apiError) ErrorCode() string             { return e.code }
func (e *apiError) ErrorMessage() string          { return e.code }
func (e *apiError) ErrorFault() smithy.ErrorFault { return smithy.FaultClient }

func TestS3Uploader_Upload(t *testing.T) {
	t.Parallel()

	t.Run("stores object and returns cdn url", func(t *testing.T) {
		t.Parallel()

		mock := &mockS3{}
		uploader, err := imagecdn.NewS3Uploader(context.Background(), imagecdn.Config{
			Bucket:    "lumishot-images",
			Region:    "us-east-1",
			BaseURL:   "https://cdn.lumishot.app",
			KeyPrefix: "shoots",
		}, imagecdn.WithClient(mock))
		require.NoError(t, err)

		url, err := uploader.Upload(context.Background(), "user-1/portrait.png", []byte("img"), "image/png")
		require.NoError(t, err)
		assert.Equal(t, "https://cdn.lumishot.app/shoots/user-1/portrait.png", url)

		require.NotNil(t, mock.lastInput)
		assert.Equal(t, "lumishot-images", *mock.lastInput.Bucket)
		assert.Equal(t, "shoots/user-1/portrait.png", *mock.lastInput.Key)
		assert.Equal(t, "image/png", *mock.lastInput.ContentType)
	})

	t.Run("derives url from custom endpoint", func(t *testing.T) {
		t.Parallel()

		uploader, err := imagecdn.NewS3Uploader(context.Background(), imagecdn.Config{
			Bucket:    "images",
			Region:    "auto",
			Endpoint:  "https://minio.local:9000/",
			KeyPrefix: "",
		}, imagecdn.WithClient(&mockS3{}))
		require.NoError(t, err)

		url, err := uploader.Upload(context.Background(), "a/b.webp", []byte("img"), "image/webp")
		require.NoError(t, err)
		assert.Equal(t, "https://minio.local:9000/images/a/b.webp", url)
	})

	t.Run("classifies access denied", func(t *testing.T) {
		t.Parallel()

		mock := &mockS3{err: &apiError{code: "AccessDenied"}}
		uploader, err := imagecdn.NewS3Uploader(context.Background(), imagecdn.Config{
			Bucket: "images",
			Region: "us-east-1",
		}, imagecdn.WithClient(mock))
		require.NoError(t, err)

		_, err = uploader.Upload(context.Background(), "k", []byte("img"), "image/png")
		assert.ErrorIs(t, err, imagecdn.ErrAccessDenied)
	})

	t.Run("classifies missing bucket", func(t *testing.T) {
		t.Parallel()

		mock := &mockS3{err: &apiError{code: "NoSuchBucket"}}
		uploader, err := imagecdn.NewS3Uploader(context.Background(), imagecdn.Config{
			Bucket: "images",
			Region: "us-east-1",
		}, imagecdn.WithClient(mock))
		require.NoError(t, err)

		_, err = uploader.Upload(context.Background(), "k", []byte("img"), "image/png")
		assert.ErrorIs(t, err, imagecdn.ErrBucketNotFound)
	})

	t.Run("wraps unknown failures", func(t *testing.T) {
		t.Parallel()

		mock := &mockS3{err: errors.New("connection reset")}
		uploader, err := imagecdn.NewS3Uploader(context.Background(), imagecdn.Config{
			Bucket: "images",
			Region: "us-east-1",
		}, imagecdn.WithClient(mock))
		require.NoError(t, err)

		_, err = uploader.Upload(context.Background(), "k", []byte("img"), "image/png")
		assert.ErrorIs(t, err, imagecdn.ErrUploadFailed)
	})

	t.Run("rejects missing bucket config", func(t *testing.T) {
		t.Parallel()

		_, err := imagecdn.NewS3Uploader(context.Background(), imagecdn.Config{Region: "us-east-1"})
		assert.ErrorIs(t, err, imagecdn.ErrInvalidConfig)
	})
}
