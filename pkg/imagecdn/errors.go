package imagecdn

import "errors"

var (
	ErrInvalidConfig      = errors.New("bucket and region are required")
	ErrFailedToLoadConfig = errors.New("failed to load aws configuration")
	ErrUploadFailed       = errors.New("image upload failed")
	ErrAccessDenied       = errors.New("cdn storage access denied")
	ErrBucketNotFound     = errors.New("cdn storage bucket does not exist")
)
