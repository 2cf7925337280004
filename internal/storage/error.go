package storage

import "errors"

var (
	// -- Validation & Input --
	ErrFileRequired   = errors.New("File is required")
	ErrNotImage       = errors.New("File must be an image")
	ErrBucketRequired = errors.New("bucket is required")

	// -- External Service --
	ErrUploadFailed = errors.New("failed to upload file")
)
