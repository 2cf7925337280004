package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"storefront-be/internal/logger"
	"storefront-be/internal/metrics"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// sniffLen matches the read limit mimetype uses for detection.
const sniffLen = 3072

// ObjectAPI is the subset of *s3.Client the store calls.
type ObjectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// File is one upload. Body must be seekable: it is rewound after sniffing and
// the S3 client needs to seek it to sign plain-HTTP requests.
type File struct {
	Name        string
	ContentType string
	Size        int64
	Body        io.ReadSeeker
}

type Store struct {
	api       ObjectAPI
	publicURL string
	metrics   *metrics.Registry
	newID     func() string
}

func NewStore(api ObjectAPI, publicURL string, reg *metrics.Registry) *Store {
	return &Store{
		api:       api,
		publicURL: strings.TrimRight(publicURL, "/"),
		metrics:   reg,
		newID:     uuid.NewString,
	}
}

// prepared is a validated file rewound to its first byte.
type prepared struct {
	body        io.ReadSeeker
	size        int64
	contentType string
	ext         string
}

func validate(file *File) (*prepared, error) {
	if file == nil || file.Body == nil {
		return nil, ErrFileRequired
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(file.Body, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, err
	}
	head = head[:n]
	if n == 0 {
		return nil, ErrFileRequired
	}

	mtype := mimetype.Detect(head)
	if !strings.HasPrefix(mtype.String(), "image/") {
		return nil, ErrNotImage
	}

	if _, err := file.Body.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("rewinding upload: %w", err)
	}

	// The extension follows the sniffed type; the client's filename is untrusted.
	return &prepared{
		body:        file.Body,
		size:        file.Size,
		contentType: mtype.String(),
		ext:         mtype.Extension(),
	}, nil
}

// NormalizeFolder trims slashes and collapses empty segments.
func NormalizeFolder(folder string) string {
	parts := strings.Split(folder, "/")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, "/")
}

func (s *Store) objectKey(folder, ext string) string {
	name := s.newID() + ext
	if folder = NormalizeFolder(folder); folder != "" {
		return folder + "/" + name
	}
	return name
}

func (s *Store) PublicURL(bucket, key string) string {
	return s.publicURL + "/" + bucket + "/" + key
}

// Upload validates file, stores it under a fresh key and returns its public URL.
// Validation failures never reach the object store.
func (s *Store) Upload(ctx context.Context, file *File, bucket, folder string) (string, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "storage"),
		zap.String("method", "Upload"),
		zap.String("bucket", bucket),
	)

	if bucket == "" {
		return "", ErrBucketRequired
	}

	p, err := validate(file)
	if err != nil {
		log.Info("upload rejected", zap.Error(err))
		return "", err
	}

	return s.put(ctx, log, p, bucket, folder)
}

func (s *Store) put(ctx context.Context, log *zap.Logger, p *prepared, bucket, folder string) (string, error) {
	key := s.objectKey(folder, p.ext)

	in := &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        p.body,
		ContentType: aws.String(p.contentType),
	}
	if p.size > 0 {
		in.ContentLength = aws.Int64(p.size)
	}

	if _, err := s.api.PutObject(ctx, in); err != nil {
		s.metrics.Inc(metrics.UploadFailures)
		log.Error("put object failed", zap.String("key", key), zap.Error(err))
		return "", ErrUploadFailed
	}

	s.metrics.Inc(metrics.UploadsTotal)
	log.Info("object uploaded", zap.String("key", key))
	return s.PublicURL(bucket, key), nil
}

// UploadMany validates every file before uploading any. If one upload fails
// the objects already stored by this call are removed again.
func (s *Store) UploadMany(ctx context.Context, files []*File, bucket, folder string) ([]string, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "storage"),
		zap.String("method", "UploadMany"),
		zap.String("bucket", bucket),
	)

	if bucket == "" {
		return nil, ErrBucketRequired
	}
	if len(files) == 0 {
		return nil, ErrFileRequired
	}

	ready := make([]*prepared, 0, len(files))
	for _, f := range files {
		p, err := validate(f)
		if err != nil {
			log.Info("upload rejected", zap.Error(err))
			return nil, err
		}
		ready = append(ready, p)
	}

	urls := make([]string, 0, len(ready))
	for _, p := range ready {
		u, err := s.put(ctx, log, p, bucket, folder)
		if err != nil {
			for _, done := range urls {
				s.Delete(ctx, done, bucket)
			}
			return nil, err
		}
		urls = append(urls, u)
	}

	return urls, nil
}

// Delete removes the object behind a public URL. It reports false when the
// URL does not belong to bucket or the store call fails.
func (s *Store) Delete(ctx context.Context, rawURL, bucket string) bool {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "storage"),
		zap.String("method", "Delete"),
		zap.String("url", rawURL),
	)

	key, ok := s.keyFor(rawURL, bucket)
	if !ok {
		log.Warn("url outside bucket")
		return false
	}

	_, err := s.api.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		log.Error("delete object failed", zap.Error(err))
		return false
	}

	s.metrics.Inc(metrics.DeletesTotal)
	return true
}

func (s *Store) keyFor(rawURL, bucket string) (string, bool) {
	if bucket == "" {
		return "", false
	}
	prefix := s.publicURL + "/" + bucket + "/"
	if !strings.HasPrefix(rawURL, prefix) {
		return "", false
	}
	key, err := url.PathUnescape(strings.TrimPrefix(rawURL, prefix))
	if err != nil || key == "" {
		return "", false
	}
	return key, true
}
