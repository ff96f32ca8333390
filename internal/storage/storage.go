package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/memblob"
	"gocloud.dev/gcerrors"
)

var (
	ErrNotFound = errors.New("photo not found")
	ErrExists   = errors.New("photo already exists")
)

// Store is the blob storage used for claim photos.
type Store interface {
	Put(ctx context.Context, key string, r io.Reader, contentType string) error
	Open(ctx context.Context, key string) (io.ReadCloser, string, error)
	Delete(ctx context.Context, key string) error
}

// Bucket is a Store backed by a gocloud bucket (file://, mem://, ...).
type Bucket struct {
	bucket       *blob.Bucket
	cacheControl string
}

// Open opens the bucket at url, e.g. "file:///var/lib/photo-hunt/photos" or "mem://".
func Open(ctx context.Context, url string) (*Bucket, error) {
	bucket, err := blob.OpenBucket(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("open bucket: %w", err)
	}
	return &Bucket{
		bucket:       bucket,
		cacheControl: "public, max-age=3600",
	}, nil
}

// Put writes a new object. Existing keys are never overwritten.
func (b *Bucket) Put(ctx context.Context, key string, r io.Reader, contentType string) error {
	exists, err := b.bucket.Exists(ctx, key)
	if err != nil {
		return err
	}
	if exists {
		return ErrExists
	}
	w, err := b.bucket.NewWriter(ctx, key, &blob.WriterOptions{
		ContentType:  contentType,
		CacheControl: b.cacheControl,
	})
	if err != nil {
		return err
	}
	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}

func (b *Bucket) Open(ctx context.Context, key string) (io.ReadCloser, string, error) {
	r, err := b.bucket.NewReader(ctx, key, nil)
	if err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil, "", ErrNotFound
		}
		return nil, "", err
	}
	return r, r.ContentType(), nil
}

func (b *Bucket) Delete(ctx context.Context, key string) error {
	if err := b.bucket.Delete(ctx, key); err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (b *Bucket) Close() error {
	return b.bucket.Close()
}
