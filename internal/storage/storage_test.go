package storage

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
)

func openMem(t *testing.T) *Bucket {
	t.Helper()
	bucket, err := Open(context.Background(), "mem://")
	if err != nil {
		t.Fatalf("open bucket: %v", err)
	}
	t.Cleanup(func() {
		_ = bucket.Close()
	})
	return bucket
}

func TestPutOpenDelete(t *testing.T) {
	ctx := context.Background()
	bucket := openMem(t)
	key := "NEON1/Red/3/9.png"

	if err := bucket.Put(ctx, key, strings.NewReader("png-bytes"), "image/png"); err != nil {
		t.Fatalf("put: %v", err)
	}
	r, contentType, err := bucket.Open(ctx, key)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	data, err := io.ReadAll(r)
	_ = r.Close()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "png-bytes" {
		t.Fatalf("unexpected content %q", data)
	}
	if contentType != "image/png" {
		t.Fatalf("expected image/png, got %q", contentType)
	}

	if err := bucket.Delete(ctx, key); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, _, err := bucket.Open(ctx, key); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
	if err := bucket.Delete(ctx, key); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
}

func TestPutDoesNotOverwrite(t *testing.T) {
	ctx := context.Background()
	bucket := openMem(t)
	if err := bucket.Put(ctx, "a/b.jpg", strings.NewReader("one"), "image/jpeg"); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := bucket.Put(ctx, "a/b.jpg", strings.NewReader("two"), "image/jpeg"); !errors.Is(err, ErrExists) {
		t.Fatalf("expected ErrExists, got %v", err)
	}
}
