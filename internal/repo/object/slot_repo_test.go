package object

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/geocoder89/neuralpulse/internal/repo/slot"
	"github.com/geocoder89/neuralpulse/internal/storage"
)

type fakeProvider struct {
	getFn func(ctx context.Context, bucket, key string) (*storage.FileObject, error)
	putFn func(ctx context.Context, bucket, key string, body io.ReadSeeker, contentType, cacheControl string) error
}

func (f *fakeProvider) Get(ctx context.Context, bucket, key string) (*storage.FileObject, error) {
	return f.getFn(ctx, bucket, key)
}

func (f *fakeProvider) Put(ctx context.Context, bucket, key string, body io.ReadSeeker, contentType, cacheControl string) error {
	return f.putFn(ctx, bucket, key, body, contentType, cacheControl)
}

func (f *fakeProvider) Delete(ctx context.Context, bucket, key string) error { return nil }

func (f *fakeProvider) Ping(ctx context.Context, bucket string) error { return nil }

func TestSlotRepo_LocalProviderRoundTrip(t *testing.T) {
	root := t.TempDir()
	repo := NewSlotRepo(storage.NewLocalProvider(root), "slots")
	ctx := context.Background()

	if _, err := repo.Get(ctx, slot.DefaultKey); !errors.Is(err, slot.ErrNotFound) {
		t.Fatalf("expected slot.ErrNotFound, got %v", err)
	}

	if err := repo.Put(ctx, slot.DefaultKey, []byte(`{"version":0}`)); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, err := repo.Get(ctx, slot.DefaultKey)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got) != `{"version":0}` {
		t.Fatalf("got %s", got)
	}

	if _, err := os.Stat(filepath.Join(root, "slots", slot.DefaultKey+".json")); err != nil {
		t.Fatalf("expected slot file on disk: %v", err)
	}

	if err := repo.Ping(ctx); err != nil {
		t.Fatalf("ping: %v", err)
	}
}

func TestSlotRepo_PutSendsJSON(t *testing.T) {
	var gotKey, gotType string
	var gotBody []byte

	repo := NewSlotRepo(&fakeProvider{
		putFn: func(ctx context.Context, bucket, key string, body io.ReadSeeker, contentType, cacheControl string) error {
			gotKey, gotType = key, contentType
			gotBody, _ = io.ReadAll(body)
			return nil
		},
	}, "bucket")

	if err := repo.Put(context.Background(), "k", []byte("{}")); err != nil {
		t.Fatalf("put: %v", err)
	}
	if gotKey != "k.json" || gotType != "application/json" || string(gotBody) != "{}" {
		t.Fatalf("unexpected put: key=%q type=%q body=%q", gotKey, gotType, gotBody)
	}
}

func TestSlotRepo_GetWrapsProviderErrors(t *testing.T) {
	boom := errors.New("boom")
	repo := NewSlotRepo(&fakeProvider{
		getFn: func(ctx context.Context, bucket, key string) (*storage.FileObject, error) {
			return nil, boom
		},
	}, "bucket")

	_, err := repo.Get(context.Background(), "k")
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped provider error, got %v", err)
	}
	if errors.Is(err, slot.ErrNotFound) {
		t.Fatalf("backend error must not look like an empty slot")
	}
}

func TestSlotRepo_S3MissingObjectIsErrNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/xml")
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `<?xml version="1.0" encoding="UTF-8"?><Error><Code>NoSuchKey</Code><Message>missing</Message></Error>`)
	}))
	defer srv.Close()

	provider, err := storage.NewS3Provider(storage.S3Config{Endpoint: srv.URL, Region: "us-east-1", KeyID: "k", Secret: "s"})
	if err != nil {
		t.Fatalf("provider: %v", err)
	}

	repo := NewSlotRepo(provider, "bucket")
	if _, err := repo.Get(context.Background(), slot.DefaultKey); !errors.Is(err, slot.ErrNotFound) {
		t.Fatalf("expected slot.ErrNotFound, got %v", err)
	}
}
