package media

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"shop-admin/internal/config"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00\x1f\x15\xc4\x89")

type fakeStore struct {
	exists    bool
	existsErr error
	made      []string
	objects   []minio.ObjectInfo
	put       map[string][]byte
	putType   string
	putErr    error
	openErr   error
}

func (f *fakeStore) BucketExists(context.Context, string) (bool, error) { return f.exists, f.existsErr }

func (f *fakeStore) MakeBucket(_ context.Context, bucket string, _ minio.MakeBucketOptions) error {
	f.made = append(f.made, bucket)
	return nil
}

func (f *fakeStore) ListObjects(ctx context.Context, _ string, _ minio.ListObjectsOptions) <-chan minio.ObjectInfo {
	ch := make(chan minio.ObjectInfo)
	go func() {
		defer close(ch)
		for _, o := range f.objects {
			select {
			case ch <- o:
			case <-ctx.Done():
				return
			}
		}
	}()
	return ch
}

func (f *fakeStore) PutObject(_ context.Context, _ string, key string, r io.Reader, size int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	if f.putErr != nil {
		return minio.UploadInfo{}, f.putErr
	}
	data, _ := io.ReadAll(r)
	if f.put == nil {
		f.put = map[string][]byte{}
	}
	f.put[key] = data
	f.putType = opts.ContentType
	return minio.UploadInfo{Key: key, Size: size}, nil
}

func (f *fakeStore) Open(_ context.Context, _ string, key string) (io.ReadCloser, minio.ObjectInfo, error) {
	if f.openErr != nil {
		return nil, minio.ObjectInfo{}, f.openErr
	}
	data, ok := f.put[key]
	if !ok {
		return nil, minio.ObjectInfo{}, minio.ErrorResponse{Code: "NoSuchKey"}
	}
	return io.NopCloser(bytes.NewReader(data)), minio.ObjectInfo{Key: key, Size: int64(len(data)), ContentType: f.putType}, nil
}

func newTestStorage(t *testing.T, f *fakeStore, cfg config.MinioConfig) *MinioStorage {
	t.Helper()
	orig := newObjectStore
	newObjectStore = func(config.MinioConfig) (objectStore, error) { return f, nil }
	t.Cleanup(func() { newObjectStore = orig })
	s, err := NewMinioStorage(context.Background(), cfg)
	require.NoError(t, err)
	return s
}

func TestNewMinioStorage(t *testing.T) {
	f := &fakeStore{}
	s := newTestStorage(t, f, config.MinioConfig{Bucket: "shop"})
	require.Equal(t, []string{"shop"}, f.made)
	require.Equal(t, "/media", s.publicURL)

	f = &fakeStore{exists: true}
	s = newTestStorage(t, f, config.MinioConfig{Bucket: "shop", PublicURL: "http://cdn"})
	require.Empty(t, f.made)
	require.Equal(t, "http://cdn", s.publicURL)

	orig := newObjectStore
	t.Cleanup(func() { newObjectStore = orig })
	newObjectStore = func(config.MinioConfig) (objectStore, error) { return &fakeStore{existsErr: errors.New("dial")}, nil }
	_, err := NewMinioStorage(context.Background(), config.MinioConfig{Bucket: "shop"})
	require.Error(t, err)

	newObjectStore = func(config.MinioConfig) (objectStore, error) { return nil, errors.New("bad endpoint") }
	_, err = NewMinioStorage(context.Background(), config.MinioConfig{})
	require.Error(t, err)
}

func TestList(t *testing.T) {
	old := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	f := &fakeStore{exists: true, objects: []minio.ObjectInfo{
		{Key: "a.png", LastModified: old},
		{Key: "dir/"},
		{Key: "b.jpg", LastModified: old.Add(time.Hour)},
	}}
	s := newTestStorage(t, f, config.MinioConfig{Bucket: "shop"})

	objs, err := s.List(context.Background())
	require.NoError(t, err)
	require.Len(t, objs, 2)
	require.Equal(t, "b.jpg", objs[0].Key)
	require.Equal(t, "/media/a.png", objs[1].URL)

	f.objects = []minio.ObjectInfo{{Err: errors.New("denied")}}
	_, err = s.List(context.Background())
	require.Error(t, err)
}

func TestUpload(t *testing.T) {
	f := &fakeStore{exists: true}
	s := newTestStorage(t, f, config.MinioConfig{Bucket: "shop"})
	origKey := newKey
	newKey = func() string { return "0b1c" }
	t.Cleanup(func() { newKey = origKey })

	obj, err := s.Upload(context.Background(), pngHeader)
	require.NoError(t, err)
	require.Equal(t, "0b1c.png", obj.Key)
	require.Equal(t, "/media/0b1c.png", obj.URL)
	require.Equal(t, "image/png", f.putType)
	require.Equal(t, pngHeader, f.put["0b1c.png"])

	_, err = s.Upload(context.Background(), []byte("just text"))
	require.ErrorIs(t, err, ErrNotImage)

	_, err = s.Upload(context.Background(), []byte(`<svg xmlns="http://www.w3.org/2000/svg"></svg>`))
	require.ErrorIs(t, err, ErrNotImage)

	f.putErr = errors.New("quota")
	_, err = s.Upload(context.Background(), pngHeader)
	require.Error(t, err)
}

func TestOpen(t *testing.T) {
	f := &fakeStore{exists: true, put: map[string][]byte{"x.png": pngHeader}, putType: "image/png"}
	s := newTestStorage(t, f, config.MinioConfig{Bucket: "shop"})

	rc, obj, err := s.Open(context.Background(), "x.png")
	require.NoError(t, err)
	defer rc.Close()
	require.Equal(t, "image/png", obj.ContentType)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.Equal(t, pngHeader, data)

	_, _, err = s.Open(context.Background(), "missing.png")
	require.ErrorIs(t, err, ErrNotFound)

	f.openErr = errors.New("timeout")
	_, _, err = s.Open(context.Background(), "x.png")
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrNotFound)
}

func TestSniff(t *testing.T) {
	ct, ext, err := Sniff([]byte("GIF89a\x01\x00\x01\x00"))
	require.NoError(t, err)
	require.Equal(t, "image/gif", ct)
	require.Equal(t, ".gif", ext)

	_, _, err = Sniff(make([]byte, MaxUploadSize+1))
	require.ErrorIs(t, err, ErrTooLarge)
}

func TestDefaultKeyIsUUID(t *testing.T) {
	_, err := uuid.Parse(newKey())
	require.NoError(t, err)
}
