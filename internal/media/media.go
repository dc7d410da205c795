// Package media 把商品圖片存到 S3 相容的物件儲存
package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"shop-admin/internal/config"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const (
	MaxUploadSize = 5 << 20
	listLimit     = 500
)

var (
	ErrNotImage = errors.New("file is not an image")
	ErrTooLarge = errors.New("file is too large")
	ErrNotFound = errors.New("object not found")
	ErrDisabled = errors.New("media storage is not configured")
)

// Object 已存的圖片與頁面使用的 URL path
type Object struct {
	Key          string
	URL          string
	Size         int64
	ContentType  string
	LastModified time.Time
}

// Storage 檔案瀏覽器需要的後端介面
type Storage interface {
	List(ctx context.Context) ([]Object, error)
	Upload(ctx context.Context, data []byte) (Object, error)
	Open(ctx context.Context, key string) (io.ReadCloser, Object, error)
}

// objectStore 是 MinioStorage 用到的 minio client 部分
type objectStore interface {
	BucketExists(ctx context.Context, bucket string) (bool, error)
	MakeBucket(ctx context.Context, bucket string, opts minio.MakeBucketOptions) error
	ListObjects(ctx context.Context, bucket string, opts minio.ListObjectsOptions) <-chan minio.ObjectInfo
	PutObject(ctx context.Context, bucket, key string, r io.Reader, size int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	Open(ctx context.Context, bucket, key string) (io.ReadCloser, minio.ObjectInfo, error)
}

type minioClient struct {
	*minio.Client
}

func (m minioClient) Open(ctx context.Context, bucket, key string) (io.ReadCloser, minio.ObjectInfo, error) {
	obj, err := m.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, minio.ObjectInfo{}, err
	}
	info, err := obj.Stat()
	if err != nil {
		obj.Close()
		return nil, minio.ObjectInfo{}, err
	}
	return obj, info, nil
}

var (
	newObjectStore = func(cfg config.MinioConfig) (objectStore, error) {
		c, err := minio.New(cfg.Endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
			Secure: cfg.UseSSL,
		})
		if err != nil {
			return nil, err
		}
		return minioClient{c}, nil
	}
	newKey = uuid.NewString
)

type MinioStorage struct {
	client    objectStore
	bucket    string
	publicURL string
}

// NewMinioStorage 連線並在 bucket 不存在時建立；物件 URL 為
// publicURL/key，publicURL 為空時為 /media/key
func NewMinioStorage(ctx context.Context, cfg config.MinioConfig) (*MinioStorage, error) {
	client, err := newObjectStore(cfg)
	if err != nil {
		return nil, fmt.Errorf("NewMinioStorage: %w", err)
	}
	if err := ensureBucket(ctx, client, cfg.Bucket); err != nil {
		return nil, fmt.Errorf("NewMinioStorage: %w", err)
	}
	base := cfg.PublicURL
	if base == "" {
		base = "/media"
	}
	return &MinioStorage{client: client, bucket: cfg.Bucket, publicURL: base}, nil
}

func ensureBucket(ctx context.Context, client objectStore, bucket string) error {
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return err
	}
	if !exists {
		return client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{})
	}
	return nil
}

func (s *MinioStorage) object(info minio.ObjectInfo) Object {
	return Object{
		Key:          info.Key,
		URL:          s.publicURL + "/" + info.Key,
		Size:         info.Size,
		ContentType:  info.ContentType,
		LastModified: info.LastModified,
	}
}

// List 回傳最多 listLimit 個物件，新的在前
func (s *MinioStorage) List(ctx context.Context) ([]Object, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var out []Object
	for info := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{Recursive: true}) {
		if info.Err != nil {
			return nil, fmt.Errorf("MinioStorage.List: %w", info.Err)
		}
		if strings.HasSuffix(info.Key, "/") {
			continue
		}
		out = append(out, s.object(info))
		if len(out) == listLimit {
			break
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].LastModified.After(out[j].LastModified) })
	return out, nil
}

// Upload 以新 key 存 data，只接受圖片
func (s *MinioStorage) Upload(ctx context.Context, data []byte) (Object, error) {
	contentType, ext, err := Sniff(data)
	if err != nil {
		return Object{}, err
	}
	key := newKey() + ext
	info, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return Object{}, fmt.Errorf("MinioStorage.Upload: %w", err)
	}
	return Object{
		Key:          info.Key,
		URL:          s.publicURL + "/" + info.Key,
		Size:         info.Size,
		ContentType:  contentType,
		LastModified: info.LastModified,
	}, nil
}

// Open 串流單一物件，呼叫端負責關閉
func (s *MinioStorage) Open(ctx context.Context, key string) (io.ReadCloser, Object, error) {
	rc, info, err := s.client.Open(ctx, s.bucket, key)
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, Object{}, ErrNotFound
		}
		return nil, Object{}, fmt.Errorf("MinioStorage.Open: %w", err)
	}
	return rc, s.object(info), nil
}

// Sniff 偵測 data 的 content type，非圖片一律拒絕
func Sniff(data []byte) (contentType, ext string, err error) {
	if len(data) > MaxUploadSize {
		return "", "", ErrTooLarge
	}
	m := mimetype.Detect(data)
	// svg 可夾帶 script，且由本站同源提供
	if !strings.HasPrefix(m.String(), "image/") || m.Is("image/svg+xml") {
		return "", "", ErrNotImage
	}
	return m.String(), m.Extension(), nil
}
