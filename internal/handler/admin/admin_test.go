package admin

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"shop-admin/internal/api"
	"shop-admin/internal/database"
	"shop-admin/internal/handler/handlertest"
	"shop-admin/internal/media"
	"shop-admin/internal/middleware"
	"shop-admin/internal/model"
	"shop-admin/internal/store"
	"shop-admin/internal/view"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

// 1x1 png
var png = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00\x1f\x15\xc4\x89")

type fakeStorage struct {
	objects  []media.Object
	listErr  error
	uploaded []byte
	openErr  error
	body     string
}

func (f *fakeStorage) List(context.Context) ([]media.Object, error) {
	return f.objects, f.listErr
}

func (f *fakeStorage) Upload(_ context.Context, data []byte) (media.Object, error) {
	if _, _, err := media.Sniff(data); err != nil {
		return media.Object{}, err
	}
	f.uploaded = data
	return media.Object{Key: "k.png", URL: "/media/k.png", Size: int64(len(data))}, nil
}

func (f *fakeStorage) Open(_ context.Context, key string) (io.ReadCloser, media.Object, error) {
	if f.openErr != nil {
		return nil, media.Object{}, f.openErr
	}
	return io.NopCloser(strings.NewReader(f.body)), media.Object{Key: key, ContentType: "image/png", Size: int64(len(f.body))}, nil
}

func upload(t *testing.T, e *echo.Echo, target string, name string, data []byte) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	if name != "" {
		part, err := w.CreateFormFile(name, "a.png")
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestDashboardHandler(t *testing.T) {
	t.Cleanup(func() { countAll = store.CountAll })
	e, r := handlertest.Echo()

	countAll = func(context.Context, database.DB) (store.Counts, error) {
		return store.Counts{Categories: 3, Trashed: 1, Products: 8}, nil
	}
	c, rec := handlertest.Get(e, "/admin")
	require.NoError(t, DashboardHandler(&database.FakeDB{})(c))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "admin/index", r.Name)
	require.Equal(t, view.Dashboard{Categories: 3, Products: 8, Trashed: 1}, r.Page.Data)

	countAll = func(context.Context, database.DB) (store.Counts, error) {
		return store.Counts{}, errors.New("down")
	}
	c, rec = handlertest.Get(e, "/admin")
	c.Set(middleware.ContextAdminKey, &model.User{ID: 1, Name: "Quản trị"})
	require.NoError(t, DashboardHandler(&database.FakeDB{})(c))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, view.Dashboard{Admin: "Quản trị"}, r.Page.Data)
}

func TestFileHandler(t *testing.T) {
	e, r := handlertest.Echo()
	st := &fakeStorage{objects: []media.Object{
		{Key: "b.png", URL: "/media/b.png", LastModified: time.Now()},
		{Key: "a.jpg", URL: "/media/a.jpg"},
	}}

	c, _ := handlertest.Get(e, "/admin/file?field_id=images_list")
	require.NoError(t, FileHandler(st)(c))
	require.Equal(t, "admin/file", r.Name)
	picker := r.Page.Data.(view.FilePicker)
	require.True(t, picker.Enabled)
	require.True(t, picker.Multiple)
	require.Equal(t, "images_list", picker.FieldID)
	require.Equal(t, []view.FileItem{{Name: "b.png", URL: "/media/b.png"}, {Name: "a.jpg", URL: "/media/a.jpg"}}, picker.Files)

	c, _ = handlertest.Get(e, "/admin/file?field_id=<script>")
	require.NoError(t, FileHandler(st)(c))
	picker = r.Page.Data.(view.FilePicker)
	require.Equal(t, "image", picker.FieldID)
	require.False(t, picker.Multiple)

	st.listErr = errors.New("minio down")
	st.objects = nil
	c, rec := handlertest.Get(e, "/admin/file")
	require.NoError(t, FileHandler(st)(c))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Empty(t, r.Page.Data.(view.FilePicker).Files)

	c, _ = handlertest.Get(e, "/admin/file")
	require.NoError(t, FileHandler(nil)(c))
	require.False(t, r.Page.Data.(view.FilePicker).Enabled)
}

func TestUploadHandler(t *testing.T) {
	e, _ := handlertest.Echo()

	t.Run("ok", func(t *testing.T) {
		st := &fakeStorage{}
		c, rec := upload(t, e, "/admin/file?field_id=images_list", "file", png)
		handlertest.Serve(t, UploadHandler(st), c)
		f := handlertest.Redirected(t, rec, "/admin/file?field_id=images_list")
		require.Equal(t, api.MsgUploaded, f.Yes)
		require.Equal(t, png, st.uploaded)
	})

	t.Run("not an image", func(t *testing.T) {
		st := &fakeStorage{}
		c, rec := upload(t, e, "/admin/file", "file", []byte("<?php echo 1; ?>"))
		handlertest.Serve(t, UploadHandler(st), c)
		require.Equal(t, api.MsgNotImage, handlertest.Redirected(t, rec, "/admin/file?field_id=image").No)
		require.Nil(t, st.uploaded)
	})

	t.Run("too large", func(t *testing.T) {
		big := append(append([]byte{}, png...), make([]byte, media.MaxUploadSize)...)
		c, rec := upload(t, e, "/admin/file", "file", big)
		handlertest.Serve(t, UploadHandler(&fakeStorage{}), c)
		require.Equal(t, api.MsgTooLarge, handlertest.Redirected(t, rec, "/admin/file?field_id=image").No)
	})

	t.Run("missing file", func(t *testing.T) {
		c, rec := upload(t, e, "/admin/file", "", nil)
		handlertest.Serve(t, UploadHandler(&fakeStorage{}), c)
		require.Equal(t, api.MsgUploadFailed, handlertest.Redirected(t, rec, "/admin/file?field_id=image").No)
	})

	t.Run("no storage", func(t *testing.T) {
		c, rec := upload(t, e, "/admin/file", "file", png)
		handlertest.Serve(t, UploadHandler(nil), c)
		require.Equal(t, api.MsgNoStorage, handlertest.Redirected(t, rec, "/admin/file?field_id=image").No)
	})
}

func TestMediaHandler(t *testing.T) {
	e := echo.New()
	serve := func(st media.Storage, key string) (*httptest.ResponseRecorder, error) {
		c, rec := handlertest.Get(e, "/media/"+key)
		c.SetParamNames("*")
		c.SetParamValues(key)
		return rec, MediaHandler(st)(c)
	}

	rec, err := serve(&fakeStorage{body: "imgdata"}, "k.png")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "image/png", rec.Header().Get(echo.HeaderContentType))
	require.Equal(t, "imgdata", rec.Body.String())
	require.Contains(t, rec.Header().Get("Cache-Control"), "max-age")

	_, err = serve(&fakeStorage{openErr: media.ErrNotFound}, "nope.png")
	require.ErrorIs(t, err, echo.ErrNotFound)

	_, err = serve(&fakeStorage{openErr: errors.New("minio")}, "k.png")
	require.ErrorIs(t, err, echo.ErrInternalServerError)

	_, err = serve(nil, "k.png")
	require.ErrorIs(t, err, echo.ErrNotFound)

	_, err = serve(&fakeStorage{}, "")
	require.ErrorIs(t, err, echo.ErrNotFound)
}
