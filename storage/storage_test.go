package storage

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lmarchou/BENounou/config"
)

func TestPhotoObjectName(t *testing.T) {
	orig := nowMillis
	nowMillis = func() int64 { return 1712345678901 }
	defer func() { nowMillis = orig }()

	assert.Equal(t, "public/1712345678901.jpg", PhotoObjectName("emma.jpg"))
	assert.Equal(t, "public/1712345678901.png", PhotoObjectName("photo du jour.png"))
	assert.Equal(t, "public/1712345678901.bin", PhotoObjectName("noextension"))
}

func TestUploadPhoto(t *testing.T) {
	var gotPath, gotAuth, gotType, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotType = r.Header.Get("Content-Type")
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient(&config.Config{
		StorageURL:        srv.URL,
		StorageServiceKey: "service-key",
		PhotoBucket:       "photos",
	})

	url, err := c.UploadPhoto("emma.jpg", "image/jpeg", strings.NewReader("jpeg-bytes"))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(gotPath, "/storage/v1/object/photos/public/"))
	assert.Equal(t, "Bearer service-key", gotAuth)
	assert.Equal(t, "image/jpeg", gotType)
	assert.Equal(t, "jpeg-bytes", gotBody)
	assert.Contains(t, url, srv.URL+"/storage/v1/object/public/photos/public/")
}

func TestUploadPhotoErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"denied"}`, http.StatusForbidden)
	}))
	defer srv.Close()

	c := NewClient(&config.Config{
		StorageURL:        srv.URL,
		StorageServiceKey: "service-key",
		PhotoBucket:       "photos",
	})
	_, err := c.UploadPhoto("emma.jpg", "image/jpeg", strings.NewReader("x"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}

func TestUploadPhotoUnconfigured(t *testing.T) {
	c := NewClient(&config.Config{})
	_, err := c.UploadPhoto("emma.jpg", "image/jpeg", strings.NewReader("x"))
	assert.Error(t, err)
}

func TestObjectFromPublicURL(t *testing.T) {
	c := NewClient(&config.Config{
		StorageURL:        "https://proj.supabase.co",
		StorageServiceKey: "service-key",
		PhotoBucket:       "photos",
	})

	object, ok := c.ObjectFromPublicURL("https://proj.supabase.co/storage/v1/object/public/photos/public/1712345678901.jpg")
	require.True(t, ok)
	assert.Equal(t, "public/1712345678901.jpg", object)

	// Escaped segments unescape back to the original key.
	object, ok = c.ObjectFromPublicURL("https://proj.supabase.co/storage/v1/object/public/photos/public/photo%20du%20jour.png")
	require.True(t, ok)
	assert.Equal(t, "public/photo du jour.png", object)

	_, ok = c.ObjectFromPublicURL("https://other.supabase.co/storage/v1/object/public/photos/public/x.jpg")
	assert.False(t, ok)
	_, ok = c.ObjectFromPublicURL("https://proj.supabase.co/storage/v1/object/public/documents/x.pdf")
	assert.False(t, ok)
}

func TestDelete(t *testing.T) {
	var gotMethod, gotPath, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient(&config.Config{
		StorageURL:        srv.URL,
		StorageServiceKey: "service-key",
		PhotoBucket:       "photos",
	})

	require.NoError(t, c.Delete("public/1712345678901.jpg"))
	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Equal(t, "/storage/v1/object/photos/public/1712345678901.jpg", gotPath)
	assert.Equal(t, "Bearer service-key", gotAuth)
}

func TestDeleteErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"missing"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(&config.Config{
		StorageURL:        srv.URL,
		StorageServiceKey: "service-key",
		PhotoBucket:       "photos",
	})
	err := c.Delete("public/x.jpg")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}
