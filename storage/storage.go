package storage

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/lmarchou/BENounou/config"
)

// Client talks to the Supabase storage API with the service-role key.
// Uploads are plain PUTs; there is no retry policy, a failed upload is
// returned to the caller as-is.
type Client struct {
	baseURL    string
	serviceKey string
	bucket     string
	http       *http.Client
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		baseURL:    strings.TrimRight(cfg.StorageURL, "/"),
		serviceKey: cfg.StorageServiceKey,
		bucket:     cfg.PhotoBucket,
		http:       &http.Client{Timeout: 30 * time.Second},
	}
}

// nowMillis is swapped out in tests.
var nowMillis = func() int64 { return time.Now().UnixMilli() }

// PhotoObjectName builds the object key for an uploaded photo:
// a millisecond timestamp plus the original file extension, under the
// bucket's public/ prefix.
func PhotoObjectName(originalFilename string) string {
	ext := strings.TrimPrefix(filepath.Ext(originalFilename), ".")
	if ext == "" {
		ext = "bin"
	}
	return fmt.Sprintf("public/%d.%s", nowMillis(), ext)
}

// UploadPhoto stores one photo and returns its public URL.
func (c *Client) UploadPhoto(originalFilename, contentType string, data io.Reader) (string, error) {
	if c.baseURL == "" || c.serviceKey == "" {
		return "", fmt.Errorf("storage is not configured")
	}

	object := PhotoObjectName(originalFilename)
	endpoint := fmt.Sprintf("%s/storage/v1/object/%s/%s", c.baseURL, c.bucket, object)

	req, err := http.NewRequest(http.MethodPut, endpoint, data)
	if err != nil {
		return "", fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.serviceKey)
	req.Header.Set("Content-Type", contentType)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload photo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("upload photo: status %d: %s", resp.StatusCode, string(body))
	}

	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s",
		c.baseURL, c.bucket, pathEscapeSegments(object)), nil
}

// ObjectFromPublicURL maps one of this client's public URLs back to
// its object key. URLs from another project or bucket return false.
func (c *Client) ObjectFromPublicURL(publicURL string) (string, bool) {
	if c.baseURL == "" {
		return "", false
	}
	prefix := fmt.Sprintf("%s/storage/v1/object/public/%s/", c.baseURL, c.bucket)
	if !strings.HasPrefix(publicURL, prefix) {
		return "", false
	}
	parts := strings.Split(strings.TrimPrefix(publicURL, prefix), "/")
	for i, p := range parts {
		u, err := url.PathUnescape(p)
		if err != nil {
			return "", false
		}
		parts[i] = u
	}
	return strings.Join(parts, "/"), true
}

// Delete removes an object by its key (not by public URL).
func (c *Client) Delete(object string) error {
	endpoint := fmt.Sprintf("%s/storage/v1/object/%s/%s", c.baseURL, c.bucket, object)
	req, err := http.NewRequest(http.MethodDelete, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.serviceKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("delete object: status %d: %s", resp.StatusCode, string(body))
	}
	return nil
}

// escape each path segment but keep the separators
func pathEscapeSegments(object string) string {
	parts := strings.Split(object, "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return strings.Join(parts, "/")
}
