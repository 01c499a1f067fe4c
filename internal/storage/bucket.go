// Package storage uploads room images to a Supabase-style storage
// bucket over its REST interface.
package storage

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"
	"time"

	"kosbackend/internal/domain"

	"github.com/google/uuid"
)

type BucketClient struct {
	BaseURL    string
	Key        string
	Bucket     string
	HTTPClient *http.Client
}

func NewBucketClient(baseURL, key, bucket string) *BucketClient {
	return &BucketClient{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		Key:        key,
		Bucket:     bucket,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Upload stores one file under a random object name and returns its
// public URL. The original filename only contributes its extension.
func (c *BucketClient) Upload(filename string, data []byte, contentType string) (string, error) {
	object := uuid.NewString() + strings.ToLower(path.Ext(filename))

	req, err := http.NewRequest(http.MethodPost,
		fmt.Sprintf("%s/storage/v1/object/%s/%s", c.BaseURL, c.Bucket, object),
		bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.Key)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return "", domain.GatewayError{Msg: "storage unreachable", Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", domain.GatewayError{Msg: fmt.Sprintf("upload gagal (status %d): %s", resp.StatusCode, string(body))}
	}

	return c.PublicURL(object), nil
}

// PublicURL renders the unauthenticated URL of an uploaded object.
func (c *BucketClient) PublicURL(object string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", c.BaseURL, c.Bucket, object)
}

// Remove deletes the object behind a public URL. URLs that do not point
// into our bucket are ignored, matching the tolerant original behavior.
func (c *BucketClient) Remove(publicURL string) error {
	marker := "/object/public/" + c.Bucket + "/"
	idx := strings.Index(publicURL, marker)
	if idx < 0 {
		return nil
	}
	object := publicURL[idx+len(marker):]
	if object == "" {
		return nil
	}

	req, err := http.NewRequest(http.MethodDelete,
		fmt.Sprintf("%s/storage/v1/object/%s/%s", c.BaseURL, c.Bucket, object), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.Key)

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return domain.GatewayError{Msg: "storage unreachable", Err: err}
	}
	defer resp.Body.Close()
	// a missing object counts as removed
	if resp.StatusCode == http.StatusNotFound {
		return nil
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return domain.GatewayError{Msg: fmt.Sprintf("hapus object gagal (status %d)", resp.StatusCode)}
	}
	return nil
}

func (c *BucketClient) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}
