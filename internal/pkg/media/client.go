package media

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/bizprofile/bizprofile-backend-go/internal/config"
	"github.com/google/uuid"
)

// Client is an HTTP client for the media host's upload/destroy API.
type Client struct {
	baseURL    string
	apiKey     string
	apiSecret  string
	folder     string
	httpClient *http.Client
}

func NewClient(cfg config.MediaConfig) *Client {
	return &Client{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:    cfg.APIKey,
		apiSecret: cfg.APISecret,
		folder:    cfg.Folder,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// UploadImage sends the file as multipart form data and returns the delivery
// URL and public ID assigned by the host.
func (c *Client) UploadImage(ctx context.Context, file io.Reader, filename string) (UploadResult, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	// Unique public ID so re-uploads never collide
	ext := strings.ToLower(path.Ext(filename))
	publicID := fmt.Sprintf("%s/%s%s", c.folder, uuid.New().String(), ext)

	part, err := writer.CreateFormFile("file", publicID)
	if err != nil {
		return UploadResult{}, fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return UploadResult{}, fmt.Errorf("failed to buffer upload: %w", err)
	}
	if err := writer.WriteField("public_id", publicID); err != nil {
		return UploadResult{}, fmt.Errorf("failed to write form field: %w", err)
	}
	if err := writer.Close(); err != nil {
		return UploadResult{}, fmt.Errorf("failed to finalize form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/image/upload", &body)
	if err != nil {
		return UploadResult{}, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.SetBasicAuth(c.apiKey, c.apiSecret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return UploadResult{}, fmt.Errorf("media upload request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return UploadResult{}, &APIError{StatusCode: resp.StatusCode, Message: string(msg)}
	}

	var result UploadResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return UploadResult{}, fmt.Errorf("failed to decode upload response: %w", err)
	}
	return result, nil
}

// DeleteImage destroys the image identified by its delivery URL.
func (c *Client) DeleteImage(ctx context.Context, url string) error {
	payload, err := json.Marshal(map[string]string{"public_id": publicIDFromURL(url)})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/image/destroy", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.apiKey, c.apiSecret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("media destroy request failed: %w", err)
	}
	defer resp.Body.Close()

	// Already-deleted images are fine
	if resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusNotFound {
		return nil
	}

	msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return &APIError{StatusCode: resp.StatusCode, Message: string(msg)}
}

// publicIDFromURL recovers the public ID from a delivery URL. Delivery URLs
// end with /<folder>/<id>.<ext>.
func publicIDFromURL(url string) string {
	parts := strings.Split(strings.TrimRight(url, "/"), "/")
	if len(parts) < 2 {
		return url
	}
	return strings.Join(parts[len(parts)-2:], "/")
}
