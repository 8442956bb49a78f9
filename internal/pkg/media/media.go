// Package media talks to the external image host. Profiles store only the
// delivered URL; upload and deletion go through this narrow client.
package media

import (
	"context"
	"fmt"
	"io"
)

// UploadResult is returned by the media host after a successful upload.
type UploadResult struct {
	URL      string `json:"url"`
	PublicID string `json:"public_id"`
}

type Uploader interface {
	// UploadImage uploads an image and returns its delivery URL.
	UploadImage(ctx context.Context, file io.Reader, filename string) (UploadResult, error)
}

type Deleter interface {
	// DeleteImage removes a previously uploaded image by its delivery URL.
	DeleteImage(ctx context.Context, url string) error
}

type Service interface {
	Uploader
	Deleter
}

// APIError represents an error response from the media host.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("media API error [%d]: %s", e.StatusCode, e.Message)
}
