package imagegen

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Rehoster saves generated images locally and exposes them under a
// public URL so clients are not handed short-lived upstream links.
type Rehoster struct {
	UploadsDir    string
	PublicBaseURL string
	client        *http.Client
}

// NewRehoster creates a rehoster writing under uploadsDir/generated-images
func NewRehoster(uploadsDir, publicBaseURL string) *Rehoster {
	return &Rehoster{
		UploadsDir:    uploadsDir,
		PublicBaseURL: publicBaseURL,
		client:        &http.Client{Timeout: 120 * time.Second},
	}
}

// SaveBytes writes the image bytes to disk and returns the public URL
func (r *Rehoster) SaveBytes(provider string, data []byte, ext string) (string, error) {
	dir := filepath.Join(r.UploadsDir, "generated-images")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create uploads dir: %w", err)
	}
	filename := fmt.Sprintf("%s_%d_%s.%s", provider, time.Now().Unix(), uuid.New(), ext)
	if err := os.WriteFile(filepath.Join(dir, filename), data, 0o644); err != nil {
		return "", fmt.Errorf("write image: %w", err)
	}
	return r.PublicBaseURL + "/uploads/generated-images/" + filename, nil
}

// FetchAndSave downloads a remote image and re-hosts it locally
func (r *Rehoster) FetchAndSave(ctx context.Context, provider, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch image: unexpected status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return r.SaveBytes(provider, data, extFromContentType(resp.Header.Get("Content-Type")))
}

func extFromContentType(contentType string) string {
	switch {
	case strings.Contains(contentType, "jpeg"), strings.Contains(contentType, "jpg"):
		return "jpg"
	case strings.Contains(contentType, "webp"):
		return "webp"
	case strings.Contains(contentType, "gif"):
		return "gif"
	default:
		return "png"
	}
}
