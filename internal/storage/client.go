package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/andessoft/registro-api/internal/config"
)

// Client uploads supporting documents to the external object storage service
// over its REST API. The service key authenticates this backend; uploaded
// objects are served from a public read-only base URL.
type Client struct {
	baseURL       string
	publicBaseURL string
	serviceKey    string
	bucket        string
	httpClient    *http.Client
	logger        *logrus.Logger
}

// NewClient creates a storage client from configuration
func NewClient(cfg *config.StorageConfig, logger *logrus.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:       strings.TrimRight(cfg.BaseURL, "/"),
		publicBaseURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
		serviceKey:    cfg.ServiceKey,
		bucket:        cfg.Bucket,
		httpClient:    &http.Client{Timeout: timeout},
		logger:        logger,
	}
}

// Upload stores the object under the given key and returns its public URL
func (c *Client) Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	url := fmt.Sprintf("%s/object/%s/%s", c.baseURL, c.bucket, key)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return "", fmt.Errorf("failed to create upload request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.serviceKey)
	req.Header.Set("Content-Type", contentType)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call storage service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.logger.WithFields(logrus.Fields{
			"status": resp.StatusCode,
			"key":    key,
		}).Error("Storage service rejected upload")
		return "", fmt.Errorf("storage service returned status %d: %s", resp.StatusCode, string(respBody))
	}

	return fmt.Sprintf("%s/object/public/%s/%s", c.publicBaseURL, c.bucket, key), nil
}
