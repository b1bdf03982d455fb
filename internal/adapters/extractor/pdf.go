// Package extractor provides the PDF text-extraction adapter.
// Clean Architecture: Adapter implementing ports.PDFExtractor.
// Calls an external extraction service; this process never parses PDF bytes.
package extractor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// ServicePDFExtractor extracts PDF text via the extraction sidecar.
type ServicePDFExtractor struct {
	serviceURL string
	client     *http.Client
}

// NewServicePDFExtractor creates an extractor talking to the given service.
func NewServicePDFExtractor(serviceURL string) *ServicePDFExtractor {
	if serviceURL == "" {
		serviceURL = "http://localhost:8081"
	}
	return &ServicePDFExtractor{
		serviceURL: serviceURL,
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// extractResponse is the extraction service response format.
type extractResponse struct {
	Text  string `json:"text"`
	Pages int    `json:"pages"`
	Error string `json:"error,omitempty"`
}

// Extract reads the PDF at filePath and returns its text content.
// An empty file is an error: there is nothing to answer questions from.
func (e *ServicePDFExtractor) Extract(ctx context.Context, filePath string) (string, error) {
	info, err := os.Stat(filePath)
	if err != nil {
		return "", fmt.Errorf("accessing file: %w", err)
	}
	if info.Size() == 0 {
		return "", fmt.Errorf("file is empty: %s", filePath)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return "", fmt.Errorf("reading file: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", e.serviceURL+"/parse", bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := e.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling PDF service: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}

	var result extractResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}

	if result.Error != "" {
		return "", fmt.Errorf("PDF parse error: %s", result.Error)
	}

	return result.Text, nil
}

// IsServiceHealthy checks if the extraction service is reachable.
func (e *ServicePDFExtractor) IsServiceHealthy(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, "GET", e.serviceURL+"/health", nil)
	if err != nil {
		return false
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode == http.StatusOK
}
