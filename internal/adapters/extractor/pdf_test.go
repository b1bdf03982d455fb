package extractor

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func writeTempPDF(t *testing.T, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doc.pdf")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestExtract_ReturnsText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/parse" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Write([]byte(`{"text":"extracted body","pages":2}`))
	}))
	defer server.Close()

	e := NewServicePDFExtractor(server.URL)
	text, err := e.Extract(context.Background(), writeTempPDF(t, []byte("%PDF-1.4 fake")))

	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	if text != "extracted body" {
		t.Errorf("unexpected text: %q", text)
	}
}

func TestExtract_ServiceErrorField(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"text":"","error":"corrupt xref table"}`))
	}))
	defer server.Close()

	e := NewServicePDFExtractor(server.URL)
	_, err := e.Extract(context.Background(), writeTempPDF(t, []byte("%PDF-1.4 fake")))

	if err == nil {
		t.Error("expected error from service error field")
	}
}

func TestExtract_MissingFile(t *testing.T) {
	e := NewServicePDFExtractor("http://localhost:1")
	_, err := e.Extract(context.Background(), filepath.Join(t.TempDir(), "nope.pdf"))

	if err == nil {
		t.Error("expected error for missing file")
	}
}

func TestExtract_EmptyFile(t *testing.T) {
	e := NewServicePDFExtractor("http://localhost:1")
	_, err := e.Extract(context.Background(), writeTempPDF(t, nil))

	if err == nil {
		t.Error("expected error for empty file")
	}
}

func TestExtract_DefaultServiceURL(t *testing.T) {
	e := NewServicePDFExtractor("")
	if e.serviceURL != "http://localhost:8081" {
		t.Errorf("unexpected default: %s", e.serviceURL)
	}
}
