// Package http provides the HTTP server infrastructure.
// Clean Architecture: Framework/driver layer - outermost circle.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/0xcro3dile/docchat-go/internal/domain/entities"
	"github.com/0xcro3dile/docchat-go/internal/domain/ports"
	"github.com/0xcro3dile/docchat-go/internal/domain/usecases"
)

// Server is the HTTP server for the document chat API.
type Server struct {
	ask        *usecases.AskUseCase
	stream     *usecases.StreamUseCase
	docs       ports.DocumentStore
	uploadsDir string
	addr       string
}

// NewServer creates a new HTTP server.
func NewServer(
	ask *usecases.AskUseCase,
	stream *usecases.StreamUseCase,
	docs ports.DocumentStore,
	uploadsDir string,
	addr string,
) *Server {
	return &Server{
		ask:        ask,
		stream:     stream,
		docs:       docs,
		uploadsDir: uploadsDir,
		addr:       addr,
	}
}

// Router builds the chi router with all API routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Heartbeat("/health"))
	r.Use(corsMiddleware)

	r.Post("/api/upload", s.handleUpload)
	r.Get("/api/documents", s.handleListDocuments)
	r.Post("/api/ask/{documentID}", s.handleAsk)
	r.Post("/api/ask/{documentID}/stream", s.handleAskStream)
	r.Delete("/api/ask/{documentID}/history", s.handleClearHistory)
	r.Get("/api/health", s.handleHealth)

	return r
}

// Start runs the HTTP server until ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	server := &http.Server{
		Addr:        s.addr,
		Handler:     s.Router(),
		ReadTimeout: 15 * time.Second,
		// SSE connections stay open for the whole generation.
		WriteTimeout: 0,
		IdleTimeout:  120 * time.Second,
	}

	slog.Info("docchat server starting", "addr", s.addr)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	return server.ListenAndServe()
}

// askRequest is the body for both ask endpoints.
type askRequest struct {
	Question     string `json:"question"`
	ClearHistory bool   `json:"clearHistory"`
}

// handleAsk processes a blocking question against one document.
func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	documentID := chi.URLParam(r, "documentID")

	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Question == "" && !req.ClearHistory {
		writeError(w, http.StatusBadRequest, "Question is required")
		return
	}

	resp, err := s.ask.Ask(r.Context(), &entities.AskRequest{
		DocumentID:   documentID,
		Question:     req.Question,
		ClearHistory: req.ClearHistory,
	})
	if err != nil {
		writeError(w, statusForError(err), clientMessage(err))
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "answer": resp.Answer})
}

// handleAskStream processes a question over SSE, separating thinking and
// answer tokens on the client side.
func (s *Server) handleAskStream(w http.ResponseWriter, r *http.Request) {
	documentID := chi.URLParam(r, "documentID")

	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	events, err := s.stream.Stream(r.Context(), documentID, req.Question)
	if err != nil {
		// Validation failed; no event stream is opened.
		writeError(w, statusForError(err), clientMessage(err))
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "Streaming not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for event := range events {
		switch event.Type {
		case entities.EventChunk:
			sendSSE(w, flusher, "chunk", map[string]any{
				"response": event.Response,
				"done":     event.Done,
			})
		case entities.EventEnd:
			sendSSE(w, flusher, "end", map[string]any{})
			return
		case entities.EventError:
			sendSSE(w, flusher, "error", map[string]any{"error": event.Err})
			return
		}
	}
}

// handleClearHistory drops the conversation for a document. Idempotent.
func (s *Server) handleClearHistory(w http.ResponseWriter, r *http.Request) {
	s.ask.ClearHistory(chi.URLParam(r, "documentID"))
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// handleUpload stores a multipart document upload and caches its text.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("document")
	if err != nil {
		writeError(w, http.StatusBadRequest, "No file uploaded")
		return
	}
	defer file.Close()

	if err := os.MkdirAll(s.uploadsDir, 0o755); err != nil {
		slog.Error("Failed to create uploads dir", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to upload document")
		return
	}

	documentID := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), filepath.Base(header.Filename))
	path := filepath.Join(s.uploadsDir, documentID)

	dst, err := os.Create(path)
	if err != nil {
		slog.Error("Failed to create upload file", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to upload document")
		return
	}
	defer dst.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to upload document")
		return
	}
	if _, err := dst.Write(content); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to upload document")
		return
	}

	// Content is retrievable through the resolver immediately after upload.
	s.docs.Set(documentID, string(content))

	writeJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"documentId": documentID,
		"message":    "Document uploaded successfully",
	})
}

// handleListDocuments returns every known document ID from the uploads dir.
func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	entries, err := os.ReadDir(s.uploadsDir)
	if err != nil && !os.IsNotExist(err) {
		writeError(w, http.StatusInternalServerError, "Failed to read uploads folder")
		return
	}

	documents := make([]map[string]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || entry.Name()[0] == '.' {
			continue
		}
		documents = append(documents, map[string]string{"documentId": entry.Name()})
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "documents": documents})
}

// handleHealth returns server health status.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// statusForError maps domain sentinels to HTTP status codes.
func statusForError(err error) int {
	switch {
	case errors.Is(err, entities.ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, entities.ErrUnsupportedFormat):
		return http.StatusBadRequest
	case errors.Is(err, entities.ErrDocumentNotFound):
		return http.StatusNotFound
	case errors.Is(err, entities.ErrBackendUnavailable):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// clientMessage translates domain sentinels to client-visible text.
// Backend failures get a generic message so a caller can retry;
// input errors stay distinct.
func clientMessage(err error) string {
	switch {
	case errors.Is(err, entities.ErrInvalidRequest):
		return "Question is required"
	case errors.Is(err, entities.ErrUnsupportedFormat):
		return "Unsupported file type"
	case errors.Is(err, entities.ErrDocumentNotFound):
		return "Document not found"
	case errors.Is(err, entities.ErrBackendUnavailable):
		return "Failed to connect to the model backend"
	default:
		return "Failed to process request"
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"success": false, "error": message})
}

func sendSSE(w http.ResponseWriter, flusher http.Flusher, event string, data any) {
	jsonData, _ := json.Marshal(data)
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, jsonData)
	flusher.Flush()
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			return
		}
		next.ServeHTTP(w, r)
	})
}
