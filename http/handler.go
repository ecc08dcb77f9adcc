package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/avelkon/bucketgate"
)

// Service is the credential issuer the gateway dispatches to.
type Service interface {
	IssueUploadURL(ctx context.Context, ident bucketgate.Identity, fileName, fileType string) (string, error)
	ListFiles(ctx context.Context, ident bucketgate.Identity) ([]bucketgate.FileEntry, error)
}

type CORSConfig struct {
	Enabled          bool     `mapstructure:"enabled"`
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

type HandlerConfig struct {
	Verifier      bucketgate.TokenVerifier
	VerifyTimeout time.Duration
	CORS          CORSConfig
}

// Handler provides the HTTP handlers for credential issuance.
type Handler struct {
	config  HandlerConfig
	service Service
}

// NewHandler creates a new Handler with the given configuration and service.
func NewHandler(config *HandlerConfig, service Service) *Handler {
	return &Handler{
		config:  *config,
		service: service,
	}
}

// Router returns an http.Handler with both endpoints behind bearer-token
// authentication.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(RequestLogger)

	if h.config.CORS.Enabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   h.config.CORS.AllowedOrigins,
			AllowedMethods:   h.config.CORS.AllowedMethods,
			AllowedHeaders:   h.config.CORS.AllowedHeaders,
			AllowCredentials: h.config.CORS.AllowCredentials,
			MaxAge:           h.config.CORS.MaxAge,
		}))
	}

	r.Group(func(r chi.Router) {
		r.Use(BearerAuth(h.config.Verifier, h.config.VerifyTimeout))
		r.Post("/get-presigned-url", h.handlePresignUpload)
		r.Get("/list-files", h.handleListFiles)
	})

	return r
}

type presignRequest struct {
	FileName string `json:"fileName"`
	FileType string `json:"fileType"`
}

type presignResponse struct {
	URL string `json:"url"`
}

func (h *Handler) handlePresignUpload(w http.ResponseWriter, r *http.Request) {
	ident, ok := IdentityFrom(r.Context())
	if !ok {
		WriteError(w, http.StatusUnauthorized, "Access token required")
		return
	}

	// Both fields are optional; an empty body is fine, a malformed one
	// is not.
	var req presignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	url, err := h.service.IssueUploadURL(r.Context(), ident, req.FileName, req.FileType)
	if err != nil {
		if errors.Is(err, bucketgate.ErrInvalidFileName) {
			WriteError(w, http.StatusBadRequest, "Invalid file name")
			return
		}
		slog.Error("generate upload url", "uid", ident.UID, "error", err)
		WriteError(w, http.StatusInternalServerError, "Failed to generate URL")
		return
	}

	_ = WriteJSON(w, http.StatusOK, presignResponse{URL: url})
}

func (h *Handler) handleListFiles(w http.ResponseWriter, r *http.Request) {
	ident, ok := IdentityFrom(r.Context())
	if !ok {
		WriteError(w, http.StatusUnauthorized, "Access token required")
		return
	}

	entries, err := h.service.ListFiles(r.Context(), ident)
	if err != nil {
		slog.Error("list files", "uid", ident.UID, "error", err)
		WriteError(w, http.StatusInternalServerError, "Failed to list files")
		return
	}

	_ = WriteJSON(w, http.StatusOK, entries)
}
