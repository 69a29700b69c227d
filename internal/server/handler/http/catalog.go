package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/atinyakov/peerdex/internal/apperr"
	"github.com/atinyakov/peerdex/internal/middleware"
	"github.com/atinyakov/peerdex/internal/models"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// CatalogService defines the operations required by the catalog handlers.
type CatalogService interface {
	// RegisterFile records one file advertisement.
	RegisterFile(ctx context.Context, file *models.File) error
	// Search filters advertisements by name substring and optional exact type.
	Search(ctx context.Context, query, fileType string) ([]models.SearchResult, error)
}

// CatalogHandler handles HTTP requests for file advertisement and search.
type CatalogHandler struct {
	// Service performs the underlying catalog operations.
	Service CatalogService
	// Log is the structured logger for per-operation events.
	Log *zap.Logger

	validate *validator.Validate
}

// NewCatalogHandler constructs a CatalogHandler with its validator.
func NewCatalogHandler(svc CatalogService, log *zap.Logger) *CatalogHandler {
	return &CatalogHandler{Service: svc, Log: log, validate: validator.New()}
}

// registerFileRequest represents the JSON payload for file advertisement.
// file_size and file_type are advisory and optional.
type registerFileRequest struct {
	FileName  string `json:"file_name" validate:"required"`
	FileSize  int64  `json:"file_size"`
	FileType  string `json:"file_type"`
	SharedBy  int64  `json:"shared_by" validate:"required"`
	IPAddress string `json:"ip_address" validate:"required"`
	Port      int    `json:"port" validate:"required"`
}

// RegisterFile handles file advertisement requests. file_name, shared_by,
// ip_address and port are required; the endpoint hint is stored unvalidated.
func (h *CatalogHandler) RegisterFile(w http.ResponseWriter, r *http.Request) {
	var req registerFileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "File name, shared_by (user_id), ip_address, and port are required.")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.Log.Warn("file registration attempt with missing fields")
		writeMessage(w, http.StatusBadRequest, "File name, shared_by (user_id), ip_address, and port are required.")
		return
	}

	// The claimed user_id is the caller's identity for this operation.
	ctx := middleware.WithUserID(r.Context(), req.SharedBy)

	file := &models.File{
		Name:     req.FileName,
		Size:     req.FileSize,
		Type:     req.FileType,
		SharedBy: middleware.UserIDFromContext(ctx),
		Address:  req.IPAddress,
		Port:     req.Port,
	}

	err := h.Service.RegisterFile(ctx, file)
	switch {
	case errors.Is(err, apperr.ErrValidation):
		writeMessage(w, http.StatusBadRequest, "File name, shared_by (user_id), ip_address, and port are required.")
	case errors.Is(err, apperr.ErrUnknownUser):
		h.Log.Warn("file registration from unknown user", zap.Int64("shared_by", req.SharedBy))
		writeMessage(w, http.StatusBadRequest, "shared_by does not reference a known user.")
	case err != nil:
		h.Log.Error("file registration error", zap.Error(err))
		writeMessage(w, http.StatusInternalServerError, "Internal server error.")
	default:
		h.Log.Info("file registered",
			zap.String("file_name", req.FileName),
			zap.Int64("shared_by", req.SharedBy),
			zap.String("ip_address", req.IPAddress),
			zap.Int("port", req.Port),
		)
		writeMessage(w, http.StatusCreated, "File registered successfully.")
	}
}

// Search handles catalog search requests. "query" narrows by file_name
// substring (empty matches all) and "type" by exact file_type. An empty
// result set is a success with an empty list.
func (h *CatalogHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	fileType := r.URL.Query().Get("type")

	results, err := h.Service.Search(r.Context(), query, fileType)
	if err != nil {
		h.Log.Error("search error", zap.Error(err))
		writeMessage(w, http.StatusInternalServerError, "Internal server error.")
		return
	}

	h.Log.Info("search performed",
		zap.String("query", query),
		zap.String("type", fileType),
		zap.Int("found", len(results)),
	)
	writeJSON(w, http.StatusOK, map[string]any{"files": results})
}
