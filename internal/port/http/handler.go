package http

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/delilar/avito-intenship-2025/internal/domain/entity"
	"github.com/delilar/avito-intenship-2025/internal/platform/logger"
	"github.com/delilar/avito-intenship-2025/internal/port/http/middleware"
	"github.com/delilar/avito-intenship-2025/internal/repository"
	"github.com/delilar/avito-intenship-2025/internal/service"
)

// EditorService is what the HTTP surface needs from the wizard. The wizard
// never navigates; handlers return its state and the client decides where to
// go.
type EditorService interface {
	StartSession(ctx context.Context, userID string) (*service.SessionState, error)
	State(ctx context.Context, userID string) (*service.SessionState, error)
	Change(ctx context.Context, userID string, patch entity.ListingPatch) (*service.SessionState, error)
	Next(ctx context.Context, userID string) (*service.SessionState, error)
	Back(ctx context.Context, userID string) (*service.SessionState, error)
	Submit(ctx context.Context, userID string, patch entity.ListingPatch) (*service.SessionState, error)
	EnterEditMode(ctx context.Context, userID, id string) (*service.SessionState, error)
	AttachImage(ctx context.Context, userID, fileName string, data []byte) (*service.SessionState, error)
	Close(ctx context.Context, userID string)
}

// CatalogReader is the read-only slice of the external items service used by
// the passthrough endpoints.
type CatalogReader interface {
	List(ctx context.Context) ([]entity.Listing, error)
	Get(ctx context.Context, id string) (*entity.Listing, error)
}

type EditorHandler struct {
	wizard  EditorService
	catalog CatalogReader
	log     logger.Logger
}

func NewEditorHandler(wizard EditorService, catalog CatalogReader, log logger.Logger) *EditorHandler {
	return &EditorHandler{wizard: wizard, catalog: catalog, log: log}
}

func (h *EditorHandler) userID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, ok := middleware.UserID(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
	}
	return id, ok
}

func (h *EditorHandler) writeState(w http.ResponseWriter, state *service.SessionState, err error) {
	if err != nil {
		if errors.Is(err, service.ErrNoSession) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		h.log.Errorf("EditorHandler: %v", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (h *EditorHandler) HandleStartSession(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	state, err := h.wizard.StartSession(r.Context(), userID)
	h.writeState(w, state, err)
}

func (h *EditorHandler) HandleState(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	state, err := h.wizard.State(r.Context(), userID)
	h.writeState(w, state, err)
}

func (h *EditorHandler) HandleClose(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	h.wizard.Close(r.Context(), userID)
	w.WriteHeader(http.StatusNoContent)
}

func (h *EditorHandler) HandleEnterEditMode(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")
	if id == "" {
		http.Error(w, "missing id parameter", http.StatusBadRequest)
		return
	}
	state, err := h.wizard.EnterEditMode(r.Context(), userID, id)
	h.writeState(w, state, err)
}

func (h *EditorHandler) HandleChange(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	var patch entity.ListingPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	state, err := h.wizard.Change(r.Context(), userID, patch)
	h.writeState(w, state, err)
}

func (h *EditorHandler) HandleNext(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	state, err := h.wizard.Next(r.Context(), userID)
	h.writeState(w, state, err)
}

func (h *EditorHandler) HandleBack(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	state, err := h.wizard.Back(r.Context(), userID)
	h.writeState(w, state, err)
}

func (h *EditorHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	var patch entity.ListingPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	state, err := h.wizard.Submit(r.Context(), userID, patch)
	h.writeState(w, state, err)
}

type attachImageRequest struct {
	FileName string `json:"fileName"`
	Data     string `json:"data"`
}

func (h *EditorHandler) HandleAttachImage(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	var req attachImageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	data, err := base64.StdEncoding.DecodeString(req.Data)
	if err != nil {
		http.Error(w, "image data must be base64 encoded", http.StatusBadRequest)
		return
	}
	state, err := h.wizard.AttachImage(r.Context(), userID, req.FileName, data)
	h.writeState(w, state, err)
}

func (h *EditorHandler) HandleListListings(w http.ResponseWriter, r *http.Request) {
	listings, err := h.catalog.List(r.Context())
	if err != nil {
		h.log.Errorf("EditorHandler.HandleListListings: %v", err)
		http.Error(w, "failed to fetch listings", http.StatusBadGateway)
		return
	}
	writeJSON(w, http.StatusOK, listings)
}

func (h *EditorHandler) HandleGetListing(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	listing, err := h.catalog.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			http.Error(w, "listing not found", http.StatusNotFound)
			return
		}
		h.log.Errorf("EditorHandler.HandleGetListing: %v", err)
		http.Error(w, "failed to fetch listing", http.StatusBadGateway)
		return
	}
	writeJSON(w, http.StatusOK, listing)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
