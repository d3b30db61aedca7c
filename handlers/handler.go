// File: clubpoints/handlers/handler.go
package handlers

import (
	"errors"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"

	"clubpoints/models"
	"clubpoints/services"
	"clubpoints/store"
	"clubpoints/utils"
)

// EditorHandler groups every endpoint handler around the single shared
// session. A mutex serializes requests: the editor is a one-operator tool
// and the document tree is not safe for concurrent mutation.
type EditorHandler struct {
	mu sync.Mutex

	State    *services.SessionState
	Store    store.DocumentStore
	Sessions services.SessionService
	Sync     services.SyncService
	Rename   services.RenameService
	Resorts  services.ResortService
}

// NewEditorHandler wires the handler with its services.
func NewEditorHandler(
	state *services.SessionState,
	docStore store.DocumentStore,
	sessions services.SessionService,
	sync services.SyncService,
	rename services.RenameService,
	resorts services.ResortService,
) *EditorHandler {
	return &EditorHandler{
		State:    state,
		Store:    docStore,
		Sessions: sessions,
		Sync:     sync,
		Rename:   rename,
		Resorts:  resorts,
	}
}

// requireDoc guards endpoints that need a loaded document. Returns false
// after writing the error response.
func (h *EditorHandler) requireDoc(c *gin.Context) bool {
	if h.State.Doc == nil {
		utils.JSONError(c, http.StatusConflict, "No document loaded", "Upload a document first")
		return false
	}
	return true
}

// working resolves the resort's working copy, responding 404 when the
// resort does not exist.
func (h *EditorHandler) working(c *gin.Context, resortID string) *models.Resort {
	wc := h.Sessions.Working(h.State, resortID)
	if wc == nil {
		respondNotFoundResort(c, resortID)
		return nil
	}
	return wc
}

func respondNotFoundResort(c *gin.Context, id string) {
	utils.JSONError(c, http.StatusNotFound, "Resort not found", id)
}

// resync runs both synchronization passes after a structural edit.
func (h *EditorHandler) resync(r *models.Resort) {
	baseYear := h.Sync.BaseYear(r)
	h.Sync.SyncSeasonRoomPoints(r, baseYear)
	h.Sync.SyncHolidayRoomPoints(r, baseYear)
}

// respondError maps service sentinels onto HTTP statuses.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrEmptyField):
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
	case errors.Is(err, models.ErrInvalidSchema):
		utils.JSONError(c, http.StatusBadRequest, "Invalid document", err.Error())
	case errors.Is(err, models.ErrNotFound):
		utils.JSONError(c, http.StatusNotFound, "Not found", err.Error())
	case errors.Is(err, models.ErrDuplicateName):
		utils.JSONError(c, http.StatusConflict, "Duplicate name", err.Error())
	default:
		utils.JSONError(c, http.StatusInternalServerError, "Internal error", err.Error())
	}
}
