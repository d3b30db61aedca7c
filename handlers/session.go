// File: clubpoints/handlers/session.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"clubpoints/services"
)

// SelectResortHandler handles POST /api/session/select/:id. Navigation
// away from a dirty resort is blocked until commit, discard or stay.
func (h *EditorHandler) SelectResortHandler(c *gin.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.requireDoc(c) {
		return
	}
	id := c.Param("id")
	if h.State.Doc.FindResort(id) == nil {
		respondNotFoundResort(c, id)
		return
	}
	result := h.Sessions.Select(h.State, id)
	if result.Status == services.SwitchBlocked {
		c.JSON(http.StatusConflict, result)
		return
	}
	c.JSON(http.StatusOK, result)
}

// SessionStatusHandler handles GET /api/session/status.
func (h *EditorHandler) SessionStatusHandler(c *gin.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()

	var dirty []string
	loaded := h.State.Doc != nil
	if loaded {
		for id := range h.State.WorkingResorts {
			if h.Sessions.IsDirty(h.State, id) {
				dirty = append(dirty, id)
			}
		}
	}
	status := gin.H{
		"session_id":        h.State.ID,
		"document_loaded":   loaded,
		"current_resort_id": h.State.CurrentResortID,
		"pending_resort_id": h.State.PendingResortID,
		"dirty_resort_ids":  dirty,
		"armed_resort_id":   h.State.ArmedResortID,
		"verified":          h.State.Verified,
	}
	if !h.State.LastSaveTime.IsZero() {
		status["last_save_time"] = h.State.LastSaveTime
	}
	c.JSON(http.StatusOK, status)
}

// CommitHandler handles POST /api/session/commit: persists the current
// resort's working copy and, when a switch is pending, completes it.
func (h *EditorHandler) CommitHandler(c *gin.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.requireDoc(c) {
		return
	}
	committed := h.State.CurrentResortID
	var err error
	if h.State.PendingResortID != "" {
		err = h.Sessions.CommitAndProceed(h.State)
	} else {
		err = h.Sessions.Commit(h.State, committed)
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"committed":         committed,
		"current_resort_id": h.State.CurrentResortID,
	})
}

// DiscardHandler handles POST /api/session/discard: drops the current
// resort's working copy and, when a switch is pending, completes it.
func (h *EditorHandler) DiscardHandler(c *gin.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.requireDoc(c) {
		return
	}
	discarded := h.State.CurrentResortID
	if h.State.PendingResortID != "" {
		h.Sessions.DiscardAndProceed(h.State)
	} else {
		h.Sessions.Discard(h.State, discarded)
	}
	c.JSON(http.StatusOK, gin.H{
		"discarded":         discarded,
		"current_resort_id": h.State.CurrentResortID,
	})
}

// StayHandler handles POST /api/session/stay, cancelling a blocked switch.
func (h *EditorHandler) StayHandler(c *gin.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.Sessions.Stay(h.State)
	c.JSON(http.StatusOK, gin.H{"current_resort_id": h.State.CurrentResortID})
}
