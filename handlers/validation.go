// File: clubpoints/handlers/validation.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"clubpoints/services"
)

// ValidateResortHandler handles GET /api/resorts/:id/validate against the
// working copy, so unsaved edits are checked too.
func (h *EditorHandler) ValidateResortHandler(c *gin.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.requireDoc(c) {
		return
	}
	wc := h.working(c, c.Param("id"))
	if wc == nil {
		return
	}
	issues := services.Validate(wc, h.State.Doc, h.State.Doc.Years())
	if issues == nil {
		issues = []string{}
	}
	c.JSON(http.StatusOK, gin.H{
		"valid":  len(issues) == 0,
		"issues": issues,
	})
}
