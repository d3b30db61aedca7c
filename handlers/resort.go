// File: clubpoints/handlers/resort.go
package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"clubpoints/services"
	"clubpoints/store"
	"clubpoints/utils"
)

// resortListItem is one row of the resort list, ordered west to east.
type resortListItem struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Code        string `json:"code"`
	Timezone    string `json:"timezone"`
	Dirty       bool   `json:"dirty"`
	Selected    bool   `json:"selected"`
}

// ListResortsHandler handles GET /api/resorts.
func (h *EditorHandler) ListResortsHandler(c *gin.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.requireDoc(c) {
		return
	}
	sorted := services.SortResortsWestToEast(h.State.Doc.Resorts)
	items := make([]resortListItem, 0, len(sorted))
	for _, r := range sorted {
		items = append(items, resortListItem{
			ID:          r.ID,
			DisplayName: r.DisplayName,
			Code:        r.Code,
			Timezone:    r.Timezone,
			Dirty:       h.Sessions.IsDirty(h.State, r.ID),
			Selected:    r.ID == h.State.CurrentResortID,
		})
	}
	c.JSON(http.StatusOK, gin.H{"resorts": items})
}

// CreateResortHandler handles POST /api/resorts.
func (h *EditorHandler) CreateResortHandler(c *gin.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.requireDoc(c) {
		return
	}
	var req struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}
	r, err := h.Resorts.Create(h.State, req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": r.ID, "display_name": r.DisplayName, "code": r.Code})
}

// CloneResortHandler handles POST /api/resorts/:id/clone. Clones from the
// committed record, never from a working copy.
func (h *EditorHandler) CloneResortHandler(c *gin.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.requireDoc(c) {
		return
	}
	var req struct {
		Name string `json:"name"`
		ID   string `json:"id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}
	r, err := h.Resorts.Clone(h.State, c.Param("id"), req.Name, req.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": r.ID, "display_name": r.DisplayName, "code": r.Code})
}

// DeleteResortHandler handles DELETE /api/resorts/:id as a two-phase
// confirm: the first call arms the deletion of that resort, the second
// call for the same resort performs it. A call for a different resort
// re-arms rather than deleting.
func (h *EditorHandler) DeleteResortHandler(c *gin.Context) {
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
	if h.State.ArmedResortID != id {
		h.Resorts.ArmDelete(h.State, id)
		c.JSON(http.StatusOK, gin.H{
			"armed":   true,
			"message": fmt.Sprintf("Repeat the request to delete %q, or cancel", id),
		})
		return
	}
	if err := h.Resorts.ConfirmDelete(h.State, id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

// CancelDeleteResortHandler handles POST /api/resorts/:id/delete/cancel.
func (h *EditorHandler) CancelDeleteResortHandler(c *gin.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.Resorts.CancelDelete(h.State)
	c.JSON(http.StatusOK, gin.H{"armed": false})
}

// UpdateResortHandler handles PATCH /api/resorts/:id, editing the basic
// fields on the working copy. Absent fields are left untouched.
func (h *EditorHandler) UpdateResortHandler(c *gin.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.requireDoc(c) {
		return
	}
	var req struct {
		DisplayName *string `json:"display_name"`
		Code        *string `json:"code"`
		ResortName  *string `json:"resort_name"`
		Address     *string `json:"address"`
		Timezone    *string `json:"timezone"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}
	wc := h.working(c, c.Param("id"))
	if wc == nil {
		return
	}
	if req.DisplayName != nil {
		wc.DisplayName = *req.DisplayName
	}
	if req.Code != nil {
		wc.Code = *req.Code
	}
	if req.ResortName != nil {
		wc.ResortName = *req.ResortName
	}
	if req.Address != nil {
		wc.Address = *req.Address
	}
	if req.Timezone != nil {
		wc.Timezone = *req.Timezone
	}
	c.JSON(http.StatusOK, gin.H{"id": wc.ID, "dirty": h.Sessions.IsDirty(h.State, wc.ID)})
}

// ExportResortHandler handles GET /api/resorts/:id/export, wrapping the
// committed resort in a standalone mergeable document.
func (h *EditorHandler) ExportResortHandler(c *gin.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.requireDoc(c) {
		return
	}
	id := c.Param("id")
	r := h.State.Doc.FindResort(id)
	if r == nil {
		respondNotFoundResort(c, id)
		return
	}
	data, err := json.MarshalIndent(store.ResortExport(r), "", "  ")
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.json"`, id))
	c.Data(http.StatusOK, "application/json", data)
}

// ImportResortCSVHandler handles POST /api/resorts/:id/import.csv. The
// body is a CSV in the export format; it is applied to the working copy
// and the sync passes rebuild the per-year tables from the imported
// master tables.
func (h *EditorHandler) ImportResortCSVHandler(c *gin.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.requireDoc(c) {
		return
	}
	data, err := c.GetRawData()
	if err != nil || len(data) == 0 {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", "empty CSV body")
		return
	}
	wc := h.working(c, c.Param("id"))
	if wc == nil {
		return
	}
	if err := services.ImportResortCSV(wc, data); err != nil {
		respondError(c, err)
		return
	}
	h.resync(wc)
	c.JSON(http.StatusOK, gin.H{"id": wc.ID, "dirty": h.Sessions.IsDirty(h.State, wc.ID)})
}

// ExportResortCSVHandler handles GET /api/resorts/:id/export.csv.
func (h *EditorHandler) ExportResortCSVHandler(c *gin.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.requireDoc(c) {
		return
	}
	id := c.Param("id")
	r := h.State.Doc.FindResort(id)
	if r == nil {
		respondNotFoundResort(c, id)
		return
	}
	data, err := services.ExportResortCSV(r, h.Sync.BaseYear(r))
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.csv"`, id))
	c.Data(http.StatusOK, "text/csv", data)
}
