// File: clubpoints/handlers/holiday.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"clubpoints/models"
	"clubpoints/utils"
)

// AddHolidayHandler handles POST /api/resorts/:id/holidays. The holiday is
// appended to every year that does not already carry the reference, then
// each year's list is re-sorted chronologically.
func (h *EditorHandler) AddHolidayHandler(c *gin.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.requireDoc(c) {
		return
	}
	var req struct {
		Name            string `json:"name"`
		GlobalReference string `json:"global_reference"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}
	wc := h.working(c, c.Param("id"))
	if wc == nil {
		return
	}
	if err := h.Sync.AddHoliday(wc, req.Name, req.GlobalReference); err != nil {
		respondError(c, err)
		return
	}
	h.Sync.SortHolidaysChronologically(wc, h.State.Doc)
	h.resync(wc)
	c.JSON(http.StatusCreated, gin.H{"name": req.Name})
}

// DeleteHolidayHandler handles DELETE /api/resorts/:id/holidays/:ref,
// removing the reference from every year.
func (h *EditorHandler) DeleteHolidayHandler(c *gin.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.requireDoc(c) {
		return
	}
	wc := h.working(c, c.Param("id"))
	if wc == nil {
		return
	}
	ref := c.Param("ref")
	if !h.Sync.DeleteHoliday(wc, ref) {
		utils.JSONError(c, http.StatusNotFound, "Holiday not found", ref)
		return
	}
	h.resync(wc)
	c.JSON(http.StatusOK, gin.H{"deleted": ref})
}

// RenameHolidayHandler handles PUT /api/resorts/:id/holidays/:ref/rename,
// rewriting name and global reference together.
func (h *EditorHandler) RenameHolidayHandler(c *gin.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.requireDoc(c) {
		return
	}
	var req struct {
		NewName string `json:"new_name"`
		NewRef  string `json:"new_ref"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}
	wc := h.working(c, c.Param("id"))
	if wc == nil {
		return
	}
	changed, err := h.Rename.RenameHoliday(wc, c.Param("ref"), req.NewName, req.NewRef)
	if err != nil {
		respondError(c, err)
		return
	}
	h.Sync.SortHolidaysChronologically(wc, h.State.Doc)
	h.resync(wc)
	c.JSON(http.StatusOK, gin.H{"changed": changed})
}

// UpdateHolidayPointsHandler handles
// PUT /api/resorts/:id/holidays/:ref/points against the base year; the
// sync pass copies the table to the other years.
func (h *EditorHandler) UpdateHolidayPointsHandler(c *gin.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.requireDoc(c) {
		return
	}
	var req struct {
		RoomPoints map[string]int `json:"room_points"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.RoomPoints == nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", "room_points is required")
		return
	}
	wc := h.working(c, c.Param("id"))
	if wc == nil {
		return
	}
	ref := c.Param("ref")
	holiday := findHoliday(wc, h.Sync.BaseYear(wc), ref)
	if holiday == nil {
		utils.JSONError(c, http.StatusNotFound, "Holiday not found", ref)
		return
	}
	holiday.RoomPoints = models.ClonePoints(req.RoomPoints)
	h.resync(wc)
	c.JSON(http.StatusOK, gin.H{"holiday": ref, "room_points": holiday.RoomPoints})
}

// SortHolidaysHandler handles POST /api/resorts/:id/sort-holidays.
func (h *EditorHandler) SortHolidaysHandler(c *gin.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.requireDoc(c) {
		return
	}
	wc := h.working(c, c.Param("id"))
	if wc == nil {
		return
	}
	h.Sync.SortHolidaysChronologically(wc, h.State.Doc)
	c.JSON(http.StatusOK, gin.H{"sorted": true})
}

// findHoliday locates a holiday by reference within one year, nil when
// absent.
func findHoliday(r *models.Resort, year, ref string) *models.Holiday {
	yd := r.Years[year]
	if yd == nil {
		return nil
	}
	for _, holiday := range yd.Holidays {
		if holiday.Key() == ref {
			return holiday
		}
	}
	return nil
}
