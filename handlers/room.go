// File: clubpoints/handlers/room.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"clubpoints/utils"
)

// AddRoomTypeHandler handles POST /api/resorts/:id/rooms. The new room is
// seeded at zero points in the base year's seasons and every year's
// holidays; the sync pass propagates it.
func (h *EditorHandler) AddRoomTypeHandler(c *gin.Context) {
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
	wc := h.working(c, c.Param("id"))
	if wc == nil {
		return
	}
	if err := h.Sync.AddRoomType(wc, req.Name, h.Sync.BaseYear(wc)); err != nil {
		respondError(c, err)
		return
	}
	h.resync(wc)
	c.JSON(http.StatusCreated, gin.H{"rooms": wc.RoomTypes()})
}

// DeleteRoomTypeHandler handles DELETE /api/resorts/:id/rooms/:name,
// sweeping the room out of every point table.
func (h *EditorHandler) DeleteRoomTypeHandler(c *gin.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.requireDoc(c) {
		return
	}
	wc := h.working(c, c.Param("id"))
	if wc == nil {
		return
	}
	name := c.Param("name")
	found := false
	for _, room := range wc.RoomTypes() {
		if room == name {
			found = true
			break
		}
	}
	if !found {
		utils.JSONError(c, http.StatusNotFound, "Room type not found", name)
		return
	}
	h.Sync.DeleteRoomType(wc, name)
	h.resync(wc)
	c.JSON(http.StatusOK, gin.H{"rooms": wc.RoomTypes()})
}

// RenameRoomTypeHandler handles PUT /api/resorts/:id/rooms/:name/rename.
func (h *EditorHandler) RenameRoomTypeHandler(c *gin.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.requireDoc(c) {
		return
	}
	var req struct {
		NewName string `json:"new_name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}
	wc := h.working(c, c.Param("id"))
	if wc == nil {
		return
	}
	changed, err := h.Rename.RenameRoomType(wc, c.Param("name"), req.NewName)
	if err != nil {
		respondError(c, err)
		return
	}
	h.resync(wc)
	c.JSON(http.StatusOK, gin.H{"changed": changed, "rooms": wc.RoomTypes()})
}
