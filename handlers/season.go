// File: clubpoints/handlers/season.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"clubpoints/models"
	"clubpoints/utils"
)

// AddSeasonHandler handles POST /api/resorts/:id/seasons. The season is
// created in every year of the document.
func (h *EditorHandler) AddSeasonHandler(c *gin.Context) {
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
	if err := h.Sync.AddSeason(wc, req.Name, h.State.Doc.Years()); err != nil {
		respondError(c, err)
		return
	}
	h.resync(wc)
	c.JSON(http.StatusCreated, gin.H{"seasons": wc.SeasonNames()})
}

// DeleteSeasonHandler handles DELETE /api/resorts/:id/seasons/:name,
// removing the season from every year.
func (h *EditorHandler) DeleteSeasonHandler(c *gin.Context) {
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
	if !h.Sync.DeleteSeason(wc, name) {
		utils.JSONError(c, http.StatusNotFound, "Season not found", name)
		return
	}
	h.resync(wc)
	c.JSON(http.StatusOK, gin.H{"seasons": wc.SeasonNames()})
}

// RenameSeasonHandler handles PUT /api/resorts/:id/seasons/:name/rename.
func (h *EditorHandler) RenameSeasonHandler(c *gin.Context) {
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
	changed, err := h.Rename.RenameSeason(wc, c.Param("name"), req.NewName)
	if err != nil {
		respondError(c, err)
		return
	}
	h.resync(wc)
	c.JSON(http.StatusOK, gin.H{"changed": changed, "seasons": wc.SeasonNames()})
}

// UpdateSeasonPeriodsHandler handles
// PUT /api/resorts/:id/seasons/:name/periods. Periods are per-year and
// never synchronized across years.
func (h *EditorHandler) UpdateSeasonPeriodsHandler(c *gin.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.requireDoc(c) {
		return
	}
	var req struct {
		Year    string             `json:"year"`
		Periods []models.DateRange `json:"periods"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Year == "" {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", "year and periods are required")
		return
	}
	wc := h.working(c, c.Param("id"))
	if wc == nil {
		return
	}
	name := c.Param("name")
	season := findSeason(wc, req.Year, name)
	if season == nil {
		utils.JSONError(c, http.StatusNotFound, "Season not found", name+" in "+req.Year)
		return
	}
	season.Periods = append([]models.DateRange{}, req.Periods...)
	c.JSON(http.StatusOK, gin.H{"season": name, "year": req.Year, "periods": season.Periods})
}

// UpdateDayCategoryHandler handles
// PUT /api/resorts/:id/seasons/:name/categories/:category, creating or
// replacing the category in the base year. Other years pick the change up
// through the sync pass that follows.
func (h *EditorHandler) UpdateDayCategoryHandler(c *gin.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.requireDoc(c) {
		return
	}
	var req struct {
		DayPattern []string       `json:"day_pattern"`
		RoomPoints map[string]int `json:"room_points"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}
	wc := h.working(c, c.Param("id"))
	if wc == nil {
		return
	}
	name := c.Param("name")
	season := findSeason(wc, h.Sync.BaseYear(wc), name)
	if season == nil {
		utils.JSONError(c, http.StatusNotFound, "Season not found", name)
		return
	}
	if season.DayCategories == nil {
		season.DayCategories = map[string]*models.DayCategory{}
	}
	cat := season.DayCategories[c.Param("category")]
	if cat == nil {
		cat = &models.DayCategory{}
		season.DayCategories[c.Param("category")] = cat
	}
	if req.DayPattern != nil {
		cat.DayPattern = append([]string{}, req.DayPattern...)
	}
	if req.RoomPoints != nil {
		cat.RoomPoints = models.ClonePoints(req.RoomPoints)
	}
	h.resync(wc)
	c.JSON(http.StatusOK, gin.H{"season": name, "category": c.Param("category")})
}

// DeleteDayCategoryHandler handles
// DELETE /api/resorts/:id/seasons/:name/categories/:category in the base
// year.
func (h *EditorHandler) DeleteDayCategoryHandler(c *gin.Context) {
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
	season := findSeason(wc, h.Sync.BaseYear(wc), name)
	if season == nil {
		utils.JSONError(c, http.StatusNotFound, "Season not found", name)
		return
	}
	key := c.Param("category")
	if _, ok := season.DayCategories[key]; !ok {
		utils.JSONError(c, http.StatusNotFound, "Day category not found", key)
		return
	}
	delete(season.DayCategories, key)
	h.resync(wc)
	c.JSON(http.StatusOK, gin.H{"season": name, "deleted": key})
}

// findSeason locates a season by name within one year, nil when absent.
func findSeason(r *models.Resort, year, name string) *models.Season {
	yd := r.Years[year]
	if yd == nil {
		return nil
	}
	for _, s := range yd.Seasons {
		if s.Name == name {
			return s
		}
	}
	return nil
}
