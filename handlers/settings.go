// File: clubpoints/handlers/settings.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"clubpoints/models"
	"clubpoints/utils"
)

// ListGlobalHolidaysHandler handles GET /api/settings/holidays.
func (h *EditorHandler) ListGlobalHolidaysHandler(c *gin.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.requireDoc(c) {
		return
	}
	calendar := h.State.Doc.GlobalHolidays
	if calendar == nil {
		calendar = map[string]map[string]*models.HolidayWindow{}
	}
	c.JSON(http.StatusOK, gin.H{
		"holidays": calendar,
		"names":    h.State.Doc.GlobalHolidayNames(),
	})
}

// UpsertGlobalHolidayHandler handles
// PUT /api/settings/holidays/:year/:name. Type defaults to "other" and
// regions to ["global"].
func (h *EditorHandler) UpsertGlobalHolidayHandler(c *gin.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.requireDoc(c) {
		return
	}
	var req struct {
		StartDate string   `json:"start_date"`
		EndDate   string   `json:"end_date"`
		Type      string   `json:"type"`
		Regions   []string `json:"regions"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.StartDate == "" || req.EndDate == "" {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", "start_date and end_date are required")
		return
	}
	if req.Type == "" {
		req.Type = "other"
	}
	if len(req.Regions) == 0 {
		req.Regions = []string{"global"}
	}
	year, name := c.Param("year"), c.Param("name")
	doc := h.State.Doc
	if doc.GlobalHolidays == nil {
		doc.GlobalHolidays = map[string]map[string]*models.HolidayWindow{}
	}
	if doc.GlobalHolidays[year] == nil {
		doc.GlobalHolidays[year] = map[string]*models.HolidayWindow{}
	}
	doc.GlobalHolidays[year][name] = &models.HolidayWindow{
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Type:      req.Type,
		Regions:   req.Regions,
	}
	c.JSON(http.StatusOK, gin.H{"year": year, "name": name})
}

// DeleteGlobalHolidayHandler handles
// DELETE /api/settings/holidays/:year/:name.
func (h *EditorHandler) DeleteGlobalHolidayHandler(c *gin.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.requireDoc(c) {
		return
	}
	year, name := c.Param("year"), c.Param("name")
	byName := h.State.Doc.GlobalHolidays[year]
	if _, ok := byName[name]; !ok {
		utils.JSONError(c, http.StatusNotFound, "Global holiday not found", name+" in "+year)
		return
	}
	delete(byName, name)
	if len(byName) == 0 {
		delete(h.State.Doc.GlobalHolidays, year)
	}
	c.JSON(http.StatusOK, gin.H{"deleted": name, "year": year})
}

// MaintenanceRatesHandler handles GET /api/settings/maintenance.
func (h *EditorHandler) MaintenanceRatesHandler(c *gin.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.requireDoc(c) {
		return
	}
	rates := map[string]float64{}
	if cfg := h.State.Doc.Configuration; cfg != nil && cfg.MaintenanceRates != nil {
		rates = cfg.MaintenanceRates
	}
	c.JSON(http.StatusOK, gin.H{"maintenance_rates": rates})
}

// SetMaintenanceRateHandler handles PUT /api/settings/maintenance/:year.
func (h *EditorHandler) SetMaintenanceRateHandler(c *gin.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.requireDoc(c) {
		return
	}
	var req struct {
		Rate *float64 `json:"rate"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Rate == nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", "rate is required")
		return
	}
	doc := h.State.Doc
	if doc.Configuration == nil {
		doc.Configuration = &models.Configuration{}
	}
	if doc.Configuration.MaintenanceRates == nil {
		doc.Configuration.MaintenanceRates = map[string]float64{}
	}
	year := c.Param("year")
	doc.Configuration.MaintenanceRates[year] = *req.Rate
	c.JSON(http.StatusOK, gin.H{"year": year, "rate": *req.Rate})
}

// DeleteMaintenanceRateHandler handles
// DELETE /api/settings/maintenance/:year.
func (h *EditorHandler) DeleteMaintenanceRateHandler(c *gin.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.requireDoc(c) {
		return
	}
	year := c.Param("year")
	cfg := h.State.Doc.Configuration
	if cfg == nil || cfg.MaintenanceRates == nil {
		utils.JSONError(c, http.StatusNotFound, "Maintenance rate not found", year)
		return
	}
	if _, ok := cfg.MaintenanceRates[year]; !ok {
		utils.JSONError(c, http.StatusNotFound, "Maintenance rate not found", year)
		return
	}
	delete(cfg.MaintenanceRates, year)
	c.JSON(http.StatusOK, gin.H{"deleted": year})
}
