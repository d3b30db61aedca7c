// File: clubpoints/routes/routes.go
package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"clubpoints/handlers"
	"clubpoints/middleware"
)

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "clubpoints data service"})
	})
}

// RegisterDocumentRoutes sets up document-level endpoints.
func RegisterDocumentRoutes(r *gin.Engine, h *handlers.EditorHandler) {
	api := r.Group("/api/document")
	{
		api.GET("/download", h.DownloadDocumentHandler)
		api.GET("/years", h.DocumentYearsHandler)

		api.Use(middleware.AdminAuth())
		api.POST("/upload", h.UploadDocumentHandler)
		api.POST("/save", h.SaveDocumentHandler)
		api.POST("/verify", h.VerifyDocumentHandler)
		api.POST("/merge", h.MergeDocumentHandler)
	}
}

// RegisterResortRoutes sets up resort lifecycle and editing endpoints.
// Every editing route mutates the resort's working copy only; changes
// reach the committed document through the session commit endpoint.
func RegisterResortRoutes(r *gin.Engine, h *handlers.EditorHandler) {
	api := r.Group("/api/resorts")
	{
		api.GET("", h.ListResortsHandler)
		api.GET("/:id/export", h.ExportResortHandler)
		api.GET("/:id/export.csv", h.ExportResortCSVHandler)
		api.GET("/:id/validate", h.ValidateResortHandler)

		api.Use(middleware.AdminAuth())
		api.POST("", h.CreateResortHandler)
		api.POST("/:id/clone", h.CloneResortHandler)
		api.DELETE("/:id", h.DeleteResortHandler)
		api.POST("/:id/delete/cancel", h.CancelDeleteResortHandler)
		api.PATCH("/:id", h.UpdateResortHandler)
		api.POST("/:id/import.csv", h.ImportResortCSVHandler)

		api.POST("/:id/seasons", h.AddSeasonHandler)
		api.DELETE("/:id/seasons/:name", h.DeleteSeasonHandler)
		api.PUT("/:id/seasons/:name/rename", h.RenameSeasonHandler)
		api.PUT("/:id/seasons/:name/periods", h.UpdateSeasonPeriodsHandler)
		api.PUT("/:id/seasons/:name/categories/:category", h.UpdateDayCategoryHandler)
		api.DELETE("/:id/seasons/:name/categories/:category", h.DeleteDayCategoryHandler)

		api.POST("/:id/rooms", h.AddRoomTypeHandler)
		api.DELETE("/:id/rooms/:name", h.DeleteRoomTypeHandler)
		api.PUT("/:id/rooms/:name/rename", h.RenameRoomTypeHandler)

		api.POST("/:id/holidays", h.AddHolidayHandler)
		api.DELETE("/:id/holidays/:ref", h.DeleteHolidayHandler)
		api.PUT("/:id/holidays/:ref/rename", h.RenameHolidayHandler)
		api.PUT("/:id/holidays/:ref/points", h.UpdateHolidayPointsHandler)
		api.POST("/:id/sort-holidays", h.SortHolidaysHandler)
	}
}

// RegisterSessionRoutes sets up the working-copy lifecycle endpoints.
func RegisterSessionRoutes(r *gin.Engine, h *handlers.EditorHandler) {
	api := r.Group("/api/session")
	{
		api.GET("/status", h.SessionStatusHandler)
		api.POST("/select/:id", h.SelectResortHandler)

		api.Use(middleware.AdminAuth())
		api.POST("/commit", h.CommitHandler)
		api.POST("/discard", h.DiscardHandler)
		api.POST("/stay", h.StayHandler)
	}
}

// RegisterSettingsRoutes sets up the global calendar and configuration
// endpoints.
func RegisterSettingsRoutes(r *gin.Engine, h *handlers.EditorHandler) {
	api := r.Group("/api/settings")
	{
		api.GET("/holidays", h.ListGlobalHolidaysHandler)
		api.GET("/maintenance", h.MaintenanceRatesHandler)

		api.Use(middleware.AdminAuth())
		api.PUT("/holidays/:year/:name", h.UpsertGlobalHolidayHandler)
		api.DELETE("/holidays/:year/:name", h.DeleteGlobalHolidayHandler)
		api.PUT("/maintenance/:year", h.SetMaintenanceRateHandler)
		api.DELETE("/maintenance/:year", h.DeleteMaintenanceRateHandler)
	}
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, h *handlers.EditorHandler) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "X-Admin-Password"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterDocumentRoutes(r, h)
	RegisterResortRoutes(r, h)
	RegisterSessionRoutes(r, h)
	RegisterSettingsRoutes(r, h)
}
