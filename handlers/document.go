// File: clubpoints/handlers/document.go
package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"clubpoints/utils"
)

// UploadDocumentHandler handles POST /api/document/upload. The raw JSON
// body replaces the session's document and resets all working-copy state.
func (h *EditorHandler) UploadDocumentHandler(c *gin.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()
	logger := utils.GetLogger()

	raw, err := c.GetRawData()
	if err != nil || len(raw) == 0 {
		utils.JSONError(c, http.StatusBadRequest, "Empty upload", "Request body must be a JSON document")
		return
	}
	doc, err := h.Store.ParseUpload(raw)
	if err != nil {
		respondError(c, err)
		return
	}
	h.State.ResetForNewDocument(doc)
	logger.Info("Document uploaded", zap.Int("resorts", len(doc.Resorts)))
	c.JSON(http.StatusOK, gin.H{
		"resorts": len(doc.Resorts),
		"years":   doc.Years(),
	})
}

// DownloadDocumentHandler handles GET /api/document/download. Returns the
// in-memory document, pending working-copy edits excluded.
func (h *EditorHandler) DownloadDocumentHandler(c *gin.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.requireDoc(c) {
		return
	}
	data, err := json.MarshalIndent(h.State.Doc, "", "  ")
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="data_v2.json"`)
	c.Data(http.StatusOK, "application/json", data)
}

// SaveDocumentHandler handles POST /api/document/save, persisting to the
// configured data file.
func (h *EditorHandler) SaveDocumentHandler(c *gin.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.requireDoc(c) {
		return
	}
	if err := h.Store.Save(h.State.Doc, h.State.DataFile); err != nil {
		respondError(c, err)
		return
	}
	h.State.LastSaveTime = time.Now()
	c.JSON(http.StatusOK, gin.H{"saved": h.State.DataFile})
}

// VerifyDocumentHandler handles POST /api/document/verify. The body is a
// previously downloaded file; a structural match marks the session verified.
func (h *EditorHandler) VerifyDocumentHandler(c *gin.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.requireDoc(c) {
		return
	}
	raw, err := c.GetRawData()
	if err != nil || len(raw) == 0 {
		utils.JSONError(c, http.StatusBadRequest, "Empty upload", "Request body must be a JSON document")
		return
	}
	match, err := h.Store.Verify(h.State.Doc, raw)
	if err != nil {
		respondError(c, err)
		return
	}
	h.State.Verified = match
	c.JSON(http.StatusOK, gin.H{"match": match})
}

// MergeDocumentHandler handles POST /api/document/merge: selected resorts
// from an uploaded document are appended when their id is not taken.
func (h *EditorHandler) MergeDocumentHandler(c *gin.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.requireDoc(c) {
		return
	}
	var req struct {
		Document    json.RawMessage `json:"document"`
		SelectedIDs []string        `json:"selected_ids"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}
	incoming, err := h.Store.ParseUpload(req.Document)
	if err != nil {
		respondError(c, err)
		return
	}
	merged, skipped := h.Store.Merge(h.State.Doc, incoming, req.SelectedIDs)
	c.JSON(http.StatusOK, gin.H{
		"merged":  merged,
		"skipped": skipped,
	})
}

// DocumentYearsHandler handles GET /api/document/years.
func (h *EditorHandler) DocumentYearsHandler(c *gin.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.requireDoc(c) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"years": h.State.Doc.Years()})
}
