package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"clubpoints/services"
	"clubpoints/store"
)

const uploadBody = `{
	"schema_version": "2.0.0",
	"resorts": [
		{
			"id": "sunset-bay",
			"display_name": "Sunset Bay",
			"code": "SB",
			"resort_name": "Sunset Bay Resort",
			"timezone": "America/New_York",
			"years": {
				"2025": {
					"seasons": [{
						"name": "Low",
						"periods": [{"start": "2025-01-01", "end": "2025-12-31"}],
						"day_categories": {
							"all": {"day_pattern": ["Mon","Tue","Wed","Thu","Fri","Sat","Sun"], "room_points": {"studio": 10}}
						}
					}],
					"holidays": []
				},
				"2026": {
					"seasons": [{
						"name": "Low",
						"periods": [{"start": "2026-01-01", "end": "2026-12-31"}],
						"day_categories": {
							"all": {"day_pattern": ["Mon","Tue","Wed","Thu","Fri","Sat","Sun"], "room_points": {"studio": 1}}
						}
					}],
					"holidays": []
				}
			}
		}
	]
}`

func newTestRouter(t *testing.T) (*gin.Engine, *EditorHandler) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	fileStore := store.NewFileStore()
	state := services.NewSession(nil, filepath.Join(t.TempDir(), "data_v2.json"))
	h := NewEditorHandler(
		state,
		fileStore,
		&services.DefaultSessionService{Store: fileStore},
		&services.DefaultSyncService{ConfiguredBaseYear: "2025"},
		&services.DefaultRenameService{},
		&services.DefaultResortService{},
	)

	router := gin.New()
	registerTestRoutes(router, h)
	return router, h
}

// registerTestRoutes mirrors the production route table without the
// middleware stack.
func registerTestRoutes(r *gin.Engine, h *EditorHandler) {
	r.POST("/api/document/upload", h.UploadDocumentHandler)
	r.POST("/api/document/save", h.SaveDocumentHandler)
	r.GET("/api/document/years", h.DocumentYearsHandler)
	r.GET("/api/resorts", h.ListResortsHandler)
	r.POST("/api/session/select/:id", h.SelectResortHandler)
	r.POST("/api/session/commit", h.CommitHandler)
	r.POST("/api/session/stay", h.StayHandler)
	r.POST("/api/resorts", h.CreateResortHandler)
	r.DELETE("/api/resorts/:id", h.DeleteResortHandler)
	r.POST("/api/resorts/:id/rooms", h.AddRoomTypeHandler)
	r.GET("/api/resorts/:id/validate", h.ValidateResortHandler)
	r.PUT("/api/settings/holidays/:year/:name", h.UpsertGlobalHolidayHandler)
}

func doJSON(t *testing.T, router *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var parsed map[string]any
	if w.Body.Len() > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &parsed); err != nil {
			t.Fatalf("%s %s: response is not JSON: %v\n%s", method, path, err, w.Body.String())
		}
	}
	return w, parsed
}

func TestUploadListEditCommitFlow(t *testing.T) {
	router, h := newTestRouter(t)

	// No document yet: listing conflicts.
	if w, _ := doJSON(t, router, http.MethodGet, "/api/resorts", ""); w.Code != http.StatusConflict {
		t.Fatalf("list before upload = %d, want 409", w.Code)
	}

	if w, _ := doJSON(t, router, http.MethodPost, "/api/document/upload", uploadBody); w.Code != http.StatusOK {
		t.Fatalf("upload = %d", w.Code)
	}

	w, resp := doJSON(t, router, http.MethodGet, "/api/resorts", "")
	if w.Code != http.StatusOK {
		t.Fatalf("list = %d", w.Code)
	}
	if n := len(resp["resorts"].([]any)); n != 1 {
		t.Fatalf("resort count = %d", n)
	}

	if w, _ := doJSON(t, router, http.MethodPost, "/api/session/select/sunset-bay", ""); w.Code != http.StatusOK {
		t.Fatalf("select = %d", w.Code)
	}

	// Structural edit runs the sync passes: the new room appears in both
	// years of the working copy.
	if w, _ := doJSON(t, router, http.MethodPost, "/api/resorts/sunset-bay/rooms", `{"name":"one_bed"}`); w.Code != http.StatusCreated {
		t.Fatalf("add room = %d", w.Code)
	}
	wc := h.State.WorkingResorts["sunset-bay"]
	if wc == nil {
		t.Fatal("edit did not create a working copy")
	}
	for _, year := range []string{"2025", "2026"} {
		cat := wc.Years[year].Seasons[0].DayCategories["all"]
		if _, ok := cat.RoomPoints["one_bed"]; !ok {
			t.Errorf("year %s missing synced room", year)
		}
	}
	// The committed record is untouched until commit.
	committed := h.State.Doc.FindResort("sunset-bay")
	if _, ok := committed.Years["2025"].Seasons[0].DayCategories["all"].RoomPoints["one_bed"]; ok {
		t.Error("edit leaked into the committed record")
	}

	if w, _ := doJSON(t, router, http.MethodPost, "/api/session/commit", ""); w.Code != http.StatusOK {
		t.Fatalf("commit = %d", w.Code)
	}
	if _, ok := committed.Years["2025"].Seasons[0].DayCategories["all"].RoomPoints["one_bed"]; !ok {
		t.Error("commit did not apply the edit")
	}
}

func TestSelectAwayFromDirtyResortBlocks(t *testing.T) {
	router, h := newTestRouter(t)
	doJSON(t, router, http.MethodPost, "/api/document/upload", uploadBody)
	doJSON(t, router, http.MethodPost, "/api/resorts", `{"name":"Palm Cove"}`)

	// Creating selects palm-cove; move back and dirty sunset-bay.
	doJSON(t, router, http.MethodPost, "/api/session/select/sunset-bay", "")
	doJSON(t, router, http.MethodPost, "/api/resorts/sunset-bay/rooms", `{"name":"penthouse"}`)

	w, resp := doJSON(t, router, http.MethodPost, "/api/session/select/palm-cove", "")
	if w.Code != http.StatusConflict {
		t.Fatalf("select away from dirty resort = %d, want 409", w.Code)
	}
	if resp["dirty_resort_id"] != "sunset-bay" {
		t.Errorf("blocked response = %v", resp)
	}

	doJSON(t, router, http.MethodPost, "/api/session/stay", "")
	if h.State.CurrentResortID != "sunset-bay" || h.State.PendingResortID != "" {
		t.Errorf("stay state: current=%q pending=%q", h.State.CurrentResortID, h.State.PendingResortID)
	}
}

func TestValidateEndpointUsesWorkingCopy(t *testing.T) {
	router, _ := newTestRouter(t)
	doJSON(t, router, http.MethodPost, "/api/document/upload", uploadBody)
	doJSON(t, router, http.MethodPut, "/api/settings/holidays/2025/christmas",
		`{"start_date":"2025-12-24","end_date":"2025-12-26"}`)

	w, resp := doJSON(t, router, http.MethodGet, "/api/resorts/sunset-bay/validate", "")
	if w.Code != http.StatusOK {
		t.Fatalf("validate = %d", w.Code)
	}
	if resp["valid"] != true {
		t.Errorf("validate response = %v", resp)
	}

	if w, _ := doJSON(t, router, http.MethodGet, "/api/resorts/nope/validate", ""); w.Code != http.StatusNotFound {
		t.Errorf("validate unknown resort = %d, want 404", w.Code)
	}
}

func TestDeleteIsArmedPerResort(t *testing.T) {
	router, h := newTestRouter(t)
	doJSON(t, router, http.MethodPost, "/api/document/upload", uploadBody)
	doJSON(t, router, http.MethodPost, "/api/resorts", `{"name":"Palm Cove"}`)

	// Arm sunset-bay, then hit palm-cove: the first palm-cove call must
	// re-arm, not delete.
	if _, resp := doJSON(t, router, http.MethodDelete, "/api/resorts/sunset-bay", ""); resp["armed"] != true {
		t.Fatalf("first delete call did not arm: %v", resp)
	}
	w, resp := doJSON(t, router, http.MethodDelete, "/api/resorts/palm-cove", "")
	if w.Code != http.StatusOK || resp["armed"] != true {
		t.Fatalf("delete of a different resort = %d %v, want re-arm", w.Code, resp)
	}
	if h.State.Doc.FindResort("palm-cove") == nil {
		t.Fatal("palm-cove was deleted while sunset-bay was armed")
	}

	// The second call for the now-armed resort deletes it.
	if _, resp := doJSON(t, router, http.MethodDelete, "/api/resorts/palm-cove", ""); resp["deleted"] != "palm-cove" {
		t.Fatalf("repeat delete did not confirm: %v", resp)
	}
	if h.State.Doc.FindResort("palm-cove") != nil {
		t.Fatal("confirmed delete left the resort in place")
	}
	if h.State.Doc.FindResort("sunset-bay") == nil {
		t.Fatal("unrelated resort removed")
	}
}

func TestUploadRejectsInvalidSchema(t *testing.T) {
	router, _ := newTestRouter(t)

	w, _ := doJSON(t, router, http.MethodPost, "/api/document/upload", `{"resorts":[]}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("invalid upload = %d, want 400", w.Code)
	}
}
