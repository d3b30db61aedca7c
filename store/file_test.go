package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"clubpoints/models"
)

func storeDoc() *models.RootDocument {
	return &models.RootDocument{
		SchemaVersion: "2.0.0",
		Resorts: []*models.Resort{{
			ID:          "sunset-bay",
			DisplayName: "Sunset Bay",
			Code:        "SB",
			Timezone:    "America/New_York",
			Years: map[string]*models.YearData{
				"2025": {
					Seasons: []*models.Season{{
						Name:    "Low",
						Periods: []models.DateRange{{Start: "2025-01-01", End: "2025-12-31"}},
						DayCategories: map[string]*models.DayCategory{
							"all": {DayPattern: []string{"Mon"}, RoomPoints: map[string]int{"studio": 10}},
						},
					}},
					Holidays: []*models.Holiday{{
						Name: "Christmas", GlobalReference: "christmas",
						RoomPoints: map[string]int{"studio": 40},
					}},
				},
			},
		}},
		GlobalHolidays: map[string]map[string]*models.HolidayWindow{
			"2025": {"christmas": {StartDate: "2025-12-24", EndDate: "2025-12-26", Type: "fixed", Regions: []string{"global"}}},
		},
		Configuration: &models.Configuration{MaintenanceRates: map[string]float64{"2025": 7.5}},
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := NewFileStore()
	path := filepath.Join(t.TempDir(), "data_v2.json")
	doc := storeDoc()

	if err := s.Save(doc, path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temp file left behind after save")
	}

	loaded, err := s.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded == nil {
		t.Fatal("Load returned nil for a valid file")
	}
	if !reflect.DeepEqual(loaded, doc) {
		t.Errorf("round trip changed the document:\nsaved  %+v\nloaded %+v", doc, loaded)
	}
}

func TestLoadMissingOrInvalidIsNilNil(t *testing.T) {
	s := NewFileStore()
	dir := t.TempDir()

	tests := []struct {
		name    string
		prepare func(path string)
	}{
		{"missing file", func(string) {}},
		{"not json", func(path string) { os.WriteFile(path, []byte("not json at all"), 0o644) }},
		{"missing schema_version", func(path string) { os.WriteFile(path, []byte(`{"resorts":[]}`), 0o644) }},
		{"missing resorts", func(path string) { os.WriteFile(path, []byte(`{"schema_version":"2.0.0"}`), 0o644) }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(dir, tc.name+".json")
			tc.prepare(path)
			doc, err := s.Load(path)
			if err != nil {
				t.Fatalf("Load must never surface an error, got %v", err)
			}
			if doc != nil {
				t.Fatalf("Load = %+v, want nil", doc)
			}
		})
	}
}

func TestLoadAcceptsEmptyResortsAndNumericVersion(t *testing.T) {
	s := NewFileStore()
	path := filepath.Join(t.TempDir(), "data.json")
	os.WriteFile(path, []byte(`{"schema_version":2,"resorts":[]}`), 0o644)

	doc, err := s.Load(path)
	if err != nil || doc == nil {
		t.Fatalf("Load = (%v, %v), want a document", doc, err)
	}
	if len(doc.Resorts) != 0 {
		t.Errorf("resorts = %d, want 0", len(doc.Resorts))
	}
}

func TestParseUploadRejectsBadSchemas(t *testing.T) {
	s := NewFileStore()
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", "nope"},
		{"no schema_version", `{"resorts":[{"id":"a"}]}`},
		{"empty resorts", `{"schema_version":"2.0.0","resorts":[]}`},
		{"no resorts key", `{"schema_version":"2.0.0"}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := s.ParseUpload([]byte(tc.raw)); !errors.Is(err, models.ErrInvalidSchema) {
				t.Errorf("ParseUpload error = %v, want ErrInvalidSchema", err)
			}
		})
	}

	doc, err := s.ParseUpload([]byte(`{"schema_version":"2.0.0","resorts":[{"id":"a","display_name":"A"}]}`))
	if err != nil {
		t.Fatalf("valid upload rejected: %v", err)
	}
	if doc.Resorts[0].ID != "a" {
		t.Errorf("parsed resort = %+v", doc.Resorts[0])
	}
}

func TestParseUploadNormalizesNullYears(t *testing.T) {
	s := NewFileStore()

	doc, err := s.ParseUpload([]byte(`{
		"schema_version": "2.0.0",
		"resorts": [{"id": "a", "display_name": "A", "years": {"2025": null, "2026": {"seasons": null}}}]
	}`))
	if err != nil {
		t.Fatalf("ParseUpload: %v", err)
	}
	for _, year := range []string{"2025", "2026"} {
		yd := doc.Resorts[0].Years[year]
		if yd == nil {
			t.Fatalf("year %s is still nil after parsing", year)
		}
		if yd.Seasons == nil || yd.Holidays == nil {
			t.Errorf("year %s lists not initialized: %+v", year, yd)
		}
	}
}

func TestLoadNormalizesNullYears(t *testing.T) {
	s := NewFileStore()
	path := filepath.Join(t.TempDir(), "data.json")
	os.WriteFile(path, []byte(`{"schema_version":"2.0.0","resorts":[{"id":"a","years":{"2025":null}}]}`), 0o644)

	doc, err := s.Load(path)
	if err != nil || doc == nil {
		t.Fatalf("Load = (%v, %v), want a document", doc, err)
	}
	if yd := doc.Resorts[0].Years["2025"]; yd == nil || yd.Seasons == nil {
		t.Errorf("null year entry survived loading: %+v", yd)
	}
}

func TestVerifyStructuralEquality(t *testing.T) {
	s := NewFileStore()
	doc := storeDoc()

	// Round-trip through a generic tree: same content, different key order.
	raw, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var tree map[string]any
	if err := json.Unmarshal(raw, &tree); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	uploaded, err := json.MarshalIndent(tree, "", "    ")
	if err != nil {
		t.Fatalf("re-marshal: %v", err)
	}
	match, err := s.Verify(doc, uploaded)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !match {
		t.Error("reordered but equivalent document must verify")
	}

	doc.Resorts[0].DisplayName = "Changed"
	match, err = s.Verify(doc, uploaded)
	if err != nil {
		t.Fatalf("Verify after edit: %v", err)
	}
	if match {
		t.Error("diverged document must not verify")
	}

	if _, err := s.Verify(doc, []byte("broken")); !errors.Is(err, models.ErrInvalidSchema) {
		t.Errorf("Verify of invalid JSON error = %v, want ErrInvalidSchema", err)
	}
}

func TestMergeSkipsDuplicatesAndUnselected(t *testing.T) {
	s := NewFileStore()
	doc := storeDoc()
	incoming := &models.RootDocument{
		SchemaVersion: "2.0.0",
		Resorts: []*models.Resort{
			{ID: "sunset-bay", DisplayName: "Sunset Bay Copy"},
			{ID: "palm-cove", DisplayName: "Palm Cove"},
			{ID: "ignored", DisplayName: "Ignored"},
		},
	}

	merged, skipped := s.Merge(doc, incoming, []string{"sunset-bay", "palm-cove", "no-such-id"})

	if merged != 1 {
		t.Errorf("merged = %d, want 1", merged)
	}
	if len(skipped) != 1 || skipped[0] != "Sunset Bay Copy (sunset-bay)" {
		t.Errorf("skipped = %v", skipped)
	}
	if doc.FindResort("palm-cove") == nil {
		t.Error("selected new resort was not merged")
	}
	if doc.FindResort("ignored") != nil {
		t.Error("unselected resort was merged")
	}
	// Deep copy on merge: the incoming tree stays independent.
	doc.FindResort("palm-cove").DisplayName = "Edited"
	if incoming.Resorts[1].DisplayName == "Edited" {
		t.Error("merge aliased the incoming resort")
	}
}

func TestResortExportIsMergeable(t *testing.T) {
	s := NewFileStore()
	doc := storeDoc()

	export := ResortExport(doc.Resorts[0])
	if export.SchemaVersion != "2.0.0" || len(export.Resorts) != 1 {
		t.Fatalf("export shape = %+v", export)
	}
	// The export round-trips through upload parsing.
	raw, err := json.Marshal(export)
	if err != nil {
		t.Fatalf("marshal export: %v", err)
	}
	parsed, err := s.ParseUpload(raw)
	if err != nil {
		t.Fatalf("ParseUpload of export: %v", err)
	}
	if parsed.Resorts[0].ID != "sunset-bay" {
		t.Errorf("parsed export resort = %+v", parsed.Resorts[0])
	}
}
