package services

import (
	"bytes"
	"encoding/csv"
	"testing"
)

func parseExport(t *testing.T, data []byte) [][]string {
	t.Helper()
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		t.Fatalf("parse exported CSV: %v", err)
	}
	return records
}

func TestExportResortCSVSections(t *testing.T) {
	r := testResort()
	data, err := ExportResortCSV(r, "2025")
	if err != nil {
		t.Fatalf("ExportResortCSV: %v", err)
	}
	records := parseExport(t, data)

	sections := map[string]bool{}
	for _, rec := range records {
		if len(rec) == 1 {
			sections[rec[0]] = true
		}
	}
	for _, want := range []string{"Metadata", "Season_Dates", "Season_Points", "Holiday_Points"} {
		if !sections[want] {
			t.Errorf("missing section %q in export", want)
		}
	}

	// Metadata row follows its header.
	if records[2][0] != "sunset-bay" || records[2][1] != "Sunset Bay" {
		t.Errorf("metadata row = %v", records[2])
	}

	// Season dates cover both years in sorted order.
	var dateYears []string
	for _, rec := range records {
		if len(rec) == 5 && (rec[0] == "2025" || rec[0] == "2026") {
			dateYears = append(dateYears, rec[0])
		}
	}
	if len(dateYears) != 2 || dateYears[0] != "2025" || dateYears[1] != "2026" {
		t.Errorf("season date years = %v", dateYears)
	}

	// Base-year point rows are sorted by category then room.
	var pointRows [][]string
	for _, rec := range records {
		if len(rec) == 5 && rec[0] == "Low" {
			pointRows = append(pointRows, rec)
		}
	}
	if len(pointRows) != 4 {
		t.Fatalf("season point rows = %d, want 4", len(pointRows))
	}
	if pointRows[0][1] != "weekday" || pointRows[0][3] != "one_bed" {
		t.Errorf("first point row = %v, want weekday/one_bed", pointRows[0])
	}
}

func TestExportResortCSVWithoutBaseYear(t *testing.T) {
	r := testResort()
	data, err := ExportResortCSV(r, "2030")
	if err != nil {
		t.Fatalf("ExportResortCSV: %v", err)
	}
	records := parseExport(t, data)
	for _, rec := range records {
		if len(rec) == 1 && rec[0] == "Holiday_Points" {
			t.Fatal("holiday section must be omitted when the base year is absent")
		}
	}
}
