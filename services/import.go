package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"clubpoints/models"
)

// ImportResortCSV applies a previously exported CSV back onto a resort
// working copy. The file carries master tables, so imported point values
// are written to every year that has the matching season, category or
// holiday; the caller is expected to run the sync passes afterwards.
// Rows that name a season, category or holiday the resort does not have
// are skipped, never created.
func ImportResortCSV(r *models.Resort, data []byte) error {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return fmt.Errorf("parse CSV: %w", err)
	}

	sections := splitSections(records)
	if len(sections) == 0 {
		return fmt.Errorf("no recognized sections in CSV: %w", models.ErrInvalidSchema)
	}

	if rows, ok := sections["Metadata"]; ok && len(rows) > 0 {
		applyMetadataRow(r, rows[0])
	}
	if rows, ok := sections["Season_Dates"]; ok {
		applySeasonDates(r, rows)
	}
	if rows, ok := sections["Season_Points"]; ok {
		applySeasonPoints(r, rows)
	}
	if rows, ok := sections["Holiday_Points"]; ok {
		applyHolidayPoints(r, rows)
	}
	return nil
}

// splitSections cuts the flat record list into named sections. A section
// starts at a row whose sole non-empty cell is a known title; the row
// after the title is the column header and is dropped.
func splitSections(records [][]string) map[string][][]string {
	known := map[string]struct{}{
		"Metadata":       {},
		"Season_Dates":   {},
		"Season_Points":  {},
		"Holiday_Points": {},
	}
	sections := make(map[string][][]string)
	current := ""
	skipHeader := false
	for _, rec := range records {
		if len(rec) == 0 {
			continue
		}
		if _, ok := known[rec[0]]; ok && onlyFirstCell(rec) {
			current = rec[0]
			sections[current] = nil
			skipHeader = true
			continue
		}
		if current == "" {
			continue
		}
		if skipHeader {
			skipHeader = false
			continue
		}
		sections[current] = append(sections[current], rec)
	}
	return sections
}

func onlyFirstCell(rec []string) bool {
	for _, cell := range rec[1:] {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// applyMetadataRow updates the descriptive fields from the single
// metadata row. The resort id column is ignored: the record keeps the
// identity it is imported into.
func applyMetadataRow(r *models.Resort, row []string) {
	cell := func(i int) (string, bool) {
		if i < len(row) {
			return strings.TrimSpace(row[i]), true
		}
		return "", false
	}
	if v, ok := cell(1); ok && v != "" {
		r.DisplayName = v
	}
	if v, ok := cell(2); ok && v != "" {
		r.Code = v
	}
	if v, ok := cell(3); ok && v != "" {
		r.ResortName = v
	}
	if v, ok := cell(4); ok && v != "" {
		r.Timezone = v
	}
	if v, ok := cell(5); ok {
		r.Address = v
	}
}

// applySeasonDates rebuilds the period lists. Periods are the one
// per-year table in the file, so each (year, season) pair named by the
// rows replaces that season's periods wholesale; seasons the file does
// not mention keep theirs. Rows missing either date are dropped.
func applySeasonDates(r *models.Resort, rows [][]string) {
	type yearSeason struct{ year, season string }
	periods := make(map[yearSeason][]models.DateRange)
	for _, row := range rows {
		if len(row) < 5 {
			continue
		}
		year := strings.TrimSpace(row[0])
		season := strings.TrimSpace(row[1])
		start := strings.TrimSpace(row[3])
		end := strings.TrimSpace(row[4])
		if year == "" || season == "" || start == "" || end == "" {
			continue
		}
		key := yearSeason{year, season}
		periods[key] = append(periods[key], models.DateRange{Start: start, End: end})
	}
	for key, ranges := range periods {
		yd := r.Years[key.year]
		if yd == nil {
			continue
		}
		for _, season := range yd.Seasons {
			if season.Name == key.season {
				season.Periods = ranges
				break
			}
		}
	}
}

// applySeasonPoints replaces the room point table of every matching
// (season, category) pair across all years. The Days column is
// informational on export and ignored here; day patterns stay as they
// are.
func applySeasonPoints(r *models.Resort, rows [][]string) {
	type seasonCat struct{ season, category string }
	points := make(map[seasonCat]map[string]int)
	for _, row := range rows {
		if len(row) < 5 {
			continue
		}
		season := strings.TrimSpace(row[0])
		category := strings.TrimSpace(row[1])
		room := strings.TrimSpace(row[3])
		value, err := strconv.Atoi(strings.TrimSpace(row[4]))
		if season == "" || category == "" || room == "" || err != nil {
			continue
		}
		key := seasonCat{season, category}
		if points[key] == nil {
			points[key] = make(map[string]int)
		}
		points[key][room] = value
	}
	for _, yd := range r.Years {
		if yd == nil {
			continue
		}
		for _, season := range yd.Seasons {
			for catKey, cat := range season.DayCategories {
				if table, ok := points[seasonCat{season.Name, catKey}]; ok {
					cat.RoomPoints = models.ClonePoints(table)
				}
			}
		}
	}
}

// applyHolidayPoints replaces holiday room points by global reference
// across all years.
func applyHolidayPoints(r *models.Resort, rows [][]string) {
	points := make(map[string]map[string]int)
	for _, row := range rows {
		if len(row) < 4 {
			continue
		}
		ref := strings.TrimSpace(row[1])
		room := strings.TrimSpace(row[2])
		value, err := strconv.Atoi(strings.TrimSpace(row[3]))
		if ref == "" || room == "" || err != nil {
			continue
		}
		if points[ref] == nil {
			points[ref] = make(map[string]int)
		}
		points[ref][room] = value
	}
	for _, yd := range r.Years {
		if yd == nil {
			continue
		}
		for _, h := range yd.Holidays {
			if table, ok := points[h.Key()]; ok {
				h.RoomPoints = models.ClonePoints(table)
			}
		}
	}
}
