package services

import (
	"bytes"
	"encoding/csv"
	"sort"
	"strconv"

	"clubpoints/models"
)

// ExportResortCSV flattens one resort into a spreadsheet-friendly CSV:
// a metadata section, the per-year season dates, and the base-year season
// and holiday point tables (the master tables that apply to all years).
func ExportResortCSV(r *models.Resort, baseYear string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	write := func(record ...string) error { return w.Write(record) }

	if err := write("Metadata"); err != nil {
		return nil, err
	}
	if err := write("resort_id", "display_name", "code", "resort_name", "timezone", "address"); err != nil {
		return nil, err
	}
	if err := write(r.ID, r.DisplayName, r.Code, r.ResortName, r.Timezone, r.Address); err != nil {
		return nil, err
	}

	if err := write("Season_Dates"); err != nil {
		return nil, err
	}
	if err := write("Year", "Season", "Period_Num", "Start_Date", "End_Date"); err != nil {
		return nil, err
	}
	for _, year := range sortedYearKeys(r) {
		yd := r.Years[year]
		for _, season := range yd.Seasons {
			for i, p := range season.Periods {
				if err := write(year, season.Name, strconv.Itoa(i+1), p.Start, p.End); err != nil {
					return nil, err
				}
			}
		}
	}

	if err := write("Season_Points"); err != nil {
		return nil, err
	}
	if err := write("Season", "Day_Category", "Days", "Room_Type", "Points"); err != nil {
		return nil, err
	}
	if baseYD, ok := r.Years[baseYear]; ok && baseYD != nil {
		for _, season := range baseYD.Seasons {
			for _, key := range sortedCategoryKeys(season.DayCategories) {
				cat := season.DayCategories[key]
				days := joinDays(cat.DayPattern)
				for _, room := range sortedRoomKeys(cat.RoomPoints) {
					if err := write(season.Name, key, days, room, strconv.Itoa(cat.RoomPoints[room])); err != nil {
						return nil, err
					}
				}
			}
		}

		if err := write("Holiday_Points"); err != nil {
			return nil, err
		}
		if err := write("Holiday", "Global_Reference", "Room_Type", "Points"); err != nil {
			return nil, err
		}
		for _, h := range baseYD.Holidays {
			for _, room := range sortedRoomKeys(h.RoomPoints) {
				if err := write(h.Name, h.Key(), room, strconv.Itoa(h.RoomPoints[room])); err != nil {
					return nil, err
				}
			}
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func sortedYearKeys(r *models.Resort) []string {
	years := make([]string, 0, len(r.Years))
	for y := range r.Years {
		years = append(years, y)
	}
	sort.Strings(years)
	return years
}

func sortedRoomKeys(points map[string]int) []string {
	rooms := make([]string, 0, len(points))
	for room := range points {
		rooms = append(rooms, room)
	}
	sort.Strings(rooms)
	return rooms
}

func joinDays(pattern []string) string {
	out := ""
	for i, d := range pattern {
		if i > 0 {
			out += ", "
		}
		out += d
	}
	return out
}
