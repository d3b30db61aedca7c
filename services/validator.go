package services

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"clubpoints/models"
)

// Validate runs every structural check against a resort working copy and
// returns human-readable issue strings, ordered per year. It is a pure
// function of its inputs and never fails: malformed dates are skipped
// range by range, and a year that does not parse as an integer skips gap
// detection only.
func Validate(r *models.Resort, doc *models.RootDocument, years []string) []string {
	var issues []string

	allDays := make(map[string]struct{}, len(models.Weekdays))
	for _, d := range models.Weekdays {
		allDays[d] = struct{}{}
	}
	allRooms := r.RoomTypes()
	roomSet := make(map[string]struct{}, len(allRooms))
	for _, room := range allRooms {
		roomSet[room] = struct{}{}
	}

	for _, year := range years {
		yd := r.Years[year]
		if yd == nil {
			yd = &models.YearData{}
		}
		ghYear := map[string]*models.HolidayWindow{}
		if doc != nil {
			if g, ok := doc.GlobalHolidays[year]; ok {
				ghYear = g
			}
		}

		issues = append(issues, seasonIssues(yd, year, allDays, roomSet)...)
		issues = append(issues, holidayIssues(yd, year, ghYear, roomSet)...)

		yearNum, err := strconv.Atoi(year)
		if err != nil {
			continue
		}
		issues = append(issues, gapIssues(yd, year, yearNum, ghYear)...)
	}
	return issues
}

func seasonIssues(yd *models.YearData, year string, allDays map[string]struct{}, roomSet map[string]struct{}) []string {
	var issues []string
	for _, season := range yd.Seasons {
		name := season.Name
		if name == "" {
			name = "(Unnamed)"
		}
		covered := make(map[string]struct{})
		for _, key := range sortedCategoryKeys(season.DayCategories) {
			cat := season.DayCategories[key]
			var overlap []string
			// A day repeated inside one category's own pattern counts
			// once; only repeats across categories are overlaps.
			inPattern := make(map[string]struct{}, len(cat.DayPattern))
			for _, d := range cat.DayPattern {
				if _, valid := allDays[d]; !valid {
					continue
				}
				if _, dup := inPattern[d]; dup {
					continue
				}
				inPattern[d] = struct{}{}
				if _, seen := covered[d]; seen {
					overlap = append(overlap, d)
				}
				covered[d] = struct{}{}
			}
			if len(overlap) > 0 {
				sort.Strings(overlap)
				issues = append(issues, fmt.Sprintf(
					"[%s] Season '%s' has overlapping days: %s", year, name, strings.Join(overlap, ", ")))
			}
		}
		var missing []string
		for d := range allDays {
			if _, ok := covered[d]; !ok {
				missing = append(missing, d)
			}
		}
		if len(missing) > 0 {
			sort.Strings(missing)
			issues = append(issues, fmt.Sprintf(
				"[%s] Season '%s' missing days: %s", year, name, strings.Join(missing, ", ")))
		}

		if len(roomSet) > 0 {
			seasonRooms := make(map[string]struct{})
			for _, cat := range season.DayCategories {
				for room := range cat.RoomPoints {
					seasonRooms[room] = struct{}{}
				}
			}
			var missingRooms []string
			for room := range roomSet {
				if _, ok := seasonRooms[room]; !ok {
					missingRooms = append(missingRooms, room)
				}
			}
			if len(missingRooms) > 0 {
				sort.Strings(missingRooms)
				issues = append(issues, fmt.Sprintf(
					"[%s] Season '%s' missing rooms: %s", year, name, strings.Join(missingRooms, ", ")))
			}
		}
	}
	return issues
}

func holidayIssues(yd *models.YearData, year string, ghYear map[string]*models.HolidayWindow, roomSet map[string]struct{}) []string {
	var issues []string
	for _, h := range yd.Holidays {
		name := h.Name
		if name == "" {
			name = "(Unnamed)"
		}
		ref := h.Key()
		if _, ok := ghYear[ref]; !ok {
			issues = append(issues, fmt.Sprintf(
				"[%s] Holiday '%s' references missing global holiday '%s'", year, name, ref))
		}
		if len(roomSet) > 0 {
			var missingRooms []string
			for room := range roomSet {
				if _, ok := h.RoomPoints[room]; !ok {
					missingRooms = append(missingRooms, room)
				}
			}
			if len(missingRooms) > 0 {
				sort.Strings(missingRooms)
				issues = append(issues, fmt.Sprintf(
					"[%s] Holiday '%s' missing rooms: %s", year, name, strings.Join(missingRooms, ", ")))
			}
		}
	}
	return issues
}

type coveredRange struct {
	start time.Time
	end   time.Time
	label string
}

func gapIssues(yd *models.YearData, year string, yearNum int, ghYear map[string]*models.HolidayWindow) []string {
	yearStart := time.Date(yearNum, time.January, 1, 0, 0, 0, 0, time.UTC)
	yearEnd := time.Date(yearNum, time.December, 31, 0, 0, 0, 0, time.UTC)

	var ranges []coveredRange
	for _, season := range yd.Seasons {
		name := season.Name
		if name == "" {
			name = "(Unnamed)"
		}
		for _, p := range season.Periods {
			start, err1 := time.Parse(models.DateLayout, p.Start)
			end, err2 := time.Parse(models.DateLayout, p.End)
			if err1 != nil || err2 != nil || start.After(end) {
				continue
			}
			ranges = append(ranges, coveredRange{start, end, fmt.Sprintf("Season '%s'", name)})
		}
	}
	for _, h := range yd.Holidays {
		w, ok := ghYear[h.Key()]
		if !ok {
			continue
		}
		start, err1 := time.Parse(models.DateLayout, w.StartDate)
		end, err2 := time.Parse(models.DateLayout, w.EndDate)
		if err1 != nil || err2 != nil || start.After(end) {
			continue
		}
		name := h.Name
		if name == "" {
			name = "(Unnamed)"
		}
		ranges = append(ranges, coveredRange{start, end, fmt.Sprintf("Holiday '%s'", name)})
	}

	if len(ranges) == 0 {
		return []string{fmt.Sprintf("[%s] No date ranges defined (entire year is uncovered)", year)}
	}

	sort.SliceStable(ranges, func(i, j int) bool { return ranges[i].start.Before(ranges[j].start) })

	var issues []string
	day := 24 * time.Hour
	if ranges[0].start.After(yearStart) {
		gapDays := int(ranges[0].start.Sub(yearStart) / day)
		issues = append(issues, fmt.Sprintf(
			"[%s] GAP: %d days from %s to %s (before first range)",
			year, gapDays, fmtDate(yearStart), fmtDate(ranges[0].start.Add(-day))))
	}
	for i := 0; i < len(ranges)-1; i++ {
		currEnd := ranges[i].end
		nextStart := ranges[i+1].start
		if nextStart.After(currEnd.Add(day)) {
			gapStart := currEnd.Add(day)
			gapEnd := nextStart.Add(-day)
			gapDays := int(nextStart.Sub(currEnd)/day) - 1
			issues = append(issues, fmt.Sprintf(
				"[%s] GAP: %d days from %s to %s (between %s and %s)",
				year, gapDays, fmtDate(gapStart), fmtDate(gapEnd), ranges[i].label, ranges[i+1].label))
		}
	}
	last := ranges[len(ranges)-1].end
	if last.Before(yearEnd) {
		gapDays := int(yearEnd.Sub(last) / day)
		issues = append(issues, fmt.Sprintf(
			"[%s] GAP: %d days from %s to %s (after last range)",
			year, gapDays, fmtDate(last.Add(day)), fmtDate(yearEnd)))
	}
	return issues
}

func fmtDate(t time.Time) string {
	return t.Format(models.DateLayout)
}
