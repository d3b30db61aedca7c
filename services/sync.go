package services

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"clubpoints/models"
	"clubpoints/utils"
)

// SyncService keeps a resort's years consistent with its base year.
//
// Exactly one year is canonical for structural data: seasons are joined
// across years by name, holidays by global reference. After every
// structural edit a sync pass rewrites the derived years from the base
// year. This is a full overwrite, not a merge: point edits made directly
// against a non-base year are discarded by the next pass. Callers should
// surface that to operators rather than work around it.
type SyncService interface {
	BaseYear(r *models.Resort) string
	SyncSeasonRoomPoints(r *models.Resort, baseYear string)
	SyncHolidayRoomPoints(r *models.Resort, baseYear string)
	AddSeason(r *models.Resort, name string, years []string) error
	DeleteSeason(r *models.Resort, name string) bool
	AddHoliday(r *models.Resort, name, globalRef string) error
	DeleteHoliday(r *models.Resort, globalRef string) bool
	AddRoomType(r *models.Resort, room, baseYear string) error
	DeleteRoomType(r *models.Resort, room string)
	SortHolidaysChronologically(r *models.Resort, doc *models.RootDocument)
}

// DefaultSyncService is the production implementation.
type DefaultSyncService struct {
	// ConfiguredBaseYear is preferred whenever the resort defines it.
	ConfiguredBaseYear string
}

// BaseYear picks the canonical year for a resort: the configured year when
// present among the resort's years, otherwise the smallest year present,
// otherwise the configured year itself.
func (s *DefaultSyncService) BaseYear(r *models.Resort) string {
	if _, ok := r.Years[s.ConfiguredBaseYear]; ok {
		return s.ConfiguredBaseYear
	}
	years := make([]string, 0, len(r.Years))
	for y := range r.Years {
		years = append(years, y)
	}
	if len(years) == 0 {
		return s.ConfiguredBaseYear
	}
	sort.Strings(years)
	return years[0]
}

// SyncSeasonRoomPoints normalizes the base year's season point tables to
// the canonical room set, then overwrites every matching season's
// day_categories in the other years with a deep copy of the base year's.
// Seasons with no base-year name match keep their own categories.
func (s *DefaultSyncService) SyncSeasonRoomPoints(r *models.Resort, baseYear string) {
	baseYD, ok := r.Years[baseYear]
	if !ok || baseYD == nil {
		return
	}
	canonical := r.RoomTypes()
	if len(canonical) == 0 {
		return
	}
	inCanonical := make(map[string]struct{}, len(canonical))
	for _, room := range canonical {
		inCanonical[room] = struct{}{}
	}

	for _, season := range baseYD.Seasons {
		for _, key := range sortedCategoryKeys(season.DayCategories) {
			cat := season.DayCategories[key]
			if cat.RoomPoints == nil {
				cat.RoomPoints = make(map[string]int, len(canonical))
			}
			for _, room := range canonical {
				if _, ok := cat.RoomPoints[room]; !ok {
					cat.RoomPoints[room] = 0
				}
			}
			for room := range cat.RoomPoints {
				if _, ok := inCanonical[room]; !ok {
					delete(cat.RoomPoints, room)
				}
			}
		}
	}

	baseByName := make(map[string]*models.Season, len(baseYD.Seasons))
	for _, season := range baseYD.Seasons {
		if season.Name != "" {
			baseByName[season.Name] = season
		}
	}
	for year, yd := range r.Years {
		if year == baseYear || yd == nil {
			continue
		}
		for _, season := range yd.Seasons {
			if base, ok := baseByName[season.Name]; ok {
				season.DayCategories = models.CloneDayCategories(base.DayCategories)
			}
		}
	}
}

// SyncHolidayRoomPoints normalizes the base year's holiday point tables to
// the canonical room set, then copies them onto every other year's holiday
// with the same global reference.
func (s *DefaultSyncService) SyncHolidayRoomPoints(r *models.Resort, baseYear string) {
	if _, ok := r.Years[baseYear]; !ok {
		return
	}
	baseYD := r.EnsureYear(baseYear)
	canonical := r.RoomTypes()
	inCanonical := make(map[string]struct{}, len(canonical))
	for _, room := range canonical {
		inCanonical[room] = struct{}{}
	}

	for _, h := range baseYD.Holidays {
		if h.RoomPoints == nil {
			h.RoomPoints = make(map[string]int, len(canonical))
		}
		for _, room := range canonical {
			if _, ok := h.RoomPoints[room]; !ok {
				h.RoomPoints[room] = 0
			}
		}
		for room := range h.RoomPoints {
			if _, ok := inCanonical[room]; !ok {
				delete(h.RoomPoints, room)
			}
		}
	}

	baseByKey := make(map[string]*models.Holiday, len(baseYD.Holidays))
	for _, h := range baseYD.Holidays {
		if key := h.Key(); key != "" {
			baseByKey[key] = h
		}
	}
	for year, yd := range r.Years {
		if year == baseYear || yd == nil {
			continue
		}
		for _, h := range yd.Holidays {
			if base, ok := baseByKey[h.Key()]; ok {
				h.RoomPoints = models.ClonePoints(base.RoomPoints)
			}
		}
	}
}

// AddSeason appends an empty season of that name to every configured year.
// Periods stay per-year and are never synchronized.
func (s *DefaultSyncService) AddSeason(r *models.Resort, name string, years []string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("season name: %w", models.ErrEmptyField)
	}
	for _, existing := range r.SeasonNames() {
		if strings.EqualFold(existing, name) {
			return fmt.Errorf("season %q: %w", name, models.ErrDuplicateName)
		}
	}
	for _, year := range years {
		yd := r.EnsureYear(year)
		yd.Seasons = append(yd.Seasons, &models.Season{
			Name:          name,
			Periods:       []models.DateRange{},
			DayCategories: map[string]*models.DayCategory{},
		})
	}
	utils.GetLogger().Debug("Added season to all years",
		zap.String("resort", r.ID), zap.String("season", name), zap.Int("years", len(years)))
	return nil
}

// DeleteSeason removes the named season from every year. Single-year
// deletion is intentionally not exposed.
func (s *DefaultSyncService) DeleteSeason(r *models.Resort, name string) bool {
	changed := false
	for _, yd := range r.Years {
		kept := yd.Seasons[:0]
		for _, season := range yd.Seasons {
			if season.Name == name {
				changed = true
				continue
			}
			kept = append(kept, season)
		}
		yd.Seasons = kept
	}
	return changed
}

// AddHoliday appends the holiday to every year that does not already carry
// its global reference. The reference defaults to the display name.
func (s *DefaultSyncService) AddHoliday(r *models.Resort, name, globalRef string) error {
	name = strings.TrimSpace(name)
	globalRef = strings.TrimSpace(globalRef)
	if globalRef == "" {
		globalRef = name
	}
	if name == "" || globalRef == "" {
		return fmt.Errorf("holiday name: %w", models.ErrEmptyField)
	}
	for _, yd := range r.Years {
		exists := false
		for _, h := range yd.Holidays {
			if h.Key() == globalRef {
				exists = true
				break
			}
		}
		if exists {
			continue
		}
		yd.Holidays = append(yd.Holidays, &models.Holiday{
			Name:            name,
			GlobalReference: globalRef,
			RoomPoints:      map[string]int{},
		})
	}
	return nil
}

// DeleteHoliday removes the holiday with the given global reference from
// every year.
func (s *DefaultSyncService) DeleteHoliday(r *models.Resort, globalRef string) bool {
	globalRef = strings.TrimSpace(globalRef)
	if globalRef == "" {
		return false
	}
	changed := false
	for _, yd := range r.Years {
		kept := yd.Holidays[:0]
		for _, h := range yd.Holidays {
			if h.Key() == globalRef {
				changed = true
				continue
			}
			kept = append(kept, h)
		}
		yd.Holidays = kept
	}
	return changed
}

// AddRoomType seeds the room (at 0 points) into the base year's season
// categories and into every year's holidays. Non-base season tables pick
// it up on the next sync pass.
func (s *DefaultSyncService) AddRoomType(r *models.Resort, room, baseYear string) error {
	room = strings.TrimSpace(room)
	if room == "" {
		return fmt.Errorf("room type: %w", models.ErrEmptyField)
	}
	for _, existing := range r.RoomTypes() {
		if strings.EqualFold(existing, room) {
			return fmt.Errorf("room type %q: %w", room, models.ErrDuplicateName)
		}
	}
	if _, ok := r.Years[baseYear]; ok {
		baseYD := r.EnsureYear(baseYear)
		for _, season := range baseYD.Seasons {
			for _, cat := range season.DayCategories {
				if cat.RoomPoints == nil {
					cat.RoomPoints = map[string]int{}
				}
				if _, ok := cat.RoomPoints[room]; !ok {
					cat.RoomPoints[room] = 0
				}
			}
		}
	}
	for _, yd := range r.Years {
		for _, h := range yd.Holidays {
			if h.RoomPoints == nil {
				h.RoomPoints = map[string]int{}
			}
			if _, ok := h.RoomPoints[room]; !ok {
				h.RoomPoints[room] = 0
			}
		}
	}
	return nil
}

// DeleteRoomType sweeps the room out of every point table in every year.
func (s *DefaultSyncService) DeleteRoomType(r *models.Resort, room string) {
	for _, yd := range r.Years {
		for _, season := range yd.Seasons {
			for _, cat := range season.DayCategories {
				delete(cat.RoomPoints, room)
			}
		}
		for _, h := range yd.Holidays {
			delete(h.RoomPoints, room)
		}
	}
}

// SortHolidaysChronologically orders each year's holiday list by the start
// date of the resolved global window. Holidays whose reference does not
// resolve sort last, keeping their relative order.
func (s *DefaultSyncService) SortHolidaysChronologically(r *models.Resort, doc *models.RootDocument) {
	if doc == nil {
		return
	}
	for year, yd := range r.Years {
		if yd == nil || len(yd.Holidays) == 0 {
			continue
		}
		ghYear := doc.GlobalHolidays[year]
		sort.SliceStable(yd.Holidays, func(i, j int) bool {
			return holidayStart(yd.Holidays[i], ghYear) < holidayStart(yd.Holidays[j], ghYear)
		})
	}
}

func holidayStart(h *models.Holiday, ghYear map[string]*models.HolidayWindow) string {
	if w, ok := ghYear[h.Key()]; ok && w.StartDate != "" {
		return w.StartDate
	}
	return "9999-12-31"
}

func sortedCategoryKeys(cats map[string]*models.DayCategory) []string {
	keys := make([]string, 0, len(cats))
	for k := range cats {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
