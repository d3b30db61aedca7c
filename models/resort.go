package models

import (
	"sort"
	"strings"
)

// Weekdays lists the seven valid day-pattern tokens.
var Weekdays = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// Resort is one property with per-year season and holiday tables.
type Resort struct {
	ID          string               `json:"id"`           // stable slug-derived identifier
	DisplayName string               `json:"display_name"` // short name used in lists
	Code        string               `json:"code"`         // uppercase abbreviation
	ResortName  string               `json:"resort_name"`  // formal name
	Address     string               `json:"address"`
	Timezone    string               `json:"timezone"` // IANA zone string
	Years       map[string]*YearData `json:"years"`
}

// YearData holds one year's season and holiday lists for a resort.
type YearData struct {
	Seasons  []*Season  `json:"seasons"`
	Holidays []*Holiday `json:"holidays"`
}

// Season is a named block of the year. The name is the cross-year join key;
// periods are year-specific and never synchronized.
type Season struct {
	Name          string                  `json:"name"`
	Periods       []DateRange             `json:"periods"`
	DayCategories map[string]*DayCategory `json:"day_categories"`
}

// DateRange is an inclusive start/end pair in DateLayout format.
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// DayCategory partitions a season's week into a set of weekdays sharing one
// nightly point table.
type DayCategory struct {
	DayPattern []string       `json:"day_pattern"`
	RoomPoints map[string]int `json:"room_points"`
}

// Holiday is a per-resort holiday point table. GlobalReference joins it to
// the global holiday calendar and to the same holiday in other years.
type Holiday struct {
	Name            string         `json:"name"`
	GlobalReference string         `json:"global_reference,omitempty"`
	RoomPoints      map[string]int `json:"room_points"`
}

// Key returns the cross-year join key: the global reference, falling back
// to the display name.
func (h *Holiday) Key() string {
	if ref := strings.TrimSpace(h.GlobalReference); ref != "" {
		return ref
	}
	return strings.TrimSpace(h.Name)
}

// EnsureYear returns the YearData for the given year, creating an empty
// entry if absent.
func (r *Resort) EnsureYear(year string) *YearData {
	if r.Years == nil {
		r.Years = make(map[string]*YearData)
	}
	yd, ok := r.Years[year]
	if !ok || yd == nil {
		yd = &YearData{}
		r.Years[year] = yd
	}
	if yd.Seasons == nil {
		yd.Seasons = []*Season{}
	}
	if yd.Holidays == nil {
		yd.Holidays = []*Holiday{}
	}
	return yd
}

// SeasonNames returns the sorted union of season names across all years.
func (r *Resort) SeasonNames() []string {
	set := make(map[string]struct{})
	for _, yd := range r.Years {
		for _, s := range yd.Seasons {
			if s.Name != "" {
				set[s.Name] = struct{}{}
			}
		}
	}
	names := make([]string, 0, len(set))
	for n := range set {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// RoomTypes returns the canonical room-type set for the resort: the sorted
// union of room_points keys across every season category and holiday.
func (r *Resort) RoomTypes() []string {
	set := make(map[string]struct{})
	for _, yd := range r.Years {
		for _, s := range yd.Seasons {
			for _, cat := range s.DayCategories {
				for room := range cat.RoomPoints {
					set[room] = struct{}{}
				}
			}
		}
		for _, h := range yd.Holidays {
			for room := range h.RoomPoints {
				set[room] = struct{}{}
			}
		}
	}
	rooms := make([]string, 0, len(set))
	for room := range set {
		rooms = append(rooms, room)
	}
	sort.Strings(rooms)
	return rooms
}

// Clone returns a deep copy of the resort.
func (r *Resort) Clone() *Resort {
	if r == nil {
		return nil
	}
	out := *r
	if r.Years != nil {
		out.Years = make(map[string]*YearData, len(r.Years))
		for year, yd := range r.Years {
			out.Years[year] = yd.Clone()
		}
	}
	return &out
}

// Clone returns a deep copy of one year's data.
func (y *YearData) Clone() *YearData {
	if y == nil {
		return nil
	}
	out := &YearData{}
	if y.Seasons != nil {
		out.Seasons = make([]*Season, 0, len(y.Seasons))
		for _, s := range y.Seasons {
			out.Seasons = append(out.Seasons, s.Clone())
		}
	}
	if y.Holidays != nil {
		out.Holidays = make([]*Holiday, 0, len(y.Holidays))
		for _, h := range y.Holidays {
			out.Holidays = append(out.Holidays, h.Clone())
		}
	}
	return out
}

// Clone returns a deep copy of the season.
func (s *Season) Clone() *Season {
	if s == nil {
		return nil
	}
	out := &Season{Name: s.Name}
	if s.Periods != nil {
		out.Periods = append([]DateRange(nil), s.Periods...)
	}
	out.DayCategories = CloneDayCategories(s.DayCategories)
	return out
}

// CloneDayCategories deep-copies a day-category map. Used both by season
// cloning and by the sync engine's base-year overwrite.
func CloneDayCategories(in map[string]*DayCategory) map[string]*DayCategory {
	if in == nil {
		return nil
	}
	out := make(map[string]*DayCategory, len(in))
	for key, cat := range in {
		out[key] = cat.Clone()
	}
	return out
}

// Clone returns a deep copy of the category.
func (c *DayCategory) Clone() *DayCategory {
	if c == nil {
		return nil
	}
	out := &DayCategory{}
	if c.DayPattern != nil {
		out.DayPattern = append([]string(nil), c.DayPattern...)
	}
	out.RoomPoints = ClonePoints(c.RoomPoints)
	return out
}

// Clone returns a deep copy of the holiday.
func (h *Holiday) Clone() *Holiday {
	if h == nil {
		return nil
	}
	out := *h
	out.RoomPoints = ClonePoints(h.RoomPoints)
	return &out
}

// ClonePoints copies a room-points table.
func ClonePoints(in map[string]int) map[string]int {
	if in == nil {
		return nil
	}
	out := make(map[string]int, len(in))
	for room, pts := range in {
		out[room] = pts
	}
	return out
}
