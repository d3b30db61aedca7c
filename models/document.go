package models

import "sort"

// DateLayout is the wire format for every date in the document tree.
const DateLayout = "2006-01-02"

// DefaultYears is returned when a document defines no years at all.
var DefaultYears = []string{"2025", "2026"}

// RootDocument is the persisted document tree. One instance exists per
// session; the store owns load/save, everything else mutates it in memory.
type RootDocument struct {
	// SchemaVersion may be a string or a number in source files; it is
	// round-tripped untouched and only checked for presence.
	SchemaVersion  any                                  `json:"schema_version,omitempty"`
	Resorts        []*Resort                            `json:"resorts"`
	GlobalHolidays map[string]map[string]*HolidayWindow `json:"global_holidays,omitempty"`
	Configuration  *Configuration                       `json:"configuration,omitempty"`
}

// HolidayWindow is a dated entry in the global holiday calendar.
type HolidayWindow struct {
	StartDate string   `json:"start_date"`
	EndDate   string   `json:"end_date"`
	Type      string   `json:"type,omitempty"`
	Regions   []string `json:"regions,omitempty"`
}

// Configuration holds global settings that are not per-resort.
type Configuration struct {
	MaintenanceRates map[string]float64 `json:"maintenance_rates,omitempty"`
}

// Normalize repairs structural holes left by hand-edited source files.
// A year entry serialized as null, or with null season or holiday lists,
// becomes an empty YearData so the editing and sync code never sees a
// nil entry for a year that exists.
func (d *RootDocument) Normalize() {
	for _, r := range d.Resorts {
		if r == nil {
			continue
		}
		for year := range r.Years {
			r.EnsureYear(year)
		}
	}
}

// FindResort returns the resort with the given id, or nil.
func (d *RootDocument) FindResort(id string) *Resort {
	for _, r := range d.Resorts {
		if r.ID == id {
			return r
		}
	}
	return nil
}

// ResortIndex returns the position of the resort with the given id, or -1.
func (d *RootDocument) ResortIndex(id string) int {
	for i, r := range d.Resorts {
		if r.ID == id {
			return i
		}
	}
	return -1
}

// Years returns the sorted union of years referenced by the global holiday
// calendar and by any resort. Falls back to DefaultYears when the document
// is empty.
func (d *RootDocument) Years() []string {
	set := make(map[string]struct{})
	for y := range d.GlobalHolidays {
		set[y] = struct{}{}
	}
	for _, r := range d.Resorts {
		for y := range r.Years {
			set[y] = struct{}{}
		}
	}
	if len(set) == 0 {
		return append([]string(nil), DefaultYears...)
	}
	years := make([]string, 0, len(set))
	for y := range set {
		years = append(years, y)
	}
	sort.Strings(years)
	return years
}

// GlobalHolidayNames returns the sorted union of holiday names across every
// year of the global calendar.
func (d *RootDocument) GlobalHolidayNames() []string {
	set := make(map[string]struct{})
	for _, byName := range d.GlobalHolidays {
		for name := range byName {
			set[name] = struct{}{}
		}
	}
	names := make([]string, 0, len(set))
	for n := range set {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Clone returns a deep copy of the document.
func (d *RootDocument) Clone() *RootDocument {
	if d == nil {
		return nil
	}
	out := &RootDocument{SchemaVersion: d.SchemaVersion}
	if d.Resorts != nil {
		out.Resorts = make([]*Resort, 0, len(d.Resorts))
		for _, r := range d.Resorts {
			out.Resorts = append(out.Resorts, r.Clone())
		}
	}
	if d.GlobalHolidays != nil {
		out.GlobalHolidays = make(map[string]map[string]*HolidayWindow, len(d.GlobalHolidays))
		for year, byName := range d.GlobalHolidays {
			cp := make(map[string]*HolidayWindow, len(byName))
			for name, w := range byName {
				cp[name] = w.Clone()
			}
			out.GlobalHolidays[year] = cp
		}
	}
	if d.Configuration != nil {
		out.Configuration = d.Configuration.Clone()
	}
	return out
}

// Clone returns a deep copy of the window.
func (w *HolidayWindow) Clone() *HolidayWindow {
	if w == nil {
		return nil
	}
	cp := *w
	cp.Regions = append([]string(nil), w.Regions...)
	return &cp
}

// Clone returns a deep copy of the configuration.
func (c *Configuration) Clone() *Configuration {
	if c == nil {
		return nil
	}
	out := &Configuration{}
	if c.MaintenanceRates != nil {
		out.MaintenanceRates = make(map[string]float64, len(c.MaintenanceRates))
		for y, rate := range c.MaintenanceRates {
			out.MaintenanceRates[y] = rate
		}
	}
	return out
}
