package services

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"clubpoints/models"
	"clubpoints/utils"
)

// RenameService implements the shared rename-and-cascade contract: blank
// names are rejected, old == new succeeds as a no-op, a case-insensitive
// collision with a different existing name is rejected, and otherwise
// every occurrence across every year is rewritten. The returned bool
// reports whether anything changed (false when the old name was absent).
type RenameService interface {
	RenameSeason(r *models.Resort, oldName, newName string) (bool, error)
	RenameRoomType(r *models.Resort, oldName, newName string) (bool, error)
	RenameHoliday(r *models.Resort, oldRef, newName, newRef string) (bool, error)
}

// DefaultRenameService is the production implementation.
type DefaultRenameService struct{}

// RenameSeason rewrites Season.Name across all years.
func (s *DefaultRenameService) RenameSeason(r *models.Resort, oldName, newName string) (bool, error) {
	oldName = strings.TrimSpace(oldName)
	newName = strings.TrimSpace(newName)
	if oldName == "" || newName == "" {
		return false, fmt.Errorf("season rename: %w", models.ErrEmptyField)
	}
	if oldName == newName {
		return false, nil
	}
	for _, existing := range r.SeasonNames() {
		if strings.EqualFold(existing, newName) && existing != oldName {
			return false, fmt.Errorf("season %q: %w", newName, models.ErrDuplicateName)
		}
	}
	changed := false
	for _, yd := range r.Years {
		for _, season := range yd.Seasons {
			if strings.TrimSpace(season.Name) == oldName {
				season.Name = newName
				changed = true
			}
		}
	}
	if changed {
		utils.GetLogger().Info("Renamed season across all years",
			zap.String("resort", r.ID), zap.String("from", oldName), zap.String("to", newName))
	}
	return changed, nil
}

// RenameRoomType moves the key in every room_points table across all
// years, seasons and holidays.
func (s *DefaultRenameService) RenameRoomType(r *models.Resort, oldName, newName string) (bool, error) {
	oldName = strings.TrimSpace(oldName)
	newName = strings.TrimSpace(newName)
	if oldName == "" || newName == "" {
		return false, fmt.Errorf("room rename: %w", models.ErrEmptyField)
	}
	if oldName == newName {
		return false, nil
	}
	for _, existing := range r.RoomTypes() {
		if strings.EqualFold(existing, newName) && existing != oldName {
			return false, fmt.Errorf("room type %q: %w", newName, models.ErrDuplicateName)
		}
	}
	changed := false
	move := func(points map[string]int) {
		if pts, ok := points[oldName]; ok {
			points[newName] = pts
			delete(points, oldName)
			changed = true
		}
	}
	for _, yd := range r.Years {
		for _, season := range yd.Seasons {
			for _, cat := range season.DayCategories {
				move(cat.RoomPoints)
			}
		}
		for _, h := range yd.Holidays {
			move(h.RoomPoints)
		}
	}
	if changed {
		utils.GetLogger().Info("Renamed room type across resort",
			zap.String("resort", r.ID), zap.String("from", oldName), zap.String("to", newName))
	}
	return changed, nil
}

// RenameHoliday rewrites name and global_reference together for every
// year's holiday matching the old reference.
func (s *DefaultRenameService) RenameHoliday(r *models.Resort, oldRef, newName, newRef string) (bool, error) {
	oldRef = strings.TrimSpace(oldRef)
	newName = strings.TrimSpace(newName)
	newRef = strings.TrimSpace(newRef)
	if oldRef == "" || newName == "" || newRef == "" {
		return false, fmt.Errorf("holiday rename: %w", models.ErrEmptyField)
	}
	if oldRef == newRef {
		// Reference unchanged; still allow updating the display name below.
	} else {
		for _, yd := range r.Years {
			for _, h := range yd.Holidays {
				if key := h.Key(); strings.EqualFold(key, newRef) && key != oldRef {
					return false, fmt.Errorf("holiday reference %q: %w", newRef, models.ErrDuplicateName)
				}
			}
		}
	}
	changed := false
	for _, yd := range r.Years {
		for _, h := range yd.Holidays {
			if h.Key() == oldRef {
				if h.Name != newName || h.GlobalReference != newRef {
					changed = true
				}
				h.Name = newName
				h.GlobalReference = newRef
			}
		}
	}
	if changed {
		utils.GetLogger().Info("Renamed holiday across all years",
			zap.String("resort", r.ID), zap.String("from", oldRef), zap.String("to", newRef))
	}
	return changed, nil
}
