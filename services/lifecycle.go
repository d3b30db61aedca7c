package services

import (
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"clubpoints/models"
	"clubpoints/utils"
)

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// GenerateResortID slugifies a display name into a stable identifier:
// lowercase, runs of non-alphanumerics collapsed to single hyphens,
// trimmed. Falls back to "resort" for names with no usable characters.
func GenerateResortID(name string) string {
	slug := nonSlugChars.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "-")
	slug = strings.Trim(slug, "-")
	if slug == "" {
		return "resort"
	}
	return slug
}

// GenerateResortCode derives a short uppercase code from the initials of
// up to the first three words of the name. Defaults to "RST".
func GenerateResortCode(name string) string {
	var b strings.Builder
	for i, part := range strings.Fields(name) {
		if i == 3 {
			break
		}
		runes := []rune(part)
		b.WriteString(strings.ToUpper(string(runes[0])))
	}
	if b.Len() == 0 {
		return "RST"
	}
	return b.String()
}

// MakeUniqueResortID disambiguates a slug against the existing resorts by
// suffixing -2, -3, ... until free.
func MakeUniqueResortID(baseID string, resorts []*models.Resort) string {
	existing := make(map[string]struct{}, len(resorts))
	for _, r := range resorts {
		existing[r.ID] = struct{}{}
	}
	if _, taken := existing[baseID]; !taken {
		return baseID
	}
	for i := 2; ; i++ {
		candidate := fmt.Sprintf("%s-%d", baseID, i)
		if _, taken := existing[candidate]; !taken {
			return candidate
		}
	}
}

// ResortService creates, clones and deletes resorts. Deletion is a
// two-phase confirm: Arm for one resort, then Confirm that same resort
// or Cancel.
type ResortService interface {
	Create(st *SessionState, name string) (*models.Resort, error)
	Clone(st *SessionState, sourceID, newName, newID string) (*models.Resort, error)
	ArmDelete(st *SessionState, resortID string)
	CancelDelete(st *SessionState)
	ConfirmDelete(st *SessionState, resortID string) error
}

// DefaultResortService is the production implementation.
type DefaultResortService struct{}

// Create appends a blank resort and selects it.
func (s *DefaultResortService) Create(st *SessionState, name string) (*models.Resort, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("resort name: %w", models.ErrEmptyField)
	}
	if hasDisplayName(st.Doc.Resorts, name) {
		return nil, fmt.Errorf("resort %q: %w", name, models.ErrDuplicateName)
	}
	id := MakeUniqueResortID(GenerateResortID(name), st.Doc.Resorts)
	r := &models.Resort{
		ID:          id,
		DisplayName: name,
		Code:        GenerateResortCode(name),
		ResortName:  name,
		Address:     "",
		Timezone:    "UTC",
		Years:       map[string]*models.YearData{},
	}
	st.Doc.Resorts = append(st.Doc.Resorts, r)
	st.CurrentResortID = id
	utils.GetLogger().Info("Created resort", zap.String("id", id), zap.String("name", name))
	return r, nil
}

// Clone deep-copies the committed source resort under a new identity. An
// empty newID derives one from the new name; an explicit newID that is
// already taken is rejected.
func (s *DefaultResortService) Clone(st *SessionState, sourceID, newName, newID string) (*models.Resort, error) {
	newName = strings.TrimSpace(newName)
	newID = strings.TrimSpace(newID)
	if newName == "" {
		return nil, fmt.Errorf("resort name: %w", models.ErrEmptyField)
	}
	source := st.Doc.FindResort(sourceID)
	if source == nil {
		return nil, fmt.Errorf("resort %q: %w", sourceID, models.ErrNotFound)
	}
	if hasDisplayName(st.Doc.Resorts, newName) {
		return nil, fmt.Errorf("resort %q: %w", newName, models.ErrDuplicateName)
	}
	if newID == "" {
		newID = MakeUniqueResortID(GenerateResortID(newName), st.Doc.Resorts)
	} else if st.Doc.FindResort(newID) != nil {
		return nil, fmt.Errorf("resort id %q: %w", newID, models.ErrDuplicateName)
	}
	cloned := source.Clone()
	cloned.ID = newID
	cloned.DisplayName = newName
	cloned.Code = GenerateResortCode(newName)
	cloned.ResortName = newName
	st.Doc.Resorts = append(st.Doc.Resorts, cloned)
	st.CurrentResortID = newID
	utils.GetLogger().Info("Cloned resort",
		zap.String("source", sourceID), zap.String("id", newID), zap.String("name", newName))
	return cloned, nil
}

// ArmDelete marks the pending deletion of one resort.
func (s *DefaultResortService) ArmDelete(st *SessionState, resortID string) {
	st.ArmedResortID = resortID
}

// CancelDelete clears a pending deletion.
func (s *DefaultResortService) CancelDelete(st *SessionState) {
	st.ArmedResortID = ""
}

// ConfirmDelete removes the committed record and any working copy
// atomically. Requires a prior ArmDelete for the same resort; arming one
// resort never authorizes deleting another.
func (s *DefaultResortService) ConfirmDelete(st *SessionState, resortID string) error {
	if st.ArmedResortID != resortID {
		return fmt.Errorf("delete not armed for resort %q: %w", resortID, models.ErrNotFound)
	}
	idx := st.Doc.ResortIndex(resortID)
	if idx < 0 {
		st.ArmedResortID = ""
		return fmt.Errorf("resort %q: %w", resortID, models.ErrNotFound)
	}
	st.Doc.Resorts = append(st.Doc.Resorts[:idx], st.Doc.Resorts[idx+1:]...)
	delete(st.WorkingResorts, resortID)
	if st.CurrentResortID == resortID {
		st.CurrentResortID = ""
	}
	st.ArmedResortID = ""
	utils.GetLogger().Info("Deleted resort", zap.String("id", resortID))
	return nil
}

func hasDisplayName(resorts []*models.Resort, name string) bool {
	for _, r := range resorts {
		if strings.EqualFold(strings.TrimSpace(r.DisplayName), name) {
			return true
		}
	}
	return false
}
