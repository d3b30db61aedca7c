package services

import (
	"fmt"
	"reflect"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"clubpoints/models"
	"clubpoints/store"
	"clubpoints/utils"
)

// SessionState is the explicit per-session mutable state: the loaded
// document, the current selection and every uncommitted working copy.
// There are no ambient globals; main constructs one and hands it to the
// handlers.
type SessionState struct {
	ID              string
	Doc             *models.RootDocument
	DataFile        string
	CurrentResortID string

	// PendingResortID is set while a switch away from a dirty resort is
	// blocked, waiting for commit / discard / stay.
	PendingResortID string

	WorkingResorts map[string]*models.Resort

	// ArmedResortID holds the resort whose deletion is armed; confirming
	// any other resort re-arms instead of deleting.
	ArmedResortID string

	Verified     bool
	LastSaveTime time.Time
}

// NewSession builds session state with documented defaults. doc may be nil
// when no default file was found; uploading a document installs one.
func NewSession(doc *models.RootDocument, dataFile string) *SessionState {
	return &SessionState{
		ID:             uuid.New().String(),
		Doc:            doc,
		DataFile:       dataFile,
		WorkingResorts: make(map[string]*models.Resort),
	}
}

// ResetForNewDocument drops all selection and working-copy state and
// installs a freshly loaded document.
func (st *SessionState) ResetForNewDocument(doc *models.RootDocument) {
	st.Doc = doc
	st.CurrentResortID = ""
	st.PendingResortID = ""
	st.WorkingResorts = make(map[string]*models.Resort)
	st.ArmedResortID = ""
	st.Verified = false
	st.LastSaveTime = time.Time{}
}

// SwitchStatus is the outcome of a selection attempt.
type SwitchStatus string

const (
	SwitchOK      SwitchStatus = "ok"
	SwitchBlocked SwitchStatus = "blocked"
)

// SwitchResult reports whether navigation proceeded and, when blocked,
// which resort holds unsaved changes.
type SwitchResult struct {
	Status          SwitchStatus `json:"status"`
	DirtyResortID   string       `json:"dirty_resort_id,omitempty"`
	DirtyResortName string       `json:"dirty_resort_name,omitempty"`
}

// SessionService manages working copies and the switch-safety gate.
// While a switch is blocked the only legal transitions are CommitAndProceed,
// DiscardAndProceed and Stay.
type SessionService interface {
	Working(st *SessionState, resortID string) *models.Resort
	IsDirty(st *SessionState, resortID string) bool
	Select(st *SessionState, resortID string) SwitchResult
	Commit(st *SessionState, resortID string) error
	Discard(st *SessionState, resortID string)
	CommitAndProceed(st *SessionState) error
	DiscardAndProceed(st *SessionState)
	Stay(st *SessionState)
}

// DefaultSessionService is the production implementation.
type DefaultSessionService struct {
	Store store.DocumentStore
}

// Working returns the working copy for the resort, lazily deep-cloning the
// committed record on first access. Nil when the resort does not exist.
func (s *DefaultSessionService) Working(st *SessionState, resortID string) *models.Resort {
	if resortID == "" || st.Doc == nil {
		return nil
	}
	if wc, ok := st.WorkingResorts[resortID]; ok {
		return wc
	}
	committed := st.Doc.FindResort(resortID)
	if committed == nil {
		return nil
	}
	wc := committed.Clone()
	st.WorkingResorts[resortID] = wc
	return wc
}

// IsDirty reports structural divergence between the working copy and the
// committed record. Dirtiness is recomputed by comparison, not tracked by
// flag, so edits that restore the original value leave the resort clean.
func (s *DefaultSessionService) IsDirty(st *SessionState, resortID string) bool {
	wc, ok := st.WorkingResorts[resortID]
	if !ok {
		return false
	}
	committed := st.Doc.FindResort(resortID)
	if committed == nil {
		return false
	}
	return !reflect.DeepEqual(wc, committed)
}

// Select attempts to move the selection. Leaving a resort with unsaved
// changes blocks the switch and records the target; the caller must then
// commit, discard or stay. A working copy whose committed record vanished
// is silently dropped and navigation proceeds.
func (s *DefaultSessionService) Select(st *SessionState, resortID string) SwitchResult {
	prev := st.CurrentResortID
	if prev != "" && prev != resortID {
		if wc, ok := st.WorkingResorts[prev]; ok {
			committed := st.Doc.FindResort(prev)
			switch {
			case committed == nil:
				// Orphaned: the resort was deleted out from under the copy.
				delete(st.WorkingResorts, prev)
			case !reflect.DeepEqual(wc, committed):
				st.PendingResortID = resortID
				return SwitchResult{
					Status:          SwitchBlocked,
					DirtyResortID:   prev,
					DirtyResortName: committed.DisplayName,
				}
			}
		}
	}
	st.CurrentResortID = resortID
	st.PendingResortID = ""
	st.ArmedResortID = ""
	return SwitchResult{Status: SwitchOK}
}

// Commit deep-overwrites the committed record with the working copy,
// persists the document and drops the copy. A resort without a working
// copy commits as a no-op.
func (s *DefaultSessionService) Commit(st *SessionState, resortID string) error {
	wc, ok := st.WorkingResorts[resortID]
	if !ok {
		return nil
	}
	idx := st.Doc.ResortIndex(resortID)
	if idx < 0 {
		// Orphaned copy: nothing to commit into.
		delete(st.WorkingResorts, resortID)
		return nil
	}
	st.Doc.Resorts[idx] = wc.Clone()
	if err := s.Store.Save(st.Doc, st.DataFile); err != nil {
		return fmt.Errorf("commit %s: %w", resortID, err)
	}
	delete(st.WorkingResorts, resortID)
	st.LastSaveTime = time.Now()
	st.Verified = false
	utils.GetLogger().Info("Committed working copy", zap.String("resort", resortID))
	return nil
}

// Discard drops the working copy without touching the committed record.
func (s *DefaultSessionService) Discard(st *SessionState, resortID string) {
	if _, ok := st.WorkingResorts[resortID]; ok {
		delete(st.WorkingResorts, resortID)
		utils.GetLogger().Info("Discarded working copy", zap.String("resort", resortID))
	}
}

// CommitAndProceed resolves a blocked switch by committing the dirty
// resort and completing the pending navigation.
func (s *DefaultSessionService) CommitAndProceed(st *SessionState) error {
	if err := s.Commit(st, st.CurrentResortID); err != nil {
		return err
	}
	s.proceed(st)
	return nil
}

// DiscardAndProceed resolves a blocked switch by dropping the dirty
// resort's changes and completing the pending navigation.
func (s *DefaultSessionService) DiscardAndProceed(st *SessionState) {
	s.Discard(st, st.CurrentResortID)
	s.proceed(st)
}

// Stay cancels a blocked switch, keeping the dirty resort selected.
func (s *DefaultSessionService) Stay(st *SessionState) {
	st.PendingResortID = ""
}

func (s *DefaultSessionService) proceed(st *SessionState) {
	if st.PendingResortID != "" {
		st.CurrentResortID = st.PendingResortID
		st.PendingResortID = ""
		st.ArmedResortID = ""
	}
}
