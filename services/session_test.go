package services

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"clubpoints/models"
	"clubpoints/store"
)

func sessionFixture(t *testing.T) (*SessionState, *DefaultSessionService) {
	t.Helper()
	doc := &models.RootDocument{
		SchemaVersion: "2.0.0",
		Resorts:       []*models.Resort{testResort(), {ID: "palm-cove", DisplayName: "Palm Cove"}},
	}
	st := NewSession(doc, filepath.Join(t.TempDir(), "data_v2.json"))
	return st, &DefaultSessionService{Store: store.NewFileStore()}
}

func TestWorkingLazyClone(t *testing.T) {
	st, svc := sessionFixture(t)

	wc := svc.Working(st, "sunset-bay")
	if wc == nil {
		t.Fatal("Working returned nil for an existing resort")
	}
	if wc == st.Doc.FindResort("sunset-bay") {
		t.Fatal("working copy aliases the committed record")
	}
	if !reflect.DeepEqual(wc, st.Doc.FindResort("sunset-bay")) {
		t.Fatal("fresh working copy differs from the committed record")
	}
	if svc.Working(st, "sunset-bay") != wc {
		t.Fatal("second access must return the same working copy")
	}
	if svc.Working(st, "nope") != nil {
		t.Fatal("Working must return nil for an unknown resort")
	}
}

func TestIsDirtyByStructuralComparison(t *testing.T) {
	st, svc := sessionFixture(t)

	wc := svc.Working(st, "sunset-bay")
	if svc.IsDirty(st, "sunset-bay") {
		t.Fatal("untouched working copy reported dirty")
	}
	original := wc.DisplayName
	wc.DisplayName = "Renamed"
	if !svc.IsDirty(st, "sunset-bay") {
		t.Fatal("edited working copy reported clean")
	}
	// Restoring the original value makes the copy clean again: dirtiness
	// is recomputed, not latched.
	wc.DisplayName = original
	if svc.IsDirty(st, "sunset-bay") {
		t.Fatal("restored working copy reported dirty")
	}
}

func TestSelectBlocksOnDirtyResort(t *testing.T) {
	st, svc := sessionFixture(t)

	if res := svc.Select(st, "sunset-bay"); res.Status != SwitchOK {
		t.Fatalf("first select = %+v", res)
	}
	svc.Working(st, "sunset-bay").DisplayName = "Edited"

	res := svc.Select(st, "palm-cove")
	if res.Status != SwitchBlocked {
		t.Fatalf("switch away from dirty resort = %+v, want blocked", res)
	}
	if res.DirtyResortID != "sunset-bay" || res.DirtyResortName != "Sunset Bay" {
		t.Errorf("blocked result = %+v", res)
	}
	if st.CurrentResortID != "sunset-bay" {
		t.Error("blocked switch must not move the selection")
	}
	if st.PendingResortID != "palm-cove" {
		t.Errorf("pending target = %q, want palm-cove", st.PendingResortID)
	}
}

func TestStayCancelsBlockedSwitch(t *testing.T) {
	st, svc := sessionFixture(t)
	svc.Select(st, "sunset-bay")
	svc.Working(st, "sunset-bay").DisplayName = "Edited"
	svc.Select(st, "palm-cove")

	svc.Stay(st)

	if st.PendingResortID != "" {
		t.Error("Stay must clear the pending target")
	}
	if st.CurrentResortID != "sunset-bay" {
		t.Error("Stay must keep the dirty resort selected")
	}
	if !svc.IsDirty(st, "sunset-bay") {
		t.Error("Stay must keep the working copy")
	}
}

func TestCommitAndProceedPersistsAndNavigates(t *testing.T) {
	st, svc := sessionFixture(t)
	svc.Select(st, "sunset-bay")
	svc.Working(st, "sunset-bay").DisplayName = "Edited"
	svc.Select(st, "palm-cove")

	if err := svc.CommitAndProceed(st); err != nil {
		t.Fatalf("CommitAndProceed: %v", err)
	}
	if st.CurrentResortID != "palm-cove" || st.PendingResortID != "" {
		t.Errorf("navigation incomplete: current=%q pending=%q", st.CurrentResortID, st.PendingResortID)
	}
	if st.Doc.FindResort("sunset-bay").DisplayName != "Edited" {
		t.Error("commit did not overwrite the committed record")
	}
	if _, ok := st.WorkingResorts["sunset-bay"]; ok {
		t.Error("commit must drop the working copy")
	}

	// The commit wrote through to disk.
	reloaded, err := store.NewFileStore().Load(st.DataFile)
	if err != nil || reloaded == nil {
		t.Fatalf("reload after commit: doc=%v err=%v", reloaded, err)
	}
	if reloaded.FindResort("sunset-bay").DisplayName != "Edited" {
		t.Error("persisted document is missing the committed edit")
	}
}

func TestDiscardAndProceedDropsChanges(t *testing.T) {
	st, svc := sessionFixture(t)
	svc.Select(st, "sunset-bay")
	svc.Working(st, "sunset-bay").DisplayName = "Edited"
	svc.Select(st, "palm-cove")

	svc.DiscardAndProceed(st)

	if st.CurrentResortID != "palm-cove" {
		t.Error("discard did not complete the pending navigation")
	}
	if st.Doc.FindResort("sunset-bay").DisplayName != "Sunset Bay" {
		t.Error("discard modified the committed record")
	}
	if _, err := os.Stat(st.DataFile); !os.IsNotExist(err) {
		t.Error("discard must not write to disk")
	}
}

func TestCommitWithoutWorkingCopyIsNoOp(t *testing.T) {
	st, svc := sessionFixture(t)

	if err := svc.Commit(st, "sunset-bay"); err != nil {
		t.Fatalf("Commit without working copy: %v", err)
	}
	if _, err := os.Stat(st.DataFile); !os.IsNotExist(err) {
		t.Error("no-op commit must not write to disk")
	}
}

func TestSelectDropsOrphanedWorkingCopy(t *testing.T) {
	st, svc := sessionFixture(t)
	svc.Select(st, "sunset-bay")
	svc.Working(st, "sunset-bay").DisplayName = "Edited"

	// Delete the committed record out from under the copy.
	idx := st.Doc.ResortIndex("sunset-bay")
	st.Doc.Resorts = append(st.Doc.Resorts[:idx], st.Doc.Resorts[idx+1:]...)

	res := svc.Select(st, "palm-cove")
	if res.Status != SwitchOK {
		t.Fatalf("select over orphaned copy = %+v, want ok", res)
	}
	if _, ok := st.WorkingResorts["sunset-bay"]; ok {
		t.Error("orphaned working copy must be dropped")
	}
}

func TestResetForNewDocument(t *testing.T) {
	st, svc := sessionFixture(t)
	svc.Select(st, "sunset-bay")
	svc.Working(st, "sunset-bay").DisplayName = "Edited"
	st.ArmedResortID = "sunset-bay"

	fresh := &models.RootDocument{SchemaVersion: "2.0.0", Resorts: []*models.Resort{}}
	st.ResetForNewDocument(fresh)

	if st.Doc != fresh {
		t.Error("new document not installed")
	}
	if st.CurrentResortID != "" || st.PendingResortID != "" || st.ArmedResortID != "" {
		t.Error("selection state survived the reset")
	}
	if len(st.WorkingResorts) != 0 {
		t.Error("working copies survived the reset")
	}
}
