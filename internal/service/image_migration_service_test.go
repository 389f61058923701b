package service

import (
	"errors"
	"testing"
	"time"

	"github.com/lnthach/Margay/internal/apperr"
	"github.com/lnthach/Margay/internal/repository"
)

// fakeMigrationRepo records lock state and applied patches.
type fakeMigrationRepo struct {
	lockHeld     bool
	legacyRows   []repository.LegacyAttemptRow
	applied      [][]repository.MigrationPatch
	failPatches  bool
	clearedRows  int64
	orphans      []uint
	multiGroups  []repository.GroupSelectionCount
	missingQs    []uint
	releaseCalls int
}

func (f *fakeMigrationRepo) AcquireLock(name string) (bool, error) {
	if f.lockHeld {
		return false, nil
	}
	f.lockHeld = true
	return true, nil
}

func (f *fakeMigrationRepo) ReleaseLock(name string) error {
	f.lockHeld = false
	f.releaseCalls++
	return nil
}

func (f *fakeMigrationRepo) FindLegacyAttempts() ([]repository.LegacyAttemptRow, error) {
	return f.legacyRows, nil
}

func (f *fakeMigrationRepo) ApplyPatches(patches []repository.MigrationPatch) error {
	if f.failPatches {
		return errors.New("deadlock detected")
	}
	f.applied = append(f.applied, patches)
	return nil
}

func (f *fakeMigrationRepo) ClearDirectFields() (int64, error) { return f.clearedRows, nil }

func (f *fakeMigrationRepo) FindAttemptsMissingGroupKeys() ([]uint, error) { return f.orphans, nil }

func (f *fakeMigrationRepo) FindGroupsWithMultipleSelected() ([]repository.GroupSelectionCount, error) {
	return f.multiGroups, nil
}

func (f *fakeMigrationRepo) FindAttemptsWithMissingQuestion() ([]uint, error) { return f.missingQs, nil }

func uintPtr(v uint) *uint { return &v }

func legacyRow(attemptID, promptID uint, questionID *uint, placement string, selected bool, generatedAt time.Time) repository.LegacyAttemptRow {
	return repository.LegacyAttemptRow{
		AttemptID:     attemptID,
		PromptID:      promptID,
		QuestionID:    questionID,
		PlacementType: placement,
		IsSelected:    selected,
		GeneratedAt:   generatedAt,
	}
}

func TestMigrateLegacyAttemptsSingleGroup(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	repo := &fakeMigrationRepo{
		legacyRows: []repository.LegacyAttemptRow{
			legacyRow(1, 10, uintPtr(100), "question", false, base),
			legacyRow(2, 11, uintPtr(100), "question", true, base.Add(time.Minute)),
			legacyRow(3, 12, uintPtr(100), "question", false, base.Add(2*time.Minute)),
		},
	}
	svc := NewImageMigrationService(repo)

	stats, err := svc.MigrateLegacyAttempts()
	if err != nil {
		t.Fatalf("MigrateLegacyAttempts: %v", err)
	}
	if stats.TotalImages != 3 || stats.MigratedImages != 3 {
		t.Errorf("stats = %+v, want 3 total and 3 migrated", stats)
	}
	if stats.DuplicatesFound != 3 || stats.DuplicatesResolved != 3 {
		t.Errorf("stats = %+v, want 3 duplicates found and resolved", stats)
	}
	if stats.Errors != 0 {
		t.Errorf("stats.Errors = %d, want 0", stats.Errors)
	}

	if len(repo.applied) != 1 {
		t.Fatalf("applied %d groups, want 1", len(repo.applied))
	}
	selected := []uint{}
	for _, patch := range repo.applied[0] {
		if patch.QuestionID != 100 || patch.PlacementType != "question" {
			t.Errorf("patch %d has group (%d, %s), want (100, question)", patch.AttemptID, patch.QuestionID, patch.PlacementType)
		}
		if patch.IsSelected {
			selected = append(selected, patch.AttemptID)
		}
	}
	// The already-selected row keeps its flag even though a later row exists.
	if len(selected) != 1 || selected[0] != 2 {
		t.Errorf("selected patches = %v, want [2]", selected)
	}

	if repo.lockHeld {
		t.Error("migration lock still held after run")
	}
	if repo.releaseCalls != 1 {
		t.Errorf("lock released %d times, want 1", repo.releaseCalls)
	}
}

func TestMigrateKeeperIsLatestWhenNoneSelected(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	repo := &fakeMigrationRepo{
		legacyRows: []repository.LegacyAttemptRow{
			legacyRow(1, 10, uintPtr(5), "option_a", false, base.Add(time.Hour)),
			legacyRow(2, 11, uintPtr(5), "option_a", false, base),
		},
	}
	svc := NewImageMigrationService(repo)

	if _, err := svc.MigrateLegacyAttempts(); err != nil {
		t.Fatalf("MigrateLegacyAttempts: %v", err)
	}
	for _, patch := range repo.applied[0] {
		want := patch.AttemptID == 1
		if patch.IsSelected != want {
			t.Errorf("attempt %d selected = %v, want %v", patch.AttemptID, patch.IsSelected, want)
		}
	}
}

func TestMigrateKeeperTieBreakAmongSelected(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	// Two rows both claim selection; the later generated one wins.
	group := []repository.LegacyAttemptRow{
		legacyRow(1, 10, uintPtr(5), "question", true, base),
		legacyRow(2, 11, uintPtr(5), "question", true, base.Add(time.Minute)),
		legacyRow(3, 12, uintPtr(5), "question", false, base.Add(time.Hour)),
	}
	if got := chooseKeeper(group); group[got].AttemptID != 2 {
		t.Errorf("keeper = attempt %d, want 2", group[got].AttemptID)
	}

	// Fetch order must not change the outcome.
	reversed := []repository.LegacyAttemptRow{group[2], group[1], group[0]}
	if got := chooseKeeper(reversed); reversed[got].AttemptID != 2 {
		t.Errorf("keeper with reversed input = attempt %d, want 2", reversed[got].AttemptID)
	}
}

func TestMigrateCountsUnresolvableRows(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	repo := &fakeMigrationRepo{
		legacyRows: []repository.LegacyAttemptRow{
			legacyRow(1, 10, nil, "", false, base),
			legacyRow(2, 11, uintPtr(7), "question", false, base),
		},
	}
	svc := NewImageMigrationService(repo)

	stats, err := svc.MigrateLegacyAttempts()
	if err != nil {
		t.Fatalf("MigrateLegacyAttempts: %v", err)
	}
	if stats.TotalImages != 2 || stats.MigratedImages != 1 || stats.Errors != 1 {
		t.Errorf("stats = %+v, want 2 total, 1 migrated, 1 error", stats)
	}
	if stats.DuplicatesFound != 0 {
		t.Errorf("single-row group counted as duplicate: %+v", stats)
	}
}

func TestMigrateGroupFailureContinuesBatch(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	repo := &fakeMigrationRepo{
		failPatches: true,
		legacyRows: []repository.LegacyAttemptRow{
			legacyRow(1, 10, uintPtr(1), "question", false, base),
			legacyRow(2, 11, uintPtr(2), "question", false, base),
		},
	}
	svc := NewImageMigrationService(repo)

	stats, err := svc.MigrateLegacyAttempts()
	if err != nil {
		t.Fatalf("MigrateLegacyAttempts: %v", err)
	}
	if stats.MigratedImages != 0 || stats.Errors != 2 {
		t.Errorf("stats = %+v, want 0 migrated and 2 errors", stats)
	}
	if repo.lockHeld {
		t.Error("lock must be released even when every group fails")
	}
}

func TestMigrateSecondRunIsNoOp(t *testing.T) {
	// After a successful run the legacy filter matches nothing.
	repo := &fakeMigrationRepo{legacyRows: nil}
	svc := NewImageMigrationService(repo)

	stats, err := svc.MigrateLegacyAttempts()
	if err != nil {
		t.Fatalf("MigrateLegacyAttempts: %v", err)
	}
	if stats.TotalImages != 0 || stats.MigratedImages != 0 || stats.Errors != 0 {
		t.Errorf("stats = %+v, want all zeros", stats)
	}
}

func TestMigrateRefusedWhileLockHeld(t *testing.T) {
	repo := &fakeMigrationRepo{lockHeld: true}
	svc := NewImageMigrationService(repo)

	_, err := svc.MigrateLegacyAttempts()
	if err == nil {
		t.Fatal("expected error while another migration holds the lock")
	}
	if apperr.KindOf(err) != apperr.KindMigration {
		t.Errorf("error kind = %v, want KindMigration", apperr.KindOf(err))
	}
	if repo.releaseCalls != 0 {
		t.Error("a refused run must not release the other run's lock")
	}
}

func TestValidateMigrationReportsIssues(t *testing.T) {
	repo := &fakeMigrationRepo{
		orphans:     []uint{17},
		multiGroups: []repository.GroupSelectionCount{{QuestionID: 4, PlacementType: "question", SelectedCount: 2}},
		missingQs:   []uint{23},
	}
	svc := NewImageMigrationService(repo)

	issues, err := svc.ValidateMigration()
	if err != nil {
		t.Fatalf("ValidateMigration: %v", err)
	}
	if len(issues) != 3 {
		t.Fatalf("got %d issues, want 3: %v", len(issues), issues)
	}
}

func TestValidateMigrationCleanStore(t *testing.T) {
	svc := NewImageMigrationService(&fakeMigrationRepo{})

	issues, err := svc.ValidateMigration()
	if err != nil {
		t.Fatalf("ValidateMigration: %v", err)
	}
	if len(issues) != 0 {
		t.Errorf("issues = %v, want none", issues)
	}
}

func TestRollbackMigrationReportsRowCount(t *testing.T) {
	svc := NewImageMigrationService(&fakeMigrationRepo{clearedRows: 42})

	reverted, err := svc.RollbackMigration()
	if err != nil {
		t.Fatalf("RollbackMigration: %v", err)
	}
	if reverted != 42 {
		t.Errorf("reverted = %d, want 42", reverted)
	}
}
