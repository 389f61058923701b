package service

import (
	"sort"
	"testing"
	"time"

	"github.com/lnthach/Margay/internal/apperr"
	"github.com/lnthach/Margay/internal/model"
	"gorm.io/gorm"
)

// fakeAttemptRepo keeps attempts in memory and mirrors the transactional
// selection semantics of the real repository.
type fakeAttemptRepo struct {
	attempts []model.ImageAttempt
	nextID   uint
}

func newFakeAttemptRepo() *fakeAttemptRepo {
	return &fakeAttemptRepo{nextID: 1}
}

func (f *fakeAttemptRepo) inGroup(a *model.ImageAttempt, ref model.AttemptGroupRef) bool {
	if ref.Kind == model.GroupLegacy {
		return a.PromptID != nil && *a.PromptID == ref.PromptID
	}
	return a.QuestionID != nil && *a.QuestionID == ref.QuestionID &&
		a.PlacementType != nil && *a.PlacementType == ref.PlacementType
}

func (f *fakeAttemptRepo) CreateSelected(attempt *model.ImageAttempt, ref model.AttemptGroupRef) error {
	next := 1
	for i := range f.attempts {
		if f.inGroup(&f.attempts[i], ref) {
			if f.attempts[i].AttemptNumber >= next {
				next = f.attempts[i].AttemptNumber + 1
			}
			f.attempts[i].IsSelected = false
		}
	}
	attempt.ID = f.nextID
	f.nextID++
	attempt.AttemptNumber = next
	attempt.IsSelected = true
	if attempt.GeneratedAt.IsZero() {
		attempt.GeneratedAt = time.Now()
	}
	f.attempts = append(f.attempts, *attempt)
	return nil
}

func (f *fakeAttemptRepo) SelectExclusive(ref model.AttemptGroupRef, attemptID uint, userID string) error {
	found := false
	for i := range f.attempts {
		if f.attempts[i].ID == attemptID && f.attempts[i].UserID == userID && f.inGroup(&f.attempts[i], ref) {
			found = true
		}
	}
	if !found {
		return gorm.ErrRecordNotFound
	}
	for i := range f.attempts {
		if f.inGroup(&f.attempts[i], ref) {
			f.attempts[i].IsSelected = f.attempts[i].ID == attemptID
		}
	}
	return nil
}

func (f *fakeAttemptRepo) DeselectGroup(ref model.AttemptGroupRef, userID string) error {
	for i := range f.attempts {
		if f.attempts[i].UserID == userID && f.inGroup(&f.attempts[i], ref) {
			f.attempts[i].IsSelected = false
		}
	}
	return nil
}

func (f *fakeAttemptRepo) FindByGroup(ref model.AttemptGroupRef, userID string) ([]model.ImageAttempt, error) {
	var out []model.ImageAttempt
	for i := range f.attempts {
		if f.attempts[i].UserID == userID && f.inGroup(&f.attempts[i], ref) {
			out = append(out, f.attempts[i])
		}
	}
	sort.SliceStable(out, func(a, b int) bool { return out[a].GeneratedAt.After(out[b].GeneratedAt) })
	return out, nil
}

func (f *fakeAttemptRepo) FindByQuestion(questionID uint, userID string) ([]model.ImageAttempt, error) {
	var out []model.ImageAttempt
	for i := range f.attempts {
		a := f.attempts[i]
		if a.UserID == userID && a.QuestionID != nil && *a.QuestionID == questionID {
			out = append(out, a)
		}
	}
	sort.SliceStable(out, func(a, b int) bool { return out[a].GeneratedAt.After(out[b].GeneratedAt) })
	return out, nil
}

func (f *fakeAttemptRepo) FindByID(id uint) (*model.ImageAttempt, error) {
	for i := range f.attempts {
		if f.attempts[i].ID == id {
			a := f.attempts[i]
			return &a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAttemptRepo) UpdateRating(id uint, userID string, rating int, accuracyFeedback *string) error {
	for i := range f.attempts {
		if f.attempts[i].ID == id && f.attempts[i].UserID == userID {
			f.attempts[i].UserRating = &rating
			f.attempts[i].AccuracyFeedback = accuracyFeedback
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeAttemptRepo) selectedIDs(ref model.AttemptGroupRef) []uint {
	var ids []uint
	for i := range f.attempts {
		if f.inGroup(&f.attempts[i], ref) && f.attempts[i].IsSelected {
			ids = append(ids, f.attempts[i].ID)
		}
	}
	return ids
}

type fakePromptRepo struct {
	completed []uint
}

func (f *fakePromptRepo) Create(prompt *model.ImagePrompt) error       { return nil }
func (f *fakePromptRepo) FindByID(id uint) (*model.ImagePrompt, error) { return nil, gorm.ErrRecordNotFound }
func (f *fakePromptRepo) MarkGenerationComplete(id uint) error {
	f.completed = append(f.completed, id)
	return nil
}

func newSelectionService() (ImageSelectionService, *fakeAttemptRepo, *fakePromptRepo) {
	attempts := newFakeAttemptRepo()
	prompts := &fakePromptRepo{}
	return NewImageSelectionService(attempts, prompts), attempts, prompts
}

const testUser = "7b0d7f0e-9f5a-4f14-9a43-2f6d9f1a2b3c"

func TestResolveGroupRef(t *testing.T) {
	promptID := uint(7)
	questionID := uint(42)
	placement := "option_a"
	empty := ""

	ref, err := ResolveGroupRef(&promptID, nil, nil)
	if err != nil {
		t.Fatalf("legacy resolve: %v", err)
	}
	if ref.Kind != model.GroupLegacy || ref.PromptID != 7 {
		t.Errorf("legacy resolve = %v, want prompt:7", ref)
	}

	ref, err = ResolveGroupRef(nil, &questionID, &placement)
	if err != nil {
		t.Fatalf("direct resolve: %v", err)
	}
	if ref.Kind != model.GroupDirect || ref.QuestionID != 42 || ref.PlacementType != "option_a" {
		t.Errorf("direct resolve = %v, want question:42:option_a", ref)
	}

	// Direct addressing wins when both schemas are present.
	ref, err = ResolveGroupRef(&promptID, &questionID, &placement)
	if err != nil {
		t.Fatalf("mixed resolve: %v", err)
	}
	if ref.Kind != model.GroupDirect {
		t.Errorf("mixed resolve kind = %v, want GroupDirect", ref.Kind)
	}

	// An empty placement does not count as direct addressing.
	ref, err = ResolveGroupRef(&promptID, &questionID, &empty)
	if err != nil {
		t.Fatalf("empty placement resolve: %v", err)
	}
	if ref.Kind != model.GroupLegacy {
		t.Errorf("empty placement resolve kind = %v, want GroupLegacy", ref.Kind)
	}

	if _, err = ResolveGroupRef(nil, nil, nil); err == nil {
		t.Error("resolve with no reference fields should fail")
	} else if apperr.KindOf(err) != apperr.KindValidation {
		t.Errorf("resolve error kind = %v, want KindValidation", apperr.KindOf(err))
	}
}

func TestRecordNewAttemptBecomesSelected(t *testing.T) {
	svc, attempts, prompts := newSelectionService()
	ref := model.LegacyRef(5)

	first, err := svc.RecordNewAttempt(ref, "https://img/1.png", "a red apple", "", testUser)
	if err != nil {
		t.Fatalf("RecordNewAttempt: %v", err)
	}
	if first.AttemptNumber != 1 || !first.IsSelected {
		t.Errorf("first attempt = {number %d, selected %v}, want {1, true}", first.AttemptNumber, first.IsSelected)
	}

	second, err := svc.RecordNewAttempt(ref, "https://img/2.png", "a greener apple", "", testUser)
	if err != nil {
		t.Fatalf("RecordNewAttempt: %v", err)
	}
	if second.AttemptNumber != 2 {
		t.Errorf("second attempt number = %d, want 2", second.AttemptNumber)
	}

	if ids := attempts.selectedIDs(ref); len(ids) != 1 || ids[0] != second.ID {
		t.Errorf("selected ids = %v, want [%d]", ids, second.ID)
	}
	if len(prompts.completed) != 2 || prompts.completed[0] != 5 {
		t.Errorf("completed prompts = %v, want prompt 5 marked per attempt", prompts.completed)
	}
}

func TestRecordNewAttemptDirectGroupDoesNotTouchPrompts(t *testing.T) {
	svc, _, prompts := newSelectionService()

	resp, err := svc.RecordNewAttempt(model.DirectRef(9, "question"), "https://img/3.png", "", "", testUser)
	if err != nil {
		t.Fatalf("RecordNewAttempt: %v", err)
	}
	if resp.QuestionID == nil || *resp.QuestionID != 9 {
		t.Errorf("response question_id = %v, want 9", resp.QuestionID)
	}
	if len(prompts.completed) != 0 {
		t.Errorf("direct-group attempt marked prompts complete: %v", prompts.completed)
	}
}

func TestRecordNewAttemptRequiresImageURL(t *testing.T) {
	svc, _, _ := newSelectionService()
	_, err := svc.RecordNewAttempt(model.LegacyRef(1), "", "", "", testUser)
	if err == nil {
		t.Fatal("expected validation error for empty image URL")
	}
	if apperr.KindOf(err) != apperr.KindValidation {
		t.Errorf("error kind = %v, want KindValidation", apperr.KindOf(err))
	}
}

func TestSelectAttemptExclusivity(t *testing.T) {
	svc, attempts, _ := newSelectionService()
	ref := model.DirectRef(3, "option_b")

	a, _ := svc.RecordNewAttempt(ref, "https://img/a.png", "", "", testUser)
	b, _ := svc.RecordNewAttempt(ref, "https://img/b.png", "", "", testUser)

	if err := svc.SelectAttempt(ref, a.ID, testUser); err != nil {
		t.Fatalf("SelectAttempt: %v", err)
	}
	if ids := attempts.selectedIDs(ref); len(ids) != 1 || ids[0] != a.ID {
		t.Errorf("selected ids = %v, want [%d]", ids, a.ID)
	}

	if err := svc.SelectAttempt(ref, b.ID, testUser); err != nil {
		t.Fatalf("SelectAttempt: %v", err)
	}
	if ids := attempts.selectedIDs(ref); len(ids) != 1 || ids[0] != b.ID {
		t.Errorf("selected ids after reselect = %v, want [%d]", ids, b.ID)
	}
}

func TestSelectAttemptNotInGroup(t *testing.T) {
	svc, _, _ := newSelectionService()
	groupA := model.DirectRef(1, "question")
	groupB := model.DirectRef(2, "question")

	a, _ := svc.RecordNewAttempt(groupA, "https://img/a.png", "", "", testUser)

	err := svc.SelectAttempt(groupB, a.ID, testUser)
	if err == nil {
		t.Fatal("selecting an attempt from another group should fail")
	}
	if apperr.KindOf(err) != apperr.KindNotFound {
		t.Errorf("error kind = %v, want KindNotFound", apperr.KindOf(err))
	}
}

func TestSelectAttemptOwnedByOtherUser(t *testing.T) {
	svc, _, _ := newSelectionService()
	ref := model.LegacyRef(8)

	a, _ := svc.RecordNewAttempt(ref, "https://img/a.png", "", "", testUser)

	err := svc.SelectAttempt(ref, a.ID, "0d6d9a41-1111-4222-8333-444455556666")
	if !apperr.IsNotFound(err) {
		t.Errorf("cross-user select err = %v, want not-found", err)
	}
}

func TestDeselectGroupClearsSelection(t *testing.T) {
	svc, attempts, _ := newSelectionService()
	ref := model.LegacyRef(4)

	svc.RecordNewAttempt(ref, "https://img/a.png", "", "", testUser)
	if err := svc.DeselectGroup(ref, testUser); err != nil {
		t.Fatalf("DeselectGroup: %v", err)
	}
	if ids := attempts.selectedIDs(ref); len(ids) != 0 {
		t.Errorf("selected ids after deselect = %v, want none", ids)
	}
}

func TestGetSelectedPrefersSelectedFlag(t *testing.T) {
	svc, _, _ := newSelectionService()
	ref := model.DirectRef(11, "question")

	a, _ := svc.RecordNewAttempt(ref, "https://img/a.png", "", "", testUser)
	svc.RecordNewAttempt(ref, "https://img/b.png", "", "", testUser)
	if err := svc.SelectAttempt(ref, a.ID, testUser); err != nil {
		t.Fatalf("SelectAttempt: %v", err)
	}

	got, err := svc.GetSelected(ref, testUser)
	if err != nil {
		t.Fatalf("GetSelected: %v", err)
	}
	if len(got) != 1 || got[0].ID != a.ID {
		t.Errorf("GetSelected = %v, want single attempt %d", got, a.ID)
	}
}

func TestGetSelectedFallsBackToLatest(t *testing.T) {
	svc, attempts, _ := newSelectionService()
	ref := model.DirectRef(12, "question")

	svc.RecordNewAttempt(ref, "https://img/old.png", "", "", testUser)
	latest, _ := svc.RecordNewAttempt(ref, "https://img/new.png", "", "", testUser)
	// Stagger timestamps; the fake assigns time.Now which can collide.
	attempts.attempts[0].GeneratedAt = time.Now().Add(-time.Hour)

	if err := svc.DeselectGroup(ref, testUser); err != nil {
		t.Fatalf("DeselectGroup: %v", err)
	}

	got, err := svc.GetSelected(ref, testUser)
	if err != nil {
		t.Fatalf("GetSelected: %v", err)
	}
	if len(got) != 1 || got[0].ID != latest.ID {
		t.Errorf("GetSelected fallback = %v, want latest attempt %d", got, latest.ID)
	}
	if got[0].IsSelected {
		t.Error("fallback result should not claim is_selected")
	}
}

func TestGetSelectedEmptyGroup(t *testing.T) {
	svc, _, _ := newSelectionService()

	got, err := svc.GetSelected(model.LegacyRef(99), testUser)
	if err != nil {
		t.Fatalf("GetSelected: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("GetSelected on empty group = %v, want empty slice", got)
	}
}

func TestGetSelectedForQuestionOnePerPlacement(t *testing.T) {
	svc, attempts, _ := newSelectionService()
	q := model.DirectRef(20, "question")
	optA := model.DirectRef(20, "option_a")

	svc.RecordNewAttempt(q, "https://img/q1.png", "", "", testUser)
	qKeeper, _ := svc.RecordNewAttempt(q, "https://img/q2.png", "", "", testUser)
	aKeeper, _ := svc.RecordNewAttempt(optA, "https://img/a1.png", "", "", testUser)
	for i := range attempts.attempts {
		attempts.attempts[i].GeneratedAt = time.Now().Add(time.Duration(i) * time.Second)
	}

	got, err := svc.GetSelectedForQuestion(20, testUser)
	if err != nil {
		t.Fatalf("GetSelectedForQuestion: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d attempts, want one per placement", len(got))
	}
	byPlacement := map[string]uint{}
	for _, resp := range got {
		if resp.PlacementType == nil {
			t.Fatal("response missing placement_type")
		}
		byPlacement[*resp.PlacementType] = resp.ID
	}
	if byPlacement["question"] != qKeeper.ID {
		t.Errorf("question placement = %d, want %d", byPlacement["question"], qKeeper.ID)
	}
	if byPlacement["option_a"] != aKeeper.ID {
		t.Errorf("option_a placement = %d, want %d", byPlacement["option_a"], aKeeper.ID)
	}
}

func TestRateAttemptValidation(t *testing.T) {
	svc, _, _ := newSelectionService()
	ref := model.LegacyRef(2)
	a, _ := svc.RecordNewAttempt(ref, "https://img/a.png", "", "", testUser)

	if err := svc.RateAttempt(a.ID, testUser, 0, nil); apperr.KindOf(err) != apperr.KindValidation {
		t.Errorf("rating 0 err = %v, want validation", err)
	}
	if err := svc.RateAttempt(a.ID, testUser, 6, nil); apperr.KindOf(err) != apperr.KindValidation {
		t.Errorf("rating 6 err = %v, want validation", err)
	}

	bad := "mostly_fine"
	if err := svc.RateAttempt(a.ID, testUser, 3, &bad); apperr.KindOf(err) != apperr.KindValidation {
		t.Errorf("bad feedback err = %v, want validation", err)
	}

	good := model.AccuracyPartiallyCorrect
	if err := svc.RateAttempt(a.ID, testUser, 4, &good); err != nil {
		t.Errorf("valid rating: %v", err)
	}

	if err := svc.RateAttempt(9999, testUser, 4, nil); !apperr.IsNotFound(err) {
		t.Errorf("unknown attempt err = %v, want not-found", err)
	}
}
