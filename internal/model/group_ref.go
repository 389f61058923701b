package model

import "fmt"

// GroupKind discriminates the two addressing schemas for attempt groups.
type GroupKind int

const (
	// GroupLegacy addresses a group through its ImagePrompt.
	GroupLegacy GroupKind = iota
	// GroupDirect addresses a group by (question, placement) directly.
	GroupDirect
)

// AttemptGroupRef identifies a group of image attempts under either schema.
// Construct with LegacyRef or DirectRef; never branch on field presence
// elsewhere.
type AttemptGroupRef struct {
	Kind          GroupKind
	PromptID      uint
	QuestionID    uint
	PlacementType string
}

func LegacyRef(promptID uint) AttemptGroupRef {
	return AttemptGroupRef{Kind: GroupLegacy, PromptID: promptID}
}

func DirectRef(questionID uint, placementType string) AttemptGroupRef {
	return AttemptGroupRef{Kind: GroupDirect, QuestionID: questionID, PlacementType: placementType}
}

// Key resolves either variant to a single comparable group key.
func (r AttemptGroupRef) Key() string {
	if r.Kind == GroupLegacy {
		return fmt.Sprintf("prompt:%d", r.PromptID)
	}
	return fmt.Sprintf("question:%d:%s", r.QuestionID, r.PlacementType)
}

func (r AttemptGroupRef) String() string { return r.Key() }
