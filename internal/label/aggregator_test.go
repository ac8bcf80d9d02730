package label

import (
	"slices"
	"testing"

	"github.com/ebuckley/tagmail/internal/domain"
)

func mapLookup(msgs map[string]*domain.Message) MessageLookup {
	return func(id string) (*domain.Message, bool) {
		m, ok := msgs[id]
		return m, ok
	}
}

func TestAggregate_BatchesInProcessingOrder(t *testing.T) {
	dir := testDirectory()
	msgs := map[string]*domain.Message{
		"m1": {ID: "m1", Subject: "first", LabelIDs: []string{"F1"}},
		"m2": {ID: "m2", Subject: "second", LabelIDs: []string{"F1", "L1"}},
	}

	delta, rejections := Aggregate(
		[]string{"m1", "m2"},
		[]string{"L2"}, nil,
		mapLookup(msgs), dir, 5,
	)

	if len(rejections) != 0 {
		t.Fatalf("rejections = %v, want none", rejections)
	}
	if got := delta.Apply["L2"]; !slices.Equal(got, []string{"m1", "m2"}) {
		t.Errorf("Apply[L2] = %v, want [m1 m2]", got)
	}
	if got := delta.Remove["L1"]; !slices.Equal(got, []string{"m2"}) {
		t.Errorf("Remove[L1] = %v, want [m2]", got)
	}
}

func TestAggregate_MissingMessageSkippedSilently(t *testing.T) {
	dir := testDirectory()
	msgs := map[string]*domain.Message{
		"m2": {ID: "m2", Subject: "here", LabelIDs: nil},
	}

	delta, rejections := Aggregate(
		[]string{"m1", "m2", "m3"},
		[]string{"L1"}, nil,
		mapLookup(msgs), dir, 5,
	)

	if len(rejections) != 0 {
		t.Fatalf("rejections = %v, want none", rejections)
	}
	if got := delta.Apply["L1"]; !slices.Equal(got, []string{"m2"}) {
		t.Errorf("Apply[L1] = %v, want [m2]", got)
	}
}

func TestAggregate_ContinuesAfterRejection(t *testing.T) {
	dir := testDirectory()
	msgs := map[string]*domain.Message{
		"m1": {ID: "m1", Subject: "overloaded", LabelIDs: []string{"L1", "L2", "L3"}},
		"m2": {ID: "m2", Subject: "fine", LabelIDs: []string{"L1"}},
	}

	// Checking F1 on top of three kept labels pushes m1 to 4 > 3; m2 stays
	// at 2 and goes through.
	delta, rejections := Aggregate(
		[]string{"m1", "m2"},
		[]string{"F1"},
		[]string{"L1", "L2", "L3"},
		mapLookup(msgs), dir, 3,
	)

	if len(rejections) != 1 || rejections[0].MessageID != "m1" {
		t.Fatalf("rejections = %v, want one for m1", rejections)
	}
	if got := delta.Apply["F1"]; !slices.Equal(got, []string{"m2"}) {
		t.Errorf("Apply[F1] = %v, want [m2]", got)
	}
	for labelID, ids := range delta.Apply {
		if slices.Contains(ids, "m1") {
			t.Errorf("rejected m1 present in Apply[%s]", labelID)
		}
	}
	for labelID, ids := range delta.Remove {
		if slices.Contains(ids, "m1") {
			t.Errorf("rejected m1 present in Remove[%s]", labelID)
		}
	}
}

func TestAggregate_EmptySelection(t *testing.T) {
	delta, rejections := Aggregate(nil, []string{"L1"}, nil, mapLookup(nil), testDirectory(), 5)
	if !delta.Empty() {
		t.Errorf("delta = %+v, want empty", delta)
	}
	if len(rejections) != 0 {
		t.Errorf("rejections = %v, want none", rejections)
	}
}
