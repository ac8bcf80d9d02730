package cli

import (
	"reflect"
	"testing"
)

func TestSortedLabelIDs(t *testing.T) {
	delta := map[string][]string{
		"L3": {"m1"},
		"L1": {"m1", "m2"},
		"L2": {"m2"},
	}

	got := sortedLabelIDs(delta)
	want := []string{"L1", "L2", "L3"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("sortedLabelIDs() = %v, want %v", got, want)
	}
}

func TestSplitCSV(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty", "", nil},
		{"whitespace only", "  ", nil},
		{"single", "L1", []string{"L1"}},
		{"trims and drops blanks", " L1, ,L2 ", []string{"L1", "L2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := splitCSV(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("splitCSV(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
