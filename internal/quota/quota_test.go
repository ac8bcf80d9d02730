package quota

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		name        string
		used, total int64
		threshold   int
		wantPct     int
		wantState   State
	}{
		{"approaching at threshold", 950, 1000, 90, 95, Approaching},
		{"reached at full", 1000, 1000, 90, 100, Reached},
		{"no quota configured", 0, 0, 90, 0, BelowWarning},
		{"below warning", 500, 1000, 90, 50, BelowWarning},
		{"truncating division", 949, 1000, 95, 94, BelowWarning},
		{"exactly at threshold", 900, 1000, 90, 90, Approaching},
		{"over quota", 1100, 1000, 90, 110, Reached},
		{"used with no quota", 5000, 0, 90, 0, BelowWarning},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.used, tt.total, tt.threshold)
			if got.PercentUsed != tt.wantPct {
				t.Errorf("PercentUsed = %d, want %d", got.PercentUsed, tt.wantPct)
			}
			if got.State != tt.wantState {
				t.Errorf("State = %v, want %v", got.State, tt.wantState)
			}
		})
	}
}

func TestUsage_Notice(t *testing.T) {
	ok := Classify(10, 1000, 90)
	if msg := ok.Notice(TriggerStartup); msg != "" {
		t.Errorf("Notice(startup) for ok state = %q, want empty", msg)
	}

	approaching := Classify(950, 1000, 90)
	if msg := approaching.Notice(TriggerSpaceChanged); msg == "" {
		t.Error("Notice(space-changed) for approaching state should not be empty")
	}

	reached := Classify(1000, 1000, 90)
	composeMsg := reached.Notice(TriggerCompose)
	startupMsg := reached.Notice(TriggerStartup)
	if composeMsg == "" || startupMsg == "" {
		t.Fatal("Notice for reached state should never be empty")
	}
	if composeMsg == startupMsg {
		t.Error("compose and startup notices should differ for reached state")
	}
}
