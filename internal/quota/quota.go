// Package quota classifies account storage usage against a warning
// threshold. Classification is context-free; callers decide how to react
// based on where the check was triggered.
package quota

import "fmt"

// State buckets a usage percentage relative to the warning threshold.
type State int

const (
	BelowWarning State = iota
	Approaching
	Reached
)

func (s State) String() string {
	switch s {
	case BelowWarning:
		return "ok"
	case Approaching:
		return "approaching"
	case Reached:
		return "reached"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Usage is the classification of used space against the account quota.
type Usage struct {
	PercentUsed int
	State       State
}

// Classify computes the integer percentage used (truncating) and its warning
// state. totalBytes == 0 means no quota is configured, which classifies as
// 0% and BelowWarning rather than a division by zero.
func Classify(usedBytes, totalBytes int64, warningThresholdPercent int) Usage {
	if totalBytes == 0 {
		return Usage{PercentUsed: 0, State: BelowWarning}
	}

	pct := int(usedBytes * 100 / totalBytes)
	switch {
	case pct >= 100:
		return Usage{PercentUsed: pct, State: Reached}
	case pct >= warningThresholdPercent:
		return Usage{PercentUsed: pct, State: Approaching}
	}
	return Usage{PercentUsed: pct, State: BelowWarning}
}

// Trigger names the context a classification is reacted to in. The same
// usage produces different notices at app start, on a space-changed event,
// and on a compose attempt.
type Trigger int

const (
	TriggerStartup Trigger = iota
	TriggerSpaceChanged
	TriggerCompose
)

// Notice returns the user-facing warning for this usage in the given
// context, or the empty string when no warning applies.
func (u Usage) Notice(tr Trigger) string {
	switch u.State {
	case Reached:
		if tr == TriggerCompose {
			return "Storage quota reached. Free up space before sending new mail."
		}
		return fmt.Sprintf("Storage quota reached (%d%% used). Incoming mail may be rejected.", u.PercentUsed)
	case Approaching:
		if tr == TriggerCompose {
			return fmt.Sprintf("Storage %d%% full. Large attachments may fail.", u.PercentUsed)
		}
		return fmt.Sprintf("Storage %d%% full.", u.PercentUsed)
	}
	return ""
}
