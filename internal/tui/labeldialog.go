package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ebuckley/tagmail/internal/domain"
	"github.com/ebuckley/tagmail/internal/mailbox"
)

// relabelRequestMsg carries the dialog outcome back to the root model.
type relabelRequestMsg struct {
	messageIDs []string
	checked    []string
	unchanged  []string
}

type closeDialogMsg struct{}

// checkState is the tri-state of a dialog entry. Labels carried by every
// selected message start checked, labels carried by only some start mixed.
type checkState int

const (
	stateOff checkState = iota
	stateOn
	stateMixed
)

type dialogEntry struct {
	label domain.Label
	state checkState
	mixed bool
}

// labelDialogModel lets the user check and uncheck user labels for a batch
// of selected messages. Mixed entries left untouched are reported as
// unchanged so partial assignments survive the batch edit.
type labelDialogModel struct {
	messageIDs []string
	entries    []dialogEntry
	cursor     int
	width      int
}

func newLabelDialog(items []mailbox.Item, labels []domain.Label) labelDialogModel {
	d := labelDialogModel{}
	for _, it := range items {
		d.messageIDs = append(d.messageIDs, it.MessageID)
	}

	for _, l := range labels {
		if l.Type != domain.LabelTypeUser {
			continue
		}
		count := 0
		for _, it := range items {
			if containsID(it.LabelIDs, l.ID) {
				count++
			}
		}
		e := dialogEntry{label: l}
		switch {
		case count == len(items) && len(items) > 0:
			e.state = stateOn
		case count > 0:
			e.state = stateMixed
			e.mixed = true
		}
		d.entries = append(d.entries, e)
	}

	return d
}

func (d labelDialogModel) Update(msg tea.Msg) (labelDialogModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if d.cursor > 0 {
				d.cursor--
			}

		case key.Matches(msg, keys.Down):
			if d.cursor < len(d.entries)-1 {
				d.cursor++
			}

		case key.Matches(msg, keys.Select):
			if len(d.entries) > 0 {
				d.entries[d.cursor].state = nextState(d.entries[d.cursor])
			}

		case key.Matches(msg, keys.Enter):
			checked, unchanged := d.outcome()
			req := relabelRequestMsg{
				messageIDs: d.messageIDs,
				checked:    checked,
				unchanged:  unchanged,
			}
			return d, func() tea.Msg { return req }

		case key.Matches(msg, keys.Back):
			return d, func() tea.Msg { return closeDialogMsg{} }
		}
	}

	return d, nil
}

func (d labelDialogModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("Label %d message(s)", len(d.messageIDs))))
	b.WriteString("\n\n")

	if len(d.entries) == 0 {
		b.WriteString(mutedTextStyle.Render("No labels. Create one with 'tagmail labels'."))
	}

	for i, e := range d.entries {
		box := "[ ]"
		switch e.state {
		case stateOn:
			box = "[x]"
		case stateMixed:
			box = "[-]"
		}
		line := fmt.Sprintf("%s %s", box, e.label.Name)
		if i == d.cursor {
			line = selectedStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(mutedTextStyle.Render("space toggle · enter apply · esc cancel"))

	return dialogStyle.Render(b.String())
}

// outcome splits the entries into the checked set to apply and the mixed
// set to leave alone.
func (d labelDialogModel) outcome() (checked, unchanged []string) {
	for _, e := range d.entries {
		switch e.state {
		case stateOn:
			checked = append(checked, e.label.ID)
		case stateMixed:
			unchanged = append(unchanged, e.label.ID)
		}
	}
	return checked, unchanged
}

// nextState cycles off -> on -> off, passing through mixed for entries
// that started out partially assigned.
func nextState(e dialogEntry) checkState {
	switch e.state {
	case stateOff:
		return stateOn
	case stateOn:
		if e.mixed {
			return stateMixed
		}
		return stateOff
	default:
		return stateOff
	}
}

func containsID(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
