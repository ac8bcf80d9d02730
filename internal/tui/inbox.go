package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ebuckley/tagmail/internal/mailbox"
)

// Messages emitted by inboxModel.

type openLabelDialogMsg struct {
	messageIDs []string
}

type itemActionMsg struct {
	messageID string
	action    string
}

// inboxModel displays the projected message list with multi-select.
type inboxModel struct {
	items    []mailbox.Item
	selected map[string]bool
	cursor   int
	offset   int
	width    int
	height   int
	focused  bool
}

func newInbox() inboxModel {
	return inboxModel{selected: map[string]bool{}}
}

func (m inboxModel) Update(msg tea.Msg) (inboxModel, tea.Cmd) {
	if !m.focused {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
				m.adjustScroll()
			}

		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.items)-1 {
				m.cursor++
				m.adjustScroll()
			}

		case key.Matches(msg, keys.Select):
			if id := m.cursorID(); id != "" {
				if m.selected[id] {
					delete(m.selected, id)
				} else {
					m.selected[id] = true
				}
				if m.cursor < len(m.items)-1 {
					m.cursor++
					m.adjustScroll()
				}
			}

		case key.Matches(msg, keys.Label):
			ids := m.SelectedIDs()
			if len(ids) == 0 {
				return m, nil
			}
			return m, func() tea.Msg {
				return openLabelDialogMsg{messageIDs: ids}
			}

		case key.Matches(msg, keys.Star):
			return m, m.actionCmd("star")

		case key.Matches(msg, keys.Unread):
			return m, m.actionCmd("unread")

		case key.Matches(msg, keys.Back):
			m.selected = map[string]bool{}
		}
	}

	return m, nil
}

func (m inboxModel) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	if len(m.items) == 0 {
		return mutedTextStyle.Render("No messages")
	}

	var b strings.Builder
	end := m.offset + m.visibleRows()
	if end > len(m.items) {
		end = len(m.items)
	}

	for i := m.offset; i < end; i++ {
		if i > m.offset {
			b.WriteByte('\n')
		}
		line := m.renderRow(i)
		if i == m.cursor && m.focused {
			line = selectedStyle.Width(m.width).Render(line)
		}
		b.WriteString(line)
	}

	return b.String()
}

// SetItems replaces the displayed items and clears the selection.
func (m *inboxModel) SetItems(items []mailbox.Item) {
	m.items = items
	m.selected = map[string]bool{}
	m.clampCursor()
}

// SetSize updates the dimensions available for rendering.
func (m *inboxModel) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.adjustScroll()
}

// SelectedIDs returns the multi-selection in list order, or the cursor item
// when nothing is explicitly selected.
func (m inboxModel) SelectedIDs() []string {
	if len(m.selected) == 0 {
		if id := m.cursorID(); id != "" {
			return []string{id}
		}
		return nil
	}
	var ids []string
	for _, it := range m.items {
		if m.selected[it.MessageID] {
			ids = append(ids, it.MessageID)
		}
	}
	return ids
}

// SelectedItems returns the items backing SelectedIDs.
func (m inboxModel) SelectedItems() []mailbox.Item {
	want := make(map[string]bool)
	for _, id := range m.SelectedIDs() {
		want[id] = true
	}
	var out []mailbox.Item
	for _, it := range m.items {
		if want[it.MessageID] {
			out = append(out, it)
		}
	}
	return out
}

func (m inboxModel) cursorID() string {
	if len(m.items) == 0 || m.cursor >= len(m.items) {
		return ""
	}
	return m.items[m.cursor].MessageID
}

func (m inboxModel) visibleRows() int {
	if m.height < 1 {
		return 1
	}
	return m.height
}

func (m *inboxModel) adjustScroll() {
	visible := m.visibleRows()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+visible {
		m.offset = m.cursor - visible + 1
	}
}

func (m *inboxModel) clampCursor() {
	if len(m.items) == 0 {
		m.cursor = 0
		m.offset = 0
		return
	}
	if m.cursor >= len(m.items) {
		m.cursor = len(m.items) - 1
	}
	m.adjustScroll()
}

func (m inboxModel) actionCmd(action string) tea.Cmd {
	id := m.cursorID()
	if id == "" {
		return nil
	}
	return func() tea.Msg {
		return itemActionMsg{messageID: id, action: action}
	}
}

func (m inboxModel) renderRow(idx int) string {
	it := m.items[idx]

	mark := "  "
	if m.selected[it.MessageID] {
		mark = markStyle.Render("✓ ")
	}

	star := "  "
	if it.IsStarred {
		star = starStyle.Render("★ ")
	}

	attach := " "
	if it.HasAttachments {
		attach = "📎"
	}

	date := relativeDate(it.Date)

	fromWidth := 18
	dateWidth := len(date)
	subjectWidth := m.width - fromWidth - dateWidth - 9
	if subjectWidth < 10 {
		subjectWidth = 10
	}

	from := truncate(it.SenderName, fromWidth)
	subject := truncate(it.Subject, subjectWidth)

	fromCol := lipgloss.NewStyle().Width(fromWidth).Render(from)
	subjectCol := lipgloss.NewStyle().Width(subjectWidth).Render(subject)
	dateCol := mutedTextStyle.Width(dateWidth).Render(date)

	line := mark + star + attach + " " + fromCol + "  " + subjectCol + "  " + dateCol

	if !it.IsRead {
		line = unreadStyle.Render(line)
	}

	return line
}

// relativeDate formats a timestamp relative to now: time for today, weekday
// within the last week, date otherwise.
func relativeDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	now := time.Now()
	switch {
	case t.Year() == now.Year() && t.YearDay() == now.YearDay():
		return t.Format("15:04")
	case now.Sub(t) < 7*24*time.Hour:
		return t.Format("Mon")
	case t.Year() == now.Year():
		return t.Format("Jan 2")
	}
	return fmt.Sprintf("%d-%02d-%02d", t.Year(), t.Month(), t.Day())
}
