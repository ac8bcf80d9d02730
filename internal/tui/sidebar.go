package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ebuckley/tagmail/internal/domain"
	"github.com/ebuckley/tagmail/internal/mailbox"
)

// locationSelectedMsg is sent when the user selects a mailbox or label via Enter.
type locationSelectedMsg struct {
	labelID string
	name    string
}

// locationNames maps locations to display names.
var locationNames = map[mailbox.Location]string{
	mailbox.LocationInbox:   "Inbox",
	mailbox.LocationStarred: "Starred",
	mailbox.LocationSent:    "Sent",
	mailbox.LocationDrafts:  "Drafts",
	mailbox.LocationTrash:   "Trash",
	mailbox.LocationSpam:    "Spam",
	mailbox.LocationAllMail: "All Mail",
}

// sidebarModel displays the fixed system locations followed by user labels.
type sidebarModel struct {
	labels       []domain.Label
	unread       map[string]int
	cursor       int
	activeLabel  string
	accountEmail string
	width        int
	height       int
	focused      bool
}

func newSidebar() sidebarModel {
	return sidebarModel{
		activeLabel: domain.LabelInbox,
		unread:      map[string]int{},
	}
}

// SetLabels updates the user-label section of the sidebar.
func (s *sidebarModel) SetLabels(labels []domain.Label) {
	s.labels = nil
	for _, l := range labels {
		if l.Type == domain.LabelTypeUser {
			s.labels = append(s.labels, l)
		}
	}
}

// SetUnread updates the per-label unread counters.
func (s *sidebarModel) SetUnread(unread map[string]int) {
	s.unread = unread
}

// SetSize updates the sidebar dimensions.
func (s *sidebarModel) SetSize(w, h int) {
	s.width = w
	s.height = h
}

type sidebarEntry struct {
	labelID string
	name    string
}

func (s sidebarModel) entries() []sidebarEntry {
	var out []sidebarEntry
	for _, loc := range mailbox.Locations() {
		labelID, err := loc.LabelID()
		if err != nil {
			continue
		}
		out = append(out, sidebarEntry{labelID: labelID, name: locationNames[loc]})
	}
	for _, l := range s.labels {
		out = append(out, sidebarEntry{labelID: l.ID, name: l.Name})
	}
	return out
}

// Update handles key events for sidebar navigation.
func (s sidebarModel) Update(msg tea.Msg) (sidebarModel, tea.Cmd) {
	if !s.focused {
		return s, nil
	}

	entries := s.entries()
	if len(entries) == 0 {
		return s, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			s.cursor--
			if s.cursor < 0 {
				s.cursor = len(entries) - 1
			}
		case key.Matches(msg, keys.Down):
			s.cursor++
			if s.cursor >= len(entries) {
				s.cursor = 0
			}
		case key.Matches(msg, keys.Enter):
			e := entries[s.cursor]
			s.activeLabel = e.labelID
			return s, func() tea.Msg {
				return locationSelectedMsg{labelID: e.labelID, name: e.name}
			}
		}
	}

	return s, nil
}

// View renders the sidebar.
func (s sidebarModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("tagmail"))
	b.WriteString("\n")
	if s.accountEmail != "" {
		b.WriteString(mutedTextStyle.Render(truncate(s.accountEmail, max(s.width, 10))))
	}
	b.WriteString("\n")

	entries := s.entries()
	systemCount := len(mailbox.Locations())

	for i, e := range entries {
		if i == systemCount {
			b.WriteString("\n")
			b.WriteString(mutedTextStyle.Render(strings.Repeat("─", max(s.width, 10))))
			b.WriteString("\n")
			b.WriteString(mutedTextStyle.Render("Labels:"))
			b.WriteString("\n")
		}
		b.WriteString(s.renderLine(e, i))
		b.WriteString("\n")
	}

	return b.String()
}

func (s sidebarModel) renderLine(e sidebarEntry, idx int) string {
	prefix := "  "
	if e.labelID == s.activeLabel {
		prefix = "▶ "
	}

	line := prefix + e.name
	if n := s.unread[e.labelID]; n > 0 {
		line = fmt.Sprintf("%s (%d)", line, n)
	}

	padded := lipgloss.NewStyle().Width(max(s.width, 10)).Render(line)
	if s.focused && idx == s.cursor {
		return selectedStyle.Render(padded)
	}
	return padded
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-1] + "…"
}
