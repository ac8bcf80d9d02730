package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type statusKind int

const (
	statusInfo statusKind = iota
	statusWarn
	statusError
)

// statusBarModel shows transient notices and the shortcut hints.
type statusBarModel struct {
	message string
	kind    statusKind
	width   int
}

func (s *statusBarModel) SetInfo(msg string) {
	s.message = msg
	s.kind = statusInfo
}

func (s *statusBarModel) SetWarn(msg string) {
	s.message = msg
	s.kind = statusWarn
}

func (s *statusBarModel) SetError(err error) {
	if err == nil {
		return
	}
	s.message = err.Error()
	s.kind = statusError
}

func (s *statusBarModel) Clear() {
	s.message = ""
	s.kind = statusInfo
}

func (s statusBarModel) View() string {
	hints := "space select · l labels · s star · u unread · S sync · @ account · q quit"

	text := s.message
	switch s.kind {
	case statusError:
		text = lipgloss.NewStyle().Foreground(errorColor).Render(text)
	case statusWarn:
		text = lipgloss.NewStyle().Foreground(warnColor).Render(text)
	}

	if text == "" {
		text = mutedTextStyle.Render(hints)
	}

	gap := s.width - lipgloss.Width(text)
	if gap < 1 {
		gap = 1
	}

	return statusBarStyle.Width(s.width).Render(text + strings.Repeat(" ", gap))
}
