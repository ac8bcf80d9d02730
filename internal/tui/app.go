// Package tui implements the interactive mailbox interface: a sidebar of
// locations and labels, a multi-select message list, and the label dialog.
package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ebuckley/tagmail/internal/app"
	"github.com/ebuckley/tagmail/internal/config"
	"github.com/ebuckley/tagmail/internal/domain"
	"github.com/ebuckley/tagmail/internal/mailbox"
	"github.com/ebuckley/tagmail/internal/provider"
	"github.com/ebuckley/tagmail/internal/quota"
	"github.com/ebuckley/tagmail/internal/store"
)

// ProviderFactory builds a provider for an account when the user switches
// accounts inside the TUI.
type ProviderFactory func(accountID string) provider.MailProvider

type pane int

const (
	paneSidebar pane = iota
	paneList
)

const sidebarWidth = 26

type model struct {
	store     store.Store
	provider  provider.MailProvider
	factory   ProviderFactory
	accountID string
	cfg       *config.Config

	relabelSvc *app.RelabelService
	syncSvc    *app.SyncService

	sidebar sidebarModel
	inbox   inboxModel
	status  statusBarModel
	dialog  *labelDialogModel

	labels      []domain.Label
	accounts    []domain.Account
	activeLabel string
	activePane  pane
	syncing     bool

	width  int
	height int
}

// Messages produced by the async commands.

type accountLoadedMsg struct {
	account  domain.Account
	accounts []domain.Account
	notice   string
	err      error
}

type labelsLoadedMsg struct {
	labels []domain.Label
	err    error
}

type itemsLoadedMsg struct {
	items []mailbox.Item
	err   error
}

type unreadLoadedMsg struct {
	unread map[string]int
	err    error
}

type relabelDoneMsg struct {
	outcome app.RelabelOutcome
	err     error
}

type syncDoneMsg struct {
	err error
}

type actionDoneMsg struct {
	err error
}

// Run starts the interactive interface for the given account.
func Run(s store.Store, p provider.MailProvider, accountID string, cfg *config.Config, factory ProviderFactory) error {
	m := newModel(s, p, accountID, cfg, factory)
	prog := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := prog.Run(); err != nil {
		return fmt.Errorf("failed to run interface: %w", err)
	}
	return nil
}

func newModel(s store.Store, p provider.MailProvider, accountID string, cfg *config.Config, factory ProviderFactory) model {
	m := model{
		store:       s,
		provider:    p,
		factory:     factory,
		accountID:   accountID,
		cfg:         cfg,
		relabelSvc:  app.NewRelabelService(s, p, accountID),
		syncSvc:     app.NewSyncService(s, p, accountID),
		sidebar:     newSidebar(),
		inbox:       newInbox(),
		activeLabel: domain.LabelInbox,
		activePane:  paneList,
	}
	m.inbox.focused = true
	return m
}

func (m model) Init() tea.Cmd {
	return tea.Batch(
		m.loadAccountCmd(quota.TriggerStartup),
		m.loadLabelsCmd(),
		m.loadItemsCmd(m.activeLabel),
		m.loadUnreadCmd(),
	)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case accountLoadedMsg:
		if msg.err != nil {
			m.status.SetError(msg.err)
			return m, nil
		}
		m.accounts = msg.accounts
		m.sidebar.accountEmail = msg.account.Email
		if msg.notice != "" {
			m.status.SetWarn(msg.notice)
		}
		return m, nil

	case labelsLoadedMsg:
		if msg.err != nil {
			m.status.SetError(msg.err)
			return m, nil
		}
		m.labels = msg.labels
		m.sidebar.SetLabels(msg.labels)
		return m, nil

	case itemsLoadedMsg:
		if msg.err != nil {
			m.status.SetError(msg.err)
			return m, nil
		}
		m.inbox.SetItems(msg.items)
		return m, nil

	case unreadLoadedMsg:
		if msg.err == nil {
			m.sidebar.SetUnread(msg.unread)
		}
		return m, nil

	case locationSelectedMsg:
		m.activeLabel = msg.labelID
		m.setPane(paneList)
		m.status.SetInfo(msg.name)
		return m, m.loadItemsCmd(msg.labelID)

	case openLabelDialogMsg:
		d := newLabelDialog(m.inbox.SelectedItems(), m.labels)
		m.dialog = &d
		return m, nil

	case closeDialogMsg:
		m.dialog = nil
		return m, nil

	case relabelRequestMsg:
		m.dialog = nil
		m.status.SetInfo("Applying labels...")
		return m, m.relabelCmd(msg)

	case relabelDoneMsg:
		if msg.err != nil {
			m.status.SetError(msg.err)
			return m, nil
		}
		m.status.SetInfo(relabelSummary(msg.outcome))
		if len(msg.outcome.Rejections) > 0 {
			r := msg.outcome.Rejections[0]
			m.status.SetWarn(fmt.Sprintf("%q not changed: %d labels max per message", r.Subject, r.Limit))
		}
		return m, tea.Batch(m.loadItemsCmd(m.activeLabel), m.loadUnreadCmd())

	case itemActionMsg:
		return m, m.toggleCmd(msg.messageID, msg.action)

	case actionDoneMsg:
		if msg.err != nil {
			m.status.SetError(msg.err)
			return m, nil
		}
		return m, tea.Batch(m.loadItemsCmd(m.activeLabel), m.loadUnreadCmd())

	case syncDoneMsg:
		m.syncing = false
		if msg.err != nil {
			m.status.SetError(msg.err)
			return m, nil
		}
		m.status.SetInfo("Sync complete")
		return m, tea.Batch(
			m.loadAccountCmd(quota.TriggerSpaceChanged),
			m.loadLabelsCmd(),
			m.loadItemsCmd(m.activeLabel),
			m.loadUnreadCmd(),
		)
	}

	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.dialog != nil {
		d, cmd := m.dialog.Update(msg)
		m.dialog = &d
		return m, cmd
	}

	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.Tab):
		if m.activePane == paneSidebar {
			m.setPane(paneList)
		} else {
			m.setPane(paneSidebar)
		}
		return m, nil

	case key.Matches(msg, keys.Sync):
		if m.syncing {
			return m, nil
		}
		m.syncing = true
		m.status.SetInfo("Syncing...")
		return m, m.syncCmd()

	case key.Matches(msg, keys.SwitchAccount):
		return m.switchAccount()
	}

	var cmd tea.Cmd
	if m.activePane == paneSidebar {
		m.sidebar, cmd = m.sidebar.Update(msg)
	} else {
		m.inbox, cmd = m.inbox.Update(msg)
	}
	return m, cmd
}

// switchAccount rotates to the next configured account and reloads everything
// through a provider built for it.
func (m model) switchAccount() (tea.Model, tea.Cmd) {
	if len(m.accounts) < 2 {
		m.status.SetInfo("No other accounts")
		return m, nil
	}

	next := 0
	for i, a := range m.accounts {
		if a.ID == m.accountID {
			next = (i + 1) % len(m.accounts)
			break
		}
	}

	account := m.accounts[next]
	m.accountID = account.ID
	m.provider = m.factory(account.ID)
	m.relabelSvc = app.NewRelabelService(m.store, m.provider, account.ID)
	m.syncSvc = app.NewSyncService(m.store, m.provider, account.ID)
	m.sidebar.accountEmail = account.Email
	m.activeLabel = domain.LabelInbox
	m.sidebar.activeLabel = domain.LabelInbox
	m.status.SetInfo("Switched to " + account.Email)

	return m, tea.Batch(
		m.loadAccountCmd(quota.TriggerStartup),
		m.loadLabelsCmd(),
		m.loadItemsCmd(m.activeLabel),
		m.loadUnreadCmd(),
	)
}

func (m model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		sidebarStyle.Render(m.sidebar.View()),
		listStyle.Render(m.inbox.View()),
	)

	if m.dialog != nil {
		body = lipgloss.Place(m.width, lipgloss.Height(body),
			lipgloss.Center, lipgloss.Center, m.dialog.View())
	}

	return body + "\n" + m.status.View()
}

func (m *model) layout() {
	contentHeight := m.height - 4
	if contentHeight < 3 {
		contentHeight = 3
	}
	m.sidebar.SetSize(sidebarWidth-4, contentHeight)
	m.inbox.SetSize(m.width-sidebarWidth-6, contentHeight)
	m.status.width = m.width
}

func (m *model) setPane(p pane) {
	m.activePane = p
	m.sidebar.focused = p == paneSidebar
	m.inbox.focused = p == paneList
}

// Commands.

func (m model) loadAccountCmd(tr quota.Trigger) tea.Cmd {
	s, accountID, cfg := m.store, m.accountID, m.cfg
	return func() tea.Msg {
		ctx := context.Background()
		account, err := s.GetAccount(ctx, accountID)
		if err != nil {
			return accountLoadedMsg{err: err}
		}
		accounts, err := s.ListAccounts(ctx)
		if err != nil {
			return accountLoadedMsg{err: err}
		}
		usage := quota.Classify(account.UsedBytes, account.TotalBytes, cfg.Storage.WarningThresholdPercent)
		return accountLoadedMsg{
			account:  account,
			accounts: accounts,
			notice:   usage.Notice(tr),
		}
	}
}

func (m model) loadLabelsCmd() tea.Cmd {
	s, accountID := m.store, m.accountID
	return func() tea.Msg {
		labels, err := s.ListLabels(context.Background(), accountID)
		return labelsLoadedMsg{labels: labels, err: err}
	}
}

func (m model) loadItemsCmd(labelID string) tea.Cmd {
	s, accountID, pageSize := m.store, m.accountID, m.cfg.UI.PageSize
	return func() tea.Msg {
		ctx := context.Background()
		messages, err := s.ListMessages(ctx, store.ListMessageOptions{
			AccountID: accountID,
			LabelID:   labelID,
			Limit:     pageSize,
		})
		if err != nil {
			return itemsLoadedMsg{err: err}
		}
		contacts, err := s.ListContacts(ctx, accountID)
		if err != nil {
			return itemsLoadedMsg{err: err}
		}
		return itemsLoadedMsg{items: mailbox.Project(messages, contacts)}
	}
}

func (m model) loadUnreadCmd() tea.Cmd {
	s, accountID := m.store, m.accountID
	return func() tea.Msg {
		messages, err := s.ListMessages(context.Background(), store.ListMessageOptions{AccountID: accountID})
		if err != nil {
			return unreadLoadedMsg{err: err}
		}
		return unreadLoadedMsg{unread: mailbox.UnreadByLabel(messages)}
	}
}

func (m model) relabelCmd(req relabelRequestMsg) tea.Cmd {
	svc := m.relabelSvc
	return func() tea.Msg {
		outcome, err := svc.Relabel(context.Background(), req.messageIDs, req.checked, req.unchanged)
		return relabelDoneMsg{outcome: outcome, err: err}
	}
}

func (m model) syncCmd() tea.Cmd {
	svc := m.syncSvc
	return func() tea.Msg {
		return syncDoneMsg{err: svc.IncrementalSync(context.Background())}
	}
}

// toggleCmd flips the star or read state of a single message, remotely first
// and then in the local store.
func (m model) toggleCmd(id, action string) tea.Cmd {
	s, p, accountID := m.store, m.provider, m.accountID
	return func() tea.Msg {
		ctx := context.Background()
		msg, err := s.GetMessage(ctx, accountID, id)
		if err != nil {
			return actionDoneMsg{err: err}
		}

		switch action {
		case "star":
			if msg.IsStarred {
				err = p.RemoveLabel(ctx, domain.LabelStarred, []string{id})
			} else {
				err = p.ApplyLabel(ctx, domain.LabelStarred, []string{id})
			}
			if err != nil {
				return actionDoneMsg{err: err}
			}
			msg.IsStarred = !msg.IsStarred
			msg.LabelIDs = toggleLabelID(msg.LabelIDs, domain.LabelStarred, msg.IsStarred)
			err = s.UpsertMessage(ctx, accountID, msg)

		case "unread":
			read := !msg.IsRead
			if read {
				err = p.RemoveLabel(ctx, domain.LabelUnread, []string{id})
			} else {
				err = p.ApplyLabel(ctx, domain.LabelUnread, []string{id})
			}
			if err != nil {
				return actionDoneMsg{err: err}
			}
			msg.IsRead = read
			msg.LabelIDs = toggleLabelID(msg.LabelIDs, domain.LabelUnread, !read)
			if err = s.UpsertMessage(ctx, accountID, msg); err == nil {
				err = s.SetMessageRead(ctx, accountID, id, read)
			}
		}

		return actionDoneMsg{err: err}
	}
}

func toggleLabelID(ids []string, labelID string, present bool) []string {
	out := make([]string, 0, len(ids)+1)
	for _, v := range ids {
		if v != labelID {
			out = append(out, v)
		}
	}
	if present {
		out = append(out, labelID)
	}
	return out
}

func relabelSummary(out app.RelabelOutcome) string {
	applied := 0
	for _, ids := range out.Delta.Apply {
		applied += len(ids)
	}
	removed := 0
	for _, ids := range out.Delta.Remove {
		removed += len(ids)
	}
	if applied == 0 && removed == 0 && len(out.Rejections) == 0 {
		return "No label changes needed"
	}
	return fmt.Sprintf("Labels updated: %d applied, %d removed", applied, removed)
}
