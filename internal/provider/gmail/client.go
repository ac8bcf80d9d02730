// Package gmail implements provider.MailProvider against the Gmail API.
package gmail

import (
	"context"
	"fmt"

	"github.com/ebuckley/tagmail/internal/domain"
	"github.com/ebuckley/tagmail/internal/provider"
	"github.com/ebuckley/tagmail/internal/store"
	"golang.org/x/oauth2"
	driveapi "google.golang.org/api/drive/v3"
	gmailapi "google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

const userID = "me"

// MaxLabelsPerMessage is Gmail's product limit on labels a single message
// can carry. Recorded on the account at add time and enforced locally
// before dispatching label changes.
const MaxLabelsPerMessage = 100

// Provider implements provider.MailProvider for Gmail.
type Provider struct {
	tokenStore *store.KeyringTokenStore
	accountID  string
	service    *gmailapi.Service
	drive      *driveapi.Service
	token      *oauth2.Token
}

// New creates a new Gmail provider for the given account.
func New(accountID string, tokenStore *store.KeyringTokenStore) *Provider {
	return &Provider{
		accountID:  accountID,
		tokenStore: tokenStore,
	}
}

// Authenticate runs the OAuth2 flow, saves the token, and initializes the API services.
func (p *Provider) Authenticate(ctx context.Context) error {
	token, err := authenticate(ctx)
	if err != nil {
		return fmt.Errorf("failed to authenticate gmail: %w", err)
	}

	if err := p.tokenStore.SaveToken(p.accountID, token); err != nil {
		return fmt.Errorf("failed to save gmail token: %w", err)
	}

	return p.buildServices(ctx, token)
}

// IsAuthenticated returns true if the Gmail service is initialized.
func (p *Provider) IsAuthenticated() bool {
	return p.service != nil
}

func (p *Provider) buildServices(ctx context.Context, token *oauth2.Token) error {
	p.token = token
	source := oauthConfig.TokenSource(ctx, token)

	srv, err := gmailapi.NewService(ctx, option.WithTokenSource(source))
	if err != nil {
		return fmt.Errorf("failed to create gmail service: %w", err)
	}
	p.service = srv

	drv, err := driveapi.NewService(ctx, option.WithTokenSource(source))
	if err != nil {
		return fmt.Errorf("failed to create drive service: %w", err)
	}
	p.drive = drv
	return nil
}

// ensureService lazily loads the token from the keyring and builds the API
// services if not already done.
func (p *Provider) ensureService(ctx context.Context) error {
	if p.service != nil {
		return nil
	}
	token, err := p.tokenStore.LoadToken(p.accountID)
	if err != nil {
		return fmt.Errorf("failed to load gmail token: %w", err)
	}
	return p.buildServices(ctx, token)
}

// Profile returns the mailbox address and storage usage. Gmail's own profile
// endpoint has no quota figures, so usage comes from the Drive about endpoint
// which reports the shared Google storage pool.
func (p *Provider) Profile(ctx context.Context) (provider.Profile, error) {
	if err := p.ensureService(ctx); err != nil {
		return provider.Profile{}, fmt.Errorf("failed to ensure gmail service: %w", err)
	}

	gp, err := p.service.Users.GetProfile(userID).Context(ctx).Do()
	if err != nil {
		return provider.Profile{}, fmt.Errorf("failed to get gmail profile: %w", err)
	}

	about, err := p.drive.About.Get().Fields("storageQuota").Context(ctx).Do()
	if err != nil {
		return provider.Profile{}, fmt.Errorf("failed to get storage quota: %w", err)
	}

	prof := provider.Profile{Email: gp.EmailAddress, HistoryID: gp.HistoryId}
	if about.StorageQuota != nil {
		prof.UsedBytes = about.StorageQuota.Usage
		prof.TotalBytes = about.StorageQuota.Limit
	}
	return prof, nil
}

// ListMessages returns a page of messages matching the given options.
func (p *Provider) ListMessages(ctx context.Context, opts provider.ListOptions) ([]domain.Message, string, error) {
	if err := p.ensureService(ctx); err != nil {
		return nil, "", fmt.Errorf("failed to ensure gmail service: %w", err)
	}

	call := p.service.Users.Messages.List(userID)
	if opts.MaxResults > 0 {
		call = call.MaxResults(int64(opts.MaxResults))
	}
	if opts.PageToken != "" {
		call = call.PageToken(opts.PageToken)
	}
	if len(opts.LabelIDs) > 0 {
		call = call.LabelIds(opts.LabelIDs...)
	}

	resp, err := call.Context(ctx).Do()
	if err != nil {
		return nil, "", fmt.Errorf("failed to list gmail messages: %w", err)
	}

	messages := make([]domain.Message, 0, len(resp.Messages))
	for _, m := range resp.Messages {
		msg, err := p.service.Users.Messages.Get(userID, m.Id).
			Format("full").Context(ctx).Do()
		if err != nil {
			return nil, "", fmt.Errorf("failed to get gmail message %s: %w", m.Id, err)
		}
		messages = append(messages, mapMessage(msg))
	}

	return messages, resp.NextPageToken, nil
}

// GetMessage returns a single message by ID.
func (p *Provider) GetMessage(ctx context.Context, id string) (domain.Message, error) {
	if err := p.ensureService(ctx); err != nil {
		return domain.Message{}, fmt.Errorf("failed to ensure gmail service: %w", err)
	}

	msg, err := p.service.Users.Messages.Get(userID, id).
		Format("full").Context(ctx).Do()
	if err != nil {
		return domain.Message{}, fmt.Errorf("failed to get gmail message %s: %w", id, err)
	}

	return mapMessage(msg), nil
}

// ListLabels returns all labels for the authenticated user.
func (p *Provider) ListLabels(ctx context.Context) ([]domain.Label, error) {
	if err := p.ensureService(ctx); err != nil {
		return nil, fmt.Errorf("failed to ensure gmail service: %w", err)
	}

	resp, err := p.service.Users.Labels.List(userID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list gmail labels: %w", err)
	}

	labels := make([]domain.Label, 0, len(resp.Labels))
	for i, l := range resp.Labels {
		labels = append(labels, mapLabel(l, i))
	}

	return labels, nil
}

// ApplyLabel adds one label to a batch of messages in a single API call.
func (p *Provider) ApplyLabel(ctx context.Context, labelID string, messageIDs []string) error {
	return p.batchModify(ctx, messageIDs, []string{labelID}, nil)
}

// RemoveLabel strips one label from a batch of messages in a single API call.
func (p *Provider) RemoveLabel(ctx context.Context, labelID string, messageIDs []string) error {
	return p.batchModify(ctx, messageIDs, nil, []string{labelID})
}

func (p *Provider) batchModify(ctx context.Context, messageIDs, add, remove []string) error {
	if len(messageIDs) == 0 {
		return nil
	}
	if err := p.ensureService(ctx); err != nil {
		return fmt.Errorf("failed to ensure gmail service: %w", err)
	}

	req := &gmailapi.BatchModifyMessagesRequest{
		Ids:            messageIDs,
		AddLabelIds:    add,
		RemoveLabelIds: remove,
	}
	if err := p.service.Users.Messages.BatchModify(userID, req).Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to batch modify %d messages: %w", len(messageIDs), err)
	}
	return nil
}

// History returns history events since the given history ID.
func (p *Provider) History(ctx context.Context, startHistoryID uint64) ([]provider.HistoryEvent, uint64, error) {
	if err := p.ensureService(ctx); err != nil {
		return nil, 0, fmt.Errorf("failed to ensure gmail service: %w", err)
	}

	var events []provider.HistoryEvent
	var latestHistoryID uint64

	call := p.service.Users.History.List(userID).
		StartHistoryId(startHistoryID)

	err := call.Pages(ctx, func(resp *gmailapi.ListHistoryResponse) error {
		latestHistoryID = resp.HistoryId

		for _, h := range resp.History {
			for _, added := range h.MessagesAdded {
				events = append(events, provider.HistoryEvent{
					Type:      provider.HistoryMessageAdded,
					MessageID: added.Message.Id,
					LabelIDs:  added.Message.LabelIds,
				})
			}
			for _, deleted := range h.MessagesDeleted {
				events = append(events, provider.HistoryEvent{
					Type:      provider.HistoryMessageDeleted,
					MessageID: deleted.Message.Id,
				})
			}
			for _, labelsAdded := range h.LabelsAdded {
				events = append(events, provider.HistoryEvent{
					Type:      provider.HistoryLabelsAdded,
					MessageID: labelsAdded.Message.Id,
					LabelIDs:  labelsAdded.LabelIds,
				})
			}
			for _, labelsRemoved := range h.LabelsRemoved {
				events = append(events, provider.HistoryEvent{
					Type:      provider.HistoryLabelsRemoved,
					MessageID: labelsRemoved.Message.Id,
					LabelIDs:  labelsRemoved.LabelIds,
				})
			}
		}
		return nil
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list gmail history: %w", err)
	}

	return events, latestHistoryID, nil
}

// Compile-time interface compliance check.
var _ provider.MailProvider = (*Provider)(nil)
