package cli

import (
	"time"

	"github.com/ebuckley/tagmail/internal/app"
	"github.com/ebuckley/tagmail/internal/domain"
	"github.com/ebuckley/tagmail/internal/mailbox"
	"github.com/ebuckley/tagmail/internal/quota"
)

// ---------------------------------------------------------------------------
// Account JSON types (account list)
// ---------------------------------------------------------------------------

type jsonAccount struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Provider  string `json:"provider"`
	Plan      string `json:"plan"`
	MaxLabels int    `json:"max_labels"`
	CreatedAt string `json:"created_at"`
}

func toJSONAccounts(accounts []domain.Account) []jsonAccount {
	out := make([]jsonAccount, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, jsonAccount{
			ID:        a.ID,
			Email:     a.Email,
			Provider:  a.Provider,
			Plan:      a.Plan,
			MaxLabels: a.MaxLabels,
			CreatedAt: a.CreatedAt.Format(time.DateOnly),
		})
	}
	return out
}

// ---------------------------------------------------------------------------
// Mailbox item JSON type (list)
// ---------------------------------------------------------------------------

type jsonItem struct {
	ID             string   `json:"id"`
	Subject        string   `json:"subject"`
	SenderName     string   `json:"sender_name"`
	SenderEmail    string   `json:"sender_email"`
	Date           string   `json:"date"`
	IsRead         bool     `json:"is_read"`
	IsStarred      bool     `json:"is_starred"`
	HasAttachments bool     `json:"has_attachments"`
	Size           int64    `json:"size"`
	Labels         []string `json:"labels,omitempty"`
}

func toJSONItems(items []mailbox.Item) []jsonItem {
	out := make([]jsonItem, 0, len(items))
	for _, it := range items {
		out = append(out, jsonItem{
			ID:             it.MessageID,
			Subject:        it.Subject,
			SenderName:     it.SenderName,
			SenderEmail:    it.SenderEmail,
			Date:           it.Date.Format(time.RFC3339),
			IsRead:         it.IsRead,
			IsStarred:      it.IsStarred,
			HasAttachments: it.HasAttachments,
			Size:           it.Size,
			Labels:         it.LabelIDs,
		})
	}
	return out
}

// ---------------------------------------------------------------------------
// Label JSON type (labels)
// ---------------------------------------------------------------------------

type jsonLabel struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	Exclusive bool   `json:"exclusive"`
	Color     string `json:"color,omitempty"`
}

func toJSONLabels(labels []domain.Label) []jsonLabel {
	out := make([]jsonLabel, 0, len(labels))
	for _, l := range labels {
		out = append(out, jsonLabel{
			ID:        l.ID,
			Name:      l.Name,
			Type:      string(l.Type),
			Exclusive: l.Exclusive,
			Color:     l.Color,
		})
	}
	return out
}

// ---------------------------------------------------------------------------
// Contact JSON type (contacts)
// ---------------------------------------------------------------------------

type jsonContact struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

func toJSONContacts(contacts []domain.Contact) []jsonContact {
	out := make([]jsonContact, 0, len(contacts))
	for _, c := range contacts {
		out = append(out, jsonContact{Email: c.Email, Name: c.Name})
	}
	return out
}

// ---------------------------------------------------------------------------
// Relabel outcome JSON type (relabel)
// ---------------------------------------------------------------------------

type jsonRelabelOutcome struct {
	Applied    map[string][]string `json:"applied"`
	Removed    map[string][]string `json:"removed"`
	Rejections []jsonRejection     `json:"rejections,omitempty"`
	Skipped    []string            `json:"skipped,omitempty"`
}

type jsonRejection struct {
	MessageID string `json:"message_id"`
	Subject   string `json:"subject"`
	Limit     int    `json:"limit"`
}

func toJSONRelabelOutcome(out app.RelabelOutcome) jsonRelabelOutcome {
	j := jsonRelabelOutcome{
		Applied: out.Delta.Apply,
		Removed: out.Delta.Remove,
		Skipped: out.Skipped,
	}
	for _, r := range out.Rejections {
		j.Rejections = append(j.Rejections, jsonRejection{
			MessageID: r.MessageID,
			Subject:   r.Subject,
			Limit:     r.Limit,
		})
	}
	return j
}

// ---------------------------------------------------------------------------
// Quota JSON type (quota)
// ---------------------------------------------------------------------------

type jsonQuota struct {
	Email       string `json:"email"`
	UsedBytes   int64  `json:"used_bytes"`
	TotalBytes  int64  `json:"total_bytes"`
	PercentUsed int    `json:"percent_used"`
	State       string `json:"state"`
	Notice      string `json:"notice,omitempty"`
}

func toJSONQuota(a domain.Account, u quota.Usage, tr quota.Trigger) jsonQuota {
	return jsonQuota{
		Email:       a.Email,
		UsedBytes:   a.UsedBytes,
		TotalBytes:  a.TotalBytes,
		PercentUsed: u.PercentUsed,
		State:       u.State.String(),
		Notice:      u.Notice(tr),
	}
}

// ---------------------------------------------------------------------------
// Action JSON type (account add/remove, sync, contact add)
// ---------------------------------------------------------------------------

type jsonAction struct {
	OK        bool   `json:"ok"`
	Action    string `json:"action"`
	Email     string `json:"email,omitempty"`
	AccountID string `json:"account_id,omitempty"`
}
