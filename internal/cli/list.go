package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ebuckley/tagmail/internal/mailbox"
	"github.com/ebuckley/tagmail/internal/store"
)

func newListCmd() *cobra.Command {
	var (
		accountFlag string
		mailboxFlag string
		limitFlag   int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List messages in a mailbox",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			accountID := accountFlag
			if accountID == "" {
				accountID, err = resolveAccountID(db, cfg)
				if err != nil {
					return err
				}
			}

			name := mailboxFlag
			if name == "" {
				name = cfg.UI.DefaultMailbox
			}
			loc, err := mailbox.ParseLocation(name)
			if err != nil {
				return err
			}
			labelID, err := loc.LabelID()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			messages, err := db.ListMessages(ctx, store.ListMessageOptions{
				AccountID: accountID,
				LabelID:   labelID,
				Limit:     limitFlag,
			})
			if err != nil {
				return fmt.Errorf("failed to list messages: %w", err)
			}

			contacts, err := db.ListContacts(ctx, accountID)
			if err != nil {
				return fmt.Errorf("failed to list contacts: %w", err)
			}

			items := mailbox.Project(messages, contacts)

			if jsonFlag {
				return printJSON(toJSONItems(items))
			}

			if len(items) == 0 {
				fmt.Printf("No messages in %s.\n", loc)
				return nil
			}

			w := newTable(os.Stdout)
			fmt.Fprintln(w, "ID\tFLAGS\tFROM\tSUBJECT\tDATE")
			for _, it := range items {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					it.MessageID,
					itemFlags(it),
					it.SenderName,
					it.Subject,
					it.Date.Format(time.DateOnly),
				)
			}
			if err := w.Flush(); err != nil {
				return err
			}

			fmt.Printf("\n%d messages, %d unread\n", len(messages), mailbox.CountUnread(messages))
			return nil
		},
	}

	cmd.Flags().StringVar(&accountFlag, "account", "", "account ID (defaults to config default or first account)")
	cmd.Flags().StringVar(&mailboxFlag, "mailbox", "", "mailbox to list: inbox, starred, sent, drafts, trash, spam, all")
	cmd.Flags().IntVar(&limitFlag, "limit", 50, "maximum number of messages to show")
	return cmd
}

// itemFlags renders the status column: unread, starred, replied, forwarded,
// attachments.
func itemFlags(it mailbox.Item) string {
	flags := []byte("-----")
	if !it.IsRead {
		flags[0] = 'U'
	}
	if it.IsStarred {
		flags[1] = '*'
	}
	if it.IsReplied {
		flags[2] = 'R'
	}
	if it.IsForwarded {
		flags[3] = 'F'
	}
	if it.HasAttachments {
		flags[4] = 'A'
	}
	return string(flags)
}
