package cli

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ebuckley/tagmail/internal/app"
	"github.com/ebuckley/tagmail/internal/provider/gmail"
	"github.com/ebuckley/tagmail/internal/store"
)

func newRelabelCmd() *cobra.Command {
	var (
		accountFlag   string
		checkFlag     string
		unchangedFlag string
	)

	cmd := &cobra.Command{
		Use:   "relabel [message-id...]",
		Short: "Reconcile labels across a set of messages",
		Long: `Reconcile labels across a set of messages.

--check lists the labels each message should end up with. Labels a message
carries that are neither checked nor listed via --unchanged are removed,
except folder labels, which are never removed implicitly. Messages whose
final label count would exceed the account limit are reported and skipped;
the rest of the batch still goes through.`,
		Args: cobra.MinimumNArgs(1),
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

			if err := resolveGmailCredentials(cfg); err != nil {
				return err
			}

			tokenStore := store.NewKeyringTokenStore()
			p := gmail.New(accountID, tokenStore)

			svc := app.NewRelabelService(db, p, accountID)
			out, err := svc.Relabel(cmd.Context(), args, splitCSV(checkFlag), splitCSV(unchangedFlag))
			if err != nil {
				return fmt.Errorf("failed to relabel: %w", err)
			}

			if jsonFlag {
				return printJSON(toJSONRelabelOutcome(out))
			}

			for _, r := range out.Rejections {
				fmt.Fprintf(os.Stderr, "Warning: %q skipped: applying labels would exceed the limit of %d\n", r.Subject, r.Limit)
			}
			for _, id := range out.Skipped {
				fmt.Fprintf(os.Stderr, "Warning: message %s no longer exists locally, skipped\n", id)
			}

			if out.Delta.Empty() {
				fmt.Println("No label changes needed.")
				return nil
			}
			for _, labelID := range sortedLabelIDs(out.Delta.Apply) {
				fmt.Printf("Applied %s to %d messages\n", labelID, len(out.Delta.Apply[labelID]))
			}
			for _, labelID := range sortedLabelIDs(out.Delta.Remove) {
				fmt.Printf("Removed %s from %d messages\n", labelID, len(out.Delta.Remove[labelID]))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&accountFlag, "account", "", "account ID (defaults to config default or first account)")
	cmd.Flags().StringVar(&checkFlag, "check", "", "comma-separated label IDs the messages should carry")
	cmd.Flags().StringVar(&unchangedFlag, "unchanged", "", "comma-separated label IDs to leave untouched")
	return cmd
}

// sortedLabelIDs returns the delta map's keys in lexical order so output is
// stable run to run.
func sortedLabelIDs(m map[string][]string) []string {
	ids := make([]string, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func splitCSV(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
