package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ebuckley/tagmail/internal/app"
	"github.com/ebuckley/tagmail/internal/provider/gmail"
	"github.com/ebuckley/tagmail/internal/store"
)

func newSyncCmd() *cobra.Command {
	var (
		accountFlag string
		fullFlag    bool
	)

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Sync mail, labels, and storage usage",
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

			ctx := cmd.Context()
			svc := app.NewSyncService(db, p, accountID)

			if !jsonFlag {
				fmt.Printf("Syncing account %s...\n", accountID)
			}
			if fullFlag {
				err = svc.InitialSync(ctx, cfg.Sync.InitialCount)
			} else {
				err = svc.IncrementalSync(ctx)
			}
			if err != nil {
				return fmt.Errorf("failed to sync: %w", err)
			}

			if jsonFlag {
				return printJSON(jsonAction{OK: true, Action: "sync", AccountID: accountID})
			}

			fmt.Println("Sync complete.")
			return nil
		},
	}

	cmd.Flags().StringVar(&accountFlag, "account", "", "account ID to sync (defaults to config default or first account)")
	cmd.Flags().BoolVar(&fullFlag, "full", false, "force a full resync instead of an incremental one")
	return cmd
}
