package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ebuckley/tagmail/internal/quota"
)

func newQuotaCmd() *cobra.Command {
	var (
		accountFlag string
		onFlag      string
	)

	cmd := &cobra.Command{
		Use:   "quota",
		Short: "Show storage usage and warning state",
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

			account, err := db.GetAccount(cmd.Context(), accountID)
			if err != nil {
				return fmt.Errorf("failed to get account: %w", err)
			}

			trigger, err := parseTrigger(onFlag)
			if err != nil {
				return err
			}

			usage := quota.Classify(account.UsedBytes, account.TotalBytes, cfg.Storage.WarningThresholdPercent)

			if jsonFlag {
				return printJSON(toJSONQuota(account, usage, trigger))
			}

			fmt.Printf("Account: %s\n", account.Email)
			fmt.Printf("Used: %d of %d bytes (%d%%)\n", account.UsedBytes, account.TotalBytes, usage.PercentUsed)
			fmt.Printf("State: %s\n", usage.State)
			if notice := usage.Notice(trigger); notice != "" {
				fmt.Println(notice)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&accountFlag, "account", "", "account ID (defaults to config default or first account)")
	cmd.Flags().StringVar(&onFlag, "on", "startup", "trigger context: startup, space-changed, compose")
	return cmd
}

func parseTrigger(s string) (quota.Trigger, error) {
	switch s {
	case "startup":
		return quota.TriggerStartup, nil
	case "space-changed":
		return quota.TriggerSpaceChanged, nil
	case "compose":
		return quota.TriggerCompose, nil
	}
	return 0, fmt.Errorf("unknown trigger %q (use startup, space-changed, or compose)", s)
}
