package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newLabelsCmd() *cobra.Command {
	var accountFlag string

	cmd := &cobra.Command{
		Use:   "labels",
		Short: "List the account's label directory",
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

			labels, err := db.ListLabels(cmd.Context(), accountID)
			if err != nil {
				return fmt.Errorf("failed to list labels: %w", err)
			}

			if jsonFlag {
				return printJSON(toJSONLabels(labels))
			}

			if len(labels) == 0 {
				fmt.Println("No labels synced yet. Run 'tagmail sync' first.")
				return nil
			}

			w := newTable(os.Stdout)
			fmt.Fprintln(w, "ID\tNAME\tTYPE\tEXCLUSIVE")
			for _, l := range labels {
				exclusive := ""
				if l.Exclusive {
					exclusive = "yes"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", l.ID, l.Name, l.Type, exclusive)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&accountFlag, "account", "", "account ID (defaults to config default or first account)")
	return cmd
}
