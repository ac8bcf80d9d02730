package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ebuckley/tagmail/internal/domain"
)

func newContactsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contacts",
		Short: "Manage the contact directory",
	}
	cmd.AddCommand(newContactsListCmd())
	cmd.AddCommand(newContactsAddCmd())
	return cmd
}

func newContactsListCmd() *cobra.Command {
	var accountFlag string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List contacts",
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

			contacts, err := db.ListContacts(cmd.Context(), accountID)
			if err != nil {
				return fmt.Errorf("failed to list contacts: %w", err)
			}

			if jsonFlag {
				return printJSON(toJSONContacts(contacts))
			}

			if len(contacts) == 0 {
				fmt.Println("No contacts yet.")
				return nil
			}

			w := newTable(os.Stdout)
			fmt.Fprintln(w, "EMAIL\tNAME")
			for _, c := range contacts {
				fmt.Fprintf(w, "%s\t%s\n", c.Email, c.Name)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&accountFlag, "account", "", "account ID (defaults to config default or first account)")
	return cmd
}

func newContactsAddCmd() *cobra.Command {
	var (
		accountFlag string
		nameFlag    string
	)

	cmd := &cobra.Command{
		Use:   "add [email]",
		Short: "Add or update a contact",
		Args:  cobra.ExactArgs(1),
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

			c := domain.Contact{AccountID: accountID, Email: args[0], Name: nameFlag}
			if err := db.UpsertContact(cmd.Context(), c); err != nil {
				return fmt.Errorf("failed to add contact: %w", err)
			}

			if jsonFlag {
				return printJSON(jsonAction{OK: true, Action: "contact-add", Email: c.Email})
			}

			fmt.Printf("Contact saved: %s\n", c.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&accountFlag, "account", "", "account ID (defaults to config default or first account)")
	cmd.Flags().StringVar(&nameFlag, "name", "", "display name")
	return cmd
}
