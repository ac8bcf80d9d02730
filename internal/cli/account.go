package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/ebuckley/tagmail/internal/domain"
	"github.com/ebuckley/tagmail/internal/provider/gmail"
	"github.com/ebuckley/tagmail/internal/store"
)

func newAccountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Manage mail accounts",
	}
	cmd.AddCommand(newAccountAddCmd())
	cmd.AddCommand(newAccountListCmd())
	cmd.AddCommand(newAccountRemoveCmd())
	return cmd
}

func newAccountAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add",
		Short: "Add a Gmail account via OAuth",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if err := resolveGmailCredentials(cfg); err != nil {
				return err
			}

			db, err := openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			tokenStore := store.NewKeyringTokenStore()
			accountID := uuid.NewString()
			p := gmail.New(accountID, tokenStore)

			ctx := cmd.Context()
			fmt.Println("Starting Gmail OAuth flow...")
			if err := p.Authenticate(ctx); err != nil {
				return fmt.Errorf("failed to authenticate: %w", err)
			}

			prof, err := p.Profile(ctx)
			if err != nil {
				return fmt.Errorf("failed to get profile: %w", err)
			}

			account := domain.Account{
				ID:          accountID,
				Email:       prof.Email,
				Provider:    "gmail",
				DisplayName: prof.Email,
				Plan:        "gmail",
				MaxLabels:   gmail.MaxLabelsPerMessage,
				UsedBytes:   prof.UsedBytes,
				TotalBytes:  prof.TotalBytes,
				CreatedAt:   time.Now(),
			}

			if err := db.CreateAccount(ctx, account); err != nil {
				return fmt.Errorf("failed to store account: %w", err)
			}

			if jsonFlag {
				return printJSON(jsonAction{OK: true, Action: "add", Email: prof.Email, AccountID: accountID})
			}

			fmt.Printf("Account added: %s (%s)\n", prof.Email, accountID)
			return nil
		},
	}
}

func newAccountListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List configured accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			accounts, err := db.ListAccounts(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list accounts: %w", err)
			}

			if jsonFlag {
				return printJSON(toJSONAccounts(accounts))
			}

			if len(accounts) == 0 {
				fmt.Println("No accounts configured. Run 'tagmail account add' to add one.")
				return nil
			}

			w := newTable(os.Stdout)
			fmt.Fprintln(w, "ID\tEMAIL\tPLAN\tMAX LABELS\tCREATED")
			for _, a := range accounts {
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n",
					a.ID,
					a.Email,
					a.Plan,
					a.MaxLabels,
					a.CreatedAt.Format(time.DateOnly),
				)
			}
			return w.Flush()
		},
	}
}

func newAccountRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove [email]",
		Short: "Remove an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			email := args[0]

			db, err := openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			ctx := cmd.Context()
			accounts, err := db.ListAccounts(ctx)
			if err != nil {
				return fmt.Errorf("failed to list accounts: %w", err)
			}

			var target *domain.Account
			for i := range accounts {
				if accounts[i].Email == email || accounts[i].ID == email {
					target = &accounts[i]
					break
				}
			}
			if target == nil {
				return fmt.Errorf("account not found: %s", email)
			}

			if err := db.DeleteAccount(ctx, target.ID); err != nil {
				return fmt.Errorf("failed to delete account: %w", err)
			}

			tokenStore := store.NewKeyringTokenStore()
			if err := tokenStore.DeleteToken(target.ID); err != nil {
				// Non-fatal: token may already be gone.
				fmt.Fprintf(os.Stderr, "Warning: could not remove token from keyring: %v\n", err)
			}

			if jsonFlag {
				return printJSON(jsonAction{OK: true, Action: "remove", Email: target.Email})
			}

			fmt.Printf("Account removed: %s\n", target.Email)
			return nil
		},
	}
}
