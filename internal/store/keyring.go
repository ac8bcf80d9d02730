package store

import (
	"encoding/json"
	"fmt"

	"github.com/zalando/go-keyring"
	"golang.org/x/oauth2"
)

// keyringService identifies this application's entries in the OS keyring.
const keyringService = "tagmail"

// KeyringTokenStore keeps one OAuth token per account in the OS keyring
// (Keychain, Credential Manager, or Secret Service), JSON-encoded, keyed by
// account ID. Tokens never touch the SQLite database.
type KeyringTokenStore struct{}

func NewKeyringTokenStore() *KeyringTokenStore {
	return &KeyringTokenStore{}
}

// SaveToken writes the token for an account, replacing any previous one.
func (k *KeyringTokenStore) SaveToken(accountID string, token *oauth2.Token) error {
	data, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("failed to encode token: %w", err)
	}
	if err := keyring.Set(keyringService, accountID, string(data)); err != nil {
		return fmt.Errorf("failed to store token for account %s: %w", accountID, err)
	}
	return nil
}

// LoadToken reads the token for an account. A missing entry is an error; the
// caller treats it as "not authenticated".
func (k *KeyringTokenStore) LoadToken(accountID string) (*oauth2.Token, error) {
	data, err := keyring.Get(keyringService, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to read token for account %s: %w", accountID, err)
	}
	var token oauth2.Token
	if err := json.Unmarshal([]byte(data), &token); err != nil {
		return nil, fmt.Errorf("failed to decode token for account %s: %w", accountID, err)
	}
	return &token, nil
}

// DeleteToken removes the token for an account, for example when the account
// itself is removed.
func (k *KeyringTokenStore) DeleteToken(accountID string) error {
	if err := keyring.Delete(keyringService, accountID); err != nil {
		return fmt.Errorf("failed to delete token for account %s: %w", accountID, err)
	}
	return nil
}
