package gmail

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	driveapi "google.golang.org/api/drive/v3"
	gmailapi "google.golang.org/api/gmail/v1"
)

// The binary ships without credentials. Users supply their own Google Cloud
// OAuth client via the config file's [gmail] section or the GMAIL_CLIENT_ID
// and GMAIL_CLIENT_SECRET environment variables.
var oauthConfig = &oauth2.Config{
	Scopes: []string{
		gmailapi.GmailReadonlyScope,
		gmailapi.GmailModifyScope,
		gmailapi.GmailLabelsScope,
		driveapi.DriveMetadataReadonlyScope,
	},
	Endpoint: google.Endpoint,
}

// SetCredentials sets the OAuth client ID and secret.
func SetCredentials(clientID, clientSecret string) {
	oauthConfig.ClientID = clientID
	oauthConfig.ClientSecret = clientSecret
}

// HasCredentials reports whether OAuth credentials have been configured.
func HasCredentials() bool {
	return oauthConfig.ClientID != "" && oauthConfig.ClientSecret != ""
}

// EnsureCredentials returns an error with setup instructions when no OAuth
// credentials have been configured.
func EnsureCredentials() error {
	if HasCredentials() {
		return nil
	}
	return fmt.Errorf("gmail OAuth credentials not configured; set them in ~/.config/tagmail/config.toml under [gmail] or via GMAIL_CLIENT_ID / GMAIL_CLIENT_SECRET env vars")
}

// callbackResult is what the loopback handler hands back to authenticate.
type callbackResult struct {
	code string
	err  error
}

// authenticate runs the browser authorization-code flow against a loopback
// redirect server on an ephemeral port and exchanges the code for a token.
func authenticate(ctx context.Context) (*oauth2.Token, error) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, fmt.Errorf("failed to start callback listener: %w", err)
	}
	oauthConfig.RedirectURL = fmt.Sprintf("http://%s/callback", listener.Addr())

	state, err := randomState()
	if err != nil {
		return nil, err
	}

	results := make(chan callbackResult, 1)
	mux := http.NewServeMux()
	mux.HandleFunc("/callback", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		switch {
		case q.Get("state") != state:
			results <- callbackResult{err: fmt.Errorf("state mismatch in OAuth callback")}
			fmt.Fprint(w, "Authorization failed. You can close this tab.")
		case q.Get("code") == "":
			results <- callbackResult{err: fmt.Errorf("authorization denied: %s", q.Get("error"))}
			fmt.Fprint(w, "Authorization failed. You can close this tab.")
		default:
			results <- callbackResult{code: q.Get("code")}
			fmt.Fprint(w, "Authorization complete. You can close this tab.")
		}
	})

	server := &http.Server{Handler: mux}
	go server.Serve(listener)
	defer server.Shutdown(ctx)

	authURL := oauthConfig.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce)
	fmt.Printf("\nOpen this URL in your browser to authorize tagmail:\n\n  %s\n\nWaiting for authorization...\n", authURL)

	select {
	case res := <-results:
		if res.err != nil {
			return nil, res.err
		}
		token, err := oauthConfig.Exchange(ctx, res.code)
		if err != nil {
			return nil, fmt.Errorf("failed to exchange auth code: %w", err)
		}
		return token, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func randomState() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate OAuth state: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
