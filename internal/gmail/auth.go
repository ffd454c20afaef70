package gmail

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gmailapi "google.golang.org/api/gmail/v1"
)

// newHTTPClient builds an authenticated client from the OAuth credentials
// file, reusing a cached token when one exists and walking the console
// authorization flow otherwise.
func newHTTPClient(ctx context.Context, credentialsFile, tokenFile string) (*http.Client, error) {
	data, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("credentials file %q not found, download it from Google Cloud Console: %w", credentialsFile, err)
	}

	oauthCfg, err := google.ConfigFromJSON(data, gmailapi.GmailReadonlyScope)
	if err != nil {
		return nil, fmt.Errorf("invalid credentials file: %w", err)
	}

	token, err := tokenFromFile(tokenFile)
	if err != nil {
		token, err = tokenFromWeb(ctx, oauthCfg)
		if err != nil {
			return nil, err
		}
		if err := saveToken(tokenFile, token); err != nil {
			return nil, err
		}
	}

	return oauthCfg.Client(ctx, token), nil
}

func tokenFromFile(path string) (*oauth2.Token, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	token := &oauth2.Token{}
	if err := json.NewDecoder(f).Decode(token); err != nil {
		return nil, fmt.Errorf("corrupt token file %q: %w", path, err)
	}
	return token, nil
}

// tokenFromWeb runs the manual authorization flow: the user opens the printed
// URL in a browser and pastes the code back.
func tokenFromWeb(ctx context.Context, cfg *oauth2.Config) (*oauth2.Token, error) {
	authURL := cfg.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
	fmt.Printf("Go to the following link in your browser then type the authorization code:\n%v\n", authURL)

	var code string
	if _, err := fmt.Scan(&code); err != nil {
		return nil, fmt.Errorf("unable to read authorization code: %w", err)
	}

	token, err := cfg.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("unable to exchange authorization code: %w", err)
	}
	return token, nil
}

func saveToken(path string, token *oauth2.Token) error {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("unable to cache oauth token: %w", err)
	}
	defer f.Close()

	if err := json.NewEncoder(f).Encode(token); err != nil {
		return fmt.Errorf("unable to encode oauth token: %w", err)
	}
	return nil
}
