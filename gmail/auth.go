package gmail

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gmailapi "google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"github.com/sairajiv19/gmail-agent/config"
)

// NewService builds an authenticated Gmail service from the OAuth client
// secret and cached token files named in cfg. The interactive consent flow
// is not part of this server; a missing or unreadable token file is a
// setup error and the caller is told how to fix it.
func NewService(ctx context.Context, cfg *config.Config) (*gmailapi.Service, error) {
	b, err := os.ReadFile(cfg.CredentialsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read OAuth client secret %s (download it from the Google Cloud console): %w", cfg.CredentialsFile, err)
	}

	conf, err := google.ConfigFromJSON(b, gmailapi.GmailModifyScope)
	if err != nil {
		return nil, fmt.Errorf("failed to parse OAuth client secret: %w", err)
	}

	tok, err := tokenFromFile(cfg.TokenFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load token %s (run the authorization flow to create it): %w", cfg.TokenFile, err)
	}

	// conf.Client wraps the token in a refreshing TokenSource, so an
	// expired access token is renewed transparently on first use.
	svc, err := gmailapi.NewService(ctx, option.WithHTTPClient(conf.Client(ctx, tok)))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gmail service: %w", err)
	}

	return svc, nil
}

// tokenFromFile reads a cached OAuth token in the JSON form written by the
// authorization flow.
func tokenFromFile(path string) (*oauth2.Token, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	tok := &oauth2.Token{}
	if err := json.NewDecoder(f).Decode(tok); err != nil {
		return nil, fmt.Errorf("invalid token file: %w", err)
	}
	return tok, nil
}
