package sheetsclient

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/acganger/ganger-platform-sub011/internal/config"
)

// Client reads the optimizer registry tables from a Google spreadsheet
type Client struct {
	service     *sheets.Service
	tokenSource oauth2.TokenSource
	cfg         config.SheetsConfig
}

// NewClient creates a read-only Sheets client. It authenticates with the service
// account key at cfg.CredentialsFile, or with application default credentials when
// no key file is configured.
func NewClient(ctx context.Context, cfg config.SheetsConfig) (*Client, error) {
	creds, err := loadCredentials(ctx, cfg.CredentialsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load google credentials: %w", err)
	}

	service, err := sheets.NewService(ctx, option.WithTokenSource(creds.TokenSource))
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &Client{
		service:     service,
		tokenSource: creds.TokenSource,
		cfg:         cfg,
	}, nil
}

func loadCredentials(ctx context.Context, credentialsFile string) (*google.Credentials, error) {
	if credentialsFile == "" {
		return google.FindDefaultCredentials(ctx, sheets.SpreadsheetsReadonlyScope)
	}

	data, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials file: %w", err)
	}
	return google.CredentialsFromJSON(ctx, data, sheets.SpreadsheetsReadonlyScope)
}

// Token returns a current access token for the client's credentials
func (c *Client) Token() (*oauth2.Token, error) {
	return c.tokenSource.Token()
}

// GetValues reads values from a spreadsheet range
func (c *Client) GetValues(ctx context.Context, spreadsheetID, sheetRange string) ([][]interface{}, error) {
	resp, err := c.service.Spreadsheets.Values.Get(spreadsheetID, sheetRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get values: %w", err)
	}

	return resp.Values, nil
}
