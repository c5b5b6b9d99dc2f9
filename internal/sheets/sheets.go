// Package sheets reads the rate spreadsheet through the Google Sheets API.
package sheets

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"

	"tasasbot/internal/rates"
)

var ErrNoCredentials = errors.New("sheets: either an OAuth2 refresh token or an API key is required")

type Config struct {
	SpreadsheetID string
	Range         string

	// OAuth2 client credentials plus a long-lived refresh token.
	ClientID     string
	ClientSecret string
	RefreshToken string

	// APIKey is enough for spreadsheets shared publicly.
	APIKey string
}

func (c Config) clientOptions(ctx context.Context) ([]option.ClientOption, error) {
	switch {
	case c.RefreshToken != "":
		conf := &oauth2.Config{
			ClientID:     c.ClientID,
			ClientSecret: c.ClientSecret,
			Endpoint:     google.Endpoint,
			Scopes:       []string{gsheets.SpreadsheetsReadonlyScope},
		}
		ts := conf.TokenSource(ctx, &oauth2.Token{RefreshToken: c.RefreshToken})
		return []option.ClientOption{option.WithTokenSource(ts)}, nil
	case c.APIKey != "":
		return []option.ClientOption{option.WithAPIKey(c.APIKey)}, nil
	default:
		return nil, ErrNoCredentials
	}
}

// Client fetches the configured range as rows of text cells.
type Client struct {
	values        *gsheets.SpreadsheetsValuesService
	spreadsheetID string
	readRange     string
	logger        *slog.Logger
}

var _ rates.Fetcher = (*Client)(nil)

// New builds a Client from cfg. Extra options are appended after the
// credential options, which lets tests point the client at a fake server.
func New(ctx context.Context, cfg Config, logger *slog.Logger, extra ...option.ClientOption) (*Client, error) {
	opts, err := cfg.clientOptions(ctx)
	if err != nil && len(extra) == 0 {
		return nil, err
	}
	opts = append(opts, extra...)

	svc, err := gsheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("sheets: create service: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		values:        svc.Spreadsheets.Values,
		spreadsheetID: cfg.SpreadsheetID,
		readRange:     cfg.Range,
		logger:        logger.With(slog.String("component", "sheets")),
	}, nil
}

// FetchRows reads the range with formatted values, so rates arrive exactly
// as the sheet displays them ("35,50").
func (c *Client) FetchRows(ctx context.Context) ([][]string, error) {
	resp, err := c.values.Get(c.spreadsheetID, c.readRange).
		ValueRenderOption("FORMATTED_VALUE").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("sheets: get %s: %w", c.readRange, err)
	}

	rows := Rows(resp.Values)
	c.logger.DebugContext(ctx, "fetched rows", slog.Int("rows", len(rows)), slog.String("range", resp.Range))
	return rows, nil
}

// Rows converts the API's loosely typed cells to strings.
func Rows(values [][]any) [][]string {
	rows := make([][]string, 0, len(values))
	for _, v := range values {
		row := make([]string, len(v))
		for i, cell := range v {
			switch c := cell.(type) {
			case nil:
			case string:
				row[i] = c
			default:
				row[i] = fmt.Sprint(c)
			}
		}
		rows = append(rows, row)
	}
	return rows
}
