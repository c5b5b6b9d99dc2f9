package dolarapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"tasasbot/internal/exchange"
)

const DefaultURL = "https://ve.dolarapi.com/v1/dolares"

// ApiDolar reads the USD/Bolivar quotes published by DolarApi.
type ApiDolar struct {
	BaseURL string
	Client  *http.Client
	logger  *slog.Logger
}

func NewApiDolar(baseURL string, client *http.Client, logger *slog.Logger) *ApiDolar {
	if baseURL == "" {
		baseURL = DefaultURL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ApiDolar{
		BaseURL: baseURL,
		Client:  client,
		logger:  logger.With(slog.String("component", "dolarapi")),
	}
}

var _ exchange.API = (*ApiDolar)(nil)

// Rates fetches every published quote. Failures wrap exchange.ErrUnavailable.
func (api *ApiDolar) Rates(ctx context.Context) ([]exchange.Rate, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, api.BaseURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %w", exchange.ErrUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := api.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", exchange.ErrUnavailable, err)
	}
	defer func(Body io.ReadCloser) {
		if err := Body.Close(); err != nil {
			api.logger.Warn("closing response body", slog.Any("error", err))
		}
	}(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: unexpected status %s", exchange.ErrUnavailable, resp.Status)
	}

	var quotes []quote
	if err := json.NewDecoder(resp.Body).Decode(&quotes); err != nil {
		return nil, fmt.Errorf("%w: decode response: %w", exchange.ErrUnavailable, err)
	}

	out := make([]exchange.Rate, 0, len(quotes))
	for _, q := range quotes {
		if q.Average == nil {
			api.logger.Debug("skipping quote without average", slog.String("name", q.Name))
			continue
		}
		out = append(out, exchange.Rate{
			Name:      q.Name,
			Average:   *q.Average,
			UpdatedAt: parseTime(q.UpdatedAt),
		})
	}
	return out, nil
}

// parseTime accepts RFC 3339 with or without fractional seconds. Anything
// else yields the zero time.
func parseTime(s string) time.Time {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
