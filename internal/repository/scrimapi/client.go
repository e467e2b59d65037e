// Package scrimapi implements the repository contracts against the scrim
// backend's REST API. It issues logical fetches only: no retries, no token
// refresh. Transport failures surface as repository.ErrUnavailable and the
// service layer decides whether that means fallback or a user-facing error.
package scrimapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/scrimtrack/scrim-stats-service/internal/repository"
)

const defaultTimeout = 30 * time.Second

// Config holds what the client needs to reach the backend.
type Config struct {
	BaseURL string
	// Token is sent as a bearer credential when non-empty.
	Token   string
	Timeout time.Duration
}

// Client talks to the scrim backend. One instance implements all of the
// repository fetch contracts; compile-time assertions live next to each
// method group.
type Client struct {
	cfg  Config
	http *http.Client
	log  zerolog.Logger
}

func New(cfg Config, logger zerolog.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	l := logger.With().Str("module", "repository").Str("component", "scrimapi").Logger()
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
		log:  l,
	}
}

// getJSON performs a GET against the backend and decodes the JSON body into
// out. Statuses are mapped to domain errors in repository/errors.go.
func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+path, nil)
	if err != nil {
		return fmt.Errorf("create request %s: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")
	if c.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", repository.ErrUnavailable, path, err)
	}
	defer resp.Body.Close()

	c.log.Debug().
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("took", time.Since(start)).
		Msg("backend request")

	if err := repository.MapStatus(resp.StatusCode, path); err != nil {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, resp.Body)
		return err
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
