package firebase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mercatoapp/mercato-backend/pkg/config"
	"github.com/mercatoapp/mercato-backend/pkg/logger"
)

var (
	errDatabaseURLRequired = errors.New("firebase database url is required")
	errLoggerRequired      = errors.New("firebase logger is required")
)

// Profile is the user snapshot mirrored into the Firebase realtime database.
type Profile struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone,omitempty"`
	IsClient  bool   `json:"is_client"`
	SyncedAt  string `json:"synced_at"`
}

// Client mirrors user profiles into the Firebase realtime database over REST.
type Client struct {
	baseURL string
	secret  string
	http    *http.Client
	logger  *logger.Logger
}

// NewClient validates the configuration and returns a REST client.
func NewClient(cfg config.FirebaseConfig, logg *logger.Logger) (*Client, error) {
	if logg == nil {
		return nil, errLoggerRequired
	}
	base := strings.TrimSuffix(strings.TrimSpace(cfg.DatabaseURL), "/")
	if base == "" {
		return nil, errDatabaseURLRequired
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: base,
		secret:  strings.TrimSpace(cfg.DatabaseSecret),
		http:    &http.Client{Timeout: timeout},
		logger:  logg,
	}, nil
}

// SyncProfile PUTs the profile under users/<id>.json, replacing any prior snapshot.
func (c *Client) SyncProfile(ctx context.Context, userID string, profile Profile) error {
	if strings.TrimSpace(userID) == "" {
		return errors.New("user id is required")
	}
	if profile.SyncedAt == "" {
		profile.SyncedAt = time.Now().UTC().Format(time.RFC3339)
	}

	body, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("encoding profile: %w", err)
	}

	endpoint := fmt.Sprintf("%s/users/%s.json", c.baseURL, url.PathEscape(userID))
	if c.secret != "" {
		endpoint = fmt.Sprintf("%s?auth=%s", endpoint, url.QueryEscape(c.secret))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building firebase request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("calling firebase: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("firebase responded %d: %s", resp.StatusCode, string(snippet))
	}
	return nil
}

// RemoveProfile deletes the mirrored snapshot for the user.
func (c *Client) RemoveProfile(ctx context.Context, userID string) error {
	if strings.TrimSpace(userID) == "" {
		return errors.New("user id is required")
	}

	endpoint := fmt.Sprintf("%s/users/%s.json", c.baseURL, url.PathEscape(userID))
	if c.secret != "" {
		endpoint = fmt.Sprintf("%s?auth=%s", endpoint, url.QueryEscape(c.secret))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint, nil)
	if err != nil {
		return fmt.Errorf("building firebase request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("calling firebase: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("firebase responded %d", resp.StatusCode)
	}
	return nil
}
