package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// ErrUnauthorized indicates the catalog rejected the supplied credentials.
var ErrUnauthorized = errors.New("catalog rejected credentials")

const userAgent = "romshelf/1.0"

// Game is one entry of a system's game list, with its known hashes.
type Game struct {
	ID     int      `json:"ID"`
	Title  string   `json:"Title"`
	Hashes []string `json:"Hashes"`
}

// HashRecord pairs a hash with the catalog's canonical filename for it.
type HashRecord struct {
	MD5  string `json:"MD5"`
	Name string `json:"Name"`
}

type hashesResponse struct {
	Results []HashRecord `json:"Results"`
}

// Service defines the catalog operations the reconciliation engine consumes.
type Service interface {
	ListGames(ctx context.Context, systemID int) ([]Game, error)
	GameHashes(ctx context.Context, gameID int) ([]HashRecord, error)
}

// CredentialVerifier probes the catalog with the configured credentials.
type CredentialVerifier interface {
	VerifyCredentials(ctx context.Context) error
}

// Client provides access to the RetroAchievements web API.
type Client struct {
	username   string
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

var _ Service = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTimeout sets the request timeout on the default HTTP client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// New creates a catalog client.
func New(username, apiKey, baseURL string, opts ...Option) (*Client, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, errors.New("catalog username required")
	}
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("catalog api key required")
	}
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("catalog base url required")
	}
	client := &Client{
		username:   username,
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// ListGames fetches the full game list for a system, hashes included.
// Response order is preserved; the hash index build relies on it.
func (c *Client) ListGames(ctx context.Context, systemID int) ([]Game, error) {
	if systemID <= 0 {
		return nil, errors.New("system id must be positive")
	}
	params := url.Values{}
	params.Set("i", strconv.Itoa(systemID))
	params.Set("h", "1")
	params.Set("f", "1")

	var games []Game
	if err := c.get(ctx, "API_GetGameList.php", params, &games); err != nil {
		return nil, fmt.Errorf("list games for system %d: %w", systemID, err)
	}
	return games, nil
}

// GameHashes fetches the per-game hash records, each with its canonical filename.
func (c *Client) GameHashes(ctx context.Context, gameID int) ([]HashRecord, error) {
	if gameID <= 0 {
		return nil, errors.New("game id must be positive")
	}
	params := url.Values{}
	params.Set("i", strconv.Itoa(gameID))

	var payload hashesResponse
	if err := c.get(ctx, "API_GetGameHashes.php", params, &payload); err != nil {
		return nil, fmt.Errorf("game %d hashes: %w", gameID, err)
	}
	return payload.Results, nil
}

// VerifyCredentials issues a cheap authenticated call so startup can fail fast
// on a bad API key instead of midway through a scan.
func (c *Client) VerifyCredentials(ctx context.Context) error {
	params := url.Values{}
	params.Set("a", "1")
	params.Set("g", "1")
	var consoles []struct {
		ID   int    `json:"ID"`
		Name string `json:"Name"`
	}
	if err := c.get(ctx, "API_GetConsoleIDs.php", params, &consoles); err != nil {
		return fmt.Errorf("verify credentials: %w", err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, endpoint string, params url.Values, payload any) error {
	target, err := url.Parse(c.baseURL + "/" + endpoint)
	if err != nil {
		return fmt.Errorf("parse catalog url: %w", err)
	}
	if params == nil {
		params = url.Values{}
	}
	params.Set("z", c.username)
	params.Set("y", c.apiKey)
	target.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return fmt.Errorf("execute request (latency=%v): %w", latency, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return ErrUnauthorized
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("catalog returned %d (latency=%v)", resp.StatusCode, latency)
	}

	if err := json.NewDecoder(resp.Body).Decode(payload); err != nil {
		return fmt.Errorf("decode catalog response: %w", err)
	}
	return nil
}
