// Package swellapi is the client for the upstream surf backend: spot
// reference data, preference and preset storage, and the
// recommendation endpoint.
package swellapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/swellwindow/swellwindow/internal/httpx"
	"github.com/swellwindow/swellwindow/internal/preference"
	"github.com/swellwindow/swellwindow/internal/preset"
	"github.com/swellwindow/swellwindow/internal/recommendation"
	"github.com/swellwindow/swellwindow/internal/spot"
)

const (
	// ProviderName identifies this backend.
	ProviderName = "swellapi"

	// DefaultBaseURL is the backend API base URL.
	DefaultBaseURL = "https://api.swellwindow.app/v1"
)

// ClientConfig holds configuration for the backend client.
type ClientConfig struct {
	// BaseURL is the API base URL (optional).
	BaseURL string

	// APIKey authorizes service-to-service calls (required).
	APIKey string

	// HTTPClient is the HTTP client to use (optional).
	// If nil, uses a resilient client with defaults.
	HTTPClient *httpx.Client

	// Logger for client operations.
	Logger zerolog.Logger
}

// Client talks to the backend API. It implements spot.Repository,
// preference.Repository, preset.Repository, and
// recommendation.Provider.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *httpx.Client
	logger     zerolog.Logger
}

// NewClient creates a new backend client.
func NewClient(cfg ClientConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = httpx.NewClient(httpx.ClientConfig{Name: ProviderName})
	}

	return &Client{
		baseURL:    baseURL,
		apiKey:     cfg.APIKey,
		httpClient: httpClient,
		logger:     cfg.Logger,
	}
}

// Name returns the provider name.
func (c *Client) Name() string {
	return ProviderName
}

// List retrieves all spots.
func (c *Client) List(ctx context.Context) ([]*spot.Spot, error) {
	var out spotsResponse
	if err := c.get(ctx, "/spots", &out); err != nil {
		return nil, err
	}

	spots := make([]*spot.Spot, 0, len(out.Spots))
	for i := range out.Spots {
		spots = append(spots, out.Spots[i].toSpot())
	}
	return spots, nil
}

// Get retrieves a spot by ID.
func (c *Client) Get(ctx context.Context, id int64) (*spot.Spot, error) {
	var out spotResponse
	err := c.get(ctx, fmt.Sprintf("/spots/%d", id), &out)
	if isNotFound(err) {
		return nil, spot.ErrSpotNotFound
	}
	if err != nil {
		return nil, err
	}
	return out.toSpot(), nil
}

// GetPreference retrieves a user's saved preference for a spot.
func (c *Client) GetPreference(ctx context.Context, userID string, spotID int64) (*preference.SpotPreference, error) {
	var out preferenceResponse
	err := c.get(ctx, fmt.Sprintf("/users/%s/spots/%d/preference", userID, spotID), &out)
	if isNotFound(err) {
		return nil, preference.ErrPreferenceNotFound
	}
	if err != nil {
		return nil, err
	}
	return out.toPreference(), nil
}

// GetLevelDefault retrieves the skill-level default preference.
func (c *Client) GetLevelDefault(ctx context.Context, userID string, spotID int64) (*preference.SpotPreference, error) {
	var out preferenceResponse
	err := c.get(ctx, fmt.Sprintf("/users/%s/spots/%d/preference/defaults", userID, spotID), &out)
	if isNotFound(err) {
		return nil, preference.ErrDefaultsNotFound
	}
	if err != nil {
		return nil, err
	}
	return out.toPreference(), nil
}

// SavePreference persists the full recognized field set of a
// preference.
func (c *Client) SavePreference(ctx context.Context, userID string, pref *preference.SpotPreference) error {
	path := fmt.Sprintf("/users/%s/spots/%d/preference", userID, pref.SpotID)
	return c.send(ctx, http.MethodPut, path, preferencePayload(pref), nil)
}

// DeactivatePreference issues a narrow update that clears only the
// active flag, preserving stored bands.
func (c *Client) DeactivatePreference(ctx context.Context, userID string, spotID int64) error {
	path := fmt.Sprintf("/users/%s/spots/%d/preference", userID, spotID)
	err := c.send(ctx, http.MethodPatch, path, map[string]any{"is_active": false}, nil)
	if isNotFound(err) {
		return preference.ErrPreferenceNotFound
	}
	return err
}

// GetByUserAndID retrieves a preset owned by the user.
func (c *Client) GetByUserAndID(ctx context.Context, userID string, presetID int64) (*preset.Preset, error) {
	var out presetPayload
	err := c.get(ctx, fmt.Sprintf("/users/%s/presets/%d", userID, presetID), &out)
	if isNotFound(err) {
		return nil, preset.ErrPresetNotFound
	}
	if err != nil {
		return nil, err
	}
	return out.toPreset(userID), nil
}

// ListByUser retrieves all presets for a user.
func (c *Client) ListByUser(ctx context.Context, userID string) ([]*preset.Preset, error) {
	var out presetsResponse
	if err := c.get(ctx, fmt.Sprintf("/users/%s/presets", userID), &out); err != nil {
		return nil, err
	}

	presets := make([]*preset.Preset, 0, len(out.Presets))
	for i := range out.Presets {
		presets = append(presets, out.Presets[i].toPreset(userID))
	}
	return presets, nil
}

// Create persists a new preset; the backend assigns its ID.
func (c *Client) Create(ctx context.Context, p *preset.Preset) error {
	var out presetPayload
	path := fmt.Sprintf("/users/%s/presets", p.UserID)
	if err := c.send(ctx, http.MethodPost, path, toPresetPayload(p), &out); err != nil {
		return err
	}
	*p = *out.toPreset(p.UserID)
	return nil
}

// Update persists changes to an existing preset.
func (c *Client) Update(ctx context.Context, p *preset.Preset) error {
	path := fmt.Sprintf("/users/%s/presets/%d", p.UserID, p.ID)
	err := c.send(ctx, http.MethodPut, path, toPresetPayload(p), nil)
	if isNotFound(err) {
		return preset.ErrPresetNotFound
	}
	return err
}

// Delete removes a preset.
func (c *Client) Delete(ctx context.Context, userID string, presetID int64) error {
	path := fmt.Sprintf("/users/%s/presets/%d", userID, presetID)
	err := c.send(ctx, http.MethodDelete, path, nil, nil)
	if isNotFound(err) {
		return preset.ErrPresetNotFound
	}
	return err
}

// GetRecommendations fetches ranked recommendations for a request.
func (c *Client) GetRecommendations(ctx context.Context, req *recommendation.Request) (*recommendation.Set, error) {
	var out recommendationsResponse
	if err := c.send(ctx, http.MethodPost, "/recommendations", req, &out); err != nil {
		return nil, err
	}
	return out.toSet(), nil
}

// notFoundError marks a 404 from the backend so callers can map it to
// the right domain sentinel.
type notFoundError struct {
	path string
}

func (e *notFoundError) Error() string {
	return "not found: " + e.path
}

func isNotFound(err error) bool {
	var nf *notFoundError
	return errors.As(err, &nf)
}

// get performs a GET request and decodes the JSON response into out.
func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.send(ctx, http.MethodGet, path, nil, out)
}

// send performs a request with an optional JSON body, decoding the
// response into out when given.
func (c *Client) send(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader = http.NoBody
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return &notFoundError{path: path}
	case resp.StatusCode >= 400:
		c.logger.Warn().
			Str("method", method).
			Str("path", path).
			Int("status", resp.StatusCode).
			Msg("backend request failed")
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}

// preferenceRepository adapts the client to preference.Repository; the
// method names on Client would otherwise collide with spot.Repository.
type preferenceRepository struct {
	c *Client
}

func (r preferenceRepository) Get(ctx context.Context, userID string, spotID int64) (*preference.SpotPreference, error) {
	return r.c.GetPreference(ctx, userID, spotID)
}

func (r preferenceRepository) GetLevelDefault(ctx context.Context, userID string, spotID int64) (*preference.SpotPreference, error) {
	return r.c.GetLevelDefault(ctx, userID, spotID)
}

func (r preferenceRepository) Save(ctx context.Context, userID string, pref *preference.SpotPreference) error {
	return r.c.SavePreference(ctx, userID, pref)
}

func (r preferenceRepository) Deactivate(ctx context.Context, userID string, spotID int64) error {
	return r.c.DeactivatePreference(ctx, userID, spotID)
}

// PreferenceRepository returns a preference.Repository view of the
// client.
func (c *Client) PreferenceRepository() preference.Repository {
	return preferenceRepository{c: c}
}

// Interface conformance.
var (
	_ spot.Repository         = (*Client)(nil)
	_ preset.Repository       = (*Client)(nil)
	_ recommendation.Provider = (*Client)(nil)
)
