// Spotify API implementation of [Searcher]
//
// Spotify API response types based on https://developer.spotify.com/documentation/web-api/reference/
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strconv"

	"github.com/desertthunder/cratedig/internal/models"
	"github.com/desertthunder/cratedig/internal/shared"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/time/rate"
)

const (
	spotifyTokenURL = "https://accounts.spotify.com/api/token"
	spotifyBaseURL  = "https://api.spotify.com/v1"

	defaultSearchLimit = 10
	maxSearchLimit     = 50
	defaultRateLimit   = 5.0 // requests per second
)

// SpotifyImage represents an image resource.
type SpotifyImage struct {
	URL    string `json:"url"`
	Height int    `json:"height"`
	Width  int    `json:"width"`
}

type owner struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

type simplePlaylistTrack struct {
	Total int `json:"total"`
}

// SpotifySimplePlaylist represents a simplified playlist object (used in search results).
type SpotifySimplePlaylist struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Owner       owner               `json:"owner"`
	Public      bool                `json:"public"`
	Tracks      simplePlaylistTrack `json:"tracks"`
	Images      []SpotifyImage      `json:"images"`
	URI         string              `json:"uri"`
}

// SpotifyPaginatedPlaylists represents a paginated page of playlists.
//
// Items are pointers: the search endpoint is known to return null entries
// inside the items array, which must be skipped.
type SpotifyPaginatedPlaylists struct {
	Items    []*SpotifySimplePlaylist `json:"items"`
	Total    int                      `json:"total"`
	Limit    int                      `json:"limit"`
	Offset   int                      `json:"offset"`
	Next     *string                  `json:"next"`
	Previous *string                  `json:"previous"`
}

// SpotifySearchResponse is the envelope returned by GET /search?type=playlist.
type SpotifySearchResponse struct {
	Playlists SpotifyPaginatedPlaylists `json:"playlists"`
}

// TokenCache persists an [oauth2.Token] as JSON at a fixed path so repeated
// invocations reuse a still-valid token instead of requesting a new one.
type TokenCache struct {
	path string
}

// NewTokenCache creates a token cache backed by the file at path.
// An empty path disables caching.
func NewTokenCache(path string) *TokenCache {
	return &TokenCache{path: path}
}

// Load reads a previously cached token. Returns (nil, nil) if the cache
// file does not exist or the token is no longer valid.
func (c *TokenCache) Load() (*oauth2.Token, error) {
	if c == nil || c.path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(c.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read token cache: %w", err)
	}

	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("failed to parse token cache: %w", err)
	}

	if !token.Valid() {
		return nil, nil
	}

	return &token, nil
}

// Save writes the token to the cache file with owner-only permissions.
func (c *TokenCache) Save(token *oauth2.Token) error {
	if c == nil || c.path == "" || token == nil {
		return nil
	}

	data, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("failed to marshal token: %w", err)
	}

	if err := os.WriteFile(c.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write token cache: %w", err)
	}

	return nil
}

// SpotifyService implements [Searcher] for the Spotify Web API.
//
// Authentication uses the OAuth2 client-credentials grant via
// [clientcredentials.Config]; requests are throttled with a [rate.Limiter].
type SpotifyService struct {
	config     *clientcredentials.Config
	token      *oauth2.Token
	cache      *TokenCache
	httpClient *http.Client
	limiter    *rate.Limiter
}

var _ Searcher = (*SpotifyService)(nil)

// NewSpotifyService creates a new Spotify service with the given credentials.
//
// Recognized keys: client_id and client_secret (required), token_cache
// (optional path for the persisted token).
func NewSpotifyService(credentials map[string]string) (*SpotifyService, error) {
	clientID, ok := credentials["client_id"]
	if !ok || clientID == "" {
		return nil, fmt.Errorf("%w: missing client_id", shared.ErrMissingCredentials)
	}

	clientSecret, ok := credentials["client_secret"]
	if !ok || clientSecret == "" {
		return nil, fmt.Errorf("%w: missing client_secret", shared.ErrMissingCredentials)
	}

	config := &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     spotifyTokenURL,
	}

	return &SpotifyService{
		config:     config,
		cache:      NewTokenCache(credentials["token_cache"]),
		httpClient: http.DefaultClient,
		limiter:    rate.NewLimiter(rate.Limit(defaultRateLimit), 1),
	}, nil
}

func (s *SpotifyService) Name() string {
	return "Spotify"
}

// SetRateLimit adjusts the request throttle to rps requests per second.
// Non-positive values reset to the default.
func (s *SpotifyService) SetRateLimit(rps float64) {
	if rps <= 0 {
		rps = defaultRateLimit
	}
	s.limiter = rate.NewLimiter(rate.Limit(rps), 1)
}

// SetHTTPClient replaces the underlying HTTP client (tests inject a
// transport here).
func (s *SpotifyService) SetHTTPClient(client *http.Client) {
	if client != nil {
		s.httpClient = client
	}
}

// Authenticate acquires an access token via the client-credentials grant.
//
// A valid token from the cache file is reused; freshly fetched tokens are
// written back to the cache.
func (s *SpotifyService) Authenticate(ctx context.Context) error {
	if cached, err := s.cache.Load(); err == nil && cached != nil {
		s.token = cached
		return nil
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, s.httpClient)
	token, err := s.config.Token(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAuthFailed, err)
	}

	s.token = token

	// Cache write failures are not fatal; the next run fetches a new token.
	_ = s.cache.Save(token)

	return nil
}

// doRequest performs an authenticated GET against the Spotify API,
// refreshing the token first when needed.
func (s *SpotifyService) doRequest(ctx context.Context, endpoint string, result any) error {
	if s.token == nil || !s.token.Valid() {
		if err := s.Authenticate(ctx); err != nil {
			return err
		}
	}

	apiURL := spotifyBaseURL + endpoint

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+s.token.AccessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrUpstreamRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return fmt.Errorf("%w: spotify API status %d", shared.ErrTokenExpired, resp.StatusCode)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: spotify API status %d", shared.ErrUpstreamRequest, resp.StatusCode)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("%w: failed to decode response: %v", shared.ErrUpstreamRequest, err)
		}
	}

	return nil
}

// SearchPlaylists issues a single playlist-type search restricted to the
// given market, returning at most opts.Limit results.
func (s *SpotifyService) SearchPlaylists(ctx context.Context, query string, opts SearchOptions) ([]models.Playlist, error) {
	if query == "" {
		return nil, fmt.Errorf("%w: empty query", shared.ErrInvalidInput)
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	if limit > maxSearchLimit {
		limit = maxSearchLimit
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrUpstreamRequest, err)
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("type", "playlist")
	params.Set("limit", strconv.Itoa(limit))
	if opts.Market != "" {
		params.Set("market", opts.Market)
	}

	var response SpotifySearchResponse
	if err := s.doRequest(ctx, "/search?"+params.Encode(), &response); err != nil {
		return nil, err
	}

	playlists := make([]models.Playlist, 0, len(response.Playlists.Items))
	for _, item := range response.Playlists.Items {
		if item == nil {
			continue
		}
		playlists = append(playlists, models.Playlist{
			ID:          item.ID,
			Name:        item.Name,
			Description: item.Description,
			Owner:       item.Owner.DisplayName,
			TrackCount:  item.Tracks.Total,
			Public:      item.Public,
		})
	}

	return playlists, nil
}
