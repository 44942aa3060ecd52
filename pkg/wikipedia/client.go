// Package wikipedia fetches the introductory paragraph of an encyclopedia
// article via the MediaWiki action API. It is used to attach a short
// biography to a coach's name.
package wikipedia

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/coolbeans/coachbot/pkg/webclient"
)

// DefaultEndpoint is the English Wikipedia action API.
const DefaultEndpoint = "https://en.wikipedia.org/w/api.php"

// DefaultUserAgent identifies this tool to the API.
const DefaultUserAgent = "coachbot/0.1 (https://github.com/coolbeans/coachbot; coachbot@coolbeans.dev)"

// DefaultRequestInterval is the minimum pause between requests.
const DefaultRequestInterval = 500 * time.Millisecond

// DefaultCacheTTL is how long fetched extracts are reused.
const DefaultCacheTTL = 1 * time.Hour

// Config holds configuration for a Client.
type Config struct {
	// Endpoint is the action API URL. Default: DefaultEndpoint.
	Endpoint string

	// UserAgent is the User-Agent header sent with requests.
	UserAgent string

	// RateLimit is the minimum interval between HTTP requests.
	RateLimit time.Duration

	// CacheTTL is the time-to-live for cached extracts. Zero disables caching.
	CacheTTL time.Duration

	// HTTPClient is the underlying HTTP client used for requests.
	// If nil, http.DefaultClient is used (wrapped with rate limiting).
	HTTPClient webclient.HTTPClient

	// Logger receives request failures. If nil, logging is disabled.
	Logger *zap.SugaredLogger
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Endpoint:  DefaultEndpoint,
		UserAgent: DefaultUserAgent,
		RateLimit: DefaultRequestInterval,
		CacheTTL:  DefaultCacheTTL,
	}
}

// Client fetches introductory extracts from a MediaWiki API.
type Client struct {
	httpClient webclient.HTTPClient
	endpoint   string
	userAgent  string
	cache      *webclient.ResponseCache
	logger     *zap.SugaredLogger
}

// NewClient creates a Client from the given configuration, filling in
// defaults for any zero field.
func NewClient(config Config) *Client {
	underlyingClient := config.HTTPClient
	if underlyingClient == nil {
		underlyingClient = http.DefaultClient
	}
	endpoint := config.Endpoint
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	userAgent := config.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	return &Client{
		httpClient: webclient.NewRateLimitedHTTPClient(underlyingClient, config.RateLimit),
		endpoint:   endpoint,
		userAgent:  userAgent,
		cache:      webclient.NewResponseCache(config.CacheTTL),
		logger:     logger,
	}
}

// queryResponse mirrors the slice of the action API response we consume.
type queryResponse struct {
	Query struct {
		Pages map[string]struct {
			Title   string           `json:"title"`
			Extract string           `json:"extract"`
			Missing *json.RawMessage `json:"missing,omitempty"`
		} `json:"pages"`
	} `json:"query"`
}

// FetchIntro retrieves the introductory paragraph of the article with the
// given title, following redirects. An absent result ("" with nil error)
// means the page does not exist, has no extract, or is a disambiguation
// stub; request failures are logged and returned as errors.
func (client *Client) FetchIntro(ctx context.Context, title string) (string, error) {
	if intro, cached := client.cache.Get(title); cached {
		return intro, nil
	}

	params := url.Values{
		"format":      {"json"},
		"action":      {"query"},
		"prop":        {"extracts"},
		"exintro":     {"1"},
		"explaintext": {"1"},
		"redirects":   {"1"},
		"titles":      {title},
	}
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, client.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("failed to create Wikipedia request: %w", err)
	}
	request.Header.Set("User-Agent", client.userAgent)

	response, err := client.httpClient.Do(request)
	if err != nil {
		client.logger.Errorw("wikipedia request failed", "title", title, "error", err)
		return "", fmt.Errorf("wikipedia request failed: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode >= 400 {
		client.logger.Errorw("wikipedia request rejected", "title", title, "status", response.StatusCode)
		return "", fmt.Errorf("wikipedia request rejected with status %d", response.StatusCode)
	}

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read Wikipedia response: %w", err)
	}

	var decoded queryResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		client.logger.Errorw("wikipedia response malformed", "title", title, "error", err)
		return "", fmt.Errorf("failed to decode Wikipedia response: %w", err)
	}

	intro := ""
	for _, page := range decoded.Query.Pages {
		if page.Missing != nil {
			continue
		}
		if extract := strings.TrimSpace(page.Extract); extract != "" && !isDisambiguation(extract) {
			intro = extract
		}
		break
	}

	client.cache.Set(title, intro)
	return intro, nil
}

// isDisambiguation detects disambiguation stubs, which are not biographies.
func isDisambiguation(extract string) bool {
	return strings.Contains(extract, "may refer to:")
}
