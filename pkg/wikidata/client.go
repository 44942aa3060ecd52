// Package wikidata queries the Wikidata SPARQL endpoint for Bundesliga
// reference data (clubs, home cities, aliases) and for the current head
// coach of a club.
package wikidata

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/coolbeans/coachbot/pkg/sparql"
	"github.com/coolbeans/coachbot/pkg/webclient"
)

// DefaultEndpoint is the public Wikidata query service.
const DefaultEndpoint = "https://query.wikidata.org/sparql"

// DefaultUserAgent identifies this tool to the endpoint, as the Wikimedia
// API etiquette requires.
const DefaultUserAgent = "coachbot/0.1 (https://github.com/coolbeans/coachbot; coachbot@coolbeans.dev)"

// DefaultRequestInterval is the minimum pause between requests to the
// public endpoint.
const DefaultRequestInterval = 1 * time.Second

// DefaultCacheTTL is how long query responses are reused. Reference data
// and head-coach relations change rarely.
const DefaultCacheTTL = 15 * time.Minute

// DefaultLanguage is the label language requested from the endpoint.
const DefaultLanguage = "en"

// Wikidata properties and entities used by the queries.
const (
	propInstanceOf   = "wdt:P31"
	propSubclassOf   = "wdt:P279"
	propLeague       = "wdt:P118"
	propHeadquarters = "wdt:P159"
	propCountry      = "wdt:P17"
	propHeadCoach    = "wdt:P286"
	propEndTime      = "wdt:P582"

	entityFootballClub = "wd:Q476028"
	entityBundesliga   = "wd:Q82595"
	entityCity         = "wd:Q515"
	entityGermany      = "wd:Q183"
)

// Config holds configuration for a Client.
type Config struct {
	// Endpoint is the SPARQL endpoint URL. Default: DefaultEndpoint.
	Endpoint string

	// Language is the label language filter. Default: "en".
	Language string

	// UserAgent is the User-Agent header sent with requests.
	UserAgent string

	// RateLimit is the minimum interval between HTTP requests.
	// Default: 1 second.
	RateLimit time.Duration

	// CacheTTL is the time-to-live for cached query responses.
	// Default: 15 minutes. Zero disables caching.
	CacheTTL time.Duration

	// HTTPClient is the underlying HTTP client used for requests.
	// If nil, http.DefaultClient is used (wrapped with rate limiting).
	HTTPClient webclient.HTTPClient

	// Logger receives query failures and empty-result notices.
	// If nil, logging is disabled.
	Logger *zap.SugaredLogger
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Endpoint:  DefaultEndpoint,
		Language:  DefaultLanguage,
		UserAgent: DefaultUserAgent,
		RateLimit: DefaultRequestInterval,
		CacheTTL:  DefaultCacheTTL,
	}
}

// Client issues SPARQL queries to a Wikidata-compatible endpoint with rate
// limiting and response caching.
type Client struct {
	httpClient webclient.HTTPClient
	endpoint   string
	language   string
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
	language := config.Language
	if language == "" {
		language = DefaultLanguage
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
		language:   language,
		userAgent:  userAgent,
		cache:      webclient.NewResponseCache(config.CacheTTL),
		logger:     logger,
	}
}

// runQuery executes one SPARQL query and decodes the JSON result set.
// Responses are cached by query text for the configured TTL.
func (client *Client) runQuery(ctx context.Context, queryText string) (*sparql.Results, error) {
	if body, cached := client.cache.Get(queryText); cached {
		return sparql.DecodeResults(strings.NewReader(body))
	}

	requestURL := client.endpoint + "?" + url.Values{"query": {queryText}}.Encode()
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create SPARQL request: %w", err)
	}
	request.Header.Set("Accept", "application/sparql-results+json")
	request.Header.Set("User-Agent", client.userAgent)

	response, err := client.httpClient.Do(request)
	if err != nil {
		client.logger.Errorw("wikidata request failed", "error", err)
		return nil, fmt.Errorf("wikidata request failed: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode >= 400 {
		client.logger.Errorw("wikidata request rejected", "status", response.StatusCode)
		return nil, fmt.Errorf("wikidata request rejected with status %d", response.StatusCode)
	}

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read SPARQL response: %w", err)
	}

	results, err := sparql.DecodeResults(strings.NewReader(string(body)))
	if err != nil {
		client.logger.Errorw("wikidata response malformed", "error", err)
		return nil, err
	}

	client.cache.Set(queryText, string(body))
	return results, nil
}

// labelService renders the Wikibase label-service clause for the configured
// language.
func (client *Client) labelService() string {
	return fmt.Sprintf(`bd:serviceParam wikibase:language "%s" .`, sparql.EscapeLiteral(client.language))
}
