package geocode

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/m-mizutani/contribmap/pkg/domain/interfaces"
	"github.com/m-mizutani/contribmap/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
)

const (
	defaultEndpoint  = "https://maps.googleapis.com/maps/api/geocode/json"
	defaultCacheSize = 1024

	statusOK          = "OK"
	statusZeroResults = "ZERO_RESULTS"
)

// Client geocodes addresses with the Google Geocoding API. Results,
// including addresses without a match, are cached by address.
type Client struct {
	apiKey     string
	endpoint   string
	httpClient *http.Client
	cache      *lru.Cache[string, *model.Coordinates]
}

var _ interfaces.Geocoder = (*Client)(nil)

// Option is a functional option for Client
type Option func(*Client)

// WithEndpoint overrides the API endpoint
func WithEndpoint(endpoint string) Option {
	return func(c *Client) {
		c.endpoint = endpoint
	}
}

// WithHTTPClient replaces the HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a geocoding client with a result cache of cacheSize entries
func NewClient(apiKey string, cacheSize int, opts ...Option) (*Client, error) {
	if cacheSize <= 0 {
		cacheSize = defaultCacheSize
	}
	cache, err := lru.New[string, *model.Coordinates](cacheSize)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create geocode cache")
	}

	c := &Client{
		apiKey:     apiKey,
		endpoint:   defaultEndpoint,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		cache:      cache,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

type response struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Results      []struct {
		Geometry struct {
			Location model.Coordinates `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

// Geocode returns the first result for address, or nil when there is none
func (c *Client) Geocode(ctx context.Context, address string) (*model.Coordinates, error) {
	if coords, ok := c.cache.Get(address); ok {
		return coords, nil
	}

	q := url.Values{}
	q.Set("address", address)
	q.Set("key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create geocode request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to call geocode API", goerr.V("address", address))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, goerr.New("unexpected geocode API status",
			goerr.V("status_code", resp.StatusCode),
			goerr.V("address", address),
		)
	}

	var body response
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, goerr.Wrap(err, "failed to decode geocode response")
	}

	switch body.Status {
	case statusOK:
		if len(body.Results) == 0 {
			c.cache.Add(address, nil)
			return nil, nil
		}
		coords := body.Results[0].Geometry.Location
		c.cache.Add(address, &coords)
		return &coords, nil

	case statusZeroResults:
		c.cache.Add(address, nil)
		return nil, nil

	default:
		return nil, goerr.New("geocode API returned an error",
			goerr.V("status", body.Status),
			goerr.V("message", body.ErrorMessage),
			goerr.V("address", address),
		)
	}
}
