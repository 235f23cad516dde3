package transit

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/ytget/departure-board/internal/model"
)

// Endpoint defaults
const (
	DefaultBaseURL      = "http://transport.opendata.ch/v1"
	DefaultStation      = "Zürich Zentrum Witikon"
	DefaultLimit        = 50
	DefaultHTTPTimeout  = 30 * time.Second
	StationboardPath    = "/stationboard"
	StationboardField   = "stationboard"
	DefaultUserAgent    = "departure-board/1.0 (+https://github.com/ytget/departure-board)"
	maxErrorBodyPreview = 256
)

// DefaultTerminals are the destination substrings kept when filtering
var DefaultTerminals = []string{"Klusplatz", "Hermetsc"}

// Config configures a Client
type Config struct {
	BaseURL   string
	Station   string
	Limit     int
	Terminals []string
	Timeout   time.Duration
	UserAgent string
}

// DefaultConfig returns the fixed station board setup
func DefaultConfig() Config {
	terminals := make([]string, len(DefaultTerminals))
	copy(terminals, DefaultTerminals)
	return Config{
		BaseURL:   DefaultBaseURL,
		Station:   DefaultStation,
		Limit:     DefaultLimit,
		Terminals: terminals,
		Timeout:   DefaultHTTPTimeout,
		UserAgent: DefaultUserAgent,
	}
}

// Client fetches the station board
type Client struct {
	httpClient *http.Client
	config     Config
}

// NewClient creates a client. Zero fields of cfg fall back to DefaultConfig.
func NewClient(cfg Config) *Client {
	def := DefaultConfig()
	if cfg.BaseURL == "" {
		cfg.BaseURL = def.BaseURL
	}
	if cfg.Station == "" {
		cfg.Station = def.Station
	}
	if cfg.Limit <= 0 {
		cfg.Limit = def.Limit
	}
	if cfg.Terminals == nil {
		cfg.Terminals = def.Terminals
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = def.UserAgent
	}

	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		config:     cfg,
	}
}

// Config returns the effective client configuration
func (c *Client) Config() Config {
	return c.config
}

// RequestURL returns the station board URL the client requests
func (c *Client) RequestURL() string {
	query := url.Values{}
	query.Set("station", c.config.Station)
	query.Set("limit", strconv.Itoa(c.config.Limit))
	return c.config.BaseURL + StationboardPath + "?" + query.Encode()
}

// Fetch issues one GET and decodes the station board
func (c *Client) Fetch(ctx context.Context, filterToTerminals bool) ([]model.Departure, error) {
	reqURL := c.RequestURL()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, newFetchError(KindConnection, err, "failed to build stationboard request")
	}
	req.Header.Set("User-Agent", c.config.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, newFetchError(KindConnection, err, "failed to fetch stationboard")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, newFetchError(KindIO, err, "failed to read stationboard response body")
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Debug().
			Int("status", resp.StatusCode).
			Str("body", preview(body)).
			Msg("stationboard returned non-2xx status")
		return nil, newFetchError(KindStatus, errors.Errorf("unexpected status code: %d", resp.StatusCode), "stationboard request rejected")
	}

	departures, err := DecodeStationboard(body)
	if err != nil {
		return nil, err
	}

	if filterToTerminals {
		departures = model.FilterByTerminals(departures, c.config.Terminals)
	}

	return departures, nil
}

// DecodeStationboard decodes a station board response body. Each array
// element is decoded on its own; the first failing element fails the whole
// body.
func DecodeStationboard(body []byte) ([]model.Departure, error) {
	var document map[string]json.RawMessage
	if err := json.Unmarshal(body, &document); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, newFetchError(KindStructure, err, "stationboard response is not a JSON object")
		}
		return nil, newFetchError(KindJSON, err, "failed to decode stationboard JSON")
	}

	raw, ok := document[StationboardField]
	if !ok {
		return nil, newFetchError(KindStructure, nil, "stationboard field missing from response")
	}

	var elements []json.RawMessage
	if err := json.Unmarshal(raw, &elements); err != nil {
		return nil, newFetchError(KindStructure, err, "stationboard field is not an array")
	}
	if elements == nil {
		return nil, newFetchError(KindStructure, nil, "stationboard field is null")
	}

	departures := make([]model.Departure, 0, len(elements))
	for i, element := range elements {
		var dep model.Departure
		if err := json.Unmarshal(element, &dep); err != nil {
			return nil, newFetchError(KindJSON, err, "failed to decode departure "+strconv.Itoa(i))
		}
		departures = append(departures, dep)
	}

	return departures, nil
}

func preview(body []byte) string {
	if len(body) > maxErrorBodyPreview {
		return string(body[:maxErrorBodyPreview]) + "..."
	}
	return string(body)
}
