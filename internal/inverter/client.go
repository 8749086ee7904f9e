package inverter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/solwatch/solwatch/internal/infrastructure/config"
	"github.com/solwatch/solwatch/internal/telemetry"
)

// Client fetches live readings from an AhoyDTU device.
//
// Fetch is a pure single-shot operation: one request, one response, no
// retries. Retry/skip policy belongs to the acquisition loop.
//
// Thread Safety: Fetch is safe for concurrent use; the client holds no
// mutable state beyond the shared http.Client.
type Client struct {
	url        string
	httpClient *http.Client
}

// livePayload mirrors the AhoyDTU /api/record/live document:
//
//	{"inverter": [[{"fld": "U_DC", "unit": "V", "val": "32.1"}, ...]]}
//
// The outer list holds one record list per inverter channel.
type livePayload struct {
	Inverter [][]liveField `json:"inverter"`
}

// liveField is one measurement entry in the live record.
type liveField struct {
	Name  string          `json:"fld"`
	Unit  string          `json:"unit"`
	Value json.RawMessage `json:"val"`
}

// NewClient creates a fetcher for the configured device.
//
// Parameters:
//   - cfg: Device configuration (endpoint URL and request timeout)
//
// Returns:
//   - *Client: Fetcher ready for use
func NewClient(cfg config.DeviceConfig) *Client {
	return &Client{
		url: cfg.URL,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.Timeout) * time.Second,
		},
	}
}

// Fetch performs one request/response cycle against the device's live-data
// endpoint and flattens the payload into a Reading.
//
// Flattening is deterministic: only the first inverter channel is read
// (matching the device's single-inverter record layout), and the first
// occurrence of a field name wins if the record repeats one.
//
// Parameters:
//   - ctx: Context for cancellation; the client timeout still applies
//
// Returns:
//   - telemetry.Reading: CapturedAt set to the moment of the successful response
//   - error: ErrUnreachable or ErrMalformedResponse, wrapped with detail
func (c *Client) Fetch(ctx context.Context) (telemetry.Reading, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return telemetry.Reading{}, fmt.Errorf("building request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return telemetry.Reading{}, fmt.Errorf("%w: %w", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Drain body to allow connection reuse
		_, _ = io.Copy(io.Discard, resp.Body)
		return telemetry.Reading{}, fmt.Errorf("%w: status %d", ErrUnreachable, resp.StatusCode)
	}

	var payload livePayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return telemetry.Reading{}, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}

	fields, err := flatten(payload)
	if err != nil {
		return telemetry.Reading{}, err
	}

	return telemetry.Reading{
		CapturedAt: time.Now().UTC(),
		Fields:     fields,
	}, nil
}

// URL returns the configured live-data endpoint, for log context.
func (c *Client) URL() string {
	return c.url
}

// flatten reduces the nested live payload to a flat field map.
func flatten(payload livePayload) (map[string]any, error) {
	if len(payload.Inverter) == 0 || len(payload.Inverter[0]) == 0 {
		return nil, fmt.Errorf("%w: no inverter records", ErrMalformedResponse)
	}

	fields := make(map[string]any, len(payload.Inverter[0]))
	for _, entry := range payload.Inverter[0] {
		if entry.Name == "" {
			continue
		}
		if _, seen := fields[entry.Name]; seen {
			continue // first occurrence wins
		}
		value, ok := decodeValue(entry.Value)
		if !ok {
			continue
		}
		fields[entry.Name] = value
	}

	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: record contains no named fields", ErrMalformedResponse)
	}

	return fields, nil
}

// decodeValue parses a raw "val" entry into a scalar.
//
// The firmware quotes numbers inconsistently, so numeric strings are
// normalised to float64 here; genuine text and booleans pass through.
func decodeValue(raw json.RawMessage) (any, bool) {
	if len(raw) == 0 {
		return nil, false
	}

	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, false
	}

	switch val := v.(type) {
	case float64, bool:
		return val, true
	case string:
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f, true
		}
		return val, true
	default:
		// Nested objects/arrays never appear in field values; drop them.
		return nil, false
	}
}
