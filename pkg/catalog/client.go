package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/carangas-hq/carangas-catalog/internal/domain"
	"github.com/carangas-hq/carangas-catalog/pkg/httpclient"
)

const (
	DefaultBaseURL   = "https://carangas.herokuapp.com/cars"
	DefaultBrandsURL = "http://fipeapi.appspot.com/api/1/carros/marcas.json"
)

// Vehicle and Brand are the records the client sends and receives.
type (
	Vehicle = domain.Vehicle
	Brand   = domain.Brand
)

// MarshalFunc serializes a vehicle for mutation requests.
type MarshalFunc func(v any) ([]byte, error)

// Options configures a Client. Zero values fall back to the package defaults.
type Options struct {
	BaseURL   string
	BrandsURL string
	Logger    Logger
	Marshal   MarshalFunc
}

// Client talks to the remote vehicle catalog. It holds no per-request state and
// is safe for concurrent use as long as the injected httpclient.Client is.
type Client struct {
	http      httpclient.Client
	baseURL   string
	brandsURL string
	log       Logger
	marshal   MarshalFunc
}

// NewClient builds a catalog client over the shared transport (or a default one).
func NewClient(client httpclient.Client, opts Options) *Client {
	if client == nil {
		client = httpclient.NewRestyClient(httpclient.DefaultTransportConfig())
	}
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.BrandsURL == "" {
		opts.BrandsURL = DefaultBrandsURL
	}
	if opts.Marshal == nil {
		opts.Marshal = json.Marshal
	}
	return &Client{
		http:      client,
		baseURL:   strings.TrimRight(opts.BaseURL, "/"),
		brandsURL: opts.BrandsURL,
		log:       ensureLogger(opts.Logger),
		marshal:   opts.Marshal,
	}
}

// BaseURL returns the vehicle collection endpoint.
func (c *Client) BaseURL() string { return c.baseURL }

// FetchVehicles downloads the vehicle collection in server order. Every failure is
// returned as a *FetchError.
func (c *Client) FetchVehicles(ctx context.Context) ([]Vehicle, error) {
	vehicles, err := c.fetchVehicles(ctx)
	if err != nil {
		fields := map[string]any{
			"url":   c.baseURL,
			"kind":  KindOf(err).String(),
			"error": err.Error(),
		}
		if fe, ok := err.(*FetchError); ok && fe.StatusCode != 0 {
			fields["status"] = fe.StatusCode
		}
		c.log.WarnObj("catalog vehicles fetch failed", "catalog_fetch_error", fields)
		return nil, err
	}
	c.log.DebugObj("catalog vehicles fetched", "catalog_fetch_result", map[string]any{
		"url":   c.baseURL,
		"count": len(vehicles),
	})
	return vehicles, nil
}

func (c *Client) fetchVehicles(ctx context.Context) ([]Vehicle, error) {
	endpoint, err := parseEndpoint(c.baseURL)
	if err != nil {
		return nil, &FetchError{Kind: KindMalformedURL, URL: c.baseURL, Err: err}
	}

	resp, err := c.http.Get(ctx, endpoint, nil)
	if err != nil {
		return nil, &FetchError{Kind: KindTransportFailure, URL: endpoint, Err: err}
	}
	if resp == nil {
		return nil, &FetchError{Kind: KindNoResponse, URL: endpoint}
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, &FetchError{Kind: KindUnexpectedStatus, URL: endpoint, StatusCode: resp.StatusCode()}
	}

	body := resp.Body()
	if len(body) == 0 {
		return nil, &FetchError{Kind: KindNoData, URL: endpoint}
	}

	var vehicles []Vehicle
	if err := json.Unmarshal(body, &vehicles); err != nil {
		c.log.DebugObj("catalog vehicles decode failed", "catalog_decode_error", map[string]any{
			"url":     endpoint,
			"error":   err.Error(),
			"snippet": responseSnippet(body),
		})
		return nil, &FetchError{Kind: KindDecodeFailure, URL: endpoint, Err: err}
	}
	if vehicles == nil {
		vehicles = []Vehicle{}
	}
	return vehicles, nil
}

// FetchBrands downloads the brand reference list. Failures are logged and
// reported as a nil slice.
func (c *Client) FetchBrands(ctx context.Context) []Brand {
	brands, err := c.fetchBrands(ctx)
	if err != nil {
		c.log.WarnObj("catalog brands fetch failed", "catalog_brands_error", map[string]any{
			"url":   c.brandsURL,
			"error": err.Error(),
		})
		return nil
	}
	return brands
}

func (c *Client) fetchBrands(ctx context.Context) ([]Brand, error) {
	endpoint, err := parseEndpoint(c.brandsURL)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Get(ctx, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("request brands: %w", err)
	}
	if resp == nil {
		return nil, fmt.Errorf("brands endpoint returned no response")
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("brands endpoint returned status %d body: %s", resp.StatusCode(), responseSnippet(resp.Body()))
	}

	body := resp.Body()
	if len(body) == 0 {
		return nil, fmt.Errorf("brands endpoint returned an empty body")
	}

	var brands []Brand
	if err := json.Unmarshal(body, &brands); err != nil {
		return nil, fmt.Errorf("decode brands: %w", err)
	}
	return brands, nil
}

// ApplyMutation sends a create, update or delete for one vehicle and reports
// whether the remote accepted it with a 200. Failure detail is only logged.
func (c *Client) ApplyMutation(ctx context.Context, vehicle Vehicle, op Operation) bool {
	if err := c.applyMutation(ctx, vehicle, op); err != nil {
		c.log.WarnObj("catalog mutation failed", "catalog_mutation_error", map[string]any{
			"operation":  op.String(),
			"vehicle_id": vehicle.ID,
			"error":      err.Error(),
		})
		return false
	}
	c.log.DebugObj("catalog mutation applied", "catalog_mutation_result", map[string]any{
		"operation":  op.String(),
		"vehicle_id": vehicle.ID,
	})
	return true
}

// Create posts a new vehicle.
func (c *Client) Create(ctx context.Context, vehicle Vehicle) bool {
	return c.ApplyMutation(ctx, vehicle, OpCreate)
}

// Update replaces an existing vehicle.
func (c *Client) Update(ctx context.Context, vehicle Vehicle) bool {
	return c.ApplyMutation(ctx, vehicle, OpUpdate)
}

// Delete removes an existing vehicle.
func (c *Client) Delete(ctx context.Context, vehicle Vehicle) bool {
	return c.ApplyMutation(ctx, vehicle, OpDelete)
}

func (c *Client) applyMutation(ctx context.Context, vehicle Vehicle, op Operation) error {
	method := op.Method()
	if method == "" {
		return fmt.Errorf("unsupported operation %d", int(op))
	}
	if op.requiresID() && !vehicle.HasID() {
		return fmt.Errorf("%s requires a vehicle id", op)
	}

	target, err := parseEndpoint(c.baseURL + "/" + url.PathEscape(vehicle.ID))
	if err != nil {
		return err
	}

	payload, err := c.marshal(vehicle)
	if err != nil {
		return fmt.Errorf("encode vehicle: %w", err)
	}

	resp, err := c.http.Do(ctx, method, target, nil, payload)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, target, err)
	}
	if resp == nil {
		return fmt.Errorf("%s %s: no response", method, target)
	}
	if resp.StatusCode() != http.StatusOK {
		return fmt.Errorf("%s %s returned status %d body: %s", method, target, resp.StatusCode(), responseSnippet(resp.Body()))
	}
	return nil
}

// parseEndpoint accepts only absolute http(s) URLs.
func parseEndpoint(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("parse url %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("url %q must use http or https", raw)
	}
	if u.Host == "" {
		return "", fmt.Errorf("url %q has no host", raw)
	}
	return u.String(), nil
}

func responseSnippet(body []byte) string {
	const maxLen = 512
	s := strings.TrimSpace(string(body))
	if len(s) > maxLen {
		return s[:maxLen] + "..."
	}
	if s == "" {
		return "<empty>"
	}
	return s
}
