package httpclient

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// RestyClient adapts resty.Client to the httpclient.Client interface.
type RestyClient struct {
	client *resty.Client
	cfg    TransportConfig
}

// NewRestyClient creates a new RestyClient bound to the given transport policy.
func NewRestyClient(cfg TransportConfig) *RestyClient {
	cfg = cfg.normalized()
	return &RestyClient{client: newRestyBaseClient(cfg), cfg: cfg}
}

// NewRestyHTTPClient exposes a configured resty.Client for callers needing custom verbs.
func NewRestyHTTPClient(cfg TransportConfig) *resty.Client {
	return newRestyBaseClient(cfg.normalized())
}

// Config returns the policy the client was built with.
func (r *RestyClient) Config() TransportConfig { return r.cfg }

// newRestyBaseClient creates a new resty.Client honouring the transport policy.
func newRestyBaseClient(cfg TransportConfig) *resty.Client {
	c := resty.New()
	c.SetTimeout(cfg.Timeout)
	c.SetTransport(newTransport(cfg))
	c.SetHeaders(cfg.Headers())
	if cfg.Logger != nil {
		c.SetLogger(cfg.Logger)
	}
	return c
}

func newTransport(cfg TransportConfig) *http.Transport {
	dialer := &net.Dialer{
		Timeout:   cfg.Timeout,
		KeepAlive: 30 * time.Second,
	}
	return &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           dialer.DialContext,
		ForceAttemptHTTP2:     true,
		MaxConnsPerHost:       cfg.MaxConnsPerHost,
		MaxIdleConnsPerHost:   cfg.MaxConnsPerHost,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: time.Second,
	}
}

// Get performs an HTTP GET request with the specified context, URL, and headers.
func (r *RestyClient) Get(ctx context.Context, url string, headers map[string]string) (Response, error) {
	return r.Do(ctx, http.MethodGet, url, headers, nil)
}

// Do performs a request with an arbitrary verb and an optional raw body.
func (r *RestyClient) Do(ctx context.Context, method, url string, headers map[string]string, body []byte) (Response, error) {
	req := r.client.R().SetContext(ctx)
	if len(headers) > 0 {
		req.SetHeaders(headers)
	}
	if body != nil {
		req.SetBody(body)
	}
	resp, err := req.Execute(method, url)
	if err != nil {
		return nil, err
	}
	if resp == nil || resp.RawResponse == nil {
		return nil, nil
	}
	return &restyResponseAdapter{resp: resp}, nil
}

// restyResponseAdapter adapts resty.Response to the httpclient.Response interface.
type restyResponseAdapter struct {
	resp *resty.Response
}

func (r *restyResponseAdapter) Body() []byte    { return r.resp.Body() }
func (r *restyResponseAdapter) StatusCode() int { return r.resp.StatusCode() }
