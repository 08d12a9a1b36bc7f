package httpclient

import (
	"maps"
	"time"
)

const (
	DefaultTimeout         = 30 * time.Second
	DefaultMaxConnsPerHost = 5
	ContentTypeJSON        = "application/json"
)

// Logger matches the printf-style surface resty writes its own diagnostics to.
// *zap.SugaredLogger satisfies it.
type Logger interface {
	Errorf(format string, v ...interface{})
	Warnf(format string, v ...interface{})
	Debugf(format string, v ...interface{})
}

// TransportConfig is the process-wide connection policy shared by every request.
// It is copied into the transport when the client is built and never changes afterwards.
type TransportConfig struct {
	Timeout         time.Duration
	MaxConnsPerHost int
	Logger          Logger
	headers         map[string]string
}

// DefaultTransportConfig returns the catalog policy: JSON content type, 30s per request
// and at most 5 concurrent connections per host.
func DefaultTransportConfig() TransportConfig {
	return TransportConfig{
		Timeout:         DefaultTimeout,
		MaxConnsPerHost: DefaultMaxConnsPerHost,
		headers:         map[string]string{"Content-Type": ContentTypeJSON},
	}
}

// WithHeader returns a copy of the config with an additional default header.
func (c TransportConfig) WithHeader(key, value string) TransportConfig {
	next := make(map[string]string, len(c.headers)+1)
	maps.Copy(next, c.headers)
	next[key] = value
	c.headers = next
	return c
}

// Headers returns a copy of the default headers.
func (c TransportConfig) Headers() map[string]string {
	return maps.Clone(c.headers)
}

func (c TransportConfig) normalized() TransportConfig {
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.MaxConnsPerHost <= 0 {
		c.MaxConnsPerHost = DefaultMaxConnsPerHost
	}
	if c.headers == nil {
		c.headers = map[string]string{"Content-Type": ContentTypeJSON}
	}
	return c
}
