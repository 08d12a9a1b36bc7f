package catalog

import (
	"errors"
	"fmt"
)

// ErrorKind classifies why a vehicle fetch produced no collection.
type ErrorKind int

const (
	KindMalformedURL ErrorKind = iota + 1
	KindTransportFailure
	KindNoResponse
	KindNoData
	KindUnexpectedStatus
	KindDecodeFailure
)

func (k ErrorKind) String() string {
	switch k {
	case KindMalformedURL:
		return "malformed_url"
	case KindTransportFailure:
		return "transport_failure"
	case KindNoResponse:
		return "no_response"
	case KindNoData:
		return "no_data"
	case KindUnexpectedStatus:
		return "unexpected_status"
	case KindDecodeFailure:
		return "decode_failure"
	default:
		return "unknown"
	}
}

// FetchError is the only error FetchVehicles returns. StatusCode is set for
// KindUnexpectedStatus; Err carries the cause for transport, URL and decode failures.
type FetchError struct {
	Kind       ErrorKind
	URL        string
	StatusCode int
	Err        error
}

// Sentinels for errors.Is checks. They match any FetchError of the same kind.
var (
	ErrMalformedURL     = &FetchError{Kind: KindMalformedURL}
	ErrTransportFailure = &FetchError{Kind: KindTransportFailure}
	ErrNoResponse       = &FetchError{Kind: KindNoResponse}
	ErrNoData           = &FetchError{Kind: KindNoData}
	ErrUnexpectedStatus = &FetchError{Kind: KindUnexpectedStatus}
	ErrDecodeFailure    = &FetchError{Kind: KindDecodeFailure}
)

func (e *FetchError) Error() string {
	switch e.Kind {
	case KindUnexpectedStatus:
		return fmt.Sprintf("catalog fetch %s: unexpected status %d", e.URL, e.StatusCode)
	case KindNoResponse:
		return fmt.Sprintf("catalog fetch %s: no response", e.URL)
	case KindNoData:
		return fmt.Sprintf("catalog fetch %s: empty response body", e.URL)
	}
	if e.Err != nil {
		return fmt.Sprintf("catalog fetch %s: %s: %v", e.URL, e.Kind, e.Err)
	}
	return fmt.Sprintf("catalog fetch %s: %s", e.URL, e.Kind)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Is reports kind equality so callers can use the package sentinels.
func (e *FetchError) Is(target error) bool {
	t, ok := target.(*FetchError)
	if !ok {
		return false
	}
	if t.StatusCode != 0 && t.StatusCode != e.StatusCode {
		return false
	}
	return t.Kind == e.Kind
}

// KindOf extracts the ErrorKind from err, or 0 when err is not a FetchError.
func KindOf(err error) ErrorKind {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return 0
}
