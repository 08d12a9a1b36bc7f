package catalog

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestFetchErrorMessages(t *testing.T) {
	tests := []struct {
		err  *FetchError
		want string
	}{
		{&FetchError{Kind: KindUnexpectedStatus, URL: "u", StatusCode: 503}, "unexpected status 503"},
		{&FetchError{Kind: KindNoResponse, URL: "u"}, "no response"},
		{&FetchError{Kind: KindNoData, URL: "u"}, "empty response body"},
		{&FetchError{Kind: KindTransportFailure, URL: "u", Err: errors.New("refused")}, "transport_failure: refused"},
		{&FetchError{Kind: KindDecodeFailure, URL: "u"}, "decode_failure"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); !strings.Contains(got, tt.want) {
			t.Errorf("Error() = %q, want substring %q", got, tt.want)
		}
	}
}

func TestKindOfThroughWrapping(t *testing.T) {
	err := fmt.Errorf("watch cycle: %w", &FetchError{Kind: KindNoData})
	if KindOf(err) != KindNoData {
		t.Fatalf("KindOf = %s", KindOf(err))
	}
	if KindOf(errors.New("plain")) != 0 {
		t.Fatalf("KindOf(plain) should be 0")
	}
	if !errors.Is(err, ErrNoData) || errors.Is(err, ErrNoResponse) {
		t.Fatalf("sentinel matching is wrong")
	}
}

func TestStatusSentinelWithCode(t *testing.T) {
	err := &FetchError{Kind: KindUnexpectedStatus, StatusCode: 404}
	if errors.Is(err, &FetchError{Kind: KindUnexpectedStatus, StatusCode: 500}) {
		t.Fatalf("different status codes should not match")
	}
}
