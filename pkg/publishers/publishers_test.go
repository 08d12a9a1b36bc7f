package publishers

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	return path
}

func TestLoadRegistryEnabledFilter(t *testing.T) {
	path := writeFile(t, "publishers.yaml", `
publishers:
  - id: hook
    type: http
    enabled: false
    http:
      url: https://example.com/hook
  - id: queue
    type: SQS
    sqs:
      uri: https://sqs.sa-east-1.amazonaws.com/123/vehicles
      region: sa-east-1
  - id: topic
    type: gcp_pubsub
    gcp_pubsub:
      project_id: carangas
      topic: vehicles
`)

	reg, err := LoadRegistry(path)
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}
	enabled := reg.Enabled()
	if len(enabled) != 2 || enabled[0].ID != "queue" || enabled[1].ID != "topic" {
		t.Fatalf("unexpected enabled publishers %#v", enabled)
	}
	if enabled[0].Type != TypeSQS {
		t.Fatalf("type should be lower-cased, got %q", enabled[0].Type)
	}

	hook, ok := reg.ByID(" hook ")
	if !ok || hook.HTTP.Method != httpDefaultMethod || hook.HTTP.TimeoutSeconds != httpDefaultTimeoutSeconds {
		t.Fatalf("http defaults not applied: %#v", hook.HTTP)
	}
	if len(reg.All()) != 3 {
		t.Fatalf("All() = %d entries", len(reg.All()))
	}
}

func TestLoadRegistryJSONWithoutExtension(t *testing.T) {
	path := writeFile(t, "publishers", `{"publishers":[{"id":"arn","type":"sns","sns":{"topic_arn":"arn:aws:sns:us-east-1:1:t","region":"us-east-1"}}]}`)

	reg, err := LoadRegistry(path)
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}
	cfg, ok := reg.ByID("arn")
	if !ok || cfg.SNS == nil || cfg.SNS.TopicARN != "arn:aws:sns:us-east-1:1:t" {
		t.Fatalf("unexpected sns config %#v", cfg)
	}
}

func TestLoadRegistryErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		want    string
	}{
		{"empty list", "p.yaml", "publishers: []", "no publishers"},
		{"duplicate id", "p.yaml", "publishers:\n  - {id: a, type: http, http: {url: x}}\n  - {id: a, type: http, http: {url: y}}", "duplicate"},
		{"bad yaml", "p.yaml", "publishers: [", "decode yaml"},
		{"unknown type", "p.yaml", "publishers:\n  - {id: a, type: kafka}", "unsupported type"},
		{"missing topic", "p.json", `{"publishers":[{"id":"g","type":"gcp_pubsub","gcp_pubsub":{"project_id":"p"}}]}`, "gcp_pubsub.topic"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadRegistry(writeFile(t, tt.file, tt.content))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}

	if _, err := LoadRegistry("  "); err == nil {
		t.Fatalf("expected error for empty path")
	}
}

func TestValidatePublisherConfigRequiresTypeBlock(t *testing.T) {
	tests := []PublisherConfig{
		{ID: "h", Type: TypeHTTP},
		{ID: "q", Type: TypeSQS, SQS: &SQSPublisherConfig{QueueURL: "u"}},
		{ID: "s", Type: TypeSNS, SNS: &SNSPublisherConfig{Region: "r"}},
		{ID: "g", Type: TypePubSub},
		{Type: TypeHTTP},
		{ID: "x"},
	}
	for _, cfg := range tests {
		if err := validatePublisherConfig(cfg); err == nil {
			t.Errorf("expected validation error for %#v", cfg)
		}
	}
}

func TestBuildAllWithDefaultRegistry(t *testing.T) {
	reg := DefaultRegistry()
	pubs, err := BuildAll(context.Background(), reg, []PublisherConfig{
		{ID: "http", Type: TypeHTTP, HTTP: &HTTPPublisherConfig{URL: "https://example.com", Method: "POST", TimeoutSeconds: 1}},
	}, nil)
	if err != nil {
		t.Fatalf("BuildAll: %v", err)
	}
	if len(pubs) != 1 || pubs[0].Type() != TypeHTTP {
		t.Fatalf("unexpected publishers %#v", pubs)
	}
}

func TestBuildAllClosesPartialResultsOnError(t *testing.T) {
	built := &stubPublisher{id: "first", typ: "stub"}
	reg := NewRegistry(map[string]Builder{
		"stub": func(context.Context, PublisherConfig, Logger) (Publisher, error) { return built, nil },
	})

	_, err := BuildAll(context.Background(), reg, []PublisherConfig{
		{ID: "first", Type: "stub"},
		{ID: "second", Type: "missing"},
	}, nil)
	if err == nil {
		t.Fatalf("expected error for unregistered type")
	}
	if !built.closed {
		t.Fatalf("expected already built publisher to be closed")
	}
}
