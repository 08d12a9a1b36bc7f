package watcher

import (
	"context"

	"github.com/carangas-hq/carangas-catalog/internal/domain"
	"github.com/carangas-hq/carangas-catalog/pkg/publishers"
)

// CatalogSource is the read side of the catalog the watcher polls.
type CatalogSource interface {
	FetchVehicles(ctx context.Context) ([]domain.Vehicle, error)
	FetchBrands(ctx context.Context) []domain.Brand
	BaseURL() string
}

// EventPublisher publishes vehicle events downstream and reports how many sinks accepted them.
type EventPublisher interface {
	Publish(ctx context.Context, evt publishers.Event) (int, error)
}

// FingerprintStore remembers which vehicle snapshots were already announced.
type FingerprintStore interface {
	SeenFingerprint(fp string) (bool, error)
	MarkFingerprint(fp string) error
}
