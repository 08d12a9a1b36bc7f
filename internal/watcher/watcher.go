package watcher

import (
	"context"
	"errors"
	"fmt"

	"github.com/carangas-hq/carangas-catalog/internal/domain"
	"github.com/carangas-hq/carangas-catalog/internal/logger"
	"github.com/carangas-hq/carangas-catalog/pkg/catalog"
	"github.com/carangas-hq/carangas-catalog/pkg/publishers"
)

// Options tunes a watch pass.
type Options struct {
	// ResolveBrands checks every vehicle brand against the brand reference list.
	ResolveBrands bool
}

// Summary describes the outcome of a single pass.
type Summary struct {
	Fetched   int
	Fresh     int
	Published int
}

// Service polls the catalog and announces vehicle snapshots it has not seen before.
type Service struct {
	source    CatalogSource
	publisher EventPublisher
	store     FingerprintStore
	log       logger.Logger
	opts      Options
}

// NewService wires a watcher. A nil publisher only records fingerprints.
func NewService(src CatalogSource, pub EventPublisher, log logger.Logger, store FingerprintStore, opts Options) *Service {
	if log == nil {
		log = &logger.NopLogger{}
	}
	return &Service{
		source:    src,
		publisher: pub,
		store:     store,
		log:       log,
		opts:      opts,
	}
}

// Run executes one watch pass. Fetch failures are returned with their kind intact;
// publish failures are aggregated after every vehicle has been attempted.
func (s *Service) Run(ctx context.Context) (Summary, error) {
	var summary Summary
	if s == nil || s.source == nil {
		return summary, fmt.Errorf("watcher service is not initialized")
	}

	vehicles, err := s.source.FetchVehicles(ctx)
	if err != nil {
		s.log.ErrorObj("catalog fetch failed", "fetch_error", map[string]any{
			"source": s.source.BaseURL(),
			"kind":   catalog.KindOf(err).String(),
			"error":  err.Error(),
		})
		return summary, fmt.Errorf("fetch vehicles: %w", err)
	}
	summary.Fetched = len(vehicles)

	fresh := s.filterFresh(vehicles)
	summary.Fresh = len(fresh)
	if len(fresh) == 0 {
		s.log.InfoObj("no new vehicle snapshots", "watch_result", summary)
		return summary, nil
	}

	var brands brandIndex
	if s.opts.ResolveBrands {
		brands = s.loadBrands(ctx)
	}

	var errs []error
	for _, item := range fresh {
		if ctx.Err() != nil {
			errs = append(errs, ctx.Err())
			break
		}
		if err := s.announce(ctx, item, brands); err != nil {
			errs = append(errs, err)
			continue
		}
		summary.Published++
	}

	s.log.InfoObj("watch pass completed", "watch_result", summary)
	return summary, errors.Join(errs...)
}

type snapshot struct {
	vehicle     domain.Vehicle
	fingerprint string
}

// filterFresh drops snapshots the store already knows. Lookup failures keep the
// snapshot so that it is announced rather than lost.
func (s *Service) filterFresh(vehicles []domain.Vehicle) []snapshot {
	out := make([]snapshot, 0, len(vehicles))
	for _, v := range vehicles {
		fp := Fingerprint(v)
		if s.store != nil {
			seen, err := s.store.SeenFingerprint(fp)
			if err != nil {
				s.log.WarnObj("fingerprint lookup failed", "storage_error", map[string]any{
					"vehicle_id":  v.ID,
					"fingerprint": fp,
					"error":       err.Error(),
				})
			} else if seen {
				continue
			}
		}
		out = append(out, snapshot{vehicle: v, fingerprint: fp})
	}
	return out
}

func (s *Service) loadBrands(ctx context.Context) brandIndex {
	brands := s.source.FetchBrands(ctx)
	if len(brands) == 0 {
		s.log.WarnObj("brand reference list unavailable; skipping brand check", "brands_count", 0)
		return nil
	}
	return newBrandIndex(brands)
}

func (s *Service) announce(ctx context.Context, item snapshot, brands brandIndex) error {
	evt := publishers.NewEvent(s.source.BaseURL(), item.fingerprint, item.vehicle)
	if brands != nil {
		evt = evt.WithBrandKnown(brands.known(item.vehicle.Brand))
	}

	if s.publisher != nil {
		delivered, err := s.publisher.Publish(ctx, evt)
		if err != nil {
			s.log.WarnObj("vehicle event delivery incomplete", "publish_error", map[string]any{
				"vehicle_id": item.vehicle.ID,
				"delivered":  delivered,
				"error":      err.Error(),
			})
			if delivered == 0 {
				return fmt.Errorf("publish vehicle %q: %w", item.vehicle.ID, err)
			}
		}
	}

	if s.store != nil {
		if err := s.store.MarkFingerprint(item.fingerprint); err != nil {
			return fmt.Errorf("mark vehicle %q: %w", item.vehicle.ID, err)
		}
	}
	s.log.DebugObj("vehicle snapshot announced", "vehicle", map[string]any{
		"vehicle_id":  item.vehicle.ID,
		"fingerprint": item.fingerprint,
	})
	return nil
}
