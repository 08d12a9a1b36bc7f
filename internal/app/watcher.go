package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/carangas-hq/carangas-catalog/internal/config"
	"github.com/carangas-hq/carangas-catalog/internal/logger"
	"github.com/carangas-hq/carangas-catalog/internal/storage"
	"github.com/carangas-hq/carangas-catalog/internal/watcher"
	"github.com/carangas-hq/carangas-catalog/pkg/catalog"
	"github.com/carangas-hq/carangas-catalog/pkg/httpclient"
	"github.com/carangas-hq/carangas-catalog/pkg/publishers"
)

// Watcher is the catalog watch runtime. It owns the poll loop, the publisher
// fanout and the fingerprint store, and releases them when the loop ends.
type Watcher struct {
	cfg      *config.Config
	fanout   *publishers.Fanout
	service  *watcher.Service
	interval time.Duration
	log      logger.Logger
	store    storage.Store
}

// NewCatalogClient builds the catalog client over the process-wide transport policy.
func NewCatalogClient(cfg *config.Config, log logger.Logger) *catalog.Client {
	transport := httpclient.DefaultTransportConfig()
	transport.Timeout = cfg.HTTPTimeout
	transport.MaxConnsPerHost = cfg.HTTPMaxConnsPerHost
	if logger.S != nil {
		transport.Logger = logger.S
	}

	return catalog.NewClient(httpclient.NewRestyClient(transport), catalog.Options{
		BaseURL:   cfg.CatalogBaseURL,
		BrandsURL: cfg.BrandsURL,
		Logger:    log,
	})
}

// NewWatcher builds a watcher runtime from config files.
func NewWatcher(ctx context.Context, cfg *config.Config, log logger.Logger) (*Watcher, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if log == nil {
		log = &logger.NopLogger{}
	}
	if ctx == nil {
		ctx = context.Background()
	}

	fanout, err := buildFanout(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	store, err := storage.NewStore(cfg.StorageType, cfg.BBoltPath, storage.Options{
		FingerprintTTL:  cfg.StorageTTL,
		CleanupInterval: cfg.StorageCleanupInterval,
	})
	if err != nil {
		return nil, errors.Join(fmt.Errorf("init storage: %w", err), fanout.Close())
	}
	log.InfoObj("storage initialized", "storage_config", map[string]any{
		"type":                     cfg.StorageType,
		"path":                     cfg.BBoltPath,
		"fingerprint_ttl_seconds":  int(cfg.StorageTTL.Seconds()),
		"cleanup_interval_seconds": int(cfg.StorageCleanupInterval.Seconds()),
	})

	client := NewCatalogClient(cfg, log)
	service := watcher.NewService(client, fanout, log, store, watcher.Options{
		ResolveBrands: cfg.ResolveBrands,
	})

	return &Watcher{
		cfg:      cfg,
		fanout:   fanout,
		service:  service,
		interval: cfg.WatchInterval,
		log:      log,
		store:    store,
	}, nil
}

// buildFanout loads the publishers registry. When no publishers file is configured,
// or the configured file does not exist, the watcher only records fingerprints.
func buildFanout(ctx context.Context, cfg *config.Config, log logger.Logger) (*publishers.Fanout, error) {
	if cfg.PublishersFile == "" {
		log.WarnObj("no publishers file configured; events will not be delivered", "publishers_file", "")
		return publishers.NewFanout(nil), nil
	}

	publisherReg, err := publishers.LoadRegistry(cfg.PublishersFile)
	if errors.Is(err, os.ErrNotExist) {
		log.WarnObj("publishers file not found; events will not be delivered", "publishers_file", cfg.PublishersFile)
		return publishers.NewFanout(nil), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load publishers registry: %w", err)
	}

	enabledPublishers := publisherReg.Enabled()
	if len(enabledPublishers) == 0 {
		return nil, fmt.Errorf("no publishers configured")
	}

	pubClients, err := publishers.BuildAll(ctx, publishers.DefaultRegistry(), enabledPublishers, log)
	if err != nil {
		return nil, fmt.Errorf("build publishers: %w", err)
	}

	summaries := make([]map[string]string, 0, len(enabledPublishers))
	for _, pubCfg := range enabledPublishers {
		summaries = append(summaries, map[string]string{
			"id":   pubCfg.ID,
			"type": pubCfg.Type,
		})
	}
	log.InfoObj("publishers registry loaded", "publishers_meta", map[string]any{
		"count":      len(summaries),
		"publishers": summaries,
	})
	return publishers.NewFanout(pubClients), nil
}

// Run starts the watch loop until the context is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	if w == nil || w.service == nil {
		return fmt.Errorf("watcher is not initialized")
	}
	defer w.close()

	w.log.InfoObj("watch loop starting", "watcher_state", map[string]any{
		"catalog_url":      w.cfg.CatalogBaseURL,
		"publishers_count": w.fanout.Size(),
		"watch_interval":   w.interval.String(),
		"resolve_brands":   w.cfg.ResolveBrands,
	})

	if err := w.runOnce(ctx); err != nil {
		w.log.ErrorObj("initial watch pass failed", "error", err)
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.InfoObj("watch loop exiting", "reason", ctx.Err())
			return nil
		case <-ticker.C:
			if err := w.runOnce(ctx); err != nil {
				w.log.ErrorObj("scheduled watch pass failed", "error", err)
			}
		}
	}
}

// runOnce performs a single watch pass.
func (w *Watcher) runOnce(ctx context.Context) error {
	start := time.Now()
	summary, err := w.service.Run(ctx)
	w.log.InfoObj("watch pass finished", "watch_meta", map[string]any{
		"fetched":    summary.Fetched,
		"fresh":      summary.Fresh,
		"published":  summary.Published,
		"elapsed_ms": time.Since(start).Milliseconds(),
	})
	return err
}

// close releases the store and the publishers, logging any errors encountered.
func (w *Watcher) close() {
	if w.store != nil {
		if err := w.store.Close(); err != nil {
			w.log.ErrorObj("storage close failed", "error", err)
		}
	}
	if err := w.fanout.Close(); err != nil {
		w.log.ErrorObj("publishers close failed", "error", err)
	}
}
