package storage

import (
	"fmt"
	"strings"
	"time"
)

// Package storage keeps the fingerprints of vehicle snapshots the watcher has
// already announced. Catalog records themselves are never persisted.

// Store tracks announced vehicle fingerprints.
type Store interface {
	Close() error
	SeenFingerprint(fp string) (bool, error)
	MarkFingerprint(fp string) error
}

// Options controls retention characteristics for concrete store implementations.
type Options struct {
	FingerprintTTL  time.Duration
	CleanupInterval time.Duration
}

const (
	defaultFingerprintTTL  = 7 * 24 * time.Hour
	defaultCleanupInterval = 12 * time.Hour
)

// NewStore creates the configured storage backend.
func NewStore(typ, path string, opts Options) (Store, error) {
	typ = strings.TrimSpace(strings.ToLower(typ))
	opts = normalizeOptions(opts)

	switch typ {
	case "", "none", "disabled":
		return noopStore{}, nil
	case "bbolt":
		if strings.TrimSpace(path) == "" {
			return nil, fmt.Errorf("bbolt storage requires a path")
		}
		store, err := openBolt(path, opts)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unsupported storage type %q", typ)
	}
}

func normalizeOptions(opts Options) Options {
	if opts.FingerprintTTL <= 0 {
		opts.FingerprintTTL = defaultFingerprintTTL
	}
	if opts.CleanupInterval <= 0 {
		opts.CleanupInterval = defaultCleanupInterval
	}
	return opts
}

type noopStore struct{}

func (noopStore) Close() error                         { return nil }
func (noopStore) SeenFingerprint(string) (bool, error) { return false, nil }
func (noopStore) MarkFingerprint(string) error         { return nil }
