package storage

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	bolt "go.etcd.io/bbolt"
)

const fingerprintBucket = "vehicle_fingerprints"

var errBucketMissing = errors.New("fingerprint bucket missing")

// boltStore keeps fingerprint -> expiry (unix seconds, big endian) in one bucket.
type boltStore struct {
	db       *bolt.DB
	ttl      time.Duration
	interval time.Duration
	now      func() time.Time

	sweepMu   sync.Mutex
	lastSweep atomic.Int64
}

// openBolt opens (or creates) the BoltDB file at path.
func openBolt(path string, opts Options) (*boltStore, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage directory: %w", err)
		}
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bbolt db: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(fingerprintBucket))
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init bucket: %w", err)
	}

	s := &boltStore{
		db:       db,
		ttl:      opts.FingerprintTTL,
		interval: opts.CleanupInterval,
		now:      time.Now,
	}
	s.lastSweep.Store(s.now().Unix())
	return s, nil
}

// Close closes the BoltDB file.
func (b *boltStore) Close() error {
	if b == nil || b.db == nil {
		return nil
	}
	return b.db.Close()
}

// SeenFingerprint reports whether fp was marked and has not expired yet.
// Expired entries are dropped on read.
func (b *boltStore) SeenFingerprint(fp string) (bool, error) {
	if b == nil || b.db == nil {
		return false, nil
	}
	now := b.now()
	if err := b.sweepIfDue(now); err != nil {
		return false, err
	}

	seen := false
	err := b.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(fingerprintBucket))
		if bucket == nil {
			return errBucketMissing
		}
		key := []byte(fp)
		value := bucket.Get(key)
		if value == nil {
			return nil
		}
		if expiry, ok := decodeExpiry(value); ok && expiry.After(now) {
			seen = true
			return nil
		}
		return bucket.Delete(key)
	})
	return seen, err
}

// MarkFingerprint records fp with a fresh expiry.
func (b *boltStore) MarkFingerprint(fp string) error {
	if b == nil || b.db == nil {
		return nil
	}
	now := b.now()
	if err := b.sweepIfDue(now); err != nil {
		return err
	}

	return b.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(fingerprintBucket))
		if bucket == nil {
			return errBucketMissing
		}
		return bucket.Put([]byte(fp), encodeExpiry(now.Add(b.ttl)))
	})
}

// count returns the number of stored fingerprints, expired ones included.
func (b *boltStore) count() (int, error) {
	n := 0
	err := b.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(fingerprintBucket))
		if bucket == nil {
			return errBucketMissing
		}
		n = bucket.Stats().KeyN
		return nil
	})
	return n, err
}

// sweepIfDue deletes expired fingerprints at most once per cleanup interval.
func (b *boltStore) sweepIfDue(now time.Time) error {
	if now.Sub(time.Unix(b.lastSweep.Load(), 0)) < b.interval {
		return nil
	}

	b.sweepMu.Lock()
	defer b.sweepMu.Unlock()
	if now.Sub(time.Unix(b.lastSweep.Load(), 0)) < b.interval {
		return nil
	}

	err := b.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(fingerprintBucket))
		if bucket == nil {
			return errBucketMissing
		}
		c := bucket.Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			if expiry, ok := decodeExpiry(v); ok && expiry.After(now) {
				continue
			}
			if err := c.Delete(); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("sweep expired fingerprints: %w", err)
	}
	b.lastSweep.Store(now.Unix())
	return nil
}

func encodeExpiry(t time.Time) []byte {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, uint64(t.Unix()))
	return buf
}

func decodeExpiry(value []byte) (time.Time, bool) {
	if len(value) != 8 {
		return time.Time{}, false
	}
	unix := int64(binary.BigEndian.Uint64(value))
	if unix <= 0 {
		return time.Time{}, false
	}
	return time.Unix(unix, 0), true
}
