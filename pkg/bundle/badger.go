package bundle

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync/atomic"
	"time"

	badger "github.com/dgraph-io/badger/v4"
)

// Key namespaces inside a packed bundle. Asset payloads and index records
// live under separate prefixes so listings never load payload values.
const (
	assetKeyPrefix = "a:"
	infoKeyPrefix  = "i:"
	packMetaKey    = "m:pack"
)

func keyAsset(key string) []byte { return []byte(assetKeyPrefix + key) }
func keyInfo(key string) []byte  { return []byte(infoKeyPrefix + key) }

// assetRecord is the stored index entry for one packed asset.
type assetRecord struct {
	Key     string    `json:"key"`
	Size    uint64    `json:"size"`
	ModTime time.Time `json:"mod_time"`
	SHA256  string    `json:"sha256"`
}

// PackInfo describes a packed bundle as a whole.
type PackInfo struct {
	// CreatedAt is when the bundle was packed.
	CreatedAt time.Time `json:"created_at"`

	// Source is the directory the bundle was packed from.
	Source string `json:"source"`

	// AssetCount is the number of assets in the bundle.
	AssetCount int `json:"asset_count"`

	// TotalBytes is the sum of all asset payload sizes.
	TotalBytes uint64 `json:"total_bytes"`
}

// BadgerBundle reads assets from a packed BadgerDB artifact built with Pack.
// The database is opened read-only, so multiple processes can share one
// bundle.
type BadgerBundle struct {
	db     *badger.DB
	closed atomic.Bool
}

// OpenBadger opens the packed bundle at path read-only.
func OpenBadger(path string) (*BadgerBundle, error) {
	opts := badger.DefaultOptions(path).
		WithReadOnly(true).
		WithLogger(nil)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open packed bundle %q: %w", path, err)
	}

	return &BadgerBundle{db: db}, nil
}

// ReadAsset reads the full payload of the asset at key.
func (b *BadgerBundle) ReadAsset(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if b.closed.Load() {
		return nil, ErrBundleClosed
	}

	clean, err := cleanKey(key)
	if err != nil {
		return nil, err
	}

	var data []byte
	err = b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(keyAsset(clean))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("asset %q: %w", clean, ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("read asset %q: %w", clean, err)
		}

		data, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Open returns a reader over the asset payload. Packed payloads are read
// into memory, so the reader never touches the database after Open returns.
func (b *BadgerBundle) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	data, err := b.ReadAsset(ctx, key)
	if err != nil {
		return nil, err
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

// Stat describes the asset at key from the bundle index.
func (b *BadgerBundle) Stat(ctx context.Context, key string) (AssetInfo, error) {
	if err := ctx.Err(); err != nil {
		return AssetInfo{}, err
	}
	if b.closed.Load() {
		return AssetInfo{}, ErrBundleClosed
	}

	clean, err := cleanKey(key)
	if err != nil {
		return AssetInfo{}, err
	}

	var rec assetRecord
	err = b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(keyInfo(clean))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("asset %q: %w", clean, ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("stat asset %q: %w", clean, err)
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &rec)
		})
	})
	if err != nil {
		return AssetInfo{}, err
	}

	return AssetInfo{Key: rec.Key, Size: rec.Size, ModTime: rec.ModTime}, nil
}

// List returns every asset in the bundle. Index keys iterate in lexical
// order, so the result is already ordered by key.
func (b *BadgerBundle) List(ctx context.Context) ([]AssetInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if b.closed.Load() {
		return nil, ErrBundleClosed
	}

	var infos []AssetInfo
	err := b.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(infoKeyPrefix)

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}

			err := it.Item().Value(func(val []byte) error {
				var rec assetRecord
				if err := json.Unmarshal(val, &rec); err != nil {
					return err
				}
				infos = append(infos, AssetInfo{Key: rec.Key, Size: rec.Size, ModTime: rec.ModTime})
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list bundle assets: %w", err)
	}
	return infos, nil
}

// Info returns the pack metadata written by Pack.
func (b *BadgerBundle) Info(ctx context.Context) (PackInfo, error) {
	if err := ctx.Err(); err != nil {
		return PackInfo{}, err
	}
	if b.closed.Load() {
		return PackInfo{}, ErrBundleClosed
	}

	var info PackInfo
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(packMetaKey))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("bundle has no pack metadata: %w", ErrNotFound)
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &info)
		})
	})
	if err != nil {
		return PackInfo{}, err
	}
	return info, nil
}

// Close closes the underlying database.
func (b *BadgerBundle) Close() error {
	if b.closed.Swap(true) {
		return nil
	}
	return b.db.Close()
}
