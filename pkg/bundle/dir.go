package bundle

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync/atomic"
)

// DirBundle serves assets straight from a directory tree. Keys map to file
// paths under the root; dotfiles and directories are not assets.
type DirBundle struct {
	root   string
	closed atomic.Bool
}

// NewDir opens a directory bundle rooted at root.
func NewDir(root string) (*DirBundle, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve bundle root: %w", err)
	}

	fi, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("open bundle root: %w", err)
	}
	if !fi.IsDir() {
		return nil, fmt.Errorf("bundle root %q is not a directory", root)
	}

	return &DirBundle{root: abs}, nil
}

// resolve validates key and maps it to an absolute file path under the root.
func (b *DirBundle) resolve(key string) (string, string, error) {
	clean, err := cleanKey(key)
	if err != nil {
		return "", "", err
	}
	return filepath.Join(b.root, filepath.FromSlash(clean)), clean, nil
}

// Open returns a reader over the asset's file. The caller must close it.
func (b *DirBundle) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if b.closed.Load() {
		return nil, ErrBundleClosed
	}

	full, clean, err := b.resolve(key)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(full)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("asset %q: %w", clean, ErrNotFound)
		}
		return nil, fmt.Errorf("open asset %q: %w", clean, err)
	}

	fi, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("stat asset %q: %w", clean, err)
	}
	if fi.IsDir() {
		_ = f.Close()
		return nil, fmt.Errorf("asset %q: %w", clean, ErrNotFound)
	}

	return f, nil
}

// ReadAsset reads the full payload of the asset at key.
func (b *DirBundle) ReadAsset(ctx context.Context, key string) ([]byte, error) {
	rc, err := b.Open(ctx, key)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read asset %q: %w", key, err)
	}
	return data, nil
}

// Stat describes the asset at key without reading it.
func (b *DirBundle) Stat(ctx context.Context, key string) (AssetInfo, error) {
	if err := ctx.Err(); err != nil {
		return AssetInfo{}, err
	}
	if b.closed.Load() {
		return AssetInfo{}, ErrBundleClosed
	}

	full, clean, err := b.resolve(key)
	if err != nil {
		return AssetInfo{}, err
	}

	fi, err := os.Stat(full)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return AssetInfo{}, fmt.Errorf("asset %q: %w", clean, ErrNotFound)
		}
		return AssetInfo{}, fmt.Errorf("stat asset %q: %w", clean, err)
	}
	if fi.IsDir() {
		return AssetInfo{}, fmt.Errorf("asset %q: %w", clean, ErrNotFound)
	}

	return AssetInfo{Key: clean, Size: uint64(fi.Size()), ModTime: fi.ModTime()}, nil
}

// List walks the tree and returns every asset, ordered by key. Dotfiles and
// dot-directories are skipped.
func (b *DirBundle) List(ctx context.Context) ([]AssetInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if b.closed.Load() {
		return nil, ErrBundleClosed
	}

	var infos []AssetInfo
	err := filepath.WalkDir(b.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		name := d.Name()
		if strings.HasPrefix(name, ".") && p != b.root {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(b.root, p)
		if err != nil {
			return err
		}
		fi, err := d.Info()
		if err != nil {
			return err
		}

		infos = append(infos, AssetInfo{
			Key:     filepath.ToSlash(rel),
			Size:    uint64(fi.Size()),
			ModTime: fi.ModTime(),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list bundle assets: %w", err)
	}

	sort.Slice(infos, func(i, j int) bool { return infos[i].Key < infos[j].Key })
	return infos, nil
}

// Close marks the bundle closed. The underlying directory is untouched.
func (b *DirBundle) Close() error {
	b.closed.Store(true)
	return nil
}
