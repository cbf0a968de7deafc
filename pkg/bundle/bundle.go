// Package bundle provides read-only access to asset bundles.
//
// A bundle is a collection of assets addressed by slash-separated keys
// relative to the bundle root. Two formats are supported:
//
//   - dir: a plain directory tree, used during development
//   - badger: a packed BadgerDB artifact built with Pack, used for
//     distribution
//
// Format selection is automatic by default (see Detect). All
// implementations are read-only by contract; writing happens only through
// Pack.
package bundle

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

var (
	// ErrNotFound is returned when a bundle has no asset for the requested key.
	ErrNotFound = errors.New("asset not found")

	// ErrBundleClosed is returned when operations are attempted on a closed bundle.
	ErrBundleClosed = errors.New("bundle is closed")

	// ErrInvalidKey is returned for keys that are empty or escape the bundle root.
	ErrInvalidKey = errors.New("invalid asset key")
)

// AssetInfo describes a single asset in a bundle.
type AssetInfo struct {
	// Key is the canonical bundle-relative slash path of the asset.
	Key string

	// Size is the payload size in bytes.
	Size uint64

	// ModTime is the asset's last modification time.
	ModTime time.Time
}

// Bundle is a read-only collection of assets.
//
// Implementations are safe for concurrent use.
type Bundle interface {
	// Open returns a reader for the asset at key. The caller owns the
	// returned reader and must close it.
	Open(ctx context.Context, key string) (io.ReadCloser, error)

	// ReadAsset reads the full payload of the asset at key.
	ReadAsset(ctx context.Context, key string) ([]byte, error)

	// Stat describes the asset at key without reading its payload.
	Stat(ctx context.Context, key string) (AssetInfo, error)

	// List enumerates every asset in the bundle, ordered by key.
	List(ctx context.Context) ([]AssetInfo, error)

	// Close releases bundle resources. Operations after Close fail with
	// ErrBundleClosed.
	Close() error
}

// Format identifies a bundle on-disk layout.
type Format string

const (
	// FormatAuto selects the format by inspecting the path (see Detect).
	FormatAuto Format = "auto"

	// FormatDir is a plain directory tree.
	FormatDir Format = "dir"

	// FormatBadger is a packed BadgerDB artifact.
	FormatBadger Format = "badger"
)

// ParseFormat converts a config string into a Format.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case FormatAuto, Format(""):
		return FormatAuto, nil
	case FormatDir:
		return FormatDir, nil
	case FormatBadger:
		return FormatBadger, nil
	default:
		return "", fmt.Errorf("unknown bundle format %q", s)
	}
}

// Open opens the bundle at path. FormatAuto resolves the concrete format
// with Detect first.
func Open(path string, format Format) (Bundle, error) {
	if format == FormatAuto || format == "" {
		detected, err := Detect(path)
		if err != nil {
			return nil, err
		}
		format = detected
	}

	switch format {
	case FormatDir:
		return NewDir(path)
	case FormatBadger:
		return OpenBadger(path)
	default:
		return nil, fmt.Errorf("unknown bundle format %q", format)
	}
}

// Detect inspects path and returns the bundle format stored there.
//
// A directory containing a BadgerDB MANIFEST is a packed bundle; any other
// directory is a plain dir bundle.
func Detect(path string) (Format, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("detect bundle format: %w", err)
	}
	if !fi.IsDir() {
		return "", fmt.Errorf("detect bundle format: %q is not a directory", path)
	}

	if _, err := os.Stat(filepath.Join(path, "MANIFEST")); err == nil {
		return FormatBadger, nil
	}
	return FormatDir, nil
}

// cleanKey canonicalizes an asset key and rejects keys that are empty,
// absolute, or escape the bundle root.
func cleanKey(key string) (string, error) {
	if key == "" {
		return "", fmt.Errorf("empty key: %w", ErrInvalidKey)
	}
	if strings.ContainsRune(key, '\\') {
		return "", fmt.Errorf("key %q contains a backslash: %w", key, ErrInvalidKey)
	}

	clean := path.Clean(key)
	if path.IsAbs(clean) || clean == "." || clean == ".." || strings.HasPrefix(clean, "../") {
		return "", fmt.Errorf("key %q escapes the bundle root: %w", key, ErrInvalidKey)
	}
	return clean, nil
}
