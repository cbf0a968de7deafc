package bundle

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	badger "github.com/dgraph-io/badger/v4"

	"github.com/playforge/assetloader/internal/logger"
)

// PackResult summarizes a completed Pack.
type PackResult struct {
	// Assets is the number of assets written.
	Assets int

	// Bytes is the total payload size written.
	Bytes uint64
}

// Pack builds a packed badger bundle at dest from the assets under srcDir.
//
// Every regular file under srcDir (dotfiles excluded) becomes an asset keyed
// by its slash-relative path. Payloads are checksummed and indexed so the
// packed bundle can be listed without touching payload values. dest must be
// an empty or nonexistent directory; overwrite handling is the caller's job.
func Pack(ctx context.Context, srcDir, dest string) (PackResult, error) {
	src, err := NewDir(srcDir)
	if err != nil {
		return PackResult{}, err
	}
	defer func() { _ = src.Close() }()

	infos, err := src.List(ctx)
	if err != nil {
		return PackResult{}, err
	}
	if len(infos) == 0 {
		return PackResult{}, fmt.Errorf("no assets under %q", srcDir)
	}

	db, err := badger.Open(badger.DefaultOptions(dest).WithLogger(nil))
	if err != nil {
		return PackResult{}, fmt.Errorf("create packed bundle %q: %w", dest, err)
	}
	defer func() {
		if db != nil {
			_ = db.Close()
		}
	}()

	wb := db.NewWriteBatch()
	defer wb.Cancel()

	start := time.Now()
	var result PackResult
	for _, info := range infos {
		if err := ctx.Err(); err != nil {
			return PackResult{}, err
		}

		data, err := src.ReadAsset(ctx, info.Key)
		if err != nil {
			return PackResult{}, err
		}

		sum := sha256.Sum256(data)
		rec := assetRecord{
			Key:     info.Key,
			Size:    uint64(len(data)),
			ModTime: info.ModTime,
			SHA256:  hex.EncodeToString(sum[:]),
		}
		recBytes, err := json.Marshal(&rec)
		if err != nil {
			return PackResult{}, fmt.Errorf("encode index record for %q: %w", info.Key, err)
		}

		if err := wb.Set(keyAsset(info.Key), data); err != nil {
			return PackResult{}, fmt.Errorf("pack asset %q: %w", info.Key, err)
		}
		if err := wb.Set(keyInfo(info.Key), recBytes); err != nil {
			return PackResult{}, fmt.Errorf("index asset %q: %w", info.Key, err)
		}

		result.Assets++
		result.Bytes += rec.Size
		logger.Debug("asset packed", logger.Asset(info.Key), logger.Size(rec.Size))
	}

	meta := PackInfo{
		CreatedAt:  time.Now(),
		Source:     srcDir,
		AssetCount: result.Assets,
		TotalBytes: result.Bytes,
	}
	metaBytes, err := json.Marshal(&meta)
	if err != nil {
		return PackResult{}, fmt.Errorf("encode pack metadata: %w", err)
	}
	if err := wb.Set([]byte(packMetaKey), metaBytes); err != nil {
		return PackResult{}, fmt.Errorf("write pack metadata: %w", err)
	}

	if err := wb.Flush(); err != nil {
		return PackResult{}, fmt.Errorf("flush packed bundle: %w", err)
	}

	closeErr := db.Close()
	db = nil
	if closeErr != nil {
		return PackResult{}, fmt.Errorf("close packed bundle: %w", closeErr)
	}

	logger.Info("bundle packed",
		logger.Bundle(dest),
		logger.Count(result.Assets),
		logger.Size(result.Bytes),
		logger.DurationMs(logger.Duration(start)))
	return result, nil
}
