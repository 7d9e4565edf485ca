package storage

import (
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/hpungsan/ideabox/internal/config"
	"github.com/hpungsan/ideabox/internal/db"
	"github.com/hpungsan/ideabox/internal/errors"
)

// FallbackDir is the fallback store directory inside the base directory.
const FallbackDir = "fallback"

// Open selects a backend for cfg.Storage and returns it with a close func.
//
// In "auto" mode the SQLite host store is tried first; if the database cannot
// be opened the file fallback under baseDir/fallback is used instead.
func Open(cfg *config.Config, baseDir string, logger *zap.Logger) (Adapter, func() error, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	mode := config.StorageAuto
	if cfg != nil && cfg.Storage != "" {
		mode = cfg.Storage
	}

	switch mode {
	case config.StorageFile:
		return openFile(baseDir, logger)

	case config.StorageSQLite:
		store, err := openSQLite(cfg, baseDir)
		if err != nil {
			return nil, nil, errors.NewStoreUnavailable(err)
		}
		return store, store.Close, nil

	case config.StorageAuto:
		store, err := openSQLite(cfg, baseDir)
		if err == nil {
			return store, store.Close, nil
		}
		logger.Warn("host store unavailable, falling back to file store",
			zap.String("base_dir", baseDir), zap.Error(err))
		return openFile(baseDir, logger)

	default:
		return nil, nil, errors.NewInvalidRequest(fmt.Sprintf("unknown storage mode %q", mode))
	}
}

func openSQLite(cfg *config.Config, baseDir string) (*SQLiteStore, error) {
	database, err := db.Init(baseDir)
	if err != nil {
		return nil, err
	}
	db.ConfigurePool(database, cfg)
	return NewSQLiteStore(database), nil
}

func openFile(baseDir string, logger *zap.Logger) (Adapter, func() error, error) {
	store, err := NewFileStore(filepath.Join(baseDir, FallbackDir), logger)
	if err != nil {
		return nil, nil, errors.NewStoreUnavailable(err)
	}
	return store, func() error { return nil }, nil
}
