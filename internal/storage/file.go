package storage

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/hpungsan/ideabox/internal/errors"
)

// FallbackWarning is logged on every FileStore.Get.
const FallbackWarning = "using file fallback store; results are not from the authoritative store"

// FileStore is the fallback store: one JSON file per key under dir.
// Values are encoded on every Set and decoded on every Get.
type FileStore struct {
	dir    string
	logger *zap.Logger
}

// NewFileStore creates dir if needed and returns a store rooted there.
func NewFileStore(dir string, logger *zap.Logger) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create fallback directory: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FileStore{dir: dir, logger: logger}, nil
}

// Dir returns the directory holding the key files.
func (s *FileStore) Dir() string { return s.dir }

// Get implements Adapter.
func (s *FileStore) Get(ctx context.Context, keys []string) (Values, error) {
	s.logger.Warn(FallbackWarning, zap.String("dir", s.dir), zap.Strings("keys", keys))

	values := make(Values, len(keys))
	for _, key := range keys {
		if err := ctx.Err(); err != nil {
			return nil, errors.NewInternal(err)
		}
		if err := validateKey(key); err != nil {
			return nil, err
		}

		data, err := os.ReadFile(s.path(key))
		if err != nil {
			if stderrors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, errors.NewInternal(fmt.Errorf("read %q: %w", key, err))
		}
		if !json.Valid(data) {
			return nil, errors.NewInternal(fmt.Errorf("read %q: stored value is not valid JSON", key))
		}
		values[key] = json.RawMessage(data)
	}
	return values, nil
}

// Set implements Adapter. Each key is replaced atomically; a failure part way
// through leaves earlier keys written.
func (s *FileStore) Set(ctx context.Context, items map[string]any) error {
	encoded, err := encodeItems(items)
	if err != nil {
		return err
	}
	for key, data := range encoded {
		if err := ctx.Err(); err != nil {
			return errors.NewInternal(err)
		}
		if err := s.writeAtomic(s.path(key), data); err != nil {
			return errors.NewInternal(fmt.Errorf("write %q: %w", key, err))
		}
	}
	return nil
}

// Authoritative implements Adapter.
func (s *FileStore) Authoritative() bool { return false }

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// writeAtomic writes data to a temp file next to path, then renames it into place.
func (s *FileStore) writeAtomic(path string, data []byte) error {
	tempPath := path + "." + ulid.Make().String() + ".tmp"
	file, err := os.OpenFile(tempPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0600)
	if err != nil {
		return err
	}

	success := false
	defer func() {
		if file != nil {
			file.Close()
		}
		if !success {
			os.Remove(tempPath)
		}
	}()

	if _, err := file.Write(data); err != nil {
		return err
	}
	if err := file.Sync(); err != nil {
		return err
	}
	if err := file.Close(); err != nil {
		return err
	}
	file = nil

	if err := os.Rename(tempPath, path); err != nil {
		return err
	}
	success = true
	return nil
}
