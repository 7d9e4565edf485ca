package ops

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/hpungsan/ideabox/internal/config"
	"github.com/hpungsan/ideabox/internal/errors"
	"github.com/hpungsan/ideabox/internal/idea"
)

// ExportDocument is a formatted export ready for delivery.
type ExportDocument struct {
	Filename   string `json:"filename"`
	Content    string `json:"content"`
	Count      int    `json:"count"`
	ExportedAt int64  `json:"exported_at"` // epoch millis
}

// ExportInput contains parameters for the WriteExport operation.
type ExportInput struct {
	Path       string // optional, default: <ExportsDir>/ideas-<millis>.txt
	ExportsDir string // default export directory, always allowed
}

// ExportOutput contains the result of the WriteExport operation.
type ExportOutput struct {
	Path       string `json:"path"`
	Count      int    `json:"count"`
	ExportedAt int64  `json:"exported_at"`
}

// Export loads the current list and formats it.
// An empty list returns NOTHING_TO_EXPORT and no document.
func (r *Repository) Export(ctx context.Context) (*ExportDocument, error) {
	list, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	now := r.now()
	content, err := idea.FormatExport(list, idea.FormatDate(now, r.dateLayout))
	if err != nil {
		return nil, err
	}

	return &ExportDocument{
		Filename:   idea.ExportFilename(now),
		Content:    content,
		Count:      len(list),
		ExportedAt: now.UnixMilli(),
	}, nil
}

// WriteExport writes the export document to disk.
// The document goes to a temp file that is renamed into place; the temp file is
// removed on any failure so nothing outlives the call.
func (r *Repository) WriteExport(ctx context.Context, cfg *config.Config, input ExportInput) (*ExportOutput, error) {
	doc, err := r.Export(ctx)
	if err != nil {
		return nil, err
	}

	exportPath := input.Path
	if exportPath == "" {
		if input.ExportsDir == "" {
			return nil, errors.NewInvalidRequest("path or exports directory is required")
		}
		exportPath = filepath.Join(input.ExportsDir, doc.Filename)
	}

	if err := ValidatePath(exportPath, input.ExportsDir, cfg); err != nil {
		return nil, err
	}

	dir := filepath.Dir(exportPath)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, errors.NewInternal(fmt.Errorf("failed to create export directory: %w", err))
	}

	tempPath := exportPath + "." + ulid.Make().String() + ".tmp"
	file, err := createExclusive(tempPath)
	if err != nil {
		return nil, errors.NewInternal(fmt.Errorf("failed to create export file: %w", err))
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

	if _, err := file.WriteString(doc.Content); err != nil {
		return nil, errors.NewInternal(err)
	}
	if err := file.Sync(); err != nil {
		return nil, errors.NewInternal(err)
	}

	// Close before atomic replace (required on Windows; fine elsewhere).
	if err := file.Close(); err != nil {
		return nil, errors.NewInternal(fmt.Errorf("failed to close export file: %w", err))
	}
	file = nil

	// Never replace a symlink the user placed at the destination
	if info, err := os.Lstat(exportPath); err == nil && info.Mode()&os.ModeSymlink != 0 {
		return nil, errors.NewInvalidRequest("export path is a symlink")
	}

	if err := os.Rename(tempPath, exportPath); err != nil {
		if runtime.GOOS == "windows" {
			if _, statErr := os.Stat(exportPath); statErr == nil {
				return nil, errors.NewInvalidRequest("export destination already exists; choose a new path or delete the existing file")
			}
		}
		return nil, errors.NewInternal(fmt.Errorf("failed to finalize export: %w", err))
	}

	success = true
	r.logger.Info("ideas exported", zap.String("path", exportPath), zap.Int("count", doc.Count))
	return &ExportOutput{
		Path:       exportPath,
		Count:      doc.Count,
		ExportedAt: doc.ExportedAt,
	}, nil
}
