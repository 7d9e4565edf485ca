package ops

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hpungsan/ideabox/internal/config"
	"github.com/hpungsan/ideabox/internal/errors"
)

func TestExport_Document(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()

	_, err := repo.Add(ctx, "B")
	require.NoError(t, err)
	_, err = repo.Add(ctx, "A")
	require.NoError(t, err)

	doc, err := repo.Export(ctx)
	require.NoError(t, err)

	require.Equal(t, 2, doc.Count)
	require.True(t, strings.HasPrefix(doc.Filename, "ideas-"))
	require.True(t, strings.HasSuffix(doc.Filename, ".txt"))
	require.Contains(t, doc.Content, "\n1. A\n")
	require.Contains(t, doc.Content, "\n2. B\n")
	require.Contains(t, doc.Content, "\nTotal: 2 ideas\n")
	require.Contains(t, doc.Content, "\nExported: ")
}

func TestExport_EmptyList(t *testing.T) {
	repo, _ := setupRepo(t)

	doc, err := repo.Export(context.Background())
	require.Nil(t, doc)
	require.True(t, errors.Is(err, errors.ErrNothingToExport))
}

func TestWriteExport_DefaultPath(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()
	exportsDir := t.TempDir()

	_, err := repo.Add(ctx, "ship it")
	require.NoError(t, err)

	out, err := repo.WriteExport(ctx, config.DefaultConfig(), ExportInput{ExportsDir: exportsDir})
	require.NoError(t, err)
	require.Equal(t, 1, out.Count)
	require.Equal(t, exportsDir, filepath.Dir(out.Path))
	require.Regexp(t, `^ideas-\d+\.txt$`, filepath.Base(out.Path))

	data, err := os.ReadFile(out.Path)
	require.NoError(t, err)
	require.Contains(t, string(data), "1. ship it\n")

	info, err := os.Stat(out.Path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0600), info.Mode().Perm())

	// Temp file released
	leftovers, err := filepath.Glob(filepath.Join(exportsDir, "*.tmp"))
	require.NoError(t, err)
	require.Empty(t, leftovers)
}

func TestWriteExport_ExplicitPath(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()
	allowed := t.TempDir()

	_, err := repo.Add(ctx, "x")
	require.NoError(t, err)

	cfg := config.DefaultConfig()
	cfg.AllowedPaths = []string{allowed}

	target := filepath.Join(allowed, "mine.txt")
	out, err := repo.WriteExport(ctx, cfg, ExportInput{Path: target, ExportsDir: t.TempDir()})
	require.NoError(t, err)
	require.Equal(t, target, out.Path)
	require.FileExists(t, target)
}

func TestWriteExport_EmptyWritesNothing(t *testing.T) {
	repo, _ := setupRepo(t)
	exportsDir := t.TempDir()

	_, err := repo.WriteExport(context.Background(), config.DefaultConfig(), ExportInput{ExportsDir: exportsDir})
	require.True(t, errors.Is(err, errors.ErrNothingToExport))

	entries, err := os.ReadDir(exportsDir)
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestWriteExport_RejectsOutsideAllowedDir(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()

	_, err := repo.Add(ctx, "x")
	require.NoError(t, err)

	target := filepath.Join(t.TempDir(), "elsewhere.txt")
	_, err = repo.WriteExport(ctx, config.DefaultConfig(), ExportInput{Path: target, ExportsDir: t.TempDir()})
	require.True(t, errors.Is(err, errors.ErrInvalidRequest))
	require.NoFileExists(t, target)
}

func TestWriteExport_RequiresDestination(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()

	_, err := repo.Add(ctx, "x")
	require.NoError(t, err)

	_, err = repo.WriteExport(ctx, config.DefaultConfig(), ExportInput{})
	require.True(t, errors.Is(err, errors.ErrInvalidRequest))
}

func TestWriteExport_RefusesSymlinkDestination(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlink creation requires privileges on Windows")
	}
	repo, _ := setupRepo(t)
	ctx := context.Background()
	allowed := t.TempDir()

	_, err := repo.Add(ctx, "x")
	require.NoError(t, err)

	target := filepath.Join(t.TempDir(), "outside.txt")
	require.NoError(t, os.WriteFile(target, []byte("original"), 0600))
	link := filepath.Join(allowed, "link.txt")
	require.NoError(t, os.Symlink(target, link))

	cfg := config.DefaultConfig()
	cfg.AllowedPaths = []string{allowed}

	_, err = repo.WriteExport(ctx, cfg, ExportInput{Path: link, ExportsDir: t.TempDir()})
	require.True(t, errors.Is(err, errors.ErrInvalidRequest))

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	require.Equal(t, "original", string(data))
	info, err := os.Lstat(link)
	require.NoError(t, err)
	require.NotZero(t, info.Mode()&os.ModeSymlink)
}
