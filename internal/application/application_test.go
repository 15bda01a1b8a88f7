package application

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/a2zdsa/atlas/internal/config"
	"github.com/a2zdsa/atlas/internal/usecase"
)

func TestOpenUsesDataDir(t *testing.T) {
	dataDir := t.TempDir()
	t.Setenv("ATLAS_DIR", dataDir)

	root := t.TempDir()
	primary := filepath.Join(root, "py", "Arrays")
	if err := os.MkdirAll(primary, 0o750); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(primary, "two_sum.py"), nil, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.MkdirAll(filepath.Join(root, "cpp"), 0o750); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	settings := config.DefaultSettings()
	settings.PrimaryRoot = filepath.Join(root, "py")
	settings.SecondaryRoot = filepath.Join(root, "cpp")

	app, err := Open(settings, nil)
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	t.Cleanup(func() {
		if err := app.Close(); err != nil {
			t.Fatalf("Close error: %v", err)
		}
	})

	if _, err := app.Atlas.Rebuild(context.Background(), usecase.RebuildOptions{}); err != nil {
		t.Fatalf("Rebuild error: %v", err)
	}
	for _, name := range []string{config.IndexFileName, config.MappingFileName, config.DBFileName} {
		if _, err := os.Stat(filepath.Join(dataDir, name)); err != nil {
			t.Fatalf("expected %s in data dir: %v", name, err)
		}
	}
}

func TestOpenRejectsBadCatalog(t *testing.T) {
	t.Setenv("ATLAS_DIR", t.TempDir())

	settings := config.DefaultSettings()
	settings.CatalogPath = filepath.Join(t.TempDir(), "missing.yaml")
	if _, err := Open(settings, nil); err == nil {
		t.Fatalf("expected error for missing catalog file")
	}
}
