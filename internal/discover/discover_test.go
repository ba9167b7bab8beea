package discover

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/spectree/toolaudit/internal/config"
)

func writeFile(t *testing.T, root, rel, contents string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", rel, err)
	}
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write %s: %v", rel, err)
	}
}

func TestBuildUsesDefaultLayout(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "packages/mcp/src/tools/search.ts", "")
	writeFile(t, root, "packages/mcp/src/tools/nested/deep/tree.ts", "")
	writeFile(t, root, "packages/mcp/src/tools/search.test.ts", "")
	writeFile(t, root, "packages/mcp/src/tools/nested/tree.test.ts", "")
	writeFile(t, root, "packages/mcp/src/other.ts", "")
	writeFile(t, root, "docs/mcp/tools.md", "")
	writeFile(t, root, "docs/mcp/guides/nested.md", "")
	writeFile(t, root, "docs/readme.md", "")
	if err := os.MkdirAll(filepath.Join(root, "docs/mcp/folder.md"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	pl, err := Build(root, config.Default())
	if err != nil {
		t.Fatalf("build plan: %v", err)
	}
	wantSources := []string{
		"packages/mcp/src/tools/nested/deep/tree.ts",
		"packages/mcp/src/tools/search.ts",
	}
	if !reflect.DeepEqual(pl.Sources, wantSources) {
		t.Fatalf("unexpected sources: %#v", pl.Sources)
	}
	if !reflect.DeepEqual(pl.Docs, []string{"docs/mcp/tools.md"}) {
		t.Fatalf("unexpected docs: %#v", pl.Docs)
	}
}

func TestBuildDeduplicatesOverlappingGlobs(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/b.go", "")
	writeFile(t, root, "src/a.go", "")
	writeFile(t, root, "docs/a.md", "")

	cfg := config.Default()
	cfg.Sources = []string{"./src/*.go", "src/**/*.go"}
	cfg.Exclude = nil
	cfg.Docs = []string{"docs/*.md", "docs/a.md"}

	pl, err := Build(root, cfg)
	if err != nil {
		t.Fatalf("build plan: %v", err)
	}
	if !reflect.DeepEqual(pl.Sources, []string{"src/a.go", "src/b.go"}) {
		t.Fatalf("unexpected sources: %#v", pl.Sources)
	}
	if !reflect.DeepEqual(pl.Docs, []string{"docs/a.md"}) {
		t.Fatalf("unexpected docs: %#v", pl.Docs)
	}
}

func TestBuildEmptyTree(t *testing.T) {
	pl, err := Build(t.TempDir(), config.Default())
	if err != nil {
		t.Fatalf("build plan: %v", err)
	}
	if len(pl.Sources) != 0 || len(pl.Docs) != 0 {
		t.Fatalf("expected empty plan, got %#v", pl)
	}
}

func TestBuildRejectsBadGlob(t *testing.T) {
	cfg := config.Default()
	cfg.Sources = []string{"src/[.ts"}
	if _, err := Build(t.TempDir(), cfg); err == nil {
		t.Fatalf("expected glob error")
	}
}

func TestReadLabelsFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "docs/a.md", "alpha")
	writeFile(t, root, "docs/b.md", "beta")

	files, err := Read(root, []string{"docs/a.md", "docs/b.md"})
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(files) != 2 || files[0].Label != "docs/a.md" || files[1].Text != "beta" {
		t.Fatalf("unexpected files: %#v", files)
	}
}

func TestReadReportsMissingFile(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "docs/a.md", "alpha")

	_, err := Read(root, []string{"docs/a.md", "docs/gone.md"})
	var readErr ReadError
	if !errors.As(err, &readErr) {
		t.Fatalf("expected ReadError, got %v", err)
	}
	if readErr.Path != "docs/gone.md" {
		t.Fatalf("expected failing path, got %q", readErr.Path)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected wrapped not-exist error, got %v", err)
	}
}
