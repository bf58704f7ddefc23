package out_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	contractionout "labortimer/internal/modules/contraction/adapter/out"
	"labortimer/internal/modules/contraction/domain"
	"labortimer/internal/platform/markdown"
)

func TestMarkdownSetExporterWritesFrontmatterAndTable(t *testing.T) {
	t.Parallel()
	created := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC).UnixMilli()
	set := domain.ContractionSet{
		ID:   "s1",
		Name: "Night One!",
		Contractions: []domain.Contraction{
			{ID: "b", StartTime: 120000, EndTime: end(150000)},
			{ID: "a", StartTime: 0, EndTime: end(60000)},
		},
		CreatedAt: created,
	}
	stats := domain.ComputeStats(set.Contractions)
	dir := filepath.Join(t.TempDir(), "exports")

	path, err := contractionout.NewMarkdownSetExporter().Export(context.Background(), set, stats, dir)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if filepath.Base(path) != "2026-03-01-night-one.md" {
		t.Fatalf("unexpected file name %s", path)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	meta, body, err := markdown.SplitFrontmatter(string(raw))
	if err != nil {
		t.Fatalf("split frontmatter: %v", err)
	}
	if meta["id"] != "s1" || meta["name"] != "Night One!" || meta["schema_version"] != 1 || meta["contractions"] != 2 {
		t.Fatalf("unexpected frontmatter: %#v", meta)
	}
	if meta["avg_duration"] != "0:45" || meta["avg_interval"] != "1:00" || meta["total_span"] != "0h 02min" {
		t.Fatalf("unexpected stats in frontmatter: %#v", meta)
	}
	if !strings.Contains(body, "| # | Date | Start | End | Duration | Interval |") {
		t.Fatalf("missing table header: %s", body)
	}
	if !strings.Contains(body, "| 0:30 | 1:00 |") || !strings.Contains(body, "| 1:00 | - |") {
		t.Fatalf("unexpected table rows: %s", body)
	}
}

func TestMarkdownSetExporterEmptySet(t *testing.T) {
	t.Parallel()
	set := domain.ContractionSet{ID: "s2", Name: "   ", Contractions: []domain.Contraction{}, CreatedAt: 0}
	path, err := contractionout.NewMarkdownSetExporter().Export(context.Background(), set, domain.ComputeStats(nil), t.TempDir())
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if filepath.Base(path) != "1970-01-01-set.md" {
		t.Fatalf("unexpected file name %s", path)
	}
	raw, _ := os.ReadFile(path)
	if !strings.Contains(string(raw), "No contractions recorded.") {
		t.Fatalf("expected empty marker: %s", raw)
	}
}

func TestMarkdownSetExporterNameCollisions(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	exporter := contractionout.NewMarkdownSetExporter()
	export := func(id string) string {
		t.Helper()
		set := domain.ContractionSet{ID: id, Name: "Night", Contractions: []domain.Contraction{}, CreatedAt: 0}
		path, err := exporter.Export(context.Background(), set, domain.ComputeStats(nil), dir)
		if err != nil {
			t.Fatalf("export %s: %v", id, err)
		}
		return filepath.Base(path)
	}

	if got := export("s1"); got != "1970-01-01-night.md" {
		t.Fatalf("unexpected first name %s", got)
	}
	if got := export("s2"); got != "1970-01-01-night-2.md" {
		t.Fatalf("different set should not overwrite, got %s", got)
	}
	if got := export("s1"); got != "1970-01-01-night.md" {
		t.Fatalf("re-export should reuse its note, got %s", got)
	}

	if err := os.WriteFile(filepath.Join(dir, "1970-01-01-other.md"), []byte("hand written"), 0o644); err != nil {
		t.Fatalf("seed: %v", err)
	}
	set := domain.ContractionSet{ID: "s3", Name: "Other", Contractions: []domain.Contraction{}, CreatedAt: 0}
	path, err := exporter.Export(context.Background(), set, domain.ComputeStats(nil), dir)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if filepath.Base(path) != "1970-01-01-other-2.md" {
		t.Fatalf("foreign file must be kept, got %s", path)
	}
}
