package out

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"labortimer/internal/modules/contraction/domain"
	contractionout "labortimer/internal/modules/contraction/port/out"
	"labortimer/internal/platform/markdown"
	"labortimer/internal/platform/slug"
	"labortimer/internal/platform/timefmt"
)

const exportSchemaVersion = 1

type MarkdownSetExporter struct{}

func NewMarkdownSetExporter() contractionout.SetExporter {
	return MarkdownSetExporter{}
}

type setFrontmatter struct {
	SchemaVersion int    `yaml:"schema_version"`
	ID            string `yaml:"id"`
	Name          string `yaml:"name"`
	CreatedAt     string `yaml:"created_at"`
	Contractions  int    `yaml:"contractions"`
	AvgDuration   string `yaml:"avg_duration"`
	AvgInterval   string `yaml:"avg_interval,omitempty"`
	TotalSpan     string `yaml:"total_span"`
}

// Export writes set as a markdown note named after its creation date and
// name. Re-exporting a set overwrites its previous note; a different set that
// maps to the same name gets a numeric suffix.
func (MarkdownSetExporter) Export(_ context.Context, set domain.ContractionSet, stats domain.Stats, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export directory: %w", err)
	}
	created := time.UnixMilli(set.CreatedAt).UTC()
	path, err := exportPath(dir, created.Format("2006-01-02")+"-"+slug.Make(set.Name, "set"), set.ID)
	if err != nil {
		return "", err
	}

	meta := setFrontmatter{
		SchemaVersion: exportSchemaVersion,
		ID:            set.ID,
		Name:          set.Name,
		CreatedAt:     created.Format(time.RFC3339),
		Contractions:  stats.Completed,
		AvgDuration:   timefmt.FormatDuration(int64(stats.AvgDuration)),
		TotalSpan:     timefmt.FormatDurationHoursMinutes(stats.TotalSpan),
	}
	if stats.HasInterval && stats.AvgInterval > 0 {
		meta.AvgInterval = timefmt.FormatDuration(int64(stats.AvgInterval))
	}

	rendered, err := markdown.RenderFrontmatter(meta, renderSetBody(set))
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(rendered), 0o644); err != nil {
		return "", fmt.Errorf("write set export: %w", err)
	}
	return path, nil
}

func exportPath(dir, base, setID string) (string, error) {
	for n := 1; ; n++ {
		name := base + ".md"
		if n > 1 {
			name = base + "-" + strconv.Itoa(n) + ".md"
		}
		path := filepath.Join(dir, name)
		owner, taken, err := exportOwner(path)
		if err != nil {
			return "", err
		}
		if !taken || owner == setID {
			return path, nil
		}
	}
}

// exportOwner reports whether path exists and which set id its frontmatter
// records. Files without a readable id have no owner.
func exportOwner(path string) (string, bool, error) {
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("inspect existing export: %w", err)
	}
	meta, _, err := markdown.SplitFrontmatter(string(raw))
	if err != nil {
		return "", true, nil
	}
	id, _ := meta["id"].(string)
	return id, true, nil
}

func renderSetBody(set domain.ContractionSet) string {
	rows := make([][]string, 0, len(set.Contractions))
	for i, c := range set.Contractions {
		end := "-"
		if c.EndTime != nil {
			end = timefmt.FormatTime(*c.EndTime)
		}
		interval := "-"
		if gap, ok := domain.IntervalFromPrevious(set.Contractions, i); ok {
			interval = timefmt.FormatDuration(gap)
		}
		rows = append(rows, []string{
			strconv.Itoa(len(set.Contractions) - i),
			timefmt.FormatDate(c.StartTime),
			timefmt.FormatTime(c.StartTime),
			end,
			timefmt.FormatDuration(c.Duration()),
			interval,
		})
	}
	body := "# " + set.Name + "\n\n"
	if len(rows) == 0 {
		return body + "No contractions recorded.\n"
	}
	return body + markdown.Table([]string{"#", "Date", "Start", "End", "Duration", "Interval"}, rows)
}
