package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"labortimer/internal/bootstrap"
	contractiondto "labortimer/internal/modules/contraction/dto"
	"labortimer/internal/platform/config"
	apperrors "labortimer/internal/platform/errors"
	"labortimer/internal/platform/timefmt"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var dataDir string

	root := &cobra.Command{
		Use:           "labortimer",
		Short:         "Contraction timer",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&dataDir, "data", config.DefaultDataDir(), "data directory")

	root.AddCommand(newTUICmd(&dataDir))
	root.AddCommand(newStartCmd(&dataDir))
	root.AddCommand(newEndCmd(&dataDir))
	root.AddCommand(newToggleCmd(&dataDir))
	root.AddCommand(newStatusCmd(&dataDir))
	root.AddCommand(newHistoryCmd(&dataDir))
	root.AddCommand(newStatsCmd(&dataDir))
	root.AddCommand(newClearCmd(&dataDir))
	root.AddCommand(newSetCmd(&dataDir))
	root.AddCommand(newThemeCmd(&dataDir))
	root.AddCommand(newMCPCmd(&dataDir))
	return root
}

// loadApp opens the store and hydrates the timer. A saved-set failure is
// reported as a warning; commands that need sets fail on their own.
func loadApp(cmd *cobra.Command, dataDir string, mode bootstrap.Mode) (*bootstrap.App, error) {
	cfg, err := config.New(dataDir)
	if err != nil {
		return nil, err
	}
	app, err := bootstrap.New(cfg, mode, cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}
	if err := app.Load(cmd.Context()); err != nil {
		if !errors.Is(err, apperrors.ErrSetStorage) {
			_ = app.Close()
			return nil, err
		}
		if mode == bootstrap.ModeCLI {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "warning: failed to load saved sets: %v\n", err)
		}
	}
	return app, nil
}

// withApp runs fn against a loaded app and closes it afterwards.
func withApp(dataDir *string, fn func(cmd *cobra.Command, args []string, app *bootstrap.App) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		app, err := loadApp(cmd, *dataDir, bootstrap.ModeCLI)
		if err != nil {
			return err
		}
		defer app.Close()
		return fn(cmd, args, app)
	}
}

func newTUICmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the terminal timer",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			cmd.SetContext(ctx)
			app, err := loadApp(cmd, *dataDir, bootstrap.ModeTUI)
			if err != nil {
				return err
			}
			defer app.Close()
			return bootstrap.RunTUI(ctx, app)
		},
	}
}

func newStartCmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start timing a contraction",
		Args:  cobra.NoArgs,
		RunE: withApp(dataDir, func(cmd *cobra.Command, _ []string, app *bootstrap.App) error {
			out, err := app.ContractionCLI.Start(cmd.Context())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "started contraction #%d at %s\n", out.Index, timefmt.FormatTime(out.StartedAt))
			return nil
		}),
	}
}

func newEndCmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "end",
		Short: "End the contraction in progress",
		Args:  cobra.NoArgs,
		RunE: withApp(dataDir, func(cmd *cobra.Command, _ []string, app *bootstrap.App) error {
			out, err := app.ContractionCLI.End(cmd.Context())
			if err != nil {
				return err
			}
			printEnded(cmd.OutOrStdout(), out)
			return nil
		}),
	}
}

func newToggleCmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle",
		Short: "Start a contraction, or end the one in progress",
		Args:  cobra.NoArgs,
		RunE: withApp(dataDir, func(cmd *cobra.Command, _ []string, app *bootstrap.App) error {
			out, err := app.ContractionCLI.Toggle(cmd.Context())
			if err != nil {
				return err
			}
			if out.Started {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "started contraction #%d at %s\n", out.Contraction.Index, timefmt.FormatTime(out.Contraction.StartedAt))
				return nil
			}
			printEnded(cmd.OutOrStdout(), out.Contraction)
			return nil
		}),
	}
}

func printEnded(w io.Writer, out contractiondto.ContractionOutput) {
	line := fmt.Sprintf("ended contraction #%d duration=%s", out.Index, timefmt.FormatDuration(out.DurationMS))
	if out.HasInterval {
		line += " interval=" + timefmt.FormatDuration(out.IntervalMS)
	}
	_, _ = fmt.Fprintln(w, line)
}

func newStatusCmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the contraction in progress",
		Args:  cobra.NoArgs,
		RunE: withApp(dataDir, func(cmd *cobra.Command, _ []string, app *bootstrap.App) error {
			status, err := app.ContractionCLI.Status(cmd.Context())
			if err != nil {
				return err
			}
			if !status.Active {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "idle completed=%d\n", status.Completed)
				return nil
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "in progress since %s elapsed=%s completed=%d\n",
				timefmt.FormatTime(status.StartedAt), timefmt.FormatDuration(status.ElapsedMS), status.Completed)
			return nil
		}),
	}
}

func newHistoryCmd(dataDir *string) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded contractions, most recent first",
		Args:  cobra.NoArgs,
		RunE: withApp(dataDir, func(cmd *cobra.Command, _ []string, app *bootstrap.App) error {
			history, err := app.ContractionCLI.History(cmd.Context())
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), history)
			}
			if len(history) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no contractions recorded yet")
				return nil
			}
			for _, c := range history {
				interval := "-"
				if c.HasInterval {
					interval = timefmt.FormatDuration(c.IntervalMS)
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "#%d %s %s duration=%s interval=%s\n",
					c.Index, timefmt.FormatDate(c.StartedAt), timefmt.FormatTime(c.StartedAt),
					timefmt.FormatDuration(c.DurationMS), interval)
			}
			return nil
		}),
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func newStatsCmd(dataDir *string) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show averages and the 5-1-1 indicators",
		Args:  cobra.NoArgs,
		RunE: withApp(dataDir, func(cmd *cobra.Command, _ []string, app *bootstrap.App) error {
			stats, err := app.ContractionCLI.Stats(cmd.Context())
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), stats)
			}
			if stats.Completed == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no completed contractions")
				return nil
			}
			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(w, "contractions=%d\n", stats.Completed)
			_, _ = fmt.Fprintf(w, "avg_duration=%s %s\n", stats.AvgDuration, mark(stats.DurationMet))
			if stats.HasInterval {
				_, _ = fmt.Fprintf(w, "avg_interval=%s %s\n", stats.AvgInterval, mark(stats.IntervalMet))
			}
			_, _ = fmt.Fprintf(w, "total_span=%s %s\n", stats.TotalSpan, mark(stats.SpanMet))
			return nil
		}),
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func mark(met bool) string {
	if met {
		return "[5-1-1 met]"
	}
	return ""
}

func newClearCmd(dataDir *string) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete the contraction history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("%w: clearing deletes all contraction history; pass --yes to confirm", apperrors.ErrInvalidInput)
			}
			return withApp(dataDir, func(cmd *cobra.Command, _ []string, app *bootstrap.App) error {
				if err := app.ContractionCLI.Clear(cmd.Context()); err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "history cleared")
				return nil
			})(cmd, args)
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm clearing")
	return cmd
}

func newSetCmd(dataDir *string) *cobra.Command {
	set := &cobra.Command{Use: "set", Short: "Saved contraction sets"}

	var name string
	saveCmd := &cobra.Command{
		Use:   "save",
		Short: "Save the current history as a named set",
		Args:  cobra.NoArgs,
		RunE: withApp(dataDir, func(cmd *cobra.Command, _ []string, app *bootstrap.App) error {
			out, err := app.ContractionCLI.SaveSet(cmd.Context(), name)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "saved %s (%s) contractions=%d\n", out.Name, out.ID, out.Count)
			return nil
		}),
	}
	saveCmd.Flags().StringVar(&name, "name", "", "set name (defaults to \"Set N\")")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List saved sets",
		Args:  cobra.NoArgs,
		RunE: withApp(dataDir, func(cmd *cobra.Command, _ []string, app *bootstrap.App) error {
			sets, err := app.ContractionCLI.ListSets(cmd.Context())
			if err != nil {
				return err
			}
			if len(sets) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no saved sets")
				return nil
			}
			for _, s := range sets {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%d contractions\t%s\n", s.ID, s.Name, s.Count, timefmt.FormatDate(s.CreatedAt))
			}
			return nil
		}),
	}

	loadCmd := &cobra.Command{
		Use:   "load <set-id>",
		Short: "Replace the current history with a saved set",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(dataDir, func(cmd *cobra.Command, args []string, app *bootstrap.App) error {
			out, err := app.ContractionCLI.LoadSet(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "loaded %s contractions=%d\n", out.Name, out.Count)
			return nil
		}),
	}

	deleteCmd := &cobra.Command{
		Use:   "delete <set-id>",
		Short: "Delete a saved set",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(dataDir, func(cmd *cobra.Command, args []string, app *bootstrap.App) error {
			if err := app.ContractionCLI.DeleteSet(cmd.Context(), args[0]); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
			return nil
		}),
	}

	var exportDir string
	exportCmd := &cobra.Command{
		Use:   "export <set-id>",
		Short: "Write a saved set as a markdown note",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(dataDir, func(cmd *cobra.Command, args []string, app *bootstrap.App) error {
			out, err := app.ContractionCLI.ExportSet(cmd.Context(), args[0], exportDir)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "exported %s\n", out.Path)
			return nil
		}),
	}
	exportCmd.Flags().StringVar(&exportDir, "dir", "", "output directory (defaults to export_dir from config)")

	set.AddCommand(saveCmd, listCmd, loadCmd, deleteCmd, exportCmd)
	return set
}

func newThemeCmd(dataDir *string) *cobra.Command {
	theme := &cobra.Command{Use: "theme", Short: "Theme preference"}
	theme.AddCommand(&cobra.Command{
		Use:   "get",
		Short: "Show the theme preference",
		Args:  cobra.NoArgs,
		RunE: withApp(dataDir, func(cmd *cobra.Command, _ []string, app *bootstrap.App) error {
			out, err := app.SettingsCLI.GetTheme(cmd.Context())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "theme=%s\n", out.Mode)
			return nil
		}),
	})
	theme.AddCommand(&cobra.Command{
		Use:   "set <system|light|dark>",
		Short: "Change the theme preference",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(dataDir, func(cmd *cobra.Command, args []string, app *bootstrap.App) error {
			out, err := app.SettingsCLI.SetTheme(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "theme=%s\n", out.Mode)
			return nil
		}),
	})
	return theme
}

func newMCPCmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve timer tools over MCP on stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			cmd.SetContext(ctx)
			app, err := loadApp(cmd, *dataDir, bootstrap.ModeMCP)
			if err != nil {
				return err
			}
			defer app.Close()
			return bootstrap.RunMCP(ctx, app, version)
		},
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
