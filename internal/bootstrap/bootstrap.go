package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	hclog "github.com/hashicorp/go-hclog"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	contractioninadapter "labortimer/internal/modules/contraction/adapter/in"
	contractionoutadapter "labortimer/internal/modules/contraction/adapter/out"
	contractionservice "labortimer/internal/modules/contraction/service"
	contractionusecase "labortimer/internal/modules/contraction/usecase"
	settingsinadapter "labortimer/internal/modules/settings/adapter/in"
	settingsoutadapter "labortimer/internal/modules/settings/adapter/out"
	settingsservice "labortimer/internal/modules/settings/service"
	settingsusecase "labortimer/internal/modules/settings/usecase"
	"labortimer/internal/platform/clock"
	"labortimer/internal/platform/config"
	"labortimer/internal/platform/id"
	"labortimer/internal/platform/kvstore"
	"labortimer/internal/platform/logging"
	uiapp "labortimer/internal/ui/app"
)

// Mode selects where the process logs. The TUI owns the terminal and logs
// to a file; the CLI and the MCP server log to stderr.
type Mode int

const (
	ModeCLI Mode = iota
	ModeTUI
	ModeMCP
)

type App struct {
	ContractionCLI contractioninadapter.CLIHandler
	ContractionMCP contractioninadapter.MCPHandler
	SettingsCLI    settingsinadapter.CLIHandler
	Logger         hclog.Logger

	closers []func() error
}

func New(cfg config.Config, mode Mode, stderr io.Writer) (*App, error) {
	logOpts := logging.Options{Name: "labortimer", Level: cfg.LogLevel, Output: stderr}
	if mode == ModeTUI {
		logOpts.Path = cfg.LogPath
	}
	logger, closeLog, err := logging.New(logOpts)
	if err != nil {
		return nil, fmt.Errorf("new logger: %w", err)
	}

	kv, err := kvstore.OpenSQLite(cfg.DBPath)
	if err != nil {
		_ = closeLog()
		return nil, fmt.Errorf("open store: %w", err)
	}

	contractionLogger := logger.Named("contraction")
	contractionSvc := contractionservice.NewContractionService(
		clock.SystemClock{},
		id.Compact{},
		contractionoutadapter.NewKVHistoryStore(kv, contractionLogger),
		contractionoutadapter.NewKVSetStore(kv),
		contractionoutadapter.NewKVActiveStore(kv, contractionLogger),
		contractionLogger,
	)
	contractionUC := contractionusecase.NewInteractor(contractionSvc, contractionoutadapter.NewMarkdownSetExporter(), cfg.ExportDir)

	settingsUC := settingsusecase.NewInteractor(settingsservice.NewSettingsService(
		settingsoutadapter.NewKVThemeStore(kv),
		logger.Named("settings"),
	))

	return &App{
		ContractionCLI: contractioninadapter.NewCLIHandler(contractionUC),
		ContractionMCP: contractioninadapter.NewMCPHandler(contractionUC),
		SettingsCLI:    settingsinadapter.NewCLIHandler(settingsUC),
		Logger:         logger,
		closers:        []func() error{kv.Close, closeLog},
	}, nil
}

// Load hydrates the timer state. A saved-set failure leaves the timer usable
// and is returned so the caller can warn about it.
func (a *App) Load(ctx context.Context) error {
	return a.ContractionCLI.Load(ctx)
}

func (a *App) Close() error {
	var errs []error
	for _, closeFn := range a.closers {
		if err := closeFn(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func RunTUI(ctx context.Context, app *App) error {
	systemDark := lipgloss.HasDarkBackground()
	model := uiapp.NewModel(ctx, app.ContractionCLI, app.SettingsCLI, systemDark)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

func RunMCP(ctx context.Context, app *App, version string) error {
	srv := mcp.NewServer(&mcp.Implementation{Name: "labortimer", Version: version}, nil)
	app.ContractionMCP.Register(srv)
	app.Logger.Info("mcp server listening on stdio")
	if err := srv.Run(ctx, &mcp.StdioTransport{}); err != nil && ctx.Err() == nil {
		return fmt.Errorf("mcp server: %w", err)
	}
	return nil
}
