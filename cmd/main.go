package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"
	"time"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"eyeguard/internal/app"
	"eyeguard/internal/audio"
	"eyeguard/internal/core/clock"
	"eyeguard/internal/core/reminder"
	"eyeguard/internal/core/timekeeper"
	"eyeguard/internal/logging"
	"eyeguard/internal/platform"
	"eyeguard/internal/storage"
	"eyeguard/internal/ui/mainwindow"
	"eyeguard/internal/ui/overlay"
	"eyeguard/internal/ui/tray"
	"eyeguard/resources"
)

const (
	appName    = "EyeGuard"
	appID      = "com.eyeguard.app"
	configName = "eyeguard"
	chimeLevel = 0.4
)

var (
	// Version info (set via ldflags)
	Version   = "0.1.0"
	Commit    = "dev"
	BuildTime = "unknown"
)

var (
	configPath string
	logLevel   string
	logFile    string
)

func init() {
	// GLFW calls must come from the main OS thread.
	runtime.LockOSThread()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "eyeguard",
	Short: "Work/rest timer with full-screen rest overlays",
	Long: `eyeguard counts down a work period, then covers every display with a
topmost rest overlay until the rest period is over. Every few rests the
overlay also reminds you to drink water or take a walk.

Running without a subcommand is the same as "eyeguard run".`,
	Version:      Version,
	SilenceUsage: true,
	RunE:         runApp,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the timer with its tray icon and control window",
	RunE:  runApp,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default <user config dir>/eyeguard/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Also write logs to this file")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(monitorsCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(autostartCmd)
}

func runApp(cmd *cobra.Command, args []string) error {
	logger, err := logging.New(logging.Options{Level: logLevel, File: logFile})
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	guard, err := platform.AcquireSingleInstance(appName)
	if err != nil {
		if errors.Is(err, platform.ErrAlreadyRunning) {
			logger.Warn("another instance is already running", zap.Error(err))
		}
		return err
	}
	defer func() { _ = guard.Release() }()

	path, err := resolveConfigPath()
	if err != nil {
		return err
	}
	settings, err := storage.LoadSettings(path)
	if err != nil {
		logger.Warn("config ignored, using defaults", zap.String("path", path), zap.Error(err))
		settings = storage.DefaultSettings()
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	fyneApp := fyneapp.NewWithID(appID)
	fyneApp.SetIcon(resources.MustIcon(resources.IconActive))
	desktopApp, hasTray := fyneApp.(desktop.App)

	countdown := clock.New(nil, clock.DefaultInterval)
	keeper := timekeeper.New(settings.Cycle, countdown.Clock())

	presenter := overlay.NewFynePresenter(fyneApp, overlay.Config{
		Opacity: settings.OverlayAlpha(),
		Title:   appName,
	})
	overlays := overlay.NewManager(presenter, platform.NewMonitorSource(), logger.Named("overlay"))

	controller := app.New(keeper, overlays, reminder.NewPicker(nil), app.Options{
		OnIcon: func(variant resources.IconVariant) {
			if hasTray {
				desktopApp.SetSystemTrayIcon(resources.MustIcon(variant))
			}
		},
		OnQuit: fyneApp.Quit,
		Logger: logger.Named("cycle"),
	})
	presenter.SetOnSkip(controller.Skip)

	window := mainwindow.New(fyneApp, appName, keeper.Config(), controller.WindowHandlers())
	var trayState app.Tray
	if hasTray {
		trayState = tray.New(desktopApp, controller.TrayCallbacks())
		desktopApp.SetSystemTrayIcon(resources.MustIcon(resources.IconActive))
	} else {
		logger.Info("system tray unsupported; closing the window keeps the timer running")
	}
	controller.Attach(window, trayState)

	chime := audio.NewChime(settings.Chime, chimeLevel, logger.Named("chime"))
	go chime.Run(ctx, keeper.Subscribe(16))

	go func() {
		err := storage.Watch(ctx, path, logger.Named("config"), func(updated storage.Settings) {
			fyne.Do(func() {
				presenter.SetOpacity(updated.OverlayAlpha())
				chime.SetEnabled(updated.Chime)
				controller.ApplyConfig(updated.Cycle)
			})
		})
		if err != nil {
			logger.Info("config live reload disabled", zap.Error(err))
		}
	}()

	fyneApp.Lifecycle().SetOnStarted(func() {
		keeper.Start()
		go countdown.Run(ctx, func(now time.Time) {
			fyne.Do(func() { keeper.Tick(now) })
		})
	})

	logger.Info("starting",
		zap.String("version", Version),
		zap.Int("work_minutes", settings.Cycle.WorkMinutes()),
		zap.Int("rest_seconds", settings.Cycle.RestSeconds()),
		zap.Uint32("water_interval", settings.Cycle.WaterInterval),
		zap.Uint32("walk_interval", settings.Cycle.WalkInterval))

	fyneApp.Run()

	cancel()
	keeper.Close()
	logger.Info("stopped")
	return nil
}

func resolveConfigPath() (string, error) {
	if configPath != "" {
		return configPath, nil
	}
	path, err := storage.DefaultPath(configName)
	if err != nil {
		return "", fmt.Errorf("resolve config path: %w", err)
	}
	return path, nil
}
