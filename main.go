package main

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"
	"github.com/wailsapp/wails/v2/pkg/options/linux"
	"github.com/wailsapp/wails/v2/pkg/options/mac"
	"github.com/wailsapp/wails/v2/pkg/options/windows"
)

// AppVersion is overridden at build time with -ldflags "-X main.AppVersion=...".
var AppVersion = "0.3.0-dev"

//go:embed all:frontend/dist
var assets embed.FS

// debugEnv forces debug mode when set to a true value.
const debugEnv = "PESTER_DEBUG"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts launchOptions

	rootCmd := &cobra.Command{
		Use:           "pester",
		Short:         "Pester desktop messenger",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("debug") {
				opts.Debug = debugFromEnv(os.Getenv(debugEnv))
			}
			return runDesktop(opts)
		},
	}
	rootCmd.Flags().BoolVar(&opts.Debug, "debug", false, "Log to stdout and the webview instead of a file (also "+debugEnv+"=1)")
	rootCmd.Flags().BoolVar(&opts.Minimized, "minimized", false, "Start hidden in the tray")

	rootCmd.AddCommand(newAutostartCmd())
	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

func debugFromEnv(v string) bool {
	b, err := strconv.ParseBool(v)
	return err == nil && b
}

// runDesktop starts the tray shell and blocks until the app quits.
func runDesktop(opts launchOptions) error {
	cfg := LoadConfig()

	logFile, err := InitLogger(cfg.LogLevel, opts.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging to file unavailable: %v\n", err)
	}
	if logFile != nil {
		defer logFile.Close()
	}
	Log.Info("starting", "version", AppVersion, "debug", opts.Debug, "minimized", opts.Minimized)

	release, err := ensureSingleInstance()
	if err != nil {
		if errors.Is(err, ErrAlreadyRunning) {
			Log.Info("another instance is running, exiting")
			return nil
		}
		Log.Warn("single instance check failed", "error", err)
	}
	if release != nil {
		defer release()
	}

	frontend, err := fs.Sub(assets, "frontend/dist")
	if err != nil {
		return fmt.Errorf("load frontend assets: %w", err)
	}

	app := NewDesktopApp(cfg, opts)

	err = wails.Run(&options.App{
		Title:       windowTitle,
		Width:       cfg.WindowWidth,
		Height:      cfg.WindowHeight,
		MinWidth:    320,
		MinHeight:   480,
		StartHidden: true,
		AssetServer: &assetserver.Options{
			Assets: frontend,
		},
		BackgroundColour: &options.RGBA{R: 255, G: 255, B: 255, A: 1},
		OnStartup:        app.startup,
		OnDomReady:       app.onDomReady,
		OnBeforeClose:    app.beforeClose,
		OnShutdown:       app.shutdown,
		Bind: []interface{}{
			app,
		},
		Mac: &mac.Options{
			About: &mac.AboutInfo{
				Title:   windowTitle,
				Message: "Version " + AppVersion,
				Icon:    appIconPNG,
			},
		},
		Windows: &windows.Options{
			WebviewIsTransparent: false,
			WindowIsTranslucent:  false,
			DisableWindowIcon:    false,
		},
		Linux: &linux.Options{
			Icon:                appIconPNG,
			WindowIsTranslucent: false,
		},
	})
	if err != nil {
		return fmt.Errorf("wails application error: %w", err)
	}
	return app.startErr
}

func newAutostartCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "autostart",
		Short: "Manage launching Pester at login",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "enable",
		Short: "Start Pester minimized at login",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := EnableAutostart(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "autostart enabled")
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "disable",
		Short: "Stop starting Pester at login",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := DisableAutostart(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "autostart disabled")
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show whether Pester starts at login",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			enabled, err := IsAutostartEnabled()
			if err != nil {
				return err
			}
			if enabled {
				fmt.Fprintln(cmd.OutOrStdout(), "enabled")
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "disabled")
			}
			return nil
		},
	})
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "pester %s\n", AppVersion)
		},
	}
}
