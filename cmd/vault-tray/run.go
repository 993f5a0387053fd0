package main

import (
	"embed"
	"fmt"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/username/vault-tray/internal/config"
	"github.com/username/vault-tray/internal/daemon"
	"github.com/username/vault-tray/internal/desktop"
	"github.com/username/vault-tray/internal/host/memhost"
	"github.com/username/vault-tray/internal/settings"
	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"
	"go.uber.org/zap"
)

const appName = "vault-tray"

//go:embed all:frontend/dist
var assets embed.FS

func runCmd() *cobra.Command {
	var headless bool
	var hidden bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Open the vault and keep it running in the background",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if headless {
				cfg.Host.Mode = config.HostHeadless
			}
			if hidden {
				cfg.Host.Hidden = true
			}

			file := settings.NewFile(cfg.GetSettingsFile(), logger.Named("settings"))

			logger.Info("Starting",
				zap.String("version", Version),
				zap.String("vault", cfg.Vault.Path),
				zap.String("settings", file.Path()),
				zap.String("mode", cfg.Host.Mode))

			if cfg.Host.Mode == config.HostHeadless {
				return runHeadless(cfg, file)
			}
			return runDesktop(cfg, file)
		},
	}

	cmd.Flags().BoolVar(&headless, "headless", false, "Run without windows, tray or global hotkeys")
	cmd.Flags().BoolVar(&hidden, "hidden", false, "Start with the main window hidden")

	return cmd
}

func runDesktop(cfg *config.Config, file *settings.File) error {
	dh := desktop.New(desktop.Options{
		AppName:     appName,
		DisplayName: cfg.Host.Title,
		Args:        relaunchArgs(os.Args[1:]),
		StartHidden: cfg.Host.Hidden,
		VaultRoot:   cfg.Vault.Path,
		VaultName:   cfg.Vault.GetVaultName(),
	}, logger)
	defer dh.Close()

	d := daemon.NewDaemon(dh.Capabilities(), file, daemon.Options{
		WatchSettings:     cfg.Settings.Watch,
		Level:             logLevel,
		DeferHideOnLaunch: true,
	}, logger)

	app := NewApp(d, dh, logger)

	return wails.Run(&options.App{
		Title:       cfg.Host.Title,
		Width:       cfg.Host.Width,
		Height:      cfg.Host.Height,
		StartHidden: cfg.Host.Hidden,

		AssetServer: &assetserver.Options{
			Assets: assets,
		},

		OnStartup:     app.startup,
		OnDomReady:    app.domReady,
		OnBeforeClose: app.beforeClose,
		OnShutdown:    app.shutdown,

		Bind: []interface{}{
			app,
		},
	})
}

func runHeadless(cfg *config.Config, file *settings.File) error {
	name := cfg.Vault.GetVaultName()

	mh := memhost.New(name)
	caps := mh.Capabilities()
	caps.Vault = desktop.NewFSVault(afero.NewOsFs(), cfg.Vault.Path, name, logger.Named("vault"))
	caps.Process = desktop.NewProcess(relaunchArgs(os.Args[1:]), nil, logger)

	d := daemon.NewDaemon(caps, file, daemon.Options{
		WatchSettings: cfg.Settings.Watch,
		Level:         logLevel,
	}, logger)

	d.Load()
	logger.Info("Running headless, press Ctrl+C to stop")
	d.Wait()
	return nil
}

// relaunchArgs drops the login-only hidden flag
func relaunchArgs(args []string) []string {
	out := make([]string, 0, len(args))
	for _, a := range args {
		if a == desktop.HiddenFlag {
			continue
		}
		out = append(out, a)
	}
	return out
}
