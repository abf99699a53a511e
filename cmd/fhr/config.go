// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/fair-bioheaders/fhr/internal/config"
	"github.com/fair-bioheaders/fhr/internal/issue"
)

// newConfigCommand creates the `fhr config` command tree.
// Subcommands that read configuration use the App's config Provider.
func newConfigCommand(app *App) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage fhr configuration",
		Long: `Manage fhr configuration.

Configuration is stored in:
  - Linux: ~/.config/fhr/config.cue
  - macOS: ~/Library/Application Support/fhr/config.cue
  - Windows: %APPDATA%\fhr\config.cue

A config.cue in the working directory is used when the user file is absent.
FHR_* environment variables (FHR_COMBINE_SUFFIX, FHR_LOG_LEVEL, ...) override
both.`,
		// show and dump report load failures themselves; init must work before a file exists.
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			app.loadConfigOrDefaults(cmd.Context())
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.showConfig(cmd.Context())
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Output the effective configuration as TOML",
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.dumpConfig(cmd.Context())
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.showConfigPath()
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.initConfig()
		},
	})

	return cfgCmd
}

func (a *App) loadForDisplay(ctx context.Context) (*config.Loaded, error) {
	loaded, err := a.Config.Load(ctx, config.LoadOptions{ConfigFilePath: a.flags.cfgFile})
	if err == nil {
		return loaded, nil
	}

	style := glamourStyle(a.cfg().UI.ColorScheme)
	guide, gerr := issue.Get(issue.ConfigLoadFailedId).Render(style)
	var ae *issue.ActionableError
	if errors.As(err, &ae) && ae.Issue != 0 {
		guide, gerr = ae.Guide(style)
	}
	if gerr == nil {
		_, _ = fmt.Fprint(a.stderr, guide)
	}
	return nil, err
}

func (a *App) showConfig(ctx context.Context) error {
	loaded, err := a.loadForDisplay(ctx)
	if err != nil {
		return err
	}
	cfg := loaded.Config

	keyStyle := KeyStyle
	valueStyle := SuccessStyle

	_, _ = fmt.Fprintln(a.stdout, TitleStyle.Render("Current Configuration"))
	_, _ = fmt.Fprintln(a.stdout)

	if loaded.Path != "" {
		_, _ = fmt.Fprintf(a.stdout, "%s: %s\n", keyStyle.Render("Config file"), loaded.Path)
	} else {
		_, _ = fmt.Fprintf(a.stdout, "%s: %s\n", keyStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	}

	section := func(name string, kv ...any) {
		_, _ = fmt.Fprintln(a.stdout)
		_, _ = fmt.Fprintf(a.stdout, "%s:\n", keyStyle.Render(name))
		for i := 0; i+1 < len(kv); i += 2 {
			_, _ = fmt.Fprintf(a.stdout, "  %s: %s\n", kv[i], valueStyle.Render(fmt.Sprint(kv[i+1])))
		}
	}

	section("combine", "suffix", cfg.Combine.Suffix, "validate", cfg.Combine.Validate)
	section("convert", "validate", cfg.Convert.Validate)
	section("ui", "color_scheme", cfg.UI.ColorScheme, "verbose", cfg.UI.Verbose)
	section("log", "level", cfg.Log.Level)
	section("limits", "max_file_size", int64(cfg.Limits.MaxFileSize))

	return nil
}

func (a *App) dumpConfig(ctx context.Context) error {
	loaded, err := a.loadForDisplay(ctx)
	if err != nil {
		return err
	}

	out, err := toml.Marshal(loaded.Config)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	_, err = a.stdout.Write(out)
	return err
}

func (a *App) showConfigPath() error {
	path, err := config.DefaultConfigPath(config.LoadOptions{ConfigFilePath: a.flags.cfgFile})
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(a.stdout, "Config file: %s\n", path)
	return nil
}

func (a *App) initConfig() error {
	path, err := config.DefaultConfigPath(config.LoadOptions{ConfigFilePath: a.flags.cfgFile})
	if err != nil {
		return err
	}

	created, err := config.CreateDefaultConfig(path)
	if err != nil {
		return issue.WrapWithContext(err, "create config", path)
	}

	if !created {
		_, _ = fmt.Fprintf(a.stdout, "%s Configuration already exists at %s\n", WarningStyle.Render("!"), path)
		return nil
	}
	_, _ = fmt.Fprintf(a.stdout, "%s Created default configuration at %s\n", SuccessStyle.Render("✓"), path)
	return nil
}
