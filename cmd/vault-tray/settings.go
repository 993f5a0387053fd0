package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/username/vault-tray/internal/config"
	"github.com/username/vault-tray/internal/settings"
)

func settingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Inspect and change vault settings",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List every setting with its current value",
		RunE: func(cmd *cobra.Command, args []string) error {
			editor, _, err := openSettings()
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "KEY\tKIND\tVALUE\tSECTION")
			for _, d := range editor.Descriptors() {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", d.Key, d.Kind, abbreviate(fmt.Sprint(d.Value)), d.Section)
			}
			return w.Flush()
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "get <key>",
		Short: "Print the value of a setting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, store, err := openSettings()
			if err != nil {
				return err
			}

			opt, ok := store.Option(args[0])
			if !ok {
				return fmt.Errorf("unknown setting %q", args[0])
			}
			fmt.Fprintln(cmd.OutOrStdout(), store.Get(opt).String())
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Change a setting and save it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			editor, _, err := openSettings()
			if err != nil {
				return err
			}
			if err := editor.ApplyInput(args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", args[0], args[1])
			return nil
		},
	})

	return cmd
}

// openSettings loads the settings file into an editor with no reactions
// wired; a running instance picks up saved changes by watching the file.
func openSettings() (*settings.Editor, *settings.Store, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	file := settings.NewFile(cfg.GetSettingsFile(), logger.Named("settings"))
	data, err := file.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load settings: %w", err)
	}

	store := settings.NewStore(settings.Catalog(), logger)
	store.LoadFrom(data)

	return settings.NewEditor(store, settings.NewReactions(), file, logger), store, nil
}

func abbreviate(s string) string {
	const limit = 48
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-3]) + "..."
}
