package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/1broseidon/tagwm/internal/config"
)

var configPath string

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect the tagwm configuration",
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Load and validate the configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := loadConfig(); err != nil {
			return err
		}
		successColor.Fprintln(cmd.OutOrStdout(), "config: ok")
		return nil
	},
}

var configPrintDefaults bool

var configPrintCmd = &cobra.Command{
	Use:   "print",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.DefaultConfig()
		if !configPrintDefaults {
			res, err := loadConfig()
			if err != nil {
				return err
			}
			cfg = res.Config
		}
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), string(data))
		return nil
	},
}

var configExplainCmd = &cobra.Command{
	Use:   "explain <yaml.path>",
	Short: "Show a setting's value and where it was set",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := loadConfig()
		if err != nil {
			return err
		}
		value, src, err := config.Explain(res, args[0])
		if err != nil {
			return err
		}
		data, err := yaml.Marshal(value)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		infoColor.Fprint(out, "path: ")
		fmt.Fprintln(out, args[0])
		infoColor.Fprint(out, "source: ")
		fmt.Fprintln(out, formatSource(src))
		infoColor.Fprintln(out, "value:")
		fmt.Fprint(out, string(data))
		return nil
	},
}

func init() {
	configCmd.PersistentFlags().StringVar(&configPath, "path", "", "Config file path (default: ~/.config/tagwm/config.yaml)")
	configPrintCmd.Flags().BoolVar(&configPrintDefaults, "defaults", false, "Print compiled-in defaults (no files)")

	configCmd.AddCommand(configValidateCmd)
	configCmd.AddCommand(configPrintCmd)
	configCmd.AddCommand(configExplainCmd)
	rootCmd.AddCommand(configCmd)
}

func loadConfig() (*config.LoadResult, error) {
	if configPath == "" {
		return config.LoadWithSources()
	}
	return config.LoadFromPath(configPath)
}

func formatSource(src config.Source) string {
	switch src.Kind {
	case config.SourceFile:
		if src.File == "" {
			return "file"
		}
		if src.Line > 0 {
			return "file:" + src.String()
		}
		return "file:" + src.File
	case config.SourceDefault:
		if src.Name != "" {
			return "default:" + src.Name
		}
		return "default"
	default:
		return string(src.Kind)
	}
}
