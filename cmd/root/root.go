// Package root contains the root command for the application
package root

import (
	"fmt"
	"sync"

	"fjacquet/camt-ynab/internal/config"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// GlobalFlags holds the flags shared by all commands.
type GlobalFlags struct {
	ConfigDir string
	LogLevel  string
}

var (
	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "camt-ynab",
		Short: "A CLI tool to convert CAMT.053 XML statements to YNAB CSV.",
		Long: `camt-ynab converts a CAMT.053 bank statement into the CSV layout YNAB imports.
Account aliases and payee rules are read from config.yaml in the config directory.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Flags are the values of the persistent flags
	Flags = GlobalFlags{}

	initOnce sync.Once
)

// Init registers the persistent flags on the root command.
func Init() {
	initOnce.Do(func() {
		AddPersistentFlags(Cmd)
	})
}

// AddPersistentFlags registers the shared flags on cmd.
func AddPersistentFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(&Flags.ConfigDir, "config-dir", "c", config.DefaultDir,
		"Config directory, relative to the home directory unless absolute")
	cmd.PersistentFlags().StringVar(&Flags.LogLevel, "log-level", "",
		"Log level (trace, debug, info, warn, error), overrides the config file")
}

// LoadConfig reads config.yaml from the directory selected by --config-dir.
func LoadConfig() (*config.Config, error) {
	dir, err := config.ResolveDir(Flags.ConfigDir)
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(dir)
	if err != nil {
		return nil, err
	}
	if err := applyLogLevel(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DefaultConfig returns the built-in configuration with --log-level applied.
// Commands that need no rules use it so they run without a config file.
func DefaultConfig() (*config.Config, error) {
	cfg := config.Default()
	if err := applyLogLevel(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyLogLevel(cfg *config.Config) error {
	if Flags.LogLevel == "" {
		return nil
	}
	if _, err := logrus.ParseLevel(Flags.LogLevel); err != nil {
		return fmt.Errorf("invalid --log-level: %w", err)
	}
	cfg.Log.Level = Flags.LogLevel
	return nil
}
