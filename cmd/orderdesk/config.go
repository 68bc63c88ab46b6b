package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/muurk/orderdesk/internal/config"
	"github.com/muurk/orderdesk/internal/ui"
)

var forceInit bool

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)

	configInitCmd.Flags().BoolVar(&forceInit, "force", false, "Overwrite an existing config file without asking")
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
	Long: `Manage the orderdesk configuration file.

Settings are resolved in this order, later ones winning:
  1. config file (see 'orderdesk config path')
  2. .env / .env.<ORDERDESK_ENV> in the working directory
  3. ORDERDESK_* environment variables
  4. command flags`,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.GetConfigPath()
		if err != nil {
			return err
		}
		if configPath != "" {
			path = configPath
		}

		overwrite := forceInit
		if _, err := os.Stat(path); err == nil && !forceInit {
			if !term.IsTerminal(int(os.Stdin.Fd())) {
				return fmt.Errorf("config file already exists: %s (use --force to overwrite)", path)
			}
			if !ui.Confirm(os.Stdin, os.Stdout, fmt.Sprintf("%s exists. Overwrite?", path)) {
				return nil
			}
			overwrite = true
		}

		if configPath == "" {
			if path, err = config.CreateDefaultConfig(overwrite); err != nil {
				return err
			}
		} else if err := config.NewSettings().SaveTo(path); err != nil {
			return err
		}
		ui.NewPrinter(os.Stdout).PrintSuccess("Config written", ui.Detail{Key: "Path", Value: path})
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Long:  `Print the configuration after environment variables and flags are applied.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSettings(cmd)
		if err != nil {
			return err
		}
		data, err := yaml.Marshal(s)
		if err != nil {
			return fmt.Errorf("failed to marshal config: %w", err)
		}
		fmt.Print(string(data))
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file location",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configPath
		if path == "" {
			var err error
			if path, err = config.GetConfigPath(); err != nil {
				return err
			}
		}
		fmt.Println(path)
		return nil
	},
}
