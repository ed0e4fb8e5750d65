package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/flappy-bounce/internal/config"
)

var flagForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration the game would run with, after --config and
--difficulty are applied.

Examples:
  flappy config
  flappy config --difficulty hard
  flappy config init`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration to ~/.flappy/configs/flappy.yaml",
	Args:  cobra.NoArgs,
	Run:   runConfigInit,
}

func init() {
	configInitCmd.Flags().BoolVar(&flagForce, "force", false, "Overwrite an existing file")
	configCmd.AddCommand(configInitCmd)
}

func runConfig(cmd *cobra.Command, args []string) {
	cfg, _, err := loadGameConfig()
	if err != nil {
		fail("%v", err)
	}
	data, err := config.Marshal(cfg)
	if err != nil {
		fail("%v", err)
	}

	source := config.ResolvePath(flagConfig)
	if source == "" {
		source = "built-in defaults"
	}
	fmt.Printf("# source: %s\n", source)
	if flagDifficulty != "" {
		fmt.Printf("# difficulty: %s\n", flagDifficulty)
	}
	os.Stdout.Write(data)
}

func runConfigInit(cmd *cobra.Command, args []string) {
	path := config.UserConfigPath("flappy.yaml")
	if path == "" {
		fail("cannot locate the home directory")
	}
	if _, err := os.Stat(path); err == nil && !flagForce {
		fail("%s already exists (use --force to overwrite)", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		fail("%v", err)
	}
	if err := os.WriteFile(path, config.DefaultYAML(), 0o644); err != nil {
		fail("%v", err)
	}
	fmt.Printf("Wrote %s\n", path)
}
