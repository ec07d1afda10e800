package main

import (
	"fmt"
	"os"

	"fig-tracker/internal/cli"
	"fig-tracker/internal/config"
	"fig-tracker/internal/logging"
)

func main() {
	configDir := configDirFromArgs(os.Args[1:])

	logger := logging.NewLogger()

	cfg, err := config.Load(configDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "figtrack: %v\n", err)
		os.Exit(1)
	}

	rootCmd := cli.NewRootCmd(cfg, configDir, logger)
	if err := rootCmd.Execute(); err != nil {
		logger.Error().Err(err).Msg("Command failed")
		os.Exit(1)
	}
}

// configDirFromArgs pre-scans for the --config flag so the configuration
// is loaded before cobra parses anything.
func configDirFromArgs(args []string) string {
	for i, arg := range args {
		if arg == "--config" && i+1 < len(args) {
			return args[i+1]
		}
		if len(arg) > len("--config=") && arg[:len("--config=")] == "--config=" {
			return arg[len("--config="):]
		}
	}
	return ""
}
