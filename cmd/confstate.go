package cmd

import (
	"fmt"
	"os"

	logger "github.com/confstate/confstate/internal/logging"
	"github.com/confstate/confstate/internal/paths"
	"github.com/confstate/confstate/internal/settings"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	configPath string
	verbose    bool
	debug      bool
	Logger     logger.Logger

	// RootCmd is the top-level confstate command.
	RootCmd = &cobra.Command{
		Use:   "confstate",
		Short: "confstate - Session-aware INI configuration management from the command line.",
		Long: `confstate manages a sectioned key/value settings file in INI format.

The file only records what you actually decided: options still equal to their
declared defaults are omitted, and sections marked as runtime-only never reach
disk at all.

Examples:
  # Create the settings file in the platform config directory
  confstate init

  # Store an option
  confstate set server port 8080

  # Read it back, parsed as an integer
  confstate get server port --as int

  # Dump everything currently stored
  confstate show

Run 'confstate help <command>' for more details on a specific command.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			Logger = logger.Logger{
				Verbose: verbose,
				Debug:   debug,
			}
			Logger.Debugf("Initializing confstate with verbose=%t, debug=%t", verbose, debug)
		},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("Welcome to confstate! Run 'confstate --help' to see available commands.")
		},
	}
)

func init() {
	RootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to the settings file (defaults to the platform config directory)")
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	RootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")
}

// resolveConfigPath returns the settings file path from --config, falling back
// to the platform default location.
func resolveConfigPath() (string, error) {
	if configPath != "" {
		return configPath, nil
	}
	return paths.DefaultConfigFile()
}

// loadStore reads the settings file at path into a fresh store. A missing
// file yields an empty store; commands that require the file to exist check
// for it themselves.
func loadStore(path string) (*settings.Store, error) {
	store := settings.New(nil, nil)
	store.Logger = Logger

	if _, err := os.Stat(path); os.IsNotExist(err) {
		Logger.Infof("No settings file at %s, starting empty", path)
		return store, nil
	}

	if err := store.Read(path); err != nil {
		return nil, err
	}
	return store, nil
}

// Helper functions for testing

// GetRootCmd returns the RootCmd for testing.
func GetRootCmd() *cobra.Command {
	return RootCmd
}

// ResetRootState resets all command global variables to their default values for testing.
func ResetRootState() {
	configPath = ""
	verbose = false
	debug = false
	resetGetState()
	resetShowState()
	resetInitState()
	resetCobraFlagState()
}

// resetCobraFlagState resets the flag state for all commands to prevent test pollution.
func resetCobraFlagState() {
	commands := []*cobra.Command{RootCmd}
	commands = append(commands, RootCmd.Commands()...)
	for _, command := range commands {
		if command.Flags() != nil {
			command.Flags().VisitAll(func(flag *pflag.Flag) {
				flag.Changed = false
			})
		}
	}
}
