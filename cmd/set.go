package cmd

import (
	"github.com/confstate/confstate/internal/ui"
	"github.com/spf13/cobra"
)

func init() {
	RootCmd.AddCommand(setCmd)
}

var setCmd = &cobra.Command{
	Use:   "set <section> <option> <value>",
	Short: "Store an option and save the settings file",
	Long: `Stores a value under a section and option, creating the section if
needed, then saves the settings file.

Values are always stored as strings; 'confstate get --as' parses them back
into typed values on read.

Examples:
  # Store a value
  confstate set server port 8080

  # Values with spaces need quoting in the shell
  confstate set greeting text "hello world"`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		section, option, value := args[0], args[1], args[2]

		spinner, cleanup := startSpinner("Saving settings...", verbose)
		defer cleanup()

		path, err := resolveConfigPath()
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to resolve settings path: %v", err)
		}
		Logger.Debugf("Using settings file %s", path)

		store, err := loadStore(path)
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to load settings: %v", err)
		}

		if err := store.Set(section, option, value); err != nil {
			return Logger.ErrorfAndReturn("Failed to set [%s] %s: %v", section, option, err)
		}

		if err := store.Save(path); err != nil {
			return Logger.ErrorfAndReturn("Failed to save settings to %s: %v", path, err)
		}

		spinner.FinalMSG = ui.Success.Sprint("✓") + " Set " + ui.Section.Sprint("["+section+"]") + " " +
			option + " to " + ui.Value.Sprint(value) + "\n"
		return nil
	},
}
