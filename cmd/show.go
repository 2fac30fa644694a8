package cmd

import (
	"fmt"
	"os"

	"github.com/confstate/confstate/internal/ui"
	"github.com/spf13/cobra"
)

var showFile bool

func init() {
	showCmd.Flags().BoolVar(&showFile, "file", false, "show the filtered view that would be written to disk")
	RootCmd.AddCommand(showCmd)
}

// resetShowState resets the show command's global state for testing.
func resetShowState() {
	showFile = false
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Display the current settings",
	Long: `Displays every section and option in the settings file.

By default the full in-memory view is shown with indented options. Use --file
to see exactly what a save would write to disk instead.

Examples:
  # Show all settings
  confstate show

  # Show the raw on-disk form
  confstate show --file`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolveConfigPath()
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to resolve settings path: %v", err)
		}
		Logger.Debugf("Using settings file %s", path)

		if _, err := os.Stat(path); os.IsNotExist(err) {
			fmt.Fprintln(cmd.OutOrStdout(), ui.Error.Sprint("✗")+" No settings file found at "+ui.Path.Sprint(path))
			fmt.Fprintln(cmd.OutOrStdout())
			fmt.Fprintln(cmd.OutOrStdout(), ui.Info.Sprint("→")+" Run "+ui.Code.Sprint("confstate init")+" to create one")
			return nil
		}

		store, err := loadStore(path)
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to load settings: %v", err)
		}

		if len(store.Sections()) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Sprint("empty"))
			return nil
		}

		if showFile {
			Logger.Infof("Showing the on-disk view of %s", path)
			return store.Write(cmd.OutOrStdout())
		}

		fmt.Fprint(cmd.OutOrStdout(), store.String())
		return nil
	},
}
