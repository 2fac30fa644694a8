package cmd

import (
	"fmt"
	"os"

	"github.com/common-nighthawk/go-figure"
	"github.com/confstate/confstate/internal/settings"
	"github.com/confstate/confstate/internal/ui"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var initForce bool

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite an existing settings file")
	RootCmd.AddCommand(initCmd)
}

// resetInitState resets the init command's global state for testing.
func resetInitState() {
	initForce = false
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the settings file",
	Long: `Creates the settings file at the platform config location (or the path
given with --config) and stamps it with a fresh instance id.

The command refuses to overwrite an existing file unless --force is given.

Examples:
  # Create the settings file
  confstate init

  # Recreate it from scratch
  confstate init --force`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		spinner, cleanup := startSpinner("Initializing confstate...", verbose)
		defer cleanup()

		path, err := resolveConfigPath()
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to resolve settings path: %v", err)
		}
		Logger.Debugf("Using settings file %s", path)

		if _, err := os.Stat(path); err == nil && !initForce {
			spinner.FinalMSG = ui.Error.Sprint("✗") + " A settings file already exists at " + ui.Path.Sprint(path) + "\n" +
				ui.Info.Sprint("→") + " Re-run with " + ui.Code.Sprint("--force") + " to overwrite it\n"
			return nil
		}

		store := settings.New(nil, nil)
		store.Logger = Logger

		instanceID := uuid.New().String()
		if err := store.Set("confstate", "instance_id", instanceID); err != nil {
			printError("Failed to stamp instance id", err)
			return err
		}
		Logger.Infof("Generated instance id %s", instanceID)

		if err := store.Save(path); err != nil {
			return Logger.ErrorfAndReturn("Failed to create %s: %v", path, err)
		}

		// Stop spinner before printing the banner.
		spinner.Stop()

		fmt.Println()
		banner := figure.NewColorFigure("confstate", "alligator2", "green", true)
		banner.Print()
		fmt.Println()

		fmt.Printf("%s Settings file created at %s\n", ui.Success.Sprint("✓"), ui.Path.Sprint(path))
		fmt.Printf("%s Run %s to store your first option\n", ui.Info.Sprint("→"), ui.Code.Sprint("confstate set <section> <option> <value>"))
		return nil
	},
}
