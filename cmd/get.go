package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var (
	getAs       string
	getFallback string
)

func init() {
	getCmd.Flags().StringVar(&getAs, "as", "string", "interpret the value as string, bool, int, or float")
	getCmd.Flags().StringVar(&getFallback, "fallback", "", "value to return when the option is absent")
	RootCmd.AddCommand(getCmd)
}

// resetGetState resets the get command's global state for testing.
func resetGetState() {
	getAs = "string"
	getFallback = ""
}

var getCmd = &cobra.Command{
	Use:   "get <section> <option>",
	Short: "Print the value of an option",
	Long: `Prints the value stored under a section and option.

The raw value is printed on its own line, suitable for scripting. Use --as to
have it parsed and validated as a bool, int, or float first; boolean values
accept 1/yes/true/on and 0/no/false/off in any case.

If the option is absent the command fails, unless --fallback supplies the
value to print instead.

Examples:
  # Print a value
  confstate get server host

  # Parse it as an integer (fails when the stored value is not a number)
  confstate get server port --as int

  # Fall back when the option was never set
  confstate get server host --fallback localhost`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		section, option := args[0], args[1]
		Logger.Infof("Reading [%s] %s as %s", section, option, getAs)

		path, err := resolveConfigPath()
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to resolve settings path: %v", err)
		}
		Logger.Debugf("Using settings file %s", path)

		store, err := loadStore(path)
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to load settings: %v", err)
		}

		hasFallback := cmd.Flags().Changed("fallback")
		value, err := lookupValue(store, section, option, hasFallback)
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), value)
		return nil
	},
}

// lookupValue reads (section, option) from the store with the type and
// fallback requested on the command line, returning the printable value.
func lookupValue(store storeReader, section, option string, hasFallback bool) (string, error) {
	switch getAs {
	case "string":
		if hasFallback {
			return store.GetString(section, option, getFallback)
		}
		return store.GetString(section, option)

	case "bool":
		var (
			value bool
			err   error
		)
		if hasFallback {
			fallback, parseErr := strconv.ParseBool(getFallback)
			if parseErr != nil {
				return "", fmt.Errorf("--fallback %q is not a boolean: %w", getFallback, parseErr)
			}
			value, err = store.GetBool(section, option, fallback)
		} else {
			value, err = store.GetBool(section, option)
		}
		if err != nil {
			return "", err
		}
		return strconv.FormatBool(value), nil

	case "int":
		var (
			value int
			err   error
		)
		if hasFallback {
			fallback, parseErr := strconv.Atoi(getFallback)
			if parseErr != nil {
				return "", fmt.Errorf("--fallback %q is not an integer: %w", getFallback, parseErr)
			}
			value, err = store.GetInt(section, option, fallback)
		} else {
			value, err = store.GetInt(section, option)
		}
		if err != nil {
			return "", err
		}
		return strconv.Itoa(value), nil

	case "float":
		var (
			value float64
			err   error
		)
		if hasFallback {
			fallback, parseErr := strconv.ParseFloat(getFallback, 64)
			if parseErr != nil {
				return "", fmt.Errorf("--fallback %q is not a number: %w", getFallback, parseErr)
			}
			value, err = store.GetFloat(section, option, fallback)
		} else {
			value, err = store.GetFloat(section, option)
		}
		if err != nil {
			return "", err
		}
		return strconv.FormatFloat(value, 'g', -1, 64), nil

	default:
		return "", fmt.Errorf("unknown type %q (expected string, bool, int, or float)", getAs)
	}
}

// storeReader is the read surface of the settings store the get command needs.
type storeReader interface {
	GetString(section, option string, fallback ...string) (string, error)
	GetBool(section, option string, fallback ...bool) (bool, error)
	GetInt(section, option string, fallback ...int) (int, error)
	GetFloat(section, option string, fallback ...float64) (float64, error)
}
