// Package logger provides leveled logging for confstate CLI commands.
//
// The logger supports multiple verbosity levels controlled by command-line
// flags. Output is formatted with semantic prefixes and colors.
//
// # Verbosity Levels
//
// Logging behavior is controlled by two flags:
//
//   - --verbose: Shows info messages
//   - --debug: Shows all messages including debug details
//
// Without flags, only warnings and errors are shown.
//
// # Log Methods
//
//	Logger.Infof()           // Shown with --verbose
//	Logger.Debugf()          // Shown only with --debug
//	Logger.Warnf()           // Always shown
//	Logger.Errorf()          // Always shown
//	Logger.ErrorfAndReturn() // Logs like Errorf and returns the error
//
// # Usage
//
// Create a logger with the desired verbosity:
//
//	log := Logger{Verbose: verbose, Debug: debug}
//	log.Infof("Loaded %d sections", count)
//
// Commands create a logger in their PersistentPreRun and pass it to internal
// functions. The settings store accepts a Logger as an explicit field rather
// than reaching for package-level state, so library consumers control where
// diagnostics go.
package logger
