// Package paths resolves platform-appropriate locations for the confstate
// config file.
//
// The settings store itself is agnostic to where its file lives; it only ever
// sees a final path or stream. This package supplies the default:
//
//   - Linux:   ~/.config/confstate/confstate.ini
//   - macOS:   ~/Library/Application Support/confstate/confstate.ini
//   - Windows: %AppData%\confstate\confstate.ini
//
// Set CONFSTATE_CONFIG_DIR to relocate the directory, or pass --config to any
// command to point at an explicit file.
package paths
