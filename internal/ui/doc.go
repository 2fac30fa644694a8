// Package ui provides semantic text formatting for CLI output.
//
// This package defines formatters for different types of content (sections,
// values, paths, errors) that render appropriately based on terminal
// capabilities. When colors are available, content is colorized. When
// NO_COLOR is set or the terminal doesn't support colors, text-based
// decorations (backticks, quotes) are used instead.
//
// # Semantic Formatters
//
// Use the appropriate formatter for the content type:
//
//	ui.Code.Sprint("confstate init")        // Commands and code
//	ui.Path.Sprint("~/.config/confstate")   // File paths
//	ui.Section.Sprint("[server]")           // Section names
//	ui.Value.Sprint("8080")                 // Option values
//	ui.Success.Sprint("✓")                  // Success indicators
//	ui.Error.Sprint("✗")                    // Error indicators
//	ui.Info.Sprint("→")                     // Informational hints
//	ui.Muted.Sprint("optional")             // De-emphasized text
//
// # Color Behavior
//
// Colors are disabled when:
//   - NO_COLOR environment variable is set (any value)
//   - Terminal doesn't support colors (TERM=dumb, not a TTY)
//
// When colors are disabled, formatters apply text decorations:
//   - Code: `backticks`
//   - Value: 'single quotes'
//   - Muted: (parentheses)
//   - Others: no decoration (self-evident from context)
package ui
