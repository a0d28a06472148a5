// Package logging builds the process logger: JSON records through log/slog,
// written to the given writer or to a size-rotated file.
package logging
