// Package logger builds slog.Logger instances with a consistent setup:
// selectable output format (json for production, text for development),
// level control, and static attributes attached to every record.
package logger
