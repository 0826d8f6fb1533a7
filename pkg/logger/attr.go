package logger

import "log/slog"

// Component tags a record with the emitting subsystem name.
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// UserID tags a record with the acting user's identifier.
func UserID(id string) slog.Attr {
	return slog.String("user_id", id)
}

// Error tags a record with an error value.
func Error(err error) slog.Attr {
	return slog.Any("error", err)
}
