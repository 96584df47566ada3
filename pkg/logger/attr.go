package logger

import "log/slog"

// Error records a single error under the key "error". A nil error
// yields an empty attribute.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}
