package config

import "log/slog"

// LogLevel maps the configured verbosity to a slog level. Errors are always
// surfaced; warnings are suppressed only at the most restrictive level;
// informational detail is opt-in.
func (c *Config) LogLevel() slog.Level {
	switch c.Verbosity {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
