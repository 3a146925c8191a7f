// Package logging provides structured logging utilities for the hostcheck tooling.
//
// # Overview
//
// This package wraps the standard library slog package with project defaults so
// every component logs the same way: JSON to stderr, with module and version
// attached to each record and source locations on debug records.
//
// # Log Levels
//
// Supported log levels (case-insensitive):
//   - DEBUG: Detailed diagnostic information with source location
//   - INFO: General informational messages (default)
//   - WARN/WARNING: Warning messages for potentially problematic situations
//   - ERROR: Error messages for failures requiring attention
//
// # Usage
//
//	logging.SetDefaultStructuredLoggerWithLevel("hostcheck", version, "debug")
//	slog.Info("collecting host facts", "procRoot", "/proc")
//
// An empty level falls back to LOG_LEVEL.
//
// # Environment Configuration
//
// The LOG_LEVEL environment variable controls verbosity when no explicit level
// is given:
//
//	LOG_LEVEL=debug hostcheck check
//
// # Output Format
//
//	{
//	    "time": "2025-01-15T10:30:00.123Z",
//	    "level": "INFO",
//	    "msg": "host check registered",
//	    "module": "hostcheck",
//	    "version": "v1.0.0",
//	    "mode": "light"
//	}
package logging
