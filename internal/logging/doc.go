// Package logging provides structured logging for rzchroma.
//
// This package wraps zap with convenience functions for the logging
// patterns used throughout the driver: lifecycle events, transfer results,
// and raw frame dumps.
//
// # Log Levels
//
// The package supports standard log levels:
//   - Debug: raw frame hex dumps, state transitions
//   - Info: attach/detach, transfers, server requests
//   - Warn: swallowed tear-down failures
//   - Error: transfer and bring-up failures
//
// # Configuration
//
// CLI commands are silent by default; set RZCHROMA_LOG_LEVEL to enable
// output, or call Initialize with an explicit level:
//
//	if err := logging.Initialize("debug"); err != nil {
//	    log.Fatal(err)
//	}
//	defer logging.Sync()
//
// # Thread Safety
//
// All logging functions are safe for concurrent use.
package logging
