// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance that supports different environments
// (development vs production) for the batch commands.
//
// # Run correlation
//
// Batch runs process many shards and emit one line per shard with changes.
// The WithRunID helper attaches a generated run_id field to the logger, so
// all lines belonging to one invocation can be correlated after the fact.
//
// # Configuration
//
// The package supports configuration for:
//   - Level: debug, info, warn, error
//   - Format: console (CLI default) or json
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info", Format: "console"})
//	log = logger.WithRunID(log)
//	log.Info("merge started")
package logger
