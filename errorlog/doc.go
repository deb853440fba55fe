// Package errorlog implements a process-wide error channel: a single
// *logrus.Logger, wrapped with a custom hook that mirrors every log
// entry into an in-memory ring buffer and, optionally, hands it to a
// caller-supplied callback. An on/off toggle and a re-entrancy guard
// protect the one piece of global mutable state this module owns
// outside the holiday cache.
//
// The on-disk log path is resolved from the CDSMODEL_LOG_PATH
// environment variable, loaded through github.com/joho/godotenv: shell
// environment wins, and the .env file only fills gaps.
package errorlog
