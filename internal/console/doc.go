// Package console provides the reporter used for user-facing progress and
// warning output. Components take a Logger as an explicit dependency rather
// than writing to a process-wide destination.
package console
