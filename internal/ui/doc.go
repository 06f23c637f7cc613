// Package ui renders git command lifecycle events as human-readable console
// log lines while structured telemetry keeps flowing through zap.
package ui
