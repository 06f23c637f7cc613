// Package gitstatus builds normalized status records for git working trees.
//
// Service fans out four git queries per repository (current branch, short
// status, ahead/behind counts against the upstream, and the diff summary),
// parses each response into a typed field, and derives the health flags
// reported by GitStatus. CommandBuilder wires the status Cobra command and
// the renderers in report.go print the records as a table, JSON, YAML, or CSV.
package gitstatus
