// Package changelog implements the relnote generation pipeline.
//
// This package implements:
//   - commit classification against a package's commit convention
//   - pull-request authorship resolution with a process-wide cache
//   - markdown section composition per release
//   - per-package orchestration in latest and full-history modes
//
// The git-facing primitives (tag ordering, release windows, commit walking)
// live in internal/git; this package consumes their output and renders one
// markdown document per package.
package changelog
