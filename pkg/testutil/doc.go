// Package testutil provides helpers shared by the dotsync test suites:
// real temp-tree builders and assertions, an in-memory types.FS, and
// FaultFS, a types.FS wrapper that fails chosen operations on chosen paths.
//
// Permission bits do not restrict root, so tests that need an unreadable
// directory or an unwritable destination use FaultFS instead of chmod.
package testutil
