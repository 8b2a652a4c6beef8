// Package entity models one side of a managed dotfile as an in-memory tree.
//
// An Entity is either a *File or a *Directory. A Directory is built by a
// single scan of the filesystem: it records its regular files and recurses
// into sub-directories, and keeps every problem it meets along the way as a
// scan error instead of failing. Once built, a tree is never re-scanned.
//
// Copying follows the same rule. Directory.CopyTo visits every child and
// returns the failures it collected; one broken file never stops its
// siblings from being copied.
//
// All filesystem access goes through types.FS, so the same trees can be built
// against the real disk, an in-memory filesystem, or a dry-run overlay.
package entity
