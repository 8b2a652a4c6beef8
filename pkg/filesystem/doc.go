// Package filesystem provides filesystem implementations for dotsync.
//
// All implementations are backed by afero and satisfy types.FS:
//   - NewOS operates on the real filesystem
//   - NewMemory is an isolated in-memory filesystem for tests
//   - NewDryRun reads the real filesystem but keeps every write in an
//     in-memory overlay, so a full sync can be previewed without side effects
package filesystem
