// Package flock provides cross-platform file locking utilities.
//
// Attestation files are append-only and may be written by concurrent
// integrityforge processes (CI jobs attesting artifacts in parallel). An
// exclusive lock on the file descriptor serializes appends so records from
// different writers never interleave mid-line.
//
// Usage:
//
//	file, _ := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0600)
//	if err := flock.ExclusiveWait(file.Fd()); err != nil {
//	    // Lock not acquired
//	}
//	defer flock.Unlock(file.Fd())
package flock
