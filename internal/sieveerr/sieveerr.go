// Package sieveerr defines the sentinel errors the engine can return,
// wrapped with github.com/pkg/errors so callers retain a stack trace
// back to the failure site without every package importing errors
// directly.
package sieveerr

import "github.com/pkg/errors"

// ErrInvalidRange is returned when stop exceeds MaxStop. start > stop
// is explicitly NOT an error; callers special-case it before reaching
// any sieve construction.
var ErrInvalidRange = errors.New("primesieve: invalid range")

// ErrOutOfMemory is the error kind for a failed bucket slab or sieve
// segment allocation. No function in this module returns it.
var ErrOutOfMemory = errors.New("primesieve: bucket allocation failed")

// ErrUserCallback is returned when a user-supplied callback panics
// during CallbackPrimes or ParallelCallbackPrimes.
var ErrUserCallback = errors.New("primesieve: user callback failed")

// Wrap attaches msg as context to err using pkg/errors, or returns nil
// if err is nil.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return errors.Wrap(err, msg)
}

// Cause unwraps err to the original sentinel, if any, via pkg/errors.
func Cause(err error) error {
	return errors.Cause(err)
}
