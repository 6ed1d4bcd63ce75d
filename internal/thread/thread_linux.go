//go:build linux

package thread

import "golang.org/x/sys/unix"

// ID returns the kernel thread id of the caller.
func ID() uint64 {
	return uint64(unix.Gettid()) //nolint:gosec // tids are positive
}
