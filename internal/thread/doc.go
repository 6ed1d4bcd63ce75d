// Package thread identifies the calling OS thread.
//
// On Linux and Windows the id is the kernel thread id, which is only
// meaningful for a goroutine that has called runtime.LockOSThread. Other
// platforms fall back to the goroutine id parsed from the runtime stack
// header, which is stable for the lifetime of the goroutine.
package thread
