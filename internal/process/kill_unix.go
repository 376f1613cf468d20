//go:build !windows

package process

import "syscall"

// KillTree kills the browser process and its helpers by sending SIGKILL to
// the process group. Non-positive PIDs are ignored.
func KillTree(pid int) {
	if pid <= 0 {
		return
	}
	// Best-effort; launcher.Kill runs afterwards as a fallback.
	_ = syscall.Kill(-pid, syscall.SIGKILL)
}
