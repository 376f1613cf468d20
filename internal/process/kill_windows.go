//go:build windows

package process

import (
	"os/exec"
	"strconv"
)

// KillTree kills the browser process and its children with taskkill
// (/F force, /T tree). Non-positive PIDs are ignored.
func KillTree(pid int) {
	if pid <= 0 {
		return
	}
	_ = exec.Command("taskkill", "/F", "/T", "/PID", strconv.Itoa(pid)).Run() // #nosec G204 -- pid is an int
}
