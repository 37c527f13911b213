//go:build !windows

package shell

import (
	"errors"
	"os/exec"
	"syscall"
)

func shellCommand(line string) (string, []string) {
	return "sh", []string{"-c", line}
}

// configure places the child in its own process group so the whole tree can
// be signalled at once.
func configure(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}

func killTree(cmd *exec.Cmd) error {
	if cmd.Process == nil {
		return nil
	}
	err := syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	if err != nil && !errors.Is(err, syscall.ESRCH) {
		return err
	}
	return nil
}
