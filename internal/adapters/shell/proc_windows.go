//go:build windows

package shell

import (
	"errors"
	"os"
	"os/exec"
)

func shellCommand(line string) (string, []string) {
	return "cmd", []string{"/C", line}
}

func configure(_ *exec.Cmd) {}

func killTree(cmd *exec.Cmd) error {
	if cmd.Process == nil {
		return nil
	}
	err := cmd.Process.Kill()
	if err != nil && !errors.Is(err, os.ErrProcessDone) {
		return err
	}
	return nil
}
