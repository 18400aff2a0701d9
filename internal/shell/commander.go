package shell

import (
	"errors"
	"os/exec"
	"strings"
)

type Commander interface {
	Launch(execLine string) error
}

type ExecCommander struct{}

// Launch starts an application detached; the launcher never waits on it.
func (e *ExecCommander) Launch(execLine string) error {
	fields := strings.Fields(execLine)
	if len(fields) == 0 {
		return errors.New("empty exec line")
	}
	cmd := exec.Command(fields[0], fields[1:]...)
	if err := cmd.Start(); err != nil {
		return err
	}
	return cmd.Process.Release()
}
