package platform

import (
	"io"
	"os"
	"os/exec"
)

// BasePlatform provides common functionality shared across platforms
type BasePlatform struct{}

// NewBasePlatform creates a new base platform
func NewBasePlatform() *BasePlatform {
	return &BasePlatform{}
}

// Common OS operations that work the same across platforms
func (bp *BasePlatform) WriteFile(name string, data []byte, perm os.FileMode) error {
	return os.WriteFile(name, data, perm)
}

func (bp *BasePlatform) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func (bp *BasePlatform) Rename(oldpath, newpath string) error {
	return os.Rename(oldpath, newpath)
}

func (bp *BasePlatform) Remove(path string) error {
	return os.Remove(path)
}

func (bp *BasePlatform) Stat(name string) (os.FileInfo, error) {
	return os.Stat(name)
}

func (bp *BasePlatform) IsNotExist(err error) bool {
	return os.IsNotExist(err)
}

func (bp *BasePlatform) Geteuid() int {
	return os.Geteuid()
}

func (bp *BasePlatform) Getenv(key string) string {
	return os.Getenv(key)
}

// Common command operations
func (bp *BasePlatform) CreateCommand(name string, args ...string) Command {
	return &ExecCommand{cmd: exec.Command(name, args...)}
}

// ExecCommand wraps exec.Cmd to implement Command interface
type ExecCommand struct {
	cmd *exec.Cmd
}

func (e *ExecCommand) Run() error {
	return e.cmd.Run()
}

func (e *ExecCommand) SetStdout(w io.Writer) {
	e.cmd.Stdout = w
}

func (e *ExecCommand) SetStderr(w io.Writer) {
	e.cmd.Stderr = w
}
