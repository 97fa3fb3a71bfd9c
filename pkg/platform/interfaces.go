package platform

import (
	"io"
	"os"
)

//go:generate go run github.com/maxbrunsfeld/counterfeiter/v6 -generate

// Platform provides a unified interface for the platform-specific operations
// the traffic generator performs: file manipulation for DNS state and
// execution of network-configuration commands.
//
//counterfeiter:generate . Platform
type Platform interface {
	OSOperations
	CommandFactory
}

// OSOperations defines file system and OS-level operations
//
//counterfeiter:generate . OSOperations
type OSOperations interface {
	// File operations
	WriteFile(name string, data []byte, perm os.FileMode) error
	ReadFile(path string) ([]byte, error)
	Rename(oldpath, newpath string) error
	Remove(path string) error
	Stat(name string) (os.FileInfo, error)
	IsNotExist(err error) bool

	// Process info
	Geteuid() int
	Getenv(key string) string
}

// CommandFactory creates command executions
//
//counterfeiter:generate . CommandFactory
type CommandFactory interface {
	CreateCommand(name string, args ...string) Command
}

// Command represents an executing command
//
//counterfeiter:generate . Command
type Command interface {
	Run() error
	SetStdout(w io.Writer)
	SetStderr(w io.Writer)
}
