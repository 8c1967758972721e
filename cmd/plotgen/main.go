// Command plotgen runs the procedural geometry catalog from the command
// line and writes the generated paths as JSON.
package main

import (
	"errors"
	"fmt"
	"os"
)

// Exit codes.
const (
	exitOK     = 0
	exitUser   = 1
	exitSystem = 2
)

// userError marks failures caused by invalid input rather than the
// environment.
type userError struct{ err error }

func (e userError) Error() string { return e.err.Error() }
func (e userError) Unwrap() error { return e.err }

func userErrorf(format string, args ...any) error {
	return userError{fmt.Errorf(format, args...)}
}

// exitCode maps an error returned by the root command to a process status.
func exitCode(err error) int {
	if err == nil {
		return exitOK
	}
	var ue userError
	if errors.As(err, &ue) {
		return exitUser
	}
	return exitSystem
}

func main() {
	cmd := newRootCmd(os.Stdout, os.Stderr)
	err := cmd.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	os.Exit(exitCode(err))
}
