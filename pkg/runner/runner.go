// Package runner runs shell scripts against the four kinds of targets in an
// OpenVZ cluster: the local machine, a local container, a remote machine,
// and a container on a remote machine.
//
// All four runners share one interface, so code that drives a cluster does
// not care where a target actually lives.  Scripts always travel on stdin
// (never on the command line), so a multi-line script works unmodified
// against every target.
package runner

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/datawire/dlib/dexec"
)

// A Runner executes scripts on, and copies files to and from, a single
// target machine or container.
type Runner interface {
	// Run executes a shell script (possibly many lines) on the target and
	// returns its stdout.
	Run(ctx context.Context, script string) ([]byte, error)

	// CopyFrom recursively copies src on the target to dest on the local
	// machine.
	CopyFrom(ctx context.Context, src, dest string) error

	// CopyTo recursively copies src on the local machine to dest on the
	// target.
	CopyTo(ctx context.Context, src, dest string) error

	// Shell runs an interactive shell on the target, wired to the current
	// process's stdio.  It blocks until the shell exits.
	Shell(ctx context.Context) error

	// ShellCommand returns the argv that Shell runs.
	ShellCommand() []string
}

// RootDir returns the host-side directory holding a container's root
// filesystem.
func RootDir(ctid int) string {
	return fmt.Sprintf("/vz/root/%d", ctid)
}

// RootPath maps a path inside a container to the corresponding host-side
// path.
func RootPath(ctid int, path string) string {
	return RootDir(ctid) + "/" + strings.TrimPrefix(path, "/")
}

// output feeds script to cmd on stdin and returns cmd's stdout, folding any
// captured stderr in to the error on failure.
func output(cmd *dexec.Cmd, script string) ([]byte, error) {
	cmd.Stdin = strings.NewReader(script)
	bs, err := cmd.Output()
	if err != nil {
		var exitErr *dexec.ExitError
		if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
			stderr := strings.TrimRight(string(exitErr.Stderr), "\n")
			err = fmt.Errorf("%w:\n > %s", err,
				strings.Join(strings.Split(stderr, "\n"), "\n > "))
		}
		return nil, err
	}
	return bs, nil
}

// interactive runs argv attached to the current terminal.
func interactive(ctx context.Context, argv []string) error {
	cmd := dexec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.DisableLogging = true
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
