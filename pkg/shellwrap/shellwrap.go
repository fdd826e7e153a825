// Package shellwrap builds the heredoc wrappers that carry shell scripts in
// to login environments and OpenVZ containers.
//
// Scripts travel on stdin, so each wrapper nests the script in a quoted
// heredoc rather than trying to quote it for a command line.
package shellwrap

import (
	"fmt"
)

const eofMark = "_EOF"

// WrapInEnv wraps a script so that it runs under a root login shell.
// `vzctl exec2` (and ssh without a pty) give commands a bare environment;
// going through `su - root` sources the usual profile files first.
func WrapInEnv(script string) string {
	return wrapInEnv(script, eofMark)
}

func wrapInEnv(script, eof string) string {
	return fmt.Sprintf("\nsu - root -c bash << \\%s\n%s\n%s\n", eof, script, eof)
}

// WrapInBash wraps a script in a plain `bash` heredoc.
func WrapInBash(script string) string {
	return fmt.Sprintf("bash << \\%s\n%s\n%s\n", eofMark, script, eofMark)
}

// WrapInBashEnv is WrapInEnv nested in a `bash` heredoc.  The two heredocs
// need distinct end markers so that the outer one doesn't terminate at the
// inner one's marker; the outer marker is shared with WrapInVz.
func WrapInBashEnv(script string) string {
	inner := wrapInEnv(script, eofMark+"_ENV")
	eof := eofMark + "_VZ"
	return fmt.Sprintf("bash << \\%s\n%s\n%s\n", eof, inner, eof)
}

// WrapInVz wraps a script in a `vzctl exec2 CTID bash` heredoc, with the env
// wrapper inside it so that the script sees a root login environment in the
// container.
func WrapInVz(script string, ctid int) string {
	inner := wrapInEnv(script, eofMark+"_ENV")
	eof := eofMark + "_VZ"
	return fmt.Sprintf("vzctl exec2 %d bash << \\%s\n%s\n%s\n", ctid, eof, inner, eof)
}
