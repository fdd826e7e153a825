package runner

import (
	"context"

	"github.com/datawire/dlib/dexec"
)

// Local runs everything on the local machine.  That is obviously a trivial
// thing to want, but it lets code drive "here" with the same interface as
// every other target.
type Local struct{}

var _ Runner = Local{}

func (Local) Run(ctx context.Context, script string) ([]byte, error) {
	return output(dexec.CommandContext(ctx, "bash"), script)
}

func (Local) CopyFrom(ctx context.Context, src, dest string) error {
	return dexec.CommandContext(ctx, "cp", "-r", src, dest).Run()
}

func (Local) CopyTo(ctx context.Context, src, dest string) error {
	return dexec.CommandContext(ctx, "cp", "-r", src, dest).Run()
}

func (Local) Shell(ctx context.Context) error {
	return interactive(ctx, Local{}.ShellCommand())
}

func (Local) ShellCommand() []string {
	return []string{"bash"}
}
