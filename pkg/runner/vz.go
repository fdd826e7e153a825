package runner

import (
	"context"
	"strconv"

	"github.com/datawire/dlib/dexec"

	"github.com/stroxler/vzutil/pkg/shellwrap"
)

// Vz targets an OpenVZ container on the local machine.
type Vz struct {
	CTID int
}

var _ Runner = Vz{}

// Run executes the script with `vzctl exec2`.  exec2 hands the script a
// bare environment, so the script gets wrapped to run under a root login
// shell first.
func (r Vz) Run(ctx context.Context, script string) ([]byte, error) {
	cmd := dexec.CommandContext(ctx, "vzctl", "exec2", strconv.Itoa(r.CTID), "bash")
	return output(cmd, shellwrap.WrapInEnv(script))
}

// CopyFrom copies straight out of the container's root filesystem on the
// host; no need to involve vzctl for file transfer.
func (r Vz) CopyFrom(ctx context.Context, src, dest string) error {
	return dexec.CommandContext(ctx, "cp", "-r", RootPath(r.CTID, src), dest).Run()
}

func (r Vz) CopyTo(ctx context.Context, src, dest string) error {
	return dexec.CommandContext(ctx, "cp", "-r", src, RootPath(r.CTID, dest)).Run()
}

func (r Vz) Shell(ctx context.Context) error {
	return interactive(ctx, r.ShellCommand())
}

func (r Vz) ShellCommand() []string {
	return []string{"vzctl", "enter", strconv.Itoa(r.CTID)}
}
