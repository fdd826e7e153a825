package runner

import (
	"context"
	"strconv"

	"github.com/stroxler/vzutil/pkg/shellwrap"
)

// SSHVz targets an OpenVZ container on a remote machine, going through the
// host's sshd rather than expecting one inside the container.
type SSHVz struct {
	Host SSH
	CTID int
}

var _ Runner = SSHVz{}

func (r SSHVz) Run(ctx context.Context, script string) ([]byte, error) {
	return r.Host.Run(ctx, shellwrap.WrapInVz(script, r.CTID))
}

// CopyFrom copies against the container's root filesystem as seen from the
// host, so plain scp does the transfer.
func (r SSHVz) CopyFrom(ctx context.Context, src, dest string) error {
	return r.Host.CopyFrom(ctx, RootPath(r.CTID, src), dest)
}

func (r SSHVz) CopyTo(ctx context.Context, src, dest string) error {
	return r.Host.CopyTo(ctx, src, RootPath(r.CTID, dest))
}

func (r SSHVz) Shell(ctx context.Context) error {
	return interactive(ctx, r.ShellCommand())
}

func (r SSHVz) ShellCommand() []string {
	return append(r.Host.ShellCommand(), "vzctl", "enter", strconv.Itoa(r.CTID))
}
