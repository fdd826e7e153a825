package runner

import (
	"context"
	"strconv"

	"github.com/datawire/dlib/dexec"
)

// SSH targets a remote machine through the `ssh` and `scp` binaries, so the
// user's ssh config, agent, and known-hosts handling all apply as usual.
type SSH struct {
	// Host is the hostname or IP of the target machine.
	Host string
	// Port is the sshd port; 0 means 22.
	Port int
	// Options are extra ssh flags, e.g.
	// []string{"-o", "StrictHostKeyChecking=no"}.  They are passed to scp
	// too.
	Options []string
}

var _ Runner = SSH{}

func (r SSH) port() int {
	if r.Port == 0 {
		return 22
	}
	return r.Port
}

func (r SSH) sshArgs() []string {
	return append([]string{"-p", strconv.Itoa(r.port())}, r.Options...)
}

// scp spells the port flag differently.
func (r SSH) scpArgs() []string {
	return append([]string{"-P", strconv.Itoa(r.port())}, r.Options...)
}

func (r SSH) remote(path string) string {
	return r.Host + ":" + path
}

func (r SSH) Run(ctx context.Context, script string) ([]byte, error) {
	args := append(r.sshArgs(), r.Host)
	return output(dexec.CommandContext(ctx, "ssh", args...), script)
}

func (r SSH) CopyFrom(ctx context.Context, src, dest string) error {
	args := append(r.scpArgs(), "-r", r.remote(src), dest)
	return dexec.CommandContext(ctx, "scp", args...).Run()
}

func (r SSH) CopyTo(ctx context.Context, src, dest string) error {
	args := append(r.scpArgs(), "-r", src, r.remote(dest))
	return dexec.CommandContext(ctx, "scp", args...).Run()
}

func (r SSH) Shell(ctx context.Context) error {
	return interactive(ctx, r.ShellCommand())
}

func (r SSH) ShellCommand() []string {
	return append(append([]string{"ssh"}, r.sshArgs()...), r.Host)
}
