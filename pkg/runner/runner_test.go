package runner

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/datawire/dlib/dlog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootPath(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "/vz/root/101", RootDir(101))
	assert.Equal(t, "/vz/root/101/etc/hosts", RootPath(101, "/etc/hosts"))
	assert.Equal(t, "/vz/root/101/etc/hosts", RootPath(101, "etc/hosts"))
}

func TestShellCommands(t *testing.T) {
	t.Parallel()
	testcases := map[string]struct {
		runner Runner
		exp    []string
	}{
		"local": {
			runner: Local{},
			exp:    []string{"bash"},
		},
		"vz": {
			runner: Vz{CTID: 7},
			exp:    []string{"vzctl", "enter", "7"},
		},
		"ssh": {
			runner: SSH{Host: "vz1.example.com"},
			exp:    []string{"ssh", "-p", "22", "vz1.example.com"},
		},
		"ssh-options": {
			runner: SSH{
				Host:    "vz1.example.com",
				Port:    2222,
				Options: []string{"-o", "StrictHostKeyChecking=no"},
			},
			exp: []string{"ssh", "-p", "2222", "-o", "StrictHostKeyChecking=no", "vz1.example.com"},
		},
		"sshvz": {
			runner: SSHVz{Host: SSH{Host: "vz1.example.com"}, CTID: 101},
			exp:    []string{"ssh", "-p", "22", "vz1.example.com", "vzctl", "enter", "101"},
		},
	}
	for name, tc := range testcases {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.exp, tc.runner.ShellCommand())
		})
	}
}

func TestSCPArgs(t *testing.T) {
	t.Parallel()
	r := SSH{Host: "h", Port: 2222, Options: []string{"-o", "LogLevel=quiet"}}
	assert.Equal(t, []string{"-P", "2222", "-o", "LogLevel=quiet"}, r.scpArgs())
	assert.Equal(t, "h:/tmp/x", r.remote("/tmp/x"))
}

func TestLocalRun(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.SkipNow()
	}
	ctx := dlog.NewTestContext(t, false)

	out, err := Local{}.Run(ctx, "echo hello\necho world")
	require.NoError(t, err)
	assert.Equal(t, "hello\nworld\n", string(out))
}

func TestLocalRunError(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.SkipNow()
	}
	ctx := dlog.NewTestContext(t, false)

	_, err := Local{}.Run(ctx, "echo oops >&2\nexit 3")
	require.Error(t, err)
	// the wrapped stderr should make it in to the message
	assert.Contains(t, err.Error(), "oops")
}

func TestLocalCopy(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.SkipNow()
	}
	ctx := dlog.NewTestContext(t, false)
	tmpdir := t.TempDir()

	srcDir := filepath.Join(tmpdir, "src")
	require.NoError(t, os.MkdirAll(filepath.Join(srcDir, "sub"), 0o777))
	require.NoError(t, os.WriteFile(filepath.Join(srcDir, "sub", "f.txt"), []byte("payload"), 0o666))

	destDir := filepath.Join(tmpdir, "dest")
	require.NoError(t, Local{}.CopyFrom(ctx, srcDir, destDir))

	bs, err := os.ReadFile(filepath.Join(destDir, "sub", "f.txt"))
	require.NoError(t, err)
	assert.Equal(t, "payload", string(bs))
}
