package cluster_test

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/datawire/dlib/dlog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stroxler/vzutil/pkg/cluster"
	"github.com/stroxler/vzutil/pkg/runner"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	filename := filepath.Join(t.TempDir(), "cluster.yml")
	require.NoError(t, os.WriteFile(filename, []byte(content), 0o666))
	return filename
}

func TestLoad(t *testing.T) {
	t.Parallel()
	filename := writeConfig(t, `
targets:
  web1:
    host: vz1.example.com
    port: 2222
    ssh_options: ["-o", "StrictHostKeyChecking=no"]
    container: 101
  host2:
    host: vz2.example.com
  here: {}
`)

	cfg, err := cluster.Load(filename)
	require.NoError(t, err)
	assert.Equal(t, []string{"here", "host2", "web1"}, cfg.Names())

	web1, err := cfg.Lookup("web1")
	require.NoError(t, err)
	assert.Equal(t, "vz1.example.com", web1.Host)
	assert.Equal(t, 2222, web1.Port)
	require.NotNil(t, web1.Container)
	assert.Equal(t, 101, web1.Container.IntValue())

	_, err = cfg.Lookup("nope")
	require.Error(t, err)
	// the error should name the valid targets
	assert.Contains(t, err.Error(), "web1")
}

func TestLoadUnknownField(t *testing.T) {
	t.Parallel()
	filename := writeConfig(t, `
targets:
  web1:
    hostname: vz1.example.com
`)

	_, err := cluster.Load(filename)
	require.Error(t, err)
}

func TestRunner(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	testcases := map[string]struct {
		yaml string
		exp  runner.Runner
	}{
		"local": {
			yaml: `targets: {tgt: {}}`,
			exp:  runner.Local{},
		},
		"vz": {
			yaml: `targets: {tgt: {container: 7}}`,
			exp:  runner.Vz{CTID: 7},
		},
		"ssh": {
			yaml: `targets: {tgt: {host: h, port: 2222, ssh_options: [-o, LogLevel=quiet]}}`,
			exp: runner.SSH{
				Host:    "h",
				Port:    2222,
				Options: []string{"-o", "LogLevel=quiet"},
			},
		},
		"sshvz": {
			yaml: `targets: {tgt: {host: h, container: 101}}`,
			exp: runner.SSHVz{
				Host: runner.SSH{Host: "h"},
				CTID: 101,
			},
		},
	}
	for name, tc := range testcases {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			cfg, err := cluster.Load(writeConfig(t, tc.yaml))
			require.NoError(t, err)
			tgt, err := cfg.Lookup("tgt")
			require.NoError(t, err)
			r, err := tgt.Runner(ctx)
			require.NoError(t, err)
			assert.Equal(t, tc.exp, r)
		})
	}
}

// fakeVzlist puts a vzlist stand-in on PATH that answers with the given
// containers, so that name resolution can run against the Local host
// runner.
func fakeVzlist(t *testing.T, containersJSON string) {
	t.Helper()
	bindir := t.TempDir()
	script := "#!/bin/sh\ncat << 'EOF'\n" + containersJSON + "\nEOF\n"
	require.NoError(t, os.WriteFile(filepath.Join(bindir, "vzlist"), []byte(script), 0o755))
	t.Setenv("PATH", bindir+string(os.PathListSeparator)+os.Getenv("PATH"))
}

func TestRunnerContainerName(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.SkipNow()
	}
	ctx := dlog.NewTestContext(t, false)
	fakeVzlist(t, `[
  {"ctid": 101, "name": "web1", "status": "running"},
  {"ctid": 102, "name": "postgres", "status": "stopped"}
]`)

	cfg, err := cluster.Load(writeConfig(t, `targets: {tgt: {container: postgres}}`))
	require.NoError(t, err)
	tgt, err := cfg.Lookup("tgt")
	require.NoError(t, err)

	r, err := tgt.Runner(ctx)
	require.NoError(t, err)
	assert.Equal(t, runner.Vz{CTID: 102}, r)
}

func TestRunnerContainerNameMissing(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.SkipNow()
	}
	ctx := dlog.NewTestContext(t, false)
	fakeVzlist(t, `[{"ctid": 101, "name": "web1", "status": "running"}]`)

	cfg, err := cluster.Load(writeConfig(t, `targets: {tgt: {container: nosuch}}`))
	require.NoError(t, err)
	tgt, err := cfg.Lookup("tgt")
	require.NoError(t, err)

	_, err = tgt.Runner(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `no container named "nosuch" on the local machine`)
}

func TestHostRunner(t *testing.T) {
	t.Parallel()

	// host-level tooling must land on the host even when the target names
	// a container
	tgt := targetFromYAML(t, `targets: {tgt: {host: h, container: 101}}`)
	assert.Equal(t, runner.SSH{Host: "h"}, tgt.HostRunner())

	tgt = targetFromYAML(t, `targets: {tgt: {container: 101}}`)
	assert.Equal(t, runner.Local{}, tgt.HostRunner())
}

func targetFromYAML(t *testing.T, config string) cluster.Target {
	t.Helper()
	cfg, err := cluster.Load(writeConfig(t, config))
	require.NoError(t, err)
	tgt, err := cfg.Lookup("tgt")
	require.NoError(t, err)
	return tgt
}
