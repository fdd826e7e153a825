package vzlist_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stroxler/vzutil/pkg/runner"
	"github.com/stroxler/vzutil/pkg/testutil"
	"github.com/stroxler/vzutil/pkg/vzlist"
)

// fakeRunner returns canned output and records the script it was asked to
// run.
type fakeRunner struct {
	out    string
	err    error
	script string
}

var _ runner.Runner = (*fakeRunner)(nil)

func (r *fakeRunner) Run(_ context.Context, script string) ([]byte, error) {
	r.script = script
	return []byte(r.out), r.err
}
func (r *fakeRunner) CopyFrom(context.Context, string, string) error { return nil }
func (r *fakeRunner) CopyTo(context.Context, string, string) error   { return nil }
func (r *fakeRunner) Shell(context.Context) error                    { return nil }
func (r *fakeRunner) ShellCommand() []string                         { return nil }

const sampleOutput = `[
  {
    "ctid": 101,
    "private": "/vz/private/101",
    "root": "/vz/root/101",
    "hostname": "web1.example.com",
    "name": "web1",
    "description": null,
    "ostemplate": "centos-7-x86_64",
    "ip": ["10.0.0.101"],
    "status": "running",
    "layout": "ploop"
  },
  {
    "ctid": 102,
    "private": "/vz/private/102",
    "root": "/vz/root/102",
    "hostname": "db.example.com",
    "name": "postgres",
    "description": null,
    "ostemplate": "debian-9.0-x86_64",
    "ip": ["10.0.0.102", "fd00::102"],
    "status": "stopped",
    "layout": "simfs"
  }
]`

func TestList(t *testing.T) {
	t.Parallel()
	fake := &fakeRunner{out: sampleOutput}

	cts, err := vzlist.List(context.Background(), fake)
	require.NoError(t, err)
	assert.Equal(t, "vzlist -a -j", fake.script)

	exp := []vzlist.Container{
		{
			CTID:       101,
			Name:       "web1",
			Hostname:   "web1.example.com",
			Status:     "running",
			IPs:        []string{"10.0.0.101"},
			OSTemplate: "centos-7-x86_64",
			Layout:     "ploop",
			Root:       "/vz/root/101",
			Private:    "/vz/private/101",
		},
		{
			CTID:       102,
			Name:       "postgres",
			Hostname:   "db.example.com",
			Status:     "stopped",
			IPs:        []string{"10.0.0.102", "fd00::102"},
			OSTemplate: "debian-9.0-x86_64",
			Layout:     "simfs",
			Root:       "/vz/root/102",
			Private:    "/vz/private/102",
		},
	}
	testutil.AssertEqualDump(t, exp, cts)
}

func TestListBadJSON(t *testing.T) {
	t.Parallel()
	fake := &fakeRunner{out: "vzlist: Container(s) not found\n"}

	_, err := vzlist.List(context.Background(), fake)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing vzlist output")
}

func TestFind(t *testing.T) {
	t.Parallel()
	fake := &fakeRunner{out: sampleOutput}
	cts, err := vzlist.List(context.Background(), fake)
	require.NoError(t, err)

	ct, ok := vzlist.Find(cts, "101")
	require.True(t, ok)
	assert.Equal(t, "web1", ct.Name)

	ct, ok = vzlist.Find(cts, "postgres")
	require.True(t, ok)
	assert.Equal(t, 102, ct.CTID)

	_, ok = vzlist.Find(cts, "999")
	assert.False(t, ok)

	_, ok = vzlist.Find(cts, "nope")
	assert.False(t, ok)
}
