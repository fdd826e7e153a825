// Package cluster maps the named targets of a cluster config file to
// runners.
package cluster

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"k8s.io/apimachinery/pkg/util/intstr"
	"sigs.k8s.io/yaml"

	"github.com/stroxler/vzutil/pkg/runner"
	"github.com/stroxler/vzutil/pkg/vzlist"
)

// A Target names one machine or container that scripts can run against.
// With neither a host nor a container set, it is the local machine.
type Target struct {
	// Host is the hostname or IP of the machine; empty means the local
	// machine.
	Host string `json:"host,omitempty"`
	// Port is the sshd port on Host (default 22).
	Port int `json:"port,omitempty"`
	// SSHOptions are extra ssh flags, e.g. [-o, StrictHostKeyChecking=no].
	// scp gets them too.
	SSHOptions []string `json:"ssh_options,omitempty"`
	// Container selects an OpenVZ container on the machine, either by
	// numeric CTID or by name.  Names cost a vzlist round-trip to resolve.
	Container *intstr.IntOrString `json:"container,omitempty"`
}

// Config is the top level of a cluster config file:
//
//	targets:
//	  web1: {host: vz1.example.com, port: 2222, container: 101}
//	  db: {host: vz1.example.com, container: postgres}
//	  host2: {host: vz2.example.com}
//	  here: {}
type Config struct {
	Targets map[string]Target `json:"targets"`
}

// Load reads a cluster config file.  Unknown fields are an error, so that a
// typo doesn't silently turn a container target in to a host target.
func Load(filename string) (*Config, error) {
	bs, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(bs, &cfg, yaml.DisallowUnknownFields); err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return &cfg, nil
}

// Names returns the configured target names, sorted.
func (cfg *Config) Names() []string {
	names := make([]string, 0, len(cfg.Targets))
	for name := range cfg.Targets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (cfg *Config) Lookup(name string) (Target, error) {
	tgt, ok := cfg.Targets[name]
	if !ok {
		return Target{}, fmt.Errorf("no target named %q (have: %s)",
			name, strings.Join(cfg.Names(), ", "))
	}
	return tgt, nil
}

// HostRunner returns the runner for the machine itself, ignoring any
// container.  Host-level tooling (vzlist and friends) goes through this even
// when the target names a container, since those commands only exist on the
// host.
func (t Target) HostRunner() runner.Runner {
	if t.Host == "" {
		return runner.Local{}
	}
	return runner.SSH{Host: t.Host, Port: t.Port, Options: t.SSHOptions}
}

func (t Target) hostLabel() string {
	if t.Host == "" {
		return "the local machine"
	}
	return t.Host
}

// Runner builds the runner for the target.  ctx is only exercised when a
// container name needs resolving.
func (t Target) Runner(ctx context.Context) (runner.Runner, error) {
	if t.Container == nil {
		return t.HostRunner(), nil
	}
	ctid, err := t.ctid(ctx)
	if err != nil {
		return nil, err
	}
	if t.Host == "" {
		return runner.Vz{CTID: ctid}, nil
	}
	return runner.SSHVz{
		Host: runner.SSH{Host: t.Host, Port: t.Port, Options: t.SSHOptions},
		CTID: ctid,
	}, nil
}

func (t Target) ctid(ctx context.Context) (int, error) {
	if t.Container.Type == intstr.Int {
		return t.Container.IntValue(), nil
	}
	cts, err := vzlist.List(ctx, t.HostRunner())
	if err != nil {
		return 0, err
	}
	ct, ok := vzlist.Find(cts, t.Container.StrVal)
	if !ok {
		return 0, fmt.Errorf("no container named %q on %s", t.Container.StrVal, t.hostLabel())
	}
	return ct.CTID, nil
}
