package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"
	"k8s.io/apimachinery/pkg/util/intstr"

	"github.com/stroxler/vzutil/pkg/cluster"
	"github.com/stroxler/vzutil/pkg/runner"
)

// targetFlags selects what a command runs against: named targets from the
// cluster config, or one ad-hoc target spelled out with --host/--ct.
type targetFlags struct {
	Config  string
	Targets []string

	Host       string
	Port       int
	SSHOptions []string
	Container  string
}

func (f *targetFlags) register(flags *pflag.FlagSet) {
	flags.StringVar(&f.Config, "config", defaultConfigFile(),
		"Cluster config `FILE` naming targets")
	flags.StringArrayVarP(&f.Targets, "target", "t", nil,
		"Named target from the cluster config")
	flags.StringVar(&f.Host, "host", "",
		"Ad-hoc target: hostname or IP, empty for the local machine")
	flags.IntVar(&f.Port, "port", 0,
		"Ad-hoc target: ssh port (0 means 22)")
	flags.StringArrayVarP(&f.SSHOptions, "ssh-option", "e", nil,
		"Ad-hoc target: extra `FLAG` to pass to ssh and scp (repeatable)")
	flags.StringVar(&f.Container, "ct", "",
		"Ad-hoc target: container CTID or name")
}

func defaultConfigFile() string {
	if file := os.Getenv("VZUTIL_CONFIG"); file != "" {
		return file
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "vzutil", "cluster.yml")
}

// adHoc builds a Target from the ad-hoc flags.
func (f *targetFlags) adHoc() cluster.Target {
	tgt := cluster.Target{
		Host:       f.Host,
		Port:       f.Port,
		SSHOptions: f.SSHOptions,
	}
	if f.Container != "" {
		ct := intstr.Parse(f.Container)
		tgt.Container = &ct
	}
	return tgt
}

// resolve returns the selected targets keyed by name, plus the names in the
// order they were given.  With no --target flags the single ad-hoc target
// is returned under the empty name.
func (f *targetFlags) resolve() (map[string]cluster.Target, []string, error) {
	if len(f.Targets) == 0 {
		return map[string]cluster.Target{"": f.adHoc()}, []string{""}, nil
	}
	if f.Host != "" || f.Container != "" || f.Port != 0 || len(f.SSHOptions) > 0 {
		return nil, nil, fmt.Errorf("--target cannot be combined with --host, --port, --ssh-option, or --ct")
	}
	cfg, err := cluster.Load(f.Config)
	if err != nil {
		return nil, nil, err
	}
	targets := make(map[string]cluster.Target, len(f.Targets))
	for _, name := range f.Targets {
		tgt, err := cfg.Lookup(name)
		if err != nil {
			return nil, nil, err
		}
		targets[name] = tgt
	}
	return targets, f.Targets, nil
}

// resolveOneTarget is resolve for the commands that take exactly one
// target.
func (f *targetFlags) resolveOneTarget() (cluster.Target, error) {
	if len(f.Targets) > 1 {
		return cluster.Target{}, fmt.Errorf("this command takes a single target")
	}
	targets, names, err := f.resolve()
	if err != nil {
		return cluster.Target{}, err
	}
	return targets[names[0]], nil
}

// resolveOne is resolveOneTarget taken all the way to a runner.
func (f *targetFlags) resolveOne(ctx context.Context) (runner.Runner, error) {
	tgt, err := f.resolveOneTarget()
	if err != nil {
		return nil, err
	}
	return tgt.Runner(ctx)
}
