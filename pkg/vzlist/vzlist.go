// Package vzlist reads container listings.  The listing runs through a
// Runner, so the same code inspects the local host or any host reachable
// over ssh.
package vzlist

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/stroxler/vzutil/pkg/runner"
)

// Container is one record of `vzlist -j` output.  Only the fields this tool
// consumes are decoded; vzlist emits many more.
type Container struct {
	CTID       int      `json:"ctid"`
	Name       string   `json:"name"`
	Hostname   string   `json:"hostname"`
	Status     string   `json:"status"`
	IPs        []string `json:"ip"`
	OSTemplate string   `json:"ostemplate"`
	Layout     string   `json:"layout"`
	Root       string   `json:"root"`
	Private    string   `json:"private"`
}

// List returns every container on the runner's target, running or not.
func List(ctx context.Context, r runner.Runner) ([]Container, error) {
	out, err := r.Run(ctx, "vzlist -a -j")
	if err != nil {
		return nil, fmt.Errorf("listing containers: %w", err)
	}
	var cts []Container
	if err := json.Unmarshal(out, &cts); err != nil {
		return nil, fmt.Errorf("parsing vzlist output: %w", err)
	}
	return cts, nil
}

// Find looks a container up by CTID (if ref is numeric) or by name.
func Find(cts []Container, ref string) (Container, bool) {
	if ctid, err := strconv.Atoi(ref); err == nil {
		for _, ct := range cts {
			if ct.CTID == ctid {
				return ct, true
			}
		}
		return Container{}, false
	}
	for _, ct := range cts {
		if ct.Name == ref {
			return ct, true
		}
	}
	return Container{}, false
}
