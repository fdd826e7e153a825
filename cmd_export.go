package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/stroxler/vzutil/pkg/cliutil"
	"github.com/stroxler/vzutil/pkg/export"
)

func init() {
	cmd := &cobra.Command{
		Use:   "export [flags] CTID >OUT_LAYERFILE",
		Short: "Export a local container's filesystem as an OCI layer",
		Long: "Tar the root filesystem of a local container in to an uncompressed OCI " +
			"layer on stdout, for feeding in to image-assembly tools.  Stop the " +
			"container first; a live tree can change mid-walk.",
		Args: cliutil.WrapPositionalArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctid, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid CTID %q: %w", args[0], err)
			}

			layer, err := export.LayerFromContainer(ctid, time.Now())
			if err != nil {
				return err
			}

			if err := export.Write(layer, os.Stdout); err != nil {
				return err
			}
			return nil
		},
	}
	argparser.AddCommand(cmd)
}
