package cmd

import (
	"bytes"
	"fmt"

	"code.cloudfoundry.org/bytefmt"
	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"
)

func newInfoCmd(a *app) *cobra.Command {
	var dump bool

	cmd := &cobra.Command{
		Use:   "info [VALUE...]",
		Short: "Print the host layout",
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := a.parseHost(args)
			if err != nil {
				return err
			}
			v := h.View()

			var out bytes.Buffer
			fmt.Fprintf(&out, "kind:  %v\n", h.Kind())
			fmt.Fprintf(&out, "count: %d\n", len(h.Values()))
			fmt.Fprintf(&out, "bits:  %d\n", v.Len())
			fmt.Fprintf(&out, "size:  %v\n", bytefmt.ByteSize(uint64(v.ByteCount())))

			if dump {
				spew.Fdump(&out, h.Raw())
			}
			_, err = out.WriteTo(cmd.OutOrStdout())
			return err
		},
	}

	cmd.Flags().BoolVar(&dump, "dump", false, "Dump the host values")
	return cmd
}
