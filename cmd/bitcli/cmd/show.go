package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show [VALUE...]",
		Short: "Print the bits of the host, most-significant first",
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := a.parseHost(args)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), a.render(h.View()))
			return err
		},
	}
}
