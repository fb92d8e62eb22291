package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newGetCmd(a *app) *cobra.Command {
	var bits []int

	cmd := &cobra.Command{
		Use:   "get [VALUE...] --bit N [--bit N...]",
		Short: "Print single bits of the host",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(bits) == 0 {
				return errors.New("at least one --bit is required")
			}
			h, err := a.parseHost(args)
			if err != nil {
				return err
			}

			for _, i := range bits {
				bit, err := h.View().BitAt(i)
				if err != nil {
					return err
				}
				a.logger.Debug("read bit", zap.Int("bit", i), zap.Bool("value", bit))

				val := 0
				if bit {
					val = 1
				}
				if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%d=%d\n", i, val); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().IntSliceVar(&bits, "bit", nil, "Index of the bit to print (repeatable)")
	return cmd
}
