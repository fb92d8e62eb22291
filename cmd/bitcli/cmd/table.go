package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/spacemeshos/bitview/internal/host"
)

func newTableCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "table [VALUE...]",
		Short: "Print the host memory as a table, one row per byte",
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := a.parseHost(args)
			if err != nil {
				return err
			}
			data, err := byteRows(h.View())
			if err != nil {
				return err
			}

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"offset", "hex", "bits", "indexes"})
			table.SetBorder(a.cfg.TableBorder)
			table.AppendBulk(data)
			table.Render()
			return nil
		},
	}
}

// byteRows renders each host byte as offset, hex, and its bits from index 8*o+7 down to 8*o.
func byteRows(v host.View) ([][]string, error) {
	raw, err := v.RawBytesFrom(0)
	if err != nil {
		return nil, err
	}

	rows := make([][]string, 0, v.ByteCount())
	for offset := 0; offset < v.ByteCount(); offset++ {
		var bits strings.Builder
		for i := offset*8 + 7; i >= offset*8; i-- {
			bit, err := v.BitAt(i)
			if err != nil {
				return nil, err
			}
			if bit {
				bits.WriteByte('1')
			} else {
				bits.WriteByte('0')
			}
		}

		rows = append(rows, []string{
			strconv.Itoa(offset),
			fmt.Sprintf("%02x", raw[offset]),
			bits.String(),
			fmt.Sprintf("%d..%d", offset*8+7, offset*8),
		})
	}
	return rows, nil
}
