package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spacemeshos/bitview/internal/host"
)

var ErrInvalidOp = errors.New("invalid op")

// editOp is a single parsed --op of the edit command.
type editOp struct {
	raw   string
	apply func(v host.View) error
}

// parseOp parses set:I=0|1, flip:I and byte:I=V.
func parseOp(s string) (editOp, error) {
	name, arg, ok := strings.Cut(s, ":")
	if !ok {
		return editOp{}, fmt.Errorf("%w %q; expected: set:I=0|1, flip:I or byte:I=V", ErrInvalidOp, s)
	}

	switch name {
	case "flip":
		index, err := strconv.Atoi(arg)
		if err != nil {
			return editOp{}, fmt.Errorf("%w %q: bad index: %v", ErrInvalidOp, s, err)
		}
		return editOp{raw: s, apply: func(v host.View) error { return v.Flip(index) }}, nil

	case "set":
		index, value, err := splitAssignment(s, arg)
		if err != nil {
			return editOp{}, err
		}
		bit, err := strconv.ParseBool(value)
		if err != nil {
			return editOp{}, fmt.Errorf("%w %q: bad bit value: %v", ErrInvalidOp, s, err)
		}
		return editOp{raw: s, apply: func(v host.View) error { return v.SetBit(index, bit) }}, nil

	case "byte":
		index, value, err := splitAssignment(s, arg)
		if err != nil {
			return editOp{}, err
		}
		b, err := strconv.ParseUint(value, 0, 8)
		if err != nil {
			return editOp{}, fmt.Errorf("%w %q: bad byte value: %v", ErrInvalidOp, s, err)
		}
		return editOp{raw: s, apply: func(v host.View) error { return v.SetByte(index, byte(b)) }}, nil

	default:
		return editOp{}, fmt.Errorf("%w %q: unknown op %q", ErrInvalidOp, s, name)
	}
}

func splitAssignment(s, arg string) (int, string, error) {
	idx, value, ok := strings.Cut(arg, "=")
	if !ok {
		return 0, "", fmt.Errorf("%w %q: missing =", ErrInvalidOp, s)
	}
	index, err := strconv.Atoi(idx)
	if err != nil {
		return 0, "", fmt.Errorf("%w %q: bad index: %v", ErrInvalidOp, s, err)
	}
	return index, value, nil
}

func newEditCmd(a *app) *cobra.Command {
	var rawOps []string

	cmd := &cobra.Command{
		Use:   "edit [VALUE...] --op OP [--op OP...]",
		Short: "Apply bit edits to the host, in order",
		Long: `Apply bit edits to the host, in the order given. Ops:
  set:I=0|1   set bit I
  flip:I      toggle bit I
  byte:I=V    write the 8 bits of V, most-significant first, to bits I..I+7`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(rawOps) == 0 {
				return errors.New("at least one --op is required")
			}
			ops := make([]editOp, 0, len(rawOps))
			for _, s := range rawOps {
				op, err := parseOp(s)
				if err != nil {
					return err
				}
				ops = append(ops, op)
			}

			h, err := a.parseHost(args)
			if err != nil {
				return err
			}
			v := h.View()
			before := a.render(v)

			for _, op := range ops {
				if err := op.apply(v); err != nil {
					return fmt.Errorf("%v: %w", op.raw, err)
				}
				a.logger.Debug("applied op", zap.String("op", op.raw), zap.Stringer("view", v))
			}

			var out bytes.Buffer
			fmt.Fprintf(&out, "before: %v\n", before)
			fmt.Fprintf(&out, "after:  %v\n", a.render(v))
			fmt.Fprintf(&out, "values: %v\n", strings.Join(h.Values(), " "))
			_, err = out.WriteTo(cmd.OutOrStdout())
			return err
		},
	}

	cmd.Flags().StringArrayVar(&rawOps, "op", nil, "Edit to apply (repeatable)")
	return cmd
}
