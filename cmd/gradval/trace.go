package main

import (
	"errors"
	"fmt"

	"github.com/born-ml/gradval/autodiff"
	"github.com/spf13/cobra"
)

func newTraceCmd() *cobra.Command {
	var x, y float32

	cmd := &cobra.Command{
		Use:   "trace",
		Short: "Differentiate a sample expression and print every node",
		Long: `Builds f = (x*y + exp(x)) / y - log(y)^2, runs the backward pass from f
and prints each intermediate value with its gradient.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if y == 0 {
				return errors.New("--y must be non-zero")
			}

			xv := autodiff.New(x)
			yv := autodiff.New(y)

			xy := xv.Mul(yv)
			ex := xv.Exp()
			num := xy.Add(ex)
			quot := num.Div(yv)
			logy := yv.Log()
			sq := logy.PowScalar(2)
			f := quot.Sub(sq)

			f.Backward()

			out := cmd.OutOrStdout()
			for _, row := range []struct {
				name string
				v    autodiff.Value
			}{
				{"x", xv},
				{"y", yv},
				{"x*y", xy},
				{"exp(x)", ex},
				{"x*y+exp(x)", num},
				{"(x*y+exp(x))/y", quot},
				{"log(y)", logy},
				{"log(y)^2", sq},
				{"f", f},
			} {
				fmt.Fprintf(out, "%-16s %v\n", row.name, row.v)
			}
			return nil
		},
	}

	cmd.Flags().Float32Var(&x, "x", 1, "value of x")
	cmd.Flags().Float32Var(&y, "y", 2, "value of y")
	return cmd
}
