package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lankamart/storefront/currency"
)

func newConvertCommand() *cobra.Command {
	var backward bool

	cmd := &cobra.Command{
		Use:   "convert AMOUNT",
		Short: "Convert LKR to VND, or VND to LKR with --backward",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := convert(args[0], backward)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&backward, "backward", "b", false, "convert VND back to LKR")
	return cmd
}

func convert(raw string, backward bool) (string, error) {
	if backward {
		if out := currency.Default.BackwardText(raw); out != "" {
			return out + " " + currency.Source, nil
		}
	} else if out := currency.Default.ForwardText(raw); out != "" {
		return out + " " + currency.Target, nil
	}
	return "", errors.New("amount is not a number")
}
