package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mamadbah2/livestock-pricing/internal/pricing"
)

func newConvertCmd() *cobra.Command {
	var toCents, toDecimal bool

	cmd := &cobra.Command{
		Use:   "convert [value...]",
		Short: "Convert prices between decimal amounts and minor units",
		Long: `convert turns decimal amounts into cents (--to-cents) or cents into decimal
amounts (--to-decimal). Boolean values such as hasPrice flags pass through unchanged.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := make([]string, 0, len(args))
			for _, arg := range args {
				var (
					converted fmt.Stringer
					err       error
				)
				if toCents {
					converted, err = decimalToCents(arg)
				} else {
					converted, err = centsToDecimal(arg)
				}
				if err != nil {
					return err
				}
				out = append(out, converted.String())
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), strings.Join(out, " "))
			return err
		},
	}

	cmd.Flags().BoolVar(&toCents, "to-cents", false, "Convert decimal amounts to minor units")
	cmd.Flags().BoolVar(&toDecimal, "to-decimal", false, "Convert minor units to decimal amounts")
	cmd.MarkFlagsMutuallyExclusive("to-cents", "to-decimal")
	cmd.MarkFlagsOneRequired("to-cents", "to-decimal")
	return cmd
}

func decimalToCents(arg string) (pricing.WireField, error) {
	if flag, ok := parseFlag(arg); ok {
		return pricing.FormField{Kind: pricing.KindFlag, Flag: flag}.ToWire(), nil
	}
	amount, ok := pricing.ParseAmount(arg)
	if !ok {
		return pricing.WireField{}, fmt.Errorf("%q is not an amount", arg)
	}
	return pricing.FormField{Kind: pricing.KindAmount, Amount: amount}.ToWire(), nil
}

func centsToDecimal(arg string) (pricing.FormField, error) {
	if flag, ok := parseFlag(arg); ok {
		return pricing.FlagField(flag).ToForm(), nil
	}
	cents, err := strconv.ParseInt(strings.TrimSpace(arg), 10, 64)
	if err != nil {
		return pricing.FormField{}, fmt.Errorf("%q is not a whole number of cents", arg)
	}
	return pricing.CentsField(cents).ToForm(), nil
}

// parseFlag only accepts spelled-out booleans so that "1" and "0" stay amounts.
func parseFlag(arg string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(arg)) {
	case "true":
		return true, true
	case "false":
		return false, true
	}
	return false, false
}
