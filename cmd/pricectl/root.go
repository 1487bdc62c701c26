package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mamadbah2/livestock-pricing/pkg/logger"
)

type rootOptions struct {
	envFile string
	verbose bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "pricectl",
		Short: "Operator tools for livestock price lists",
		Long: `pricectl parses price-list spreadsheets offline and converts prices between
the decimal amounts operators type and the minor units the marketplace stores.

Example Usage:
  pricectl import prices.xlsx              # parse only
  pricectl import prices.xlsx --resolve    # parse and look up catalog ids
  pricectl convert --to-cents 10.50 true   # 1050 true`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.envFile, "env", "", "Path to an env file with marketplace settings")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log debug output to stderr")

	cmd.AddCommand(newImportCmd(opts), newConvertCmd())
	return cmd
}

func (o *rootOptions) logger() *zap.Logger {
	if !o.verbose {
		return zap.NewNop()
	}
	l, err := logger.New("debug")
	if err != nil {
		return zap.NewNop()
	}
	return l
}
