package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mamadbah2/livestock-pricing/internal/config"
	"github.com/mamadbah2/livestock-pricing/internal/importer"
	"github.com/mamadbah2/livestock-pricing/internal/service/pricelist"
	"github.com/mamadbah2/livestock-pricing/internal/service/reconcile"
	"github.com/mamadbah2/livestock-pricing/pkg/clients/marketplace"
)

func newImportCmd(root *rootOptions) *cobra.Command {
	var (
		resolve     bool
		aliasesPath string
	)

	cmd := &cobra.Command{
		Use:   "import <file.xlsx>",
		Short: "Parse a price-list workbook and print the import report as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := root.logger()
			defer func() { _ = log.Sync() }()

			var aliases *importer.Aliases
			if aliasesPath != "" {
				loaded, err := importer.LoadAliases(aliasesPath)
				if err != nil {
					return err
				}
				aliases = loaded
			}
			parser := importer.NewParser(importer.NewMapper(aliases), log.Named("importer"))

			var (
				resolver *reconcile.Resolver
				client   marketplace.Client
			)
			if resolve {
				cfg, err := config.Load(root.envFile)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				api := marketplace.NewClient(cfg.Marketplace)
				resolver = reconcile.NewResolver(api, cfg.Import.LookupConcurrency, log.Named("reconcile"))
				client = api
			}

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open workbook: %w", err)
			}
			defer f.Close()

			svc := pricelist.NewService(parser, resolver, client, nil, nil, log.Named("pricelist"))
			report, err := svc.ImportXLSX(cmd.Context(), filepath.Base(args[0]), f)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(report); err != nil {
				return fmt.Errorf("encode report: %w", err)
			}
			if !report.CanApply {
				return fmt.Errorf("%s: %d error(s), import cannot be applied", args[0], len(report.Result.Errors))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&resolve, "resolve", false, "Look up farm-produce and client ids on the marketplace")
	cmd.Flags().StringVar(&aliasesPath, "aliases", os.Getenv("GRADE_ALIASES_FILE"), "YAML file with extra category and grade aliases")
	return cmd
}
