package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/brokerstatement/internal/ib"
	"github.com/cleared-dev/brokerstatement/internal/importer"
)

func newParseCommand(opts *globalOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a statement file and print its summary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := opts.load()
			if err != nil {
				return err
			}
			if format == "" {
				format = cfg.Import.Format
			}

			registry := importer.DefaultRegistry(
				ib.WithNAVCurrency(cfg.Statement.NAVCurrency),
				ib.WithLogger(log),
			)
			parser := registry.Get(format)
			if parser == nil {
				return fmt.Errorf("unknown statement format %q", format)
			}

			st, err := importer.ParseFile(parser, args[0])
			if err != nil {
				return err
			}
			log.Debug().Str("file", args[0]).Int("deposits", len(st.Deposits)).Msg("parsed statement")

			return writeSummaries(cmd.OutOrStdout(), summarize(filepath.Base(args[0]), st))
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "statement format (default from config)")

	return cmd
}
