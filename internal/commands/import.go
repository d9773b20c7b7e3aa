package commands

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/cleared-dev/brokerstatement/internal/config"
	"github.com/cleared-dev/brokerstatement/internal/ib"
	"github.com/cleared-dev/brokerstatement/internal/importer"
	"github.com/cleared-dev/brokerstatement/internal/importlog"
)

func newImportCommand(opts *globalOptions) *cobra.Command {
	var dryRun bool
	var repoDir string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Parse every statement in the import directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			absDir, err := filepath.Abs(repoDir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}
			if !cmd.Flags().Changed("config") {
				opts.configPath = filepath.Join(absDir, config.FileName)
			}
			cfg, log, err := opts.load()
			if err != nil {
				return err
			}
			return runImport(cmd, cfg, log, absDir, dryRun)
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "parse without moving files or writing the import log")
	cmd.Flags().StringVar(&repoDir, "repo", ".", "directory holding the config and import directory")

	return cmd
}

func runImport(cmd *cobra.Command, cfg *config.Config, log zerolog.Logger, repoRoot string, dryRun bool) error {
	registry := importer.DefaultRegistry(
		ib.WithNAVCurrency(cfg.Statement.NAVCurrency),
		ib.WithLogger(log),
	)
	parser := registry.Get(cfg.Import.Format)
	if parser == nil {
		return fmt.Errorf("unknown statement format %q", cfg.Import.Format)
	}

	files, err := importer.Scan(repoRoot, cfg.Import.Dir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No statements in %s\n", filepath.Join(repoRoot, cfg.Import.Dir))
		return nil
	}

	runID := importlog.NewRunID()
	log = log.With().Str("run_id", runID).Logger()

	for _, file := range files {
		st, err := importer.ParseFile(parser, file.Path)
		if err != nil {
			return err
		}
		log.Info().Str("file", file.Name).Int64("size", file.Size).Stringer("period", st.Period).Msg("parsed statement")

		if err := writeSummaries(cmd.OutOrStdout(), summarize(file.Name, st)); err != nil {
			return err
		}
		if dryRun {
			continue
		}

		if err := importer.MarkProcessed(repoRoot, cfg.Import.Dir, cfg.Import.ProcessedDir, file.Name); err != nil {
			return err
		}
		entry := importlog.Entry{
			Timestamp:   time.Now().UTC(),
			RunID:       runID,
			File:        file.Name,
			Format:      parser.Format(),
			PeriodStart: st.Period.Start,
			PeriodEnd:   st.Period.End,
			Deposits:    len(st.Deposits),
		}
		if err := importlog.Append(repoRoot, []importlog.Entry{entry}); err != nil {
			// Put the statement back so the next run imports it again.
			if rerr := importer.MarkProcessed(repoRoot, cfg.Import.ProcessedDir, cfg.Import.Dir, file.Name); rerr != nil {
				return fmt.Errorf("writing import log: %w (restoring %s: %v)", err, file.Name, rerr)
			}
			return fmt.Errorf("writing import log: %w", err)
		}
	}

	return nil
}
