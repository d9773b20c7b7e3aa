package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/brokerstatement/internal/cashflow"
	"github.com/cleared-dev/brokerstatement/internal/logger"
)

func newReconcileCommand(opts *globalOptions) *cobra.Command {
	var computedPath, historicalPath string

	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Compare computed cash balances against the broker's history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, log, err := opts.load()
			if err != nil {
				return err
			}

			computed, err := readSeries(computedPath)
			if err != nil {
				return err
			}
			historical, err := readSeries(historicalPath)
			if err != nil {
				return err
			}

			comparator := cashflow.NewComparator(historical, logger.NewLeveled(log))
			for _, cp := range computed {
				if comparator.Compare(cp.Date, cp.Balance) {
					break
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Checked %d of %d historical checkpoints: %d with discrepancies\n",
				comparator.Checked(), len(historical), comparator.Mismatched())
			return nil
		},
	}

	cmd.Flags().StringVar(&computedPath, "computed", "", "computed balance series CSV (required)")
	cmd.Flags().StringVar(&historicalPath, "historical", "", "historical balance series CSV (required)")
	_ = cmd.MarkFlagRequired("computed")
	_ = cmd.MarkFlagRequired("historical")

	return cmd
}

func readSeries(path string) (cashflow.Series, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening series: %w", err)
	}
	defer f.Close()

	s, err := cashflow.ReadSeries(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return s, nil
}
