package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/dotstrap/pkg/commands/materialize"
	"github.com/arthur-debert/dotstrap/pkg/ui"
)

func newMaterializeCmd() *cobra.Command {
	var (
		home     string
		dryRun   bool
		skipBrew bool
		workers  int
		format   string
	)

	cmd := &cobra.Command{
		Use:     "materialize <source>",
		Aliases: []string{"up"},
		Short:   MsgMaterializeShort,
		Long:    MsgMaterializeLong,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outputFormat, err := ui.ParseFormat(format)
			if err != nil {
				return err
			}
			renderer := ui.NewRenderer(outputFormat, os.Stdout)

			report, runErr := materialize.Run(materialize.Options{
				Source:   args[0],
				Home:     home,
				DryRun:   dryRun,
				SkipBrew: skipBrew,
				Workers:  workers,
			})
			if runErr != nil {
				fmt.Fprintln(os.Stderr, renderer.RenderError(runErr))
				return fmt.Errorf("%s: %w", MsgRunFailed, errReported)
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderer.RenderReport(report))
			if !report.Success() {
				// The report already enumerates the failures.
				return fmt.Errorf("%s: %w", MsgRunFailed, errReported)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&home, "home", "", MsgFlagHome)
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, MsgFlagDryRun)
	cmd.Flags().BoolVar(&skipBrew, "skip-brew", false, MsgFlagSkipBrew)
	cmd.Flags().IntVar(&workers, "workers", 0, MsgFlagWorkers)
	cmd.Flags().StringVar(&format, "format", "auto", MsgFlagFormat)

	return cmd
}
