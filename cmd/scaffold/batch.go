package main

import (
	"github.com/spf13/cobra"

	"github.com/systemstart/many-scaffold/pkg/api"
	"github.com/systemstart/many-scaffold/pkg/processing"
)

func newBatchCmd(root *rootOptions) *cobra.Command {
	var (
		file      string
		overwrite bool
	)

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Scaffold every request listed in a batch file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			batch, err := api.LoadBatch(file)
			if err != nil {
				return withExitCode(exitLoadContextFailed, err)
			}

			for i := range batch.Requests {
				req := &batch.Requests[i]
				root.applyActionDefaults(req)
				if err := processing.PrepareDestination(req.Destination, overwrite); err != nil {
					return withExitCode(exitDestinationFailed, err)
				}
			}

			return processing.RunBatch(cmd.Context(), root.scaffolder(), root.baseContext(), batch)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "batch file (YAML)")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "delete and recreate destinations")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}
