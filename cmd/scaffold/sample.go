package main

import (
	"github.com/spf13/cobra"

	"github.com/systemstart/many-scaffold/pkg/processing"
	"github.com/systemstart/many-scaffold/pkg/steps"
)

func newSampleCmd(root *rootOptions) *cobra.Command {
	var (
		url         string
		path        string
		destination string
		overwrite   bool
	)

	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Download a sample project archive",
		Long: `Download a zip archive and extract the folder selected by --path. Samples
have no bundled copy; a rate-limited download asks for a GitHub token.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := processing.PrepareDestination(destination, overwrite); err != nil {
				return withExitCode(exitDestinationFailed, err)
			}

			s := root.settings
			sc := &steps.ScaffoldContext{
				ResolvedURL:  url,
				TemplateName: path,
				Destination:  destination,
				RetryLimit:   s.RetryLimit,
				Timeout:      s.Timeout,
				Concurrency:  s.Concurrency,
			}
			return root.scaffolder().Sample(cmd.Context(), sc)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&url, "url", "", "archive url")
	flags.StringVar(&path, "path", "", "folder inside the archive to extract")
	flags.StringVarP(&destination, "destination", "d", "", "destination directory")
	flags.BoolVar(&overwrite, "overwrite", false, "delete and recreate the destination")
	_ = cmd.MarkFlagRequired("url")
	_ = cmd.MarkFlagRequired("destination")

	return cmd
}
