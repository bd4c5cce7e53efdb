package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/systemstart/many-scaffold/pkg/archive"
	"github.com/systemstart/many-scaffold/pkg/processing"
)

type listEntry struct {
	Group    string `json:"group"`
	Language string `json:"language"`
	Scenario string `json:"scenario"`
	Path     string `json:"path"`
	Digest   string `json:"digest,omitempty"`
}

func newListCmd(root *rootOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List bundled template archives",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s := root.settings
			bundles, err := processing.DiscoverBundles(s.TemplatesRoot, s.TemplatesFolder)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(bundles) == 0 && !asJSON {
				fmt.Fprintln(out, "No bundled templates found.")
				return nil
			}

			entries := make([]listEntry, 0, len(bundles))
			for _, b := range bundles {
				entry := listEntry{Group: b.Group, Language: b.Language, Scenario: b.Scenario, Path: b.Path}
				if h, err := archive.Open(b.Path); err != nil {
					slog.Warn("unreadable bundle", "path", b.Path, "error", err)
				} else {
					entry.Digest = h.Digest()
				}
				entries = append(entries, entry)
			}

			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(entries)
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "GROUP\tLANGUAGE\tSCENARIO\tPATH")
			for _, e := range entries {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.Group, e.Language, e.Scenario, e.Path)
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "output in JSON format")
	return cmd
}
