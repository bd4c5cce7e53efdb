package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/systemstart/many-scaffold/pkg/api"
	"github.com/systemstart/many-scaffold/pkg/processing"
)

type newOptions struct {
	group        string
	language     string
	scenario     string
	templateName string
	version      string
	url          string
	destination  string
	contextFile  string
	set          map[string]string
	include      []string
	exclude      []string
	overwrite    bool
}

func newNewCmd(root *rootOptions) *cobra.Command {
	opts := &newOptions{}

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Scaffold a project from a template",
		Example: `  scaffold new --group bot --language ts --scenario default \
    --template-name default --set appName=EchoBot --destination ./echo-bot`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runNew(cmd, root, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.group, "group", "", "template group")
	flags.StringVar(&opts.language, "language", "", "template language")
	flags.StringVar(&opts.scenario, "scenario", "", "template scenario")
	flags.StringVar(&opts.templateName, "template-name", "", "template bucket inside the archive")
	flags.StringVar(&opts.version, "version", "", "semver constraint for the template release")
	flags.StringVar(&opts.url, "url", "", "download this archive instead of resolving one")
	flags.StringVarP(&opts.destination, "destination", "d", "", "destination directory")
	flags.StringVar(&opts.contextFile, "context-file", "", "YAML file with replacements")
	flags.StringToStringVar(&opts.set, "set", nil, "replacement key=value, repeatable")
	flags.StringSliceVar(&opts.include, "include", nil, "only extract entries matching these globs")
	flags.StringSliceVar(&opts.exclude, "exclude", nil, "skip entries matching these globs")
	flags.BoolVar(&opts.overwrite, "overwrite", false, "delete and recreate the destination")
	_ = cmd.MarkFlagRequired("destination")

	return cmd
}

func runNew(cmd *cobra.Command, root *rootOptions, opts *newOptions) error {
	replace, err := loadReplacements(opts.contextFile, opts.set)
	if err != nil {
		return withExitCode(exitLoadContextFailed, err)
	}

	req := &api.Request{
		Group:        opts.group,
		Language:     opts.language,
		Scenario:     opts.scenario,
		TemplateName: opts.templateName,
		Version:      opts.version,
		URL:          opts.url,
		Destination:  opts.destination,
		Replace:      replace,
		Files:        api.FileFilter{Include: opts.include, Exclude: opts.exclude},
	}
	if err := req.Validate(); err != nil {
		return err
	}
	root.applyActionDefaults(req)

	if err := processing.PrepareDestination(req.Destination, opts.overwrite); err != nil {
		return withExitCode(exitDestinationFailed, err)
	}

	if err := processing.RunRequest(cmd.Context(), root.scaffolder(), root.baseContext(), req); err != nil {
		slog.Warn("destination may be incomplete", "destination", req.Destination)
		return err
	}
	return nil
}

// loadReplacements merges the context file with --set values, which win.
func loadReplacements(contextFile string, set map[string]string) (map[string]any, error) {
	var fromFile map[string]any
	if contextFile != "" {
		var err error
		fromFile, err = processing.LoadContextFile(contextFile)
		if err != nil {
			return nil, err
		}
	}

	fromFlags := make(map[string]any, len(set))
	for k, v := range set {
		fromFlags[k] = v
	}
	return processing.MergeContext(fromFile, fromFlags), nil
}
