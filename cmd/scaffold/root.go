package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/systemstart/many-scaffold/pkg/api"
	"github.com/systemstart/many-scaffold/pkg/config"
	"github.com/systemstart/many-scaffold/pkg/logging"
	"github.com/systemstart/many-scaffold/pkg/processing"
	"github.com/systemstart/many-scaffold/pkg/remote"
	"github.com/systemstart/many-scaffold/pkg/steps"
)

type rootOptions struct {
	configFile string
	logType    string
	logLevel   string

	settings *config.Settings
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "scaffold",
		Short: "Scaffold projects from remote or bundled template archives",
		Long: `scaffold resolves a template by group, language and scenario, downloads it,
falls back to the bundled copy when the network fails, and extracts it into a
destination while rendering {{token}} placeholders.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.init(cmd)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configFile, "config", "", "settings file (YAML)")
	flags.StringVar(&opts.logType, "log-type", logging.Tint, "logging type: "+strings.Join(logging.Types, ", "))
	flags.StringVar(&opts.logLevel, "log-level", "info", "logging level: debug, info, warn, error")

	cmd.AddCommand(
		newNewCmd(opts),
		newSampleCmd(opts),
		newBatchCmd(opts),
		newListCmd(opts),
	)
	return cmd
}

func (o *rootOptions) init(cmd *cobra.Command) error {
	if err := logging.Initialize(cmd.ErrOrStderr(), o.logType, o.logLevel); err != nil {
		return withExitCode(exitLoggingSetupFailed, err)
	}

	if err := includeEnv(); err != nil {
		return withExitCode(exitDotenvError, err)
	}

	s, err := config.Load(o.configFile)
	if err != nil {
		return withExitCode(exitLoadConfigurationFileFailed, err)
	}
	o.settings = s
	return nil
}

func includeEnv() error {
	err := godotenv.Load()
	if err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("loading .env: %w", err)
		}
		slog.Debug("no .env file found")
		return nil
	}
	slog.Info("using .env file")
	return nil
}

func (o *rootOptions) scaffolder() *processing.Scaffolder {
	s := o.settings
	client := remote.NewClient(
		remote.WithUserAgent(s.UserAgent),
		remote.WithToken(s.GitHubToken),
	)
	return &processing.Scaffolder{
		Resolver: remote.NewLocator(client, remote.LocatorConfig{
			TagListURL:      s.TagListURL,
			TagPrefix:       s.TagPrefix,
			DownloadBaseURL: s.DownloadBaseURL,
		}),
		Fetcher: remote.NewFetcher(client),
		Policy: &processing.LoggingPolicy{
			Inner:  processing.FallbackPolicy{},
			Logger: logging.New("pipeline"),
		},
	}
}

func (o *rootOptions) baseContext() steps.ScaffoldContext {
	s := o.settings
	return steps.ScaffoldContext{
		Version:             s.Version,
		RetryLimit:          s.RetryLimit,
		Timeout:             s.Timeout,
		TemplatesRoot:       s.TemplatesRoot,
		TemplatesFolderName: s.TemplatesFolder,
		Concurrency:         s.Concurrency,
	}
}

// applyActionDefaults drops the remote tier from requests that use the
// default action list when no download location is configured.
func (o *rootOptions) applyActionDefaults(req *api.Request) {
	if o.settings.RemoteEnabled() || req.URL != "" || len(req.Actions) > 0 {
		return
	}
	req.Actions = []string{api.ActionFetchLocal, api.ActionExtract}
	if len(req.Generate) > 0 {
		req.Actions = append(req.Actions, api.ActionGenerate)
	}
	slog.Debug("remote templates disabled, using bundled archives", "request", req.DisplayName())
}
