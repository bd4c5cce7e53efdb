// Package config loads scaffold settings from an optional YAML file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

const (
	fileType  = "yaml"
	envPrefix = "SCAFFOLD"
)

// Keys understood in the settings file. The environment variable for a key
// is SCAFFOLD_<KEY>, e.g. SCAFFOLD_RETRY_LIMIT.
const (
	KeyRetryLimit      = "retry_limit"
	KeyTimeout         = "timeout"
	KeyConcurrency     = "concurrency"
	KeyTemplatesRoot   = "templates_root"
	KeyTemplatesFolder = "templates_folder"
	KeyTagListURL      = "tag_list_url"
	KeyTagPrefix       = "tag_prefix"
	KeyDownloadBaseURL = "download_base_url"
	KeyVersion         = "version"
	KeyGitHubToken     = "github_token"
	KeyUserAgent       = "user_agent"
)

// Settings are the resolved scaffold settings.
type Settings struct {
	RetryLimit      int           `mapstructure:"retry_limit"`
	Timeout         time.Duration `mapstructure:"timeout"`
	Concurrency     int           `mapstructure:"concurrency"`
	TemplatesRoot   string        `mapstructure:"templates_root"`
	TemplatesFolder string        `mapstructure:"templates_folder"`
	TagListURL      string        `mapstructure:"tag_list_url"`
	TagPrefix       string        `mapstructure:"tag_prefix"`
	// DownloadBaseURL is where archives are published. Empty disables the
	// remote tier.
	DownloadBaseURL string `mapstructure:"download_base_url"`
	Version         string `mapstructure:"version"`
	GitHubToken     string `mapstructure:"github_token"`
	UserAgent       string `mapstructure:"user_agent"`
}

// RemoteEnabled reports whether templates can be downloaded.
func (s *Settings) RemoteEnabled() bool {
	return s.DownloadBaseURL != ""
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyRetryLimit, 3)
	v.SetDefault(KeyTimeout, 10*time.Second)
	v.SetDefault(KeyConcurrency, 8)
	v.SetDefault(KeyTemplatesRoot, ".")
	v.SetDefault(KeyTemplatesFolder, "templates")
	v.SetDefault(KeyTagListURL, "")
	v.SetDefault(KeyTagPrefix, "templates@")
	v.SetDefault(KeyDownloadBaseURL, "")
	v.SetDefault(KeyVersion, "")
	v.SetDefault(KeyGitHubToken, "")
	v.SetDefault(KeyUserAgent, "many-scaffold")
}

// Load reads settings from file, when given, with environment overrides on
// top. A named file that cannot be read is an error.
func Load(file string) (*Settings, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	// The conventional token variable works without the prefix.
	if err := v.BindEnv(KeyGitHubToken, envPrefix+"_GITHUB_TOKEN", "GITHUB_TOKEN"); err != nil {
		return nil, fmt.Errorf("binding token environment: %w", err)
	}

	if file != "" {
		v.SetConfigFile(file)
		v.SetConfigType(fileType)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", file, err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("decoding settings: %w", err)
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks the numeric settings.
func (s *Settings) Validate() error {
	var errs []error
	if s.RetryLimit < 1 {
		errs = append(errs, fmt.Errorf("%s must be at least 1, got %d", KeyRetryLimit, s.RetryLimit))
	}
	if s.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive, got %s", KeyTimeout, s.Timeout))
	}
	if s.Concurrency < 1 {
		errs = append(errs, fmt.Errorf("%s must be at least 1, got %d", KeyConcurrency, s.Concurrency))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid settings: %w", errors.Join(errs...))
	}
	return nil
}
