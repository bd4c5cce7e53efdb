package api

const (
	ActionResolveURL  = "resolve-url"
	ActionFetchRemote = "fetch-remote"
	ActionFetchLocal  = "fetch-local"
	ActionExtract     = "extract"
	ActionGenerate    = "generate"
)

// DefaultActions is the standard acquisition pipeline.
var DefaultActions = []string{
	ActionResolveURL,
	ActionFetchRemote,
	ActionFetchLocal,
	ActionExtract,
}

// Request is the scaffold request file format.
type Request struct {
	Name         string           `yaml:"name"`
	Group        string           `yaml:"group"`
	Language     string           `yaml:"language"`
	Scenario     string           `yaml:"scenario"`
	TemplateName string           `yaml:"templateName"`
	Version      string           `yaml:"version"`
	URL          string           `yaml:"url"` // skips resolution when set
	Destination  string           `yaml:"destination"`
	Replace      map[string]any   `yaml:"replace"`
	Files        FileFilter       `yaml:"files"`
	Actions      []string         `yaml:"actions"`
	Generate     []GenerateConfig `yaml:"generate"`

	// Set by the loader, not from YAML.
	FilePath string `yaml:"-"`
}

// FileFilter defines include/exclude glob patterns over archive entries.
type FileFilter struct {
	Include []string `yaml:"include"`
	Exclude []string `yaml:"exclude"`
}

// GenerateConfig describes a file rendered after extraction.
type GenerateConfig struct {
	Output   string `yaml:"output"`
	Template string `yaml:"template"`
}

// Batch runs several requests sharing a replace context.
type Batch struct {
	Context  map[string]any `yaml:"context"`
	Requests []Request      `yaml:"requests"`
}

// ActionList returns the request's actions, defaulting to DefaultActions and
// appending generate when generate entries are configured.
func (r *Request) ActionList() []string {
	if len(r.Actions) > 0 {
		return r.Actions
	}
	actions := append([]string(nil), DefaultActions...)
	if len(r.Generate) > 0 {
		actions = append(actions, ActionGenerate)
	}
	return actions
}

// DisplayName identifies the request in logs.
func (r *Request) DisplayName() string {
	if r.Name != "" {
		return r.Name
	}
	return r.Group + "." + r.Language + "." + r.Scenario
}
