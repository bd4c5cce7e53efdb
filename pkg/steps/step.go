package steps

import (
	"context"
	"time"

	"github.com/systemstart/many-scaffold/pkg/archive"
	"github.com/systemstart/many-scaffold/pkg/remote"
	"github.com/systemstart/many-scaffold/pkg/render"
)

// ScaffoldContext is the mutable state of one pipeline run. Actions
// communicate only through it; a populated field suppresses the actions that
// would produce it.
type ScaffoldContext struct {
	Group    string
	Language string
	Scenario string
	// TemplateName selects the "<TemplateName>/" bucket inside the archive.
	TemplateName string
	// Version is a semver constraint for the template release.
	Version     string
	Destination string

	ResolvedURL string
	Archive     *archive.Handle

	RetryLimit int
	Timeout    time.Duration

	TemplatesRoot       string
	TemplatesFolderName string
	// LocalBundleID overrides the "<group>.<language>.<scenario>" bundle stem.
	LocalBundleID string

	NameTransform    func(name string, data []byte) (string, error)
	ContentTransform func(name string, data []byte) ([]byte, error)
	Filter           render.Filter
	// Data is the replace map; generate actions render with it.
	Data        map[string]any
	Concurrency int

	// Set by the fallback policy when a recoverable failure was suppressed.
	FallbackTaken bool
	FallbackCause error
}

// RetryPolicy returns the network policy derived from RetryLimit and Timeout.
func (sc *ScaffoldContext) RetryPolicy() remote.Policy {
	return remote.Policy{Attempts: sc.RetryLimit, Timeout: sc.Timeout}.WithDefaults()
}

// Recovery describes what happens when an action fails under a fallback policy.
type Recovery struct {
	Recoverable bool
	// Fallback names the action expected to take over.
	Fallback string
}

// Action is the interface all pipeline actions implement. Run must be a no-op
// when the context field it produces is already set.
type Action interface {
	Name() string
	Recovery() Recovery
	Run(ctx context.Context, sc *ScaffoldContext) error
}
