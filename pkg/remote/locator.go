package remote

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// ErrNoMatchingTag is returned when no published tag satisfies the version constraint.
var ErrNoMatchingTag = errors.New("no template tag satisfies version constraint")

// LocatorConfig describes where templates are published.
type LocatorConfig struct {
	// TagListURL serves one release tag per line. When empty, archives are
	// looked up directly under DownloadBaseURL without a tag segment.
	TagListURL string
	// TagPrefix is stripped from each tag before semver parsing, e.g. "templates@".
	TagPrefix       string
	DownloadBaseURL string
}

// Locator resolves a template identity to an archive URL.
type Locator struct {
	client *Client
	cfg    LocatorConfig
}

// NewLocator creates a Locator on top of c.
func NewLocator(c *Client, cfg LocatorConfig) *Locator {
	return &Locator{client: c, cfg: cfg}
}

// ArchiveFileName is the published file name of a template archive.
func ArchiveFileName(group, language, scenario string) string {
	return fmt.Sprintf("%s.%s.%s.zip", group, language, scenario)
}

// Resolve returns the download URL for the template. constraint is a semver
// range such as "~4.2"; empty selects the newest release.
func (l *Locator) Resolve(ctx context.Context, group, language, scenario, constraint string, p Policy) (string, error) {
	base := strings.TrimRight(l.cfg.DownloadBaseURL, "/")
	file := ArchiveFileName(group, language, scenario)

	if l.cfg.TagListURL == "" {
		return base + "/" + file, nil
	}

	var body []byte
	err := Do(ctx, p, "fetch tag list", func(ctx context.Context) error {
		data, err := l.client.get(ctx, l.cfg.TagListURL)
		if err != nil {
			return err
		}
		body = data
		return nil
	})
	if err != nil {
		return "", err
	}

	tag, err := SelectTag(strings.Split(string(body), "\n"), l.cfg.TagPrefix, constraint)
	if err != nil {
		return "", err
	}

	url := base + "/" + tag + "/" + file
	slog.Debug("template url resolved", "tag", tag, "url", url)
	return url, nil
}

// SelectTag returns the tag with the highest version satisfying constraint.
// Lines that are blank, lack prefix, or are not semver are ignored.
func SelectTag(tags []string, prefix, constraint string) (string, error) {
	if constraint == "" {
		constraint = "*"
	}
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return "", fmt.Errorf("parsing version constraint %q: %w", constraint, err)
	}

	var (
		bestTag string
		best    *semver.Version
	)
	for _, line := range tags {
		tag := strings.TrimSpace(line)
		if tag == "" || !strings.HasPrefix(tag, prefix) {
			continue
		}
		v, err := semver.NewVersion(strings.TrimPrefix(strings.TrimPrefix(tag, prefix), "v"))
		if err != nil {
			continue
		}
		if !c.Check(v) {
			continue
		}
		if best == nil || v.GreaterThan(best) {
			best, bestTag = v, tag
		}
	}

	if best == nil {
		return "", fmt.Errorf("%w %q", ErrNoMatchingTag, constraint)
	}
	return bestTag, nil
}
