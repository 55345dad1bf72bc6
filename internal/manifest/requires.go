package manifest

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// ErrVersionMismatch is returned by CheckRequires when the running version
// does not satisfy the document's constraint.
var ErrVersionMismatch = errors.New("devsetup version does not satisfy requires")

// CheckRequires reports whether version satisfies the requires constraint.
// An empty constraint always passes. Development builds, whose version is not
// a semantic version, pass with no check.
func (c *ToolsConfig) CheckRequires(version string) error {
	if c.Requires == "" {
		return nil
	}
	constraint, err := semver.NewConstraint(c.Requires)
	if err != nil {
		return fmt.Errorf("parsing requires %q: %w", c.Requires, err)
	}

	v, err := parseSemver(version)
	if err != nil {
		return nil
	}
	if !constraint.Check(v) {
		return fmt.Errorf("%w: have %s, need %s", ErrVersionMismatch, v, c.Requires)
	}
	return nil
}

// parseSemver strips a leading "v" and parses the version string.
func parseSemver(version string) (*semver.Version, error) {
	version = strings.TrimPrefix(version, "v")
	return semver.NewVersion(version)
}
