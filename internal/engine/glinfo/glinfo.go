// Package glinfo interprets the strings an OpenGL driver reports about itself.
package glinfo

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// ErrUnsupported is returned when the driver is older than required.
var ErrUnsupported = errors.New("unsupported OpenGL version")

// ParseVersion extracts the numeric version from a GL_VERSION string such as
// "4.6.0 NVIDIA 535.104.05" or "4.1 Metal - 76.3".
func ParseVersion(s string) (*semver.Version, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return nil, fmt.Errorf("empty GL version string")
	}
	v, err := semver.NewVersion(fields[0])
	if err != nil {
		return nil, fmt.Errorf("parse GL version %q: %w", s, err)
	}
	return v, nil
}

// Require checks a GL_VERSION string against a minimum like "4.1".
func Require(reported, minimum string) (*semver.Version, error) {
	v, err := ParseVersion(reported)
	if err != nil {
		return nil, err
	}
	c, err := semver.NewConstraint(">= " + minimum)
	if err != nil {
		return nil, err
	}
	if !c.Check(v) {
		return v, fmt.Errorf("%w: have %s, need %s", ErrUnsupported, v, minimum)
	}
	return v, nil
}
