// SPDX-License-Identifier: Apache-2.0

// Package semver finds and compares semantic versions in free-form strings such as file names
// and command output.
package semver

import (
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/joomcode/errorx"
)

var matcher = regexp.MustCompile(RegexSemVer)

// Find returns the first semantic version in s. A pre-release part is only kept when it is
// separated from the patch number by '-', so "comet_1.2.0_linux" yields 1.2.0.
func Find(s string) (string, bool) {
	lower := strings.ToLower(s)
	for _, ext := range archiveExtensions {
		if strings.HasSuffix(lower, ext) {
			s = s[:len(s)-len(ext)]
			break
		}
	}

	idx := matcher.FindStringSubmatchIndex(s)
	if idx == nil {
		return "", false
	}

	group := func(n int) string {
		if idx[2*n] < 0 {
			return ""
		}
		return s[idx[2*n]:idx[2*n+1]]
	}

	version := group(1) + "." + group(2) + "." + group(3)

	pre := strings.Trim(group(4), ".")
	patchEnd := idx[7]
	if pre != "" && patchEnd < len(s) && s[patchEnd] == '-' {
		version += "-" + pre
	}

	if build := group(5); build != "" {
		version += "+" + build
	}

	return version, true
}

// Parse parses a version, accepting an optional "v" prefix and missing minor or patch parts.
func Parse(v string) (*semver.Version, error) {
	parsed, err := semver.NewVersion(strings.TrimSpace(v))
	if err != nil {
		return nil, errorx.IllegalFormat.Wrap(err, "failed to parse version %q", v)
	}

	return parsed, nil
}

// IsNewer returns true if candidate is a higher version than installed.
func IsNewer(candidate, installed string) (bool, error) {
	c, err := Parse(candidate)
	if err != nil {
		return false, err
	}

	i, err := Parse(installed)
	if err != nil {
		return false, err
	}

	return c.GreaterThan(i), nil
}

// CheckVersionRequirements checks if a version is between the minimum and maximum version.
// An empty maximum is not checked.
func CheckVersionRequirements(version, minimum, maximum string) error {
	v, err := Parse(version)
	if err != nil {
		return err
	}

	minVer, err := Parse(minimum)
	if err != nil {
		return err
	}

	if v.LessThan(minVer) {
		return errorx.IllegalArgument.New("version %q is less than minimum required version %q", version, minimum)
	}

	if maximum == "" {
		return nil
	}

	maxVer, err := Parse(maximum)
	if err != nil {
		return err
	}

	if v.GreaterThan(maxVer) {
		return errorx.IllegalArgument.New("version %q is greater than maximum required version %q", version, maximum)
	}

	return nil
}
