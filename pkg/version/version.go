// Package version provides the tool version and release version parsing.
package version

import (
	"fmt"
	"strconv"
	"strings"
)

// Current is the release version of this module.
const Current = "0.1.0"

// Release is a parsed "major.minor.patch" version.
type Release struct {
	Major uint16
	Minor uint16
	Patch uint16
}

// Parse parses a "major.minor.patch" version string. A leading "v" is
// accepted.
func Parse(s string) (Release, error) {
	parts := strings.Split(strings.TrimPrefix(s, "v"), ".")
	if len(parts) != 3 {
		return Release{}, fmt.Errorf("invalid version %q: expected major.minor.patch", s)
	}

	var nums [3]uint16
	for i, name := range []string{"major", "minor", "patch"} {
		n, err := strconv.ParseUint(parts[i], 10, 16)
		if err != nil || parts[i] == "" {
			return Release{}, fmt.Errorf("invalid version %q: bad %s component", s, name)
		}
		nums[i] = uint16(n)
	}

	return Release{Major: nums[0], Minor: nums[1], Patch: nums[2]}, nil
}

// MustCurrent returns Current parsed.
func MustCurrent() Release {
	r, err := Parse(Current)
	if err != nil {
		panic(err)
	}
	return r
}

// String returns the version as "major.minor.patch".
func (r Release) String() string {
	return fmt.Sprintf("%d.%d.%d", r.Major, r.Minor, r.Patch)
}

// Compatible returns true if other can be used in place of r. Before 1.0
// the minor version carries breaking changes.
func (r Release) Compatible(other Release) bool {
	if r.Major != other.Major {
		return false
	}
	if r.Major == 0 {
		return r.Minor == other.Minor
	}
	return true
}

// Less reports whether r sorts before other.
func (r Release) Less(other Release) bool {
	if r.Major != other.Major {
		return r.Major < other.Major
	}
	if r.Minor != other.Minor {
		return r.Minor < other.Minor
	}
	return r.Patch < other.Patch
}
