// Package pathinfo derives structured metadata from test-case file paths.
//
// Paths under the automation tree follow the fixed layout
// /lan/fed/<area>/release/<release>/<platform>/etautotest/<bucket>/...
// and carry enough information to pre-fill the release, platform, and
// bucket tag of an issue report. All functions are pure and never fail
// on malformed input; they report "no match" instead.
package pathinfo

import (
	"regexp"
	"strings"
)

// Info is the metadata extracted from a test-case path.
type Info struct {
	Area         string // etpv, etpv3, or etpv5
	Release      string // 251, 261, or 231
	PlatformCode string // raw path segment, e.g. RHEL7.6
	Platform     string // display name for the platform code
}

var (
	infoPattern   = regexp.MustCompile(`/lan/fed/(etpv|etpv3|etpv5)/release/(251|261|231)/([^/]+)/etautotest/`)
	bucketPattern = regexp.MustCompile(`/lan/fed/etpv5/release/\d+/[^/]+/etautotest/([^/]+)`)
)

// platformDisplay maps platform path codes to their display names.
// Codes without an entry display as themselves.
var platformDisplay = map[string]string{
	"lnx86":     "Linux",
	"LR":        "LR",
	"RHEL7.6":   "RHEL7.6",
	"CENTOS7.4": "CENTOS7.4",
	"SLES12SP#": "SLES12SP#",
	"LOP":       "LOP",
}

// ExtractInfo parses area, release, and platform out of a test-case path.
// The second return value is false when the path does not follow the
// automation tree layout.
func ExtractInfo(path string) (Info, bool) {
	m := infoPattern.FindStringSubmatch(path)
	if m == nil {
		return Info{}, false
	}
	info := Info{
		Area:         m[1],
		Release:      m[2],
		PlatformCode: m[3],
	}
	info.Platform = PlatformDisplay(info.PlatformCode)
	return info, true
}

// ExtractBucketName returns the upper-cased directory segment immediately
// after etautotest/ for etpv5 paths. Buckets exist only in the etpv5 area;
// structurally similar etpv/etpv3 paths yield no bucket. The upper-casing
// matches how bucket-reviewer mappings are keyed on the server.
func ExtractBucketName(path string) (string, bool) {
	m := bucketPattern.FindStringSubmatch(path)
	if m == nil {
		return "", false
	}
	return strings.ToUpper(m[1]), true
}

// LooksLikeTestcasePath is the soft format check applied before adding a
// secondary test-case path. It is advisory: callers warn and let the user
// proceed anyway.
func LooksLikeTestcasePath(path string) bool {
	return strings.Contains(path, "/lan/fed/") && strings.Contains(path, "/etautotest/")
}

// PlatformDisplay returns the display name for a platform code, or the
// code itself when no mapping exists.
func PlatformDisplay(code string) string {
	if name, ok := platformDisplay[code]; ok {
		return name
	}
	return code
}

// Releases lists the known release identifiers, in dropdown order.
func Releases() []string {
	return []string{"261", "251", "231"}
}

// Platforms lists the known platform codes, in dropdown order.
func Platforms() []string {
	return []string{"lnx86", "LR", "RHEL7.6", "CENTOS7.4", "SLES12SP#", "LOP"}
}

// targetsByRelease is the fallback table of build targets per release,
// used when the targets endpoint is unreachable.
var targetsByRelease = map[string][]string{
	"261": {"26.10-d075_1_May_08"},
	"251": {
		"25.11-d065_1_Jun23",
		"25.11-d062_1_Jun_19",
		"25.11-d057_1_Jun_12",
		"25.11-d049_1Jun_05",
	},
	"231": {
		"23.13-d014_1_Oct_23",
		"23.13-d012_1_Oct_15",
	},
}

// TargetsForRelease returns the known build targets for a release.
// Unknown or empty releases have no targets.
func TargetsForRelease(release string) []string {
	return targetsByRelease[release]
}

// FallbackBuilds lists the build types assumed when the builds endpoint
// is unreachable.
func FallbackBuilds() []string {
	return []string{"Weekly", "Daily", "Daily Plus"}
}
