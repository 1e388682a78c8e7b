package browse

import (
	"regexp"
	"strconv"
)

// issueRoute matches the issue detail path as the web UI links it,
// e.g. "/issues/42".
var issueRoute = regexp.MustCompile(`^/issues/(\d+)$`)

// ParseRoute extracts the issue ID from a detail path. It accepts the
// bare ID too, so both "testertalk browse /issues/42" and
// "testertalk browse 42" land on the same issue.
func ParseRoute(path string) (int, bool) {
	if m := issueRoute.FindStringSubmatch(path); m != nil {
		id, err := strconv.Atoi(m[1])
		if err != nil || id <= 0 {
			return 0, false
		}
		return id, true
	}
	if id, err := strconv.Atoi(path); err == nil && id > 0 {
		return id, true
	}
	return 0, false
}
