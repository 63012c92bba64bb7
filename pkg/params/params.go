// Package params names parameterised test runs and decides when a
// long-lived fixture (a browser session, say) should be restarted between
// parameter sets.
package params

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultRestartFrequency restarts the fixture every third parameter set.
const DefaultRestartFrequency = 3

// TestName returns the display name of one parameter set of method,
// e.g. "should_do_this[2]".
func TestName(method string, set int) string {
	return fmt.Sprintf("%s[%d]", method, set)
}

// SetName labels a parameter set by its first parameter, e.g. "[jane]".
func SetName(firstParam any) string {
	return fmt.Sprintf("[%v]", firstParam)
}

// RestartDue reports whether the fixture should be restarted before running
// parameter set number set. Set 0 never restarts. A frequency of zero or less
// disables restarts.
func RestartDue(set, frequency int) bool {
	if frequency <= 0 {
		return false
	}
	return set > 0 && set%frequency == 0
}

// Split separates a parameterised or nested test name into the base method
// and a qualifier that distinguishes the run:
//
//	Split("should_do_this[2]")       == ("should_do_this", "2")
//	Split("TestCheckout/guest_user") == ("TestCheckout", "guest_user")
//	Split("TestA/b/c")               == ("TestA", "b/c")
//	Split("TestPlain")               == ("TestPlain", "")
func Split(name string) (method, qualifier string) {
	if i := strings.IndexByte(name, '/'); i >= 0 {
		return name[:i], name[i+1:]
	}
	if strings.HasSuffix(name, "]") {
		if i := strings.LastIndexByte(name, '['); i > 0 {
			return name[:i], name[i+1 : len(name)-1]
		}
	}
	return name, ""
}

// SetIndex extracts the parameter set number from a name produced by
// TestName. ok is false when name carries no numeric index.
func SetIndex(name string) (set int, ok bool) {
	_, q := Split(name)
	n, err := strconv.Atoi(q)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
