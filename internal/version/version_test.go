package version

import (
	"strings"
	"testing"
)

func TestString(t *testing.T) {
	old := Version
	Version = "v1.2.3"
	defer func() { Version = old }()

	got := String()
	if !strings.HasPrefix(got, "tally v1.2.3 (commit ") {
		t.Errorf("String() = %q", got)
	}
}
