package stream

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTermWriter_Emit_WithoutFooter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	tw := newTermWriter(&buf, 80, 24)
	tw.Emit("  checkout   · TestCart  0.01s")
	assert.Equal(t, "  checkout   · TestCart  0.01s\n", buf.String(), "no escapes when nothing is live")
}

func TestTermWriter_Emit_ClearsFooterFirst(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	tw := newTermWriter(&buf, 80, 24)
	tw.Live([]string{"  ─── active", "  checkout [1] TestCart"})
	buf.Reset()

	tw.Emit("SUCCESS")
	got := buf.String()
	assert.Equal(t, 2, strings.Count(got, eraseLine))
	assert.Equal(t, 2, strings.Count(got, cursorUp))
	assert.True(t, strings.HasSuffix(got, eraseLine+"SUCCESS\n"), "%q", got)
	assert.Zero(t, tw.live)
}

func TestTermWriter_Live_ReplacesPreviousFooter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	tw := newTermWriter(&buf, 80, 24)
	tw.Live([]string{"a", "b", "c"})
	buf.Reset()

	tw.Live([]string{"d"})
	got := buf.String()
	assert.Equal(t, 3, strings.Count(got, eraseLine), "old footer erased before redraw")
	assert.True(t, strings.HasSuffix(got, "d\n"))
	assert.Equal(t, 1, tw.live)
}

func TestTermWriter_Settle_WhenNothingLive(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	tw := newTermWriter(&buf, 80, 24)
	tw.Settle()
	assert.Zero(t, buf.Len())
}

func TestTermWriter_Live_CapsToThirdOfScreen(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	tw := newTermWriter(&buf, 80, 12) // room = max(12/3, 3) = 4
	lines := make([]string, 10)
	for i := range lines {
		lines[i] = fmt.Sprintf("pkg%d", i)
	}
	tw.Live(lines)

	assert.Equal(t, 4, tw.live)
	out := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, out, 4)
	assert.Equal(t, "  ... and 7 more", out[3])
}

func TestTermWriter_Live_TruncatesToWidth(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	tw := newTermWriter(&buf, 20, 24)
	tw.Live([]string{"  example.com/shop/checkout_flow [3] TestCheckout"})

	for _, line := range strings.Split(strings.TrimRight(buf.String(), "\n"), "\n") {
		assert.LessOrEqual(t, runewidth.StringWidth(line), 20, line)
	}
}

func TestTruncateToWidth(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		in    string
		width int
	}{
		{"ascii", "TestCheckout/member_with_coupon", 12},
		{"wide runes", "テストテストテスト", 10},
		{"tiny width", "TestCheckout", 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncateToWidth(tt.in, tt.width)
			assert.LessOrEqual(t, runewidth.StringWidth(got), tt.width)
			if tt.width > 3 {
				assert.True(t, strings.HasSuffix(got, "..."), got)
			}
		})
	}
	assert.Equal(t, "short", truncateToWidth("short", 10))
}

// ansiSeq matches the CSI sequences termWriter and lipgloss emit.
var ansiSeq = regexp.MustCompile(`\x1b\[[0-9;]*[A-Za-z]`)

// stripANSI removes escape sequences so tests can assert on visible text.
func stripANSI(s string) string {
	return ansiSeq.ReplaceAllString(s, "")
}

func TestStripANSI(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "\rSUCCESS", stripANSI(cursorUp+eraseLine+"SUCCESS"))
	assert.Equal(t, "FAILURE", stripANSI("\x1b[1;31mFAILURE\x1b[0m"))
}
