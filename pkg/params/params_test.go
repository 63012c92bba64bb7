package params

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTestName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "should_do_this[0]", TestName("should_do_this", 0))
	assert.Equal(t, "should_do_this[12]", TestName("should_do_this", 12))
	assert.Equal(t, "[jane]", SetName("jane"))
	assert.Equal(t, "[42]", SetName(42))
}

func TestRestartDue(t *testing.T) {
	t.Parallel()

	var due []int
	for set := 0; set < 10; set++ {
		if RestartDue(set, DefaultRestartFrequency) {
			due = append(due, set)
		}
	}
	assert.Equal(t, []int{3, 6, 9}, due)

	assert.False(t, RestartDue(4, 0), "zero frequency disables restarts")
	assert.False(t, RestartDue(4, -1))
	assert.True(t, RestartDue(1, 1))
	assert.False(t, RestartDue(0, 1))
}

func TestSplit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name, method, qualifier string
	}{
		{"should_do_this[2]", "should_do_this", "2"},
		{"TestCheckout/guest_user", "TestCheckout", "guest_user"},
		{"TestA/b/c", "TestA", "b/c"},
		{"TestPlain", "TestPlain", ""},
		{"[odd]", "[odd]", ""},
		{"", "", ""},
	}
	for _, tt := range tests {
		method, qualifier := Split(tt.name)
		assert.Equal(t, tt.method, method, tt.name)
		assert.Equal(t, tt.qualifier, qualifier, tt.name)
	}
}

func TestSetIndex(t *testing.T) {
	t.Parallel()

	n, ok := SetIndex(TestName("m", 7))
	assert.True(t, ok)
	assert.Equal(t, 7, n)

	_, ok = SetIndex("TestCheckout/guest_user")
	assert.False(t, ok)

	_, ok = SetIndex("TestPlain")
	assert.False(t, ok)
}
