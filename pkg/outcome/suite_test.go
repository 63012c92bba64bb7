package outcome

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkoosis/tally/pkg/naming"
	"github.com/dkoosis/tally/pkg/result"
)

func run(t *testing.T, method string, steps ...result.Result) *TestOutcome {
	t.Helper()
	o, err := ForTest(method, aUserStory())
	require.NoError(t, err)
	for _, s := range steps {
		o.RecordResult(s)
	}
	return o
}

func TestSuite_Counts(t *testing.T) {
	t.Parallel()

	s := NewSuite("A user story")
	s.RecordTestRun(run(t, "fails", result.Success, result.Failure))
	s.RecordTestRun(run(t, "passes", result.Success))
	s.RecordTestRun(run(t, "waits", result.Pending))
	s.RecordTestRun(run(t, "ignored", result.Ignored))
	s.RecordTestRun(nil)

	assert.Equal(t, 4, s.Total())
	assert.Equal(t, 1, s.FailureCount())
	assert.Equal(t, 1, s.SuccessCount())
	assert.Equal(t, 1, s.PendingCount())
	assert.Equal(t, result.Failure, s.Result())
}

func TestSuite_Result(t *testing.T) {
	t.Parallel()

	empty := NewSuite("empty")
	assert.Equal(t, result.Ignored, empty.Result(), "a suite with no runs ran nothing")

	ignored := NewSuite("ignored")
	ignored.RecordTestRun(run(t, "a", result.Ignored))
	ignored.RecordTestRun(run(t, "b", result.Ignored, result.Ignored))
	assert.Equal(t, result.Ignored, ignored.Result())

	mixed := NewSuite("mixed")
	mixed.RecordTestRun(run(t, "a", result.Skipped))
	mixed.RecordTestRun(run(t, "b", result.Success))
	assert.Equal(t, result.Success, mixed.Result())

	pending := NewSuite("pending")
	pending.RecordTestRun(run(t, "a", result.Success))
	pending.RecordTestRun(run(t, "b"))
	assert.Equal(t, result.Pending, pending.Result())
}

func TestSuite_ResultTracksLaterSteps(t *testing.T) {
	t.Parallel()

	o := run(t, "grows", result.Success)
	s := NewSuite("growing")
	s.RecordTestRun(o)
	require.Equal(t, result.Success, s.Result())

	o.RecordResult(result.Failure)
	assert.Equal(t, result.Failure, s.Result())
	assert.Equal(t, 1, s.FailureCount())
}

func TestSuite_ReportName(t *testing.T) {
	t.Parallel()

	s := NewSuite("A User Story")
	name, err := s.ReportName(naming.XML, "")
	require.NoError(t, err)
	assert.Equal(t, "a_user_story.xml", name)

	_, err = NewSuite("").ReportName(naming.XML, "")
	assert.ErrorIs(t, err, naming.ErrInvalidIdentity)
}

func TestSuite_TestRunsReturnsCopy(t *testing.T) {
	t.Parallel()

	s := NewSuite("copy")
	s.RecordTestRun(run(t, "a", result.Success))
	runs := s.TestRuns()
	runs[0] = nil
	assert.NotNil(t, s.TestRuns()[0])
}
