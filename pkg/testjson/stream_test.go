package testjson

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkoosis/tally/pkg/result"
)

const paymentsStream = `{"Action":"start","Package":"example.com/payments"}
{"Action":"run","Package":"example.com/payments","Test":"TestRefund"}

{"Action":"output","Package":"example.com/payments","Test":"TestRefund","Output":"=== RUN   TestRefund\n"}
{"Action":"fail","Package":"example.com/payments","Test":"TestRefund","Elapsed":0.02}
{"Action":"run","Package":"example.com/payments","Test":"TestCapture"}
{"Action":"skip","Package":"example.com/payments","Test":"TestCapture","Elapsed":0}
{"Action":"fail","Package":"example.com/payments","Elapsed":0.4}
`

func collect(t *testing.T, input string) ([]TestEvent, int) {
	t.Helper()
	var events []TestEvent
	malformed, err := Stream(context.Background(), strings.NewReader(input), func(e TestEvent) {
		events = append(events, e)
	})
	require.NoError(t, err)
	return events, malformed
}

func TestStream_DeliversEventsInOrder(t *testing.T) {
	t.Parallel()

	events, malformed := collect(t, paymentsStream)
	assert.Zero(t, malformed)
	require.Len(t, events, 7, "blank lines are not events")
	assert.Equal(t, ActionStart, events[0].Action)
	assert.Equal(t, "TestRefund", events[1].Test)
	assert.Equal(t, ActionFail, events[6].Action)
	assert.Empty(t, events[6].Test, "package-level event")
}

func TestStream_EventsReduceToTestVerdicts(t *testing.T) {
	t.Parallel()

	events, _ := collect(t, paymentsStream)

	var verdicts []result.Result
	for _, e := range events {
		if e.Test == "" {
			continue
		}
		if r, ok := ActionResult(e.Action); ok {
			verdicts = append(verdicts, r)
		}
	}
	assert.Equal(t, []result.Result{result.Failure, result.Skipped}, verdicts)
	assert.Equal(t, result.Failure, result.Reduce(verdicts))
}

func TestStream_When_LinesAreMalformed(t *testing.T) {
	t.Parallel()

	input := strings.Join([]string{
		`{"Action":"run","Package":"x","Test":"TestLedger"}`,
		`{CORRUPTED}`,
		`{"Action":"pass","Package":"x","Test":"TestLedger","Elapsed":0.1}`,
		`panic: not json at all`,
		`{"Action":"pass","Package":"x","Elapsed":0.2}`,
	}, "\n") + "\n"

	events, malformed := collect(t, input)
	assert.Equal(t, 2, malformed)
	assert.Len(t, events, 3)
}

func TestStream_When_ContextCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	input := `{"Action":"start","Package":"example.com/payments"}` + "\n"
	var count int
	_, err := Stream(ctx, strings.NewReader(input), func(TestEvent) {
		count++
		cancel()
	})
	if err != nil {
		assert.ErrorIs(t, err, context.Canceled)
	}
	assert.Equal(t, 1, count)
}

// stalledReader blocks in Read until closed, like an idle stdin pipe.
type stalledReader struct {
	closed chan struct{}
}

func (s *stalledReader) Read([]byte) (int, error) {
	<-s.closed
	return 0, io.EOF
}

func (s *stalledReader) Close() error {
	select {
	case <-s.closed:
	default:
		close(s.closed)
	}
	return nil
}

func TestStream_When_ReaderStalls(t *testing.T) {
	t.Parallel()

	sr := &stalledReader{closed: make(chan struct{})}
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		_, err := Stream(ctx, sr, func(TestEvent) {})
		done <- err
	}()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	case <-time.After(2 * time.Second):
		t.Fatal("Stream stayed blocked on the reader after its deadline")
	}
}

func TestActionResult(t *testing.T) {
	t.Parallel()

	tests := []struct {
		action string
		want   result.Result
		ok     bool
	}{
		{ActionPass, result.Success, true},
		{ActionFail, result.Failure, true},
		{ActionSkip, result.Skipped, true},
		{ActionRun, result.Unknown, false},
		{ActionOutput, result.Unknown, false},
		{ActionPause, result.Unknown, false},
	}
	for _, tt := range tests {
		got, ok := ActionResult(tt.action)
		assert.Equal(t, tt.want, got, tt.action)
		assert.Equal(t, tt.ok, ok, tt.action)
	}
}
