// Package outcome holds the results of one acceptance test (or scenario)
// execution and of a suite of such executions.
//
// A TestOutcome records the result of each step as the test runs and derives
// its overall result and report name on demand. Nothing is cached: querying
// after more steps are recorded always reflects the full step history.
// A TestOutcome belongs to the run that created it and is not safe for
// concurrent use.
package outcome

import (
	"fmt"

	"github.com/dkoosis/tally/pkg/naming"
	"github.com/dkoosis/tally/pkg/result"
)

// TestOutcome is the addressable unit for one test run.
type TestOutcome struct {
	id    naming.Identity
	steps []result.Result
}

// New creates an outcome for a test known only by its display title.
func New(title string) (*TestOutcome, error) {
	return newOutcome(naming.Identity{Title: title})
}

// ForTest creates an outcome for a test method scoped to a story.
// A nil story is allowed.
func ForTest(method string, story *naming.Story) (*TestOutcome, error) {
	return newOutcome(naming.Identity{Method: method, Story: story})
}

// ForTestInStory creates an outcome for a free-text scenario title in a story.
func ForTestInStory(title string, story naming.Story) (*TestOutcome, error) {
	return newOutcome(naming.Identity{Title: title, Story: &story})
}

func newOutcome(id naming.Identity) (*TestOutcome, error) {
	if id.Story != nil {
		s := *id.Story
		id.Story = &s
	}
	if err := id.Validate(); err != nil {
		return nil, fmt.Errorf("creating test outcome: %w", err)
	}
	return &TestOutcome{id: id}, nil
}

// SetMethodName sets the method name, which then takes precedence over the
// title when naming reports.
func (o *TestOutcome) SetMethodName(method string) {
	o.id.Method = method
}

// MethodName returns the method name, if any.
func (o *TestOutcome) MethodName() string { return o.id.Method }

// Title returns the display title, or the humanised method name when the
// outcome was created without one.
func (o *TestOutcome) Title() string {
	if o.id.Title != "" {
		return o.id.Title
	}
	return naming.Humanize(o.id.Method)
}

// Story returns the owning story, or nil.
func (o *TestOutcome) Story() *naming.Story {
	if o.id.Story == nil {
		return nil
	}
	s := *o.id.Story
	return &s
}

// Identity returns the identity used for naming.
func (o *TestOutcome) Identity() naming.Identity {
	id := o.id
	id.Story = o.Story()
	return id
}

// RecordResult appends a step result.
func (o *TestOutcome) RecordResult(r result.Result) {
	o.steps = append(o.steps, r)
}

// Results returns a copy of the recorded step results in recording order.
func (o *TestOutcome) Results() []result.Result {
	out := make([]result.Result, len(o.steps))
	copy(out, o.steps)
	return out
}

// StepCount returns the number of recorded step results.
func (o *TestOutcome) StepCount() int { return len(o.steps) }

// Result reduces the current step results to the overall result.
func (o *TestOutcome) Result() result.Result {
	return result.Reduce(o.steps)
}

// IsFailure reports whether the overall result is a failure.
func (o *TestOutcome) IsFailure() bool { return result.IsFailure(o.Result()) }

// IsSuccess reports whether the overall result is a success.
func (o *TestOutcome) IsSuccess() bool { return result.IsSuccess(o.Result()) }

// IsPending reports whether the overall result is pending.
func (o *TestOutcome) IsPending() bool { return result.IsPending(o.Result()) }

// ReportName derives the report name for this outcome. Pass naming.Bare for a
// name without extension and "" for no qualifier.
func (o *TestOutcome) ReportName(format naming.Format, qualifier string) (string, error) {
	return naming.Name(o.id, qualifier, format)
}
