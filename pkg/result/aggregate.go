package result

// classify reduces a single run result through Reduce so that run-level
// predicates and step-level reduction share one rule chain.
func classify(r Result) Result {
	return Reduce([]Result{r})
}

// IsFailure reports whether a run result counts as a failure (Failure or Error).
func IsFailure(r Result) bool { return classify(r) == Failure }

// IsSuccess reports whether a run result counts as a success.
func IsSuccess(r Result) bool { return classify(r) == Success }

// IsPending reports whether a run result counts as pending.
func IsPending(r Result) bool { return classify(r) == Pending }

// IsIgnored reports whether a run result counts as ignored.
func IsIgnored(r Result) bool { return classify(r) == Ignored }

// IsSkipped reports whether a run result counts as skipped.
func IsSkipped(r Result) bool { return classify(r) == Skipped }

// Aggregate reduces already-aggregated run results to a suite verdict.
// Unlike Reduce, a suite whose runs mix skipped and ignored runs, or are all
// skipped, is a Success. A suite with no runs has only ignored runs, so it
// is Ignored.
func Aggregate(runs []Result) Result {
	if len(runs) == 0 {
		return Ignored
	}
	classified := make([]Result, len(runs))
	for i, r := range runs {
		classified[i] = classify(r)
	}
	if containsAny(classified, Failure) {
		return Failure
	}
	if containsAny(classified, Pending) {
		return Pending
	}
	if containsOnly(classified, Ignored) {
		return Ignored
	}
	return Success
}

// Counts holds per-classification run counts.
type Counts struct {
	Total   int `json:"total"`
	Success int `json:"success"`
	Failure int `json:"failure"`
	Pending int `json:"pending"`
	Ignored int `json:"ignored"`
	Skipped int `json:"skipped"`
}

// Tally classifies each run independently.
func Tally(runs []Result) Counts {
	c := Counts{Total: len(runs)}
	for _, r := range runs {
		switch {
		case IsFailure(r):
			c.Failure++
		case IsSuccess(r):
			c.Success++
		case IsPending(r):
			c.Pending++
		case IsIgnored(r):
			c.Ignored++
		case IsSkipped(r):
			c.Skipped++
		}
	}
	return c
}
