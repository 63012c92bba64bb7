package result

import "github.com/charmbracelet/log"

// Reduce combines step results into one verdict. Rules are applied in order
// and the first match wins:
//
//  1. no results: Pending
//  2. any Failure or Error: Failure
//  3. any Pending: Pending
//  4. only Ignored: Ignored
//  5. only Skipped: Skipped
//  6. only Success, Ignored and Skipped: Success
//  7. anything else: Pending
//
// The order of results never matters.
func Reduce(results []Result) Result {
	if len(results) == 0 {
		return Pending
	}
	if containsAny(results, Failure, Error) {
		return Failure
	}
	if containsAny(results, Pending) {
		return Pending
	}
	if containsOnly(results, Ignored) {
		return Ignored
	}
	if containsOnly(results, Skipped) {
		return Skipped
	}
	if containsOnly(results, Success, Ignored, Skipped) {
		return Success
	}
	log.Warn("unrecognised result in collection, treating as pending", "results", results)
	return Pending
}

func containsAny(results []Result, wanted ...Result) bool {
	for _, r := range results {
		for _, w := range wanted {
			if r == w {
				return true
			}
		}
	}
	return false
}

// containsOnly is false for an empty collection.
func containsOnly(results []Result, allowed ...Result) bool {
	if len(results) == 0 {
		return false
	}
	for _, r := range results {
		if !containsAny(allowed, r) {
			return false
		}
	}
	return true
}
