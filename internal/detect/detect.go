// Package detect sniffs stdin to determine the input format.
package detect

import (
	"bytes"
	"encoding/json"

	"github.com/dkoosis/tally/pkg/result"
	"github.com/dkoosis/tally/pkg/testjson"
)

// Format represents a recognized input format.
type Format int

const (
	Unknown    Format = iota
	GoTestJSON        // go test -json NDJSON stream
	ResultList        // whitespace-separated result names, e.g. "SUCCESS FAILURE"
)

func (f Format) String() string {
	switch f {
	case GoTestJSON:
		return "go-test-json"
	case ResultList:
		return "result-list"
	default:
		return "unknown"
	}
}

// Sniff examines the first bytes of input to determine format.
// Returns the detected format. Input must contain at least the first line.
func Sniff(data []byte) Format {
	data = bytes.TrimLeft(data, " \t\r\n")
	if len(data) == 0 {
		return Unknown
	}

	if data[0] == '{' {
		if isGoTestJSON(data) {
			return GoTestJSON
		}
		return Unknown
	}

	if isResultList(data) {
		return ResultList
	}
	return Unknown
}

func isGoTestJSON(data []byte) bool {
	firstLine, _, _ := bytes.Cut(data, []byte("\n"))

	var event struct {
		Action  string `json:"Action"`
		Package string `json:"Package"`
	}
	if err := json.Unmarshal(firstLine, &event); err != nil {
		return false
	}

	switch event.Action {
	case testjson.ActionStart, testjson.ActionRun, testjson.ActionPause, testjson.ActionCont,
		testjson.ActionPass, testjson.ActionBench, testjson.ActionFail, testjson.ActionOutput,
		testjson.ActionSkip:
		return true
	}
	return false
}

// isResultList reports whether the first word of data names a result.
func isResultList(data []byte) bool {
	fields := bytes.Fields(data)
	if len(fields) == 0 {
		return false
	}
	_, err := result.Parse(string(fields[0]))
	return err == nil
}
