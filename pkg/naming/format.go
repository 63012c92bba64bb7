package naming

import (
	"fmt"
	"strings"
)

// Format selects the extension appended to a report name.
type Format int

const (
	// Bare produces a name without extension.
	Bare Format = iota
	HTML
	XML
	JSON
)

// Extension returns the lower-case file extension, or "" for Bare.
func (f Format) Extension() string {
	switch f {
	case HTML:
		return "html"
	case XML:
		return "xml"
	case JSON:
		return "json"
	default:
		return ""
	}
}

func (f Format) String() string {
	if f == Bare {
		return "none"
	}
	if ext := f.Extension(); ext != "" {
		return ext
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// ParseFormat accepts html, xml, json, and none or the empty string for Bare.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none", "bare":
		return Bare, nil
	case "html":
		return HTML, nil
	case "xml":
		return XML, nil
	case "json":
		return JSON, nil
	}
	return Bare, fmt.Errorf("unknown report format %q (expected html, xml, json or none)", s)
}
