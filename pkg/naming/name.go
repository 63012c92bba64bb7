package naming

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidIdentity is returned when an identity carries no usable name.
var ErrInvalidIdentity = errors.New("invalid identity: no test name and no story")

// Story groups tests under a user story. Title is the human title; Token is
// the class-like grouping token it came from, if any.
type Story struct {
	Title string `json:"title"`
	Token string `json:"token,omitempty"`
}

// StoryFrom builds a story from a grouping token such as a type name or a
// package path. StoryFrom("AUserStory").Title == "A user story".
func StoryFrom(token string) Story {
	return Story{Title: Humanize(token), Token: token}
}

// DisplayTitle returns Title, falling back to the humanised Token.
func (s Story) DisplayTitle() string {
	if strings.TrimSpace(s.Title) != "" {
		return s.Title
	}
	return Humanize(s.Token)
}

// ReportName names the story's own report using only its title as base token.
func (s Story) ReportName(format Format, qualifier string) (string, error) {
	base := Normalize(s.DisplayTitle())
	if base == "" {
		return "", fmt.Errorf("story %q: %w", s.Token, ErrInvalidIdentity)
	}
	return decorate(base, qualifier, format), nil
}

// Identity describes one test for naming purposes. Method, when set, takes
// precedence over the free-text Title.
type Identity struct {
	Title  string `json:"title,omitempty"`
	Method string `json:"method,omitempty"`
	Story  *Story `json:"story,omitempty"`
}

// BaseName returns the method name if present, otherwise the title.
func (id Identity) BaseName() string {
	if strings.TrimSpace(id.Method) != "" {
		return id.Method
	}
	return id.Title
}

// Validate fails with ErrInvalidIdentity when neither the test nor its story
// yields a non-empty base token.
func (id Identity) Validate() error {
	_, err := id.baseToken()
	return err
}

func (id Identity) baseToken() (string, error) {
	test := Normalize(id.BaseName())
	story := ""
	if id.Story != nil {
		story = Normalize(id.Story.DisplayTitle())
	}
	switch {
	case story != "" && test != "":
		return story + "_" + test, nil
	case test != "":
		return test, nil
	case story != "":
		return story, nil
	}
	return "", fmt.Errorf("title %q, method %q: %w", id.Title, id.Method, ErrInvalidIdentity)
}

// Name derives the report name for id: <base>[_<qualifier>][.<ext>].
// The base is the normalized story title joined to the normalized test name.
func Name(id Identity, qualifier string, format Format) (string, error) {
	base, err := id.baseToken()
	if err != nil {
		return "", err
	}
	return decorate(base, qualifier, format), nil
}

func decorate(base, qualifier string, format Format) string {
	name := base
	if q := Normalize(qualifier); q != "" {
		name += "_" + q
	}
	if ext := format.Extension(); ext != "" {
		name += "." + ext
	}
	return name
}
