// Package filter matches playlist names against a keyword set.
//
// Matching is case-insensitive and whole-word: a keyword matches only
// when it appears as a standalone word in the candidate text, so "tamil"
// matches "Tamil Hits" but not "tamiland".
package filter

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/desertthunder/cratedig/internal/shared"
)

// defaultKeywords cover the common ways Tamil playlists are titled.
var defaultKeywords = []string{"tamil", "kollywood", "chennai", "madras", "tamizh"}

// Matcher holds a compiled keyword pattern tagged with a language label.
type Matcher struct {
	label    string
	keywords []string
	pattern  *regexp.Regexp
}

// New compiles a matcher for the given keywords. The label names the
// language or category the keyword set represents and is attached to
// matched records.
func New(label string, keywords []string) (*Matcher, error) {
	if label == "" {
		return nil, fmt.Errorf("%w: matcher label is required", shared.ErrInvalidInput)
	}

	cleaned := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		kw = strings.TrimSpace(kw)
		if kw == "" {
			continue
		}
		cleaned = append(cleaned, strings.ToLower(kw))
	}

	if len(cleaned) == 0 {
		return nil, fmt.Errorf("%w: at least one keyword is required", shared.ErrInvalidInput)
	}

	quoted := make([]string, len(cleaned))
	for i, kw := range cleaned {
		quoted[i] = regexp.QuoteMeta(kw)
	}

	pattern, err := regexp.Compile(`(?i)\b(?:` + strings.Join(quoted, "|") + `)\b`)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid keyword pattern: %v", shared.ErrInvalidInput, err)
	}

	return &Matcher{label: label, keywords: cleaned, pattern: pattern}, nil
}

// Default returns the built-in Tamil matcher.
func Default() *Matcher {
	m, err := New("Tamil", defaultKeywords)
	if err != nil {
		panic(err)
	}

	return m
}

// Match reports whether any keyword appears as a whole word in text.
func (m *Matcher) Match(text string) bool {
	if text == "" {
		return false
	}

	return m.pattern.MatchString(text)
}

// Label returns the language label attached to matched records.
func (m *Matcher) Label() string {
	return m.label
}

// Keywords returns the normalized keyword set.
func (m *Matcher) Keywords() []string {
	return append([]string(nil), m.keywords...)
}
