package complexity

import (
	"fmt"
	"regexp"
	"strings"
)

// keywordMatcher counts case-insensitive whole-word keyword and phrase
// occurrences.
type keywordMatcher struct {
	patterns []*regexp.Regexp
}

func newKeywordMatcher(keywords []string) (*keywordMatcher, error) {
	patterns := make([]*regexp.Regexp, 0, len(keywords))
	for _, keyword := range keywords {
		trimmed := strings.TrimSpace(keyword)
		if trimmed == "" {
			continue
		}
		pattern, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(trimmed) + `\b`)
		if err != nil {
			return nil, fmt.Errorf("compile keyword %q: %w", keyword, err)
		}
		patterns = append(patterns, pattern)
	}
	return &keywordMatcher{patterns: patterns}, nil
}

// Count returns the total number of keyword occurrences in text.
func (m *keywordMatcher) Count(text string) int {
	total := 0
	for _, pattern := range m.patterns {
		total += len(pattern.FindAllStringIndex(text, -1))
	}
	return total
}
