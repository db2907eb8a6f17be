package corpus

import (
	"fmt"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// frontmatter is the optional YAML header of a corpus document.
type frontmatter struct {
	ID       string `yaml:"id"`
	Title    string `yaml:"title"`
	Category string `yaml:"gamp_category"`
}

const frontmatterDelimiter = "---"

// sectionHeaderPattern matches numbered section headers with or without
// markdown heading markers, e.g. "## 2. Functional Requirements".
var sectionHeaderPattern = regexp.MustCompile(`^#{0,6}\s*(\d+)\.\s+(.+?)\s*$`)

// requirementLinePattern matches one requirement entry inside a section:
// either a bullet or a numbered sub-item like "2.1" / "3.2.4".
var requirementLinePattern = regexp.MustCompile(`^\s*(?:[-*]\s+|\d+\.\d+(?:\.\d+)*[.)]?\s+)\S`)

// sectionKindForTitle maps a section title to a recognized kind.
// Unrecognized numbered sections (Introduction, Scope) return "".
func sectionKindForTitle(title string) SectionKind {
	lower := strings.ToLower(title)
	switch {
	case strings.Contains(lower, "functional"):
		return SectionFunctional
	case strings.Contains(lower, "regulatory") || strings.Contains(lower, "compliance"):
		return SectionRegulatory
	case strings.Contains(lower, "performance"):
		return SectionPerformance
	case strings.Contains(lower, "integration"):
		return SectionIntegration
	case strings.Contains(lower, "technical") || strings.Contains(lower, "architecture"):
		return SectionTechnical
	default:
		return ""
	}
}

// ParseDocument parses a corpus file body into a Document. The id falls
// back to fallbackID when the frontmatter does not set one; the category
// falls back to dirCategory when the frontmatter does not set one.
func ParseDocument(path, fallbackID string, dirCategory Category, data []byte) (*Document, error) {
	text := string(data)
	if strings.TrimSpace(text) == "" {
		return nil, &InvalidDocumentError{ID: fallbackID, Path: path, Reason: "document is empty"}
	}

	body, fm, err := splitFrontmatter(text)
	if err != nil {
		return nil, &InvalidDocumentError{ID: fallbackID, Path: path, Reason: err.Error()}
	}

	id := fallbackID
	if fm.ID != "" {
		id = fm.ID
	}
	category := dirCategory
	if fm.Category != "" {
		parsed, err := ParseCategory(fm.Category)
		if err != nil {
			return nil, &InvalidDocumentError{ID: id, Path: path, Reason: err.Error()}
		}
		category = parsed
	}
	if category == "" {
		return nil, &InvalidDocumentError{ID: id, Path: path, Reason: "no category in path or frontmatter"}
	}

	counts, sectionsSeen := countSections(body)
	if sectionsSeen == 0 {
		return nil, &InvalidDocumentError{ID: id, Path: path, Reason: "no numbered sections found"}
	}

	return &Document{
		ID:            id,
		Category:      category,
		Path:          path,
		Title:         fm.Title,
		Text:          body,
		SectionCounts: counts,
	}, nil
}

// splitFrontmatter separates an optional YAML frontmatter block from the body.
func splitFrontmatter(text string) (string, frontmatter, error) {
	var fm frontmatter
	lines := strings.SplitAfter(text, "\n")
	if len(lines) == 0 || strings.TrimRight(lines[0], "\r\n") != frontmatterDelimiter {
		return text, fm, nil
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimRight(lines[i], "\r\n") == frontmatterDelimiter {
			header := strings.Join(lines[1:i], "")
			if err := yaml.Unmarshal([]byte(header), &fm); err != nil {
				return "", fm, fmt.Errorf("parse frontmatter: %w", err)
			}
			return strings.Join(lines[i+1:], ""), fm, nil
		}
	}
	return "", fm, fmt.Errorf("unterminated frontmatter block")
}

// countSections counts requirement entries per recognized section and
// reports how many numbered section headers were seen in total.
func countSections(body string) (map[SectionKind]int, int) {
	counts := make(map[SectionKind]int)
	sectionsSeen := 0
	current := SectionKind("")

	for _, line := range strings.Split(body, "\n") {
		if match := sectionHeaderPattern.FindStringSubmatch(line); match != nil {
			sectionsSeen++
			current = sectionKindForTitle(match[2])
			if current != "" {
				if _, ok := counts[current]; !ok {
					counts[current] = 0
				}
			}
			continue
		}
		if current == "" {
			continue
		}
		if requirementLinePattern.MatchString(line) {
			counts[current]++
		}
	}
	return counts, sectionsSeen
}
