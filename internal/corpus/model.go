package corpus

import "fmt"

// Category is the GAMP classification label for a corpus document.
type Category string

// GAMP category constants, matching the corpus directory layout.
const (
	Category3           Category = "category_3"
	Category4           Category = "category_4"
	Category5           Category = "category_5"
	CategoryAmbiguous   Category = "ambiguous"
	CategorySpecialCase Category = "special_cases"
)

// AllCategories returns the full category taxonomy.
func AllCategories() []Category {
	return []Category{
		Category3,
		Category4,
		Category5,
		CategoryAmbiguous,
		CategorySpecialCase,
	}
}

// ParseCategory maps a directory segment or frontmatter value to a Category.
func ParseCategory(raw string) (Category, error) {
	switch raw {
	case string(Category3), "3":
		return Category3, nil
	case string(Category4), "4":
		return Category4, nil
	case string(Category5), "5":
		return Category5, nil
	case string(CategoryAmbiguous):
		return CategoryAmbiguous, nil
	case string(CategorySpecialCase), "special_case":
		return CategorySpecialCase, nil
	default:
		return "", fmt.Errorf("unknown category %q", raw)
	}
}

// SectionKind identifies a recognized requirements section.
type SectionKind string

// Recognized requirements section kinds.
const (
	SectionFunctional  SectionKind = "functional"
	SectionRegulatory  SectionKind = "regulatory"
	SectionPerformance SectionKind = "performance"
	SectionIntegration SectionKind = "integration"
	SectionTechnical   SectionKind = "technical"
)

// RequirementSections returns the section kinds that carry requirements.
func RequirementSections() []SectionKind {
	return []SectionKind{
		SectionFunctional,
		SectionRegulatory,
		SectionPerformance,
		SectionIntegration,
		SectionTechnical,
	}
}

// Document is one loaded requirements specification. Documents are
// immutable after load; consumers receive values, never shared state.
type Document struct {
	ID            string
	Category      Category
	Path          string
	Title         string
	Text          string
	SectionCounts map[SectionKind]int
}

// TotalRequirements sums requirement counts across all sections.
func (d *Document) TotalRequirements() int {
	total := 0
	for _, count := range d.SectionCounts {
		total += count
	}
	return total
}

// Corpus is an ordered collection of unique documents. It owns its
// documents exclusively and is treated as an immutable snapshot once built.
type Corpus struct {
	docs []*Document
	byID map[string]*Document
}

// NewCorpus builds a corpus from documents, rejecting duplicate IDs.
func NewCorpus(docs []*Document) (*Corpus, error) {
	c := &Corpus{
		docs: make([]*Document, 0, len(docs)),
		byID: make(map[string]*Document, len(docs)),
	}
	for _, doc := range docs {
		if doc == nil {
			return nil, fmt.Errorf("corpus: nil document")
		}
		if _, exists := c.byID[doc.ID]; exists {
			return nil, fmt.Errorf("corpus: duplicate document id %q", doc.ID)
		}
		c.docs = append(c.docs, doc)
		c.byID[doc.ID] = doc
	}
	return c, nil
}

// Len returns the number of documents.
func (c *Corpus) Len() int {
	return len(c.docs)
}

// Documents returns the documents in load order.
func (c *Corpus) Documents() []*Document {
	out := make([]*Document, len(c.docs))
	copy(out, c.docs)
	return out
}

// ByID returns the document with the given id, if present.
func (c *Corpus) ByID(id string) (*Document, bool) {
	doc, ok := c.byID[id]
	return doc, ok
}

// CategoryCounts returns document counts per category.
func (c *Corpus) CategoryCounts() map[Category]int {
	counts := make(map[Category]int)
	for _, doc := range c.docs {
		counts[doc.Category]++
	}
	return counts
}
