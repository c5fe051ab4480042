// Package classifier assigns raw source documents to processing
// categories by case-insensitive keyword matching against the document
// title. A document may belong to several categories at once; extraction
// for each category runs independently over the same document.
package classifier

import (
	"strings"

	ahocorasick "github.com/cloudflare/ahocorasick"

	"github.com/qivook/qivook-engine/internal/domain"
	"github.com/qivook/qivook-engine/internal/logging"
)

// Category is a processing category a document may belong to.
type Category string

// Processing categories.
const (
	CategorySupplier       Category = "supplier"
	CategoryInfrastructure Category = "infrastructure"
	CategoryPricing        Category = "pricing"
	CategoryGovernment     Category = "government"
)

// AllCategories lists the categories in dispatch order.
var AllCategories = []Category{
	CategorySupplier,
	CategoryInfrastructure,
	CategoryPricing,
	CategoryGovernment,
}

// categoryKeywords maps each category to the title keywords that place a
// document in it. "storage" deliberately appears under both supplier and
// infrastructure: a storage facilities report feeds both extractions.
var categoryKeywords = map[Category][]string{
	CategorySupplier:       {"supplier", "laboratory", "storage", "food", "transporter"},
	CategoryInfrastructure: {"airport", "storage", "milling", "road", "railway"},
	CategoryPricing:        {"fuel", "labor", "cost", "price"},
	CategoryGovernment:     {"government", "ministry", "authority", "humanitarian"},
}

// FileClassifier matches document titles against the category keyword
// vocabulary in a single Aho-Corasick pass.
type FileClassifier struct {
	matcher  *ahocorasick.Matcher
	keywords []string
	kwToCats map[string][]Category
	logger   logging.Logger
}

// New builds a classifier over the full keyword vocabulary.
func New(logger logging.Logger) *FileClassifier {
	c := &FileClassifier{
		kwToCats: make(map[string][]Category),
		logger:   logger,
	}

	for _, cat := range AllCategories {
		for _, kw := range categoryKeywords[cat] {
			if _, seen := c.kwToCats[kw]; !seen {
				c.keywords = append(c.keywords, kw)
			}
			c.kwToCats[kw] = append(c.kwToCats[kw], cat)
		}
	}
	c.matcher = ahocorasick.NewStringMatcher(c.keywords)

	logger.Debug("file classifier initialized",
		logging.Int("keywords", len(c.keywords)))

	return c
}

// Categories returns the set of categories the document belongs to, in
// dispatch order. A document without a title matches nothing.
func (c *FileClassifier) Categories(doc domain.RawDocument) []Category {
	if doc.Title == "" {
		return nil
	}

	title := strings.ToLower(doc.Title)
	matched := make(map[Category]bool)
	for _, idx := range c.matcher.Match([]byte(title)) {
		for _, cat := range c.kwToCats[c.keywords[idx]] {
			matched[cat] = true
		}
	}

	cats := make([]Category, 0, len(matched))
	for _, cat := range AllCategories {
		if matched[cat] {
			cats = append(cats, cat)
		}
	}
	return cats
}

// IsSupplierFile reports whether the document belongs to the supplier category.
func (c *FileClassifier) IsSupplierFile(doc domain.RawDocument) bool {
	return c.inCategory(doc, CategorySupplier)
}

// IsInfrastructureFile reports whether the document belongs to the infrastructure category.
func (c *FileClassifier) IsInfrastructureFile(doc domain.RawDocument) bool {
	return c.inCategory(doc, CategoryInfrastructure)
}

// IsPricingFile reports whether the document belongs to the pricing category.
func (c *FileClassifier) IsPricingFile(doc domain.RawDocument) bool {
	return c.inCategory(doc, CategoryPricing)
}

// IsGovernmentFile reports whether the document belongs to the government category.
func (c *FileClassifier) IsGovernmentFile(doc domain.RawDocument) bool {
	return c.inCategory(doc, CategoryGovernment)
}

func (c *FileClassifier) inCategory(doc domain.RawDocument, want Category) bool {
	for _, cat := range c.Categories(doc) {
		if cat == want {
			return true
		}
	}
	return false
}
