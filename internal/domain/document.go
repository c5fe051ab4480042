package domain

// RawDocument is a semi-structured source fragment scraped from
// logcluster.org. Fragments are free-form JSON; anything beyond the title
// and text content is ignored. A document missing either field is treated
// as empty input by every extractor rather than as an error.
type RawDocument struct {
	Title       string `json:"title"`
	TextContent string `json:"text_content"`
}

// IsEmpty reports whether the document carries nothing extractable.
func (d RawDocument) IsEmpty() bool {
	return d.Title == "" && d.TextContent == ""
}
