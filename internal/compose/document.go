// Package compose renders findings into the two narrative documents.
//
// Community and Technical are pure: the same findings, context and label
// always produce byte-identical documents, and neither touches its inputs.
// Neither renderer checks finding completeness; missing lists render as
// "none recorded".
package compose

import "strings"

// Section is a heading followed by paragraphs.
type Section struct {
	Heading    string   `json:"heading"`
	Paragraphs []string `json:"paragraphs"`
}

// Document is a rendered narrative.
type Document struct {
	Title    string    `json:"title"`
	Sections []Section `json:"sections"`
}

// Lines flattens the document body into one line per heading or
// paragraph, the shape the exporter consumes. The title is not included.
func (d Document) Lines() []string {
	var lines []string
	for _, s := range d.Sections {
		lines = append(lines, s.Heading)
		lines = append(lines, s.Paragraphs...)
	}
	return lines
}

// String renders the document as plain text.
func (d Document) String() string {
	var b strings.Builder
	b.WriteString(d.Title)
	b.WriteString("\n")
	for _, s := range d.Sections {
		b.WriteString("\n")
		b.WriteString(s.Heading)
		b.WriteString("\n")
		for _, p := range s.Paragraphs {
			b.WriteString(p)
			b.WriteString("\n")
		}
	}
	return b.String()
}

// Markdown renders the document as Markdown for terminal preview.
func (d Document) Markdown() string {
	var b strings.Builder
	b.WriteString("# ")
	b.WriteString(d.Title)
	b.WriteString("\n")
	for _, s := range d.Sections {
		b.WriteString("\n## ")
		b.WriteString(s.Heading)
		b.WriteString("\n\n")
		for _, p := range s.Paragraphs {
			b.WriteString(p)
			b.WriteString("\n\n")
		}
	}
	return b.String()
}

// Contains reports whether the plain-text rendering contains s.
func (d Document) Contains(s string) bool {
	return strings.Contains(d.String(), s)
}
