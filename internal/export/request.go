package export

import (
	"fmt"
	"strings"
)

// Format selects the container written by the Exporter.
type Format string

const (
	FormatDOCX Format = "docx"
	FormatXLSX Format = "xlsx"
)

// Formats returns the supported formats, DOCX first.
func Formats() []Format {
	return []Format{FormatDOCX, FormatXLSX}
}

// ParseFormat accepts "docx" or "xlsx", case-insensitive.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case FormatDOCX, FormatXLSX:
		return f, nil
	}
	return "", fmt.Errorf("unknown export format %q: must be one of %v", s, Formats())
}

// Extension returns the file extension including the dot.
func (f Format) Extension() string {
	return "." + string(f)
}

// ContentType returns the MIME type of the container.
func (f Format) ContentType() string {
	switch f {
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	}
}

// Table is a plain-text table with a header row.
type Table struct {
	Header []string
	Rows   [][]string
}

// Image is an embedded figure. Payload is a data URL or bare base64 of a
// PNG or JPEG.
type Image struct {
	Caption string
	Payload string
}

// Request describes one document to serialize.
type Request struct {
	Title   string
	Project string // appended to narrative filenames; empty for the plan
	Body    []string
	Table   *Table
	Images  []Image
}

// Artifact is a finished, in-memory container.
type Artifact struct {
	Filename    string
	ContentType string
	Format      Format
	Data        []byte
}

// Filename derives the deterministic file name for a request: the title's
// words joined by underscores, then the project's words when present, with
// path separators replaced so the name never escapes its directory.
func Filename(title, project string, format Format) string {
	name := strings.Join(strings.Fields(title), "_")
	if p := strings.Join(strings.Fields(project), "_"); p != "" {
		name += "_" + p
	}
	if name == "" {
		name = "export"
	}
	name = strings.NewReplacer("/", "-", "\\", "-").Replace(name)
	return name + format.Extension()
}
