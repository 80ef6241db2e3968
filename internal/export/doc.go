// Package export serializes narrative documents and the monitoring plan into
// office containers.
//
// A Request carries a title, body lines, an optional table and images. The
// Exporter builds the whole container in memory before returning it: any
// failure returns an *Error and no Artifact. Two formats are supported,
// DOCX (WordprocessingML in a zip) and XLSX.
package export
