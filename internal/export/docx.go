package export

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"strconv"
)

// Fixed display size for embedded images: 6in x 4in in EMU.
const (
	emuPerInch  = 914400
	imageWidth  = 6 * emuPerInch
	imageHeight = 4 * emuPerInch
)

const (
	nsW   = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	nsR   = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	nsWP  = "http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing"
	nsA   = "http://schemas.openxmlformats.org/drawingml/2006/main"
	nsPic = "http://schemas.openxmlformats.org/drawingml/2006/picture"

	relOfficeDocument = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument"
	relImage          = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/image"
	relsContentType   = "application/vnd.openxmlformats-package.relationships+xml"
	mainContentType   = "application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"
)

type contentTypes struct {
	XMLName   xml.Name          `xml:"http://schemas.openxmlformats.org/package/2006/content-types Types"`
	Defaults  []contentDefault  `xml:"Default"`
	Overrides []contentOverride `xml:"Override"`
}

type contentDefault struct {
	Extension   string `xml:"Extension,attr"`
	ContentType string `xml:"ContentType,attr"`
}

type contentOverride struct {
	PartName    string `xml:"PartName,attr"`
	ContentType string `xml:"ContentType,attr"`
}

type relationships struct {
	XMLName xml.Name       `xml:"http://schemas.openxmlformats.org/package/2006/relationships Relationships"`
	Items   []relationship `xml:"Relationship"`
}

type relationship struct {
	ID     string `xml:"Id,attr"`
	Type   string `xml:"Type,attr"`
	Target string `xml:"Target,attr"`
}

// docxPart is one file inside the zip container.
type docxPart struct {
	name string
	data []byte
}

// buildDOCX assembles a WordprocessingML package. Parts are rendered fully
// before the zip is written so a failure leaves nothing behind.
func buildDOCX(ctx context.Context, req Request, pics []picture) ([]byte, error) {
	parts, err := docxParts(req, pics)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, p := range parts {
		w, err := zw.Create(p.name)
		if err != nil {
			return nil, fmt.Errorf("create %s: %w", p.name, err)
		}
		if _, err := w.Write(p.data); err != nil {
			return nil, fmt.Errorf("write %s: %w", p.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("close zip: %w", err)
	}
	return buf.Bytes(), nil
}

func docxParts(req Request, pics []picture) ([]docxPart, error) {
	types := contentTypes{
		Defaults: []contentDefault{
			{Extension: "rels", ContentType: relsContentType},
			{Extension: "xml", ContentType: "application/xml"},
			{Extension: "png", ContentType: "image/png"},
			{Extension: "jpeg", ContentType: "image/jpeg"},
		},
		Overrides: []contentOverride{
			{PartName: "/word/document.xml", ContentType: mainContentType},
		},
	}
	rootRels := relationships{Items: []relationship{
		{ID: "rId1", Type: relOfficeDocument, Target: "word/document.xml"},
	}}

	docRels := relationships{Items: []relationship{}}
	media := make([]docxPart, 0, len(pics))
	for i, p := range pics {
		target := "media/image" + strconv.Itoa(i+1) + p.Extension()
		docRels.Items = append(docRels.Items, relationship{
			ID:     imageRelID(i),
			Type:   relImage,
			Target: target,
		})
		media = append(media, docxPart{name: "word/" + target, data: p.Data})
	}

	parts := make([]docxPart, 0, 4+len(media))
	for _, x := range []struct {
		name string
		v    any
	}{
		{"[Content_Types].xml", types},
		{"_rels/.rels", rootRels},
		{"word/_rels/document.xml.rels", docRels},
	} {
		data, err := marshalXML(x.v)
		if err != nil {
			return nil, fmt.Errorf("marshal %s: %w", x.name, err)
		}
		parts = append(parts, docxPart{name: x.name, data: data})
	}

	body, err := documentXML(req, pics)
	if err != nil {
		return nil, err
	}
	parts = append(parts, docxPart{name: "word/document.xml", data: body})
	return append(parts, media...), nil
}

func marshalXML(v any) ([]byte, error) {
	data, err := xml.Marshal(v)
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), data...), nil
}

func imageRelID(i int) string {
	return "rIdImage" + strconv.Itoa(i+1)
}

// documentXML renders word/document.xml: bold title, body paragraphs,
// optional bordered table, then each image preceded by its caption.
func documentXML(req Request, pics []picture) ([]byte, error) {
	d := &docWriter{}
	d.raw(xml.Header)
	d.raw(`<w:document xmlns:w="` + nsW + `" xmlns:r="` + nsR + `" xmlns:wp="` + nsWP +
		`" xmlns:a="` + nsA + `" xmlns:pic="` + nsPic + `"><w:body>`)

	d.paragraph(req.Title, true)
	for _, line := range req.Body {
		d.paragraph(line, false)
	}
	if req.Table != nil {
		d.table(*req.Table)
	}
	for i, p := range pics {
		d.paragraph(p.Caption, false)
		d.drawing(i)
	}

	d.raw(`<w:sectPr/></w:body></w:document>`)
	if d.err != nil {
		return nil, fmt.Errorf("render document.xml: %w", d.err)
	}
	return d.buf.Bytes(), nil
}

type docWriter struct {
	buf bytes.Buffer
	err error
}

func (d *docWriter) raw(s string) {
	d.buf.WriteString(s)
}

func (d *docWriter) text(s string) {
	if d.err != nil {
		return
	}
	d.err = xml.EscapeText(&d.buf, []byte(s))
}

func (d *docWriter) run(s string, bold bool) {
	d.raw(`<w:r>`)
	if bold {
		d.raw(`<w:rPr><w:b/></w:rPr>`)
	}
	d.raw(`<w:t xml:space="preserve">`)
	d.text(s)
	d.raw(`</w:t></w:r>`)
}

func (d *docWriter) paragraph(s string, bold bool) {
	d.raw(`<w:p>`)
	d.run(s, bold)
	d.raw(`</w:p>`)
}

func (d *docWriter) table(t Table) {
	d.raw(`<w:tbl><w:tblPr><w:tblW w:w="0" w:type="auto"/><w:tblBorders>`)
	for _, side := range []string{"top", "left", "bottom", "right", "insideH", "insideV"} {
		d.raw(`<w:` + side + ` w:val="single" w:sz="4" w:space="0" w:color="000000"/>`)
	}
	d.raw(`</w:tblBorders></w:tblPr>`)
	d.row(t.Header, true)
	for _, r := range t.Rows {
		d.row(r, false)
	}
	d.raw(`</w:tbl>`)
}

func (d *docWriter) row(cells []string, header bool) {
	d.raw(`<w:tr>`)
	for _, c := range cells {
		d.raw(`<w:tc><w:p>`)
		d.run(c, header)
		d.raw(`</w:p></w:tc>`)
	}
	d.raw(`</w:tr>`)
}

func (d *docWriter) drawing(i int) {
	id := strconv.Itoa(i + 1)
	cx := strconv.Itoa(imageWidth)
	cy := strconv.Itoa(imageHeight)
	d.raw(`<w:p><w:r><w:drawing><wp:inline distT="0" distB="0" distL="0" distR="0">`)
	d.raw(`<wp:extent cx="` + cx + `" cy="` + cy + `"/>`)
	d.raw(`<wp:docPr id="` + id + `" name="Picture ` + id + `"/>`)
	d.raw(`<a:graphic><a:graphicData uri="` + nsPic + `"><pic:pic>`)
	d.raw(`<pic:nvPicPr><pic:cNvPr id="` + id + `" name="image` + id + `"/><pic:cNvPicPr/></pic:nvPicPr>`)
	d.raw(`<pic:blipFill><a:blip r:embed="` + imageRelID(i) + `"/><a:stretch><a:fillRect/></a:stretch></pic:blipFill>`)
	d.raw(`<pic:spPr><a:xfrm><a:off x="0" y="0"/><a:ext cx="` + cx + `" cy="` + cy + `"/></a:xfrm>`)
	d.raw(`<a:prstGeom prst="rect"><a:avLst/></a:prstGeom></pic:spPr>`)
	d.raw(`</pic:pic></a:graphicData></a:graphic></wp:inline></w:drawing></w:r></w:p>`)
}
