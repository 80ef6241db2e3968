package export

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
)

const (
	sheetName = "Report"

	// Images are scaled to a fixed 576x384 pixel box (6in x 4in at 96 dpi)
	// and given rowsPerImage rows of the default height.
	imageBoxWidth  = 576.0
	imageBoxHeight = 384.0
	rowsPerImage   = 21
)

// xlsxWriter tracks the next free row while laying out the sheet.
type xlsxWriter struct {
	f    *excelize.File
	row  int
	bold int
}

// buildXLSX lays the request out on a single sheet: title, body lines,
// table and images, top to bottom.
func buildXLSX(ctx context.Context, req Request, pics []picture) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("create style: %w", err)
	}
	w := &xlsxWriter{f: f, row: 1, bold: bold}

	if err := w.line(req.Title, true); err != nil {
		return nil, err
	}
	for _, l := range req.Body {
		if err := w.line(l, false); err != nil {
			return nil, err
		}
	}
	if req.Table != nil {
		w.row++
		if err := w.table(*req.Table); err != nil {
			return nil, err
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	for _, p := range pics {
		w.row++
		if err := w.picture(p); err != nil {
			return nil, err
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func (w *xlsxWriter) set(col int, value string, bold bool) error {
	cell, err := excelize.CoordinatesToCellName(col, w.row)
	if err != nil {
		return err
	}
	if err := w.f.SetCellValue(sheetName, cell, value); err != nil {
		return fmt.Errorf("set %s: %w", cell, err)
	}
	if bold {
		if err := w.f.SetCellStyle(sheetName, cell, cell, w.bold); err != nil {
			return fmt.Errorf("style %s: %w", cell, err)
		}
	}
	return nil
}

func (w *xlsxWriter) line(value string, bold bool) error {
	if err := w.set(1, value, bold); err != nil {
		return err
	}
	w.row++
	return nil
}

func (w *xlsxWriter) table(t Table) error {
	for i, h := range t.Header {
		if err := w.set(i+1, h, true); err != nil {
			return err
		}
	}
	w.row++
	for _, r := range t.Rows {
		for i, c := range r {
			if err := w.set(i+1, c, false); err != nil {
				return err
			}
		}
		w.row++
	}
	if n := len(t.Header); n > 0 {
		last, err := excelize.ColumnNumberToName(n)
		if err != nil {
			return err
		}
		if err := w.f.SetColWidth(sheetName, "A", last, 40); err != nil {
			return fmt.Errorf("set column width: %w", err)
		}
	}
	return nil
}

func (w *xlsxWriter) picture(p picture) error {
	if err := w.line(p.Caption, false); err != nil {
		return err
	}
	cell, err := excelize.CoordinatesToCellName(1, w.row)
	if err != nil {
		return err
	}
	opts := &excelize.GraphicOptions{
		AltText:     p.Caption,
		Positioning: "oneCell",
		ScaleX:      1,
		ScaleY:      1,
	}
	if p.Width > 0 && p.Height > 0 {
		opts.ScaleX = imageBoxWidth / float64(p.Width)
		opts.ScaleY = imageBoxHeight / float64(p.Height)
	}
	err = w.f.AddPictureFromBytes(sheetName, cell, &excelize.Picture{
		Extension: p.Extension(),
		File:      p.Data,
		Format:    opts,
	})
	if err != nil {
		return fmt.Errorf("add picture %q: %w", p.Caption, err)
	}
	w.row += rowsPerImage
	return nil
}
