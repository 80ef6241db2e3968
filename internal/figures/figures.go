// Package figures holds the session's figure catalogue and selection.
package figures

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"sync"

	"github.com/roach88/tiaki/internal/export"
)

// ErrUnknownFigure is returned when an ID is not in the catalogue.
var ErrUnknownFigure = errors.New("unknown figure")

// Figure is an image attached to exports when selected.
type Figure struct {
	ID       string `json:"id"`
	Caption  string `json:"caption"`
	Payload  string `json:"-"`
	Selected bool   `json:"selected"`
}

type placeholder struct {
	id      string
	caption string
	fill    color.RGBA
}

var catalogue = []placeholder{
	{"site-plan", "Figure 1: Site plan and catchment context", color.RGBA{R: 0x3b, G: 0x6e, B: 0x4f, A: 0xff}},
	{"waterways", "Figure 2: Waterways and wetland margins", color.RGBA{R: 0x2f, G: 0x5d, B: 0x8a, A: 0xff}},
	{"monitoring", "Figure 3: Monitoring locations", color.RGBA{R: 0x8a, G: 0x5a, B: 0x2f, A: 0xff}},
}

var payloads = sync.OnceValue(func() map[string]string {
	out := make(map[string]string, len(catalogue))
	for _, p := range catalogue {
		out[p.id] = renderPlaceholder(p.fill)
	}
	return out
})

// renderPlaceholder draws a 3:2 swatch with a border and returns it as a
// PNG data URL.
func renderPlaceholder(fill color.RGBA) string {
	const w, h = 60, 40
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	border := color.RGBA{A: 0xff}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := fill
			if x == 0 || y == 0 || x == w-1 || y == h-1 {
				c = border
			}
			img.SetRGBA(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		panic(fmt.Sprintf("figures: encode placeholder: %v", err))
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

// Defaults returns the catalogue with the first figure selected.
func Defaults() []Figure {
	p := payloads()
	out := make([]Figure, len(catalogue))
	for i, c := range catalogue {
		out[i] = Figure{ID: c.id, Caption: c.caption, Payload: p[c.id], Selected: i == 0}
	}
	return out
}

// IDs returns the catalogue IDs in order.
func IDs() []string {
	ids := make([]string, len(catalogue))
	for i, c := range catalogue {
		ids[i] = c.id
	}
	return ids
}

// Toggle returns a copy of figs with the selection of id flipped.
func Toggle(figs []Figure, id string) ([]Figure, error) {
	i := indexOf(figs, id)
	if i < 0 {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFigure, id)
	}
	out := append([]Figure(nil), figs...)
	out[i].Selected = !out[i].Selected
	return out, nil
}

// Select returns a copy of figs where exactly the given IDs are selected.
func Select(figs []Figure, ids []string) ([]Figure, error) {
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		if indexOf(figs, id) < 0 {
			return nil, fmt.Errorf("%w: %q", ErrUnknownFigure, id)
		}
		want[id] = true
	}
	out := append([]Figure(nil), figs...)
	for i := range out {
		out[i].Selected = want[out[i].ID]
	}
	return out, nil
}

// Selected returns the selected figures in catalogue order.
func Selected(figs []Figure) []Figure {
	var out []Figure
	for _, f := range figs {
		if f.Selected {
			out = append(out, f)
		}
	}
	return out
}

// Images converts the selected figures to export images.
func Images(figs []Figure) []export.Image {
	var out []export.Image
	for _, f := range Selected(figs) {
		out = append(out, export.Image{Caption: f.Caption, Payload: f.Payload})
	}
	return out
}

func indexOf(figs []Figure, id string) int {
	for i, f := range figs {
		if f.ID == id {
			return i
		}
	}
	return -1
}
