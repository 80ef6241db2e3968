package export

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"strings"
)

// picture is a fully decoded image payload.
type picture struct {
	Caption string
	Data    []byte
	Format  string // "png" or "jpeg"
	Width   int
	Height  int
}

// Extension returns the file extension for the picture, including the dot.
func (p picture) Extension() string {
	if p.Format == "jpeg" {
		return ".jpeg"
	}
	return ".png"
}

var errEmptyPayload = errors.New("empty image payload")

// decodePayload accepts "data:image/png;base64,...", or bare base64.
func decodePayload(payload string) ([]byte, error) {
	s := strings.TrimSpace(payload)
	if strings.HasPrefix(s, "data:") {
		comma := strings.IndexByte(s, ',')
		if comma < 0 {
			return nil, fmt.Errorf("malformed data URL")
		}
		if !strings.HasSuffix(s[:comma], ";base64") {
			return nil, fmt.Errorf("data URL is not base64 encoded")
		}
		s = s[comma+1:]
	}
	if s == "" {
		return nil, errEmptyPayload
	}
	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("decode base64: %w", err)
	}
	return data, nil
}

func decodeImage(img Image) (picture, error) {
	data, err := decodePayload(img.Payload)
	if err != nil {
		return picture{}, err
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return picture{}, fmt.Errorf("sniff image: %w", err)
	}
	if format != "png" && format != "jpeg" {
		return picture{}, fmt.Errorf("unsupported image format %q", format)
	}
	// A valid header says nothing about the pixel data.
	if _, _, err := image.Decode(bytes.NewReader(data)); err != nil {
		return picture{}, fmt.Errorf("decode %s image: %w", format, err)
	}
	return picture{
		Caption: img.Caption,
		Data:    data,
		Format:  format,
		Width:   cfg.Width,
		Height:  cfg.Height,
	}, nil
}

func decodeImages(images []Image) ([]picture, error) {
	out := make([]picture, 0, len(images))
	for i, img := range images {
		p, err := decodeImage(img)
		if err != nil {
			return nil, fmt.Errorf("image %d (%q): %w", i, img.Caption, err)
		}
		out = append(out, p)
	}
	return out, nil
}
