// Package qr renders QR codes as base64-encoded PNG images.
package qr

import (
	"encoding/base64"
	"fmt"
	"image/color"
	"strings"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/alexcarden/qrgen/internal/domain"
)

const (
	DefaultScale = 10
	MinScale     = 1
	MaxScale     = 40
)

// Options controls rendering. Scale is the pixel size of a single module;
// colors accept #RRGGBB / #RGB hex or a small set of names.
type Options struct {
	Scale     int
	FillColor string
	BackColor string
}

// Generate encodes data into a PNG QR code and returns it base64-encoded.
// Error correction is fixed at the lowest level, which maximizes capacity
// for URL payloads.
func Generate(data string, opts Options) (string, error) {
	if data == "" {
		return "", domain.ErrMissingField("data")
	}

	scale := opts.Scale
	if scale == 0 {
		scale = DefaultScale
	}
	if scale < MinScale || scale > MaxScale {
		return "", domain.ErrInvalidField("size", fmt.Sprintf("must be between %d and %d", MinScale, MaxScale))
	}

	fill, err := parseColor(opts.FillColor, color.Black)
	if err != nil {
		return "", domain.ErrInvalidField("fill_color", err.Error())
	}
	back, err := parseColor(opts.BackColor, color.White)
	if err != nil {
		return "", domain.ErrInvalidField("back_color", err.Error())
	}

	code, err := qrcode.New(data, qrcode.Low)
	if err != nil {
		return "", domain.ErrInternal(err)
	}
	code.ForegroundColor = fill
	code.BackgroundColor = back

	// A negative size renders each module at |size| pixels.
	png, err := code.PNG(-scale)
	if err != nil {
		return "", domain.ErrInternal(err)
	}

	return base64.StdEncoding.EncodeToString(png), nil
}

var namedColors = map[string]color.RGBA{
	"black":  {0x00, 0x00, 0x00, 0xFF},
	"white":  {0xFF, 0xFF, 0xFF, 0xFF},
	"red":    {0xFF, 0x00, 0x00, 0xFF},
	"green":  {0x00, 0x80, 0x00, 0xFF},
	"blue":   {0x00, 0x00, 0xFF, 0xFF},
	"yellow": {0xFF, 0xFF, 0x00, 0xFF},
}

func parseColor(s string, def color.Color) (color.Color, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return def, nil
	}

	if c, ok := namedColors[s]; ok {
		return c, nil
	}

	if !strings.HasPrefix(s, "#") {
		return nil, fmt.Errorf("unknown color %q", s)
	}

	hex := s[1:]
	var r, g, b uint8
	switch len(hex) {
	case 3:
		if _, err := fmt.Sscanf(hex, "%1x%1x%1x", &r, &g, &b); err != nil {
			return nil, fmt.Errorf("invalid hex color %q", s)
		}
		r, g, b = r*0x11, g*0x11, b*0x11
	case 6:
		if _, err := fmt.Sscanf(hex, "%02x%02x%02x", &r, &g, &b); err != nil {
			return nil, fmt.Errorf("invalid hex color %q", s)
		}
	default:
		return nil, fmt.Errorf("invalid hex color %q", s)
	}

	return color.RGBA{R: r, G: g, B: b, A: 0xFF}, nil
}
