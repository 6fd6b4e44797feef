/*
MIT License

Copyright (c) 2025 Yuval Adar <adary@adary.org>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in all
copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
SOFTWARE.
*/

// Package assets rasterises the bitmaps used by the circular timeout
// indicator.
package assets

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
	"golang.org/x/image/vector"

	"github.com/adaryorg/grubtamer/internal/theme"
)

// Kind selects which bitmap to generate.
type Kind int

const (
	KindCenter Kind = iota
	KindTick
)

// ErrInvalidColor is returned for color strings GRUB would not accept.
var ErrInvalidColor = errors.New("invalid color")

const (
	centerSize = 64
	tickSize   = 12
)

// FileName is the fixed name the circular_progress block refers to.
func FileName(kind Kind) string {
	if kind == KindTick {
		return theme.TickBitmap
	}
	return theme.CenterBitmap
}

// ParseColor accepts the GRUB color forms: #rgb, #rrggbb, #rrggbbaa,
// "r, g, b" and SVG color names.
func ParseColor(s string) (color.RGBA, error) {
	s = strings.TrimSpace(strings.Trim(strings.TrimSpace(s), `"`))
	if s == "" {
		return color.RGBA{}, fmt.Errorf("%w: empty", ErrInvalidColor)
	}

	if strings.HasPrefix(s, "#") {
		return parseHex(s[1:])
	}

	if strings.Contains(s, ",") {
		parts := strings.Split(s, ",")
		if len(parts) != 3 && len(parts) != 4 {
			return color.RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
		}
		c := color.RGBA{A: 0xff}
		channels := []*uint8{&c.R, &c.G, &c.B, &c.A}
		for i, p := range parts {
			n, err := strconv.ParseUint(strings.TrimSpace(p), 10, 8)
			if err != nil {
				return color.RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
			}
			*channels[i] = uint8(n)
		}
		return c, nil
	}

	if c, ok := colornames.Map[strings.ToLower(s)]; ok {
		return c, nil
	}
	return color.RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
}

func parseHex(h string) (color.RGBA, error) {
	switch len(h) {
	case 3:
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]}) + "ff"
	case 6:
		h += "ff"
	case 8:
	default:
		return color.RGBA{}, fmt.Errorf("%w: #%s", ErrInvalidColor, h)
	}

	n, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%w: #%s", ErrInvalidColor, h)
	}
	return color.RGBA{R: uint8(n >> 24), G: uint8(n >> 16), B: uint8(n >> 8), A: uint8(n)}, nil
}

// Generate returns PNG data for the given kind, filled with colorValue.
func Generate(colorValue string, kind Kind) ([]byte, error) {
	c, err := ParseColor(colorValue)
	if err != nil {
		return nil, err
	}

	size := centerSize
	if kind == KindTick {
		size = tickSize
	}

	img := image.NewRGBA(image.Rect(0, 0, size, size))
	r := float32(size) / 2
	disc(img, r, r, r-0.5, c)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", FileName(kind), err)
	}
	return buf.Bytes(), nil
}

// kappa places cubic control points so four curves approximate a circle.
const kappa = 0.5522847498

func disc(dst draw.Image, cx, cy, r float32, c color.RGBA) {
	b := dst.Bounds()
	z := vector.NewRasterizer(b.Dx(), b.Dy())
	k := r * kappa

	z.MoveTo(cx+r, cy)
	z.CubeTo(cx+r, cy+k, cx+k, cy+r, cx, cy+r)
	z.CubeTo(cx-k, cy+r, cx-r, cy+k, cx-r, cy)
	z.CubeTo(cx-r, cy-k, cx-k, cy-r, cx, cy-r)
	z.CubeTo(cx+k, cy-r, cx+r, cy-k, cx+r, cy)
	z.ClosePath()

	z.Draw(dst, b, image.NewUniform(c), image.Point{})
}
