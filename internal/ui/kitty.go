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

package ui

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"os"
	"strings"

	// Wallpapers come in whatever format the user had at hand
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"golang.org/x/image/draw"
)

// detectKittySupport checks if the terminal supports Kitty image protocol
func detectKittySupport() bool {
	termProgram := os.Getenv("TERM_PROGRAM")
	if termProgram == "kitty" || termProgram == "ghostty" || termProgram == "WezTerm" ||
		termProgram == "Konsole" {
		return true
	}

	if os.Getenv("KITTY_WINDOW_ID") != "" || os.Getenv("WEZTERM_PANE") != "" ||
		os.Getenv("KONSOLE_VERSION") != "" {
		return true
	}

	term := os.Getenv("TERM")
	return strings.Contains(term, "kitty") || strings.Contains(term, "wezterm") ||
		strings.Contains(term, "konsole")
}

// imageInfo describes an image referenced by the theme
type imageInfo struct {
	Path   string
	Format string
	Width  int
	Height int
	Data   []byte
}

// loadImage reads an image file and decodes its header
func loadImage(path string) (*imageInfo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	width, height, format, err := getImageDimensions(data)
	if err != nil {
		return nil, fmt.Errorf("unsupported image %s: %w", path, err)
	}

	return &imageInfo{Path: path, Format: format, Width: width, Height: height, Data: data}, nil
}

// getImageDimensions extracts width, height, and format from image data
func getImageDimensions(imageData []byte) (int, int, string, error) {
	config, format, err := image.DecodeConfig(bytes.NewReader(imageData))
	if err != nil {
		return 0, 0, "", err
	}
	return config.Width, config.Height, format, nil
}

// toPNG re-encodes imageData as PNG, scaled down to fit maxWidth x maxHeight
func toPNG(imageData []byte, maxWidth, maxHeight int) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(imageData))
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	scale := 1.0
	if width > maxWidth || height > maxHeight {
		scaleX := float64(maxWidth) / float64(width)
		scaleY := float64(maxHeight) / float64(height)
		scale = min(scaleX, scaleY)
	}

	newWidth := max(1, int(float64(width)*scale))
	newHeight := max(1, int(float64(height)*scale))

	dst := image.NewRGBA(image.Rect(0, 0, newWidth, newHeight))
	draw.BiLinear.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// renderKittyImage creates a Kitty terminal escape sequence that shows the
// image scaled into the given cell area
func renderKittyImage(imageData []byte, cols, rows int) string {
	if len(imageData) == 0 {
		return ""
	}

	// Terminal pixels are roughly 10x18 per cell
	pngData, err := toPNG(imageData, cols*10, rows*18)
	if err != nil {
		return ""
	}

	encoded := base64.StdEncoding.EncodeToString(pngData)
	const chunkSize = 4096

	if len(encoded) <= chunkSize {
		return fmt.Sprintf("\x1b_Ga=T,f=100,C=1,c=%d,%d;%s\x1b\\", cols, rows, encoded)
	}

	var result strings.Builder
	for i := 0; i < len(encoded); i += chunkSize {
		end := min(i+chunkSize, len(encoded))
		more := 1
		if end == len(encoded) {
			more = 0
		}

		if i == 0 {
			fmt.Fprintf(&result, "\x1b_Ga=T,f=100,C=1,c=%d,%d,m=1;%s\x1b\\", cols, rows, encoded[i:end])
		} else {
			fmt.Fprintf(&result, "\x1b_Gm=%d;%s\x1b\\", more, encoded[i:end])
		}
	}

	return result.String()
}
