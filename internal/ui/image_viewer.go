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
	"fmt"
	"path/filepath"
	"strings"
)

// renderImageView shows the selected image inside the frame. Terminals
// without the kitty graphics protocol get the image details only
func (m Model) renderImageView() string {
	if m.image == nil {
		return "No image to display"
	}

	dialogWidth, dialogHeight, contentWidth, contentHeight := m.calculateDialogDimensions()

	headerText := fmt.Sprintf("%s (%dx%d %s, %d bytes)",
		filepath.Base(m.image.Path), m.image.Width, m.image.Height,
		strings.ToUpper(m.image.Format), len(m.image.Data))
	footerText := "any key: close"

	if !m.caps.SupportsGraphics {
		lines := []string{
			"Path:   " + m.image.Path,
			fmt.Sprintf("Size:   %dx%d", m.image.Width, m.image.Height),
			"Format: " + m.image.Format,
			"",
			m.styles.Status.Render("This terminal cannot display images"),
		}
		frameContent := m.buildFrameContent(headerText, padLines(lines, contentHeight), footerText, contentWidth)
		return m.createFramedDialog(dialogWidth, dialogHeight, frameContent)
	}

	frameContent := m.buildFrameContent(headerText, padLines(nil, contentHeight), footerText, contentWidth)
	positioned := m.createFramedDialog(dialogWidth, dialogHeight, frameContent)

	// The dialog is centered; place the image below its header
	dialogStartY := (m.height-dialogHeight)/2 + 1
	dialogStartX := (m.width-dialogWidth)/2 + 1
	imageX := dialogStartX + 2
	imageY := dialogStartY + 3

	var result strings.Builder
	result.WriteString(positioned)
	result.WriteString(fmt.Sprintf("\x1b[%d;%dH", imageY, imageX))
	result.WriteString(renderKittyImage(m.image.Data, contentWidth, contentHeight))

	return result.String()
}
