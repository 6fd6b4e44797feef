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
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/image/colornames"

	"github.com/adaryorg/grubtamer/internal/config"
)

// ThemeService provides styled components based on the theme configuration
type ThemeService struct {
	config *config.ThemeConfig
}

// NewThemeService creates a new theme service
func NewThemeService(themeConfig *config.ThemeConfig) *ThemeService {
	return &ThemeService{
		config: themeConfig,
	}
}

// Styles holds every style the editor views use
type Styles struct {
	Border   lipgloss.Style
	Header   lipgloss.Style
	Status   lipgloss.Style
	Group    lipgloss.Style
	Selected lipgloss.Style
	Virtual  lipgloss.Style
	Warning  lipgloss.Style
	Text     lipgloss.Style
}

// GetStyles returns styled components for all views
func (ts *ThemeService) GetStyles() Styles {
	return Styles{
		Border:   colorConfigToStyle(ts.config.Border),
		Header:   colorConfigToStyle(ts.config.Header),
		Status:   colorConfigToStyle(ts.config.Status),
		Group:    colorConfigToStyle(ts.config.Group),
		Selected: colorConfigToStyle(ts.config.Selected),
		Virtual:  colorConfigToStyleForegroundOnly(ts.config.Virtual),
		Warning:  colorConfigToStyle(ts.config.Warning),
		Text:     lipgloss.NewStyle(),
	}
}

// SyntaxStyle returns the chroma style name for the preview
func (ts *ThemeService) SyntaxStyle() string {
	return ts.config.SyntaxStyle
}

// parseColor converts various color formats to lipgloss.Color
func parseColor(colorStr string) lipgloss.Color {
	if colorStr == "" {
		return lipgloss.Color("")
	}

	// Check if it's a hex color
	if strings.HasPrefix(colorStr, "#") {
		return lipgloss.Color(colorStr)
	}

	// SVG color names, the same set GRUB accepts
	if c, exists := colornames.Map[strings.ToLower(colorStr)]; exists {
		return lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B))
	}

	// Otherwise, treat as ANSI color code
	return lipgloss.Color(colorStr)
}

// colorConfigToStyle converts a ColorConfig to a lipgloss Style
func colorConfigToStyle(cc config.ColorConfig) lipgloss.Style {
	style := lipgloss.NewStyle()

	if cc.Foreground != "" {
		style = style.Foreground(parseColor(cc.Foreground))
	}

	if cc.Background != "" {
		style = style.Background(parseColor(cc.Background))
	}

	if cc.Bold {
		style = style.Bold(true)
	}

	return style
}

// colorConfigToStyleForegroundOnly converts a ColorConfig to a lipgloss Style with only foreground and bold
// This is used for markers that should inherit background from the row style
func colorConfigToStyleForegroundOnly(cc config.ColorConfig) lipgloss.Style {
	style := lipgloss.NewStyle()

	if cc.Foreground != "" {
		style = style.Foreground(parseColor(cc.Foreground))
	}

	if cc.Bold {
		style = style.Bold(true)
	}

	return style
}

// swatch renders a small block in the given GRUB color value, or nothing if
// the terminal cannot show it
func swatch(value string, caps TerminalCapabilities) string {
	value = strings.Trim(strings.TrimSpace(value), `"`)
	if value == "" || !caps.SupportsColor {
		return ""
	}
	c := parseColor(value)
	if !strings.HasPrefix(string(c), "#") {
		return ""
	}
	return lipgloss.NewStyle().Foreground(c).Render("■") + " "
}
