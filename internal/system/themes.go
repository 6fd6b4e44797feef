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

package system

import (
	"os"
	"path/filepath"
	"sort"
)

// DefaultThemeName is offered when no installed theme is found.
const DefaultThemeName = "GrubTamer"

// DiscoverThemes lists the subdirectories of themesDir that contain a
// theme.txt, sorted by name.
func DiscoverThemes(themesDir string) []string {
	var themes []string

	entries, err := os.ReadDir(themesDir)
	if err == nil {
		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}
			if _, err := os.Stat(filepath.Join(themesDir, entry.Name(), "theme.txt")); err == nil {
				themes = append(themes, entry.Name())
			}
		}
	}

	if len(themes) == 0 {
		return []string{DefaultThemeName}
	}
	sort.Strings(themes)
	return themes
}

// ThemePath returns the theme.txt path for a theme directory name.
func ThemePath(themesDir, name string) string {
	return filepath.Join(themesDir, name, "theme.txt")
}
