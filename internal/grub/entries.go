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

package grub

import (
	"regexp"
	"strings"
)

var menuEntryPattern = regexp.MustCompile(`^\s*menuentry\s+(?:'([^']+)'|"([^"]+)")`)

// ParseMenuEntries returns the titles of all menuentry lines in a grub.cfg,
// including those nested in submenus.
func ParseMenuEntries(text string) []string {
	var entries []string
	for _, l := range strings.Split(text, "\n") {
		m := menuEntryPattern.FindStringSubmatch(l)
		if m == nil {
			continue
		}
		if m[1] != "" {
			entries = append(entries, m[1])
		} else {
			entries = append(entries, m[2])
		}
	}
	return entries
}
