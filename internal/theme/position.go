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

package theme

import "strings"

// Coordinates is the boot_menu left/top pair, as written in theme.txt.
type Coordinates struct {
	Left string
	Top  string
}

// CenterPosition is used when no position or an unknown one is requested.
const CenterPosition = "Center"

type position struct {
	name   string
	coords Coordinates
}

// 3x3 grid, row by row.
var positions = []position{
	{"Northwest", Coordinates{"5%", "5%"}},
	{"North", Coordinates{"25%", "5%"}},
	{"Northeast", Coordinates{"45%", "5%"}},
	{"West", Coordinates{"5%", "30%"}},
	{"Center", Coordinates{"25%", "30%"}},
	{"East", Coordinates{"45%", "30%"}},
	{"Southwest", Coordinates{"5%", "55%"}},
	{"South", Coordinates{"25%", "55%"}},
	{"Southeast", Coordinates{"45%", "55%"}},
}

// PositionNames returns the nine position names in grid order.
func PositionNames() []string {
	names := make([]string, len(positions))
	for i, p := range positions {
		names[i] = p.name
	}
	return names
}

// PositionCoordinates returns the coordinates for a named position.
func PositionCoordinates(name string) (Coordinates, bool) {
	for _, p := range positions {
		if p.name == name {
			return p.coords, true
		}
	}
	return Coordinates{}, false
}

// PositionName reverse-maps a left/top pair. Surrounding quotes and
// whitespace are ignored.
func PositionName(left, top string) (string, bool) {
	left = normalizeCoord(left)
	top = normalizeCoord(top)
	for _, p := range positions {
		if p.coords.Left == left && p.coords.Top == top {
			return p.name, true
		}
	}
	return "", false
}

func normalizeCoord(v string) string {
	return strings.ReplaceAll(strings.Trim(strings.TrimSpace(v), `"`), " ", "")
}
