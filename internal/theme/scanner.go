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

type segmentKind int

const (
	segLine segmentKind = iota
	segBlock
)

// segment is a top-level piece of a theme file: either one line or a whole
// `+ name { ... }` block, kept verbatim in raw.
type segment struct {
	kind  segmentKind
	raw   string
	line  int
	block *block
	// reported marks a line the scanner already raised a diagnostic for.
	reported bool
}

type block struct {
	name  BlockName
	attrs []attr
}

type attr struct {
	name  string
	value string
}

// get returns the first depth-1 attribute called name.
func (b *block) get(name string) (string, bool) {
	for _, a := range b.attrs {
		if a.name == name {
			return a.value, true
		}
	}
	return "", false
}

// scan splits text into top-level lines and blocks. Blocks are matched by
// brace depth, so a nested block never ends the outer one early. Only the
// outer block's own attributes are collected.
func scan(text string) ([]segment, []Diagnostic) {
	var segs []segment
	var diags []Diagnostic

	pos := 0
	line := 1
	for pos < len(text) {
		i := pos
		for i < len(text) && (text[i] == ' ' || text[i] == '\t') {
			i++
		}

		if i < len(text) && text[i] == '+' {
			if name, open, ok := blockHeader(text, i+1); ok {
				end, closeIdx, closed, nested := matchBrace(text, open)
				if !closed {
					// Keep the header as a plain line and go on line by line,
					// so nothing after it is swallowed into the block.
					diags = append(diags, Diagnostic{Line: line, Err: ErrMalformedInput,
						Detail: "unterminated block " + name})
					raw, next := cutLine(text, pos)
					segs = append(segs, segment{kind: segLine, raw: raw, line: line, reported: true})
					pos = next
					line++
					continue
				}

				// Text after the closing brace stays with the block.
				if nl := strings.IndexByte(text[end:], '\n'); nl >= 0 {
					end += nl
				} else {
					end = len(text)
				}
				raw := strings.TrimRight(text[pos:end], " \t\r")
				b := &block{name: BlockName(name), attrs: parseAttrs(text[open+1 : closeIdx])}
				segs = append(segs, segment{kind: segBlock, raw: raw, line: line, block: b})

				if nested {
					diags = append(diags, Diagnostic{Line: line, Err: ErrUnsupportedBlockShape,
						Detail: "nested block inside " + name})
				}

				line += strings.Count(raw, "\n")
				pos = end
				if pos < len(text) {
					pos++
					line++
				}
				continue
			}
		}

		raw, next := cutLine(text, pos)
		segs = append(segs, segment{kind: segLine, raw: raw, line: line})
		pos = next
		line++
	}

	return segs, diags
}

// cutLine returns the line starting at pos without its line break, and the
// index of the next line.
func cutLine(text string, pos int) (string, int) {
	if nl := strings.IndexByte(text[pos:], '\n'); nl >= 0 {
		return strings.TrimSuffix(text[pos:pos+nl], "\r"), pos + nl + 1
	}
	return strings.TrimSuffix(text[pos:], "\r"), len(text)
}

// blockHeader reads `name {` starting just after a '+'. It returns the block
// name and the index of the opening brace.
func blockHeader(text string, i int) (string, int, bool) {
	i = skipSpace(text, i)
	start := i
	for i < len(text) && isIdentChar(text[i]) {
		i++
	}
	if i == start {
		return "", 0, false
	}
	name := text[start:i]
	i = skipSpace(text, i)
	if i >= len(text) || text[i] != '{' {
		return "", 0, false
	}
	return name, i, true
}

// matchBrace finds the brace closing the one at open. Braces inside quoted
// values are ignored. end is the index just past the closing brace, or
// len(text) when the block is unterminated.
func matchBrace(text string, open int) (end, closeIdx int, closed, nested bool) {
	depth := 0
	inQuote := false
	for k := open; k < len(text); k++ {
		c := text[k]
		if inQuote {
			if c == '"' || c == '\n' {
				inQuote = false
			}
			continue
		}
		switch c {
		case '"':
			inQuote = true
		case '{':
			depth++
			if depth > 1 {
				nested = true
			}
		case '}':
			depth--
			if depth == 0 {
				return k + 1, k, true, nested
			}
		}
	}
	return len(text), len(text), false, nested
}

// parseAttrs tokenises a block body into `name = value` pairs. Values may be
// quoted or bare; several pairs may share a line. Pairs inside nested blocks
// are skipped.
func parseAttrs(body string) []attr {
	var attrs []attr
	depth := 0
	k := 0
	for k < len(body) {
		c := body[k]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			k++
		case c == '{':
			depth++
			k++
		case c == '}':
			if depth > 0 {
				depth--
			}
			k++
		case c == '#':
			for k < len(body) && body[k] != '\n' {
				k++
			}
		case c == '"':
			_, k = readQuoted(body, k)
		case isIdentChar(c):
			start := k
			for k < len(body) && isIdentChar(body[k]) {
				k++
			}
			name := body[start:k]
			j := k
			for j < len(body) && (body[j] == ' ' || body[j] == '\t') {
				j++
			}
			if j >= len(body) || body[j] != '=' {
				continue
			}
			j++
			for j < len(body) && (body[j] == ' ' || body[j] == '\t') {
				j++
			}
			var value string
			if j < len(body) && body[j] == '"' {
				value, j = readQuoted(body, j)
			} else {
				vs := j
				for j < len(body) && !isSpace(body[j]) && body[j] != '}' && body[j] != '{' {
					j++
				}
				value = body[vs:j]
			}
			if depth == 0 {
				attrs = append(attrs, attr{name: name, value: value})
			}
			k = j
		default:
			k++
		}
	}
	return attrs
}

// readQuoted reads a string starting at the quote at i. It stops at the
// closing quote or at the end of the line.
func readQuoted(s string, i int) (string, int) {
	start := i + 1
	j := start
	for j < len(s) && s[j] != '"' && s[j] != '\n' {
		j++
	}
	value := s[start:j]
	if j < len(s) && s[j] == '"' {
		j++
	}
	return value, j
}

func skipSpace(s string, i int) int {
	for i < len(s) && isSpace(s[i]) {
		i++
	}
	return i
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isIdentChar(c byte) bool {
	return c == '_' || c == '-' || c == '.' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}
