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

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when the theme file does not exist.
	ErrNotFound = errors.New("theme file not found")
	// ErrPermissionDenied is returned when the theme file cannot be read.
	ErrPermissionDenied = errors.New("permission denied")
	// ErrMalformedInput marks a fragment the parser skipped.
	ErrMalformedInput = errors.New("malformed input")
	// ErrUnsupportedBlockShape marks a nested block. Its attributes are not read.
	ErrUnsupportedBlockShape = errors.New("unsupported block shape")
)

// Diagnostic describes a recoverable problem found while parsing.
type Diagnostic struct {
	Line   int
	Err    error
	Detail string
}

func (d Diagnostic) Error() string {
	return fmt.Sprintf("line %d: %v: %s", d.Line, d.Err, d.Detail)
}

func (d Diagnostic) Unwrap() error {
	return d.Err
}
