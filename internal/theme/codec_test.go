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
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleTheme = `# GRUB theme
title-text: "Hello"
title-color: "#ffffff"
desktop-image: "background.png"
unknown-key: "kept"
menu-position: "North"

+ label {
    text = "Welcome"
    left = 0
}

+ progress_bar {
    id = "__timeout__"
    fg_color = "#112233"
    bg_color = "#445566"
}

+ boot_menu {
    left = 45%
    top = 55%
    item_color = "#aaaaaa"
    selected_item_color = "#bbbbbb"
}
`

func TestParse_TopLevelProperties(t *testing.T) {
	props := Parse(sampleTheme)

	tests := []struct {
		key      string
		expected string
	}{
		{KeyTitleText, "Hello"},
		{KeyTitleColor, "#ffffff"},
		{KeyDesktopImage, "background.png"},
	}

	for _, test := range tests {
		if got := props[test.key]; got != test.expected {
			t.Errorf("Expected %s to be %q, got %q", test.key, test.expected, got)
		}
	}

	if _, ok := props["unknown-key"]; ok {
		t.Error("Unknown keys should not enter the property map")
	}
}

func TestParse_UnquotedAndEmptyValues(t *testing.T) {
	props := Parse("title-text: Plain value  \ntitle-color: \"\"\ntitle-font:\n")

	if props[KeyTitleText] != "Plain value" {
		t.Errorf("Expected unquoted value 'Plain value', got %q", props[KeyTitleText])
	}
	if v, ok := props[KeyTitleColor]; !ok || v != "" {
		t.Errorf("Expected empty quoted value to be present and empty, got %q (present=%v)", v, ok)
	}
	if v, ok := props[KeyTitleFont]; !ok || v != "" {
		t.Errorf("Expected empty unquoted value to be present and empty, got %q (present=%v)", v, ok)
	}
}

func TestParse_ProgressBarBlock(t *testing.T) {
	props := Parse(`+ progress_bar { fg_color = "#112233" bg_color = "#445566" }`)

	if props[KeyProgressColor] != "#112233" {
		t.Errorf("Expected progress-color '#112233', got %q", props[KeyProgressColor])
	}
	if props[KeyProgressBgColor] != "#445566" {
		t.Errorf("Expected progress-bg-color '#445566', got %q", props[KeyProgressBgColor])
	}
	if props[KeyProgressStyle] != StyleBar {
		t.Errorf("Expected progress-style 'bar', got %q", props[KeyProgressStyle])
	}
}

func TestParse_CircularProgressWins(t *testing.T) {
	text := `+ progress_bar {
    fg_color = "#112233"
}
+ circular_progress {
    center_bitmap = "c_center.png"
}
`
	props := Parse(text)

	if props[KeyProgressStyle] != StyleCircle {
		t.Errorf("Expected progress-style 'circle', got %q", props[KeyProgressStyle])
	}
	if _, ok := props[KeyProgressColor]; ok {
		t.Error("Colors should not be read when a circular progress block is present")
	}
}

func TestParse_NoTimeoutBlock(t *testing.T) {
	props := Parse("title-text: \"x\"\n")

	for _, key := range []string{KeyProgressStyle, KeyProgressColor, KeyProgressBgColor, KeyMenuPosition} {
		if _, ok := props[key]; ok {
			t.Errorf("Expected %s to be absent", key)
		}
	}
}

func TestParse_BootMenuBlock(t *testing.T) {
	props := Parse(sampleTheme)

	if props[KeyMenuPosition] != "Southeast" {
		t.Errorf("Expected menu-position 'Southeast' from the block, got %q", props[KeyMenuPosition])
	}
	if props[KeyBoxBorderColor] != "#aaaaaa" {
		t.Errorf("Expected box-border-color '#aaaaaa', got %q", props[KeyBoxBorderColor])
	}
	if props[KeySelectedItemColor] != "#bbbbbb" {
		t.Errorf("Expected selected-item-color '#bbbbbb', got %q", props[KeySelectedItemColor])
	}
}

func TestParse_UnknownPosition(t *testing.T) {
	props := Parse("+ boot_menu {\n  left = 12%\n  top = 34%\n}\n")

	if _, ok := props[KeyMenuPosition]; ok {
		t.Errorf("Expected no position for unknown coordinates, got %q", props[KeyMenuPosition])
	}
}

func TestParse_NestedBlock(t *testing.T) {
	text := `+ boot_menu {
    left = 5%
    + inner { left = 45% }
    top = 5%
}
title-text: "after"
`
	props, diags := ParseWithDiagnostics(text)

	if props[KeyMenuPosition] != "Northwest" {
		t.Errorf("Expected outer attributes to win, got position %q", props[KeyMenuPosition])
	}
	if props[KeyTitleText] != "after" {
		t.Errorf("Expected line after nested block to be parsed, got %q", props[KeyTitleText])
	}

	found := false
	for _, d := range diags {
		if errors.Is(d, ErrUnsupportedBlockShape) {
			found = true
		}
	}
	if !found {
		t.Error("Expected an unsupported block shape diagnostic")
	}
}

func TestParse_Malformed(t *testing.T) {
	props, diags := ParseWithDiagnostics("title-text: \"ok\"\n+ boot_menu {\n  left = 5%\n")

	if props[KeyTitleText] != "ok" {
		t.Errorf("Expected partial result, got %q", props[KeyTitleText])
	}
	if len(diags) == 0 {
		t.Fatal("Expected a diagnostic for the unterminated block")
	}
	if !errors.Is(diags[0], ErrMalformedInput) {
		t.Errorf("Expected ErrMalformedInput, got %v", diags[0].Err)
	}
}

func TestUnterminatedBlockKeepsFollowingLines(t *testing.T) {
	input := "title-text: \"Hi\"\n+ boot_menu {\n  left = 5%\n# keep me\ndesktop-color: \"#123\"\nfoo: \"bar\"\n"

	props, diags := ParseWithDiagnostics(input)
	if props[KeyDesktopColor] != "#123" {
		t.Errorf("Expected desktop-color after the unterminated block, got %v", props)
	}
	if len(diags) != 1 || !errors.Is(diags[0], ErrMalformedInput) {
		t.Errorf("Expected one ErrMalformedInput diagnostic, got %v", diags)
	}

	out := Render(input, Properties{KeyTitleText: "Hi"})
	for _, want := range []string{"# keep me", `desktop-color: "#123"`, `foo: "bar"`, "left = 5%"} {
		if !strings.Contains(out, want) {
			t.Errorf("Render lost %q:\n%s", want, out)
		}
	}
	if again := Render(out, Properties{KeyTitleText: "Hi"}); again != out {
		t.Errorf("Render not idempotent after unterminated block:\n%s\n---\n%s", out, again)
	}
}

func TestParse_Empty(t *testing.T) {
	if props := Parse(""); len(props) != 0 {
		t.Errorf("Expected empty map for empty input, got %v", props)
	}
}

func TestRender_ConcreteScenario(t *testing.T) {
	out := Render("title-text: \"Hello\"\n# comment\n", Properties{
		KeyTitleText:    "World",
		KeyMenuPosition: "North",
	})

	if !strings.Contains(out, `title-text: "World"`) {
		t.Errorf("Expected replaced title, got:\n%s", out)
	}
	if !strings.Contains(out, "# comment") {
		t.Errorf("Expected comment to be kept, got:\n%s", out)
	}
	if !strings.Contains(out, "+ boot_menu {") {
		t.Fatalf("Expected a boot_menu block, got:\n%s", out)
	}
	if !strings.Contains(out, "left = 25%") || !strings.Contains(out, "top = 5%") {
		t.Errorf("Expected North coordinates in boot_menu, got:\n%s", out)
	}
	if strings.Contains(out, "Hello") {
		t.Errorf("Old value should be gone, got:\n%s", out)
	}
}

func TestRender_Idempotent(t *testing.T) {
	props := Properties{
		KeyTitleText:         "World",
		KeyTitleColor:        "#eeeeee",
		KeyMessageColor:      "#cccccc",
		KeyMenuPosition:      "South",
		KeyProgressColor:     "#123456",
		KeyProgressBgColor:   "#654321",
		KeyBoxBorderColor:    "#abcdef",
		KeySelectedItemColor: "#fedcba",
	}

	inputs := []string{"", sampleTheme, "# only a comment\n\n\n", "title-text: \"x\"\r\n"}
	for _, input := range inputs {
		first := Render(input, props)
		second := Render(first, props)
		if first != second {
			t.Errorf("Render is not idempotent for input %q\nfirst:\n%s\nsecond:\n%s", input, first, second)
		}
	}
}

func TestRender_NoDuplicateBlocks(t *testing.T) {
	out := sampleTheme
	for i := 0; i < 3; i++ {
		out = Render(out, Properties{KeyProgressStyle: StyleBar})
	}

	if n := strings.Count(out, "+ progress_bar"); n != 1 {
		t.Errorf("Expected 1 progress_bar block, got %d", n)
	}
	if n := strings.Count(out, "+ boot_menu"); n != 1 {
		t.Errorf("Expected 1 boot_menu block, got %d", n)
	}
}

func TestRender_MutualExclusion(t *testing.T) {
	circle := Render(sampleTheme, Properties{KeyProgressStyle: StyleCircle})
	if strings.Contains(circle, "progress_bar {") {
		t.Errorf("Circle style should remove progress_bar, got:\n%s", circle)
	}
	if !strings.Contains(circle, "circular_progress {") {
		t.Errorf("Circle style should add circular_progress, got:\n%s", circle)
	}
	if !strings.Contains(circle, CenterBitmap) || !strings.Contains(circle, TickBitmap) {
		t.Errorf("Circle block should reference the bitmap assets, got:\n%s", circle)
	}

	bar := Render(circle, Properties{KeyProgressStyle: StyleBar})
	if strings.Contains(bar, "circular_progress {") {
		t.Errorf("Bar style should remove circular_progress, got:\n%s", bar)
	}
	if !strings.Contains(bar, "progress_bar {") {
		t.Errorf("Bar style should add progress_bar, got:\n%s", bar)
	}
}

func TestRender_ProgressColorsDuplicated(t *testing.T) {
	out := Render("", Properties{KeyProgressColor: "#112233", KeyProgressBgColor: "#445566"})

	for _, want := range []string{`fg_color = "#112233"`, `border_color = "#112233"`, `bg_color = "#445566"`} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in output:\n%s", want, out)
		}
	}
}

func TestRender_UnknownLinesPreserved(t *testing.T) {
	input := "# keep me\nfoo: \"bar\"\nterminal-box: \"terminal_*.png\"\n+ label {\n    text = \"hi\"\n}\n"
	out := Render(input, Properties{KeyTitleText: "New"})

	for _, want := range []string{"# keep me", `foo: "bar"`, `terminal-box: "terminal_*.png"`, "+ label {\n    text = \"hi\"\n}"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q to survive, got:\n%s", want, out)
		}
	}
}

func TestRender_TextAfterClosingBraceKept(t *testing.T) {
	input := "+ label { text = \"x\" } # note\nfoo: \"bar\"\n"
	out := Render(input, Properties{})

	if !strings.Contains(out, "+ label { text = \"x\" } # note\n") {
		t.Errorf("Expected the block line verbatim, got:\n%s", out)
	}
	if !strings.Contains(out, "foo: \"bar\"") {
		t.Errorf("Expected the following line to be kept, got:\n%s", out)
	}
}

func TestRender_VirtualLinesDropped(t *testing.T) {
	input := "menu-position: \"North\"\nprogress-color: \"#fff\"\ntitle-text: \"x\"\n"
	out := Render(input, Properties{})

	if strings.Contains(out, "menu-position:") || strings.Contains(out, "progress-color:") {
		t.Errorf("Virtual lines should be dropped, got:\n%s", out)
	}
	if !strings.Contains(out, `title-text: "x"`) {
		t.Errorf("Plain lines without a new value should be kept, got:\n%s", out)
	}
}

func TestRender_AppendsMissingInDeclarationOrder(t *testing.T) {
	out := Render("# header\n", Properties{
		KeyMessageColor: "#111111",
		KeyTitleText:    "Title",
		KeyDesktopColor: "#222222",
	})

	titleIdx := strings.Index(out, "title-text:")
	desktopIdx := strings.Index(out, "desktop-color:")
	messageIdx := strings.Index(out, "message-color:")
	if titleIdx < 0 || desktopIdx < 0 || messageIdx < 0 {
		t.Fatalf("Expected all appended keys, got:\n%s", out)
	}
	if !(titleIdx < desktopIdx && desktopIdx < messageIdx) {
		t.Errorf("Expected declaration order, got:\n%s", out)
	}
	if !strings.HasPrefix(out, "# header\n") {
		t.Errorf("Expected existing lines first, got:\n%s", out)
	}
}

func TestRender_WhitespaceNormalized(t *testing.T) {
	out := Render("title-text: \"x\"\n\n\n\n", Properties{})

	if !strings.HasPrefix(out, "title-text: \"x\"\n\n+ progress_bar {") {
		t.Errorf("Expected exactly one blank line before the first block, got:\n%q", out)
	}
	if !strings.HasSuffix(out, "}\n") || strings.HasSuffix(out, "\n\n") {
		t.Errorf("Expected a single trailing newline, got:\n%q", out)
	}
}

func TestRender_DefaultsToCenter(t *testing.T) {
	for _, pos := range []string{"", "Nowhere"} {
		out := Render("", Properties{KeyMenuPosition: pos})
		if !strings.Contains(out, "left = 25%") || !strings.Contains(out, "top = 30%") {
			t.Errorf("Expected Center coordinates for %q, got:\n%s", pos, out)
		}
	}
}

func TestRender_SanitizesQuotes(t *testing.T) {
	out := Render("", Properties{KeyTitleText: "say \"hi\"\nthere"})

	if !strings.Contains(out, `title-text: "say hi there"`) {
		t.Errorf("Expected sanitized value, got:\n%s", out)
	}
}

func TestPositionRoundTrip(t *testing.T) {
	for _, name := range PositionNames() {
		out := Render("title-text: \"x\"\n", Properties{KeyMenuPosition: name})
		if got := Parse(out)[KeyMenuPosition]; got != name {
			t.Errorf("Expected position %q after round trip, got %q", name, got)
		}
	}
}

func TestNonVirtualRoundTrip(t *testing.T) {
	for _, d := range Descriptors() {
		if d.Virtual() {
			continue
		}
		text := d.Key + ": \"some value\"\n"
		if got := Parse(text)[d.Key]; got != "some value" {
			t.Errorf("Expected %s to round trip, got %q", d.Key, got)
		}
	}
}

func TestRenderFile_NotFound(t *testing.T) {
	_, err := RenderFile(filepath.Join(t.TempDir(), "missing.txt"), Properties{})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestLoadAndRenderFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "theme.txt")
	if err := os.WriteFile(path, []byte(sampleTheme), 0644); err != nil {
		t.Fatalf("Failed to write theme: %v", err)
	}

	props, err := LoadFile(path)
	if err != nil {
		t.Fatalf("Failed to load theme: %v", err)
	}
	props.Set(KeyTitleText, "Changed")

	out, err := RenderFile(path, props)
	if err != nil {
		t.Fatalf("Failed to render theme: %v", err)
	}
	if !strings.Contains(out, `title-text: "Changed"`) {
		t.Errorf("Expected changed title, got:\n%s", out)
	}
	if !strings.Contains(out, "left = 45%") || !strings.Contains(out, "top = 55%") {
		t.Errorf("Expected the parsed position to be kept, got:\n%s", out)
	}
}
