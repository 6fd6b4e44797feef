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
	"github.com/sahilm/fuzzy"
)

// OptionType is how a setting is edited.
type OptionType string

const (
	OptionText   OptionType = "text"
	OptionToggle OptionType = "toggle"
)

// Option documents one GRUB setting.
type Option struct {
	Key         string
	Label       string
	Description string
	Type        OptionType
	Example     string
	Group       string
}

// StandardOptions are the settings shown on the main screen, grouped.
var StandardOptions = []Option{
	{Key: "GRUB_DEFAULT", Label: "Default Entry", Group: "General", Type: OptionText, Example: "0",
		Description: "The numeric index (0) or full name of the entry to boot by default."},
	{Key: "GRUB_TIMEOUT", Label: "Timeout", Group: "General", Type: OptionText, Example: "5",
		Description: "Seconds to wait before booting. Set to -1 to wait indefinitely."},
	{Key: "GRUB_DISTRIBUTOR", Label: "Distributor Name", Group: "General", Type: OptionText,
		Example:     "`lsb_release -i -s 2> /dev/null || echo Debian`",
		Description: "The name displayed in the menu entries (e.g., Ubuntu, Arch)."},
	{Key: "GRUB_THEME", Label: "Theme Path", Group: "Appearance", Type: OptionText,
		Example:     "/boot/grub/themes/starfield/theme.txt",
		Description: "Full path to a graphical theme file (.txt)."},
	{Key: "GRUB_CMDLINE_LINUX_DEFAULT", Label: "Kernel Params (Default)", Group: "Advanced", Type: OptionText,
		Example: "quiet splash", Description: "Arguments passed to the kernel for normal boots."},
	{Key: "GRUB_CMDLINE_LINUX", Label: "Kernel Params (All)", Group: "Advanced", Type: OptionText,
		Example: "console=ttyS0", Description: "Arguments passed to all kernel entries, recovery included."},
	{Key: "GRUB_DISABLE_OS_PROBER", Label: "Disable OS Prober", Group: "Advanced", Type: OptionToggle,
		Example: "true", Description: "When true, GRUB does not look for other installed systems."},
}

// DocOptions are further known settings offered by "add setting".
var DocOptions = []Option{
	{Key: "GRUB_SAVEDEFAULT", Label: "Save Default Entry", Type: OptionToggle,
		Description: "If 'true', the last selected entry becomes the new default."},
	{Key: "GRUB_TIMEOUT_STYLE", Label: "Timeout Style", Type: OptionText, Example: "menu",
		Description: "'menu' shows the menu, 'countdown' shows a timer, 'hidden' waits silently."},
	{Key: "GRUB_TERMINAL_OUTPUT", Label: "Terminal Output", Type: OptionText, Example: "gfxterm",
		Description: "The terminal device to use for output (e.g., 'gfxterm', 'console')."},
	{Key: "GRUB_GFXMODE", Label: "Graphics Mode", Type: OptionText, Example: "auto",
		Description: "Resolution for the graphical terminal (e.g., '1920x1080', 'auto')."},
	{Key: "GRUB_DISABLE_RECOVERY", Label: "Disable Recovery", Type: OptionToggle,
		Description: "If 'true', recovery mode entries are not generated."},
	{Key: "GRUB_INIT_TUNE", Label: "Init Tune", Type: OptionText, Example: "480 440 1",
		Description: "Play a tune when GRUB starts."},
	{Key: "GRUB_BADRAM", Label: "Bad RAM Regions", Type: OptionText, Example: "0x01234567,0xfedcba98",
		Description: "A list of memory regions to avoid using."},
}

func allOptions() []Option {
	all := make([]Option, 0, len(StandardOptions)+len(DocOptions))
	all = append(all, StandardOptions...)
	return append(all, DocOptions...)
}

// LookupOption finds a documented setting.
func LookupOption(key string) (Option, bool) {
	for _, o := range allOptions() {
		if o.Key == key {
			return o, true
		}
	}
	return Option{}, false
}

type optionSource []Option

func (s optionSource) String(i int) string {
	return s[i].Key + " " + s[i].Label
}

func (s optionSource) Len() int {
	return len(s)
}

// SearchOptions fuzzy-matches query against key and label. Best matches
// come first; an empty query returns every option.
func SearchOptions(query string) []Option {
	all := allOptions()
	if query == "" {
		return all
	}

	matches := fuzzy.FindFrom(query, optionSource(all))
	out := make([]Option, 0, len(matches))
	for _, m := range matches {
		out = append(out, all[m.Index])
	}
	return out
}
