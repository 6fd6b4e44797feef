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
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/adaryorg/grubtamer/internal/config"
	"github.com/adaryorg/grubtamer/internal/logging"
	"github.com/adaryorg/grubtamer/internal/session"
	"github.com/adaryorg/grubtamer/internal/storage"
	"github.com/adaryorg/grubtamer/internal/system"
	"github.com/adaryorg/grubtamer/internal/theme"
)

type mode int

const (
	modeList mode = iota
	modeEdit
	modeFilter
	modePreview
	modeBackups
	modeHelp
	modeImageView
	modeSaveAs
)

type Model struct {
	session *session.ThemeSession
	config  *config.Config
	store   *storage.Storage
	backups *storage.BackupCache

	visible     []theme.PropertyDescriptor
	cursor      int
	currentMode mode
	input       textinput.Model
	filterQuery string
	editingKey  string

	// Preview state
	previewLines  []string
	previewOffset int

	backupCursor int
	helpOffset   int
	image        *imageInfo

	status        string
	statusIsError bool
	quitPending   bool

	width  int
	height int

	styles      Styles
	caps        TerminalCapabilities
	markers     Markers
	highlighter *Highlighter

	copyToClipboard func(string) error
}

// editorDoneMsg carries the text back from the external editor
type editorDoneMsg struct {
	content string
	err     error
}

func NewModel(s *session.ThemeSession, store *storage.Storage, cfg *config.Config) Model {
	themeService := NewThemeService(&cfg.Theme)
	caps := DetectTerminalCapabilities()

	input := textinput.New()
	input.CharLimit = 256

	m := Model{
		session:         s,
		config:          cfg,
		store:           store,
		visible:         theme.Descriptors(),
		currentMode:     modeList,
		input:           input,
		styles:          themeService.GetStyles(),
		caps:            caps,
		markers:         GetMarkers(caps),
		highlighter:     NewHighlighter(themeService.SyntaxStyle(), caps),
		copyToClipboard: clipboard.WriteAll,
	}

	if store != nil {
		m.backups = storage.NewBackupCache(store, s.Path, 8)
	}

	if n := len(s.Diagnostics); n > 0 {
		m.setError(fmt.Sprintf("%d malformed section(s) in %s, see log", n, filepath.Base(s.Path)))
	}

	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m *Model) setStatus(msg string) {
	m.status = msg
	m.statusIsError = false
}

func (m *Model) setError(msg string) {
	m.status = msg
	m.statusIsError = true
}

func (m Model) current() (theme.PropertyDescriptor, bool) {
	if m.cursor < 0 || m.cursor >= len(m.visible) {
		return theme.PropertyDescriptor{}, false
	}
	return m.visible[m.cursor], true
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		_, _, contentWidth, _ := m.calculateDialogDimensions()
		m.input.Width = contentWidth - 20
		return m, nil

	case editorDoneMsg:
		if msg.err != nil {
			m.setError("Editor failed: " + msg.err.Error())
			return m, nil
		}
		if msg.content != m.session.Preview() {
			m.session.ApplyText(msg.content)
			m.applyFilter()
			m.setStatus("Applied manual edits, press s to save")
		}
		return m, nil

	case tea.KeyMsg:
		switch m.currentMode {
		case modeEdit:
			return m.handleEditKey(msg)
		case modeFilter:
			return m.handleFilterKey(msg)
		case modeSaveAs:
			return m.handleSaveAsKey(msg)
		case modePreview:
			return m.handlePreviewKey(msg)
		case modeBackups:
			return m.handleBackupsKey(msg)
		case modeHelp:
			return m.handleHelpKey(msg)
		case modeImageView:
			m.currentMode = modeList
			m.image = nil
			return m, nil
		default:
			return m.handleListKey(msg)
		}
	}

	if m.currentMode == modeEdit || m.currentMode == modeFilter || m.currentMode == modeSaveAs {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key != "q" && key != "esc" {
		m.quitPending = false
	}

	switch key {
	case "ctrl+c":
		return m, tea.Quit

	case "q", "esc":
		if key == "esc" && m.filterQuery != "" {
			m.clearFilter()
			return m, nil
		}
		if m.session.Dirty() && !m.quitPending {
			m.quitPending = true
			m.setError("Unsaved changes, press q again to quit")
			return m, nil
		}
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.visible)-1 {
			m.cursor++
		}
	case "home", "g":
		m.cursor = 0
	case "end", "G":
		m.cursor = max(0, len(m.visible)-1)

	case "left", "h":
		m.cycle(-1)
	case "right", "l":
		m.cycle(1)

	case "enter", "e":
		return m.startEdit()

	case "/":
		m.currentMode = modeFilter
		m.input.Prompt = "/"
		m.input.Placeholder = ""
		m.input.SetValue(m.filterQuery)
		m.input.CursorEnd()
		m.setStatus("")
		return m, m.input.Focus()
	case "c":
		m.clearFilter()

	case "p":
		m.openPreview()
	case "y":
		m.copyPreview()
	case "s":
		m.save()
	case "S":
		m.currentMode = modeSaveAs
		m.input.Prompt = "Save as theme: "
		m.input.Placeholder = "MyNewTheme"
		m.input.SetValue("")
		m.setStatus("")
		return m, m.input.Focus()
	case "R":
		m.session.ResetDefaults()
		m.setStatus("Reset to safe defaults, press s to save")
	case "r":
		m.reload()
	case "b":
		m.openBackups()
	case "i":
		m.openImage()
	case "E":
		return m, m.editExternally()
	case "?":
		m.currentMode = modeHelp
		m.helpOffset = 0
	}

	return m, nil
}

// cycle steps an enum property through its options
func (m *Model) cycle(delta int) {
	d, ok := m.current()
	if !ok || d.Kind != theme.KindEnum {
		return
	}
	m.setValue(d.Key, cycleOption(d.Options, m.session.Props.Get(d.Key), delta))
}

func cycleOption(options []string, value string, delta int) string {
	if len(options) == 0 {
		return value
	}
	idx := -1
	for i, o := range options {
		if o == value {
			idx = i
			break
		}
	}
	if idx < 0 {
		if delta < 0 {
			return options[len(options)-1]
		}
		return options[0]
	}
	n := len(options)
	return options[((idx+delta)%n+n)%n]
}

func (m *Model) setValue(key, value string) {
	if err := m.session.Set(key, value); err != nil {
		m.setError(err.Error())
		return
	}
	m.setStatus("")
}

func (m Model) startEdit() (tea.Model, tea.Cmd) {
	d, ok := m.current()
	if !ok {
		return m, nil
	}
	if d.Kind == theme.KindEnum {
		m.cycle(1)
		return m, nil
	}

	m.currentMode = modeEdit
	m.editingKey = d.Key
	m.input.Prompt = d.Label + ": "
	m.input.Placeholder = placeholderFor(d.Kind)
	m.input.SetValue(m.session.Props.Get(d.Key))
	m.input.CursorEnd()
	m.setStatus("")
	return m, m.input.Focus()
}

func placeholderFor(kind theme.ValueKind) string {
	switch kind {
	case theme.KindColor:
		return "#rrggbb or color name"
	case theme.KindFont:
		return "Font Name Style Size"
	case theme.KindFile:
		return "path to image"
	default:
		return ""
	}
}

func (m Model) handleEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		value := strings.TrimSpace(m.input.Value())
		key := m.editingKey
		m.endInput()

		d, _ := theme.Lookup(key)
		if d.Kind == theme.KindFile && value != "" && fileExists(value) {
			if err := m.session.ImportAsset(context.Background(), key, value); err != nil {
				m.setError("Import failed: " + err.Error())
			} else {
				m.setStatus("Using " + m.session.Props.Get(key))
			}
			return m, nil
		}
		m.setValue(key, value)
		return m, nil

	case "esc":
		m.endInput()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) endInput() {
	m.input.Blur()
	m.input.SetValue("")
	m.editingKey = ""
	m.currentMode = modeList
}

func (m Model) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.input.Blur()
		m.currentMode = modeList
		return m, nil
	case "esc":
		m.input.Blur()
		m.currentMode = modeList
		m.clearFilter()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.filterQuery = m.input.Value()
	m.applyFilter()
	return m, cmd
}

func (m *Model) applyFilter() {
	m.visible = filterDescriptors(m.filterQuery)
	if m.cursor >= len(m.visible) {
		m.cursor = max(0, len(m.visible)-1)
	}
}

func (m *Model) clearFilter() {
	m.filterQuery = ""
	m.applyFilter()
}

func (m *Model) openPreview() {
	lines, err := m.highlighter.Highlight(m.session.Preview())
	if err != nil {
		logging.Warn("preview highlighting failed: %v", err)
	}
	m.previewLines = lines
	m.previewOffset = 0
	m.currentMode = modePreview
}

func (m *Model) copyPreview() {
	if err := m.copyToClipboard(m.session.Preview()); err != nil {
		m.setError("Copy failed: " + err.Error())
		return
	}
	m.setStatus("Copied theme.txt to clipboard")
}

func (m *Model) save() {
	if _, err := m.session.Save(context.Background()); err != nil {
		logging.Error("save failed: %v", err)
		if errors.Is(err, system.ErrPermissionDenied) {
			m.setError("Authorisation refused, nothing was written")
		} else {
			m.setError("Save failed: " + err.Error())
		}
		return
	}
	if m.backups != nil {
		m.backups.Refresh()
	}
	m.quitPending = false
	m.setStatus("Saved " + m.session.Path)
}

func (m Model) handleSaveAsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		name := strings.TrimSpace(m.input.Value())
		m.endInput()
		if name == "" {
			return m, nil
		}
		m.saveAs(name)
		return m, nil
	case "esc":
		m.endInput()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) saveAs(name string) {
	if _, err := m.session.SaveAs(context.Background(), m.config.Paths.ThemesDir, name); err != nil {
		logging.Error("save as %s failed: %v", name, err)
		if errors.Is(err, system.ErrPermissionDenied) {
			m.setError("Authorisation refused, nothing was written")
		} else {
			m.setError("Save as failed: " + err.Error())
		}
		return
	}
	if m.store != nil {
		m.backups = storage.NewBackupCache(m.store, m.session.Path, 8)
	}
	m.quitPending = false
	m.setStatus("Saved " + m.session.Path)
}

func (m *Model) reload() {
	if err := m.session.Reload(context.Background()); err != nil {
		m.setError("Reload failed: " + err.Error())
		return
	}
	m.applyFilter()
	m.setStatus("Reloaded " + m.session.Path)
}

func (m *Model) openBackups() {
	if m.backups == nil {
		m.setError("Backups are disabled")
		return
	}
	m.backups.Refresh()
	m.backupCursor = 0
	m.currentMode = modeBackups
	m.setStatus("")
}

func (m Model) handleBackupsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	items := m.backups.Items()

	switch msg.String() {
	case "up", "k":
		if m.backupCursor > 0 {
			m.backupCursor--
		}
	case "down", "j":
		if m.backupCursor < len(items)-1 {
			m.backupCursor++
		}
	case "enter":
		if m.backupCursor >= len(items) {
			return m, nil
		}
		id := items[m.backupCursor].ID
		if err := m.session.Restore(context.Background(), id); err != nil {
			m.setError("Restore failed: " + err.Error())
			return m, nil
		}
		m.backups.Refresh()
		m.applyFilter()
		m.currentMode = modeList
		m.setStatus("Restored backup from " + items[m.backupCursor].CreatedAt.Format("2006-01-02 15:04:05"))
	case "x", "delete":
		if m.backupCursor >= len(items) {
			return m, nil
		}
		id := items[m.backupCursor].ID
		if err := m.store.Delete(id); err != nil {
			m.setError("Delete failed: " + err.Error())
			return m, nil
		}
		m.backups.Evict(id)
		m.backups.Refresh()
		if m.backupCursor >= m.backups.Len() {
			m.backupCursor = max(0, m.backups.Len()-1)
		}
	case "esc", "q", "b":
		m.currentMode = modeList
	}

	return m, nil
}

func (m Model) handlePreviewKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	_, _, _, contentHeight := m.calculateDialogDimensions()
	maxOffset := max(0, len(m.previewLines)-contentHeight)

	switch msg.String() {
	case "up", "k":
		m.previewOffset = max(0, m.previewOffset-1)
	case "down", "j":
		m.previewOffset = min(maxOffset, m.previewOffset+1)
	case "pgup":
		m.previewOffset = max(0, m.previewOffset-contentHeight)
	case "pgdown":
		m.previewOffset = min(maxOffset, m.previewOffset+contentHeight)
	case "home":
		m.previewOffset = 0
	case "end":
		m.previewOffset = maxOffset
	case "y":
		m.copyPreview()
	case "esc", "q", "p":
		m.currentMode = modeList
	}
	return m, nil
}

func (m Model) handleHelpKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		m.helpOffset = max(0, m.helpOffset-1)
	case "down", "j":
		m.helpOffset = min(max(0, len(helpLines)-1), m.helpOffset+1)
	default:
		m.currentMode = modeList
	}
	return m, nil
}

// openImage shows the image behind the selected file property, or the
// desktop image when another row is selected
func (m *Model) openImage() {
	key := theme.KeyDesktopImage
	if d, ok := m.current(); ok && d.Kind == theme.KindFile {
		key = d.Key
	}

	path := strings.Trim(m.session.Props.Get(key), `"`)
	if path == "" {
		m.setError("No image set for " + key)
		return
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(filepath.Dir(m.session.Path), path)
	}

	img, err := loadImage(path)
	if err != nil {
		m.setError(err.Error())
		return
	}
	m.image = img
	m.currentMode = modeImageView
	m.setStatus("")
}

// editExternally opens the rendered theme.txt in the configured editor
func (m *Model) editExternally() tea.Cmd {
	tmpFile, err := os.CreateTemp("", "grubtamer-theme-*.txt")
	if err != nil {
		m.setError("Failed to create temp file: " + err.Error())
		return nil
	}

	tmpFile.WriteString(m.session.Preview())
	tmpFile.Close()
	tmpFilePath := tmpFile.Name()

	// Get editor from config, environment, or use default
	editor := m.config.Editor.TextEditor
	if envEditor := os.Getenv("EDITOR"); envEditor != "" {
		editor = envEditor
	}

	return tea.ExecProcess(exec.Command(editor, tmpFilePath), func(err error) tea.Msg {
		defer os.Remove(tmpFilePath)
		if err != nil {
			return editorDoneMsg{err: err}
		}

		content, readErr := os.ReadFile(tmpFilePath)
		if readErr != nil {
			return editorDoneMsg{err: readErr}
		}
		return editorDoneMsg{content: string(content)}
	})
}

func fileExists(filename string) bool {
	info, err := os.Stat(filename)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}
