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

// Package session holds an open theme.txt or /etc/default/grub together
// with the collaborators needed to save it: a committer for the write, a
// backup store and, for root-owned files, a privileged runner.
package session

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/adaryorg/grubtamer/internal/assets"
	"github.com/adaryorg/grubtamer/internal/logging"
	"github.com/adaryorg/grubtamer/internal/storage"
	"github.com/adaryorg/grubtamer/internal/system"
	"github.com/adaryorg/grubtamer/internal/theme"
)

var (
	ErrUnknownProperty = errors.New("unknown property")
	ErrInvalidValue    = errors.New("invalid value")
	ErrNoBackupStore   = errors.New("backups are not available")
	ErrBackupMismatch  = errors.New("backup belongs to a different file")
)

// Backend bundles the collaborators used for I/O.
type Backend struct {
	Committer system.Committer
	// Runner and Command are used to read root-only files and to run
	// privileged helpers. A nil Runner reads directly.
	Runner  system.Runner
	Command string
	// Store receives a snapshot before every overwrite. Nil disables backups.
	Store *storage.Storage
}

func (b Backend) read(ctx context.Context, path string) (string, error) {
	data, err := system.ReadFile(ctx, b.Runner, b.Command, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", err
	}
	return string(data), nil
}

func (b Backend) backup(path, content, note string) error {
	if b.Store == nil || content == "" {
		return nil
	}
	if _, err := b.Store.Add(path, content, note); err != nil {
		return fmt.Errorf("failed to back up %s: %w", path, err)
	}
	return nil
}

// ThemeSession is an open theme file.
type ThemeSession struct {
	Path        string
	Original    string
	Props       theme.Properties
	Diagnostics []theme.Diagnostic

	base    string
	edited  bool
	saved   theme.Properties
	backend Backend
}

// OpenTheme reads and parses path. A missing file opens as empty.
func OpenTheme(ctx context.Context, path string, b Backend) (*ThemeSession, error) {
	s := &ThemeSession{Path: path, backend: b}
	if err := s.Reload(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload discards unsaved changes and reads the file again.
func (s *ThemeSession) Reload(ctx context.Context) error {
	text, err := s.backend.read(ctx, s.Path)
	if err != nil {
		return err
	}
	s.load(text)
	return nil
}

func (s *ThemeSession) load(text string) {
	s.Original = text
	s.base = text
	s.edited = false
	s.Props, s.Diagnostics = theme.ParseWithDiagnostics(text)
	s.saved = s.Props.Clone()
	for _, d := range s.Diagnostics {
		logging.Warn("theme %s: %v", s.Path, d)
	}
}

// Set validates and stores a property value.
func (s *ThemeSession) Set(key, value string) error {
	d, ok := theme.Lookup(key)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownProperty, key)
	}

	switch d.Kind {
	case theme.KindEnum:
		if !slices.Contains(d.Options, value) {
			return fmt.Errorf("%w: %s must be one of %v", ErrInvalidValue, key, d.Options)
		}
	case theme.KindColor:
		if value != "" {
			if _, err := assets.ParseColor(value); err != nil {
				return fmt.Errorf("%w: %s: %v", ErrInvalidValue, key, err)
			}
		}
	}

	s.Props.Set(key, value)
	return nil
}

// ApplyText replaces the working text, e.g. after editing it by hand.
// Properties are parsed from text again; the file on disk is untouched
// until Save.
func (s *ThemeSession) ApplyText(text string) {
	s.base = text
	s.edited = true
	s.Props, s.Diagnostics = theme.ParseWithDiagnostics(text)
}

// Dirty reports whether there are unsaved changes.
func (s *ThemeSession) Dirty() bool {
	if s.edited || len(s.Props) != len(s.saved) {
		return true
	}
	for k, v := range s.Props {
		if sv, ok := s.saved[k]; !ok || sv != v {
			return true
		}
	}
	return false
}

// Preview returns what Save would write.
func (s *ThemeSession) Preview() string {
	return theme.Render(s.base, s.Props)
}

// Save generates the circular progress bitmaps when needed, backs up the
// current file, and commits the rendered text.
func (s *ThemeSession) Save(ctx context.Context) (string, error) {
	return s.saveTo(ctx, s.Path, s.Original, "before save")
}

// SaveAs writes the theme into a new theme directory under themesDir and
// keeps editing it there. Images referenced by bare file name are copied
// along so the new theme is complete.
func (s *ThemeSession) SaveAs(ctx context.Context, themesDir, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("%w: theme name %q", ErrInvalidValue, name)
	}

	path := system.ThemePath(themesDir, name)
	if filepath.Clean(path) == filepath.Clean(s.Path) {
		return s.Save(ctx)
	}

	if err := system.EnsureFile(ctx, s.backend.Runner, s.backend.Command, path); err != nil {
		return "", err
	}
	previous, err := s.backend.read(ctx, path)
	if err != nil {
		return "", err
	}
	if err := s.copyImages(ctx, filepath.Dir(path)); err != nil {
		return "", err
	}
	return s.saveTo(ctx, path, previous, "before save as")
}

func (s *ThemeSession) saveTo(ctx context.Context, path, previous, note string) (string, error) {
	if s.Props.Get(theme.KeyProgressStyle) == theme.StyleCircle {
		if err := s.writeAssets(ctx, filepath.Dir(path)); err != nil {
			return "", err
		}
	}

	if err := s.backend.backup(path, previous, note); err != nil {
		return "", err
	}

	out := theme.Render(s.base, s.Props)
	if err := s.backend.Committer.Commit(ctx, path, []byte(out)); err != nil {
		return "", err
	}

	logging.Info("saved theme %s", path)
	s.Path = path
	s.Original = out
	s.base = out
	s.edited = false
	s.saved = s.Props.Clone()
	return out, nil
}

func (s *ThemeSession) writeAssets(ctx context.Context, dir string) error {
	colors := map[assets.Kind]string{
		assets.KindCenter: valueOr(s.Props.Get(theme.KeyProgressBgColor), "#000"),
		assets.KindTick:   valueOr(s.Props.Get(theme.KeyProgressColor), "#fff"),
	}

	for _, kind := range []assets.Kind{assets.KindCenter, assets.KindTick} {
		data, err := assets.Generate(colors[kind], kind)
		if err != nil {
			return fmt.Errorf("failed to generate %s: %w", assets.FileName(kind), err)
		}
		if err := s.backend.Committer.Commit(ctx, filepath.Join(dir, assets.FileName(kind)), data); err != nil {
			return err
		}
	}
	return nil
}

// copyImages copies file-valued properties given as a bare name next to
// the current theme.txt into dir.
func (s *ThemeSession) copyImages(ctx context.Context, dir string) error {
	from := filepath.Dir(s.Path)
	for _, d := range theme.Descriptors() {
		v := s.Props.Get(d.Key)
		if d.Kind != theme.KindFile || v == "" || filepath.Base(v) != v {
			continue
		}
		src := filepath.Join(from, v)
		if _, err := os.Stat(src); err != nil {
			continue
		}
		if _, err := system.ImportAsset(ctx, s.backend.Committer, src, dir); err != nil {
			return err
		}
	}
	return nil
}

// safeDefaults keep the menu readable on any background.
var safeDefaults = []struct{ key, value string }{
	{theme.KeyMenuPosition, theme.CenterPosition},
	{theme.KeyBoxBorderColor, "#ffffff"},
	{theme.KeyTitleColor, "#ffffff"},
	{theme.KeyDesktopColor, "#000000"},
}

// ResetDefaults sets a centered menu with white text on black. Nothing is
// written until Save.
func (s *ThemeSession) ResetDefaults() {
	for _, d := range safeDefaults {
		s.Props.Set(d.key, d.value)
	}
}

// ImportAsset copies a file-valued property's image into the theme
// directory when it lives elsewhere, and stores the resulting path.
func (s *ThemeSession) ImportAsset(ctx context.Context, key, src string) error {
	d, ok := theme.Lookup(key)
	if !ok || d.Kind != theme.KindFile {
		return fmt.Errorf("%w: %s does not take a file", ErrInvalidValue, key)
	}

	dest, err := system.ImportAsset(ctx, s.backend.Committer, src, filepath.Dir(s.Path))
	if err != nil {
		return err
	}
	s.Props.Set(key, dest)
	return nil
}

// Backups lists the stored snapshots of this file.
func (s *ThemeSession) Backups() []storage.BackupMeta {
	if s.backend.Store == nil {
		return nil
	}
	return s.backend.Store.List(s.Path)
}

// Restore writes snapshot id back to disk and reloads it. The current
// content is backed up first.
func (s *ThemeSession) Restore(ctx context.Context, id string) error {
	content, err := restoreContent(s.backend, s.Path, id)
	if err != nil {
		return err
	}

	if err := s.backend.backup(s.Path, s.Original, "before restore"); err != nil {
		return err
	}
	if err := s.backend.Committer.Commit(ctx, s.Path, []byte(content)); err != nil {
		return err
	}

	logging.Info("restored %s from backup %s", s.Path, id)
	s.load(content)
	return nil
}

func restoreContent(b Backend, path, id string) (string, error) {
	if b.Store == nil {
		return "", ErrNoBackupStore
	}
	snapshot, err := b.Store.Get(id)
	if err != nil {
		return "", err
	}
	if snapshot.Path != path {
		return "", fmt.Errorf("%w: %s", ErrBackupMismatch, snapshot.Path)
	}
	return snapshot.Content, nil
}

func valueOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
