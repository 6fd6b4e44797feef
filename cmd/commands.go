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

package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/adaryorg/grubtamer/internal/config"
	"github.com/adaryorg/grubtamer/internal/grub"
	"github.com/adaryorg/grubtamer/internal/session"
	"github.com/adaryorg/grubtamer/internal/storage"
	"github.com/adaryorg/grubtamer/internal/system"
	"github.com/adaryorg/grubtamer/internal/theme"
)

// app carries what the command handlers share
type app struct {
	cfg     *config.Config
	store   *storage.Storage
	backend session.Backend
	dryRun  bool
}

func (a *app) runTUI(ctx context.Context, themePath string) error {
	if err := system.EnsureFile(ctx, a.backend.Runner, a.backend.Command, themePath); err != nil {
		return fmt.Errorf("failed to prepare %s: %w", themePath, err)
	}
	s, err := session.OpenTheme(ctx, themePath, a.backend)
	if err != nil {
		return err
	}
	return startTUI(s, a.store, a.cfg)
}

func (a *app) printTheme(ctx context.Context, themePath string) error {
	s, err := session.OpenTheme(ctx, themePath, a.backend)
	if err != nil {
		return err
	}

	fmt.Printf("Theme: %s\n", themePath)
	group := ""
	for _, d := range theme.Descriptors() {
		if d.Group != group {
			group = d.Group
			fmt.Printf("\n[%s]\n", group)
		}
		value := s.Props.Get(d.Key)
		if value == "" && d.Key == theme.KeyMenuPosition {
			value = theme.CenterPosition
		}
		fmt.Printf("  %-20s %s\n", d.Key, value)
	}

	for _, diag := range s.Diagnostics {
		fmt.Printf("[WARN] line %d: %v\n", diag.Line, diag.Err)
	}
	return nil
}

// themeChange is what one CLI call does to a theme
type themeChange struct {
	assignments []string
	reset       bool
	saveAs      string
}

func (a *app) changeTheme(ctx context.Context, themePath string, change themeChange) error {
	s, err := session.OpenTheme(ctx, themePath, a.backend)
	if err != nil {
		return err
	}

	if change.reset {
		s.ResetDefaults()
	}
	for _, assignment := range change.assignments {
		key, value, err := splitAssignment(assignment)
		if err != nil {
			return err
		}
		if err := s.Set(key, value); err != nil {
			return err
		}
	}

	if a.dryRun {
		fmt.Print(s.Preview())
		return nil
	}

	if change.saveAs != "" {
		if _, err := s.SaveAs(ctx, a.cfg.Paths.ThemesDir, change.saveAs); err != nil {
			return err
		}
		fmt.Printf("[OK] Saved %s\n", s.Path)
		return nil
	}

	if !s.Dirty() {
		fmt.Println("[INFO] No changes to write")
		return nil
	}
	if _, err := s.Save(ctx); err != nil {
		return err
	}
	fmt.Printf("[OK] Saved %s\n", themePath)
	return nil
}

func (a *app) openGrub(ctx context.Context) (*session.GrubSession, error) {
	return session.OpenGrub(ctx, a.cfg.Paths.GrubDefault, a.cfg.Grub.UpdateCommand, a.backend)
}

func (a *app) printGrubSettings(ctx context.Context) error {
	g, err := a.openGrub(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Settings: %s\n", g.Path)
	for _, key := range g.Settings.Keys() {
		value, _ := g.Settings.Get(key)
		label := ""
		if opt, ok := grub.LookupOption(key); ok {
			label = opt.Label
		}
		fmt.Printf("  %-32s %-24s %s\n", key, value, label)
	}
	return nil
}

func (a *app) changeGrubSettings(ctx context.Context, assignments, removals []string) error {
	g, err := a.openGrub(ctx)
	if err != nil {
		return err
	}

	for _, assignment := range assignments {
		key, value, err := splitAssignment(assignment)
		if err != nil {
			return err
		}
		g.Settings.Set(key, value)
	}
	for _, key := range removals {
		key = strings.TrimSpace(key)
		if _, ok := g.Settings.Get(key); !ok {
			return fmt.Errorf("%s is not set in %s", key, g.Path)
		}
		g.Settings.Delete(key)
	}

	if a.dryRun {
		fmt.Print(g.Settings.Render())
		return nil
	}
	if err := g.Save(ctx); err != nil {
		return err
	}
	fmt.Printf("[OK] Saved %s\n", g.Path)
	return nil
}

func (a *app) printEntries(ctx context.Context) error {
	data, err := system.ReadFile(ctx, a.backend.Runner, a.backend.Command, a.cfg.Paths.GrubCfg)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%s not found", a.cfg.Paths.GrubCfg)
		}
		return err
	}

	entries := grub.ParseMenuEntries(string(data))
	if len(entries) == 0 {
		fmt.Println("[INFO] No boot entries found")
		return nil
	}
	for i, entry := range entries {
		fmt.Printf("%3d  %s\n", i, entry)
	}
	return nil
}

func (a *app) printBackups() error {
	backups := a.store.List("")
	if len(backups) == 0 {
		fmt.Println("[INFO] No backups stored")
		return nil
	}
	for _, b := range backups {
		fmt.Printf("%s  %s  %6d  %-16s %s\n",
			b.ID,
			b.CreatedAt.Format("2006-01-02 15:04:05"),
			b.Size,
			b.Note,
			b.Path,
		)
	}
	return nil
}

// restoreBackup dispatches on the file the backup was taken from, so
// /etc/default/grub restores also regenerate grub.cfg
func (a *app) restoreBackup(ctx context.Context, id string) error {
	backup, err := a.store.Get(id)
	if err != nil {
		return err
	}

	if filepath.Clean(backup.Path) == filepath.Clean(a.cfg.Paths.GrubDefault) {
		g, err := a.openGrub(ctx)
		if err != nil {
			return err
		}
		if err := g.Restore(ctx, id); err != nil {
			return err
		}
	} else {
		s, err := session.OpenTheme(ctx, backup.Path, a.backend)
		if err != nil {
			return err
		}
		if err := s.Restore(ctx, id); err != nil {
			return err
		}
	}

	fmt.Printf("[OK] Restored %s from backup %s\n", backup.Path, id)
	return nil
}

func searchOptions(query string) {
	results := grub.SearchOptions(query)
	if len(results) == 0 {
		fmt.Printf("[INFO] No options match %q\n", query)
		return
	}
	for _, opt := range results {
		fmt.Printf("%-32s %s\n", opt.Key, opt.Label)
		if opt.Description != "" {
			fmt.Printf("    %s\n", opt.Description)
		}
		if opt.Example != "" {
			fmt.Printf("    e.g. %s\n", opt.Example)
		}
	}
}

func printThemes(cfg *config.Config) {
	current := filepath.Base(filepath.Dir(cfg.Paths.DefaultTheme))
	for _, name := range system.DiscoverThemes(cfg.Paths.ThemesDir) {
		marker := " "
		if name == current {
			marker = "*"
		}
		fmt.Fprintf(os.Stdout, "%s %s\n", marker, name)
	}
}
