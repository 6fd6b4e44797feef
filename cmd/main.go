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
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/adaryorg/grubtamer/internal/config"
	"github.com/adaryorg/grubtamer/internal/logging"
	"github.com/adaryorg/grubtamer/internal/session"
	"github.com/adaryorg/grubtamer/internal/storage"
	"github.com/adaryorg/grubtamer/internal/system"
	"github.com/adaryorg/grubtamer/internal/version"
)

// multiFlag collects a repeatable flag
type multiFlag []string

func (f *multiFlag) String() string {
	return strings.Join(*f, ", ")
}

func (f *multiFlag) Set(value string) error {
	*f = append(*f, value)
	return nil
}

func main() {
	var sets, grubSets, grubUnsets multiFlag

	themeFile := flag.String("theme", "", "Theme file or theme name to edit")
	themeFileShort := flag.String("t", "", "Theme file or theme name to edit")
	show := flag.Bool("show", false, "Print the properties of the theme")
	flag.Var(&sets, "set", "Set a theme property, key=value (repeatable)")
	saveAs := flag.String("save-as", "", "Write the theme as a new theme directory NAME under themes_dir")
	resetDefaults := flag.Bool("reset-defaults", false, "Reset menu position and colors to safe defaults")
	dryRun := flag.Bool("dry-run", false, "Print the result of --set or --grub-set instead of writing it")
	dryRunShort := flag.Bool("n", false, "Print the result of --set or --grub-set instead of writing it")
	entries := flag.Bool("entries", false, "List boot entries from grub.cfg")
	grubShow := flag.Bool("grub-show", false, "Print the settings in /etc/default/grub")
	flag.Var(&grubSets, "grub-set", "Set a GRUB setting, KEY=VALUE (repeatable)")
	flag.Var(&grubUnsets, "grub-unset", "Remove a GRUB setting, KEY (repeatable)")
	searchOption := flag.String("search-option", "", "Search the GRUB option catalogue")
	listBackups := flag.Bool("list-backups", false, "List stored backups")
	restore := flag.String("restore", "", "Restore the backup with the given ID")
	listThemes := flag.Bool("list-themes", false, "List installed themes")
	debug := flag.Bool("debug", false, "Log debug output to stderr")
	help := flag.Bool("help", false, "Show help information")
	helpShort := flag.Bool("h", false, "Show help information")
	versionFlag := flag.Bool("version", false, "Display version and build information")
	versionShort := flag.Bool("v", false, "Display version and build information")
	flag.Parse()

	// Show version if requested
	if *versionFlag || *versionShort {
		fmt.Printf("grubtamer version %s | %s (%s)\n",
			version.Version,
			version.BuildTime,
			version.CommitHash,
		)
		os.Exit(0)
	}

	// Show help if requested
	if *help || *helpShort {
		showHelp()
		return
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if *debug {
		logging.SetOutput(os.Stderr, "debug")
	} else if err := logging.InitLogger(logging.Options{
		LogFile:    cfg.Logging.LogFile,
		Level:      cfg.Logging.Level,
		MaxAge:     cfg.Logging.MaxAge,
		MaxSize:    cfg.Logging.MaxSize,
		MaxBackups: cfg.Logging.MaxBackups,
	}); err != nil {
		log.Printf("Failed to initialize logging: %v", err)
	}

	// Search needs neither the theme nor the backups
	if *searchOption != "" {
		searchOptions(*searchOption)
		return
	}

	if *listThemes {
		printThemes(cfg)
		return
	}

	customTheme := *themeFile
	if customTheme == "" {
		customTheme = *themeFileShort
	}
	themePath := resolveThemePath(cfg, customTheme)

	store, err := openStore(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize backup storage: %v", err)
	}
	defer store.Close()

	app := &app{
		cfg:     cfg,
		store:   store,
		backend: newBackend(cfg, store),
		dryRun:  *dryRun || *dryRunShort,
	}
	ctx := context.Background()

	switch {
	case *listBackups:
		err = app.printBackups()
	case *restore != "":
		err = app.restoreBackup(ctx, *restore)
	case *entries:
		err = app.printEntries(ctx)
	case *grubShow:
		err = app.printGrubSettings(ctx)
	case len(grubSets) > 0 || len(grubUnsets) > 0:
		err = app.changeGrubSettings(ctx, grubSets, grubUnsets)
	case *show:
		err = app.printTheme(ctx, themePath)
	case len(sets) > 0 || *saveAs != "" || *resetDefaults:
		err = app.changeTheme(ctx, themePath, themeChange{
			assignments: sets,
			reset:       *resetDefaults,
			saveAs:      *saveAs,
		})
	default:
		err = app.runTUI(ctx, themePath)
	}

	if err != nil {
		logging.Error("%v", err)
		fmt.Fprintf(os.Stderr, "[ERROR] %v\n", err)
		os.Exit(1)
	}
}

// resolveThemePath accepts a path to a theme.txt or the name of a theme
// directory under the configured themes directory
func resolveThemePath(cfg *config.Config, value string) string {
	if value == "" {
		return cfg.Paths.DefaultTheme
	}
	if strings.ContainsRune(value, filepath.Separator) || strings.HasSuffix(value, ".txt") {
		if abs, err := filepath.Abs(value); err == nil {
			return abs
		}
		return value
	}
	return system.ThemePath(cfg.Paths.ThemesDir, value)
}

func openStore(cfg *config.Config) (*storage.Storage, error) {
	configDir, err := config.Dir()
	if err != nil {
		return nil, err
	}
	return storage.New(filepath.Join(configDir, "backups.db"), cfg.Backup.MaxEntries)
}

func newBackend(cfg *config.Config, store *storage.Storage) session.Backend {
	backend := session.Backend{
		Committer: system.NewCommitter(cfg.Privileged.Enabled, cfg.Privileged.Command),
		Store:     store,
	}
	if cfg.Privileged.Enabled {
		backend.Runner = system.ExecRunner{}
		backend.Command = cfg.Privileged.Command
	}
	return backend
}

// splitAssignment parses key=value
func splitAssignment(s string) (string, string, error) {
	key, value, ok := strings.Cut(s, "=")
	key = strings.TrimSpace(key)
	if !ok || key == "" {
		return "", "", fmt.Errorf("expected key=value, got %q", s)
	}
	return key, strings.TrimSpace(value), nil
}

func showHelp() {
	fmt.Println("GrubTamer - GRUB settings and theme editor")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  grubtamer                          Start the theme editor")
	fmt.Println("  grubtamer --theme NAME, -t NAME    Edit another theme (name or path to theme.txt)")
	fmt.Println("  grubtamer --show                   Print the theme properties")
	fmt.Println("  grubtamer --set key=value          Set a theme property (repeatable)")
	fmt.Println("  grubtamer --reset-defaults         Centered menu, white text on black")
	fmt.Println("  grubtamer --save-as NAME           Save the theme as a new theme directory")
	fmt.Println("  grubtamer --dry-run, -n            Print the result instead of writing it")
	fmt.Println("  grubtamer --entries                List boot entries")
	fmt.Println("  grubtamer --grub-show              Print /etc/default/grub settings")
	fmt.Println("  grubtamer --grub-set KEY=VALUE     Change a GRUB setting (repeatable)")
	fmt.Println("  grubtamer --grub-unset KEY         Remove a GRUB setting (repeatable)")
	fmt.Println("  grubtamer --search-option QUERY    Search known GRUB settings")
	fmt.Println("  grubtamer --list-themes            List installed themes")
	fmt.Println("  grubtamer --list-backups           List stored backups")
	fmt.Println("  grubtamer --restore ID             Restore a backup")
	fmt.Println("  grubtamer --debug                  Log to stderr at debug level")
	fmt.Println("  grubtamer --version, -v            Display version and build information")
	fmt.Println("  grubtamer --help, -h               Show this help message")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --set key=value                    Keys are theme property names such as")
	fmt.Println("                                     title-text, menu-position or progress-style.")
	fmt.Println("                                     Run --show to see them all. The managed")
	fmt.Println("                                     boot_menu and progress blocks are rewritten,")
	fmt.Println("                                     other lines and blocks are kept as they are.")
	fmt.Println()
	fmt.Println("  --save-as NAME                     Creates <themes_dir>/NAME/theme.txt from the")
	fmt.Println("                                     current theme, with --set and --reset-defaults")
	fmt.Println("                                     applied. Images next to theme.txt are copied.")
	fmt.Println()
	fmt.Println("  --grub-set KEY=VALUE               Writes /etc/default/grub and runs the")
	fmt.Println("                                     configured update command (update-grub).")
	fmt.Println()
	fmt.Println("  --restore ID                       IDs are listed by --list-backups. A backup")
	fmt.Println("                                     of the current file is taken first.")
	fmt.Println()
	fmt.Println("Root-owned files are written through the command configured in")
	fmt.Println("[privileged] of ~/.config/grubtamer/config.toml (pkexec by default).")
}
