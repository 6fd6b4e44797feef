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

package session

import (
	"context"

	"github.com/adaryorg/grubtamer/internal/grub"
	"github.com/adaryorg/grubtamer/internal/logging"
	"github.com/adaryorg/grubtamer/internal/storage"
	"github.com/adaryorg/grubtamer/internal/system"
)

// GrubSession is an open /etc/default/grub.
type GrubSession struct {
	Path     string
	Original string
	Settings *grub.Settings
	// UpdateCommand regenerates grub.cfg after a save. Empty skips it.
	UpdateCommand string

	backend Backend
}

func OpenGrub(ctx context.Context, path, updateCommand string, b Backend) (*GrubSession, error) {
	text, err := b.read(ctx, path)
	if err != nil {
		return nil, err
	}
	return &GrubSession{
		Path:          path,
		Original:      text,
		Settings:      grub.ParseDefaults(text),
		UpdateCommand: updateCommand,
		backend:       b,
	}, nil
}

// Save backs up the file, commits the rendered settings and runs the
// update command.
func (g *GrubSession) Save(ctx context.Context) error {
	if err := g.backend.backup(g.Path, g.Original, "before save"); err != nil {
		return err
	}

	out := g.Settings.Render()
	if err := g.backend.Committer.Commit(ctx, g.Path, []byte(out)); err != nil {
		return err
	}
	g.Original = out
	logging.Info("saved %s", g.Path)

	return system.UpdateGrub(ctx, g.backend.Runner, g.backend.Command, g.UpdateCommand)
}

func (g *GrubSession) Backups() []storage.BackupMeta {
	if g.backend.Store == nil {
		return nil
	}
	return g.backend.Store.List(g.Path)
}

func (g *GrubSession) Restore(ctx context.Context, id string) error {
	content, err := restoreContent(g.backend, g.Path, id)
	if err != nil {
		return err
	}
	if err := g.backend.backup(g.Path, g.Original, "before restore"); err != nil {
		return err
	}
	if err := g.backend.Committer.Commit(ctx, g.Path, []byte(content)); err != nil {
		return err
	}

	g.Original = content
	g.Settings = grub.ParseDefaults(content)
	return system.UpdateGrub(ctx, g.backend.Runner, g.backend.Command, g.UpdateCommand)
}
