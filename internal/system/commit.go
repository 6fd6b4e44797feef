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

package system

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/adaryorg/grubtamer/internal/logging"
)

// Committer writes the complete content of a file.
type Committer interface {
	Commit(ctx context.Context, path string, data []byte) error
}

// FileCommitter writes directly, for files the user owns.
type FileCommitter struct{}

func (FileCommitter) Commit(ctx context.Context, path string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return &CommitError{Path: path, Err: err}
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".grubtamer-*")
	if err != nil {
		return &CommitError{Path: path, Err: mapFSError(err)}
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return &CommitError{Path: path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		return &CommitError{Path: path, Err: err}
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		return &CommitError{Path: path, Err: err}
	}
	if err := os.Rename(tmpName, path); err != nil {
		return &CommitError{Path: path, Err: mapFSError(err)}
	}

	logging.Info("wrote %s (%d bytes)", path, len(data))
	return nil
}

// PrivilegedCommitter pipes the content into `<Command> tee <path>`.
type PrivilegedCommitter struct {
	Command string
	Runner  Runner
}

func (c PrivilegedCommitter) Commit(ctx context.Context, path string, data []byte) error {
	runner := c.Runner
	if runner == nil {
		runner = ExecRunner{}
	}

	if _, err := runner.Run(ctx, bytes.NewReader(data), c.Command, "tee", path); err != nil {
		err = classifyRunError(err)
		logging.Error("privileged write of %s failed: %v", path, err)
		return &CommitError{Path: path, Err: err}
	}

	logging.Info("wrote %s via %s (%d bytes)", path, c.Command, len(data))
	return nil
}

// NewCommitter returns the privileged committer when enabled, otherwise
// direct file writes.
func NewCommitter(privileged bool, command string) Committer {
	if privileged {
		return PrivilegedCommitter{Command: command, Runner: ExecRunner{}}
	}
	return FileCommitter{}
}

// ReadFile reads path, falling back to `<command> cat <path>` when the file
// is root-only and a runner is given.
func ReadFile(ctx context.Context, runner Runner, command, path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err == nil {
		return data, nil
	}
	if !errors.Is(err, fs.ErrPermission) || runner == nil {
		return nil, mapFSError(err)
	}

	out, runErr := runner.Run(ctx, nil, command, "cat", path)
	if runErr != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, classifyRunError(runErr))
	}
	return out, nil
}

// EnsureFile creates path (and its directory) when it does not exist yet, so
// that later renders have a base file to work from.
func EnsureFile(ctx context.Context, runner Runner, command, path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return mapFSError(err)
	}

	logging.Info("creating theme file %s", path)

	if runner == nil {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return mapFSError(err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return mapFSError(err)
		}
		return f.Close()
	}

	steps := [][]string{
		{"mkdir", "-p", filepath.Dir(path)},
		{"touch", path},
		{"chmod", "644", path},
	}
	for _, step := range steps {
		if _, err := runner.Run(ctx, nil, command, step...); err != nil {
			return fmt.Errorf("failed to create %s: %w", path, classifyRunError(err))
		}
	}
	return nil
}

// ImportAsset makes src available inside themeDir. A file already under
// themeDir is returned unchanged, anything else is copied in by name and
// the destination path is returned.
func ImportAsset(ctx context.Context, c Committer, src, themeDir string) (string, error) {
	absSrc, err := filepath.Abs(src)
	if err != nil {
		return "", err
	}
	absDir, err := filepath.Abs(themeDir)
	if err != nil {
		return "", err
	}

	if rel, err := filepath.Rel(absDir, absSrc); err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return absSrc, nil
	}

	data, err := os.ReadFile(absSrc)
	if err != nil {
		return "", fmt.Errorf("failed to read asset: %w", mapFSError(err))
	}

	dest := filepath.Join(absDir, filepath.Base(absSrc))
	if err := c.Commit(ctx, dest, data); err != nil {
		return "", err
	}

	logging.Info("imported asset %s to %s", absSrc, dest)
	return dest, nil
}

func mapFSError(err error) error {
	if errors.Is(err, fs.ErrPermission) {
		return fmt.Errorf("%w: %v", ErrPermissionDenied, err)
	}
	return err
}
