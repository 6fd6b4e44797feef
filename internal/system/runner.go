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

// Package system performs the file operations that may need elevated
// privileges: committing theme.txt and /etc/default/grub, creating the theme
// file on first run, and reading root-only files.
package system

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
)

var (
	// ErrPermissionDenied is returned when authorisation was refused or the
	// file is not writable.
	ErrPermissionDenied = errors.New("permission denied")
)

// pkexec exit codes for a dismissed or failed authentication dialog.
const (
	exitNotAuthorized = 126
	exitAuthFailed    = 127
)

// CommitError wraps a failed write.
type CommitError struct {
	Path string
	Err  error
}

func (e *CommitError) Error() string {
	return fmt.Sprintf("failed to write %s: %v", e.Path, e.Err)
}

func (e *CommitError) Unwrap() error {
	return e.Err
}

// Runner executes an external command.
type Runner interface {
	Run(ctx context.Context, stdin io.Reader, name string, args ...string) ([]byte, error)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, stdin io.Reader, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = stdin
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if stderr.Len() > 0 {
			return stdout.Bytes(), fmt.Errorf("%s: %w: %s", name, err, bytes.TrimSpace(stderr.Bytes()))
		}
		return stdout.Bytes(), fmt.Errorf("%s: %w", name, err)
	}
	return stdout.Bytes(), nil
}

// classifyRunError maps pkexec authentication failures to ErrPermissionDenied.
func classifyRunError(err error) error {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		switch exitErr.ExitCode() {
		case exitNotAuthorized, exitAuthFailed:
			return fmt.Errorf("%w: %v", ErrPermissionDenied, err)
		}
	}
	return err
}

// UpdateGrub regenerates grub.cfg with updateCommand, through the
// privileged command when one is given.
func UpdateGrub(ctx context.Context, runner Runner, privileged, updateCommand string) error {
	if updateCommand == "" {
		return nil
	}
	if runner == nil {
		runner = ExecRunner{}
	}

	name, args := updateCommand, []string(nil)
	if privileged != "" {
		name, args = privileged, []string{updateCommand}
	}
	if _, err := runner.Run(ctx, nil, name, args...); err != nil {
		return fmt.Errorf("%s failed: %w", updateCommand, classifyRunError(err))
	}
	return nil
}
