package generator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// ErrFileExists is returned by Validate when a file would be overwritten
// without force.
var ErrFileExists = errors.New("file already exists")

// Operation represents a file system operation that can be validated and executed.
//
// Validate checks if the operation would succeed without executing it and has
// no side effects. force=true allows replacing existing files.
//
// Execute performs the operation. It should only be called after Validate succeeds.
//
// Description returns a human-readable description for output (e.g., "Create out/index.html (234 bytes)").
type Operation interface {
	Validate(ctx context.Context, force bool) error
	Execute(ctx context.Context) error
	Description() string
}

// Reverter is implemented by operations that can undo a completed Execute.
type Reverter interface {
	Revert() error
}

// WriteFileOp writes a file with content.
//
// Validation behavior:
//   - Rejects nil content (empty is OK)
//   - A file with identical content is left alone and reported as unchanged
//   - Any other existing file is a conflict unless force=true
//   - The parent path must be a directory or not exist yet
//
// Execution behavior:
//   - Creates parent directories if needed
//   - Remembers the previous content so Revert can restore it
type WriteFileOp struct {
	Path    string      // File path to write
	Content []byte      // File content (can be empty, must not be nil)
	Mode    fs.FileMode // File permissions (e.g., 0644)

	unchanged bool
	existed   bool
	previous  []byte
	prevMode  fs.FileMode
	executed  bool
}

func (op *WriteFileOp) Validate(ctx context.Context, force bool) error {
	if op.Content == nil {
		return fmt.Errorf("content is nil for file: %s", op.Path)
	}

	if err := checkParent(filepath.Dir(op.Path)); err != nil {
		return err
	}

	op.unchanged, op.existed = false, false
	info, err := os.Stat(op.Path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil
	case err != nil:
		return fmt.Errorf("cannot stat %s: %w", op.Path, err)
	case info.IsDir():
		return fmt.Errorf("%s is a directory", op.Path)
	}

	existing, err := os.ReadFile(op.Path)
	if err != nil {
		return fmt.Errorf("cannot read %s: %w", op.Path, err)
	}
	if bytes.Equal(existing, op.Content) {
		op.unchanged = true
		return nil
	}
	if !force {
		return fmt.Errorf("%w: %s", ErrFileExists, op.Path)
	}
	op.existed = true
	return nil
}

func (op *WriteFileOp) Execute(ctx context.Context) error {
	if op.unchanged {
		return nil
	}

	op.existed = false
	if info, err := os.Stat(op.Path); err == nil {
		prev, err := os.ReadFile(op.Path)
		if err != nil {
			return fmt.Errorf("cannot read %s: %w", op.Path, err)
		}
		op.existed, op.previous, op.prevMode = true, prev, info.Mode().Perm()
	}

	dir := filepath.Dir(op.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("cannot create directory %s: %w", dir, err)
	}
	if err := os.WriteFile(op.Path, op.Content, op.Mode); err != nil {
		return err
	}
	op.executed = true
	return nil
}

// Revert restores the file to its state before Execute.
func (op *WriteFileOp) Revert() error {
	if !op.executed {
		return nil
	}
	op.executed = false
	if op.existed {
		return os.WriteFile(op.Path, op.previous, op.prevMode)
	}
	return os.Remove(op.Path)
}

func (op *WriteFileOp) Description() string {
	switch {
	case op.unchanged:
		return fmt.Sprintf("Unchanged %s", op.Path)
	case op.existed:
		return fmt.Sprintf("Overwrite %s (%d bytes)", op.Path, len(op.Content))
	default:
		return fmt.Sprintf("Create %s (%d bytes)", op.Path, len(op.Content))
	}
}

// checkParent walks up from dir to the first existing path and requires it
// to be a directory.
func checkParent(dir string) error {
	for {
		info, err := os.Stat(dir)
		if err == nil {
			if !info.IsDir() {
				return fmt.Errorf("cannot create directory under %s: not a directory", dir)
			}
			return nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("cannot stat %s: %w", dir, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return nil
		}
		dir = parent
	}
}
