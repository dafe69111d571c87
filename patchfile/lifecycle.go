package patchfile

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// CopyBufferSize is the chunk size used by CopyFile.
const CopyBufferSize = 16 * 1024

// tempSuffix marks CopyFile's in-progress files.
const tempSuffix = ".tmp"

// FileExists reports whether anything exists at path.
func FileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Lstat(path)
	return err == nil
}

// SizeOf returns the byte length of a file, or the summed length of every regular file
// below a directory. Missing paths are 0. Symlinks are never followed and count as 0.
func SizeOf(path string) int64 {
	if path == "" {
		return 0
	}
	info, err := os.Lstat(path)
	if err != nil {
		return 0
	}
	if !info.IsDir() {
		if info.Mode().IsRegular() {
			return info.Size()
		}
		return 0
	}

	var total int64
	stack := []string{path}
	for len(stack) > 0 {
		dir := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		dirents, err := os.ReadDir(dir)
		if err != nil {
			diag().Warn("cannot list directory while sizing", "path", dir, "error", err)
		}
		for _, d := range dirents {
			child := filepath.Join(dir, d.Name())
			switch {
			case d.IsDir():
				stack = append(stack, child)
			case d.Type().IsRegular():
				fi, err := d.Info()
				if err != nil {
					continue
				}
				total += fi.Size()
			}
		}
	}
	return total
}

// SafeDelete removes a single file or empty directory. It returns true when the path is
// gone, including when it never existed. On failure the path is queued on DeferredCleanup
// and false is returned; the space has not been reclaimed yet.
func SafeDelete(path string) bool {
	if path == "" {
		return true
	}
	if _, err := os.Lstat(path); errors.Is(err, os.ErrNotExist) {
		return true
	}

	diag().Info("deleting path", "path", path)
	err := os.Remove(path)
	if err == nil || errors.Is(err, os.ErrNotExist) {
		return true
	}
	diag().Error("failed to delete path, deferring until exit", "path", path, "error", err)
	DeferredCleanup.Defer(path)
	return false
}

type deleteFrame struct {
	path     string
	expanded bool
}

// DeleteDir removes path and everything below it, children first. It returns false when
// path is empty or missing, and when anything could not be removed. A directory whose
// listing fails is left in place. Symlinks are removed, not followed.
func DeleteDir(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Lstat(path)
	if err != nil {
		return false
	}
	if !info.IsDir() {
		return SafeDelete(path)
	}

	ok := true
	stack := []deleteFrame{{path: path}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if top.expanded {
			if !SafeDelete(top.path) {
				ok = false
			}
			continue
		}

		dirents, err := os.ReadDir(top.path)
		if err != nil {
			diag().Error("cannot list directory, leaving it in place", "path", top.path, "error", err)
			ok = false
			continue
		}
		stack = append(stack, deleteFrame{path: top.path, expanded: true})
		for _, d := range dirents {
			child := filepath.Join(top.path, d.Name())
			if d.IsDir() {
				stack = append(stack, deleteFrame{path: child})
				continue
			}
			if !SafeDelete(child) {
				ok = false
			}
		}
	}
	return ok
}

// EnsureParentDirectory creates every missing ancestor of path.
func EnsureParentDirectory(path string) error {
	parent := filepath.Dir(path)
	if err := os.MkdirAll(parent, 0o755); err != nil {
		return fmt.Errorf("create parent of %s: %w", path, err)
	}
	return nil
}

// CopyFile copies src to dst through a temporary file in dst's directory, so readers of
// dst never observe a partial copy. Missing parents of dst are created.
func CopyFile(src, dst string) error {
	return copyThroughTemp(src, dst, nil)
}

// InstallFile copies src to dst like CopyFile, but the copy must hash to expected
// before it replaces dst. When it does not, only the temporary copy is removed and
// whatever dst held before is left untouched.
func InstallFile(src, dst, expected string) error {
	if _, err := ParseFingerprint(expected); err != nil {
		return err
	}
	return copyThroughTemp(src, dst, func(tmp string) error {
		actual, err := DigestFile(tmp)
		if err != nil {
			return err
		}
		return compare(src, expected, actual)
	})
}

func copyThroughTemp(src, dst string, check func(tmp string) error) error {
	in, err := openRegular(src)
	if err != nil {
		return err
	}
	defer CloseQuietly(in)

	if err := EnsureParentDirectory(dst); err != nil {
		return err
	}
	tmp := filepath.Join(filepath.Dir(dst), "."+filepath.Base(dst)+"."+uuid.New().String()+tempSuffix)
	out, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("create %s: %w", tmp, err)
	}

	buf := make([]byte, CopyBufferSize)
	if _, err := io.CopyBuffer(out, in, buf); err != nil {
		CloseQuietly(out)
		SafeDelete(tmp)
		return fmt.Errorf("%w: copy %s: %w", ErrReadFailure, src, err)
	}
	if err := out.Close(); err != nil {
		SafeDelete(tmp)
		return fmt.Errorf("close %s: %w", tmp, err)
	}
	if check != nil {
		if err := check(tmp); err != nil {
			SafeDelete(tmp)
			return err
		}
	}
	if err := os.Rename(tmp, dst); err != nil {
		SafeDelete(tmp)
		return fmt.Errorf("rename %s: %w", tmp, err)
	}
	return nil
}

// Temporaries lists leftover in-progress copies in the patch directory, such as those
// left behind when a process died mid CopyFile.
func (l Layout) Temporaries() ([]string, error) {
	dirents, err := os.ReadDir(l.PatchDirectory())
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var paths []string
	for _, d := range dirents {
		name := d.Name()
		if d.Type().IsRegular() && strings.HasPrefix(name, "."+PatchBaseName) && strings.HasSuffix(name, tempSuffix) {
			paths = append(paths, filepath.Join(l.PatchDirectory(), name))
		}
	}
	return paths, nil
}
