// Package system provides filesystem helpers shared by the bundle builder.
package system

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/otiai10/copy"
)

// CopyFile copies a file from src to dst, overwriting dst if it exists.
// It preserves the source file permissions and creates missing parent directories.
func CopyFile(src, dst string) error {
	if src == "" {
		return fmt.Errorf("source file path cannot be empty")
	}
	if dst == "" {
		return fmt.Errorf("destination file path cannot be empty")
	}

	srcFile, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open source file %s: %w", src, err)
	}
	defer func() { _ = srcFile.Close() }()

	srcInfo, err := srcFile.Stat()
	if err != nil {
		return fmt.Errorf("failed to get source file info: %w", err)
	}
	if srcInfo.IsDir() {
		return fmt.Errorf("source %s is a directory", src)
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return fmt.Errorf("failed to create destination directory: %w", err)
	}

	dstFile, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create destination file %s: %w", dst, err)
	}
	defer func() { _ = dstFile.Close() }()

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		return fmt.Errorf("failed to copy file content: %w", err)
	}

	if err := dstFile.Chmod(srcInfo.Mode().Perm()); err != nil {
		return fmt.Errorf("failed to set file permissions: %w", err)
	}

	return dstFile.Close()
}

// CopyDir recursively copies the directory src into dst.
// When dst already exists the trees are merged: files present in both are
// overwritten with the src version, files only in dst are left alone.
// Symlinks are followed and their targets copied as regular content.
func CopyDir(src, dst string) error {
	if src == "" {
		return fmt.Errorf("source directory path cannot be empty")
	}
	if dst == "" {
		return fmt.Errorf("destination directory path cannot be empty")
	}
	if !DirExists(src) {
		return fmt.Errorf("source %s is not a directory", src)
	}
	resolved, err := filepath.EvalSymlinks(src)
	if err != nil {
		return fmt.Errorf("failed to resolve source directory %s: %w", src, err)
	}

	opts := copy.Options{
		OnDirExists: func(src, dest string) copy.DirExistsAction {
			return copy.Merge
		},
		// copy.Deep resolves relative link targets against the working
		// directory, so links are resolved and copied here instead.
		Skip: func(info os.FileInfo, src, dest string) (bool, error) {
			if info.Mode()&os.ModeSymlink == 0 {
				return false, nil
			}
			return true, copyLinkTarget(src, dest)
		},
	}
	if err := copy.Copy(resolved, dst, opts); err != nil {
		return fmt.Errorf("failed to copy directory %s: %w", src, err)
	}
	return nil
}

func copyLinkTarget(link, dst string) error {
	target, err := filepath.EvalSymlinks(link)
	if err != nil {
		return fmt.Errorf("failed to resolve symlink %s: %w", link, err)
	}
	if DirExists(target) {
		return CopyDir(target, dst)
	}
	return CopyFile(target, dst)
}

// SafeWriteFile writes data to a file safely by writing to a temporary file first,
// then moving it to the final location. This prevents partial writes in case of errors.
func SafeWriteFile(filename string, data []byte, perm os.FileMode) error {
	if filename == "" {
		return fmt.Errorf("filename cannot be empty")
	}

	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	tmpFile, err := os.CreateTemp(dir, filepath.Base(filename)+".tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpName := tmpFile.Name()

	defer func() {
		if tmpFile != nil {
			_ = tmpFile.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write to temporary file: %w", err)
	}
	if err := tmpFile.Chmod(perm); err != nil {
		return fmt.Errorf("failed to set temporary file permissions: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temporary file: %w", err)
	}
	tmpFile = nil

	if err := os.Rename(tmpName, filename); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to move temporary file to final location: %w", err)
	}

	return nil
}

// Exists reports whether anything exists at path, following symlinks.
// A dangling symlink does not exist.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// DirExists checks if a directory exists.
func DirExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// EnsureDir creates a directory and all parent directories if they don't exist.
func EnsureDir(path string, perm os.FileMode) error {
	if path == "" {
		return fmt.Errorf("path cannot be empty")
	}
	return os.MkdirAll(path, perm)
}

// RemoveTree deletes path and everything below it.
// It returns false if there was nothing to remove.
func RemoveTree(path string) (bool, error) {
	if path == "" {
		return false, fmt.Errorf("path cannot be empty")
	}
	if _, err := os.Lstat(path); errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err := os.RemoveAll(path); err != nil {
		return false, err
	}
	return true, nil
}
