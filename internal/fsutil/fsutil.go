// Package fsutil holds filesystem helpers shared by the installers.
package fsutil

import (
	"errors"
	"fmt"
	"os"

	"github.com/conn-castle/allsky-automount/internal/messages"
)

// WithTempFile writes data to a new temporary file in dir, calls fn with its
// path, and removes the file before returning. Removal happens on every exit
// path, including a failing or panicking fn.
// An empty dir uses os.TempDir; pattern follows os.CreateTemp.
func WithTempFile(dir string, pattern string, data []byte, perm os.FileMode, fn func(path string) error) (err error) {
	f, err := os.CreateTemp(dir, pattern)
	if err != nil {
		return fmt.Errorf(messages.FsutilCreateTempFmt, err)
	}
	path := f.Name()
	defer func() {
		rmErr := os.Remove(path)
		if rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) && err == nil {
			err = fmt.Errorf(messages.FsutilRemoveTempFmt, path, rmErr)
		}
	}()

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return fmt.Errorf(messages.FsutilWriteTempFmt, path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf(messages.FsutilWriteTempFmt, path, err)
	}
	if err := os.Chmod(path, perm); err != nil {
		return fmt.Errorf(messages.FsutilChmodFmt, path, err)
	}
	return fn(path)
}

// CopyFile copies src to dst byte-for-byte and sets dst's mode to perm,
// including when dst already existed with another mode.
func CopyFile(src string, dst string, perm os.FileMode) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf(messages.FsutilReadFmt, src, err)
	}
	if err := os.WriteFile(dst, data, perm); err != nil {
		return fmt.Errorf(messages.FsutilWriteFmt, dst, err)
	}
	if err := os.Chmod(dst, perm); err != nil {
		return fmt.Errorf(messages.FsutilChmodFmt, dst, err)
	}
	return nil
}
