package ioutils

import (
	"context"
	"os"
	"path/filepath"
)

// WriteFile replaces the file at path with data.
//
// The bytes go to a temporary file in the same directory which is then
// renamed over path, so readers see either the old file or the complete new
// one. The result has mode 0644. Nothing is written if ctx is already done.
//
// Example:
//
//	err := WriteFile(ctx, "8.jpg", jpegBytes)
func WriteFile(ctx context.Context, path string, data []byte) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return err
	}
	if err = tmp.Chmod(0644); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	if err = ctx.Err(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
