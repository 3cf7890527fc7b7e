package storage

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Veraticus/calllog/internal/common"
)

// CountFilesInDirectory counts the regular files directly inside dir.
// Subdirectories are not counted; symlinks count when they point at a regular
// file. A missing directory is logged and counts as zero rather than failing.
func CountFilesInDirectory(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			slog.Warn(common.ErrDirectoryNotFound.Error(), "path", dir)
			return 0, nil
		}
		return 0, common.NewIOError("list", dir, err)
	}

	count := 0
	for _, entry := range entries {
		mode := entry.Type()
		if mode&fs.ModeSymlink != 0 {
			info, err := os.Stat(filepath.Join(dir, entry.Name()))
			if err != nil {
				continue
			}
			mode = info.Mode()
		}
		if mode.IsRegular() {
			count++
		}
	}
	return count, nil
}
