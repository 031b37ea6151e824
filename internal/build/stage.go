package build

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/containerd/errdefs"
	"github.com/cruciblehq/cmbuild/internal/paths"
)

// Copies the named files from srcDir into destDir, creating destDir if
// needed. Returns the destination paths in the order given.
//
// Copying stops at the first failure, and the files already copied by this
// call are removed again so a failed stage leaves no partial set behind. A
// missing source is reported as [errdefs.ErrNotFound].
func stageFiles(logger *slog.Logger, srcDir, destDir string, names []string) ([]string, error) {
	if err := os.MkdirAll(destDir, paths.DefaultDirMode); err != nil {
		return nil, err
	}

	staged := make([]string, 0, len(names))
	for _, name := range names {
		dest := filepath.Join(destDir, name)
		if err := copyFile(logger, filepath.Join(srcDir, name), dest); err != nil {
			unstage(logger, staged)
			return nil, err
		}
		staged = append(staged, dest)
	}
	return staged, nil
}

// Removes previously staged files, logging any that cannot be removed.
func unstage(logger *slog.Logger, staged []string) {
	for _, dest := range staged {
		if err := os.Remove(dest); err != nil && !errors.Is(err, fs.ErrNotExist) {
			logger.Warn("failed to remove partially staged artifact", "path", dest, "error", err)
			continue
		}
		logger.Debug("unstaged", "dest", dest)
	}
}

// Copies a regular file, preserving its permissions and modification time.
//
// The content is written to a temporary file next to dest and renamed into
// place, so an interrupted copy never leaves a truncated artifact and an
// existing destination is replaced.
func copyFile(logger *slog.Logger, src, dest string) error {
	in, err := os.Open(src)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("artifact %s: %w", src, errdefs.ErrNotFound)
	}
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("artifact %s is not a regular file", src)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dest), "."+filepath.Base(dest)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, in); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	if err := os.Chmod(tmp.Name(), info.Mode().Perm()); err != nil {
		return err
	}
	if err := os.Chtimes(tmp.Name(), info.ModTime(), info.ModTime()); err != nil {
		return err
	}
	if err := os.Rename(tmp.Name(), dest); err != nil {
		return err
	}

	logger.Debug("staged", "src", src, "dest", dest, "size", info.Size())
	return nil
}
