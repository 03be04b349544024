package paths

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"syscall"

	"github.com/arthur-debert/mflash/pkg/errors"
)

// EnsureDirectory resolves path to a canonical absolute directory.
// Symbolic links and relative segments are resolved before the checks run.
func EnsureDirectory(path string) (string, error) {
	if err := ValidatePath(path); err != nil {
		return "", err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFileAccess, "cannot resolve %q", path).
			WithDetail("path", path)
	}

	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		if isMissing(err) {
			return "", errors.Newf(errors.ErrPathNotFound, "directory not found: %s", abs).
				WithDetail("path", abs)
		}
		return "", errors.Wrapf(err, errors.ErrFileAccess, "cannot resolve %s", abs).
			WithDetail("path", abs)
	}

	info, err := os.Stat(resolved)
	if err != nil {
		if isMissing(err) {
			return "", errors.Newf(errors.ErrPathNotFound, "directory not found: %s", resolved).
				WithDetail("path", resolved)
		}
		return "", errors.Wrapf(err, errors.ErrFileAccess, "cannot stat %s", resolved).
			WithDetail("path", resolved)
	}
	if !info.IsDir() {
		return "", errors.Newf(errors.ErrNotADirectory, "not a directory: %s", resolved).
			WithDetail("path", resolved)
	}

	return resolved, nil
}

// EnsureFile checks that path names an existing, regular, readable file.
// The path is used as given; callers join it beforehand.
func EnsureFile(path string) (string, error) {
	if err := ValidatePath(path); err != nil {
		return "", err
	}

	info, err := os.Stat(path)
	if err != nil {
		if isMissing(err) {
			return "", errors.Newf(errors.ErrPathNotFound, "file not found: %s", path).
				WithDetail("path", path)
		}
		return "", errors.Wrapf(err, errors.ErrFileAccess, "cannot stat %s", path).
			WithDetail("path", path)
	}
	if !info.Mode().IsRegular() {
		return "", errors.Newf(errors.ErrNotAFile, "%q is not a file", path).
			WithDetail("path", path)
	}

	f, err := os.Open(path)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrNotReadable, "%q is not a readable file", path).
			WithDetail("path", path)
	}
	_ = f.Close()

	return path, nil
}

// ResolveFile joins a document-relative name onto dir and guards the result.
// Absolute names are used as they are.
func ResolveFile(dir, name string) (string, error) {
	if err := ValidatePath(name); err != nil {
		return "", err
	}

	path := name
	if !filepath.IsAbs(name) {
		path = filepath.Join(dir, name)
	}
	return EnsureFile(path)
}

// isMissing reports whether err means the path does not exist, including
// paths that pass through a regular file (boot.img/inner.img)
func isMissing(err error) bool {
	return os.IsNotExist(err) || stderrors.Is(err, syscall.ENOTDIR)
}
