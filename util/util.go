package util

import (
	"os"

	"github.com/pkg/errors"
)

// FileMode is the default FileMode used when creating files.
const FileMode = 0664

// DirMode is the default FileMode used when creating directories.
const DirMode = 0775

// FileExists checks whether some file exists.
func FileExists(file string) bool {
	stat, err := os.Stat(file)
	return err == nil && !stat.IsDir()
}

// DirExists checks whether some directory exists.
func DirExists(dir string) bool {
	stat, err := os.Stat(dir)
	return err == nil && stat.IsDir()
}

// ReadFile reads the whole content of `filePath`.
func ReadFile(filePath string) (string, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return "", errors.Wrapf(err, "failed to read file '%s'", filePath)
	}
	return string(data), nil
}

// WriteFile writes `data` to `filePath`, replacing any previous content.
func WriteFile(filePath string, data []byte) error {
	if err := os.WriteFile(filePath, data, FileMode); err != nil {
		return errors.Wrapf(err, "failed to write file '%s'", filePath)
	}
	return nil
}

// RecreateDir removes `dir` with everything in it and creates it again, empty.
func RecreateDir(dir string) error {
	if dir == "" || dir == "/" {
		return errors.Errorf("refusing to recreate directory '%s'", dir)
	}
	if err := os.RemoveAll(dir); err != nil {
		return errors.Wrapf(err, "failed to remove directory '%s'", dir)
	}
	if err := os.MkdirAll(dir, DirMode); err != nil {
		return errors.Wrapf(err, "failed to create directory '%s'", dir)
	}
	return nil
}
