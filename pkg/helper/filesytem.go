package helper

import (
	"os"
	"path/filepath"
)

// EnsureDir creates the parent directories of path.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0700)
}

// WriteFileAtomic replaces the file at path with data, creating parent directories as needed.
func WriteFileAtomic(path string, data []byte) error {
	if err := EnsureDir(path); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}

	if err = tmp.Close(); err != nil {
		return err
	}

	if err = os.Chmod(tmp.Name(), 0644); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), path)
}
