package library

import (
	"fmt"
	"os"
	"path/filepath"
)

// Touch creates the file at path if it does not exist yet, including parent directories.
func Touch(path string) error {
	if err := CreateDirectoryIfNotExists(filepath.Dir(path)); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_RDONLY|os.O_CREATE, 0644)
	if err != nil {
		return fmt.Errorf("touch %s: %w", path, err)
	}
	return f.Close()
}

func CreateDirectoryIfNotExists(dir string) error {
	_, err := os.Stat(dir)
	if os.IsNotExist(err) {
		if err = os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
		return nil
	}
	return err
}
