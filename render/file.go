package render

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
)

// WriteFile writes data to path with atomic write semantics.
// Parent directories are created with 0700 and the file is written with 0600.
func WriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	tempPath, err := tempFileName(path)
	if err != nil {
		return err
	}

	var tempFileCreated bool
	defer func() {
		if tempFileCreated {
			_ = os.Remove(tempPath)
		}
	}()

	if err := os.WriteFile(tempPath, data, 0600); err != nil {
		return fmt.Errorf("write %s: %w", tempPath, err)
	}
	tempFileCreated = true

	// WriteFile honours the umask; set the mode explicitly.
	if err := os.Chmod(tempPath, 0600); err != nil {
		return err
	}

	if err := os.Rename(tempPath, path); err != nil {
		return fmt.Errorf("rename %s: %w", path, err)
	}
	tempFileCreated = false

	return nil
}

// tempFileName places the temp file next to the target so the rename stays on one filesystem.
// Format: path + ".tmp." + randomHex
func tempFileName(path string) (string, error) {
	randomBytes := make([]byte, 8)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", err
	}
	return path + ".tmp." + hex.EncodeToString(randomBytes), nil
}
