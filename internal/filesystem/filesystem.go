// Package filesystem writes generated artifacts atomically and fingerprints
// them with SHA-256.
package filesystem

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
)

// WriteFile replaces path with data in one step: the bytes are written to a
// temporary file in the same directory, synced and renamed over path, so a
// concurrent reader sees either the old or the new file. It returns the
// SHA-256 hash of data.
func WriteFile(path string, data []byte) (string, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("failed to sync %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to close %s: %w", path, err)
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return "", fmt.Errorf("failed to set permissions on %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return "", fmt.Errorf("failed to replace %s: %w", path, err)
	}
	committed = true

	return CalculateHash(data), nil
}

// ReadFile reads a file from disk.
func ReadFile(path string) ([]byte, error) {
	//nolint:gosec // G304: artifact paths come from configuration
	return os.ReadFile(path)
}

// FileExists reports whether the given path exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// VerifyFile ensures the file exists and its SHA-256 hash matches the expected hash.
func VerifyFile(path, expectedHash string) (bool, error) {
	if !FileExists(path) {
		return false, nil
	}

	content, err := ReadFile(path)
	if err != nil {
		return false, err
	}

	return CalculateHash(content) == expectedHash, nil
}

// CalculateHash returns the hex SHA-256 of data.
func CalculateHash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
