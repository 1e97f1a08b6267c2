package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LoadOrCreateAPIPassword returns the API password stored at path. If the
// file does not exist a new random password is generated and persisted so
// the value survives restarts. The password never changes once written.
func LoadOrCreateAPIPassword(path string) (string, error) {
	if data, err := os.ReadFile(path); err == nil {
		password := strings.TrimSpace(string(data))
		if password != "" {
			return password, nil
		}
	}

	password, err := generatePassword(16) // 32 hex chars
	if err != nil {
		return "", fmt.Errorf("failed to generate API password: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("failed to create password directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(password), 0o600); err != nil {
		return "", fmt.Errorf("failed to persist API password: %w", err)
	}

	return password, nil
}

func generatePassword(length int) (string, error) {
	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
