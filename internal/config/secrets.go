package config

import (
	"fmt"
	"os"
	"strings"
)

// secretsDir - путь по умолчанию для Docker Secrets.
var secretsDir = "/run/secrets"

// ReadSecret читает секрет из файла в стандартном пути Docker Secrets.
func ReadSecret(secretName string) (string, error) {
	filePath := fmt.Sprintf("%s/%s", secretsDir, secretName)
	secretBytes, err := os.ReadFile(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to read secret file %s: %w", filePath, err)
	}
	secret := strings.TrimSpace(string(secretBytes))
	if secret == "" {
		return "", fmt.Errorf("secret file %s is empty", filePath)
	}
	return secret, nil
}

// ReadOptionalSecret prefers the environment variable (serverless platforms
// inject secrets there) and falls back to the secret file. Missing is "".
func ReadOptionalSecret(envKey, secretName string) string {
	if v := strings.TrimSpace(os.Getenv(envKey)); v != "" {
		return v
	}
	secret, err := ReadSecret(secretName)
	if err != nil {
		return ""
	}
	return secret
}
