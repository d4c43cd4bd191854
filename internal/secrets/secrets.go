// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads API keys and credentials from a directory of plain-text files.
// Each file in the directory represents one secret: the filename is the key name and the
// file contents (trimmed) are the value.
//
// Supported key files: anthropic-api-key.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/TAI-src/retrieve-tailor-example/pkg/types"
)

// AnthropicKeyFile is the secrets-directory filename holding the Anthropic
// API key. The ANTHROPIC_API_KEY environment variable takes precedence.
const AnthropicKeyFile = "anthropic-api-key"

// anthropicKeyEnv is the environment variable checked before the secrets file.
const anthropicKeyEnv = "ANTHROPIC_API_KEY"

// Load reads all files in dir and returns a map of filename to trimmed contents.
// A missing directory or missing files are not errors; Load returns an empty map.
// Unreadable files produce a warning on stderr but do not abort.
func Load(dir string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	secrets := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not read secret %s: %v\n", name, err)
			continue
		}

		value := strings.TrimSpace(string(data))
		if value != "" {
			secrets[name] = value
		}
	}

	return secrets, nil
}

// ResolveAnthropicKey returns the Anthropic API key from the environment,
// falling back to the loaded secrets map. An absent key is a fatal
// configuration error, reported before any network call is attempted.
func ResolveAnthropicKey(loaded map[string]string) (string, error) {
	if v := strings.TrimSpace(os.Getenv(anthropicKeyEnv)); v != "" {
		return v, nil
	}
	if v, ok := loaded[AnthropicKeyFile]; ok {
		return v, nil
	}
	return "", &types.ConfigError{
		Reason: fmt.Sprintf("no Anthropic API key: set %s or provide .secrets/%s", anthropicKeyEnv, AnthropicKeyFile),
	}
}
