package config

import (
	"fmt"

	"github.com/99designs/keyring"
)

const (
	keyringService = "kanban"
	aiKeyName      = "ai_api_key"
)

func openKeyring() (keyring.Keyring, error) {
	ring, err := keyring.Open(keyring.Config{
		ServiceName: keyringService,
		AllowedBackends: []keyring.BackendType{
			keyring.KeychainBackend,
			keyring.SecretServiceBackend,
			keyring.WinCredBackend,
			keyring.PassBackend,
			keyring.FileBackend,
		},
		FileDir:                  "~/.config/kanban/credentials",
		FilePasswordFunc:         keyring.FixedStringPrompt("kanban-file-key"),
		KeychainTrustApplication: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening keyring: %w", err)
	}
	return ring, nil
}

// AIKeyFromKeyring returns the AI API key stored with SetAIKey.
func AIKeyFromKeyring() (string, error) {
	ring, err := openKeyring()
	if err != nil {
		return "", err
	}

	item, err := ring.Get(aiKeyName)
	if err != nil {
		return "", fmt.Errorf("getting credential %q: %w", aiKeyName, err)
	}
	return string(item.Data), nil
}

// SetAIKey stores the AI API key in the system keyring.
func SetAIKey(value string) error {
	ring, err := openKeyring()
	if err != nil {
		return err
	}

	err = ring.Set(keyring.Item{
		Key:   aiKeyName,
		Data:  []byte(value),
		Label: "kanban AI API key",
	})
	if err != nil {
		return fmt.Errorf("setting credential %q: %w", aiKeyName, err)
	}
	return nil
}

func DeleteAIKey() error {
	ring, err := openKeyring()
	if err != nil {
		return err
	}

	if err := ring.Remove(aiKeyName); err != nil {
		return fmt.Errorf("deleting credential %q: %w", aiKeyName, err)
	}
	return nil
}
