package jsonfile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"snowrent-backend/internal/logger"
)

const prefsFile = "config.json"

// defaultAdminPassword seeds a brand-new installation. Changed through
// SetAdminPassword; only the hash is ever written to disk.
const defaultAdminPassword = "admin"

type prefsRecord struct {
	AdminPasswordHash string `json:"adminPasswordHash"`
	DarkMode          bool   `json:"darkMode"`
}

// Prefs is the admin-password/preferences record consumed by the settings
// layer. It has an explicit load/save lifecycle and is never touched by the
// registries or the ledger.
type Prefs struct {
	path   string
	record prefsRecord
}

// LoadPrefs reads the preferences file under dir, creating it with defaults
// when absent. A corrupt file degrades to defaults.
func LoadPrefs(dir string) (*Prefs, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}
	p := &Prefs{path: filepath.Join(dir, prefsFile)}

	data, err := os.ReadFile(p.path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Error("Failed to read preferences, recreating with defaults", "file", prefsFile, "error", err)
		}
		if err := p.resetToDefaults(); err != nil {
			return nil, err
		}
		return p, p.save()
	}

	if err := json.Unmarshal(data, &p.record); err != nil || p.record.AdminPasswordHash == "" {
		logger.Error("Preferences file corrupt, recreating with defaults", "file", prefsFile, "error", err)
		if err := p.resetToDefaults(); err != nil {
			return nil, err
		}
		return p, p.save()
	}
	return p, nil
}

func (p *Prefs) resetToDefaults() error {
	hash, err := bcrypt.GenerateFromPassword([]byte(defaultAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash default password: %w", err)
	}
	p.record = prefsRecord{AdminPasswordHash: string(hash)}
	return nil
}

// VerifyAdminPassword checks a password attempt against the stored hash.
func (p *Prefs) VerifyAdminPassword(input string) bool {
	return bcrypt.CompareHashAndPassword([]byte(p.record.AdminPasswordHash), []byte(input)) == nil
}

// SetAdminPassword replaces the admin password and persists immediately.
// Empty passwords are rejected.
func (p *Prefs) SetAdminPassword(newPassword string) error {
	if strings.TrimSpace(newPassword) == "" {
		return fmt.Errorf("admin password must not be empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	p.record.AdminPasswordHash = string(hash)
	return p.save()
}

func (p *Prefs) DarkMode() bool {
	return p.record.DarkMode
}

// SetDarkMode persists the flag when it actually changes.
func (p *Prefs) SetDarkMode(enabled bool) error {
	if p.record.DarkMode == enabled {
		return nil
	}
	p.record.DarkMode = enabled
	return p.save()
}

func (p *Prefs) save() error {
	data, err := json.MarshalIndent(p.record, "", "  ")
	if err != nil {
		return fmt.Errorf("encode preferences: %w", err)
	}
	if err := os.WriteFile(p.path, data, 0600); err != nil {
		return fmt.Errorf("write preferences: %w", err)
	}
	return nil
}
