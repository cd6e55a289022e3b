// Package settings stores user preferences next to the moodlog config.
package settings

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

const (
	KeyNotifications = "notifications"
	KeySounds        = "sounds"
	KeyLanguage      = "language"

	prefix = "settings."
)

// Settings are the user preferences.
type Settings struct {
	Notifications bool   `json:"notifications"`
	Sounds        bool   `json:"sounds"`
	Language      string `json:"language"`
}

// Keys lists the settable keys in display order.
func Keys() []string {
	return []string{KeyNotifications, KeySounds, KeyLanguage}
}

// Defaults returns the preferences of a fresh install.
func Defaults() Settings {
	return Settings{Notifications: true, Sounds: true, Language: "English"}
}

// Store reads and writes settings through a viper instance.
type Store struct {
	v    *viper.Viper
	file string
}

// New returns a Store backed by v that persists to file. A nil v uses the
// global viper instance.
func New(v *viper.Viper, file string) *Store {
	if v == nil {
		v = viper.GetViper()
	}
	d := Defaults()
	v.SetDefault(prefix+KeyNotifications, d.Notifications)
	v.SetDefault(prefix+KeySounds, d.Sounds)
	v.SetDefault(prefix+KeyLanguage, d.Language)
	return &Store{v: v, file: file}
}

// Load returns the current settings.
func (s *Store) Load() Settings {
	return Settings{
		Notifications: s.v.GetBool(prefix + KeyNotifications),
		Sounds:        s.v.GetBool(prefix + KeySounds),
		Language:      s.v.GetString(prefix + KeyLanguage),
	}
}

// Set validates and stores one value, then writes the config file.
func (s *Store) Set(key, value string) (Settings, error) {
	key = strings.ToLower(strings.TrimSpace(key))
	switch key {
	case KeyNotifications, KeySounds:
		b, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			return Settings{}, fmt.Errorf("settings: %s expects true or false, got %q", key, value)
		}
		s.v.Set(prefix+key, b)
	case KeyLanguage:
		value = strings.TrimSpace(value)
		if value == "" {
			return Settings{}, fmt.Errorf("settings: language must not be empty")
		}
		s.v.Set(prefix+key, value)
	default:
		return Settings{}, fmt.Errorf("settings: unknown key %q (expected one of %s)", key, strings.Join(Keys(), ", "))
	}
	if err := s.v.WriteConfigAs(s.file); err != nil {
		return Settings{}, fmt.Errorf("settings: write %s: %w", s.file, err)
	}
	return s.Load(), nil
}
