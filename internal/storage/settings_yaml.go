package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"focusclock/internal/atomicfile"
	"focusclock/internal/core/model"
)

const settingsFileName = "settings.yaml"

// ErrInvalidSettings indicates settings values outside their allowed ranges.
var ErrInvalidSettings = errors.New("invalid settings")

type yamlSettings struct {
	WorkMinutes          int      `yaml:"work_minutes"`
	ShortBreakMinutes    int      `yaml:"short_break_minutes"`
	LongBreakMinutes     int      `yaml:"long_break_minutes"`
	LongBreakInterval    int      `yaml:"long_break_interval"`
	AutoStartBreaks      *bool    `yaml:"auto_start_breaks,omitempty"`
	AutoStartPomodoros   *bool    `yaml:"auto_start_pomodoros,omitempty"`
	SoundEnabled         *bool    `yaml:"sound_enabled,omitempty"`
	NotificationsEnabled *bool    `yaml:"notifications_enabled,omitempty"`
	Volume               *float64 `yaml:"volume,omitempty"`
}

// SettingsPath returns the settings file location under the user config dir.
func SettingsPath(appName string) (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, appName, settingsFileName), nil
}

// Validate checks the ranges the timer relies on.
func Validate(settings model.Settings) error {
	switch {
	case settings.WorkDuration <= 0:
		return fmt.Errorf("%w: work duration must be positive", ErrInvalidSettings)
	case settings.ShortBreakDuration <= 0:
		return fmt.Errorf("%w: short break duration must be positive", ErrInvalidSettings)
	case settings.LongBreakDuration <= 0:
		return fmt.Errorf("%w: long break duration must be positive", ErrInvalidSettings)
	case settings.LongBreakInterval <= 0:
		return fmt.Errorf("%w: long break interval must be positive", ErrInvalidSettings)
	case settings.Volume < 0 || settings.Volume > 1:
		return fmt.Errorf("%w: volume must be within [0,1]", ErrInvalidSettings)
	}
	return nil
}

// LoadSettings reads user preferences from YAML.
// If the file does not exist, default settings are returned.
func LoadSettings(path string) (model.Settings, error) {
	settings := model.DefaultSettings()

	rawData, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	return parseSettings(rawData)
}

func parseSettings(rawData []byte) (model.Settings, error) {
	settings := model.DefaultSettings()
	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("parse settings yaml: %w", err)
	}

	applyYamlSettings(&settings, fileData)
	return settings, nil
}

// MarshalSettings renders settings in the settings file format.
func MarshalSettings(settings model.Settings) ([]byte, error) {
	fileData := yamlSettings{
		WorkMinutes:          settings.WorkDuration,
		ShortBreakMinutes:    settings.ShortBreakDuration,
		LongBreakMinutes:     settings.LongBreakDuration,
		LongBreakInterval:    settings.LongBreakInterval,
		AutoStartBreaks:      &settings.AutoStartBreaks,
		AutoStartPomodoros:   &settings.AutoStartPomodoros,
		SoundEnabled:         &settings.SoundEnabled,
		NotificationsEnabled: &settings.NotificationsEnabled,
		Volume:               &settings.Volume,
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return nil, fmt.Errorf("marshal settings yaml: %w", err)
	}
	return serialized, nil
}

// SaveSettings writes user preferences to YAML.
func SaveSettings(path string, settings model.Settings) error {
	serialized, err := MarshalSettings(settings)
	if err != nil {
		return err
	}

	if err := atomicfile.Write(path, serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}

	return nil
}

func applyYamlSettings(settings *model.Settings, fileData yamlSettings) {
	if fileData.WorkMinutes > 0 {
		settings.WorkDuration = fileData.WorkMinutes
	}
	if fileData.ShortBreakMinutes > 0 {
		settings.ShortBreakDuration = fileData.ShortBreakMinutes
	}
	if fileData.LongBreakMinutes > 0 {
		settings.LongBreakDuration = fileData.LongBreakMinutes
	}
	if fileData.LongBreakInterval > 0 {
		settings.LongBreakInterval = fileData.LongBreakInterval
	}

	if fileData.Volume != nil && *fileData.Volume >= 0 && *fileData.Volume <= 1 {
		settings.Volume = *fileData.Volume
	}

	if fileData.AutoStartBreaks != nil {
		settings.AutoStartBreaks = *fileData.AutoStartBreaks
	}
	if fileData.AutoStartPomodoros != nil {
		settings.AutoStartPomodoros = *fileData.AutoStartPomodoros
	}
	if fileData.SoundEnabled != nil {
		settings.SoundEnabled = *fileData.SoundEnabled
	}
	if fileData.NotificationsEnabled != nil {
		settings.NotificationsEnabled = *fileData.NotificationsEnabled
	}
}
