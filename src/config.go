package main

// SettingsStore provides a simple interface to read and write settings
// from an INI file. The settings file is loaded at startup and can be
// modified at runtime; every Set reloads from disk first so concurrent
// tool invocations don't clobber each other's sections.

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"gopkg.in/ini.v1"
)

type SettingsStore struct {
	cfg  *ini.File
	path string
}

// Global instance
var Store *SettingsStore

func configInit() error {
	cfg, err := ini.LooseLoad(env.settingsFile)
	if err != nil {
		return err
	}
	Store = &SettingsStore{
		cfg:  cfg,
		path: env.settingsFile,
	}
	return nil
}

func (s *SettingsStore) Reload() error {
	diskCfg, err := ini.LooseLoad(s.path)
	if err != nil {
		return fmt.Errorf("failed to reload settings file: %w", err)
	}
	s.cfg = diskCfg
	return nil
}

func (s *SettingsStore) save() error {
	_ = os.MkdirAll(filepath.Dir(s.path), 0755)
	return s.cfg.SaveTo(s.path)
}

func (s *SettingsStore) Set(section, key string, value interface{}) error {
	if err := s.Reload(); err != nil {
		log.Printf("failed to reload settings file: %s\n", err)
	}
	sec := s.cfg.Section(section)
	sec.Key(key).SetValue(iniValue(value))
	return s.save()
}

// SetMany sets multiple keys in a section with a single write.
func (s *SettingsStore) SetMany(section string, values map[string]interface{}) error {
	if err := s.Reload(); err != nil {
		log.Printf("failed to reload settings file: %s\n", err)
	}
	sec := s.cfg.Section(section)
	for key, val := range values {
		sec.Key(key).SetValue(iniValue(val))
	}
	return s.save()
}

func iniValue(value interface{}) string {
	switch v := value.(type) {
	case string:
		return v
	case bool:
		return fmt.Sprintf("%v", v)
	case int, int64, int32:
		return fmt.Sprintf("%d", v)
	case float64:
		return fmt.Sprintf("%f", v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func (s *SettingsStore) GetString(section, key string) (string, error) {
	s.Reload()
	sec := s.cfg.Section(section)
	if !sec.HasKey(key) {
		return "", fmt.Errorf("missing key: [%s]%s", section, key)
	}
	return sec.Key(key).String(), nil
}

func (s *SettingsStore) GetInt(section, key string) (int, error) {
	s.Reload()
	sec := s.cfg.Section(section)
	if !sec.HasKey(key) {
		return 0, fmt.Errorf("missing key: [%s]%s", section, key)
	}
	return sec.Key(key).Int()
}

func (s *SettingsStore) GetBool(section, key string) (bool, error) {
	s.Reload()
	sec := s.cfg.Section(section)
	if !sec.HasKey(key) {
		return false, fmt.Errorf("missing key: [%s]%s", section, key)
	}
	return sec.Key(key).Bool()
}
