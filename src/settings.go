package main

import (
	"log"
	"os"
	"path/filepath"

	"gopkg.in/ini.v1"
)

var RepresentativeName = "QRC Editor" // name shown in window titles and about box
var appName = "qrceditor"             // app name that will be used in settings etc...

var settings Settings
var DEBUG bool = false
var env Environment

type Environment struct {
	configDir    string // configuration directory ~/.config/qrceditor
	settingsFile string // configuration path ~/.config/qrceditor/settings.ini
	homeDir      string // home directory ~/
	appPath      string // application directory where the binary lies
	tmpDir       string // OS Temp directory
	appDebugLog  string // app debug.log
	os           string // current operating system
}

// Settings mirrors the [Compiler], [Editor] and [Window] sections of
// settings.ini. It is loaded once at startup and written back whenever
// the settings dialog is accepted or the editor window closes.
type Settings struct {
	Compiler       string
	NoCompress     bool
	Compress       bool
	CompressLevel  int
	Threshold      bool
	ThresholdLevel int
	RootPrefix     string
	OutputFormat   string
	LastDir        string
	WindowWidth    int
	WindowHeight   int
}

// NewDefaultSettings returns the documented defaults, matching a fresh
// pyside2 install.
func NewDefaultSettings() Settings {
	compiler := "pyside2-rcc"
	if GetOS() == "windows" {
		compiler = "pyside2-rcc.exe"
	}
	return Settings{
		Compiler:       compiler,
		NoCompress:     false,
		Compress:       false,
		CompressLevel:  1,
		Threshold:      false,
		ThresholdLevel: 70,
		RootPrefix:     "",
		OutputFormat:   FormatPythonModule,
		LastDir:        ".",
		WindowWidth:    900,
		WindowHeight:   600,
	}
}

// CompileOptions maps the persisted settings onto the explicit options
// object the shim takes.
func (s Settings) CompileOptions() CompileOptions {
	opts := CompileOptions{
		RootPrefix: s.RootPrefix,
		Format:     s.OutputFormat,
	}
	switch {
	case s.NoCompress:
		opts.Compression = CompressionNone
	case s.Compress:
		opts.Compression = s.CompressLevel
	}
	if s.Threshold {
		opts.Threshold = s.ThresholdLevel
	}
	return opts
}

func InitializeEnvironment() {
	// gather all required directories
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Printf("Unable to determine the user home folder: %s\n", err)
	}
	configDir := filepath.Join(homeDir, ".config", appName)
	settingsFile := filepath.Join(configDir, "settings.ini")
	env = Environment{
		configDir:    configDir,
		settingsFile: settingsFile,
		homeDir:      homeDir,
		appPath:      appPath(),
		tmpDir:       os.TempDir(),
		appDebugLog:  filepath.Join(configDir, "debug.log"),
		os:           GetOS(),
	}
}

// firstStart makes sure the config directory and settings file exist so
// the rest of the startup can assume both are there.
func firstStart() {
	if _, err := os.Stat(env.configDir); os.IsNotExist(err) {
		if err := os.MkdirAll(env.configDir, 0755); err != nil {
			log.Fatal(err)
		}
	}
	if _, err := os.Stat(env.settingsFile); os.IsNotExist(err) {
		// no settings file found, maybe new installation ?
		if err := touchFile(env.settingsFile); err != nil {
			log.Printf("Unable to create settings file: %s\n", err)
		}
	}
}

func loadSettings() {
	settings = NewDefaultSettings()

	cfg, err := ini.LooseLoad(env.settingsFile)
	if err != nil {
		log.Printf("Failed to read settings file: %s\n", err)
		return
	}

	section := cfg.Section("Compiler")
	if section.HasKey("program") {
		settings.Compiler = section.Key("program").String()
	}
	if section.HasKey("no_compress") {
		settings.NoCompress = section.Key("no_compress").MustBool(false)
	}
	if section.HasKey("compress") {
		settings.Compress = section.Key("compress").MustBool(false)
	}
	if section.HasKey("compress_level") {
		settings.CompressLevel = section.Key("compress_level").MustInt(1)
	}
	if section.HasKey("threshold") {
		settings.Threshold = section.Key("threshold").MustBool(false)
	}
	if section.HasKey("threshold_level") {
		settings.ThresholdLevel = section.Key("threshold_level").MustInt(70)
	}
	if section.HasKey("root_prefix") {
		settings.RootPrefix = section.Key("root_prefix").String()
	}
	if section.HasKey("output_format") {
		settings.OutputFormat = section.Key("output_format").String()
	}

	section = cfg.Section("Editor")
	if section.HasKey("last_dir") {
		settings.LastDir = section.Key("last_dir").String()
	}

	if cfg.HasSection("Window") {
		section = cfg.Section("Window")
		if section.HasKey("width") {
			settings.WindowWidth = section.Key("width").MustInt(settings.WindowWidth)
		}
		if section.HasKey("height") {
			settings.WindowHeight = section.Key("height").MustInt(settings.WindowHeight)
		}
	}
}

// saveSettings writes the whole Settings struct back through the store.
func saveSettings() {
	if Store == nil {
		return
	}
	err := Store.SetMany("Compiler", map[string]interface{}{
		"program":         settings.Compiler,
		"no_compress":     settings.NoCompress,
		"compress":        settings.Compress,
		"compress_level":  settings.CompressLevel,
		"threshold":       settings.Threshold,
		"threshold_level": settings.ThresholdLevel,
		"root_prefix":     settings.RootPrefix,
		"output_format":   settings.OutputFormat,
	})
	if err != nil {
		log.Printf("Unable to save compiler settings: %s\n", err)
	}
	err = Store.SetMany("Editor", map[string]interface{}{
		"last_dir": settings.LastDir,
	})
	if err != nil {
		log.Printf("Unable to save editor settings: %s\n", err)
	}
}

// resetSettings wipes the settings file, the equivalent of the original
// -reset switch.
func resetSettings() error {
	if err := os.Remove(env.settingsFile); err != nil && !os.IsNotExist(err) {
		return err
	}
	settings = NewDefaultSettings()
	return nil
}
