package main

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"
)

func GetOS() string {
	return runtime.GOOS
}

// Try to open the file (create if doesn't exist)
func touchFile(path string) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer file.Close()
	// Update the modification and access time
	now := time.Now()
	return os.Chtimes(path, now, now)
}

// return app path
func appPath() string {
	exePath, err := os.Executable()
	if err != nil {
		return ""
	}

	// Resolve any symlinks and clean path
	realPath, err := filepath.EvalSymlinks(exePath)
	if err != nil {
		return ""
	}
	return filepath.Dir(realPath)
}

// fileExists returns true if the given path exists (and is not a directory).
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err == nil {
		return !info.IsDir()
	}
	if os.IsNotExist(err) {
		return false
	}
	// some other error (e.g. permissions) — assume it exists so the caller can decide
	return true
}

// ensureQrcExt appends the .qrc extension when the user typed a name
// without one.
func ensureQrcExt(name string) string {
	if strings.EqualFold(filepath.Ext(name), ".qrc") {
		return name
	}
	return name + ".qrc"
}

// defaultOutputName derives the compile target from the manifest name,
// e.g. icons.qrc -> icons_rc.py or icons.rcc for binary output.
func defaultOutputName(manifest, format string) string {
	stem := strings.TrimSuffix(manifest, filepath.Ext(manifest))
	if format == FormatBinary {
		return stem + ".rcc"
	}
	return stem + "_rc.py"
}

// relativeResourcePath turns an absolute file name into a path relative
// to baseDir, the directory of the manifest. Entries must live under
// that directory; ok is false otherwise.
func relativeResourcePath(baseDir, fileName string) (string, bool) {
	absBase, err := filepath.Abs(baseDir)
	if err != nil {
		return "", false
	}
	absFile, err := filepath.Abs(fileName)
	if err != nil {
		return "", false
	}
	rel, err := filepath.Rel(absBase, absFile)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return filepath.ToSlash(rel), true
}

func TruncateString(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		// Not enough space even for "..."
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}
