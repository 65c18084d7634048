package platform

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCreateDirectoryIfNotExists(t *testing.T) {
	tempDir := t.TempDir()
	testDir := filepath.Join(tempDir, "test_dir")

	if _, err := os.Stat(testDir); !os.IsNotExist(err) {
		t.Fatalf("Test directory already exists: %s", testDir)
	}

	if err := CreateDirectoryIfNotExists(testDir); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}

	if _, err := os.Stat(testDir); os.IsNotExist(err) {
		t.Fatalf("Directory was not created: %s", testDir)
	}

	// Second call should not fail
	if err := CreateDirectoryIfNotExists(testDir); err != nil {
		t.Fatalf("Failed to handle existing directory: %v", err)
	}
}

func TestWriteFileAtomic(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	path := filepath.Join(dir, "wifi-qr.png")

	if err := WriteFileAtomic(path, []byte("first")); err != nil {
		t.Fatalf("WriteFileAtomic failed: %v", err)
	}
	if err := WriteFileAtomic(path, []byte("second")); err != nil {
		t.Fatalf("WriteFileAtomic overwrite failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read written file: %v", err)
	}
	if string(data) != "second" {
		t.Errorf("Expected overwritten content 'second', got %q", data)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("Failed to read dir: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("Expected temp files to be cleaned up, found %d entries", len(entries))
	}
}

func TestGetHomeDownloadsDir(t *testing.T) {
	downloadsDir, err := GetHomeDownloadsDir()
	if err != nil {
		t.Fatalf("Failed to get downloads directory: %v", err)
	}

	if downloadsDir == "" {
		t.Fatal("Downloads directory is empty")
	}

	if base := filepath.Base(downloadsDir); base != "Downloads" && base != "Download" {
		t.Errorf("Expected directory to end with 'Downloads', got: %s", downloadsDir)
	}
}

func TestOpenFileInManager_NonExistentFile(t *testing.T) {
	nonExistentFile := filepath.Join(t.TempDir(), "nonexistent.png")

	err := OpenFileInManager(nonExistentFile)
	if err == nil {
		t.Fatal("Expected error for non-existent file, got nil")
	}

	if !strings.Contains(err.Error(), "file does not exist:") {
		t.Errorf("Error message should contain 'file does not exist:', got: %v", err)
	}
}

func TestOpenFileWithDefaultApp_EmptyPath(t *testing.T) {
	err := OpenFileWithDefaultApp("")
	if err == nil || err.Error() != "file path is empty" {
		t.Errorf("Expected 'file path is empty' error, got %v", err)
	}
}

func TestNewLogger_LevelFallback(t *testing.T) {
	logger, err := newLogger("not-a-level", []string{"stderr"})
	if err != nil {
		t.Fatalf("newLogger failed: %v", err)
	}
	if !logger.Core().Enabled(0) { // info
		t.Error("Expected info level to be enabled by default")
	}
	if logger.Core().Enabled(-1) { // debug
		t.Error("Expected debug level to be disabled by default")
	}

	debug, err := newLogger("DEBUG", []string{"stderr"})
	if err != nil {
		t.Fatalf("newLogger failed: %v", err)
	}
	if !debug.Core().Enabled(-1) {
		t.Error("Expected debug level to be enabled")
	}
}

func TestSugar_NilLogger(t *testing.T) {
	if Sugar(nil) == nil {
		t.Error("Sugar(nil) should return a no-op logger")
	}
}
