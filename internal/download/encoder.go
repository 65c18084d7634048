package download

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ytget/qr-generator/internal/model"
	"github.com/ytget/qr-generator/internal/platform"
)

// MIMEPNG is the media type of every generated image
const MIMEPNG = "image/png"

// maxNameAttempts bounds the " (n)" suffix search in Save
const maxNameAttempts = 1000

// ErrDecode is returned when the artifact payload is not valid base64
var ErrDecode = errors.New("download: malformed image data")

// File is a decoded image ready to be written
type File struct {
	Name     string
	MIMEType string
	Data     []byte
}

// DataURL encodes the file back into a data: URL
func (f File) DataURL() string {
	return "data:" + f.MIMEType + ";base64," + base64.StdEncoding.EncodeToString(f.Data)
}

// Build decodes the variant selected by captionVisible and names the file
// after kind. It never returns a partially decoded file.
func Build(artifact model.Artifact, captionVisible bool, kind model.Kind) (File, error) {
	payload := artifact.Variant(captionVisible)
	if payload == "" {
		return File{}, fmt.Errorf("%w: empty payload", ErrDecode)
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return File{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return File{
		Name:     kind.Filename(),
		MIMEType: MIMEPNG,
		Data:     data,
	}, nil
}

// Write stores file at path, replacing any existing file
func Write(path string, file File) error {
	if err := platform.WriteFileAtomic(path, file.Data); err != nil {
		return fmt.Errorf("download: write %s: %w", path, err)
	}
	return nil
}

// Save writes file into dir without overwriting earlier downloads: a taken
// name gets a " (n)" suffix like browsers do. It returns the written path.
func Save(dir string, file File) (string, error) {
	if strings.TrimSpace(dir) == "" {
		home, err := platform.GetHomeDownloadsDir()
		if err != nil {
			return "", fmt.Errorf("download: resolve downloads directory: %w", err)
		}
		dir = home
	}
	if err := platform.CreateDirectoryIfNotExists(dir); err != nil {
		return "", fmt.Errorf("download: create directory: %w", err)
	}

	path, err := availablePath(dir, file.Name)
	if err != nil {
		return "", err
	}
	if err := Write(path, file); err != nil {
		return "", err
	}
	return path, nil
}

func availablePath(dir, name string) (string, error) {
	candidate := filepath.Join(dir, name)
	if _, err := os.Stat(candidate); os.IsNotExist(err) {
		return candidate, nil
	}

	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)
	for i := 1; i < maxNameAttempts; i++ {
		candidate = filepath.Join(dir, fmt.Sprintf("%s (%d)%s", base, i, ext))
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("download: no free file name for %s in %s", name, dir)
}
