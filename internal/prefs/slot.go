package prefs

import (
	"context"
	"os"
	"path/filepath"

	"github.com/digietal/artgallery/internal/gallery"
)

const artworksFile = "artworks.json"

// DefaultPath is the artworks file under the user's config directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "artgallery", artworksFile), nil
}

// FileSlot is a durable slot backed by a single JSON file.
type FileSlot struct {
	Path string
}

func (f *FileSlot) Read(ctx context.Context) ([]byte, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, gallery.ErrSlotEmpty
		}
		return nil, err
	}
	return data, nil
}

// Write replaces the file atomically via a temp file and rename.
func (f *FileSlot) Write(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(f.Path), 0o755); err != nil {
		return err
	}
	tmp := f.Path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, f.Path)
}

// Clear deletes the file. A missing file is not an error.
func (f *FileSlot) Clear(ctx context.Context) error {
	if err := os.Remove(f.Path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
