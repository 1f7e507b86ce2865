// Package uploads stores event poster images on the local filesystem.
package uploads

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// MaxPosterSize caps poster uploads at 5 MiB.
const MaxPosterSize = 5 << 20

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// ErrUnsupportedType is returned for files that are not images we serve.
var ErrUnsupportedType = errors.New("unsupported poster file type")

// LocalStore saves posters under a single directory and hands back the
// filename to persist on the event record.
type LocalStore struct {
	dir string
}

// NewLocalStore creates the upload directory if needed.
// POST: returned store writes into dir
func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalStore{dir: dir}, nil
}

// Dir returns the directory posters are written to, for static serving.
func (s *LocalStore) Dir() string {
	return s.dir
}

// SavePoster writes the uploaded file under a fresh random name, keeping
// only the extension from the client-supplied filename.
// PRE: r delivers at most MaxPosterSize bytes (the handler enforces this)
// POST: returns the stored filename, never a path
func (s *LocalStore) SavePoster(r io.Reader, originalName string) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	if !allowedExtensions[ext] {
		return "", ErrUnsupportedType
	}

	name := uuid.NewString() + ext
	f, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("create poster file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("write poster file: %w", err)
	}
	return name, nil
}

// Remove deletes a stored poster. A missing file is not an error: the
// record may reference a poster that was already cleaned up.
func (s *LocalStore) Remove(name string) error {
	if name == "" || name != filepath.Base(name) {
		return nil
	}
	err := os.Remove(filepath.Join(s.dir, name))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
