// Package storage keeps uploaded payment screenshots on local disk. Files
// are never exposed through static file serving; retrieval goes through the
// admin-gated handler which re-checks the generated name pattern.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"subscription-storefront/internal/domain"

	"github.com/google/uuid"
)

// namePattern matches only names this store generates. Anything else is
// refused on Open, which keeps traversal and stray files out of reach.
var namePattern = regexp.MustCompile(`^screenshot-\d+-[0-9a-f]{8}\.[a-z0-9]+$`)

type ScreenshotStore struct {
	dir string
}

func NewScreenshotStore(dir string) (*ScreenshotStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create uploads dir: %w", err)
	}
	return &ScreenshotStore{dir: dir}, nil
}

// Save writes src under a generated collision-resistant name and returns the
// name. The extension is taken from the client's filename; a missing
// extension falls back to .png.
func (s *ScreenshotStore) Save(src io.Reader, originalName string) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	if ext == "" || ext == "." {
		ext = ".png"
	}
	name := fmt.Sprintf("screenshot-%d-%s%s", time.Now().UnixMilli(), uuid.NewString()[:8], ext)
	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("create screenshot file: %w", err)
	}
	defer dst.Close()
	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(dst.Name())
		return "", fmt.Errorf("write screenshot file: %w", err)
	}
	return name, nil
}

// ValidName reports whether name could have been produced by this store.
func ValidName(name string) bool { return namePattern.MatchString(name) }

// Open returns the stored file for a generated name. Names that do not match
// the generated pattern are treated as not found.
func (s *ScreenshotStore) Open(name string) (*os.File, error) {
	if !ValidName(name) || filepath.Base(name) != name {
		return nil, domain.ErrNotFound
	}
	f, err := os.Open(filepath.Join(s.dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("open screenshot: %w", err)
	}
	return f, nil
}

// Remove deletes a stored file. Removing a name that is already gone is not
// an error.
func (s *ScreenshotStore) Remove(name string) error {
	if name == "" || filepath.Base(name) != name {
		return nil
	}
	if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove screenshot: %w", err)
	}
	return nil
}
