package practice

import (
	"crypto/sha256"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"
	"os"
	"path"

	"github.com/go-git/go-billy/v6"
	"github.com/google/uuid"
)

// ImageStore keeps pose images content-addressed by sha256 on a billy
// filesystem: osfs in production, memfs in tests. Every stored image is
// normalized to PNG so identical pixels get identical refs.
type ImageStore struct {
	fs billy.Filesystem
}

// NewImageStore creates an ImageStore over fs.
func NewImageStore(fs billy.Filesystem) *ImageStore {
	return &ImageStore{fs: fs}
}

// PutImage encodes m as PNG and stores it under its content hash,
// returning the image ref. Writing goes through a uuid-named temp file
// so a crash never leaves a half-written ref behind.
func (s *ImageStore) PutImage(m image.Image) (string, error) {
	tempName := fmt.Sprintf("%s.tmp", uuid.New())
	f, err := s.fs.Create(tempName)
	if err != nil {
		return "", err
	}
	hasher := sha256.New()
	w := io.MultiWriter(f, hasher)
	if err := png.Encode(w, m); err != nil {
		f.Close()
		s.fs.Remove(tempName)
		return "", err
	}
	if err := f.Close(); err != nil {
		s.fs.Remove(tempName)
		return "", err
	}
	ref := fmt.Sprintf("%x.png", hasher.Sum(nil))
	if err := s.fs.Rename(tempName, ref); err != nil {
		s.fs.Remove(tempName)
		return "", err
	}
	return ref, nil
}

// Open returns the stored image for ref. Refs are bare filenames;
// anything path-like is rejected.
func (s *ImageStore) Open(ref string) (io.ReadCloser, error) {
	if ref == "" || path.Base(ref) != ref {
		return nil, fmt.Errorf("invalid image ref %q", ref)
	}
	return s.fs.Open(ref)
}

// Exists reports whether ref is present in the store.
func (s *ImageStore) Exists(ref string) bool {
	if ref == "" || path.Base(ref) != ref {
		return false
	}
	_, err := s.fs.Stat(ref)
	return err == nil
}

// Remove deletes the stored image for ref, if present.
func (s *ImageStore) Remove(ref string) error {
	if ref == "" || path.Base(ref) != ref {
		return fmt.Errorf("invalid image ref %q", ref)
	}
	return s.fs.Remove(ref)
}

// DecodeImage opens and decodes an image file from the host
// filesystem. Used by the ingest command to validate files before they
// enter the store.
func DecodeImage(filepath string) (image.Image, error) {
	f, err := os.Open(filepath)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	m, _, err := image.Decode(f)
	if err != nil {
		return nil, err
	}
	return m, nil
}
