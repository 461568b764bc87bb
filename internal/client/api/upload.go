package api

import (
	"encoding/base64"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// MaxImageBytes caps accepted image files. The comparison is strictly
// less-than: a file of exactly 5 MB is rejected.
const MaxImageBytes = 5 * 1024 * 1024

var (
	ErrNotImage      = errors.New("Please upload a valid image file!")
	ErrImageTooLarge = errors.New("Image must be smaller than 5MB!")
)

// ImageFile is a locally validated image ready for multipart submission.
type ImageFile struct {
	Name string
	MIME string
	Data []byte
}

// NewImage validates raw file bytes: the content must sniff as an image MIME
// type and stay under 5 MB. Validation happens before any network call.
func NewImage(name string, data []byte) (*ImageFile, error) {
	mimeType := http.DetectContentType(data)
	if !strings.HasPrefix(mimeType, "image/") {
		return nil, ErrNotImage
	}
	if int64(len(data)) >= MaxImageBytes {
		return nil, ErrImageTooLarge
	}
	return &ImageFile{Name: filepath.Base(name), MIME: mimeType, Data: data}, nil
}

// LoadImage reads and validates an image from disk.
func LoadImage(path string) (*ImageFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return NewImage(path, data)
}

// PreviewDataURL renders the local preview; it is never uploaded.
func (f *ImageFile) PreviewDataURL() string {
	return "data:" + f.MIME + ";base64," + base64.StdEncoding.EncodeToString(f.Data)
}
