package httpapi

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"onepercent/internal/server/service"
)

var extByMIME = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// saveImagePart stores an uploaded "image" form file under the upload dir
// and returns its serving path ("uploads/<name>"). An absent file part
// returns "" with no error; required-ness is the handler's call.
func (r *Router) saveImagePart(req *http.Request) (string, error) {
	file, header, err := req.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	defer file.Close()

	if r.maxUploadBytes > 0 && header.Size >= r.maxUploadBytes {
		msg := fmt.Sprintf("Image size %d bytes out of range, limit is %d bytes", header.Size, r.maxUploadBytes)
		return "", &service.ValidationError{Message: msg, Fields: fieldList("image", msg)}
	}

	head := make([]byte, 512)
	n, err := file.Read(head)
	if err != nil && err != io.EOF {
		return "", err
	}
	mime := http.DetectContentType(head[:n])
	if !strings.HasPrefix(mime, "image/") {
		msg := "Uploaded file is not an image"
		return "", &service.ValidationError{Message: msg, Fields: fieldList("image", msg)}
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return "", err
	}

	ext := extByMIME[mime]
	if ext == "" {
		ext = filepath.Ext(header.Filename)
	}
	name := uuid.NewString() + ext
	if err := os.MkdirAll(r.uploadDir, 0o755); err != nil {
		return "", err
	}
	dst, err := os.Create(filepath.Join(r.uploadDir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()
	if _, err := io.Copy(dst, file); err != nil {
		return "", err
	}
	return "uploads/" + name, nil
}
