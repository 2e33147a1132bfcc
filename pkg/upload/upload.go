package upload

import (
	"errors"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

// PublicPath is the URL prefix under which uploaded files are served.
const PublicPath = "/public/uploads"

// MaxGalleryFiles caps a single gallery update.
const MaxGalleryFiles = 10

// FileTypes maps the accepted image MIME types to their file extension.
var FileTypes = map[string]string{
	"image/png":  "png",
	"image/jpeg": "jpeg",
	"image/jpg":  "jpg",
}

var (
	ErrInvalidImageType = errors.New("invalid image type")
	ErrTooManyFiles     = fmt.Errorf("a gallery update accepts at most %d images", MaxGalleryFiles)
)

// Filename derives the stored name for an uploaded file: spaces in the
// original name become hyphens, then the epoch milliseconds and the
// extension for the declared MIME type are appended. The original
// extension stays embedded in the name.
func Filename(original, mimeType string) (string, error) {
	ext, ok := FileTypes[mimeType]
	if !ok {
		return "", ErrInvalidImageType
	}
	name := strings.ReplaceAll(original, " ", "-")
	return fmt.Sprintf("%s-%d.%s", name, time.Now().UnixMilli(), ext), nil
}

// Saver writes validated uploads into a local directory that is served
// statically. Old files are never removed when a product's image is
// replaced or deleted.
type Saver struct {
	Dir string
}

// NewSaver ensures the upload directory exists.
func NewSaver(dir string) (*Saver, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Saver{Dir: dir}, nil
}

// Save validates the file's declared MIME type, generates the stored name
// and writes the file. It returns the generated filename.
func (s *Saver) Save(c *fiber.Ctx, file *multipart.FileHeader) (string, error) {
	name, err := Filename(file.Filename, file.Header.Get("Content-Type"))
	if err != nil {
		return "", err
	}
	if err := c.SaveFile(file, filepath.Join(s.Dir, name)); err != nil {
		return "", err
	}
	return name, nil
}

// SaveAll applies the single-file rule to each file in a gallery update.
// Nothing is written when the batch exceeds the cap.
func (s *Saver) SaveAll(c *fiber.Ctx, files []*multipart.FileHeader) ([]string, error) {
	if len(files) > MaxGalleryFiles {
		return nil, ErrTooManyFiles
	}
	names := make([]string, 0, len(files))
	for _, file := range files {
		name, err := s.Save(c, file)
		if err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, nil
}

// BaseURL builds the public prefix for uploaded files from the inbound
// request's protocol and host.
func BaseURL(c *fiber.Ctx) string {
	return c.Protocol() + "://" + c.Hostname() + PublicPath + "/"
}
