package filemgr

import (
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

type EntityType string

const (
	EntityListing EntityType = "listing"
	EntityJourney EntityType = "journey"

	thumbWidth = 200
)

var (
	allowedExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}
	allowedMIMEs      = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}

	ErrInvalidExtension = errors.New("invalid file extension")
	ErrInvalidMIME      = errors.New("invalid MIME type")
)

// Store persists uploaded images under a static directory and generates
// thumbnails for the jpeg/png ones.
type Store struct {
	BaseDir string
}

func NewStore(baseDir string) *Store {
	return &Store{BaseDir: baseDir}
}

// SaveFormFile saves the first file under formKey. A missing optional file
// returns "", nil.
func (s *Store) SaveFormFile(form *multipart.Form, formKey string, entity EntityType, required bool) (string, error) {
	if form == nil || len(form.File[formKey]) == 0 {
		if required {
			return "", fmt.Errorf("missing required file: %s", formKey)
		}
		return "", nil
	}
	hdr := form.File[formKey][0]
	file, err := hdr.Open()
	if err != nil {
		return "", fmt.Errorf("open %s: %w", formKey, err)
	}
	defer file.Close()
	return s.saveFile(file, hdr, entity)
}

// SaveFormFiles saves every file under formKey, skipping the ones that fail.
func (s *Store) SaveFormFiles(form *multipart.Form, formKey string, entity EntityType) ([]string, error) {
	if form == nil || len(form.File[formKey]) == 0 {
		return nil, nil
	}

	var saved []string
	var errs []string
	for _, hdr := range form.File[formKey] {
		file, err := hdr.Open()
		if err != nil {
			errs = append(errs, fmt.Sprintf("open %s: %v", hdr.Filename, err))
			continue
		}
		name, err := s.saveFile(file, hdr, entity)
		file.Close()
		if err != nil {
			errs = append(errs, fmt.Sprintf("save %s: %v", hdr.Filename, err))
			continue
		}
		saved = append(saved, name)
	}
	if len(saved) == 0 && len(errs) > 0 {
		return nil, errors.New(strings.Join(errs, "; "))
	}
	return saved, nil
}

func (s *Store) saveFile(file multipart.File, hdr *multipart.FileHeader, entity EntityType) (string, error) {
	ext := strings.ToLower(filepath.Ext(hdr.Filename))
	if !contains(allowedExtensions, ext) {
		return "", ErrInvalidExtension
	}
	if mime := hdr.Header.Get("Content-Type"); mime != "" && !contains(allowedMIMEs, mime) {
		return "", ErrInvalidMIME
	}

	name := ensureSafeFilename(hdr.Filename, ext)
	dir := filepath.Join(s.BaseDir, "uploads", string(entity), "photo")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}

	dst := filepath.Join(dir, name)
	out, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", dst, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, file); err != nil {
		os.Remove(dst)
		return "", fmt.Errorf("write %s: %w", dst, err)
	}

	if ext == ".jpg" || ext == ".jpeg" || ext == ".png" {
		if img, err := imaging.Open(dst); err == nil {
			if err := s.generateThumbnail(img, entity, name); err != nil {
				// thumbnails are best-effort; the original is already saved
				fmt.Fprintf(os.Stderr, "thumbnail %s: %v\n", name, err)
			}
		}
	}

	return name, nil
}

// URLFor returns the public path of a saved file.
func (s *Store) URLFor(entity EntityType, filename string) string {
	return "/uploads/" + string(entity) + "/photo/" + filename
}

func (s *Store) generateThumbnail(img image.Image, entity EntityType, baseFilename string) error {
	resized := imaging.Resize(img, thumbWidth, 0, imaging.Lanczos) // maintain aspect ratio
	name := strings.TrimSuffix(baseFilename, filepath.Ext(baseFilename)) + ".jpg"
	path := filepath.Join(s.BaseDir, "uploads", string(entity), "thumb", name)

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer out.Close()

	return jpeg.Encode(out, resized, &jpeg.Options{Quality: 85})
}

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9_\-]`)

func ensureSafeFilename(name, ext string) string {
	name = strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	name = strings.ToLower(strings.ReplaceAll(name, " ", "_"))
	name = unsafeChars.ReplaceAllString(name, "")
	if name == "" {
		return uuid.New().String() + ext
	}
	return name + "_" + uuid.New().String()[:8] + ext
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
