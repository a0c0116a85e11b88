// Package assets reads the landing page images and stylesheets from disk and
// encodes them for inline embedding. Nothing is cached: every render pass
// reads the files again.
package assets

import (
	"encoding/base64"
	"errors"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"

	"nutrilife-landing/pkg/logger"
)

var ErrAssetNotFound = errors.New("asset not found")

// DataURI is an inline image reference, e.g. "data:image/png;base64,....".
type DataURI string

// URL marks the value as safe for use in src attributes.
func (d DataURI) URL() template.URL {
	return template.URL(d)
}

type Options struct {
	Dir         string
	Background  string
	Logo        string
	Promotions  []string
	Stylesheets []string
}

type Loader struct {
	options Options
}

func NewLoader(opts Options) *Loader {
	return &Loader{options: opts}
}

func (l *Loader) path(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(l.options.Dir, name)
}

// BackgroundPath is reported to the user when the background is missing.
func (l *Loader) BackgroundPath() string {
	return l.path(l.options.Background)
}

// Background encodes the page background. A missing file yields
// ErrAssetNotFound.
func (l *Loader) Background() (DataURI, error) {
	return EncodeFile(l.BackgroundPath())
}

// Logo encodes the navbar logo; ok is false when it is unavailable.
func (l *Loader) Logo() (DataURI, bool) {
	if l.options.Logo == "" {
		return "", false
	}
	uri, err := EncodeFile(l.path(l.options.Logo))
	if err != nil {
		if !errors.Is(err, ErrAssetNotFound) {
			logger.Warn("Failed to read logo", map[string]interface{}{"error": err.Error()})
		}
		return "", false
	}
	return uri, true
}

// Promotions encodes the rotating promotional images that exist, keeping the
// configured order. Missing files are skipped silently.
func (l *Loader) Promotions() []DataURI {
	encoded := make([]DataURI, 0, len(l.options.Promotions))
	for _, name := range l.options.Promotions {
		uri, err := EncodeFile(l.path(name))
		if err != nil {
			if !errors.Is(err, ErrAssetNotFound) {
				logger.Warn("Failed to read promotional image", map[string]interface{}{"file": name, "error": err.Error()})
			}
			continue
		}
		encoded = append(encoded, uri)
	}
	return encoded
}

// Stylesheets returns the contents of the configured CSS files.
func (l *Loader) Stylesheets() []string {
	sheets := make([]string, 0, len(l.options.Stylesheets))
	for _, name := range l.options.Stylesheets {
		data, err := os.ReadFile(l.path(name))
		if err != nil {
			logger.Warn("Skipping stylesheet", map[string]interface{}{"file": name, "error": err.Error()})
			continue
		}
		sheets = append(sheets, string(data))
	}
	return sheets
}

// EncodeFile reads path and returns it as a base64 data URI.
func EncodeFile(path string) (DataURI, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrAssetNotFound, path)
		}
		return "", fmt.Errorf("failed to read asset %s: %w", path, err)
	}
	return Encode(MimeType(path), data), nil
}

func Encode(mimeType string, data []byte) DataURI {
	return DataURI("data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data))
}

// MimeType derives the image MIME type from the file extension.
func MimeType(path string) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	switch ext {
	case "jpg", "jpeg":
		return "image/jpeg"
	case "svg":
		return "image/svg+xml"
	case "":
		return "application/octet-stream"
	default:
		return "image/" + ext
	}
}
