package preview

import (
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"
)

// Format is an output image encoding.
type Format string

const (
	WebP Format = "webp"
	TGA  Format = "tga"
)

// Encode writes img in format f.
func Encode(w io.Writer, img image.Image, f Format) error {
	switch f {
	case WebP, "":
		if err := nativewebp.Encode(w, img, nil); err != nil {
			return fmt.Errorf("preview: webp encode: %w", err)
		}
	case TGA:
		if err := tga.Encode(w, img); err != nil {
			return fmt.Errorf("preview: tga encode: %w", err)
		}
	default:
		return fmt.Errorf("preview: unknown format %q", f)
	}
	return nil
}

// WriteFile encodes img to path, creating parent directories.
func WriteFile(path string, img image.Image, f Format) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("preview: mkdir %s: %w", filepath.Dir(path), err)
	}
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("preview: create %s: %w", path, err)
	}
	if err := Encode(out, img, f); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("preview: close %s: %w", path, err)
	}
	return nil
}
