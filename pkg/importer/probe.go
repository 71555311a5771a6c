package importer

import (
	"image"
	_ "image/jpeg" // register JPEG for DecodeConfig
	_ "image/png"  // register PNG for DecodeConfig
	"os"

	"github.com/ajitpratap0/vrem/pkg/errors"
)

// ImageProber reads the pixel dimensions of an image file
type ImageProber interface {
	Dimensions(path string) (width, height int, err error)
}

// HeaderProber reads dimensions from the image header without decoding
// pixel data. It understands PNG and JPEG.
type HeaderProber struct{}

// Dimensions implements ImageProber
func (HeaderProber) Dimensions(path string) (int, int, error) {
	f, err := os.Open(path) //nolint:gosec // G304: path is built from the import root
	if err != nil {
		return 0, 0, errors.Wrap(err, errors.ErrorTypeFile, "failed to open image").
			WithDetail("path", path)
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, errors.Wrap(err, errors.ErrorTypeFile, "failed to read image header").
			WithDetail("path", path)
	}
	return cfg.Width, cfg.Height, nil
}
