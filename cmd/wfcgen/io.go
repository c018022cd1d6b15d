package main

import (
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	_ "golang.org/x/image/bmp"

	"github.com/katalvlaran/wavecollapse/sample"
)

// loadSample decodes any registered image format into a Sample.
func loadSample(path string) (*sample.Sample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening sample %s", path)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, errors.Wrapf(err, "decoding sample %s", path)
	}
	s, err := sample.FromImage(img)
	if err != nil {
		return nil, errors.Wrapf(err, "sample %s", path)
	}
	log.WithFields(logrus.Fields{
		"path":   path,
		"format": format,
		"size":   img.Bounds().Size(),
		"colors": s.Colors(),
	}).Debug("loaded sample")

	return s, nil
}

// writePNG encodes img to path, creating parent directories.
func writePNG(path string, img image.Image) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrapf(err, "creating %s", dir)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "creating %s", path)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return errors.Wrapf(err, "encoding %s", path)
	}

	return errors.Wrapf(f.Close(), "closing %s", path)
}
